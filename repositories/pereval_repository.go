package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pereval-api/models"
)

var ErrPerevalNotFound = errors.New("pereval not found")

type PerevalRepository interface {
	Create(ctx context.Context, exec SQLExecutor, pereval *models.Pereval) error
	// GetByID возвращает перевал вместе с пользователем, координатами и
	// уровнем сложности (изображения загружаются отдельно).
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Pereval, error)
	// LockByID читает ту же денормализованную строку под SELECT ... FOR UPDATE,
	// чтобы проверка статуса и последующие записи не могли чередоваться
	// с конкурентным обновлением.
	LockByID(ctx context.Context, exec SQLExecutor, id int) (*models.Pereval, error)
	ListByUserID(ctx context.Context, exec SQLExecutor, userID int) ([]models.Pereval, error)
	UpdateCore(ctx context.Context, exec SQLExecutor, pereval *models.Pereval) error
}

type postgresPerevalRepository struct {
	db *sql.DB
}

func NewPostgresPerevalRepository(db *sql.DB) PerevalRepository {
	return &postgresPerevalRepository{db: db}
}

func (r *postgresPerevalRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPerevalRepository) Create(ctx context.Context, exec SQLExecutor, pereval *models.Pereval) error {
	query := `
		INSERT INTO perevals (beauty_title, title, other_titles, connect, status, user_id, coords_id, level_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, add_time`

	return r.getExecutor(exec).QueryRowContext(ctx, query,
		pereval.BeautyTitle,
		pereval.Title,
		pereval.OtherTitles,
		pereval.Connect,
		pereval.Status,
		pereval.UserID,
		pereval.CoordsID,
		pereval.LevelID,
	).Scan(&pereval.ID, &pereval.AddTime)
}

const perevalSelectColumns = `
	p.id, p.beauty_title, p.title, p.other_titles, p.connect, p.add_time, p.status,
	p.user_id, p.coords_id, p.level_id,
	u.email, u.fam, u.name, u.otc, u.phone,
	c.latitude, c.longitude, c.height,
	l.winter, l.summer, l.autumn, l.spring`

const perevalSelectJoins = `
	FROM perevals p
	JOIN users u ON p.user_id = u.id
	JOIN coords c ON p.coords_id = c.id
	JOIN levels l ON p.level_id = l.id`

func scanPereval(row interface{ Scan(dest ...interface{}) error }) (*models.Pereval, error) {
	var pereval models.Pereval
	var user models.User
	var coords models.Coords
	var level models.Level

	err := row.Scan(
		&pereval.ID,
		&pereval.BeautyTitle,
		&pereval.Title,
		&pereval.OtherTitles,
		&pereval.Connect,
		&pereval.AddTime,
		&pereval.Status,
		&pereval.UserID,
		&pereval.CoordsID,
		&pereval.LevelID,
		&user.Email,
		&user.Fam,
		&user.Name,
		&user.Otc,
		&user.Phone,
		&coords.Latitude,
		&coords.Longitude,
		&coords.Height,
		&level.Winter,
		&level.Summer,
		&level.Autumn,
		&level.Spring,
	)
	if err != nil {
		return nil, err
	}

	user.ID = pereval.UserID
	coords.ID = pereval.CoordsID
	level.ID = pereval.LevelID
	pereval.User = &user
	pereval.Coords = &coords
	pereval.Level = &level
	return &pereval, nil
}

func (r *postgresPerevalRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Pereval, error) {
	query := `SELECT` + perevalSelectColumns + perevalSelectJoins + ` WHERE p.id = $1`

	pereval, err := scanPereval(r.getExecutor(exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerevalNotFound
		}
		return nil, fmt.Errorf("failed to scan pereval %d: %w", id, err)
	}
	return pereval, nil
}

func (r *postgresPerevalRepository) LockByID(ctx context.Context, exec SQLExecutor, id int) (*models.Pereval, error) {
	// Блокируется только строка перевала; coords и levels принадлежат ему
	// эксклюзивно, поэтому этого достаточно для всего обновления.
	query := `SELECT` + perevalSelectColumns + perevalSelectJoins + ` WHERE p.id = $1 FOR UPDATE OF p`

	pereval, err := scanPereval(r.getExecutor(exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerevalNotFound
		}
		return nil, fmt.Errorf("failed to lock pereval %d: %w", id, err)
	}
	return pereval, nil
}

func (r *postgresPerevalRepository) ListByUserID(ctx context.Context, exec SQLExecutor, userID int) ([]models.Pereval, error) {
	query := `SELECT` + perevalSelectColumns + perevalSelectJoins + ` WHERE p.user_id = $1 ORDER BY p.add_time ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perevals := make([]models.Pereval, 0)
	for rows.Next() {
		pereval, scanErr := scanPereval(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		perevals = append(perevals, *pereval)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return perevals, nil
}

func (r *postgresPerevalRepository) UpdateCore(ctx context.Context, exec SQLExecutor, pereval *models.Pereval) error {
	// Статус и add_time намеренно не трогаем: add_time неизменяем,
	// статус меняется только модерацией.
	query := `
		UPDATE perevals SET
			beauty_title = $1,
			title = $2,
			other_titles = $3,
			connect = $4
		WHERE id = $5`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		pereval.BeautyTitle,
		pereval.Title,
		pereval.OtherTitles,
		pereval.Connect,
		pereval.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPerevalNotFound)
}
