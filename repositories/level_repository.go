package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/pereval-api/models"
)

var ErrLevelNotFound = errors.New("level not found")

type LevelRepository interface {
	Create(ctx context.Context, exec SQLExecutor, level *models.Level) error
	Update(ctx context.Context, exec SQLExecutor, level *models.Level) error
}

type postgresLevelRepository struct {
	db *sql.DB
}

func NewPostgresLevelRepository(db *sql.DB) LevelRepository {
	return &postgresLevelRepository{db: db}
}

func (r *postgresLevelRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresLevelRepository) Create(ctx context.Context, exec SQLExecutor, level *models.Level) error {
	query := `
		INSERT INTO levels (winter, summer, autumn, spring)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.getExecutor(exec).QueryRowContext(ctx, query,
		level.Winter,
		level.Summer,
		level.Autumn,
		level.Spring,
	).Scan(&level.ID)
}

func (r *postgresLevelRepository) Update(ctx context.Context, exec SQLExecutor, level *models.Level) error {
	query := `
		UPDATE levels SET
			winter = $1,
			summer = $2,
			autumn = $3,
			spring = $4
		WHERE id = $5`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		level.Winter,
		level.Summer,
		level.Autumn,
		level.Spring,
		level.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrLevelNotFound)
}
