package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/pereval-api/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
)

type UserRepository interface {
	Create(ctx context.Context, exec SQLExecutor, user *models.User) error
	GetByEmail(ctx context.Context, exec SQLExecutor, email string) (*models.User, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresUserRepository) Create(ctx context.Context, exec SQLExecutor, user *models.User) error {
	query := `
		INSERT INTO users (email, fam, name, otc, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		user.Email,
		user.Fam,
		user.Name,
		user.Otc,
		user.Phone,
	).Scan(&user.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "users_email_key" {
				return ErrUserEmailConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, exec SQLExecutor, email string) (*models.User, error) {
	query := `
		SELECT id, email, fam, name, otc, phone
		FROM users
		WHERE email = $1`

	user := &models.User{}
	err := r.getExecutor(exec).QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Fam,
		&user.Name,
		&user.Otc,
		&user.Phone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
