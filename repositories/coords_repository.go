package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/pereval-api/models"
)

var ErrCoordsNotFound = errors.New("coords not found")

type CoordsRepository interface {
	Create(ctx context.Context, exec SQLExecutor, coords *models.Coords) error
	Update(ctx context.Context, exec SQLExecutor, coords *models.Coords) error
}

type postgresCoordsRepository struct {
	db *sql.DB
}

func NewPostgresCoordsRepository(db *sql.DB) CoordsRepository {
	return &postgresCoordsRepository{db: db}
}

func (r *postgresCoordsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresCoordsRepository) Create(ctx context.Context, exec SQLExecutor, coords *models.Coords) error {
	query := `
		INSERT INTO coords (latitude, longitude, height)
		VALUES ($1, $2, $3)
		RETURNING id`

	return r.getExecutor(exec).QueryRowContext(ctx, query,
		coords.Latitude,
		coords.Longitude,
		coords.Height,
	).Scan(&coords.ID)
}

func (r *postgresCoordsRepository) Update(ctx context.Context, exec SQLExecutor, coords *models.Coords) error {
	query := `
		UPDATE coords SET
			latitude = $1,
			longitude = $2,
			height = $3
		WHERE id = $4`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		coords.Latitude,
		coords.Longitude,
		coords.Height,
		coords.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCoordsNotFound)
}
