package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/pereval-api/models"
)

type ImageRepository interface {
	// Create вставляет изображение и сразу связывает его с перевалом
	// через таблицу pereval_images.
	Create(ctx context.Context, exec SQLExecutor, perevalID int, image *models.Image) error
	ListByPerevalID(ctx context.Context, exec SQLExecutor, perevalID int) ([]models.Image, error)
}

type postgresImageRepository struct {
	db *sql.DB
}

func NewPostgresImageRepository(db *sql.DB) ImageRepository {
	return &postgresImageRepository{db: db}
}

func (r *postgresImageRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresImageRepository) Create(ctx context.Context, exec SQLExecutor, perevalID int, image *models.Image) error {
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO images (img, title)
		VALUES ($1, $2)
		RETURNING id, date_added`

	err := executor.QueryRowContext(ctx, query, image.Img, image.Title).
		Scan(&image.ID, &image.DateAdded)
	if err != nil {
		return err
	}

	linkQuery := `INSERT INTO pereval_images (pereval_id, image_id) VALUES ($1, $2)`
	_, err = executor.ExecContext(ctx, linkQuery, perevalID, image.ID)
	return err
}

func (r *postgresImageRepository) ListByPerevalID(ctx context.Context, exec SQLExecutor, perevalID int) ([]models.Image, error) {
	query := `
		SELECT i.id, i.img, i.title, i.date_added
		FROM images i
		JOIN pereval_images pi ON pi.image_id = i.id
		WHERE pi.pereval_id = $1
		ORDER BY i.id ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, perevalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]models.Image, 0)
	for rows.Next() {
		var image models.Image
		if scanErr := rows.Scan(&image.ID, &image.Img, &image.Title, &image.DateAdded); scanErr != nil {
			return nil, scanErr
		}
		images = append(images, image)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return images, nil
}
