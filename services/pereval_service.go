package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/pereval-api/models"
	"github.com/Dosada05/pereval-api/repositories"
	"github.com/Dosada05/pereval-api/storage"
	"golang.org/x/sync/errgroup"
)

// EventPublisher уведомляет подписчиков о жизненном цикле заявок
// (реализуется websocket-хабом, см. пакет feed).
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

const (
	EventPerevalCreated = "PEREVAL_CREATED"
	EventPerevalUpdated = "PEREVAL_UPDATED"
)

// PerevalService — ядро сервиса. Каждая операция принимает уже
// распарсенный запрос и возвращает готовый объект результата со
// status/state кодом; ошибки наружу не пробрасываются.
type PerevalService interface {
	SubmitData(ctx context.Context, req SubmitRequest) SubmitResult
	GetPerevalByID(ctx context.Context, id int) FetchResult
	GetPerevalsByEmail(ctx context.Context, email string) SearchResult
	UpdatePereval(ctx context.Context, id int, req UpdateRequest) UpdateResult
}

type perevalService struct {
	db          *sql.DB
	userRepo    repositories.UserRepository
	coordsRepo  repositories.CoordsRepository
	levelRepo   repositories.LevelRepository
	perevalRepo repositories.PerevalRepository
	imageRepo   repositories.ImageRepository
	uploader    storage.FileUploader
	publisher   EventPublisher
	logger      *slog.Logger
}

func NewPerevalService(
	db *sql.DB,
	userRepo repositories.UserRepository,
	coordsRepo repositories.CoordsRepository,
	levelRepo repositories.LevelRepository,
	perevalRepo repositories.PerevalRepository,
	imageRepo repositories.ImageRepository,
	uploader storage.FileUploader,
	publisher EventPublisher,
	logger *slog.Logger,
) PerevalService {
	return &perevalService{
		db:          db,
		userRepo:    userRepo,
		coordsRepo:  coordsRepo,
		levelRepo:   levelRepo,
		perevalRepo: perevalRepo,
		imageRepo:   imageRepo,
		uploader:    uploader,
		publisher:   publisher,
		logger:      logger,
	}
}

func submitError(status int, err error) SubmitResult {
	message := err.Error()
	return SubmitResult{Status: status, Message: &message}
}

// SubmitData создаёт заявку целиком в одной транзакции: пользователь
// (существующий по email используется как есть, присланные поля
// игнорируются), координаты, уровень, сама запись и изображения.
// Статус всегда принудительно "new".
func (s *perevalService) SubmitData(ctx context.Context, req SubmitRequest) SubmitResult {
	if err := validateSubmitRequest(&req); err != nil {
		return submitError(400, err)
	}

	decoded := make([]*decodedImage, 0, len(req.Images))
	for _, payload := range req.Images {
		img, err := decodeImageData(payload)
		if err != nil {
			return submitError(400, err)
		}
		decoded = append(decoded, img)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return submitError(500, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	user, err := s.userRepo.GetByEmail(ctx, tx, *req.User.Email)
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		user = &models.User{
			Email: *req.User.Email,
			Fam:   *req.User.Fam,
			Name:  *req.User.Name,
			Otc:   *req.User.Otc,
			Phone: *req.User.Phone,
		}
		if err = s.userRepo.Create(ctx, tx, user); err != nil {
			return submitError(500, err)
		}
	case err != nil:
		return submitError(500, err)
	}

	coords := &models.Coords{
		Latitude:  *req.Coords.Latitude,
		Longitude: *req.Coords.Longitude,
		Height:    *req.Coords.Height,
	}
	if err = s.coordsRepo.Create(ctx, tx, coords); err != nil {
		return submitError(500, err)
	}

	level := &models.Level{
		Winter: *req.Level.Winter,
		Summer: *req.Level.Summer,
		Autumn: *req.Level.Autumn,
		Spring: *req.Level.Spring,
	}
	if err = s.levelRepo.Create(ctx, tx, level); err != nil {
		return submitError(500, err)
	}

	pereval := &models.Pereval{
		BeautyTitle: *req.BeautyTitle,
		Title:       *req.Title,
		OtherTitles: *req.OtherTitles,
		Connect:     *req.Connect,
		Status:      models.StatusNew,
		UserID:      user.ID,
		CoordsID:    coords.ID,
		LevelID:     level.ID,
	}
	if err = s.perevalRepo.Create(ctx, tx, pereval); err != nil {
		return submitError(500, err)
	}

	uploadedKeys, err := s.uploadImages(ctx, pereval.ID, decoded)
	if err != nil {
		s.cleanupUploads(uploadedKeys)
		return submitError(500, err)
	}

	for _, img := range decoded {
		image := &models.Image{Img: img.Raw, Title: img.Title}
		if err = s.imageRepo.Create(ctx, tx, pereval.ID, image); err != nil {
			s.cleanupUploads(uploadedKeys)
			return submitError(500, err)
		}
	}

	if err = tx.Commit(); err != nil {
		s.cleanupUploads(uploadedKeys)
		return submitError(500, fmt.Errorf("failed to commit transaction: %w", err))
	}

	s.publish(EventPerevalCreated, map[string]interface{}{
		"id":     pereval.ID,
		"title":  pereval.Title,
		"status": pereval.Status,
	})

	id := pereval.ID
	return SubmitResult{Status: 200, ID: &id}
}

// uploadImages загружает декодированные data-URI изображения в хранилище
// параллельно. Сырые строки пропускаются и сохраняются в БД как есть.
func (s *perevalService) uploadImages(ctx context.Context, perevalID int, images []*decodedImage) ([]string, error) {
	g, gCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	uploaded := make([]string, 0, len(images))

	for _, img := range images {
		if !img.NeedsUpload {
			continue
		}
		img := img
		g.Go(func() error {
			key := imageObjectKey(perevalID, img.Title, img.Ext)
			result, err := s.uploader.Upload(gCtx, key, img.ContentType, bytes.NewReader(img.Payload))
			if err != nil {
				return err
			}
			mu.Lock()
			uploaded = append(uploaded, key)
			mu.Unlock()
			img.Raw = result.Location
			return nil
		})
	}

	err := g.Wait()
	return uploaded, err
}

// cleanupUploads удаляет уже загруженные объекты после отката транзакции.
// Ошибки удаления только логируются: строки БД не закоммичены, поэтому
// осиротевший объект недостижим для читателей.
func (s *perevalService) cleanupUploads(keys []string) {
	for _, key := range keys {
		if err := s.uploader.Delete(context.Background(), key); err != nil {
			s.logger.Error("failed to delete uploaded image after rollback",
				slog.String("key", key), slog.Any("error", err))
		}
	}
}

func (s *perevalService) GetPerevalByID(ctx context.Context, id int) FetchResult {
	pereval, err := s.perevalRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPerevalNotFound) {
			message := ErrPerevalNotFound.Error()
			return FetchResult{Status: 404, Message: &message}
		}
		message := err.Error()
		return FetchResult{Status: 500, Message: &message}
	}

	images, err := s.imageRepo.ListByPerevalID(ctx, nil, id)
	if err != nil {
		message := err.Error()
		return FetchResult{Status: 500, Message: &message}
	}
	pereval.Images = images

	view := viewFromModel(pereval)
	return FetchResult{Status: 200, ID: &pereval.ID, PerevalView: &view}
}

func (s *perevalService) GetPerevalsByEmail(ctx context.Context, email string) SearchResult {
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			message := ErrUserNotFound.Error()
			return SearchResult{Status: 404, Message: &message, Perevals: make([]PerevalListItem, 0)}
		}
		message := err.Error()
		return SearchResult{Status: 500, Message: &message, Perevals: make([]PerevalListItem, 0)}
	}

	perevals, err := s.perevalRepo.ListByUserID(ctx, nil, user.ID)
	if err != nil {
		message := err.Error()
		return SearchResult{Status: 500, Message: &message, Perevals: make([]PerevalListItem, 0)}
	}

	items := make([]PerevalListItem, 0, len(perevals))
	for i := range perevals {
		pereval := &perevals[i]
		images, listErr := s.imageRepo.ListByPerevalID(ctx, nil, pereval.ID)
		if listErr != nil {
			message := listErr.Error()
			return SearchResult{Status: 500, Message: &message, Perevals: make([]PerevalListItem, 0)}
		}
		pereval.Images = images
		items = append(items, PerevalListItem{ID: pereval.ID, PerevalView: viewFromModel(pereval)})
	}
	return SearchResult{Status: 200, Perevals: items}
}

// UpdatePereval выполняет частичное обновление под SELECT ... FOR UPDATE:
// проверка статуса и записи не могут чередоваться с конкурентным
// обновлением той же заявки.
func (s *perevalService) UpdatePereval(ctx context.Context, id int, req UpdateRequest) UpdateResult {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpdateResult{State: 0, Message: err.Error()}
	}
	defer tx.Rollback()

	pereval, err := s.perevalRepo.LockByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPerevalNotFound) {
			return UpdateResult{State: 0, Message: ErrPerevalNotFound.Error()}
		}
		return UpdateResult{State: 0, Message: err.Error()}
	}

	if pereval.Status != models.StatusNew {
		return UpdateResult{State: 0, Message: ErrEditForbiddenStatus.Error()}
	}
	if req.User.hasAnyField() {
		return UpdateResult{State: 0, Message: ErrEditForbiddenPersonalData.Error()}
	}

	if req.Coords != nil {
		if req.Coords.Latitude != nil {
			pereval.Coords.Latitude = *req.Coords.Latitude
		}
		if req.Coords.Longitude != nil {
			pereval.Coords.Longitude = *req.Coords.Longitude
		}
		if req.Coords.Height != nil {
			pereval.Coords.Height = *req.Coords.Height
		}
		if err = s.coordsRepo.Update(ctx, tx, pereval.Coords); err != nil {
			return UpdateResult{State: 0, Message: err.Error()}
		}
	}

	if req.Level != nil {
		if req.Level.Winter != nil {
			pereval.Level.Winter = *req.Level.Winter
		}
		if req.Level.Summer != nil {
			pereval.Level.Summer = *req.Level.Summer
		}
		if req.Level.Autumn != nil {
			pereval.Level.Autumn = *req.Level.Autumn
		}
		if req.Level.Spring != nil {
			pereval.Level.Spring = *req.Level.Spring
		}
		if err = s.levelRepo.Update(ctx, tx, pereval.Level); err != nil {
			return UpdateResult{State: 0, Message: err.Error()}
		}
	}

	if req.BeautyTitle != nil {
		pereval.BeautyTitle = *req.BeautyTitle
	}
	if req.Title != nil {
		pereval.Title = *req.Title
	}
	if req.OtherTitles != nil {
		pereval.OtherTitles = *req.OtherTitles
	}
	if req.Connect != nil {
		pereval.Connect = *req.Connect
	}
	if err = s.perevalRepo.UpdateCore(ctx, tx, pereval); err != nil {
		return UpdateResult{State: 0, Message: err.Error()}
	}

	if err = tx.Commit(); err != nil {
		return UpdateResult{State: 0, Message: err.Error()}
	}

	s.publish(EventPerevalUpdated, map[string]interface{}{
		"id":     pereval.ID,
		"title":  pereval.Title,
		"status": pereval.Status,
	})

	return UpdateResult{State: 1, Message: "Запись успешно обновлена"}
}

func (s *perevalService) publish(eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(eventType, payload)
}
