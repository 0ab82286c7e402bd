package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/pereval-api/models"
	"github.com/Dosada05/pereval-api/repositories"
	"github.com/Dosada05/pereval-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Заглушка database/sql драйвера ---
// Репозитории в тестах — in-memory, но сервис управляет транзакциями через
// *sql.DB, поэтому нужен драйвер, у которого Begin/Commit/Rollback — no-op.

type stubDriver struct{}

func (stubDriver) Open(name string) (driver.Conn, error) { return &stubConn{}, nil }

type stubConn struct{}

func (*stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("not supported by stub driver")
}
func (*stubConn) Close() error              { return nil }
func (*stubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

var registerStubDriver sync.Once

func newStubDB(t *testing.T) *sql.DB {
	t.Helper()
	registerStubDriver.Do(func() { sql.Register("stub", stubDriver{}) })
	db, err := sql.Open("stub", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// --- In-memory хранилище, реализующее все репозитории ---

type fakeStore struct {
	usersByEmail map[string]*models.User
	usersByID    map[int]*models.User
	coords       map[int]*models.Coords
	levels       map[int]*models.Level
	perevals     map[int]*models.Pereval
	images       map[int][]models.Image
	nextID       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[int]*models.User),
		coords:       make(map[int]*models.Coords),
		levels:       make(map[int]*models.Level),
		perevals:     make(map[int]*models.Pereval),
		images:       make(map[int][]models.Image),
	}
}

func (f *fakeStore) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Create(ctx context.Context, exec repositories.SQLExecutor, user *models.User) error {
	user.ID = f.id()
	stored := *user
	f.usersByEmail[user.Email] = &stored
	f.usersByID[user.ID] = &stored
	return nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, exec repositories.SQLExecutor, email string) (*models.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeStore) CreateCoords(ctx context.Context, exec repositories.SQLExecutor, coords *models.Coords) error {
	coords.ID = f.id()
	stored := *coords
	f.coords[coords.ID] = &stored
	return nil
}

func (f *fakeStore) UpdateCoords(ctx context.Context, exec repositories.SQLExecutor, coords *models.Coords) error {
	if _, ok := f.coords[coords.ID]; !ok {
		return repositories.ErrCoordsNotFound
	}
	stored := *coords
	f.coords[coords.ID] = &stored
	return nil
}

func (f *fakeStore) CreateLevel(ctx context.Context, exec repositories.SQLExecutor, level *models.Level) error {
	level.ID = f.id()
	stored := *level
	f.levels[level.ID] = &stored
	return nil
}

func (f *fakeStore) UpdateLevel(ctx context.Context, exec repositories.SQLExecutor, level *models.Level) error {
	if _, ok := f.levels[level.ID]; !ok {
		return repositories.ErrLevelNotFound
	}
	stored := *level
	f.levels[level.ID] = &stored
	return nil
}

func (f *fakeStore) CreatePereval(ctx context.Context, exec repositories.SQLExecutor, pereval *models.Pereval) error {
	pereval.ID = f.id()
	pereval.AddTime = time.Now()
	stored := *pereval
	stored.User, stored.Coords, stored.Level, stored.Images = nil, nil, nil, nil
	f.perevals[pereval.ID] = &stored
	return nil
}

func (f *fakeStore) denormalize(stored *models.Pereval) *models.Pereval {
	cp := *stored
	user := *f.usersByID[stored.UserID]
	coords := *f.coords[stored.CoordsID]
	level := *f.levels[stored.LevelID]
	cp.User, cp.Coords, cp.Level = &user, &coords, &level
	return &cp
}

func (f *fakeStore) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Pereval, error) {
	stored, ok := f.perevals[id]
	if !ok {
		return nil, repositories.ErrPerevalNotFound
	}
	return f.denormalize(stored), nil
}

func (f *fakeStore) LockByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Pereval, error) {
	return f.GetByID(ctx, exec, id)
}

func (f *fakeStore) ListByUserID(ctx context.Context, exec repositories.SQLExecutor, userID int) ([]models.Pereval, error) {
	result := make([]models.Pereval, 0)
	for id := 1; id <= f.nextID; id++ {
		if stored, ok := f.perevals[id]; ok && stored.UserID == userID {
			result = append(result, *f.denormalize(stored))
		}
	}
	return result, nil
}

func (f *fakeStore) UpdateCore(ctx context.Context, exec repositories.SQLExecutor, pereval *models.Pereval) error {
	stored, ok := f.perevals[pereval.ID]
	if !ok {
		return repositories.ErrPerevalNotFound
	}
	stored.BeautyTitle = pereval.BeautyTitle
	stored.Title = pereval.Title
	stored.OtherTitles = pereval.OtherTitles
	stored.Connect = pereval.Connect
	return nil
}

func (f *fakeStore) CreateImage(ctx context.Context, exec repositories.SQLExecutor, perevalID int, image *models.Image) error {
	image.ID = f.id()
	image.DateAdded = time.Now()
	f.images[perevalID] = append(f.images[perevalID], *image)
	return nil
}

func (f *fakeStore) ListByPerevalID(ctx context.Context, exec repositories.SQLExecutor, perevalID int) ([]models.Image, error) {
	return append([]models.Image{}, f.images[perevalID]...), nil
}

// Раздельные обёртки, чтобы один fakeStore удовлетворял всем интерфейсам
// репозиториев с одноимёнными методами Create/Update.

type fakeCoordsRepo struct{ store *fakeStore }

func (r fakeCoordsRepo) Create(ctx context.Context, exec repositories.SQLExecutor, c *models.Coords) error {
	return r.store.CreateCoords(ctx, exec, c)
}
func (r fakeCoordsRepo) Update(ctx context.Context, exec repositories.SQLExecutor, c *models.Coords) error {
	return r.store.UpdateCoords(ctx, exec, c)
}

type fakeLevelRepo struct{ store *fakeStore }

func (r fakeLevelRepo) Create(ctx context.Context, exec repositories.SQLExecutor, l *models.Level) error {
	return r.store.CreateLevel(ctx, exec, l)
}
func (r fakeLevelRepo) Update(ctx context.Context, exec repositories.SQLExecutor, l *models.Level) error {
	return r.store.UpdateLevel(ctx, exec, l)
}

type fakePerevalRepo struct{ store *fakeStore }

func (r fakePerevalRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.Pereval) error {
	return r.store.CreatePereval(ctx, exec, p)
}
func (r fakePerevalRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Pereval, error) {
	return r.store.GetByID(ctx, exec, id)
}
func (r fakePerevalRepo) LockByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Pereval, error) {
	return r.store.LockByID(ctx, exec, id)
}
func (r fakePerevalRepo) ListByUserID(ctx context.Context, exec repositories.SQLExecutor, userID int) ([]models.Pereval, error) {
	return r.store.ListByUserID(ctx, exec, userID)
}
func (r fakePerevalRepo) UpdateCore(ctx context.Context, exec repositories.SQLExecutor, p *models.Pereval) error {
	return r.store.UpdateCore(ctx, exec, p)
}

type fakeImageRepo struct{ store *fakeStore }

func (r fakeImageRepo) Create(ctx context.Context, exec repositories.SQLExecutor, perevalID int, img *models.Image) error {
	return r.store.CreateImage(ctx, exec, perevalID, img)
}
func (r fakeImageRepo) ListByPerevalID(ctx context.Context, exec repositories.SQLExecutor, perevalID int) ([]models.Image, error) {
	return r.store.ListByPerevalID(ctx, exec, perevalID)
}

// --- Заглушка хранилища файлов ---

type fakeUploader struct {
	mu       sync.Mutex
	uploads  map[string][]byte
	deleted  []string
	failWith error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failWith != nil {
		return nil, u.failWith
	}
	payload, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.uploads[key] = payload
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, key)
	delete(u.uploads, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://img.example.com/" + key
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(eventType string, payload interface{}) {
	p.events = append(p.events, eventType)
}

type serviceFixture struct {
	service   PerevalService
	store     *fakeStore
	uploader  *fakeUploader
	publisher *recordingPublisher
}

func newServiceFixture(t *testing.T) *serviceFixture {
	store := newFakeStore()
	uploader := newFakeUploader()
	publisher := &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewPerevalService(
		newStubDB(t),
		store,
		fakeCoordsRepo{store},
		fakeLevelRepo{store},
		fakePerevalRepo{store},
		fakeImageRepo{store},
		uploader,
		publisher,
		logger,
	)
	return &serviceFixture{service: service, store: store, uploader: uploader, publisher: publisher}
}

// --- Тесты ---

func TestSubmitDataAndFetchRoundTrip(t *testing.T) {
	f := newServiceFixture(t)

	req := validSubmitRequest()
	req.Images = []ImagePayload{
		{Title: "Седловина", Data: "data:image/png;base64," + pngPixelBase64},
		{Title: "Подъём", Data: "opaque-blob-reference"},
	}

	result := f.service.SubmitData(context.Background(), req)
	require.Equal(t, 200, result.Status, "message: %v", result.Message)
	require.NotNil(t, result.ID)
	assert.Nil(t, result.Message)

	fetched := f.service.GetPerevalByID(context.Background(), *result.ID)
	require.Equal(t, 200, fetched.Status)
	require.NotNil(t, fetched.PerevalView)
	require.NotNil(t, fetched.ID)
	assert.Equal(t, *result.ID, *fetched.ID)

	assert.Equal(t, "пер. ", fetched.BeautyTitle)
	assert.Equal(t, "Пхия", fetched.Title)
	assert.Equal(t, "Триев", fetched.OtherTitles)
	assert.Equal(t, "соединяет долины", fetched.Connect)
	assert.Equal(t, models.StatusNew, fetched.PerevalView.Status)
	assert.False(t, fetched.AddTime.IsZero())

	assert.Equal(t, "qwerty@mail.ru", fetched.User.Email)
	assert.Equal(t, "Пупкин", fetched.User.Fam)
	assert.Equal(t, 45.3842, fetched.Coords.Latitude)
	assert.Equal(t, 7.1525, fetched.Coords.Longitude)
	assert.Equal(t, 1200, fetched.Coords.Height)
	assert.Equal(t, "1А", fetched.Level.Summer)
	assert.Equal(t, "", fetched.Level.Winter)

	require.Len(t, fetched.Images, 2)
	titles := []string{fetched.Images[0].Title, fetched.Images[1].Title}
	assert.ElementsMatch(t, []string{"Седловина", "Подъём"}, titles)
	for _, img := range fetched.Images {
		switch img.Title {
		case "Седловина":
			// data-URI декодируется и заменяется публичной ссылкой хранилища.
			assert.Contains(t, img.Data, "https://img.example.com/pereval_images/")
		case "Подъём":
			assert.Equal(t, "opaque-blob-reference", img.Data)
		}
	}

	assert.Len(t, f.uploader.uploads, 1)
	assert.Equal(t, []string{EventPerevalCreated}, f.publisher.events)
}

func TestSubmitDataValidationFailure(t *testing.T) {
	f := newServiceFixture(t)

	req := validSubmitRequest()
	req.Title = nil

	result := f.service.SubmitData(context.Background(), req)
	assert.Equal(t, 400, result.Status)
	assert.Nil(t, result.ID)
	require.NotNil(t, result.Message)
	assert.Equal(t, "Отсутствует обязательное поле: title", *result.Message)
	assert.Empty(t, f.store.perevals, "запись не должна создаваться при ошибке валидации")
}

func TestSubmitDataInvalidImageData(t *testing.T) {
	f := newServiceFixture(t)

	req := validSubmitRequest()
	req.Images = []ImagePayload{{Title: "Фото", Data: "data:image/png;base64,not-valid!!!"}}

	result := f.service.SubmitData(context.Background(), req)
	assert.Equal(t, 400, result.Status)
	assert.Nil(t, result.ID)
	require.NotNil(t, result.Message)
	assert.Contains(t, *result.Message, "некорректные base64-данные")
}

func TestSubmitDataUploadFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.uploader.failWith = errors.New("bucket unavailable")

	req := validSubmitRequest()
	req.Images = []ImagePayload{{Title: "Фото", Data: "data:image/png;base64," + pngPixelBase64}}

	result := f.service.SubmitData(context.Background(), req)
	assert.Equal(t, 500, result.Status)
	assert.Nil(t, result.ID)
	require.NotNil(t, result.Message)
	assert.Contains(t, *result.Message, "bucket unavailable")
	assert.Empty(t, f.publisher.events)
}

func TestSubmitDataReusesExistingReporter(t *testing.T) {
	f := newServiceFixture(t)

	first := f.service.SubmitData(context.Background(), validSubmitRequest())
	require.Equal(t, 200, first.Status)

	second := validSubmitRequest()
	second.Title = strPtr("Второй перевал")
	second.User.Fam = strPtr("Другая")
	second.User.Phone = strPtr("+7 000 00 00")

	result := f.service.SubmitData(context.Background(), second)
	require.Equal(t, 200, result.Status)
	require.NotNil(t, result.ID)

	// Один пользователь на два перевала; поля второй заявки игнорируются.
	assert.Len(t, f.store.usersByEmail, 1)
	fetched := f.service.GetPerevalByID(context.Background(), *result.ID)
	require.Equal(t, 200, fetched.Status)
	assert.Equal(t, "Пупкин", fetched.User.Fam)
	assert.Equal(t, "+7 555 55 55", fetched.User.Phone)
}

func TestGetPerevalByIDNotFound(t *testing.T) {
	f := newServiceFixture(t)

	result := f.service.GetPerevalByID(context.Background(), 12345)
	assert.Equal(t, 404, result.Status)
	assert.Nil(t, result.ID)
	require.NotNil(t, result.Message)
	assert.Equal(t, "Перевал не найден", *result.Message)
	assert.Nil(t, result.PerevalView)
}

func TestGetPerevalsByEmailUnknown(t *testing.T) {
	f := newServiceFixture(t)

	result := f.service.GetPerevalsByEmail(context.Background(), "nobody@example.com")
	assert.Equal(t, 404, result.Status)
	require.NotNil(t, result.Message)
	assert.Equal(t, "Пользователь с таким email не найден", *result.Message)
	require.NotNil(t, result.Perevals, "perevals должен быть пустым списком, а не null")
	assert.Empty(t, result.Perevals)
}

func TestGetPerevalsByEmail(t *testing.T) {
	f := newServiceFixture(t)

	require.Equal(t, 200, f.service.SubmitData(context.Background(), validSubmitRequest()).Status)
	second := validSubmitRequest()
	second.Title = strPtr("Второй перевал")
	require.Equal(t, 200, f.service.SubmitData(context.Background(), second).Status)

	result := f.service.GetPerevalsByEmail(context.Background(), "qwerty@mail.ru")
	require.Equal(t, 200, result.Status)
	assert.Nil(t, result.Message)
	require.Len(t, result.Perevals, 2)

	assert.Equal(t, "Пхия", result.Perevals[0].Title)
	assert.Equal(t, "Второй перевал", result.Perevals[1].Title)
	for _, item := range result.Perevals {
		assert.NotZero(t, item.ID)
		assert.Equal(t, models.StatusNew, item.Status)
		assert.Equal(t, "qwerty@mail.ru", item.User.Email)
		assert.Len(t, item.Images, 1)
	}
}

func submitOne(t *testing.T, f *serviceFixture) int {
	t.Helper()
	result := f.service.SubmitData(context.Background(), validSubmitRequest())
	require.Equal(t, 200, result.Status)
	require.NotNil(t, result.ID)
	return *result.ID
}

func TestUpdatePerevalNotFound(t *testing.T) {
	f := newServiceFixture(t)

	result := f.service.UpdatePereval(context.Background(), 777, UpdateRequest{Title: strPtr("x")})
	assert.Equal(t, 0, result.State)
	assert.Equal(t, "Перевал не найден", result.Message)
}

func TestUpdatePerevalForbiddenWhenNotNew(t *testing.T) {
	f := newServiceFixture(t)
	id := submitOne(t, f)

	for _, status := range []models.PerevalStatus{models.StatusPending, models.StatusAccepted, models.StatusRejected} {
		f.store.perevals[id].Status = status

		result := f.service.UpdatePereval(context.Background(), id, UpdateRequest{Title: strPtr("Новое имя")})
		assert.Equal(t, 0, result.State)
		assert.Contains(t, result.Message, "Редактирование запрещено")
	}

	// Запись не должна была измениться.
	fetched := f.service.GetPerevalByID(context.Background(), id)
	assert.Equal(t, "Пхия", fetched.Title)
}

func TestUpdatePerevalPersonalDataForbidden(t *testing.T) {
	f := newServiceFixture(t)
	id := submitOne(t, f)

	result := f.service.UpdatePereval(context.Background(), id, UpdateRequest{
		Title: strPtr("Новое имя"),
		User:  &UserPayload{Phone: strPtr("+7 111 11 11")},
	})
	assert.Equal(t, 0, result.State)
	assert.Equal(t, "Редактирование персональных данных запрещено", result.Message)

	// Отказ целиком: даже разрешённые поля не применяются.
	fetched := f.service.GetPerevalByID(context.Background(), id)
	assert.Equal(t, "Пхия", fetched.Title)

	// Пустой объект user ключей не содержит и не блокирует обновление.
	result = f.service.UpdatePereval(context.Background(), id, UpdateRequest{
		Title: strPtr("Новое имя"),
		User:  &UserPayload{},
	})
	assert.Equal(t, 1, result.State)
}

func TestUpdatePerevalPartialLevelMerge(t *testing.T) {
	f := newServiceFixture(t)
	id := submitOne(t, f)

	result := f.service.UpdatePereval(context.Background(), id, UpdateRequest{
		Level: &LevelPayload{Winter: strPtr("2А")},
	})
	require.Equal(t, 1, result.State)
	assert.Equal(t, "Запись успешно обновлена", result.Message)

	fetched := f.service.GetPerevalByID(context.Background(), id)
	require.Equal(t, 200, fetched.Status)
	assert.Equal(t, "2А", fetched.Level.Winter)
	assert.Equal(t, "1А", fetched.Level.Summer)
	assert.Equal(t, "1А", fetched.Level.Autumn)
	assert.Equal(t, "", fetched.Level.Spring)
}

func TestUpdatePerevalPartialCoordsAndScalars(t *testing.T) {
	f := newServiceFixture(t)
	id := submitOne(t, f)

	result := f.service.UpdatePereval(context.Background(), id, UpdateRequest{
		Title:  strPtr("Пхия (уточнено)"),
		Coords: &CoordsPayload{Height: intPtr(1300)},
	})
	require.Equal(t, 1, result.State)

	fetched := f.service.GetPerevalByID(context.Background(), id)
	assert.Equal(t, "Пхия (уточнено)", fetched.Title)
	assert.Equal(t, "пер. ", fetched.BeautyTitle)
	assert.Equal(t, 1300, fetched.Coords.Height)
	assert.Equal(t, 45.3842, fetched.Coords.Latitude)
	assert.Equal(t, 7.1525, fetched.Coords.Longitude)

	assert.Contains(t, f.publisher.events, EventPerevalUpdated)
}
