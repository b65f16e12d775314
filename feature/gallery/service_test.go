package gallery_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gallery-index/core/database"
	"gallery-index/feature/albums"
	"gallery-index/feature/gallery"
	"gallery-index/feature/gallery/models"
	galleryreconcile "gallery-index/feature/gallery/reconcile"
	"gallery-index/feature/notification"
	"gallery-index/feature/persons"
	"gallery-index/feature/scanner"
	"gallery-index/feature/version"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Scan(ctx context.Context, rel string) (*models.DirectorySnapshot, error) {
	args := m.Called(ctx, rel)
	snap, _ := args.Get(0).(*models.DirectorySnapshot)
	return snap, args.Error(1)
}

func (m *mockProducer) ReadAuxFile(ctx context.Context, relDir, fileName string) ([]byte, error) {
	args := m.Called(ctx, relDir, fileName)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type fixture struct {
	db       *gorm.DB
	producer *mockProducer
	sink     *notification.Manager
	version  *version.Service
	albums   *albums.Service
	service  *gallery.Service
}

func setup(t *testing.T, engine gallery.Reconciler) *fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, append(models.All(), &version.DataVersion{}, &albums.SavedSearch{})...))

	conn := database.NewStaticConnector(db)
	log := zap.NewNop()
	personSvc := persons.NewService(conn, log)
	if engine == nil {
		engine = galleryreconcile.NewEngine(conn, personSvc, log)
	}

	f := &fixture{
		db:       db,
		producer: new(mockProducer),
		sink:     notification.NewManager(log, 10),
		version:  version.NewService(conn, log),
		albums:   albums.NewService(conn, log),
	}
	f.service = gallery.NewService(gallery.Deps{
		Conn:        conn,
		Producer:    f.producer,
		Engine:      engine,
		Persons:     personSvc,
		Version:     f.version,
		SavedSearch: f.albums,
		Sink:        f.sink,
		Logger:      log,
	})
	return f
}

func (f *fixture) start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	f.service.Start(ctx)
}

func (f *fixture) waitReady(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.service.WaitReady(ctx))
}

func vacationSnapshot() *models.DirectorySnapshot {
	scanned := int64(2000)
	return &models.DirectorySnapshot{
		Name:         "vacation",
		Path:         "./",
		LastModified: 1000,
		LastScanned:  &scanned,
		MediaCount:   2,
		Media: []*models.MediaRecord{
			{Name: "a.jpg", Kind: models.KindPhoto, Photo: &models.PhotoMetadata{Size: 1}, ReadyIcon: true,
				Faces: []models.FaceRegion{{Box: models.Box{Top: 10, Left: 10, Width: 50, Height: 50}, Name: "Alice"}}},
			{Name: "c.mp4", Kind: models.KindVideo, Video: &models.VideoMetadata{Size: 2}},
		},
		MetaFiles: []*models.AuxFile{{Name: "track.gpx"}, {Name: models.SavedSearchesFile}},
	}
}

func TestService_IndexDirectory(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	f.producer.On("Scan", mock.Anything, "vacation").Return(vacationSnapshot(), nil)
	f.producer.On("ReadAuxFile", mock.Anything, "vacation", models.SavedSearchesFile).
		Return([]byte(`[{"name":"Beach","searchQuery":{"text":"beach"}}]`), nil)

	// The snapshot comes back before the save queue even runs
	snap, err := f.service.IndexDirectory(ctx, "vacation")
	require.NoError(t, err)
	require.Len(t, snap.MetaFiles, 1)
	assert.Equal(t, "track.gpx", snap.MetaFiles[0].Name)
	assert.False(t, snap.Media[0].ReadyIcon)
	assert.Equal(t, gallery.Status{Saving: true, Pending: 1}, f.service.Status())

	f.start(t)
	f.waitReady(t)
	assert.Equal(t, gallery.Status{}, f.service.Status())

	var media int64
	f.db.Model(&models.Media{}).Count(&media)
	assert.Equal(t, int64(2), media)

	v, err := f.version.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	list, err := f.albums.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beach", list[0].Name)
	assert.True(t, list[0].Locked)

	var files []string
	f.db.Model(&models.File{}).Pluck("name", &files)
	assert.Equal(t, []string{"track.gpx"}, files)

	var counts []int
	f.db.Table("persons").Pluck("face_count", &counts)
	assert.Equal(t, []int{1}, counts, "person registry refreshed after save")

	assert.Empty(t, f.sink.List())
	f.producer.AssertExpectations(t)
}

func TestService_ScanFailure(t *testing.T) {
	f := setup(t, nil)
	f.producer.On("Scan", mock.Anything, "gone").Return(nil, scanner.ErrNotFound)

	snap, err := f.service.IndexDirectory(context.Background(), "gone")
	assert.Nil(t, snap)

	var serr *gallery.ScanError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "gone", serr.Path)
	assert.ErrorIs(t, err, scanner.ErrNotFound)

	require.Len(t, f.sink.List(), 1)
	assert.Equal(t, 0, f.service.Status().Pending)
}

type stubEngine struct {
	calls atomic.Int32
	err   error
}

func (s *stubEngine) Reconcile(ctx context.Context, snap *models.DirectorySnapshot) (*galleryreconcile.Stats, error) {
	s.calls.Add(1)
	return &galleryreconcile.Stats{}, s.err
}

func TestService_CoalescesIdenticalScans(t *testing.T) {
	engine := &stubEngine{}
	f := setup(t, engine)
	f.producer.On("Scan", mock.Anything, "vacation").Return(vacationSnapshot(), nil)
	f.producer.On("ReadAuxFile", mock.Anything, "vacation", models.SavedSearchesFile).Return([]byte(`[]`), nil)

	for i := 0; i < 3; i++ {
		_, err := f.service.IndexDirectory(context.Background(), "vacation")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.service.Status().Pending)

	f.start(t)
	f.waitReady(t)
	assert.Equal(t, int32(1), engine.calls.Load())
}

func TestService_SaveFailureIsReported(t *testing.T) {
	engine := &stubEngine{err: errors.New("database is locked")}
	f := setup(t, engine)
	f.producer.On("Scan", mock.Anything, "vacation").Return(vacationSnapshot(), nil)

	snap, err := f.service.IndexDirectory(context.Background(), "vacation")
	require.NoError(t, err, "persistence errors never reach the caller")
	assert.NotNil(t, snap)

	f.start(t)
	f.waitReady(t)

	notes := f.sink.List()
	require.Len(t, notes, 1)
	assert.Equal(t, "Failed to save ./vacation to the index", notes[0].Message)
	assert.Contains(t, notes[0].Details, "database is locked")

	v, err := f.version.Current(context.Background())
	require.NoError(t, err)
	assert.Zero(t, v, "hooks do not run for failed saves")
}

func TestService_BrokenServerSideConfig(t *testing.T) {
	f := setup(t, nil)
	f.producer.On("Scan", mock.Anything, "vacation").Return(vacationSnapshot(), nil)
	f.producer.On("ReadAuxFile", mock.Anything, "vacation", models.SavedSearchesFile).Return([]byte(`{not json`), nil)

	_, err := f.service.IndexDirectory(context.Background(), "vacation")
	require.NoError(t, err)
	f.start(t)
	f.waitReady(t)

	notes := f.sink.List()
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, models.SavedSearchesFile)

	var dirs int64
	f.db.Model(&models.Directory{}).Count(&dirs)
	assert.Equal(t, int64(1), dirs, "the directory itself is saved")
}

func TestService_ResetIndex(t *testing.T) {
	f := setup(t, nil)
	f.producer.On("Scan", mock.Anything, "vacation").Return(vacationSnapshot(), nil)
	f.producer.On("ReadAuxFile", mock.Anything, "vacation", models.SavedSearchesFile).Return([]byte(`[]`), nil)

	_, err := f.service.IndexDirectory(context.Background(), "vacation")
	require.NoError(t, err)
	f.start(t)
	f.waitReady(t)

	require.NoError(t, f.service.ResetIndex(context.Background()))

	for _, model := range []any{&models.Directory{}, &models.Media{}, &models.Face{}, &models.PhotoDetails{}} {
		var n int64
		f.db.Model(model).Count(&n)
		assert.Zero(t, n)
	}
	v, err := f.version.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestHandler(t *testing.T) {
	f := setup(t, &stubEngine{})
	f.producer.On("Scan", mock.Anything, "vacation/day 1").Return(vacationSnapshot(), nil)
	f.producer.On("Scan", mock.Anything, "missing").Return(nil, scanner.ErrNotFound)
	f.producer.On("Scan", mock.Anything, "../x").Return(nil, scanner.ErrOutsideRoot)
	f.producer.On("Scan", mock.Anything, "broken").Return(nil, errors.New("io error"))

	app := fiber.New()
	feature := gallery.NewFeature(f.service)
	assert.Equal(t, "gallery", feature.Name())
	require.NoError(t, feature.Load(app))

	tests := []struct {
		method string
		target string
		status int
	}{
		{"GET", "/gallery/content/vacation/day%201", 200},
		{"GET", "/gallery/content/missing", 404},
		{"GET", "/gallery/content/..%2Fx", 400},
		{"GET", "/gallery/content/broken", 500},
		{"GET", "/gallery/index/status", 200},
		{"DELETE", "/gallery/index", 200},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
