package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"classboard-be/internal/dto"
	"classboard-be/internal/entity"
	"classboard-be/internal/repository/contract"
	"classboard-be/internal/repository/memory"
	"classboard-be/internal/repository/specification"
	"classboard-be/internal/repository/unitofwork"
	"classboard-be/pkg/lessondoc"
	"classboard-be/pkg/storage"
	"classboard-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeLessonRepo struct {
	mu        sync.Mutex
	lesson    *entity.Lesson
	saved     [][]byte
	updateErr error
}

func (r *fakeLessonRepo) Create(ctx context.Context, lesson *entity.Lesson) error { return nil }
func (r *fakeLessonRepo) Update(ctx context.Context, lesson *entity.Lesson) error { return nil }
func (r *fakeLessonRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }

func (r *fakeLessonRepo) UpdateText(ctx context.Context, id uuid.UUID, text []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	r.saved = append(r.saved, text)
	return nil
}

func (r *fakeLessonRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lesson, error) {
	return r.lesson, nil
}

func (r *fakeLessonRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lesson, error) {
	return nil, nil
}

func (r *fakeLessonRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeLessonRepo) savedTexts() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte{}, r.saved...)
}

func (r *fakeLessonRepo) setUpdateErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateErr = err
}

type fakeMediaRepo struct {
	mu          sync.Mutex
	created     []*entity.Media
	failCreates int
}

func (r *fakeMediaRepo) Create(ctx context.Context, media *entity.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates > 0 {
		r.failCreates--
		return errors.New("media insert failed")
	}
	r.created = append(r.created, media)
	return nil
}

func (r *fakeMediaRepo) Update(ctx context.Context, media *entity.Media) error { return nil }
func (r *fakeMediaRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (r *fakeMediaRepo) DeleteAllByLessonId(ctx context.Context, lessonId uuid.UUID) error {
	return nil
}

func (r *fakeMediaRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Media, error) {
	return nil, nil
}

func (r *fakeMediaRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Media, error) {
	return nil, nil
}

func (r *fakeMediaRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeUow struct {
	lessons *fakeLessonRepo
	media   *fakeMediaRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository         { return nil }
func (u *fakeUow) CategoryRepository() contract.CategoryRepository { return nil }
func (u *fakeUow) ClassRepository() contract.ClassRepository       { return nil }
func (u *fakeUow) FolderRepository() contract.FolderRepository     { return nil }
func (u *fakeUow) LessonRepository() contract.LessonRepository     { return u.lessons }
func (u *fakeUow) MediaRepository() contract.MediaRepository       { return u.media }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeDelivery struct {
	mu     sync.Mutex
	states []string
}

func (d *fakeDelivery) SendSaveState(userID, lessonID uuid.UUID, state, lastError string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.states = append(d.states, state)
}

func (d *fakeDelivery) seen() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.states...)
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

type editorFixture struct {
	svc       IEditorService
	lessons   *fakeLessonRepo
	media     *fakeMediaRepo
	delivery  *fakeDelivery
	publisher *fakePublisher
	userId    uuid.UUID
	lessonId  uuid.UUID
}

func newEditorFixture(t *testing.T, debounce time.Duration) *editorFixture {
	t.Helper()

	userId := uuid.New()
	lessonId := uuid.New()
	lessons := &fakeLessonRepo{
		lesson: &entity.Lesson{Id: lessonId, UserId: userId, Name: "Fixture Lesson"},
	}
	media := &fakeMediaRepo{}
	delivery := &fakeDelivery{}
	publisher := &fakePublisher{}

	localStore, err := storage.NewLocalStore(t.TempDir(), "http://localhost:3000", 1<<20)
	require.NoError(t, err)

	svc := NewEditorService(
		&fakeFactory{uow: &fakeUow{lessons: lessons, media: media}},
		memory.NewSessionRepository(),
		localStore,
		publisher,
		nil,
		delivery,
		nopLogger{},
		debounce,
	)

	return &editorFixture{
		svc:       svc,
		lessons:   lessons,
		media:     media,
		delivery:  delivery,
		publisher: publisher,
		userId:    userId,
		lessonId:  lessonId,
	}
}

func (f *editorFixture) open(t *testing.T) *dto.OpenEditorResponse {
	t.Helper()
	res, err := f.svc.Open(context.Background(), f.userId, f.lessonId)
	require.NoError(t, err)
	return res
}

func (f *editorFixture) addPage(t *testing.T) uuid.UUID {
	t.Helper()
	res, err := f.svc.AddPage(context.Background(), f.userId, f.lessonId, &dto.AddPageRequest{AfterIndex: 0})
	require.NoError(t, err)
	return res.PageId
}

func (f *editorFixture) insert(t *testing.T, pageId uuid.UUID, index int, typ string) uuid.UUID {
	t.Helper()
	res, err := f.svc.InsertItem(context.Background(), f.userId, f.lessonId, &dto.InsertItemRequest{
		PageId: pageId, Index: index, Type: typ,
	})
	require.NoError(t, err)
	return res.ItemId
}

func (f *editorFixture) setField(t *testing.T, itemId uuid.UUID, field string, value interface{}) {
	t.Helper()
	err := f.svc.SetField(context.Background(), f.userId, f.lessonId, &dto.SetFieldRequest{
		ItemId: itemId, Field: field, Value: value,
	})
	require.NoError(t, err)
}

// decodeSaved decodes the single persisted wire blob. Decoded items carry
// fresh ids, so callers match them by position, type or payload.
func decodeSaved(t *testing.T, fx *editorFixture) *lessondoc.Document {
	t.Helper()
	saved := fx.lessons.savedTexts()
	require.Len(t, saved, 1)
	doc, codecErrs := lessondoc.DecodeJSON(saved[0])
	require.Empty(t, codecErrs)
	return doc
}

// --- Session lifecycle ---

func TestEditorOpen(t *testing.T) {
	t.Run("fresh lesson", func(t *testing.T) {
		fx := newEditorFixture(t, time.Minute)

		res := fx.open(t)
		assert.Equal(t, fx.lessonId.String(), res.SessionId)
		assert.Equal(t, store.SaveStateIdle, res.SaveState)
		assert.JSONEq(t, `[]`, string(res.Text))
	})

	t.Run("reopen reuses the live session", func(t *testing.T) {
		fx := newEditorFixture(t, time.Minute)
		fx.open(t)
		pageId := fx.addPage(t)
		fx.insert(t, pageId, 0, "title")

		res := fx.open(t)
		assert.Equal(t, store.SaveStatePending, res.SaveState)

		var wire []map[string]interface{}
		require.NoError(t, json.Unmarshal(res.Text, &wire))
		assert.Len(t, wire, 1)
	})

	t.Run("another user cannot join the session", func(t *testing.T) {
		fx := newEditorFixture(t, time.Minute)
		fx.open(t)

		_, err := fx.svc.Open(context.Background(), uuid.New(), fx.lessonId)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("mutations require an open session", func(t *testing.T) {
		fx := newEditorFixture(t, time.Minute)

		err := fx.svc.DeleteItem(context.Background(), fx.userId, fx.lessonId, &dto.DeleteItemRequest{ItemId: uuid.New()})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// --- Autosave ---

func TestAutosaveDebounce(t *testing.T) {
	t.Run("rapid edits coalesce into one save", func(t *testing.T) {
		fx := newEditorFixture(t, 30*time.Millisecond)
		fx.open(t)
		pageId := fx.addPage(t)
		for i := 0; i < 3; i++ {
			fx.insert(t, pageId, i, "paragraph")
		}

		require.Eventually(t, func() bool {
			return len(fx.lessons.savedTexts()) > 0
		}, 2*time.Second, 10*time.Millisecond)
		time.Sleep(100 * time.Millisecond)

		saved := fx.lessons.savedTexts()
		require.Len(t, saved, 1)

		doc, codecErrs := lessondoc.DecodeJSON(saved[0])
		require.Empty(t, codecErrs)
		total := 0
		for _, p := range doc.Pages {
			total += len(p.Items)
		}
		assert.Equal(t, 3, total)

		status, err := fx.svc.Status(context.Background(), fx.userId, fx.lessonId)
		require.NoError(t, err)
		assert.Equal(t, store.SaveStateIdle, status.SaveState)

		assert.Equal(t, 1, fx.publisher.count())
	})

	t.Run("failed save surfaces in status", func(t *testing.T) {
		fx := newEditorFixture(t, 20*time.Millisecond)
		fx.lessons.updateErr = errors.New("connection refused")
		fx.open(t)
		fx.addPage(t)

		require.Eventually(t, func() bool {
			status, err := fx.svc.Status(context.Background(), fx.userId, fx.lessonId)
			return err == nil && status.SaveState == store.SaveStateFailed
		}, 2*time.Second, 10*time.Millisecond)

		status, err := fx.svc.Status(context.Background(), fx.userId, fx.lessonId)
		require.NoError(t, err)
		assert.Contains(t, status.LastError, "connection refused")

		states := fx.delivery.seen()
		assert.Equal(t, store.SaveStateFailed, states[len(states)-1])
	})
}

func TestCloseFlushesImmediately(t *testing.T) {
	fx := newEditorFixture(t, time.Minute)
	fx.open(t)
	pageId := fx.addPage(t)
	fx.insert(t, pageId, 0, "heading")

	require.NoError(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))

	saved := fx.lessons.savedTexts()
	require.Len(t, saved, 1)

	_, err := fx.svc.Status(context.Background(), fx.userId, fx.lessonId)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCloseWithoutEditsSkipsSave(t *testing.T) {
	fx := newEditorFixture(t, time.Minute)
	fx.open(t)

	require.NoError(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))
	assert.Empty(t, fx.lessons.savedTexts())
}

// --- Media reconciliation ---

func TestStageLinkReconciliation(t *testing.T) {
	fx := newEditorFixture(t, time.Minute)
	fx.open(t)
	pageId := fx.addPage(t)
	itemId := fx.insert(t, pageId, 0, "video")

	err := fx.svc.StageLink(context.Background(), fx.userId, fx.lessonId, &dto.StageLinkRequest{
		ItemId: itemId,
		Link:   "https://videos.example.com/intro.mp4",
		Type:   "video",
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))

	require.Len(t, fx.media.created, 1)
	row := fx.media.created[0]
	assert.Equal(t, fx.lessonId, row.LessonId)
	assert.Equal(t, entity.MediaTypeVideo, row.Type)
	assert.Equal(t, "https://videos.example.com/intro.mp4", row.Url)
	assert.Empty(t, row.StoragePath)

	doc := decodeSaved(t, fx)
	require.Len(t, doc.Pages[0].Items, 1)
	item := doc.Pages[0].Items[0]
	assert.Equal(t, lessondoc.TypeVideo, item.Type)
	require.NotNil(t, item.Media)
	assert.Equal(t, "https://videos.example.com/intro.mp4", item.Media.Link)
	require.NotNil(t, item.Media.MediaId)
	assert.Equal(t, row.Id, *item.Media.MediaId)
}

func TestLinkedMediaRegisteredOnFlush(t *testing.T) {
	fx := newEditorFixture(t, time.Minute)
	fx.open(t)
	pageId := fx.addPage(t)
	itemId := fx.insert(t, pageId, 0, "video")
	fx.setField(t, itemId, "link", "https://videos.example.com/lecture.mp4")

	require.NoError(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))

	require.Len(t, fx.media.created, 1)
	row := fx.media.created[0]
	assert.Equal(t, entity.MediaTypeVideo, row.Type)
	assert.Equal(t, "https://videos.example.com/lecture.mp4", row.Url)

	doc := decodeSaved(t, fx)
	require.Len(t, doc.Pages[0].Items, 1)
	item := doc.Pages[0].Items[0]
	require.NotNil(t, item.Media)
	require.NotNil(t, item.Media.MediaId)
	assert.Equal(t, row.Id, *item.Media.MediaId)
}

func TestFailedMediaRegistrationRetries(t *testing.T) {
	fx := newEditorFixture(t, time.Minute)
	fx.open(t)
	pageId := fx.addPage(t)
	itemId := fx.insert(t, pageId, 0, "image")
	err := fx.svc.StageLink(context.Background(), fx.userId, fx.lessonId, &dto.StageLinkRequest{
		ItemId: itemId,
		Link:   "https://img.example.com/diagram.png",
		Type:   "image",
	})
	require.NoError(t, err)

	fx.media.failCreates = 1
	require.Error(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))

	status, err := fx.svc.Status(context.Background(), fx.userId, fx.lessonId)
	require.NoError(t, err)
	assert.Equal(t, store.SaveStateFailed, status.SaveState)
	assert.Empty(t, fx.media.created)
	assert.Empty(t, fx.lessons.savedTexts())

	require.NoError(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))

	require.Len(t, fx.media.created, 1)
	doc := decodeSaved(t, fx)
	item := doc.Pages[0].Items[0]
	require.NotNil(t, item.Media)
	require.NotNil(t, item.Media.MediaId)
	assert.Equal(t, fx.media.created[0].Id, *item.Media.MediaId)
}

func TestCloseKeepsSessionWhenSaveFails(t *testing.T) {
	fx := newEditorFixture(t, time.Minute)
	fx.lessons.setUpdateErr(errors.New("connection refused"))
	fx.open(t)
	pageId := fx.addPage(t)
	fx.insert(t, pageId, 0, "title")

	require.Error(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))

	status, err := fx.svc.Status(context.Background(), fx.userId, fx.lessonId)
	require.NoError(t, err)
	assert.Equal(t, store.SaveStateFailed, status.SaveState)

	fx.lessons.setUpdateErr(nil)
	require.NoError(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))

	doc := decodeSaved(t, fx)
	total := 0
	for _, p := range doc.Pages {
		total += len(p.Items)
	}
	assert.Equal(t, 1, total)

	_, err = fx.svc.Status(context.Background(), fx.userId, fx.lessonId)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStageLinkRejectsNonMediaItem(t *testing.T) {
	fx := newEditorFixture(t, time.Minute)
	fx.open(t)
	pageId := fx.addPage(t)
	itemId := fx.insert(t, pageId, 0, "paragraph")

	err := fx.svc.StageLink(context.Background(), fx.userId, fx.lessonId, &dto.StageLinkRequest{
		ItemId: itemId,
		Link:   "https://example.com",
		Type:   "link",
	})

	var vErr *lessondoc.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, itemId, vErr.Id)
}

// --- Drag and drop ---

func TestDragFlow(t *testing.T) {
	t.Run("drop below target reorders and marks dirty", func(t *testing.T) {
		fx := newEditorFixture(t, time.Minute)
		fx.open(t)
		pageId := fx.addPage(t)
		a := fx.insert(t, pageId, 0, "paragraph")
		b := fx.insert(t, pageId, 1, "paragraph")
		fx.setField(t, a, "content", "alpha")
		fx.setField(t, b, "content", "beta")

		_, err := fx.svc.DragBegin(context.Background(), fx.userId, fx.lessonId, &dto.DragBeginRequest{ItemId: a})
		require.NoError(t, err)

		target := dto.DragTarget{Kind: "item", ItemId: &b}
		over, err := fx.svc.DragOver(context.Background(), fx.userId, fx.lessonId, &dto.DragOverRequest{
			Target: target, PointerY: 40, TargetMidY: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, "dragging", over.State)
		require.NotNil(t, over.Highlight)
		assert.Equal(t, "below", over.Position)

		dropped, err := fx.svc.DragDrop(context.Background(), fx.userId, fx.lessonId, &dto.DragOverRequest{Target: target})
		require.NoError(t, err)
		assert.Equal(t, "idle", dropped.State)

		require.NoError(t, fx.svc.Close(context.Background(), fx.userId, fx.lessonId))
		doc := decodeSaved(t, fx)
		items := doc.Pages[0].Items
		require.Len(t, items, 2)
		assert.Equal(t, "beta", items[0].Content)
		assert.Equal(t, "alpha", items[1].Content)
	})

	t.Run("self drop does not dirty the document", func(t *testing.T) {
		fx := newEditorFixture(t, 20*time.Millisecond)
		fx.open(t)
		pageId := fx.addPage(t)
		a := fx.insert(t, pageId, 0, "paragraph")
		require.Eventually(t, func() bool {
			return len(fx.lessons.savedTexts()) == 1
		}, 2*time.Second, 10*time.Millisecond)

		_, err := fx.svc.DragBegin(context.Background(), fx.userId, fx.lessonId, &dto.DragBeginRequest{ItemId: a})
		require.NoError(t, err)
		res, err := fx.svc.DragDrop(context.Background(), fx.userId, fx.lessonId, &dto.DragOverRequest{
			Target: dto.DragTarget{Kind: "item", ItemId: &a},
		})
		require.NoError(t, err)
		assert.Equal(t, "idle", res.State)

		// Drop with no active gesture is equally inert.
		res, err = fx.svc.DragDrop(context.Background(), fx.userId, fx.lessonId, &dto.DragOverRequest{
			Target: dto.DragTarget{Kind: "item", ItemId: &a},
		})
		require.NoError(t, err)
		assert.Equal(t, "idle", res.State)

		status, err := fx.svc.Status(context.Background(), fx.userId, fx.lessonId)
		require.NoError(t, err)
		assert.Equal(t, store.SaveStateIdle, status.SaveState)

		time.Sleep(100 * time.Millisecond)
		assert.Len(t, fx.lessons.savedTexts(), 1)
	})

	t.Run("begin with unknown item fails", func(t *testing.T) {
		fx := newEditorFixture(t, time.Minute)
		fx.open(t)

		_, err := fx.svc.DragBegin(context.Background(), fx.userId, fx.lessonId, &dto.DragBeginRequest{ItemId: uuid.New()})
		var vErr *lessondoc.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("cancel leaves the document untouched", func(t *testing.T) {
		fx := newEditorFixture(t, time.Minute)
		fx.open(t)
		pageId := fx.addPage(t)
		a := fx.insert(t, pageId, 0, "paragraph")

		_, err := fx.svc.DragBegin(context.Background(), fx.userId, fx.lessonId, &dto.DragBeginRequest{ItemId: a})
		require.NoError(t, err)

		res, err := fx.svc.DragCancel(context.Background(), fx.userId, fx.lessonId)
		require.NoError(t, err)
		assert.Equal(t, "idle", res.State)
		assert.Nil(t, res.Highlight)
	})

	t.Run("unknown target kind is rejected", func(t *testing.T) {
		fx := newEditorFixture(t, time.Minute)
		fx.open(t)
		pageId := fx.addPage(t)
		a := fx.insert(t, pageId, 0, "paragraph")

		_, err := fx.svc.DragBegin(context.Background(), fx.userId, fx.lessonId, &dto.DragBeginRequest{ItemId: a})
		require.NoError(t, err)

		_, err = fx.svc.DragOver(context.Background(), fx.userId, fx.lessonId, &dto.DragOverRequest{
			Target: dto.DragTarget{Kind: "sidebar"},
		})
		assert.Error(t, err)
	})
}
