package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"classboard-be/internal/dto"
	"classboard-be/internal/entity"
	"classboard-be/internal/pkg/logger"
	"classboard-be/internal/repository/memory"
	"classboard-be/internal/repository/specification"
	"classboard-be/internal/repository/unitofwork"
	"classboard-be/pkg/events"
	"classboard-be/pkg/lessondoc"
	"classboard-be/pkg/lessondoc/dragdrop"
	pktNats "classboard-be/pkg/nats"
	"classboard-be/pkg/storage"
	"classboard-be/pkg/store"

	"github.com/google/uuid"
)

// IEditorService owns the live editing sessions. Every lesson mutation
// flows through here; persistence is debounced behind the session.
type IEditorService interface {
	Open(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) (*dto.OpenEditorResponse, error)
	Close(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) error
	Status(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) (*dto.EditorStatusResponse, error)

	InsertItem(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.InsertItemRequest) (*dto.InsertItemResponse, error)
	DeleteItem(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DeleteItemRequest) error
	MoveItem(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.MoveItemRequest) error
	SetStyle(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.SetStyleRequest) error
	SetField(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.SetFieldRequest) error

	AddPage(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.AddPageRequest) (*dto.AddPageResponse, error)
	DeletePage(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DeletePageRequest) error
	ReorderPage(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.ReorderPageRequest) error
	ResizePage(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.ResizePageRequest) error

	SetListEntry(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.ListEntryRequest) error
	AddListEntry(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.TableGrowRequest) error
	RemoveListEntry(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.ListEntryRequest) error
	SetTableCell(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.TableCellRequest) error
	AddTableRow(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.TableGrowRequest) error
	AddTableColumn(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.TableGrowRequest) error
	SetQuizOption(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.QuizOptionRequest) error
	CommitDraftOption(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.CommitDraftOptionRequest) error

	DragBegin(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DragBeginRequest) (*dto.DragStateResponse, error)
	DragOver(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DragOverRequest) (*dto.DragStateResponse, error)
	DragDrop(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DragOverRequest) (*dto.DragStateResponse, error)
	DragCancel(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) (*dto.DragStateResponse, error)

	StageUpload(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, itemId uuid.UUID, mediaType string, file *multipart.FileHeader) (*dto.StageUploadResponse, error)
	StageLink(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.StageLinkRequest) error
}

// SaveStateDelivery pushes autosave status changes to connected clients.
// Implemented by the WebSocket Hub.
type SaveStateDelivery interface {
	SendSaveState(userID uuid.UUID, lessonID uuid.UUID, state string, lastError string)
}

type editorService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         *memory.SessionRepository
	store            *storage.LocalStore
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	delivery         SaveStateDelivery
	logger           logger.ILogger

	debounce time.Duration

	timerMu sync.Mutex
	timers  map[string]*time.Timer
}

func NewEditorService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	localStore *storage.LocalStore,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	delivery SaveStateDelivery,
	log logger.ILogger,
	debounce time.Duration,
) IEditorService {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &editorService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		store:            localStore,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		delivery:         delivery,
		logger:           log,
		debounce:         debounce,
		timers:           make(map[string]*time.Timer),
	}
}

// --- Session lifecycle ---

func (s *editorService) Open(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) (*dto.OpenEditorResponse, error) {
	if sess, ok := s.sessions.Get(lessonId.String()); ok {
		if sess.UserID != userId.String() {
			return nil, ErrNotFound
		}
		sess.Lock()
		text, err := lessondoc.EncodeJSON(sess.Doc)
		state := sess.SaveState
		sess.Unlock()
		if err != nil {
			return nil, err
		}
		s.sessions.Touch(sess.ID)
		return &dto.OpenEditorResponse{SessionId: sess.ID, Text: text, SaveState: state}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	lesson, err := uow.LessonRepository().FindOne(ctx,
		specification.ByID{ID: lessonId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrNotFound
	}

	doc, codecErrs := lessondoc.DecodeJSON(lesson.Text)
	for _, ce := range codecErrs {
		s.logger.Warn("EditorService", "Dropped unreadable lesson item on load", map[string]interface{}{
			"lesson_id": lessonId,
			"index":     ce.Index,
			"type":      ce.Type,
			"reason":    ce.Reason,
		})
	}

	sess := store.NewEditSession(lessonId, userId.String(), doc)
	s.sessions.Save(sess)

	text, err := lessondoc.EncodeJSON(doc)
	if err != nil {
		return nil, err
	}

	return &dto.OpenEditorResponse{
		SessionId: sess.ID,
		Text:      text,
		SaveState: sess.SaveState,
	}, nil
}

// Close flushes any unsaved edits immediately and drops the session. When
// the flush fails the session stays alive so the unsaved document survives
// and a later Close or edit can retry.
func (s *editorService) Close(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) error {
	sess, err := s.session(userId, lessonId)
	if err != nil {
		return err
	}

	s.stopTimer(sess.ID)

	if err := s.flush(ctx, sess); err != nil {
		return err
	}
	s.sessions.Delete(sess.ID)
	return nil
}

func (s *editorService) Status(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) (*dto.EditorStatusResponse, error) {
	sess, err := s.session(userId, lessonId)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	return &dto.EditorStatusResponse{
		SessionId: sess.ID,
		SaveState: sess.SaveState,
		LastError: sess.LastError,
	}, nil
}

func (s *editorService) session(userId uuid.UUID, lessonId uuid.UUID) (*store.EditSession, error) {
	sess, ok := s.sessions.Get(lessonId.String())
	if !ok {
		return nil, ErrNotFound
	}
	if sess.UserID != userId.String() {
		return nil, ErrNotFound
	}
	s.sessions.Touch(sess.ID)
	return sess, nil
}

// mutate runs fn under the session lock and, when it succeeds, marks the
// session dirty and restarts the trailing-edge autosave timer.
func (s *editorService) mutate(userId uuid.UUID, lessonId uuid.UUID, fn func(*store.EditSession) error) error {
	sess, err := s.session(userId, lessonId)
	if err != nil {
		return err
	}

	sess.Lock()
	err = fn(sess)
	if err == nil {
		sess.SaveState = store.SaveStatePending
		sess.LastEdit = time.Now()
	}
	sess.Unlock()

	if err == nil {
		s.scheduleFlush(sess)
		s.pushState(userId, lessonId, store.SaveStatePending, "")
	}
	return err
}

func (s *editorService) pushState(userId uuid.UUID, lessonId uuid.UUID, state string, lastError string) {
	if s.delivery != nil {
		s.delivery.SendSaveState(userId, lessonId, state, lastError)
	}
}

// --- Autosave ---

func (s *editorService) scheduleFlush(sess *store.EditSession) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if t, ok := s.timers[sess.ID]; ok {
		t.Reset(s.debounce)
		return
	}
	id := sess.ID
	s.timers[id] = time.AfterFunc(s.debounce, func() {
		s.timerMu.Lock()
		delete(s.timers, id)
		s.timerMu.Unlock()

		if current, ok := s.sessions.Get(id); ok {
			if err := s.flush(context.Background(), current); err != nil {
				s.logger.Error("EditorService", "Autosave failed", map[string]interface{}{
					"lesson_id": id,
					"error":     err.Error(),
				})
			}
		}
	})
}

func (s *editorService) stopTimer(sessionID string) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
		delete(s.timers, sessionID)
	}
}

// flush reconciles staged media and persists the encoded document. The
// in-memory document is the source of truth; a failed flush never rolls
// local edits back, it only surfaces the failure.
func (s *editorService) flush(ctx context.Context, sess *store.EditSession) error {
	sess.Lock()
	defer sess.Unlock()

	if sess.SaveState != store.SaveStatePending && sess.SaveState != store.SaveStateFailed && len(sess.PendingUploads) == 0 {
		return nil
	}

	sess.SaveState = store.SaveStateSaving

	uow := s.uowFactory.NewUnitOfWork(ctx)
	userId, err := uuid.Parse(sess.UserID)
	if err != nil {
		return err
	}

	if err := s.reconcileMedia(ctx, uow, sess, userId); err != nil {
		return s.failFlush(ctx, sess, userId, err)
	}

	text, err := lessondoc.EncodeJSON(sess.Doc)
	if err != nil {
		return s.failFlush(ctx, sess, userId, err)
	}

	if err := uow.LessonRepository().UpdateText(ctx, sess.LessonId, text); err != nil {
		return s.failFlush(ctx, sess, userId, err)
	}

	sess.SaveState = store.SaveStateIdle
	sess.LastError = ""
	s.pushState(userId, sess.LessonId, store.SaveStateIdle, "")

	if s.publisherService != nil {
		payload, _ := json.Marshal(dto.PublishLessonSavedMessage{LessonId: sess.LessonId})
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			fmt.Printf("[WARN] Failed to publish lesson saved message: %v\n", err)
		}
	}
	return nil
}

func (s *editorService) failFlush(ctx context.Context, sess *store.EditSession, userId uuid.UUID, err error) error {
	sess.SaveState = store.SaveStateFailed
	sess.LastError = err.Error()
	s.pushState(userId, sess.LessonId, store.SaveStateFailed, err.Error())

	s.logger.Error("EditorService", "Lesson save failed", map[string]interface{}{
		"lesson_id": sess.LessonId,
		"error":     err.Error(),
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "LESSON_SAVE_FAILED",
			Data: map[string]interface{}{
				"user_id":     userId.String(),
				"entity_type": "lesson",
				"entity_id":   sess.LessonId.String(),
				"error":       err.Error(),
			},
			OccurredAt: time.Now(),
		}
		if pubErr := s.eventPublisher.Publish(ctx, evt); pubErr != nil {
			fmt.Printf("[WARN] Failed to publish LESSON_SAVE_FAILED event: %v\n", pubErr)
		}
	}
	return err
}

// mediaTypeOf maps a media item type to its media-table type. Attachments
// have no dedicated row type and are registered as links.
func mediaTypeOf(t lessondoc.ItemType) entity.MediaType {
	switch t {
	case lessondoc.TypeImage:
		return entity.MediaTypeImage
	case lessondoc.TypeAudio:
		return entity.MediaTypeAudio
	case lessondoc.TypeVideo:
		return entity.MediaTypeVideo
	}
	return entity.MediaTypeLink
}

// reconcileMedia registers every staged upload as a media row and points the
// owning item at it, then sweeps the document for link-only media items that
// have no media id yet and registers those too. Uploads whose item was
// deleted during the edit are discarded. A failed upload is re-staged and an
// error returned so the flush reports failure and the next cycle retries.
func (s *editorService) reconcileMedia(ctx context.Context, uow unitofwork.UnitOfWork, sess *store.EditSession, userId uuid.UUID) error {
	var firstErr error

	for itemId, up := range sess.TakePendingUploads() {
		item := sess.Doc.Item(itemId)
		if item == nil || item.Media == nil {
			if up.TempPath != "" {
				_ = s.store.Remove(up.TempPath)
			}
			continue
		}

		url := up.Link
		storagePath := ""
		if up.TempPath != "" {
			var err error
			storagePath, url, err = s.store.Promote(up.TempPath, "media")
			if err != nil {
				s.logger.Error("EditorService", "Failed to promote staged upload", map[string]interface{}{
					"lesson_id": sess.LessonId,
					"item_id":   itemId,
					"error":     err.Error(),
				})
				sess.PendingUploads[itemId] = up
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		}

		media := entity.Media{
			Id:           uuid.New(),
			LessonId:     sess.LessonId,
			UserId:       userId,
			Type:         entity.MediaType(up.MediaType),
			Url:          url,
			OriginalName: up.FileName,
			StoragePath:  storagePath,
			CreatedAt:    time.Now(),
		}
		if err := uow.MediaRepository().Create(ctx, &media); err != nil {
			s.logger.Error("EditorService", "Failed to register media", map[string]interface{}{
				"lesson_id": sess.LessonId,
				"item_id":   itemId,
				"error":     err.Error(),
			})
			// The promoted file becomes the new staged file so the
			// retry does not lose the upload.
			up.TempPath = storagePath
			sess.PendingUploads[itemId] = up
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		item.Media.MediaId = &media.Id
		item.Media.Link = url
		if up.FileName != "" {
			item.Media.FileName = up.FileName
		}
	}

	// Link-only sweep: media items whose link was set directly (no staged
	// upload) still need a media row before the encode.
	for _, page := range sess.Doc.Pages {
		for _, item := range page.Items {
			if !item.Type.IsMedia() || item.Media == nil {
				continue
			}
			if item.Media.Link == "" || item.Media.MediaId != nil {
				continue
			}
			if _, staged := sess.PendingUploads[item.Id]; staged {
				continue
			}

			media := entity.Media{
				Id:           uuid.New(),
				LessonId:     sess.LessonId,
				UserId:       userId,
				Type:         mediaTypeOf(item.Type),
				Url:          item.Media.Link,
				OriginalName: item.Media.FileName,
				CreatedAt:    time.Now(),
			}
			if err := uow.MediaRepository().Create(ctx, &media); err != nil {
				s.logger.Error("EditorService", "Failed to register linked media", map[string]interface{}{
					"lesson_id": sess.LessonId,
					"item_id":   item.Id,
					"error":     err.Error(),
				})
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			item.Media.MediaId = &media.Id
		}
	}

	return firstErr
}

// --- Item mutations ---

func (s *editorService) InsertItem(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.InsertItemRequest) (*dto.InsertItemResponse, error) {
	var res *dto.InsertItemResponse
	err := s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		item, err := sess.Doc.InsertItem(req.PageId, req.Index, lessondoc.ItemType(req.Type), req.RowId)
		if err != nil {
			return err
		}
		res = &dto.InsertItemResponse{ItemId: item.Id, RowId: item.RowId}
		return nil
	})
	return res, err
}

func (s *editorService) DeleteItem(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DeleteItemRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		sess.Doc.DeleteItem(req.ItemId)
		return nil
	})
}

func (s *editorService) MoveItem(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.MoveItemRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.MoveItem(req.ItemId, req.TargetPageId, req.TargetIndex, req.RowId)
	})
}

func (s *editorService) SetStyle(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.SetStyleRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.SetStyle(req.ItemId, lessondoc.StyleField(req.Field), req.Value)
	})
}

func (s *editorService) SetField(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.SetFieldRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.SetField(req.ItemId, req.Field, req.Value)
	})
}

// --- Page mutations ---

func (s *editorService) AddPage(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.AddPageRequest) (*dto.AddPageResponse, error) {
	var res *dto.AddPageResponse
	err := s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		page := sess.Doc.AddPage(req.AfterIndex)
		res = &dto.AddPageResponse{PageId: page.Id}
		return nil
	})
	return res, err
}

func (s *editorService) DeletePage(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DeletePageRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.DeletePage(req.PageId)
	})
}

func (s *editorService) ReorderPage(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.ReorderPageRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.ReorderPage(req.PageId, lessondoc.PagePosition(req.Position))
	})
}

func (s *editorService) ResizePage(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.ResizePageRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.ResizePage(req.PageId, req.Delta)
	})
}

// --- List / table / quiz mutations ---

func (s *editorService) SetListEntry(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.ListEntryRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.SetListEntry(req.ItemId, req.Index, req.Value)
	})
}

func (s *editorService) AddListEntry(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.TableGrowRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.AddListEntry(req.ItemId)
	})
}

func (s *editorService) RemoveListEntry(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.ListEntryRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.RemoveListEntry(req.ItemId, req.Index)
	})
}

func (s *editorService) SetTableCell(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.TableCellRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.SetTableCell(req.ItemId, req.Row, req.Col, req.Value)
	})
}

func (s *editorService) AddTableRow(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.TableGrowRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.AddTableRow(req.ItemId)
	})
}

func (s *editorService) AddTableColumn(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.TableGrowRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.AddTableColumn(req.ItemId)
	})
}

func (s *editorService) SetQuizOption(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.QuizOptionRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.SetQuizOption(req.ItemId, req.Index, req.Value)
	})
}

func (s *editorService) CommitDraftOption(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.CommitDraftOptionRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		return sess.Doc.CommitDraftOption(req.ItemId)
	})
}

// --- Drag and drop ---

var dragKinds = map[string]dragdrop.TargetKind{
	"item":            dragdrop.TargetItem,
	"row_column":      dragdrop.TargetRowColumn,
	"placeholder":     dragdrop.TargetPlaceholder,
	"page_background": dragdrop.TargetPageBackground,
	"root":            dragdrop.TargetRoot,
}

func toDragTarget(t dto.DragTarget) (dragdrop.Target, error) {
	kind, ok := dragKinds[t.Kind]
	if !ok {
		return dragdrop.Target{}, errors.New("unknown drop target kind")
	}
	target := dragdrop.Target{Kind: kind, Index: t.Index}
	if t.ItemId != nil {
		target.ItemId = *t.ItemId
	}
	if t.RowId != nil {
		target.RowId = *t.RowId
	}
	if t.PageId != nil {
		target.PageId = *t.PageId
	}
	return target, nil
}

func dragState(sess *store.EditSession) *dto.DragStateResponse {
	res := &dto.DragStateResponse{State: "idle"}
	if sess.Drag.State() == dragdrop.StateDragging {
		res.State = "dragging"
		src := sess.Drag.Source()
		res.SourceId = &src
	}
	if h := sess.Drag.Highlight(); h != nil {
		t := h.Target
		ht := &dto.DragTarget{Index: t.Index}
		for name, kind := range dragKinds {
			if kind == t.Kind {
				ht.Kind = name
			}
		}
		if t.ItemId != uuid.Nil {
			id := t.ItemId
			ht.ItemId = &id
		}
		if t.RowId != uuid.Nil {
			id := t.RowId
			ht.RowId = &id
		}
		if t.PageId != uuid.Nil {
			id := t.PageId
			ht.PageId = &id
		}
		res.Highlight = ht
		if h.Position == dragdrop.Below {
			res.Position = "below"
		} else {
			res.Position = "above"
		}
	}
	return res
}

func (s *editorService) DragBegin(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DragBeginRequest) (*dto.DragStateResponse, error) {
	sess, err := s.session(userId, lessonId)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	if err := sess.Drag.Begin(req.ItemId); err != nil {
		return nil, err
	}
	return dragState(sess), nil
}

func (s *editorService) DragOver(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DragOverRequest) (*dto.DragStateResponse, error) {
	sess, err := s.session(userId, lessonId)
	if err != nil {
		return nil, err
	}
	target, err := toDragTarget(req.Target)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	sess.Drag.Over(target, req.PointerY, req.TargetMidY)
	return dragState(sess), nil
}

// DragDrop commits the gesture. A drop that changed the document rides the
// same autosave path as any other edit; self-drops and drops with no active
// gesture never reach the document and never schedule a save.
func (s *editorService) DragDrop(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.DragOverRequest) (*dto.DragStateResponse, error) {
	target, err := toDragTarget(req.Target)
	if err != nil {
		return nil, err
	}
	sess, err := s.session(userId, lessonId)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	mutated := sess.Drag.State() == dragdrop.StateDragging &&
		!(target.Kind == dragdrop.TargetItem && target.ItemId == sess.Drag.Source())
	err = sess.Drag.Drop(target)
	mutated = mutated && err == nil
	var res *dto.DragStateResponse
	if err == nil {
		res = dragState(sess)
	}
	if mutated {
		sess.SaveState = store.SaveStatePending
		sess.LastEdit = time.Now()
	}
	sess.Unlock()

	if err != nil {
		return nil, err
	}
	if mutated {
		s.scheduleFlush(sess)
		s.pushState(userId, lessonId, store.SaveStatePending, "")
	}
	return res, nil
}

func (s *editorService) DragCancel(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) (*dto.DragStateResponse, error) {
	sess, err := s.session(userId, lessonId)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	sess.Drag.Cancel()
	return dragState(sess), nil
}

// --- Media staging ---

// StageUpload parks the file on disk and defers the media row until the
// next flush, so rapid add-remove editing never writes dead rows.
func (s *editorService) StageUpload(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, itemId uuid.UUID, mediaType string, file *multipart.FileHeader) (*dto.StageUploadResponse, error) {
	mt := entity.MediaType(mediaType)
	if !mt.Valid() || mt == entity.MediaTypeLink {
		return nil, errors.New("unsupported media type")
	}

	var res *dto.StageUploadResponse
	err := s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		item := sess.Doc.Item(itemId)
		if item == nil || item.Media == nil {
			return &lessondoc.ValidationError{Op: "stageUpload", Id: itemId, Reason: "not a media item"}
		}

		stagedPath, _, err := s.store.Save("staging", file, itemId.String())
		if err != nil {
			return err
		}

		// Replacing a previous staged file drops it
		if prev, ok := sess.PendingUploads[itemId]; ok && prev.TempPath != "" {
			_ = s.store.Remove(prev.TempPath)
		}

		sess.PendingUploads[itemId] = &store.PendingUpload{
			ItemId:    itemId,
			FileName:  file.Filename,
			TempPath:  stagedPath,
			MediaType: mediaType,
		}
		item.Media.FileName = file.Filename

		res = &dto.StageUploadResponse{ItemId: itemId, FileName: file.Filename}
		return nil
	})
	return res, err
}

func (s *editorService) StageLink(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, req *dto.StageLinkRequest) error {
	return s.mutate(userId, lessonId, func(sess *store.EditSession) error {
		item := sess.Doc.Item(req.ItemId)
		if item == nil || item.Media == nil {
			return &lessondoc.ValidationError{Op: "stageLink", Id: req.ItemId, Reason: "not a media item"}
		}

		if prev, ok := sess.PendingUploads[req.ItemId]; ok && prev.TempPath != "" {
			_ = s.store.Remove(prev.TempPath)
		}

		sess.PendingUploads[req.ItemId] = &store.PendingUpload{
			ItemId:    req.ItemId,
			Link:      req.Link,
			MediaType: req.Type,
		}
		item.Media.Link = req.Link
		return nil
	})
}
