package service

import (
	"context"
	"fmt"
	"time"

	"classboard-be/internal/dto"
	"classboard-be/internal/entity"
	"classboard-be/internal/repository/specification"
	"classboard-be/internal/repository/unitofwork"
	"classboard-be/pkg/events"
	pktNats "classboard-be/pkg/nats"

	"github.com/google/uuid"
)

type ILessonService interface {
	GetByClass(ctx context.Context, userId uuid.UUID, classId uuid.UUID) ([]*dto.LessonResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateLessonRequest) (*dto.CreateLessonResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowLessonResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateLessonRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MoveLesson(ctx context.Context, userId uuid.UUID, req *dto.MoveLessonRequest) error
}

type lessonService struct {
	uowFactory     unitofwork.RepositoryFactory
	mediaService   IMediaService
	eventPublisher *pktNats.Publisher
}

func NewLessonService(uowFactory unitofwork.RepositoryFactory, mediaService IMediaService, eventPublisher *pktNats.Publisher) ILessonService {
	return &lessonService{
		uowFactory:     uowFactory,
		mediaService:   mediaService,
		eventPublisher: eventPublisher,
	}
}

func (c *lessonService) GetByClass(ctx context.Context, userId uuid.UUID, classId uuid.UUID) ([]*dto.LessonResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	lessons, err := uow.LessonRepository().FindAll(ctx,
		specification.ByClassID{ClassID: classId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, &dto.LessonResponse{
			Id:        lesson.Id,
			Name:      lesson.Name,
			ClassId:   lesson.ClassId,
			FolderId:  lesson.FolderId,
			CreatedAt: lesson.CreatedAt,
			UpdatedAt: lesson.UpdatedAt,
		})
	}

	return result, nil
}

func (c *lessonService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateLessonRequest) (*dto.CreateLessonResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	class, err := uow.ClassRepository().FindOne(ctx,
		specification.ByID{ID: req.ClassId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}

	if req.FolderId != nil {
		folder, err := uow.FolderRepository().FindOne(ctx,
			specification.ByID{ID: *req.FolderId},
			specification.ByClassID{ClassID: req.ClassId},
		)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			return nil, ErrNotFound
		}
	}

	lesson := entity.Lesson{
		Id:        uuid.New(),
		Name:      req.Name,
		ClassId:   req.ClassId,
		FolderId:  req.FolderId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.LessonRepository().Create(ctx, &lesson); err != nil {
		return nil, err
	}

	if c.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "LESSON_CREATED",
			Data: map[string]interface{}{
				"user_id":     userId.String(),
				"entity_type": "lesson",
				"entity_id":   lesson.Id.String(),
				"lesson_name": lesson.Name,
			},
			OccurredAt: time.Now(),
		}
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish LESSON_CREATED event: %v\n", err)
		}
	}

	return &dto.CreateLessonResponse{
		Id: lesson.Id,
	}, nil
}

func (c *lessonService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowLessonResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	lesson, err := uow.LessonRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrNotFound
	}

	text := lesson.Text
	if len(text) == 0 {
		text = []byte("[]")
	}

	return &dto.ShowLessonResponse{
		Id:        lesson.Id,
		Name:      lesson.Name,
		ClassId:   lesson.ClassId,
		FolderId:  lesson.FolderId,
		Text:      text,
		CreatedAt: lesson.CreatedAt,
		UpdatedAt: lesson.UpdatedAt,
	}, nil
}

func (c *lessonService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateLessonRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	lesson, err := uow.LessonRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if lesson == nil {
		return ErrNotFound
	}

	now := time.Now()
	lesson.Name = req.Name
	lesson.UpdatedAt = &now

	return uow.LessonRepository().Update(ctx, lesson)
}

func (c *lessonService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	lesson, err := uow.LessonRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if lesson == nil {
		return ErrNotFound
	}

	// Remove stored media files before the rows go away
	if c.mediaService != nil {
		if err := c.mediaService.DeleteByLesson(ctx, userId, id); err != nil {
			return err
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MediaRepository().DeleteAllByLessonId(ctx, id); err != nil {
		return err
	}

	if err := uow.LessonRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *lessonService) MoveLesson(ctx context.Context, userId uuid.UUID, req *dto.MoveLessonRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	lesson, err := uow.LessonRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if lesson == nil {
		return ErrNotFound
	}

	if req.FolderId != nil {
		// Target folder must be in the same class
		folder, err := uow.FolderRepository().FindOne(ctx,
			specification.ByID{ID: *req.FolderId},
			specification.ByClassID{ClassID: lesson.ClassId},
		)
		if err != nil {
			return err
		}
		if folder == nil {
			return ErrNotFound
		}
	}

	lesson.FolderId = req.FolderId
	return uow.LessonRepository().Update(ctx, lesson)
}
