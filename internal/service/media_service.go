package service

import (
	"context"
	"mime/multipart"
	"time"

	"classboard-be/internal/dto"
	"classboard-be/internal/entity"
	"classboard-be/internal/repository/specification"
	"classboard-be/internal/repository/unitofwork"
	"classboard-be/pkg/storage"

	"github.com/google/uuid"
)

type IMediaService interface {
	Upload(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, mediaType string, file *multipart.FileHeader) (*dto.MediaResponse, error)
	RegisterLink(ctx context.Context, userId uuid.UUID, req *dto.RegisterLinkMediaRequest) (*dto.MediaResponse, error)
	GetByLesson(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) ([]*dto.MediaResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateMediaRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	DeleteByLesson(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) error
}

type mediaService struct {
	uowFactory unitofwork.RepositoryFactory
	store      *storage.LocalStore
}

func NewMediaService(uowFactory unitofwork.RepositoryFactory, store *storage.LocalStore) IMediaService {
	return &mediaService{
		uowFactory: uowFactory,
		store:      store,
	}
}

func (s *mediaService) ownedLesson(ctx context.Context, uow unitofwork.UnitOfWork, userId, lessonId uuid.UUID) (*entity.Lesson, error) {
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
	return lesson, nil
}

func toMediaResponse(m *entity.Media) *dto.MediaResponse {
	return &dto.MediaResponse{
		Id:           m.Id,
		LessonId:     m.LessonId,
		Type:         string(m.Type),
		Url:          m.Url,
		OriginalName: m.OriginalName,
		CreatedAt:    m.CreatedAt,
	}
}

func (s *mediaService) Upload(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID, mediaType string, file *multipart.FileHeader) (*dto.MediaResponse, error) {
	mt := entity.MediaType(mediaType)
	if !mt.Valid() || mt == entity.MediaTypeLink {
		return nil, ErrNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedLesson(ctx, uow, userId, lessonId); err != nil {
		return nil, err
	}

	storagePath, publicURL, err := s.store.Save("media", file, lessonId.String())
	if err != nil {
		return nil, err
	}

	media := entity.Media{
		Id:           uuid.New(),
		LessonId:     lessonId,
		UserId:       userId,
		Type:         mt,
		Url:          publicURL,
		OriginalName: file.Filename,
		StoragePath:  storagePath,
		CreatedAt:    time.Now(),
	}

	if err := uow.MediaRepository().Create(ctx, &media); err != nil {
		// Roll the file back so the disk does not leak orphans
		_ = s.store.Remove(storagePath)
		return nil, err
	}

	return toMediaResponse(&media), nil
}

func (s *mediaService) RegisterLink(ctx context.Context, userId uuid.UUID, req *dto.RegisterLinkMediaRequest) (*dto.MediaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedLesson(ctx, uow, userId, req.LessonId); err != nil {
		return nil, err
	}

	media := entity.Media{
		Id:        uuid.New(),
		LessonId:  req.LessonId,
		UserId:    userId,
		Type:      entity.MediaType(req.Type),
		Url:       req.Url,
		CreatedAt: time.Now(),
	}

	if err := uow.MediaRepository().Create(ctx, &media); err != nil {
		return nil, err
	}

	return toMediaResponse(&media), nil
}

func (s *mediaService) GetByLesson(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) ([]*dto.MediaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedLesson(ctx, uow, userId, lessonId); err != nil {
		return nil, err
	}

	medias, err := uow.MediaRepository().FindAll(ctx,
		specification.ByLessonID{LessonID: lessonId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MediaResponse, 0, len(medias))
	for _, m := range medias {
		result = append(result, toMediaResponse(m))
	}
	return result, nil
}

func (s *mediaService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateMediaRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	media, err := uow.MediaRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrNotFound
	}

	now := time.Now()
	media.OriginalName = req.OriginalName
	media.UpdatedAt = &now

	return uow.MediaRepository().Update(ctx, media)
}

func (s *mediaService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	media, err := uow.MediaRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrNotFound
	}

	if err := uow.MediaRepository().Delete(ctx, id); err != nil {
		return err
	}

	return s.store.Remove(media.StoragePath)
}

// DeleteByLesson removes the stored files for every media row of a
// lesson. The rows themselves are deleted by the caller's transaction.
func (s *mediaService) DeleteByLesson(ctx context.Context, userId uuid.UUID, lessonId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	medias, err := uow.MediaRepository().FindAll(ctx,
		specification.ByLessonID{LessonID: lessonId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}

	for _, m := range medias {
		if err := s.store.Remove(m.StoragePath); err != nil {
			return err
		}
	}
	return nil
}
