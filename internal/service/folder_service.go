package service

import (
	"context"
	"time"

	"classboard-be/internal/dto"
	"classboard-be/internal/entity"
	"classboard-be/internal/repository/specification"
	"classboard-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFolderService interface {
	GetByClass(ctx context.Context, userId uuid.UUID, classId uuid.UUID) ([]*dto.FolderResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFolderRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type folderService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFolderService(uowFactory unitofwork.RepositoryFactory) IFolderService {
	return &folderService{
		uowFactory: uowFactory,
	}
}

func (c *folderService) GetByClass(ctx context.Context, userId uuid.UUID, classId uuid.UUID) ([]*dto.FolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.ByClassID{ClassID: classId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FolderResponse, 0, len(folders))
	for _, folder := range folders {
		count, err := uow.LessonRepository().Count(ctx,
			specification.ByFolderID{FolderID: &folder.Id},
		)
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.FolderResponse{
			Id:          folder.Id,
			Name:        folder.Name,
			ClassId:     folder.ClassId,
			LessonCount: count,
			CreatedAt:   folder.CreatedAt,
			UpdatedAt:   folder.UpdatedAt,
		})
	}

	return result, nil
}

func (c *folderService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error) {
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

	folder := entity.Folder{
		Id:        uuid.New(),
		Name:      req.Name,
		ClassId:   req.ClassId,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.FolderRepository().Create(ctx, &folder); err != nil {
		return nil, err
	}

	return &dto.CreateFolderResponse{
		Id: folder.Id,
	}, nil
}

func (c *folderService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFolderRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if folder == nil {
		return ErrNotFound
	}

	now := time.Now()
	folder.Name = req.Name
	folder.UpdatedAt = &now

	return uow.FolderRepository().Update(ctx, folder)
}

// Delete removes a folder. Its lessons are kept and moved to the class
// root rather than deleted.
func (c *folderService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if folder == nil {
		return ErrNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	lessons, err := uow.LessonRepository().FindAll(ctx,
		specification.ByFolderID{FolderID: &id},
	)
	if err != nil {
		return err
	}
	for _, lesson := range lessons {
		lesson.FolderId = nil
		if err := uow.LessonRepository().Update(ctx, lesson); err != nil {
			return err
		}
	}

	if err := uow.FolderRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
