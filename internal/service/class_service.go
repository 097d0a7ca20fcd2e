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

type IClassService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ClassResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateClassRequest) (*dto.CreateClassResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ClassResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateClassRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MoveClass(ctx context.Context, userId uuid.UUID, req *dto.MoveClassRequest) error
}

type classService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewClassService(uowFactory unitofwork.RepositoryFactory) IClassService {
	return &classService{
		uowFactory: uowFactory,
	}
}

func (c *classService) toResponse(ctx context.Context, uow unitofwork.UnitOfWork, class *entity.Class) (*dto.ClassResponse, error) {
	count, err := uow.LessonRepository().Count(ctx, specification.Filter("class_id", class.Id))
	if err != nil {
		return nil, err
	}
	return &dto.ClassResponse{
		Id:          class.Id,
		Name:        class.Name,
		Description: class.Description,
		CategoryId:  class.CategoryId,
		LessonCount: count,
		CreatedAt:   class.CreatedAt,
		UpdatedAt:   class.UpdatedAt,
	}, nil
}

func (c *classService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ClassResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	classes, err := uow.ClassRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ClassResponse, 0, len(classes))
	for _, class := range classes {
		res, err := c.toResponse(ctx, uow, class)
		if err != nil {
			return nil, err
		}
		result = append(result, res)
	}

	return result, nil
}

func (c *classService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateClassRequest) (*dto.CreateClassResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if req.CategoryId != nil {
		category, err := uow.CategoryRepository().FindOne(ctx,
			specification.ByID{ID: *req.CategoryId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrNotFound
		}
	}

	class := entity.Class{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CategoryId:  req.CategoryId,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.ClassRepository().Create(ctx, &class); err != nil {
		return nil, err
	}

	return &dto.CreateClassResponse{
		Id: class.Id,
	}, nil
}

func (c *classService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ClassResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	class, err := uow.ClassRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}

	return c.toResponse(ctx, uow, class)
}

func (c *classService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateClassRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	class, err := uow.ClassRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if class == nil {
		return ErrNotFound
	}

	now := time.Now()
	class.Name = req.Name
	class.Description = req.Description
	class.UpdatedAt = &now

	return uow.ClassRepository().Update(ctx, class)
}

// Delete removes the class, its folders, its lessons and their media.
func (c *classService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	class, err := uow.ClassRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if class == nil {
		return ErrNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	lessons, err := uow.LessonRepository().FindAll(ctx, specification.Filter("class_id", id))
	if err != nil {
		return err
	}
	for _, lesson := range lessons {
		if err := uow.MediaRepository().DeleteAllByLessonId(ctx, lesson.Id); err != nil {
			return err
		}
		if err := uow.LessonRepository().Delete(ctx, lesson.Id); err != nil {
			return err
		}
	}

	folders, err := uow.FolderRepository().FindAll(ctx, specification.Filter("class_id", id))
	if err != nil {
		return err
	}
	for _, folder := range folders {
		if err := uow.FolderRepository().Delete(ctx, folder.Id); err != nil {
			return err
		}
	}

	if err := uow.ClassRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *classService) MoveClass(ctx context.Context, userId uuid.UUID, req *dto.MoveClassRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	class, err := uow.ClassRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if class == nil {
		return ErrNotFound
	}

	if req.CategoryId != nil {
		category, err := uow.CategoryRepository().FindOne(ctx,
			specification.ByID{ID: *req.CategoryId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrNotFound
		}
	}

	class.CategoryId = req.CategoryId
	return uow.ClassRepository().Update(ctx, class)
}
