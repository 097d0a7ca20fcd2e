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

type ICategoryService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.CategoryResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CreateCategoryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCategoryRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type categoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCategoryService(uowFactory unitofwork.RepositoryFactory) ICategoryService {
	return &categoryService{
		uowFactory: uowFactory,
	}
}

func (c *categoryService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.CategoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	categories, err := uow.CategoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		count, err := uow.ClassRepository().Count(ctx,
			specification.ByCategoryID{CategoryID: &category.Id},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}

		result = append(result, &dto.CategoryResponse{
			Id:         category.Id,
			Name:       category.Name,
			ClassCount: count,
			CreatedAt:  category.CreatedAt,
			UpdatedAt:  category.UpdatedAt,
		})
	}

	return result, nil
}

func (c *categoryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CreateCategoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	category := entity.Category{
		Id:        uuid.New(),
		Name:      req.Name,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.CategoryRepository().Create(ctx, &category); err != nil {
		return nil, err
	}

	return &dto.CreateCategoryResponse{
		Id: category.Id,
	}, nil
}

func (c *categoryService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCategoryRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	now := time.Now()
	category.Name = req.Name
	category.UpdatedAt = &now

	return uow.CategoryRepository().Update(ctx, category)
}

// Delete removes a category. Its classes are not deleted; they drop back
// to the uncategorized bucket.
func (c *categoryService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	classes, err := uow.ClassRepository().FindAll(ctx,
		specification.ByCategoryID{CategoryID: &id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	for _, class := range classes {
		class.CategoryId = nil
		if err := uow.ClassRepository().Update(ctx, class); err != nil {
			return err
		}
	}

	if err := uow.CategoryRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
