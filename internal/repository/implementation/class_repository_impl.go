package implementation

import (
	"context"
	"errors"

	"classboard-be/internal/entity"
	"classboard-be/internal/mapper"
	"classboard-be/internal/model"
	"classboard-be/internal/repository/contract"
	"classboard-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClassMapper
}

func NewClassRepository(db *gorm.DB) contract.ClassRepository {
	return &ClassRepositoryImpl{
		db:     db,
		mapper: mapper.NewClassMapper(),
	}
}

func (r *ClassRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ClassRepositoryImpl) Create(ctx context.Context, class *entity.Class) error {
	m := r.mapper.ToModel(class)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*class = *r.mapper.ToEntity(m)
	return nil
}

func (r *ClassRepositoryImpl) Update(ctx context.Context, class *entity.Class) error {
	m := r.mapper.ToModel(class)
	// Save updates all fields including zero values and cleared foreign keys.
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*class = *r.mapper.ToEntity(m)
	return nil
}

func (r *ClassRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Class{}, id).Error
}

func (r *ClassRepositoryImpl) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Where("user_id = ?", userId).Delete(&model.Class{}).Error
}

func (r *ClassRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Class, error) {
	var m model.Class
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ClassRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Class, error) {
	var models []*model.Class
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ClassRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Class{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
