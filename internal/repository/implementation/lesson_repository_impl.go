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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LessonRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LessonMapper
}

func NewLessonRepository(db *gorm.DB) contract.LessonRepository {
	return &LessonRepositoryImpl{
		db:     db,
		mapper: mapper.NewLessonMapper(),
	}
}

func (r *LessonRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LessonRepositoryImpl) Create(ctx context.Context, lesson *entity.Lesson) error {
	m := r.mapper.ToModel(lesson)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*lesson = *r.mapper.ToEntity(m)
	return nil
}

func (r *LessonRepositoryImpl) Update(ctx context.Context, lesson *entity.Lesson) error {
	m := r.mapper.ToModel(lesson)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*lesson = *r.mapper.ToEntity(m)
	return nil
}

// UpdateText writes only the lesson body. Autosave hits this path
// frequently, so it avoids touching the other columns.
func (r *LessonRepositoryImpl) UpdateText(ctx context.Context, id uuid.UUID, text []byte) error {
	result := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("id = ?", id).
		Update("text", datatypes.JSON(text))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LessonRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Lesson{}, id).Error
}

func (r *LessonRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lesson, error) {
	var m model.Lesson
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LessonRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lesson, error) {
	var models []*model.Lesson
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LessonRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Lesson{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
