package contract

import (
	"context"

	"classboard-be/internal/entity"
	"classboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LessonRepository interface {
	Create(ctx context.Context, lesson *entity.Lesson) error
	Update(ctx context.Context, lesson *entity.Lesson) error
	UpdateText(ctx context.Context, id uuid.UUID, text []byte) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lesson, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lesson, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
