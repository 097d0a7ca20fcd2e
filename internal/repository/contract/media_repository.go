package contract

import (
	"context"

	"classboard-be/internal/entity"
	"classboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	Update(ctx context.Context, media *entity.Media) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByLessonId(ctx context.Context, lessonId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Media, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Media, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
