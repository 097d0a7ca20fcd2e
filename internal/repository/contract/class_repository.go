package contract

import (
	"context"

	"classboard-be/internal/entity"
	"classboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ClassRepository interface {
	Create(ctx context.Context, class *entity.Class) error
	Update(ctx context.Context, class *entity.Class) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error // Hard delete all
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Class, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Class, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
