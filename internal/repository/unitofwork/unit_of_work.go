package unitofwork

import (
	"context"

	"classboard-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CategoryRepository() contract.CategoryRepository
	ClassRepository() contract.ClassRepository
	FolderRepository() contract.FolderRepository
	LessonRepository() contract.LessonRepository
	MediaRepository() contract.MediaRepository
}
