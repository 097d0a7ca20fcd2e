package mapper

import (
	"classboard-be/internal/entity"
	"classboard-be/internal/model"
)

type FolderMapper struct{}

func NewFolderMapper() *FolderMapper {
	return &FolderMapper{}
}

func (m *FolderMapper) ToEntity(f *model.Folder) *entity.Folder {
	if f == nil {
		return nil
	}
	return &entity.Folder{
		Id:        f.Id,
		Name:      f.Name,
		ClassId:   f.ClassId,
		UserId:    f.UserId,
		CreatedAt: f.CreatedAt,
		UpdatedAt: nonZeroTime(f.UpdatedAt),
		DeletedAt: deletedAt(f.DeletedAt),
	}
}

func (m *FolderMapper) ToModel(f *entity.Folder) *model.Folder {
	if f == nil {
		return nil
	}
	mf := &model.Folder{
		Id:        f.Id,
		Name:      f.Name,
		ClassId:   f.ClassId,
		UserId:    f.UserId,
		CreatedAt: f.CreatedAt,
	}
	if f.UpdatedAt != nil {
		mf.UpdatedAt = *f.UpdatedAt
	}
	return mf
}

func (m *FolderMapper) ToEntities(models []*model.Folder) []*entity.Folder {
	out := make([]*entity.Folder, len(models))
	for i, f := range models {
		out[i] = m.ToEntity(f)
	}
	return out
}
