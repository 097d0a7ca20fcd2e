package mapper

import (
	"classboard-be/internal/entity"
	"classboard-be/internal/model"
)

type MediaMapper struct{}

func NewMediaMapper() *MediaMapper {
	return &MediaMapper{}
}

func (m *MediaMapper) ToEntity(md *model.Media) *entity.Media {
	if md == nil {
		return nil
	}
	return &entity.Media{
		Id:           md.Id,
		LessonId:     md.LessonId,
		UserId:       md.UserId,
		Type:         entity.MediaType(md.Type),
		Url:          md.Url,
		OriginalName: md.OriginalName,
		StoragePath:  md.StoragePath,
		CreatedAt:    md.CreatedAt,
		UpdatedAt:    nonZeroTime(md.UpdatedAt),
	}
}

func (m *MediaMapper) ToModel(md *entity.Media) *model.Media {
	if md == nil {
		return nil
	}
	mm := &model.Media{
		Id:           md.Id,
		LessonId:     md.LessonId,
		UserId:       md.UserId,
		Type:         string(md.Type),
		Url:          md.Url,
		OriginalName: md.OriginalName,
		StoragePath:  md.StoragePath,
		CreatedAt:    md.CreatedAt,
	}
	if md.UpdatedAt != nil {
		mm.UpdatedAt = *md.UpdatedAt
	}
	return mm
}

func (m *MediaMapper) ToEntities(models []*model.Media) []*entity.Media {
	out := make([]*entity.Media, len(models))
	for i, md := range models {
		out[i] = m.ToEntity(md)
	}
	return out
}
