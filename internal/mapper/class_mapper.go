package mapper

import (
	"classboard-be/internal/entity"
	"classboard-be/internal/model"
)

type ClassMapper struct{}

func NewClassMapper() *ClassMapper {
	return &ClassMapper{}
}

func (m *ClassMapper) ToEntity(c *model.Class) *entity.Class {
	if c == nil {
		return nil
	}
	return &entity.Class{
		Id:          c.Id,
		Name:        c.Name,
		Description: c.Description,
		CategoryId:  c.CategoryId,
		UserId:      c.UserId,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   nonZeroTime(c.UpdatedAt),
		DeletedAt:   deletedAt(c.DeletedAt),
	}
}

func (m *ClassMapper) ToModel(c *entity.Class) *model.Class {
	if c == nil {
		return nil
	}
	mc := &model.Class{
		Id:          c.Id,
		Name:        c.Name,
		Description: c.Description,
		CategoryId:  c.CategoryId,
		UserId:      c.UserId,
		CreatedAt:   c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		mc.UpdatedAt = *c.UpdatedAt
	}
	return mc
}

func (m *ClassMapper) ToEntities(models []*model.Class) []*entity.Class {
	out := make([]*entity.Class, len(models))
	for i, c := range models {
		out[i] = m.ToEntity(c)
	}
	return out
}
