package mapper

import (
	"classboard-be/internal/entity"
	"classboard-be/internal/model"
)

type CategoryMapper struct{}

func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

func (m *CategoryMapper) ToEntity(c *model.Category) *entity.Category {
	if c == nil {
		return nil
	}
	return &entity.Category{
		Id:        c.Id,
		Name:      c.Name,
		UserId:    c.UserId,
		CreatedAt: c.CreatedAt,
		UpdatedAt: nonZeroTime(c.UpdatedAt),
		DeletedAt: deletedAt(c.DeletedAt),
	}
}

func (m *CategoryMapper) ToModel(c *entity.Category) *model.Category {
	if c == nil {
		return nil
	}
	mc := &model.Category{
		Id:        c.Id,
		Name:      c.Name,
		UserId:    c.UserId,
		CreatedAt: c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		mc.UpdatedAt = *c.UpdatedAt
	}
	return mc
}

func (m *CategoryMapper) ToEntities(models []*model.Category) []*entity.Category {
	out := make([]*entity.Category, len(models))
	for i, c := range models {
		out[i] = m.ToEntity(c)
	}
	return out
}
