package mapper

import (
	"classboard-be/internal/entity"
	"classboard-be/internal/model"

	"gorm.io/datatypes"
)

type LessonMapper struct{}

func NewLessonMapper() *LessonMapper {
	return &LessonMapper{}
}

func (m *LessonMapper) ToEntity(l *model.Lesson) *entity.Lesson {
	if l == nil {
		return nil
	}
	return &entity.Lesson{
		Id:        l.Id,
		Name:      l.Name,
		ClassId:   l.ClassId,
		FolderId:  l.FolderId,
		UserId:    l.UserId,
		Text:      []byte(l.Text),
		CreatedAt: l.CreatedAt,
		UpdatedAt: nonZeroTime(l.UpdatedAt),
		DeletedAt: deletedAt(l.DeletedAt),
	}
}

func (m *LessonMapper) ToModel(l *entity.Lesson) *model.Lesson {
	if l == nil {
		return nil
	}
	ml := &model.Lesson{
		Id:        l.Id,
		Name:      l.Name,
		ClassId:   l.ClassId,
		FolderId:  l.FolderId,
		UserId:    l.UserId,
		Text:      datatypes.JSON(l.Text),
		CreatedAt: l.CreatedAt,
	}
	if l.UpdatedAt != nil {
		ml.UpdatedAt = *l.UpdatedAt
	}
	return ml
}

func (m *LessonMapper) ToEntities(models []*model.Lesson) []*entity.Lesson {
	out := make([]*entity.Lesson, len(models))
	for i, l := range models {
		out[i] = m.ToEntity(l)
	}
	return out
}
