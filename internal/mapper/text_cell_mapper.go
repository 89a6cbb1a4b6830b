package mapper

import (
	"note-to-self/internal/entity"
	"note-to-self/internal/model"
)

type TextCellMapper struct{}

func NewTextCellMapper() *TextCellMapper {
	return &TextCellMapper{}
}

func (m *TextCellMapper) ToEntity(c *model.TextCell) *entity.TextCell {
	if c == nil {
		return nil
	}
	return &entity.TextCell{
		Id:         c.Id,
		NotebookId: c.NotebookId,
		Text:       c.Text,
	}
}

func (m *TextCellMapper) ToModel(c *entity.TextCell) *model.TextCell {
	if c == nil {
		return nil
	}
	return &model.TextCell{
		Id:         c.Id,
		NotebookId: c.NotebookId,
		Text:       c.Text,
	}
}

func (m *TextCellMapper) ToEntities(cells []*model.TextCell) []*entity.TextCell {
	entities := make([]*entity.TextCell, len(cells))
	for i, c := range cells {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *TextCellMapper) ToEntityValues(cells []model.TextCell) []entity.TextCell {
	entities := make([]entity.TextCell, len(cells))
	for i := range cells {
		entities[i] = *m.ToEntity(&cells[i])
	}
	return entities
}

// ToModels re-parents every cell to notebookId.
func (m *TextCellMapper) ToModels(notebookId int64, cells []entity.TextCell) []*model.TextCell {
	models := make([]*model.TextCell, len(cells))
	for i := range cells {
		models[i] = m.ToModel(&cells[i])
		models[i].NotebookId = notebookId
	}
	return models
}
