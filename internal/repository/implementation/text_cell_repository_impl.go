package implementation

import (
	"context"
	"errors"

	"note-to-self/internal/entity"
	"note-to-self/internal/mapper"
	"note-to-self/internal/model"
	"note-to-self/internal/repository/contract"
	"note-to-self/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TextCellRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TextCellMapper
}

func NewTextCellRepository(db *gorm.DB) contract.TextCellRepository {
	return &TextCellRepositoryImpl{
		db:     db,
		mapper: mapper.NewTextCellMapper(),
	}
}

func (r *TextCellRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TextCellRepositoryImpl) Create(ctx context.Context, cell *entity.TextCell) error {
	m := r.mapper.ToModel(cell)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*cell = *r.mapper.ToEntity(m)
	return nil
}

func (r *TextCellRepositoryImpl) UpsertAll(ctx context.Context, notebookId int64, cells []entity.TextCell) error {
	if len(cells) == 0 {
		return nil
	}
	models := r.mapper.ToModels(notebookId, cells)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "notebook_id"}),
		}).
		CreateInBatches(&models, contract.CellBatchSize).Error
}

// SyncIDSequence advances the Postgres id sequence past atLeast. Cells saved
// with an explicit id do not move the sequence, and a later insert would
// otherwise be handed one of those ids. Other dialects assign max+1 already.
func (r *TextCellRepositoryImpl) SyncIDSequence(ctx context.Context, atLeast int64) error {
	if atLeast <= 0 || r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return r.db.WithContext(ctx).Exec(
		`SELECT setval(s.seq, GREATEST(?, COALESCE(pg_sequence_last_value(s.seq), 0)))
		FROM (SELECT pg_get_serial_sequence(?, 'id')::regclass AS seq) s`,
		atLeast, model.TextCell{}.TableName(),
	).Error
}

func (r *TextCellRepositoryImpl) UpdateText(ctx context.Context, text string, specs ...specification.Specification) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.TextCell{}), specs...)
	res := query.Update("text", text)
	return res.RowsAffected, res.Error
}

// Delete removes every cell matched by specs. Callers must pass at least one
// specification; an unscoped delete is refused by gorm.
func (r *TextCellRepositoryImpl) Delete(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	res := query.Delete(&model.TextCell{})
	return res.RowsAffected, res.Error
}

func (r *TextCellRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TextCell, error) {
	var m model.TextCell
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TextCellRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TextCell, error) {
	var models []*model.TextCell
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TextCellRepositoryImpl) PluckIDs(ctx context.Context, specs ...specification.Specification) ([]int64, error) {
	var ids []int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.TextCell{}), specs...)
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *TextCellRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.TextCell{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
