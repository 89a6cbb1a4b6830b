package service

import (
	"context"
	"fmt"
	"time"

	"note-to-self/internal/dto"
	"note-to-self/internal/entity"
	"note-to-self/internal/mapper"
	"note-to-self/internal/pkg/access"
	"note-to-self/internal/pkg/logger"
	"note-to-self/internal/pkg/serverutils"
	"note-to-self/internal/repository/contract"
	"note-to-self/internal/repository/specification"
	"note-to-self/internal/repository/unitofwork"
	"note-to-self/pkg/events"

	"golang.org/x/crypto/bcrypt"
)

// INotebookService is the notebook store. Every call that addresses a specific
// notebook takes the caller's grant and refuses with ErrForbidden when the
// grant was issued for a different notebook.
type INotebookService interface {
	Create(ctx context.Context, req *dto.OpenNotebookRequest) (int64, error)
	FindByName(ctx context.Context, name string) (*int64, error)
	// Select resolves an existing notebook by name and checks its password.
	Select(ctx context.Context, req *dto.OpenNotebookRequest) (int64, error)

	Load(ctx context.Context, grant *access.Grant, id int64) (*dto.NotebookDto, error)
	Save(ctx context.Context, grant *access.Grant, req *dto.NotebookDto) error

	AddCell(ctx context.Context, grant *access.Grant, notebookId int64) (*dto.TextCellDto, error)
	DeleteCell(ctx context.Context, grant *access.Grant, notebookId, cellId int64) (bool, error)
	UpdateCellText(ctx context.Context, grant *access.Grant, notebookId, cellId int64, text string) error
	GetCell(ctx context.Context, grant *access.Grant, notebookId, cellId int64) (*dto.TextCellDto, error)
	ListCellIds(ctx context.Context, grant *access.Grant, notebookId int64) ([]int64, error)
}

type notebookService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	dtoMapper        *mapper.NotebookDtoMapper
	queryTimeout     time.Duration
	logger           logger.ILogger
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	queryTimeout time.Duration,
	log logger.ILogger,
) INotebookService {
	return &notebookService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		dtoMapper:        mapper.NewNotebookDtoMapper(),
		queryTimeout:     queryTimeout,
		logger:           log,
	}
}

func (s *notebookService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *notebookService) publish(ctx context.Context, event events.NotebookEvent) {
	if s.publisherService == nil {
		return
	}
	// the store call already committed; a lost notification is only logged
	if err := s.publisherService.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("NotebookService", "failed to publish notebook event", map[string]interface{}{
			"type":        event.Type,
			"notebook_id": event.NotebookId,
			"error":       err.Error(),
		})
	}
}

func checkGrant(grant *access.Grant, notebookId int64) error {
	if !grant.Allows(notebookId) {
		return serverutils.ErrForbidden
	}
	return nil
}

func (s *notebookService) Create(ctx context.Context, req *dto.OpenNotebookRequest) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.NotebookRepository().Count(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return 0, translateStoreError(err)
	}
	if count > 0 {
		return 0, serverutils.ErrAlreadyExists
	}

	notebook := entity.Notebook{Name: req.Name}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return 0, err
		}
		hashStr := string(hash)
		notebook.PasswordHash = &hashStr
	}

	// the unique index still catches a create racing past the count above
	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return 0, translateStoreError(err)
	}

	s.logger.Info("NotebookService", "notebook created", map[string]interface{}{
		"notebook_id": notebook.Id,
		"protected":   notebook.HasPassword(),
	})
	return notebook.Id, nil
}

// bcrypt only reads the first 72 bytes; validator's max counts runes.
const maxPasswordBytes = 72

func hashPassword(password string) ([]byte, error) {
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("password longer than %d bytes: %w", maxPasswordBytes, serverutils.ErrBadRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash notebook password: %w", err)
	}
	return hash, nil
}

func (s *notebookService) FindByName(ctx context.Context, name string) (*int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, translateStoreError(err)
	}
	if notebook == nil {
		return nil, nil
	}
	return &notebook.Id, nil
}

func (s *notebookService) Select(ctx context.Context, req *dto.OpenNotebookRequest) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return 0, translateStoreError(err)
	}
	if notebook == nil {
		return 0, fmt.Errorf("notebook %q: %w", req.Name, serverutils.ErrNotFound)
	}

	if notebook.HasPassword() {
		err := bcrypt.CompareHashAndPassword([]byte(*notebook.PasswordHash), []byte(req.Password))
		if err != nil {
			return 0, serverutils.ErrUnauthorized
		}
	}
	return notebook.Id, nil
}

// Load reads the notebook row and its cells inside one read transaction so
// both come from the same snapshot.
func (s *notebookService) Load(ctx context.Context, grant *access.Grant, id int64) (*dto.NotebookDto, error) {
	if err := checkGrant(grant, id); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, translateStoreError(err)
	}
	defer uow.Rollback()

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, translateStoreError(err)
	}
	if notebook == nil {
		return nil, fmt.Errorf("notebook %d: %w", id, serverutils.ErrNotFound)
	}

	cells, err := uow.TextCellRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: id},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, translateStoreError(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, translateStoreError(err)
	}

	for _, c := range cells {
		notebook.AddCell(*c)
	}
	return s.dtoMapper.ToDto(notebook), nil
}

// Save makes the stored notebook match the snapshot: name upsert, batched
// cell upsert, then removal of every stored cell the snapshot omits. All
// steps share one transaction. A snapshot cell id owned by another notebook
// is moved into this one.
func (s *notebookService) Save(ctx context.Context, grant *access.Grant, req *dto.NotebookDto) error {
	if err := checkGrant(grant, req.Id); err != nil {
		return err
	}

	seen := make(map[int64]struct{}, len(req.Cells))
	for _, c := range req.Cells {
		if c.Id <= 0 {
			return fmt.Errorf("cell id %d: %w", c.Id, serverutils.ErrBadRequest)
		}
		if _, dup := seen[c.Id]; dup {
			return fmt.Errorf("cell %d appears twice: %w", c.Id, serverutils.ErrBadRequest)
		}
		seen[c.Id] = struct{}{}
	}

	notebook := s.dtoMapper.ToEntity(req)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return translateStoreError(err)
	}
	defer uow.Rollback()

	if err := uow.NotebookRepository().Upsert(ctx, notebook); err != nil {
		return translateStoreError(err)
	}

	if err := uow.TextCellRepository().UpsertAll(ctx, notebook.Id, notebook.Cells); err != nil {
		return translateStoreError(err)
	}

	if err := uow.TextCellRepository().SyncIDSequence(ctx, maxCellId(notebook.Cells)); err != nil {
		return translateStoreError(err)
	}

	removed, err := s.removeOmittedCells(ctx, uow, notebook)
	if err != nil {
		return translateStoreError(err)
	}

	if err := uow.Commit(); err != nil {
		return translateStoreError(err)
	}

	s.logger.Info("NotebookService", "notebook saved", map[string]interface{}{
		"notebook_id":   notebook.Id,
		"cells":         len(notebook.Cells),
		"cells_removed": removed,
	})
	s.publish(ctx, events.NewNotebookEvent(events.NotebookSaved, notebook.Id, nil, grant.SessionId))
	return nil
}

// removeOmittedCells deletes the stored cells of notebook that the snapshot
// leaves out, in chunks so no statement outgrows the bind parameter limit.
func (s *notebookService) removeOmittedCells(ctx context.Context, uow unitofwork.UnitOfWork, notebook *entity.Notebook) (int64, error) {
	stored, err := uow.TextCellRepository().PluckIDs(ctx, specification.ByNotebookID{NotebookID: notebook.Id})
	if err != nil {
		return 0, err
	}

	keep := make(map[int64]struct{}, len(notebook.Cells))
	for _, id := range notebook.CellIds() {
		keep[id] = struct{}{}
	}
	stale := make([]int64, 0, len(stored))
	for _, id := range stored {
		if _, ok := keep[id]; !ok {
			stale = append(stale, id)
		}
	}

	var removed int64
	for start := 0; start < len(stale); start += contract.CellBatchSize {
		end := min(start+contract.CellBatchSize, len(stale))
		n, err := uow.TextCellRepository().Delete(ctx,
			specification.ByNotebookID{NotebookID: notebook.Id},
			specification.ByIDs{IDs: stale[start:end]},
		)
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}

func maxCellId(cells []entity.TextCell) int64 {
	var top int64
	for _, c := range cells {
		top = max(top, c.Id)
	}
	return top
}

func (s *notebookService) AddCell(ctx context.Context, grant *access.Grant, notebookId int64) (*dto.TextCellDto, error) {
	if err := checkGrant(grant, notebookId); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, translateStoreError(err)
	}
	defer uow.Rollback()

	count, err := uow.NotebookRepository().Count(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, translateStoreError(err)
	}
	if count == 0 {
		return nil, fmt.Errorf("notebook %d: %w", notebookId, serverutils.ErrNotFound)
	}

	cell := entity.TextCell{NotebookId: notebookId, Text: entity.NewCellPlaceholder}
	if err := uow.TextCellRepository().Create(ctx, &cell); err != nil {
		return nil, translateInsertError(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, translateStoreError(err)
	}

	s.publish(ctx, events.NewNotebookEvent(events.CellAdded, notebookId, &cell.Id, grant.SessionId))
	res := s.dtoMapper.CellToDto(&cell)
	return &res, nil
}

func (s *notebookService) DeleteCell(ctx context.Context, grant *access.Grant, notebookId, cellId int64) (bool, error) {
	if err := checkGrant(grant, notebookId); err != nil {
		return false, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	removed, err := uow.TextCellRepository().Delete(ctx,
		specification.ByID{ID: cellId},
		specification.ByNotebookID{NotebookID: notebookId},
	)
	if err != nil {
		return false, translateStoreError(err)
	}
	if removed == 0 {
		s.logger.Debug("NotebookService", "cell already gone", map[string]interface{}{
			"notebook_id": notebookId,
			"cell_id":     cellId,
		})
		return false, nil
	}

	s.publish(ctx, events.NewNotebookEvent(events.CellDeleted, notebookId, &cellId, grant.SessionId))
	return true, nil
}

// UpdateCellText is a no-op for a cell that does not exist in the notebook.
func (s *notebookService) UpdateCellText(ctx context.Context, grant *access.Grant, notebookId, cellId int64, text string) error {
	if err := checkGrant(grant, notebookId); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	updated, err := uow.TextCellRepository().UpdateText(ctx, text,
		specification.ByID{ID: cellId},
		specification.ByNotebookID{NotebookID: notebookId},
	)
	if err != nil {
		return translateStoreError(err)
	}

	if updated > 0 {
		s.publish(ctx, events.NewNotebookEvent(events.CellUpdated, notebookId, &cellId, grant.SessionId))
	}
	return nil
}

func (s *notebookService) GetCell(ctx context.Context, grant *access.Grant, notebookId, cellId int64) (*dto.TextCellDto, error) {
	if err := checkGrant(grant, notebookId); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	cell, err := uow.TextCellRepository().FindOne(ctx,
		specification.ByID{ID: cellId},
		specification.ByNotebookID{NotebookID: notebookId},
	)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if cell == nil {
		return nil, fmt.Errorf("cell %d: %w", cellId, serverutils.ErrNotFound)
	}

	res := s.dtoMapper.CellToDto(cell)
	return &res, nil
}

func (s *notebookService) ListCellIds(ctx context.Context, grant *access.Grant, notebookId int64) ([]int64, error) {
	if err := checkGrant(grant, notebookId); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ids, err := uow.TextCellRepository().PluckIDs(ctx,
		specification.ByNotebookID{NotebookID: notebookId},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
