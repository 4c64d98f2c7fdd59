package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

var sheetColumns = []string{
	"id", "content_hash", "source_path", "source_type", "strategy",
	"event", "distance", "extras",
	"heat_count", "discarded_a", "discarded_b", "status", "created_at",
}

var laneColumns = []string{
	"id", "heat_id", "lane", "bib", "name", "category", "nation",
	"personal_record", "season_best", "race_time",
}

type SheetRepository interface {
	// Create stores the sheet together with its heats in one transaction.
	Create(ctx context.Context, sheet *entity.Sheet, heats []entity.Heat) (*entity.Sheet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sheet, error)
	GetByHash(ctx context.Context, hash []byte) (*entity.Sheet, error)
	// List returns the most recent sheets first.
	List(ctx context.Context, limit int) ([]*entity.Sheet, error)
	// Heats returns the heats of a sheet ordered by heat number.
	Heats(ctx context.Context, sheetID uuid.UUID) ([]entity.Heat, error)
}

type sheetRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewSheetRepository(db *DB, logger *slog.Logger) SheetRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &sheetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sheetRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect())
}

func (r *sheetRepository) Create(ctx context.Context, sheet *entity.Sheet, heats []entity.Heat) (*entity.Sheet, error) {
	s := *sheet
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.Status == "" {
		s.Status = constants.SheetStatusOK
	}
	s.HeatCount = len(heats)

	tx, err := r.db.Driver.Tx(ctx)
	if err != nil {
		r.logger.Error("failed to begin transaction", "error", err)
		return nil, dbError("begin transaction", err)
	}

	if err := r.insert(ctx, tx, &s, heats); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error("rollback failed", "sheet_id", s.ID, "error", rbErr)
		}
		r.logger.Error("failed to create sheet", "sheet_id", s.ID, "error", err)
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit sheet", "sheet_id", s.ID, "error", err)
		return nil, dbError("commit", err)
	}

	r.logger.Info("sheet stored",
		"sheet_id", s.ID,
		"heats", s.HeatCount,
		"status", s.Status,
	)
	return &s, nil
}

func (r *sheetRepository) insert(ctx context.Context, tx dialect.Tx, s *entity.Sheet, heats []entity.Heat) error {
	b := r.builder()

	query, args := b.Insert(tableSheets).
		Columns(sheetColumns...).
		Values(
			s.ID, s.ContentHash, s.SourcePath, s.SourceType, s.Strategy,
			s.Metadata.Event, s.Metadata.Distance, s.Metadata.Extras,
			s.HeatCount, s.DiscardedA, s.DiscardedB, string(s.Status), s.CreatedAt,
		).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return dbError("insert sheet", err)
	}

	for _, h := range heats {
		heatID := uuid.New()
		query, args = b.Insert(tableHeats).
			Columns("id", "sheet_id", "number").
			Values(heatID, s.ID, h.Number).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return dbError(fmt.Sprintf("insert heat %d", h.Number), err)
		}

		lanes := b.Insert(tableLanes).Columns(laneColumns...)
		for _, l := range []struct {
			lane constants.Lane
			rec  entity.LaneRecord
		}{{constants.LaneA, h.LaneA}, {constants.LaneB, h.LaneB}} {
			lanes.Values(
				uuid.New(), heatID, string(l.lane),
				l.rec.Bib, l.rec.Name, l.rec.Category, l.rec.Nation,
				l.rec.PersonalRecord, l.rec.SeasonBest, l.rec.RaceTime,
			)
		}
		query, args = lanes.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return dbError(fmt.Sprintf("insert lanes of heat %d", h.Number), err)
		}
	}
	return nil
}

func (r *sheetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sheet, error) {
	sheets, err := r.selectSheets(ctx, entsql.EQ("id", id), 1)
	if err != nil {
		r.logger.Error("failed to get sheet", "sheet_id", id, "error", err)
		return nil, err
	}
	if len(sheets) == 0 {
		return nil, common.NewAppError("NOT_FOUND", fmt.Sprintf("sheet %s not found", id), common.ErrNotFound)
	}
	return sheets[0], nil
}

func (r *sheetRepository) GetByHash(ctx context.Context, hash []byte) (*entity.Sheet, error) {
	sheets, err := r.selectSheets(ctx, entsql.EQ("content_hash", hash), 1)
	if err != nil {
		r.logger.Error("failed to get sheet by hash", "error", err)
		return nil, err
	}
	if len(sheets) == 0 {
		return nil, common.NewAppError("NOT_FOUND", "no sheet with this content hash", common.ErrNotFound)
	}
	return sheets[0], nil
}

func (r *sheetRepository) List(ctx context.Context, limit int) ([]*entity.Sheet, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	sheets, err := r.selectSheets(ctx, nil, limit)
	if err != nil {
		r.logger.Error("failed to list sheets", "error", err)
		return nil, err
	}
	return sheets, nil
}

func (r *sheetRepository) selectSheets(ctx context.Context, where *entsql.Predicate, limit int) ([]*entity.Sheet, error) {
	sel := r.builder().Select(sheetColumns...).From(entsql.Table(tableSheets))
	if where != nil {
		sel = sel.Where(where)
	}
	query, args := sel.OrderBy(entsql.Desc("created_at")).Limit(limit).Query()

	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, query, args, &rows); err != nil {
		return nil, dbError("query sheets", err)
	}
	defer rows.Close()

	var out []*entity.Sheet
	for rows.Next() {
		var (
			s      entity.Sheet
			status string
		)
		if err := rows.Scan(
			&s.ID, &s.ContentHash, &s.SourcePath, &s.SourceType, &s.Strategy,
			&s.Metadata.Event, &s.Metadata.Distance, &s.Metadata.Extras,
			&s.HeatCount, &s.DiscardedA, &s.DiscardedB, &status, &s.CreatedAt,
		); err != nil {
			return nil, dbError("scan sheet", err)
		}
		s.Status = constants.SheetStatus(status)
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate sheets", err)
	}
	return out, nil
}

func (r *sheetRepository) Heats(ctx context.Context, sheetID uuid.UUID) ([]entity.Heat, error) {
	b := r.builder()
	query, args := b.Select("id", "number").
		From(entsql.Table(tableHeats)).
		Where(entsql.EQ("sheet_id", sheetID)).
		OrderBy("number").
		Query()

	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, query, args, &rows); err != nil {
		r.logger.Error("failed to query heats", "sheet_id", sheetID, "error", err)
		return nil, dbError("query heats", err)
	}

	heats := []entity.Heat{}
	index := map[uuid.UUID]int{}
	var ids []any
	for rows.Next() {
		var (
			id uuid.UUID
			h  entity.Heat
		)
		if err := rows.Scan(&id, &h.Number); err != nil {
			rows.Close()
			return nil, dbError("scan heat", err)
		}
		index[id] = len(heats)
		heats = append(heats, h)
		ids = append(ids, id)
	}
	err := rows.Err()
	rows.Close()
	if err != nil {
		return nil, dbError("iterate heats", err)
	}
	if len(ids) == 0 {
		return heats, nil
	}

	query, args = b.Select(laneColumns[1:]...).
		From(entsql.Table(tableLanes)).
		Where(entsql.In("heat_id", ids...)).
		Query()
	var lanes entsql.Rows
	if err := r.db.Driver.Query(ctx, query, args, &lanes); err != nil {
		r.logger.Error("failed to query lanes", "sheet_id", sheetID, "error", err)
		return nil, dbError("query lanes", err)
	}
	defer lanes.Close()

	for lanes.Next() {
		var (
			heatID uuid.UUID
			lane   string
			rec    entity.LaneRecord
		)
		if err := lanes.Scan(
			&heatID, &lane, &rec.Bib, &rec.Name, &rec.Category, &rec.Nation,
			&rec.PersonalRecord, &rec.SeasonBest, &rec.RaceTime,
		); err != nil {
			return nil, dbError("scan lane", err)
		}
		i, ok := index[heatID]
		if !ok {
			continue
		}
		switch constants.Lane(lane) {
		case constants.LaneA:
			heats[i].LaneA = rec
		case constants.LaneB:
			heats[i].LaneB = rec
		}
	}
	if err := lanes.Err(); err != nil {
		return nil, dbError("iterate lanes", err)
	}
	return heats, nil
}

func dbError(op string, err error) error {
	if errors.Is(err, common.ErrDatabase) {
		return err
	}
	return common.NewAppError("DB_ERROR", op, fmt.Errorf("%w: %w", common.ErrDatabase, err))
}
