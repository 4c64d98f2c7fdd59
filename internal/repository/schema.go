package repository

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/joseph-ayodele/heat-tracker/internal/common"
)

const (
	tableSheets = "sheets"
	tableHeats  = "heats"
	tableLanes  = "lanes"
)

var (
	// SheetsColumns holds the columns for the "sheets" table.
	SheetsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "content_hash", Type: field.TypeBytes, Unique: true},
		{Name: "source_path", Type: field.TypeString},
		{Name: "source_type", Type: field.TypeString, Size: 8},
		{Name: "strategy", Type: field.TypeString, Size: 16},
		{Name: "event", Type: field.TypeString},
		{Name: "distance", Type: field.TypeString},
		{Name: "extras", Type: field.TypeString, Default: ""},
		{Name: "heat_count", Type: field.TypeInt, Default: 0},
		{Name: "discarded_a", Type: field.TypeInt, Default: 0},
		{Name: "discarded_b", Type: field.TypeInt, Default: 0},
		{Name: "status", Type: field.TypeString, Size: 16},
		{Name: "created_at", Type: field.TypeTime},
	}
	// SheetsTable holds the schema information for the "sheets" table.
	SheetsTable = &schema.Table{
		Name:       tableSheets,
		Columns:    SheetsColumns,
		PrimaryKey: []*schema.Column{SheetsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sheet_created_at", Columns: []*schema.Column{SheetsColumns[12]}},
		},
	}
	// HeatsColumns holds the columns for the "heats" table.
	HeatsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "sheet_id", Type: field.TypeUUID},
		{Name: "number", Type: field.TypeInt},
	}
	// HeatsTable holds the schema information for the "heats" table.
	HeatsTable = &schema.Table{
		Name:       tableHeats,
		Columns:    HeatsColumns,
		PrimaryKey: []*schema.Column{HeatsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "heats_sheets_heats",
				Columns:    []*schema.Column{HeatsColumns[1]},
				RefColumns: []*schema.Column{SheetsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "heat_sheet_id_number", Unique: true, Columns: []*schema.Column{HeatsColumns[1], HeatsColumns[2]}},
		},
	}
	// LanesColumns holds the columns for the "lanes" table.
	LanesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "heat_id", Type: field.TypeUUID},
		{Name: "lane", Type: field.TypeString, Size: 1},
		{Name: "bib", Type: field.TypeString, Default: ""},
		{Name: "name", Type: field.TypeString, Default: ""},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "nation", Type: field.TypeString, Default: ""},
		{Name: "personal_record", Type: field.TypeString, Default: ""},
		{Name: "season_best", Type: field.TypeString, Default: ""},
		{Name: "race_time", Type: field.TypeString, Default: ""},
	}
	// LanesTable holds the schema information for the "lanes" table.
	LanesTable = &schema.Table{
		Name:       tableLanes,
		Columns:    LanesColumns,
		PrimaryKey: []*schema.Column{LanesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "lanes_heats_lanes",
				Columns:    []*schema.Column{LanesColumns[1]},
				RefColumns: []*schema.Column{HeatsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "lane_heat_id_lane", Unique: true, Columns: []*schema.Column{LanesColumns[1], LanesColumns[2]}},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SheetsTable,
		HeatsTable,
		LanesTable,
	}
)

func init() {
	HeatsTable.ForeignKeys[0].RefTable = SheetsTable
	LanesTable.ForeignKeys[0].RefTable = HeatsTable
}

// Migrate creates or upgrades the sheets, heats and lanes tables.
func (db *DB) Migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(db.Driver)
	if err != nil {
		return common.NewAppError("DB_MIGRATE", "init migration", fmt.Errorf("%w: %w", common.ErrDatabase, err))
	}
	if err := m.Create(ctx, Tables...); err != nil {
		db.logger.Error("schema migration failed", "error", err)
		return common.NewAppError("DB_MIGRATE", "create tables", fmt.Errorf("%w: %w", common.ErrDatabase, err))
	}
	db.logger.Info("schema migration complete", "tables", len(Tables))
	return nil
}
