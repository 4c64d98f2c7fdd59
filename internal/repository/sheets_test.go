package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, Config{
		Driver: DriverSQLite,
		DSN:    "file::memory:?_pragma=foreign_keys(1)",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func sampleHeats() []entity.Heat {
	return []entity.Heat{
		{
			Number: 1,
			LaneA:  entity.LaneRecord{Bib: "12", Name: "Jutta Leerdam", Category: "DSA", Nation: "NED", PersonalRecord: "1:11.61", SeasonBest: "1:12.09"},
			LaneB:  entity.LaneRecord{Bib: "7", Name: "Miho Takagi", Category: "DSA", Nation: "JPN", PersonalRecord: "1:11.71"},
		},
		{
			Number: 2,
			LaneA:  entity.LaneRecord{Name: "Anna A"},
			LaneB:  entity.LaneRecord{Name: "Bea B", RaceTime: "1:15.02"},
		},
	}
}

func TestSheetRepository_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetRepository(openTestDB(t), nil)

	in := &entity.Sheet{
		ContentHash: []byte{0xde, 0xad, 0xbe, 0xef},
		SourcePath:  "/inbox/1000m.pdf",
		SourceType:  constants.PDF,
		Strategy:    string(constants.StrategyTolerant),
		Metadata:    entity.Metadata{Event: "NK Afstanden", Distance: "1000m", Extras: "Thialf, Heerenveen"},
		DiscardedB:  1,
	}
	created, err := repo.Create(ctx, in, sampleHeats())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 2, created.HeatCount)
	assert.Equal(t, constants.SheetStatusOK, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, uuid.Nil, in.ID, "input must not be mutated")

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, in.ContentHash, got.ContentHash)
	assert.Equal(t, in.Metadata, got.Metadata)
	assert.Equal(t, "/inbox/1000m.pdf", got.SourcePath)
	assert.Equal(t, constants.PDF, got.SourceType)
	assert.Equal(t, 1, got.DiscardedB)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	byHash, err := repo.GetByHash(ctx, []byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	assert.Equal(t, created.ID, byHash.ID)

	heats, err := repo.Heats(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, sampleHeats(), heats)
}

func TestSheetRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetRepository(openTestDB(t), nil)

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.GetByHash(ctx, []byte("nope"))
	assert.ErrorIs(t, err, common.ErrNotFound)

	heats, err := repo.Heats(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, heats)
	assert.Empty(t, heats)
}

func TestSheetRepository_DuplicateHashRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetRepository(openTestDB(t), nil)

	first := &entity.Sheet{ContentHash: []byte("same"), Metadata: entity.Metadata{Event: "E", Distance: "D"}}
	_, err := repo.Create(ctx, first, sampleHeats())
	require.NoError(t, err)

	second := &entity.Sheet{ID: uuid.New(), ContentHash: []byte("same"), Metadata: entity.Metadata{Event: "E", Distance: "D"}}
	_, err = repo.Create(ctx, second, sampleHeats())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDatabase)

	_, err = repo.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	heats, err := repo.Heats(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, heats)
}

func TestSheetRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetRepository(openTestDB(t), nil)

	base := time.Date(2024, 11, 8, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &entity.Sheet{
			ContentHash: []byte(fmt.Sprintf("hash-%d", i)),
			SourcePath:  fmt.Sprintf("sheet-%d.txt", i),
			Metadata:    entity.Metadata{Event: "Wedstrijd", Distance: "Afstand"},
			Status:      constants.SheetStatusReview,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}, nil)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "sheet-2.txt", all[0].SourcePath)
	assert.Equal(t, "sheet-0.txt", all[2].SourcePath)
	assert.True(t, all[0].NeedsReview())

	two, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle"}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestHealthCheck(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.HealthCheck(context.Background(), time.Second))
}
