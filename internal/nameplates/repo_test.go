package nameplates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/duracem/nameplate-backend/pkg/db/models"
)

func setupNameplatesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	unverified := `
CREATE TABLE IF NOT EXISTS unverified_nameplates (
  id TEXT PRIMARY KEY,
  theme TEXT NOT NULL,
  background TEXT NOT NULL,
  house_name TEXT NOT NULL,
  owner_name TEXT NOT NULL,
  spouse_name TEXT,
  address TEXT NOT NULL,
  text_color TEXT NOT NULL DEFAULT '#000000',
  font_size TEXT NOT NULL DEFAULT '',
  rmo TEXT NOT NULL,
  officer TEXT NOT NULL,
  lot TEXT NOT NULL,
  officer_name TEXT NOT NULL,
  email TEXT NOT NULL,
  mobile_number TEXT,
  designation TEXT,
  image_url TEXT,
  verified INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	verified := `
CREATE TABLE IF NOT EXISTS verified_nameplates (
  id TEXT PRIMARY KEY,
  rmo TEXT NOT NULL,
  officer_id TEXT,
  lot TEXT NOT NULL,
  house_name TEXT NOT NULL,
  owner_name TEXT NOT NULL,
  spouse_name TEXT,
  address TEXT,
  image_url TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(unverified).Error)
	require.NoError(t, db.Exec(verified).Error)

	return db
}

func seedNameplate(t *testing.T, db *gorm.DB, rmo, officer, lot string, verified bool) *models.UnverifiedNameplate {
	t.Helper()
	record := &models.UnverifiedNameplate{
		ID:          uuid.New(),
		Theme:       "classic",
		Background:  "teak",
		HouseName:   "Rose Villa",
		OwnerName:   "Maria",
		Address:     "12 Hill Rd",
		TextColor:   "#000000",
		RMO:         rmo,
		Officer:     officer,
		Lot:         lot,
		OfficerName: "Maria",
		Email:       "maria@post.example",
		Verified:    verified,
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func TestListFiltersByHierarchyAndState(t *testing.T) {
	db := setupNameplatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", false)
	seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", true)
	seedNameplate(t, db, "RMO1", "OFF12", "LOT-2", false)
	seedNameplate(t, db, "RMO2", "OFF21", "LOT-3", false)

	records, total, err := repo.List(ctx, listQuery{RMO: "RMO1", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 3)

	wantUnverified := false
	records, total, err = repo.List(ctx, listQuery{RMO: "RMO1", Officer: "OFF11", Verified: &wantUnverified, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.False(t, records[0].Verified)
}

func TestListPaginationKeepsTotal(t *testing.T) {
	db := setupNameplatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", false)
	}

	records, total, err := repo.List(ctx, listQuery{RMO: "RMO1", Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 1)
}

func TestMarkVerifiedFlipsOnce(t *testing.T) {
	db := setupNameplatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", false)
	params := VerifyParams{RMO: "RMO1", Officer: "OFF11", Lot: "LOT-1", ID: record.ID}

	mark, err := repo.MarkVerified(ctx, params)
	require.NoError(t, err)
	assert.True(t, mark.Updated)
	assert.True(t, mark.Found)

	// second attempt finds the row but has nothing left to flip
	mark, err = repo.MarkVerified(ctx, params)
	require.NoError(t, err)
	assert.False(t, mark.Updated)
	assert.True(t, mark.Found)

	reloaded, err := repo.FindByPath(ctx, params)
	require.NoError(t, err)
	assert.True(t, reloaded.Verified)
}

func TestMarkVerifiedUnknownPath(t *testing.T) {
	db := setupNameplatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", false)

	mark, err := repo.MarkVerified(ctx, VerifyParams{RMO: "RMO2", Officer: "OFF11", Lot: "LOT-1", ID: record.ID})
	require.NoError(t, err)
	assert.False(t, mark.Updated)
	assert.False(t, mark.Found)
}

func TestGroupByLotAggregates(t *testing.T) {
	db := setupNameplatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", false)
	seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", true)
	seedNameplate(t, db, "RMO1", "OFF11", "LOT-2", false)
	seedNameplate(t, db, "RMO1", "OFF12", "LOT-9", false)

	lots, err := repo.GroupByLot(ctx, "RMO1", "OFF11")
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, LotSummary{Lot: "LOT-1", Records: 2, Verified: 1}, lots[0])
	assert.Equal(t, LotSummary{Lot: "LOT-2", Records: 1, Verified: 0}, lots[1])
}

func TestCountByVerifiedScopes(t *testing.T) {
	db := setupNameplatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", false)
	seedNameplate(t, db, "RMO1", "OFF11", "LOT-1", true)
	seedNameplate(t, db, "RMO1", "OFF12", "LOT-2", false)

	unverified, verified, err := repo.CountByVerified(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), unverified)
	assert.Equal(t, int64(1), verified)

	unverified, verified, err = repo.CountByVerified(ctx, "OFF11")
	require.NoError(t, err)
	assert.Equal(t, int64(1), unverified)
	assert.Equal(t, int64(1), verified)
}

func TestInsertPrintedAndCount(t *testing.T) {
	db := setupNameplatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	rows := []models.VerifiedNameplate{
		{ID: uuid.New(), RMO: "RMO1", OfficerID: "OFF11", Lot: "LOT-1", HouseName: "Rose Villa", OwnerName: "Maria"},
		{ID: uuid.New(), RMO: "RMO1", OfficerID: "OFF11", Lot: "LOT-1", HouseName: "Rose Villa", OwnerName: "Maria"},
		{ID: uuid.New(), RMO: "RMO1", OfficerID: "OFF12", Lot: "LOT-2", HouseName: "Lake House", OwnerName: "Anil"},
	}
	require.NoError(t, repo.InsertPrinted(ctx, rows))
	require.NoError(t, repo.InsertPrinted(ctx, nil))

	total, err := repo.CountPrinted(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	scoped, err := repo.CountPrinted(ctx, "OFF11")
	require.NoError(t, err)
	assert.Equal(t, int64(2), scoped)
}
