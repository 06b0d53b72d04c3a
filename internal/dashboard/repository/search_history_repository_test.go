package repository

import (
	"context"
	"testing"

	"golang-stock-dashboard/internal/entity"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dryRunDB returns a postgres gorm handle that renders statements without a server.
// Every rendered statement is appended to the returned slice.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=dashboard dbname=stock_dashboard sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)

	var statements []string
	capture := func(tx *gorm.DB) {
		statements = append(statements, tx.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...))
	}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("capture:create", capture))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("capture:query", capture))
	return db, &statements
}

func TestSearchHistoryCreateWritesEmptyDegradedArray(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewSearchHistoryRepository(db)

	err := repo.Create(context.Background(), &entity.SearchHistory{
		Query:            "Apple",
		Ticker:           "AAPL",
		Statuses:         datatypes.JSON(`{"prices":"ok"}`),
		DegradedSections: pq.StringArray{},
	})
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.Contains(t, sql, `INSERT INTO "search_history"`)
	assert.Contains(t, sql, `'{}'`)
	assert.NotContains(t, sql, "NULL")
}

func TestSearchHistoryCreateWritesDegradedSections(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewSearchHistoryRepository(db)

	err := repo.Create(context.Background(), &entity.SearchHistory{
		Query:            "zzz",
		Ticker:           "ZZZ",
		Statuses:         datatypes.JSON(`{"news":"unavailable"}`),
		DegradedSections: pq.StringArray{"news", "sentiment"},
	})
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], `'{"news","sentiment"}'`)
}

func TestSearchHistoryFindRecentOrdersNewestFirst(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewSearchHistoryRepository(db)

	_, err := repo.FindRecent(context.Background(), 20)
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.Contains(t, sql, `FROM "search_history"`)
	assert.Contains(t, sql, "ORDER BY created_at DESC,id DESC")
	assert.Contains(t, sql, "LIMIT 20")
}

func TestNoopSearchHistoryRepository(t *testing.T) {
	repo := NewNoopSearchHistoryRepository()
	require.NoError(t, repo.Create(context.Background(), &entity.SearchHistory{Query: "Apple"}))

	records, err := repo.FindRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
