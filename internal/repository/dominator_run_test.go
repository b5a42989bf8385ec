package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDominatorRunTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&DominatorRun{})
	require.NoError(t, err)

	return db
}

func TestGormDominatorRunRepository_SaveAndList(t *testing.T) {
	db := setupDominatorRunTestDB(t)
	repo := NewGormDominatorRunRepository(db)
	ctx := context.Background()

	run := &DominatorRun{
		NodeCount:  6,
		EdgeCount:  7,
		DurationMS: 12,
		Format:     "text",
	}
	require.NoError(t, repo.SaveRun(ctx, run))
	assert.NotZero(t, run.ID)

	runs, err := repo.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 6, runs[0].NodeCount)
	assert.Equal(t, 7, runs[0].EdgeCount)
	assert.Equal(t, "text", runs[0].Format)
}

func TestGormDominatorRunRepository_RecentRunsOrdering(t *testing.T) {
	db := setupDominatorRunTestDB(t)
	repo := NewGormDominatorRunRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.SaveRun(ctx, &DominatorRun{NodeCount: i, Format: "json"}))
	}

	runs, err := repo.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].NodeCount)
	assert.Equal(t, 1, runs[1].NodeCount)
}
