package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DominatorRun represents the dominator_run table, a record of a single
// dominator-tree computation kept for auditing and trend analysis.
type DominatorRun struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	NodeCount  int       `gorm:"column:node_count"`
	EdgeCount  int       `gorm:"column:edge_count"`
	DurationMS int64     `gorm:"column:duration_ms"`
	Format     string    `gorm:"column:format;type:varchar(32)"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime"`
}

// TableName returns the table name for DominatorRun.
func (DominatorRun) TableName() string {
	return "dominator_run"
}

// DominatorRunRepository defines the interface for persisting dominator-run
// summaries.
type DominatorRunRepository interface {
	// SaveRun records a completed dominator-tree computation.
	SaveRun(ctx context.Context, run *DominatorRun) error

	// RecentRuns returns the most recent runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]*DominatorRun, error)
}

// GormDominatorRunRepository implements DominatorRunRepository using GORM.
type GormDominatorRunRepository struct {
	db *gorm.DB
}

// NewGormDominatorRunRepository creates a new GormDominatorRunRepository.
func NewGormDominatorRunRepository(db *gorm.DB) *GormDominatorRunRepository {
	return &GormDominatorRunRepository{db: db}
}

// SaveRun records a completed dominator-tree computation.
func (r *GormDominatorRunRepository) SaveRun(ctx context.Context, run *DominatorRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save dominator run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (r *GormDominatorRunRepository) RecentRuns(ctx context.Context, limit int) ([]*DominatorRun, error) {
	var runs []*DominatorRun

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to query recent dominator runs: %w", err)
	}

	return runs, nil
}
