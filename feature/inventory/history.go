package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("sync run not found")

// Run statuses stored in the history.
const (
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// SyncRun is one sync run.
type SyncRun struct {
	ID                   string     `json:"id" gorm:"primaryKey;size:36"`
	Status               string     `json:"status" gorm:"size:16;index"`
	Phases               string     `json:"phases"`
	AllowUpdates         bool       `json:"allow_updates"`
	AllowLinking         bool       `json:"allow_linking"`
	UpdateUniqueExisting bool       `json:"update_unique_existing"`
	NoAppendAssetTag     bool       `json:"no_append_assettag"`
	Created              int        `json:"created"`
	Linked               int        `json:"linked"`
	Updated              int        `json:"updated"`
	Unchanged            int        `json:"unchanged"`
	Skipped              int        `json:"skipped"`
	Failed               int        `json:"failed"`
	Error                string     `json:"error,omitempty" gorm:"type:text"`
	StartedAt            time.Time  `json:"started_at" gorm:"index"`
	FinishedAt           *time.Time `json:"finished_at"`
	Items                []SyncItem `json:"items,omitempty" gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

// SyncItem is the outcome of one Snipe-IT item within a run.
type SyncItem struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	RunID    string `json:"run_id" gorm:"size:36;index;not null"`
	Kind     string `json:"kind" gorm:"size:32"`
	SourceID int    `json:"source_id"`
	Name     string `json:"name"`
	Action   string `json:"action" gorm:"size:32"`
	Fields   string `json:"fields"`
	Error    string `json:"error,omitempty" gorm:"type:text"`
}

func (SyncItem) TableName() string {
	return "sync_items"
}

// History stores sync runs in the database.
type History struct {
	db *gorm.DB
}

// NewHistory creates a History on db.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Migrate creates or updates the history tables.
func (h *History) Migrate() error {
	if err := h.db.AutoMigrate(&SyncRun{}, &SyncItem{}); err != nil {
		return fmt.Errorf("failed to migrate sync history: %w", err)
	}
	return nil
}

// Start stores a new running run.
func (h *History) Start(ctx context.Context, run *SyncRun) error {
	run.Status = RunRunning
	if err := h.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to store sync run %s: %w", run.ID, err)
	}
	return nil
}

// Finish stores the outcome of a run and its non-trivial items.
func (h *History) Finish(ctx context.Context, id string, finishedAt time.Time, report *Report, runErr error) error {
	total := report.Total()
	values := map[string]any{
		"status":      RunSucceeded,
		"created":     total.Created,
		"linked":      total.Linked,
		"updated":     total.Updated,
		"unchanged":   total.Unchanged,
		"skipped":     total.Skipped,
		"failed":      total.Failed,
		"error":       "",
		"finished_at": finishedAt,
	}
	if runErr != nil {
		values["status"] = RunFailed
		values["error"] = runErr.Error()
	}

	return h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&SyncRun{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return fmt.Errorf("failed to update sync run %s: %w", id, err)
		}
		if len(report.Items) == 0 {
			return nil
		}

		items := make([]SyncItem, len(report.Items))
		for i, item := range report.Items {
			items[i] = SyncItem{
				RunID:    id,
				Kind:     item.Kind,
				SourceID: item.SourceID,
				Name:     item.Name,
				Action:   string(item.Action),
				Fields:   strings.Join(item.Fields, ","),
				Error:    item.Error,
			}
		}
		if err := tx.CreateInBatches(items, 100).Error; err != nil {
			return fmt.Errorf("failed to store sync items of %s: %w", id, err)
		}
		return nil
	})
}

// List returns the most recent runs, newest first.
func (h *History) List(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []SyncRun
	if err := h.db.WithContext(ctx).Order("started_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	return runs, nil
}

// Get returns a run with its items.
func (h *History) Get(ctx context.Context, id string) (*SyncRun, error) {
	var run SyncRun
	err := h.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sync run %s: %w", id, err)
	}
	return &run, nil
}
