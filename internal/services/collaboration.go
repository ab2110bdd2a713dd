package services

import (
	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/types"
)

// CollaborationSummary is the project-wide view of who is active, which cells
// are locked, and what changed recently.
type CollaborationSummary struct {
	ActiveUsers   []models.Presence    `json:"activeUsers"`
	ActiveLocks   []models.CellLock    `json:"activeLocks"`
	RecentChanges []models.ChangeEvent `json:"recentChanges"`
}

// recentChangeLimit bounds the change-event tail returned in summaries.
const recentChangeLimit = 20

// Collaboration assembles the summary for a project.
func (s *Collab) Collaboration(projectID string) (*CollaborationSummary, error) {
	users, err := s.ListPresence(projectID)
	if err != nil {
		return nil, err
	}

	locks, err := s.ActiveLocks(projectID)
	if err != nil {
		return nil, err
	}

	var changes []models.ChangeEvent
	err = s.DB.Where("project_id = ?", projectID).
		Order("event_id DESC").
		Limit(recentChangeLimit).
		Find(&changes).Error
	if err != nil {
		return nil, &types.StorageError{Op: "collaboration", Err: err}
	}

	return &CollaborationSummary{
		ActiveUsers:   users,
		ActiveLocks:   locks,
		RecentChanges: changes,
	}, nil
}
