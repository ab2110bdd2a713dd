package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CellFocus names the cell a user is near. A nil focus means the user has the
// matrix open without a cell selected.
type CellFocus struct {
	ObjectAID string `json:"objectAId"`
	ObjectBID string `json:"objectBId"`
}

// Heartbeat upserts the caller's presence row with the given focus and
// activity. One row per (project, user): focus changes replace, never
// accumulate. Presence is informational and never gates an edit.
func (s *Collab) Heartbeat(projectID, userID string, focus *CellFocus, activity, sessionID string) (*models.Presence, error) {
	if activity == "" {
		activity = models.ActivityViewing
	}
	if activity != models.ActivityViewing && activity != models.ActivityEditing {
		return nil, &types.ValidationError{Message: fmt.Sprintf("invalid activity '%s'", activity)}
	}

	var objectA, objectB *string
	if focus != nil {
		if focus.ObjectAID == "" || focus.ObjectBID == "" {
			return nil, &types.ValidationError{Message: "cell focus requires both object ids"}
		}
		if focus.ObjectAID == focus.ObjectBID {
			return nil, &types.ValidationError{Message: "cell focus cannot reference a self-reference cell"}
		}
		a, b := models.CanonicalPair(focus.ObjectAID, focus.ObjectBID)
		objectA, objectB = &a, &b
	}

	now := s.now()
	var presence models.Presence
	op := models.OpUpdated

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project_id = ? AND user_id = ?", projectID, userID).
			First(&presence).Error

		switch {
		case err == nil:
			presence.ObjectAID = objectA
			presence.ObjectBID = objectB
			presence.Activity = activity
			presence.SessionID = sessionID
			presence.LastSeenAt = now
			if err := tx.Save(&presence).Error; err != nil {
				return &types.StorageError{Op: "heartbeat", Err: err}
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			presence = models.Presence{
				ProjectID:  projectID,
				UserID:     userID,
				ObjectAID:  objectA,
				ObjectBID:  objectB,
				Activity:   activity,
				SessionID:  sessionID,
				LastSeenAt: now,
			}
			if err := tx.Create(&presence).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Two heartbeats raced the first insert; fold into the winner.
					if readErr := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
						First(&presence).Error; readErr != nil {
						return &types.StorageError{Op: "heartbeat", Err: readErr}
					}
					presence.ObjectAID = objectA
					presence.ObjectBID = objectB
					presence.Activity = activity
					presence.SessionID = sessionID
					presence.LastSeenAt = now
					if saveErr := tx.Save(&presence).Error; saveErr != nil {
						return &types.StorageError{Op: "heartbeat", Err: saveErr}
					}
					return nil
				}
				return &types.StorageError{Op: "heartbeat", Err: err}
			}
			op = models.OpCreated

		default:
			return &types.StorageError{Op: "heartbeat", Err: err}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Heartbeats are frequent and transient, so they go to the push
	// transport without a change_events row.
	s.notify(projectID, models.EntityPresence, presence.ID, op, userID)

	return &presence, nil
}

// ListPresence returns all users seen within the idle limit. Rows past the
// limit are absent from results whether or not a sweep has purged them.
func (s *Collab) ListPresence(projectID string) ([]models.Presence, error) {
	threshold := s.now().Add(-s.PresenceIdleLimit)

	var rows []models.Presence
	err := s.DB.Where("project_id = ? AND last_seen_at > ?", projectID, threshold).
		Order("last_seen_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, &types.StorageError{Op: "listPresence", Err: err}
	}
	return rows, nil
}

// EvictIdlePresence removes presence rows idle past the given threshold.
func (s *Collab) EvictIdlePresence(threshold time.Duration) (int64, error) {
	if threshold <= 0 {
		threshold = s.PresenceIdleLimit
	}

	result := s.DB.Where("last_seen_at <= ?", s.now().Add(-threshold)).
		Delete(&models.Presence{})
	if result.Error != nil {
		return 0, &types.StorageError{Op: "evictIdlePresence", Err: result.Error}
	}
	return result.RowsAffected, nil
}
