// lock_service.go
//
// A collaborative domain-modeling relationship service for the OOUX nested object matrix
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of nomatrix.
// nomatrix is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// nomatrix is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with nomatrix.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"errors"
	"time"

	"github.com/localnerve/nomatrix/internal/metrics"
	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockState is the lazily-evaluated answer to "is this cell locked"; an
// expired row reads as not held.
type LockState struct {
	Held      bool       `json:"held"`
	LockedBy  string     `json:"lockedBy,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// AcquireLock grants or refreshes the exclusive edit lock for a cell.
// A second user's concurrent acquire resolves to exactly one winner: the row
// is selected FOR UPDATE, and the unique pair index backstops the
// no-row-yet insert race.
func (s *Collab) AcquireLock(projectID, objectAID, objectBID, userID, sessionID string) (*models.CellLock, error) {
	if objectAID == "" || objectBID == "" {
		return nil, &types.ValidationError{Message: "objectAId and objectBId are required"}
	}
	if objectAID == objectBID {
		return nil, &types.ValidationError{Message: "self-reference cells are never lockable"}
	}

	objectA, objectB := models.CanonicalPair(objectAID, objectBID)
	now := s.now()

	var lock models.CellLock

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project_id = ? AND object_a_id = ? AND object_b_id = ?",
				projectID, objectA, objectB).
			First(&lock).Error

		switch {
		case err == nil:
			if lock.Active(now) && lock.LockedBy != userID {
				return &types.LockConflictError{LockedBy: lock.LockedBy, ExpiresAt: lock.ExpiresAt}
			}

			if lock.Active(now) {
				// Same holder: refresh expiry, keep the original acquisition time.
				lock.ExpiresAt = now.Add(s.LockTimeout)
				lock.SessionID = sessionID
			} else {
				// Expired row: take it over in place instead of delete+insert.
				lock.LockedBy = userID
				lock.SessionID = sessionID
				lock.AcquiredAt = now
				lock.ExpiresAt = now.Add(s.LockTimeout)
			}
			if err := tx.Save(&lock).Error; err != nil {
				return &types.StorageError{Op: "acquireLock", Err: err}
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			lock = models.CellLock{
				ProjectID:  projectID,
				ObjectAID:  objectA,
				ObjectBID:  objectB,
				LockedBy:   userID,
				SessionID:  sessionID,
				AcquiredAt: now,
				ExpiresAt:  now.Add(s.LockTimeout),
			}
			if err := tx.Create(&lock).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Lost the insert race; report the winner.
					var winner models.CellLock
					if readErr := tx.Where("project_id = ? AND object_a_id = ? AND object_b_id = ?",
						projectID, objectA, objectB).
						First(&winner).Error; readErr == nil {
						return &types.LockConflictError{LockedBy: winner.LockedBy, ExpiresAt: winner.ExpiresAt}
					}
					return &types.LockConflictError{}
				}
				return &types.StorageError{Op: "acquireLock", Err: err}
			}

		default:
			return &types.StorageError{Op: "acquireLock", Err: err}
		}

		return s.recordChange(tx, projectID, models.EntityLock, lock.ID, models.OpLocked, userID, &lock)
	})
	if err != nil {
		var conflict *types.LockConflictError
		if errors.As(err, &conflict) {
			metrics.LockConflicts.Inc()
		}
		return nil, err
	}

	metrics.LockAcquisitions.Inc()
	s.notify(projectID, models.EntityLock, lock.ID, models.OpLocked, userID)

	return &lock, nil
}

// ReleaseLock releases a cell lock held by userID. A release by a non-holder
// or of a nonexistent lock returns NotHolderError for diagnostics; callers
// treat it as a no-op, never a failure, to tolerate abandoned tabs.
func (s *Collab) ReleaseLock(projectID, objectAID, objectBID, userID string) error {
	objectA, objectB := models.CanonicalPair(objectAID, objectBID)

	var released models.CellLock

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var lock models.CellLock
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project_id = ? AND object_a_id = ? AND object_b_id = ?",
				projectID, objectA, objectB).
			First(&lock).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotHolderError{}
			}
			return &types.StorageError{Op: "releaseLock", Err: err}
		}

		if lock.LockedBy != userID {
			if lock.Active(s.now()) {
				return &types.NotHolderError{HeldBy: lock.LockedBy}
			}
			// Expired row owned by someone else: logically absent.
			return &types.NotHolderError{}
		}

		if err := tx.Delete(&lock).Error; err != nil {
			return &types.StorageError{Op: "releaseLock", Err: err}
		}
		released = lock

		return s.recordChange(tx, projectID, models.EntityLock, lock.ID, models.OpReleased, userID, nil)
	})
	if err != nil {
		return err
	}

	s.notify(projectID, models.EntityLock, released.ID, models.OpReleased, userID)

	return nil
}

// IsLocked reports the lock state of a cell, evaluating expiry lazily against
// the current time.
func (s *Collab) IsLocked(projectID, objectAID, objectBID string) (LockState, error) {
	objectA, objectB := models.CanonicalPair(objectAID, objectBID)

	var lock models.CellLock
	err := s.DB.Where("project_id = ? AND object_a_id = ? AND object_b_id = ?",
		projectID, objectA, objectB).
		First(&lock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LockState{}, nil
		}
		return LockState{}, &types.StorageError{Op: "isLocked", Err: err}
	}

	if !lock.Active(s.now()) {
		return LockState{}, nil
	}

	expiresAt := lock.ExpiresAt
	return LockState{Held: true, LockedBy: lock.LockedBy, ExpiresAt: &expiresAt}, nil
}

// ActiveLocks returns all unexpired locks in a project.
func (s *Collab) ActiveLocks(projectID string) ([]models.CellLock, error) {
	var locks []models.CellLock
	err := s.DB.Where("project_id = ? AND expires_at > ?", projectID, s.now()).
		Find(&locks).Error
	if err != nil {
		return nil, &types.StorageError{Op: "activeLocks", Err: err}
	}
	return locks, nil
}

// CleanupExpiredLocks purges expired lock rows. Correctness never depends on
// this; it only bounds storage.
func (s *Collab) CleanupExpiredLocks() (int64, error) {
	result := s.DB.Where("expires_at <= ?", s.now()).Delete(&models.CellLock{})
	if result.Error != nil {
		return 0, &types.StorageError{Op: "cleanupExpiredLocks", Err: result.Error}
	}
	return result.RowsAffected, nil
}
