package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CellLock grants time-boxed exclusive editing rights over one matrix cell.
// At most one row exists per (project, canonical object pair); a row past
// ExpiresAt is logically absent even before it is purged.
type CellLock struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID  string    `gorm:"type:char(36);not null;index:idx_cell_locks_pair,unique,priority:1" json:"projectId"`
	ObjectAID  string    `gorm:"type:char(36);not null;index:idx_cell_locks_pair,unique,priority:2" json:"objectAId"`
	ObjectBID  string    `gorm:"type:char(36);not null;index:idx_cell_locks_pair,unique,priority:3" json:"objectBId"`
	LockedBy   string    `gorm:"type:char(36);not null;index" json:"lockedBy"`
	SessionID  string    `gorm:"size:255" json:"sessionId,omitempty"`
	AcquiredAt time.Time `gorm:"not null" json:"acquiredAt"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expiresAt"`
}

// TableName overrides the table name for CellLock
func (CellLock) TableName() string {
	return "cell_locks"
}

// BeforeCreate assigns a UUID primary key when none was supplied
func (l *CellLock) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Active reports whether the lock is still held at the given instant.
func (l *CellLock) Active(now time.Time) bool {
	return now.Before(l.ExpiresAt)
}
