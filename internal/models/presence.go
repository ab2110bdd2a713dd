package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Presence activity values.
const (
	ActivityViewing = "viewing"
	ActivityEditing = "editing"
)

// Presence records a user's current focus within a project's matrix.
// One row per (project, user); the row is replaced as focus moves.
// A nil focus pair means the user is viewing the matrix without a cell focus.
type Presence struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID  string    `gorm:"type:char(36);not null;index:idx_presence_user,unique,priority:1" json:"projectId"`
	UserID     string    `gorm:"type:char(36);not null;index:idx_presence_user,unique,priority:2" json:"userId"`
	ObjectAID  *string   `gorm:"type:char(36)" json:"objectAId,omitempty"`
	ObjectBID  *string   `gorm:"type:char(36)" json:"objectBId,omitempty"`
	Activity   string    `gorm:"size:50;not null;default:viewing" json:"activity"`
	SessionID  string    `gorm:"size:255" json:"sessionId,omitempty"`
	LastSeenAt time.Time `gorm:"not null;index" json:"lastSeenAt"`
}

// TableName overrides the table name for Presence
func (Presence) TableName() string {
	return "presence"
}

// BeforeCreate assigns a UUID primary key when none was supplied
func (p *Presence) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FocusedOn reports whether the presence row focuses the given canonical pair.
func (p *Presence) FocusedOn(objectA, objectB string) bool {
	return p.ObjectAID != nil && p.ObjectBID != nil &&
		*p.ObjectAID == objectA && *p.ObjectBID == objectB
}
