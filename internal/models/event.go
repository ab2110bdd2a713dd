package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Change event operations.
const (
	OpCreated  = "created"
	OpUpdated  = "updated"
	OpDeleted  = "deleted"
	OpLocked   = "locked"
	OpReleased = "released"
)

// Change event entity kinds.
const (
	EntityRelationship = "relationship"
	EntityLock         = "lock"
	EntityPresence     = "presence"
)

// EventPayload wraps gorm.io/datatypes.JSON to map the column to a native
// JSON type per database driver. MSSQL has no 'json' type, so it falls back
// to NVARCHAR there.
type EventPayload struct {
	datatypes.JSON
}

// Value promotes the embedded JSON's Value method
func (p EventPayload) Value() (driver.Value, error) {
	return p.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method
func (p *EventPayload) Scan(value interface{}) error {
	return p.JSON.Scan(value)
}

// GormDBDataType selects the JSON column type for the active driver.
func (EventPayload) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}

// ChangeEvent is the persisted record of a mutation side effect. New rows are
// appended on every relationship/lock/presence mutation; the most recent rows
// feed the collaboration summary, and each row is also published to the push
// transport when one is configured.
type ChangeEvent struct {
	EventID   uint64       `gorm:"primaryKey;autoIncrement" json:"eventId"`
	ProjectID string       `gorm:"type:char(36);not null;index" json:"projectId"`
	Entity    string       `gorm:"size:50;not null" json:"entity"`
	EntityID  string       `gorm:"type:char(36);not null" json:"entityId"`
	Op        string       `gorm:"size:20;not null" json:"op"`
	Actor     string       `gorm:"type:char(36);not null" json:"actor"`
	Payload   EventPayload `json:"payload,omitempty"`
	CreatedAt time.Time    `gorm:"index" json:"createdAt"`
}

// TableName overrides the table name for ChangeEvent
func (ChangeEvent) TableName() string {
	return "change_events"
}
