package models

import "time"

// CatalogObject is a view of the object catalog's `objects` table.
// The catalog collaborator owns these rows; this service only touches them
// through the catalog removal cascade.
type CatalogObject struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID  string    `gorm:"type:char(36);not null;index" json:"projectId"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Definition string    `gorm:"size:1000" json:"definition,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName overrides the table name for CatalogObject
func (CatalogObject) TableName() string {
	return "objects"
}
