// Package catalog is the boundary to the object catalog collaborator.
// The NOM core never owns objects; it resolves and enumerates them here.
package catalog

import (
	"errors"

	"github.com/localnerve/nomatrix/internal/models"
	"gorm.io/gorm"
)

// Catalog resolves project objects for matrix assembly and validation.
type Catalog interface {
	// ListObjects returns all objects in a project, ordered by name.
	ListObjects(projectID string) ([]models.CatalogObject, error)
	// ObjectExists reports whether an object id resolves within a project.
	ObjectExists(projectID, objectID string) (bool, error)
	// RemoveObject deletes an object and cascades to the relationships and
	// cell locks that reference it.
	RemoveObject(projectID, objectID string) error
}

// DBCatalog reads the shared `objects` table maintained by the catalog
// collaborator.
type DBCatalog struct {
	DB *gorm.DB
}

// NewDBCatalog returns a Catalog backed by the shared database.
func NewDBCatalog(db *gorm.DB) *DBCatalog {
	return &DBCatalog{DB: db}
}

// ListObjects returns all objects in a project, ordered by name.
func (c *DBCatalog) ListObjects(projectID string) ([]models.CatalogObject, error) {
	var objects []models.CatalogObject
	if err := c.DB.Where("project_id = ?", projectID).
		Order("name").
		Find(&objects).Error; err != nil {
		return nil, err
	}
	return objects, nil
}

// ObjectExists reports whether an object id resolves within a project.
func (c *DBCatalog) ObjectExists(projectID, objectID string) (bool, error) {
	var obj models.CatalogObject
	err := c.DB.Select("id").
		Where("id = ? AND project_id = ?", objectID, projectID).
		First(&obj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveObject deletes an object and, in the same transaction, every
// relationship and cell lock referencing it. Presence focus rows are left to
// age out through idle eviction.
func (c *DBCatalog) RemoveObject(projectID, objectID string) error {
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ? AND (object_a_id = ? OR object_b_id = ?)",
			projectID, objectID, objectID).
			Delete(&models.Relationship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ? AND (object_a_id = ? OR object_b_id = ?)",
			projectID, objectID, objectID).
			Delete(&models.CellLock{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND project_id = ?", objectID, projectID).
			Delete(&models.CatalogObject{}).Error
	})
}
