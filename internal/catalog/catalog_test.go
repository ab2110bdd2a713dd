package catalog_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/nomatrix/internal/catalog"
	"github.com/localnerve/nomatrix/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestCatalog(t *testing.T) (*catalog.DBCatalog, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.CatalogObject{},
		&models.Relationship{},
		&models.CellLock{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return catalog.NewDBCatalog(db), db
}

func seedCatalogObject(t *testing.T, db *gorm.DB, projectID, name string) string {
	t.Helper()
	obj := models.CatalogObject{ID: uuid.NewString(), ProjectID: projectID, Name: name}
	if err := db.Create(&obj).Error; err != nil {
		t.Fatalf("Failed to seed object: %v", err)
	}
	return obj.ID
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, projectID string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where("project_id = ?", projectID).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

func TestRemoveObjectCascades(t *testing.T) {
	cat, db := setupTestCatalog(t)

	project := uuid.NewString()
	customer := seedCatalogObject(t, db, project, "Customer")
	order := seedCatalogObject(t, db, project, "Order")
	product := seedCatalogObject(t, db, project, "Product")

	a, b := models.CanonicalPair(customer, order)
	rel := models.Relationship{
		ProjectID:   project,
		ObjectAID:   a,
		ObjectBID:   b,
		Cardinality: models.OneToMany,
		Strength:    models.StrengthNormal,
		CreatedBy:   uuid.NewString(),
		UpdatedBy:   uuid.NewString(),
	}
	if err := db.Create(&rel).Error; err != nil {
		t.Fatalf("Failed to seed relationship: %v", err)
	}

	la, lb := models.CanonicalPair(order, product)
	lock := models.CellLock{
		ProjectID:  project,
		ObjectAID:  la,
		ObjectBID:  lb,
		LockedBy:   uuid.NewString(),
		AcquiredAt: time.Now(),
		ExpiresAt:  time.Now().Add(5 * time.Minute),
	}
	if err := db.Create(&lock).Error; err != nil {
		t.Fatalf("Failed to seed lock: %v", err)
	}

	if err := cat.RemoveObject(project, order); err != nil {
		t.Fatalf("RemoveObject failed: %v", err)
	}

	exists, err := cat.ObjectExists(project, order)
	if err != nil {
		t.Fatalf("ObjectExists failed: %v", err)
	}
	if exists {
		t.Error("Expected removed object to be gone")
	}

	if n := countRows(t, db, &models.Relationship{}, project); n != 0 {
		t.Errorf("Expected relationships referencing the object removed, got %d", n)
	}
	if n := countRows(t, db, &models.CellLock{}, project); n != 0 {
		t.Errorf("Expected locks referencing the object removed, got %d", n)
	}

	// The rest of the catalog is untouched.
	objects, err := cat.ListObjects(project)
	if err != nil {
		t.Fatalf("ListObjects failed: %v", err)
	}
	if len(objects) != 2 {
		t.Errorf("Expected 2 surviving objects, got %d", len(objects))
	}
}

func TestRemoveObjectLeavesOtherPairs(t *testing.T) {
	cat, db := setupTestCatalog(t)

	project := uuid.NewString()
	customer := seedCatalogObject(t, db, project, "Customer")
	order := seedCatalogObject(t, db, project, "Order")
	product := seedCatalogObject(t, db, project, "Product")

	a, b := models.CanonicalPair(customer, product)
	rel := models.Relationship{
		ProjectID:   project,
		ObjectAID:   a,
		ObjectBID:   b,
		Cardinality: models.ManyToMany,
		Strength:    models.StrengthNormal,
		CreatedBy:   uuid.NewString(),
		UpdatedBy:   uuid.NewString(),
	}
	if err := db.Create(&rel).Error; err != nil {
		t.Fatalf("Failed to seed relationship: %v", err)
	}

	if err := cat.RemoveObject(project, order); err != nil {
		t.Fatalf("RemoveObject failed: %v", err)
	}

	if n := countRows(t, db, &models.Relationship{}, project); n != 1 {
		t.Errorf("Expected unrelated relationship to survive, got %d rows", n)
	}
}
