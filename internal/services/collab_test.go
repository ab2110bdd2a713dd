package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/localnerve/nomatrix/internal/events"
	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeClock lets tests advance time to exercise lock expiry and presence
// eviction without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// capturingPublisher records notifications for assertions.
type capturingPublisher struct {
	mu            sync.Mutex
	notifications []events.ChangeNotification
}

func (p *capturingPublisher) Publish(n events.ChangeNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, n)
	return nil
}

func (p *capturingPublisher) Close() {}

func (p *capturingPublisher) byEntity(entity string) []events.ChangeNotification {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.ChangeNotification
	for _, n := range p.notifications {
		if n.Entity == entity {
			out = append(out, n)
		}
	}
	return out
}

// setupTestCollab creates a Collab over an in-memory SQLite database
func setupTestCollab(t *testing.T) (*services.Collab, *fakeClock, *capturingPublisher) {
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
		&models.Presence{},
		&models.ChangeEvent{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	clock := newFakeClock()
	pub := &capturingPublisher{}

	collab := services.NewCollab(db, pub)
	collab.Clock = clock.Now

	return collab, clock, pub
}

// seedObject inserts a catalog object row with a fixed id
func seedObject(t *testing.T, collab *services.Collab, projectID, id, name string) {
	t.Helper()
	obj := models.CatalogObject{ID: id, ProjectID: projectID, Name: name}
	if err := collab.DB.Create(&obj).Error; err != nil {
		t.Fatalf("Failed to seed object %s: %v", name, err)
	}
}

// countChangeEvents returns change_events rows for a project and entity kind
func countChangeEvents(t *testing.T, collab *services.Collab, projectID, entity string) int64 {
	t.Helper()
	var n int64
	err := collab.DB.Model(&models.ChangeEvent{}).
		Where("project_id = ? AND entity = ?", projectID, entity).
		Count(&n).Error
	if err != nil {
		t.Fatalf("Failed to count change events: %v", err)
	}
	return n
}
