package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nomatrix/internal/events"
	"github.com/localnerve/nomatrix/internal/handlers"
	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testProject = "00000000-0000-0000-0000-000000000001"
	objCustomer = "11111111-1111-1111-1111-111111111111"
	objOrder    = "22222222-2222-2222-2222-222222222222"
	userAlice   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	userBob     = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

// setupTestApp wires a Fiber app over in-memory SQLite. The auth middleware
// is replaced with a header-driven stub so tests choose the acting user.
func setupTestApp(t *testing.T) (*fiber.App, *services.Collab) {
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

	collab := services.NewCollab(db, events.NopPublisher{})

	stubAuth := func(c *fiber.Ctx) error {
		if user := c.Get("X-Test-User"); user != "" {
			c.Locals("userId", user)
		}
		return c.Next()
	}

	app := fiber.New()

	matrixHandler := &handlers.MatrixHandler{Collab: collab}
	relHandler := &handlers.RelationshipHandler{Collab: collab}
	lockHandler := &handlers.LockHandler{Collab: collab}
	presenceHandler := &handlers.PresenceHandler{Collab: collab}

	projects := app.Group("/api/projects/:project")
	projects.Get("/matrix", matrixHandler.GetMatrix)
	projects.Get("/relationships", relHandler.ListRelationships)
	projects.Get("/relationships/:id", relHandler.GetRelationship)
	projects.Post("/relationships/search", relHandler.SearchRelationships)
	projects.Get("/locks", lockHandler.GetLockState)
	projects.Get("/presence", presenceHandler.ListPresence)
	projects.Get("/collaboration", presenceHandler.Collaboration)
	projects.Post("/relationships", stubAuth, relHandler.CreateRelationship)
	projects.Put("/relationships/:id", stubAuth, relHandler.UpdateRelationship)
	projects.Delete("/relationships/:id", stubAuth, relHandler.DeleteRelationship)
	projects.Post("/locks", stubAuth, lockHandler.AcquireLock)
	projects.Delete("/locks", stubAuth, lockHandler.ReleaseLock)
	projects.Post("/presence", stubAuth, presenceHandler.Heartbeat)

	return app, collab
}

func seedObjects(t *testing.T, collab *services.Collab) {
	t.Helper()
	for id, name := range map[string]string{objCustomer: "Customer", objOrder: "Order"} {
		obj := models.CatalogObject{ID: id, ProjectID: testProject, Name: name}
		if err := collab.DB.Create(&obj).Error; err != nil {
			t.Fatalf("Failed to seed object %s: %v", name, err)
		}
	}
}

func request(t *testing.T, app *fiber.App, method, url, user string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestLockAndCreateRelationshipFlow(t *testing.T) {
	app, collab := setupTestApp(t)
	seedObjects(t, collab)

	status, lock := request(t, app, "POST", "/api/projects/"+testProject+"/locks", userAlice,
		map[string]string{"objectAId": objCustomer, "objectBId": objOrder})
	if status != 200 {
		t.Fatalf("Expected 200 acquiring lock, got %d: %v", status, lock)
	}
	if lock["lockedBy"] != userAlice {
		t.Errorf("Expected lock held by %s, got %v", userAlice, lock["lockedBy"])
	}

	status, rel := request(t, app, "POST", "/api/projects/"+testProject+"/relationships", userAlice,
		map[string]interface{}{
			"objectAId":   objCustomer,
			"objectBId":   objOrder,
			"cardinality": "ONE_TO_MANY",
			"labelAtoB":   "places",
		})
	if status != 201 {
		t.Fatalf("Expected 201 creating relationship, got %d: %v", status, rel)
	}
	if rel["cardinality"] != "ONE_TO_MANY" {
		t.Errorf("Expected ONE_TO_MANY, got %v", rel["cardinality"])
	}
}

func TestCreateRelationshipWithoutLock(t *testing.T) {
	app, collab := setupTestApp(t)
	seedObjects(t, collab)

	status, result := request(t, app, "POST", "/api/projects/"+testProject+"/relationships", userAlice,
		map[string]string{"objectAId": objCustomer, "objectBId": objOrder})
	if status != 409 {
		t.Fatalf("Expected 409 without a lock, got %d: %v", status, result)
	}
	if result["lockConflict"] != true {
		t.Errorf("Expected lockConflict=true in response, got %v", result)
	}
}

func TestLockConflictResponseShape(t *testing.T) {
	app, collab := setupTestApp(t)
	seedObjects(t, collab)

	status, _ := request(t, app, "POST", "/api/projects/"+testProject+"/locks", userAlice,
		map[string]string{"objectAId": objCustomer, "objectBId": objOrder})
	if status != 200 {
		t.Fatalf("Expected 200 acquiring lock, got %d", status)
	}

	status, result := request(t, app, "POST", "/api/projects/"+testProject+"/locks", userBob,
		map[string]string{"objectAId": objCustomer, "objectBId": objOrder})
	if status != 409 {
		t.Fatalf("Expected 409 conflict, got %d: %v", status, result)
	}
	if result["lockedBy"] != userAlice {
		t.Errorf("Expected conflict to name %s, got %v", userAlice, result["lockedBy"])
	}
	if result["expiresAt"] == nil {
		t.Error("Expected expiresAt in conflict response")
	}
}

func TestReleaseLockByNonHolderIsNoOp(t *testing.T) {
	app, collab := setupTestApp(t)
	seedObjects(t, collab)

	status, _ := request(t, app, "POST", "/api/projects/"+testProject+"/locks", userAlice,
		map[string]string{"objectAId": objCustomer, "objectBId": objOrder})
	if status != 200 {
		t.Fatalf("Expected 200 acquiring lock, got %d", status)
	}

	// Bob's release succeeds without touching Alice's lock.
	status, result := request(t, app, "DELETE", "/api/projects/"+testProject+"/locks", userBob,
		map[string]string{"objectAId": objCustomer, "objectBId": objOrder})
	if status != 200 {
		t.Fatalf("Expected 200 no-op release, got %d: %v", status, result)
	}

	status, state := request(t, app, "GET",
		"/api/projects/"+testProject+"/locks?objectA="+objCustomer+"&objectB="+objOrder, "", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}
	if state["held"] != true || state["lockedBy"] != userAlice {
		t.Errorf("Expected lock still held by %s, got %v", userAlice, state)
	}
}

func TestGetMatrix(t *testing.T) {
	app, collab := setupTestApp(t)
	seedObjects(t, collab)

	status, matrix := request(t, app, "GET", "/api/projects/"+testProject+"/matrix", "", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %v", status, matrix)
	}
	if matrix["totalObjects"] != float64(2) {
		t.Errorf("Expected 2 objects, got %v", matrix["totalObjects"])
	}
	cells, ok := matrix["cells"].([]interface{})
	if !ok || len(cells) != 2 {
		t.Fatalf("Expected 2 cell rows, got %v", matrix["cells"])
	}
}

func TestPresenceRoundTrip(t *testing.T) {
	app, _ := setupTestApp(t)

	status, p := request(t, app, "POST", "/api/projects/"+testProject+"/presence", userAlice,
		map[string]interface{}{
			"cellFocus": map[string]string{"objectAId": objCustomer, "objectBId": objOrder},
			"activity":  "editing",
		})
	if status != 200 {
		t.Fatalf("Expected 200 heartbeat, got %d: %v", status, p)
	}

	status, list := request(t, app, "GET", "/api/projects/"+testProject+"/presence", "", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}
	active, ok := list["active"].([]interface{})
	if !ok || len(active) != 1 {
		t.Fatalf("Expected 1 active user, got %v", list["active"])
	}
}

func TestSearchRelationshipsEndpoint(t *testing.T) {
	app, collab := setupTestApp(t)
	seedObjects(t, collab)

	if _, err := collab.AcquireLock(testProject, objCustomer, objOrder, userAlice, ""); err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	if _, err := collab.CreateRelationship(testProject, services.RelationshipInput{
		ObjectAID:   objCustomer,
		ObjectBID:   objOrder,
		Cardinality: models.ManyToMany,
	}, userAlice); err != nil {
		t.Fatalf("CreateRelationship failed: %v", err)
	}

	// Single cardinality as a bare string exercises the flexible list input.
	status, result := request(t, app, "POST",
		"/api/projects/"+testProject+"/relationships/search", "",
		map[string]interface{}{
			"cardinalities": "MANY_TO_MANY",
			"limit":         "10",
		})
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %v", status, result)
	}
	if result["total"] != float64(1) {
		t.Errorf("Expected total 1, got %v", result["total"])
	}
}

func TestDeleteRelationshipIdempotent(t *testing.T) {
	app, collab := setupTestApp(t)
	seedObjects(t, collab)

	if _, err := collab.AcquireLock(testProject, objCustomer, objOrder, userAlice, ""); err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	rel, err := collab.CreateRelationship(testProject, services.RelationshipInput{
		ObjectAID: objCustomer,
		ObjectBID: objOrder,
	}, userAlice)
	if err != nil {
		t.Fatalf("CreateRelationship failed: %v", err)
	}

	url := "/api/projects/" + testProject + "/relationships/" + rel.ID
	status, _ := request(t, app, "DELETE", url, userAlice, nil)
	if status != 200 {
		t.Fatalf("Expected 200 delete, got %d", status)
	}
	status, _ = request(t, app, "DELETE", url, userAlice, nil)
	if status != 200 {
		t.Errorf("Expected idempotent delete to return 200, got %d", status)
	}

	status, _ = request(t, app, "GET", url, "", nil)
	if status != 404 {
		t.Errorf("Expected 404 after delete, got %d", status)
	}
}
