package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/services"
	"github.com/localnerve/nomatrix/internal/types"
)

func TestHeartbeat(t *testing.T) {
	collab, _, _ := setupTestCollab(t)

	p, err := collab.Heartbeat(testProject, userAlice, nil, "", "session-1")
	if err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}
	if p.Activity != models.ActivityViewing {
		t.Errorf("Expected default activity viewing, got %s", p.Activity)
	}
	if p.ObjectAID != nil || p.ObjectBID != nil {
		t.Error("Expected no cell focus")
	}

	active, err := collab.ListPresence(testProject)
	if err != nil {
		t.Fatalf("ListPresence failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("Expected 1 active user, got %d", len(active))
	}
}

func TestHeartbeatReplacesFocus(t *testing.T) {
	collab, _, _ := setupTestCollab(t)

	if _, err := collab.Heartbeat(testProject, userAlice,
		&services.CellFocus{ObjectAID: objCustomer, ObjectBID: objOrder},
		models.ActivityEditing, ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	// Moving focus replaces the row, never adds one.
	p, err := collab.Heartbeat(testProject, userAlice,
		&services.CellFocus{ObjectAID: objCustomer, ObjectBID: objProduct},
		models.ActivityViewing, "")
	if err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}
	if !p.FocusedOn(models.CanonicalPair(objCustomer, objProduct)) {
		t.Errorf("Expected focus moved to customer/product, got %+v", p)
	}

	var count int64
	collab.DB.Model(&models.Presence{}).
		Where("project_id = ? AND user_id = ?", testProject, userAlice).
		Count(&count)
	if count != 1 {
		t.Errorf("Expected a single presence row per user, got %d", count)
	}
}

func TestHeartbeatCanonicalizesFocus(t *testing.T) {
	collab, _, _ := setupTestCollab(t)

	p, err := collab.Heartbeat(testProject, userAlice,
		&services.CellFocus{ObjectAID: objOrder, ObjectBID: objCustomer},
		"", "")
	if err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}
	if *p.ObjectAID != objCustomer || *p.ObjectBID != objOrder {
		t.Errorf("Expected focus stored canonically, got %s/%s", *p.ObjectAID, *p.ObjectBID)
	}
}

func TestHeartbeatValidation(t *testing.T) {
	collab, _, _ := setupTestCollab(t)

	var validation *types.ValidationError

	_, err := collab.Heartbeat(testProject, userAlice, nil, "sleeping", "")
	if !errors.As(err, &validation) {
		t.Errorf("Expected ValidationError for bad activity, got %v", err)
	}

	_, err = collab.Heartbeat(testProject, userAlice,
		&services.CellFocus{ObjectAID: objCustomer, ObjectBID: objCustomer}, "", "")
	if !errors.As(err, &validation) {
		t.Errorf("Expected ValidationError for self-reference focus, got %v", err)
	}

	_, err = collab.Heartbeat(testProject, userAlice,
		&services.CellFocus{ObjectAID: objCustomer}, "", "")
	if !errors.As(err, &validation) {
		t.Errorf("Expected ValidationError for half-specified focus, got %v", err)
	}
}

func TestListPresenceExcludesIdle(t *testing.T) {
	collab, clock, _ := setupTestCollab(t)

	if _, err := collab.Heartbeat(testProject, userAlice, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	clock.Advance(services.DefaultPresenceIdleLimit + time.Second)

	if _, err := collab.Heartbeat(testProject, userBob, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	// Alice is past the idle limit; only Bob shows, even before any sweep.
	active, err := collab.ListPresence(testProject)
	if err != nil {
		t.Fatalf("ListPresence failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("Expected 1 active user, got %d", len(active))
	}
	if active[0].UserID != userBob {
		t.Errorf("Expected %s active, got %s", userBob, active[0].UserID)
	}
}

func TestHeartbeatRevivesIdleUser(t *testing.T) {
	collab, clock, _ := setupTestCollab(t)

	if _, err := collab.Heartbeat(testProject, userAlice, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	clock.Advance(services.DefaultPresenceIdleLimit + time.Minute)

	if _, err := collab.Heartbeat(testProject, userAlice, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	active, err := collab.ListPresence(testProject)
	if err != nil {
		t.Fatalf("ListPresence failed: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("Expected returning user to be active again, got %d rows", len(active))
	}
}

func TestEvictIdlePresence(t *testing.T) {
	collab, clock, _ := setupTestCollab(t)

	if _, err := collab.Heartbeat(testProject, userAlice, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}
	clock.Advance(services.DefaultPresenceIdleLimit + time.Second)
	if _, err := collab.Heartbeat(testProject, userBob, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	removed, err := collab.EvictIdlePresence(0)
	if err != nil {
		t.Fatalf("EvictIdlePresence failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 row evicted, got %d", removed)
	}

	var remaining int64
	collab.DB.Model(&models.Presence{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("Expected 1 presence row remaining, got %d", remaining)
	}
}

func TestHeartbeatDoesNotPersistChangeEvents(t *testing.T) {
	collab, _, pub := setupTestCollab(t)

	if _, err := collab.Heartbeat(testProject, userAlice, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	// Heartbeats publish but never land in the change log.
	if n := countChangeEvents(t, collab, testProject, models.EntityPresence); n != 0 {
		t.Errorf("Expected no persisted presence events, got %d", n)
	}
	if n := len(pub.byEntity(models.EntityPresence)); n != 1 {
		t.Errorf("Expected 1 published presence notification, got %d", n)
	}
}

func TestHeartbeatEventOps(t *testing.T) {
	collab, _, pub := setupTestCollab(t)

	if _, err := collab.Heartbeat(testProject, userAlice, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}
	if _, err := collab.Heartbeat(testProject, userAlice, nil, "editing", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	published := pub.byEntity(models.EntityPresence)
	if len(published) != 2 {
		t.Fatalf("Expected 2 published presence notifications, got %d", len(published))
	}
	if published[0].Op != models.OpCreated {
		t.Errorf("Expected first heartbeat to publish %q, got %q", models.OpCreated, published[0].Op)
	}
	if published[1].Op != models.OpUpdated {
		t.Errorf("Expected repeat heartbeat to publish %q, got %q", models.OpUpdated, published[1].Op)
	}
}
