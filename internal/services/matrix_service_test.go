package services_test

import (
	"testing"
	"time"

	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/services"
)

// buildMatrixFixture seeds three objects and one customer-order relationship
func buildMatrixFixture(t *testing.T, collab *services.Collab) {
	t.Helper()
	seedObject(t, collab, testProject, objCustomer, "Customer")
	seedObject(t, collab, testProject, objOrder, "Order")
	seedObject(t, collab, testProject, objProduct, "Product")

	if _, err := collab.AcquireLock(testProject, objCustomer, objOrder, userAlice, ""); err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	if _, err := collab.CreateRelationship(testProject, services.RelationshipInput{
		ObjectAID:   objCustomer,
		ObjectBID:   objOrder,
		Cardinality: models.OneToMany,
		LabelAToB:   "places",
		LabelBToA:   "is placed by",
	}, userAlice); err != nil {
		t.Fatalf("CreateRelationship failed: %v", err)
	}
}

// cellAt finds the matrix cell for a row/col object pair by id
func cellAt(t *testing.T, m *services.Matrix, rowID, colID string) services.MatrixCell {
	t.Helper()
	for i, row := range m.Objects {
		if row.ID != rowID {
			continue
		}
		for j, col := range m.Objects {
			if col.ID == colID {
				return m.Cells[i][j]
			}
		}
	}
	t.Fatalf("Cell %s/%s not found in matrix", rowID, colID)
	return services.MatrixCell{}
}

func TestAssembleMatrixShape(t *testing.T) {
	collab, _, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}

	if m.TotalObjects != 3 {
		t.Errorf("Expected 3 objects, got %d", m.TotalObjects)
	}
	if len(m.Cells) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(m.Cells))
	}
	for i, row := range m.Cells {
		if len(row) != 3 {
			t.Errorf("Expected row %d to have 3 cells, got %d", i, len(row))
		}
	}
	if m.TotalRelationships != 1 {
		t.Errorf("Expected 1 relationship, got %d", m.TotalRelationships)
	}

	// 1 relationship of 3 possible unordered pairs.
	if m.CompletionPercentage < 33.2 || m.CompletionPercentage > 33.4 {
		t.Errorf("Expected completion ~33.3, got %f", m.CompletionPercentage)
	}
}

func TestAssembleMatrixDiagonal(t *testing.T) {
	collab, _, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}

	for _, obj := range m.Objects {
		cell := cellAt(t, m, obj.ID, obj.ID)
		if cell.State != services.CellSelfReference {
			t.Errorf("Expected diagonal cell for %s to be self-reference, got %s", obj.Name, cell.State)
		}
		if cell.Editable {
			t.Errorf("Expected diagonal cell for %s to be uneditable", obj.Name)
		}
	}
}

func TestAssembleMatrixSymmetry(t *testing.T) {
	collab, _, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}

	upper := cellAt(t, m, objCustomer, objOrder)
	lower := cellAt(t, m, objOrder, objCustomer)

	// Same relationship on both sides of the diagonal.
	if upper.RelationshipID == "" || upper.RelationshipID != lower.RelationshipID {
		t.Errorf("Expected mirrored cells to share a relationship, got %q and %q",
			upper.RelationshipID, lower.RelationshipID)
	}
	if upper.State != services.CellUnidirectional || lower.State != services.CellUnidirectional {
		t.Errorf("Expected unidirectional on both sides, got %s and %s", upper.State, lower.State)
	}

	// Labels orient to each cell's row->column reading.
	if upper.LabelRowToCol != "places" || upper.LabelColToRow != "is placed by" {
		t.Errorf("Unexpected upper labels: %q / %q", upper.LabelRowToCol, upper.LabelColToRow)
	}
	if lower.LabelRowToCol != "is placed by" || lower.LabelColToRow != "places" {
		t.Errorf("Unexpected lower labels: %q / %q", lower.LabelRowToCol, lower.LabelColToRow)
	}
}

func TestAssembleMatrixEmptyCells(t *testing.T) {
	collab, _, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}

	cell := cellAt(t, m, objCustomer, objProduct)
	if cell.State != services.CellEmpty {
		t.Errorf("Expected empty cell, got %s", cell.State)
	}
	if !cell.Editable {
		t.Error("Expected empty off-diagonal cell to be editable")
	}
}

func TestAssembleMatrixLockAndPresenceOverlay(t *testing.T) {
	collab, _, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	if _, err := collab.AcquireLock(testProject, objOrder, objProduct, userBob, ""); err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	if _, err := collab.Heartbeat(testProject, userBob,
		&services.CellFocus{ObjectAID: objOrder, ObjectBID: objProduct},
		models.ActivityEditing, ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}

	// The overlay shows on both orientations of the cell.
	for _, pair := range [][2]string{{objOrder, objProduct}, {objProduct, objOrder}} {
		cell := cellAt(t, m, pair[0], pair[1])
		if !cell.Locked || cell.LockedBy != userBob {
			t.Errorf("Expected cell %v locked by %s, got %+v", pair, userBob, cell)
		}
		if len(cell.Viewers) != 1 || cell.Viewers[0].UserID != userBob {
			t.Errorf("Expected %s viewing cell %v, got %+v", userBob, pair, cell.Viewers)
		}
		if cell.Viewers[0].Activity != models.ActivityEditing {
			t.Errorf("Expected editing activity, got %s", cell.Viewers[0].Activity)
		}
	}
}

func TestAssembleMatrixExpiredLockNotShown(t *testing.T) {
	collab, clock, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	clock.Advance(services.DefaultLockTimeout + time.Second)

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}

	cell := cellAt(t, m, objCustomer, objOrder)
	if cell.Locked {
		t.Error("Expected expired lock absent from the matrix")
	}
}

func TestAssembleMatrixEmptyProject(t *testing.T) {
	collab, _, _ := setupTestCollab(t)

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}
	if m.TotalObjects != 0 || len(m.Cells) != 0 {
		t.Errorf("Expected empty matrix, got %d objects, %d rows", m.TotalObjects, len(m.Cells))
	}
	if m.CompletionPercentage != 0 {
		t.Errorf("Expected 0%% completion, got %f", m.CompletionPercentage)
	}
}

func TestAssembleMatrixExcludesOrphanedRelationships(t *testing.T) {
	collab, _, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	// The catalog collaborator drops Order out from under the stored
	// customer-order relationship.
	err := collab.DB.Where("id = ?", objOrder).Delete(&models.CatalogObject{}).Error
	if err != nil {
		t.Fatalf("Failed to delete object: %v", err)
	}

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}

	if m.TotalObjects != 2 {
		t.Fatalf("Expected 2 objects, got %d", m.TotalObjects)
	}
	if m.TotalRelationships != 0 {
		t.Errorf("Expected orphaned relationship excluded, got %d", m.TotalRelationships)
	}
	if m.CompletionPercentage != 0 {
		t.Errorf("Expected 0%% completion with no live relationships, got %f", m.CompletionPercentage)
	}

	cell := cellAt(t, m, objCustomer, objProduct)
	if cell.State != services.CellEmpty {
		t.Errorf("Expected surviving pair to be empty, got %s", cell.State)
	}
	for _, obj := range m.Objects {
		if obj.RelationshipCount != 0 {
			t.Errorf("Expected 0 relationship count for %s, got %d", obj.Name, obj.RelationshipCount)
		}
	}
}

func TestAssembleMatrixRelationshipCounts(t *testing.T) {
	collab, _, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	m, err := collab.AssembleMatrix(testProject)
	if err != nil {
		t.Fatalf("AssembleMatrix failed: %v", err)
	}

	counts := map[string]int{}
	for _, obj := range m.Objects {
		counts[obj.ID] = obj.RelationshipCount
	}
	if counts[objCustomer] != 1 || counts[objOrder] != 1 || counts[objProduct] != 0 {
		t.Errorf("Unexpected relationship counts: %+v", counts)
	}
}

func TestCollaborationSummary(t *testing.T) {
	collab, _, _ := setupTestCollab(t)
	buildMatrixFixture(t, collab)

	if _, err := collab.Heartbeat(testProject, userAlice, nil, "", ""); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	summary, err := collab.Collaboration(testProject)
	if err != nil {
		t.Fatalf("Collaboration failed: %v", err)
	}

	if len(summary.ActiveUsers) != 1 {
		t.Errorf("Expected 1 active user, got %d", len(summary.ActiveUsers))
	}
	if len(summary.ActiveLocks) != 1 {
		t.Errorf("Expected 1 active lock, got %d", len(summary.ActiveLocks))
	}
	// Lock acquisition + relationship create.
	if len(summary.RecentChanges) != 2 {
		t.Errorf("Expected 2 recent changes, got %d", len(summary.RecentChanges))
	}
	// Most recent first.
	if len(summary.RecentChanges) == 2 &&
		summary.RecentChanges[0].EventID < summary.RecentChanges[1].EventID {
		t.Error("Expected recent changes in descending order")
	}
}
