// matrix_service.go
//
// A collaborative domain-modeling relationship service for the OOUX nested object matrix
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of nomatrix.
// nomatrix is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// nomatrix is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with nomatrix.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"time"

	"github.com/localnerve/nomatrix/internal/metrics"
	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/types"
)

// Matrix cell states.
const (
	CellSelfReference  = "self-reference"
	CellEmpty          = "empty"
	CellUnidirectional = "unidirectional"
	CellBidirectional  = "bidirectional"
)

// CellViewer is one user whose presence focuses a cell.
type CellViewer struct {
	UserID   string `json:"userId"`
	Activity string `json:"activity"`
}

// MatrixCell is one entry of the assembled grid. The same underlying
// relationship surfaces at (i,j) and (j,i); only the label orientation
// follows the cell's row/column position.
type MatrixCell struct {
	RowObjectID    string             `json:"rowObjectId"`
	ColObjectID    string             `json:"colObjectId"`
	State          string             `json:"state"`
	RelationshipID string             `json:"relationshipId,omitempty"`
	Cardinality    models.Cardinality `json:"cardinality,omitempty"`
	LabelRowToCol  string             `json:"labelRowToCol,omitempty"`
	LabelColToRow  string             `json:"labelColToRow,omitempty"`
	Strength       string             `json:"strength,omitempty"`
	Editable       bool               `json:"editable"`
	Locked         bool               `json:"locked"`
	LockedBy       string             `json:"lockedBy,omitempty"`
	LockExpiresAt  *time.Time         `json:"lockExpiresAt,omitempty"`
	Viewers        []CellViewer       `json:"viewers,omitempty"`
}

// MatrixObject is one axis entry of the grid.
type MatrixObject struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Definition        string `json:"definition,omitempty"`
	RelationshipCount int    `json:"relationshipCount"`
}

// Matrix is the complete assembled NOM grid for a project.
type Matrix struct {
	ProjectID            string            `json:"projectId"`
	Objects              []MatrixObject    `json:"objects"`
	Cells                [][]MatrixCell    `json:"cells"`
	Presence             []models.Presence `json:"presence"`
	TotalObjects         int               `json:"totalObjects"`
	TotalRelationships   int               `json:"totalRelationships"`
	CompletionPercentage float64           `json:"completionPercentage"`
}

// AssembleMatrix computes the full grid view fresh from the three stores and
// the object catalog. It is a pure read; nothing is cached across requests.
func (s *Collab) AssembleMatrix(projectID string) (*Matrix, error) {
	objects, err := s.Catalog.ListObjects(projectID)
	if err != nil {
		return nil, &types.StorageError{Op: "assembleMatrix", Err: err}
	}

	relationships, err := s.ListRelationships(projectID)
	if err != nil {
		return nil, err
	}

	locks, err := s.ActiveLocks(projectID)
	if err != nil {
		return nil, err
	}

	presence, err := s.ListPresence(projectID)
	if err != nil {
		return nil, err
	}

	objectIDs := make(map[string]bool, len(objects))
	for _, obj := range objects {
		objectIDs[obj.ID] = true
	}

	// Index the stores by canonical pair. Relationships whose endpoint left
	// the catalog are orphans and stay out of the grid and its statistics.
	relByPair := make(map[[2]string]*models.Relationship, len(relationships))
	relCount := make(map[string]int)
	liveRelationships := 0
	for i := range relationships {
		rel := &relationships[i]
		if !objectIDs[rel.ObjectAID] || !objectIDs[rel.ObjectBID] {
			continue
		}
		relByPair[[2]string{rel.ObjectAID, rel.ObjectBID}] = rel
		relCount[rel.ObjectAID]++
		relCount[rel.ObjectBID]++
		liveRelationships++
	}

	lockByPair := make(map[[2]string]*models.CellLock, len(locks))
	for i := range locks {
		lock := &locks[i]
		lockByPair[[2]string{lock.ObjectAID, lock.ObjectBID}] = lock
	}

	viewersByPair := make(map[[2]string][]CellViewer)
	for _, p := range presence {
		if p.ObjectAID == nil || p.ObjectBID == nil {
			continue
		}
		key := [2]string{*p.ObjectAID, *p.ObjectBID}
		viewersByPair[key] = append(viewersByPair[key], CellViewer{
			UserID:   p.UserID,
			Activity: p.Activity,
		})
	}

	matrixObjects := make([]MatrixObject, 0, len(objects))
	for _, obj := range objects {
		matrixObjects = append(matrixObjects, MatrixObject{
			ID:                obj.ID,
			Name:              obj.Name,
			Definition:        obj.Definition,
			RelationshipCount: relCount[obj.ID],
		})
	}

	cells := make([][]MatrixCell, len(objects))
	for i, row := range objects {
		cells[i] = make([]MatrixCell, len(objects))
		for j, col := range objects {
			cells[i][j] = s.assembleCell(row.ID, col.ID, relByPair, lockByPair, viewersByPair)
		}
	}

	// Completion counts unordered pairs; the diagonal never participates.
	totalPairs := len(objects) * (len(objects) - 1) / 2
	completion := 0.0
	if totalPairs > 0 {
		completion = float64(liveRelationships) / float64(totalPairs) * 100
	}

	metrics.MatrixAssemblies.Inc()

	return &Matrix{
		ProjectID:            projectID,
		Objects:              matrixObjects,
		Cells:                cells,
		Presence:             presence,
		TotalObjects:         len(objects),
		TotalRelationships:   liveRelationships,
		CompletionPercentage: completion,
	}, nil
}

func (s *Collab) assembleCell(rowID, colID string,
	relByPair map[[2]string]*models.Relationship,
	lockByPair map[[2]string]*models.CellLock,
	viewersByPair map[[2]string][]CellViewer) MatrixCell {

	cell := MatrixCell{RowObjectID: rowID, ColObjectID: colID}

	if rowID == colID {
		cell.State = CellSelfReference
		return cell
	}

	objectA, objectB := models.CanonicalPair(rowID, colID)
	key := [2]string{objectA, objectB}
	cell.Editable = true

	if rel, ok := relByPair[key]; ok {
		cell.RelationshipID = rel.ID
		cell.Cardinality = rel.Cardinality
		cell.Strength = rel.Strength
		if rel.IsBidirectional {
			cell.State = CellBidirectional
		} else {
			cell.State = CellUnidirectional
		}

		// Stored labels follow the canonical A->B orientation; reorient to
		// this cell's row->column position.
		if rowID == objectA {
			cell.LabelRowToCol = rel.LabelAToB
			cell.LabelColToRow = rel.LabelBToA
		} else {
			cell.LabelRowToCol = rel.LabelBToA
			cell.LabelColToRow = rel.LabelAToB
		}
	} else {
		cell.State = CellEmpty
	}

	if lock, ok := lockByPair[key]; ok && lock.Active(s.now()) {
		expiresAt := lock.ExpiresAt
		cell.Locked = true
		cell.LockedBy = lock.LockedBy
		cell.LockExpiresAt = &expiresAt
	}

	cell.Viewers = viewersByPair[key]

	return cell
}
