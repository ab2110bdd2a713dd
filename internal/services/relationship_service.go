// relationship_service.go
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
	"errors"
	"fmt"

	"github.com/localnerve/nomatrix/internal/metrics"
	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// RelationshipInput carries the fields of a relationship create request.
// Object ids are given in the caller's orientation; labels refer to that
// orientation and are reoriented when the pair is canonicalized for storage.
type RelationshipInput struct {
	ObjectAID       string             `json:"objectAId"`
	ObjectBID       string             `json:"objectBId"`
	Cardinality     models.Cardinality `json:"cardinality"`
	LabelAToB       string             `json:"labelAtoB"`
	LabelBToA       string             `json:"labelBtoA"`
	IsBidirectional bool               `json:"isBidirectional"`
	Description     string             `json:"description"`
	Strength        string             `json:"strength"`
}

// RelationshipChanges carries a partial update; nil fields are left unchanged.
// Labels here refer to the stored canonical orientation.
type RelationshipChanges struct {
	Cardinality     *models.Cardinality `json:"cardinality"`
	LabelAToB       *string             `json:"labelAtoB"`
	LabelBToA       *string             `json:"labelBtoA"`
	IsBidirectional *bool               `json:"isBidirectional"`
	Description     *string             `json:"description"`
	Strength        *string             `json:"strength"`
}

// CreateRelationship creates the single relationship record for an unordered
// object pair. The actor must hold the cell lock; the lock check and the
// insert run in one transaction so an expiring lock cannot slip between them.
func (s *Collab) CreateRelationship(projectID string, in RelationshipInput, actor string) (*models.Relationship, error) {
	if in.ObjectAID == "" || in.ObjectBID == "" {
		return nil, &types.ValidationError{Message: "objectAId and objectBId are required"}
	}
	if in.ObjectAID == in.ObjectBID {
		return nil, &types.ValidationError{Message: "self-relationships are not allowed"}
	}

	cardinality := in.Cardinality
	if cardinality == "" {
		cardinality = models.OneToMany
	}
	if !cardinality.Valid() {
		return nil, &types.ValidationError{Message: fmt.Sprintf("invalid cardinality '%s'", in.Cardinality)}
	}

	strength := in.Strength
	if strength == "" {
		strength = models.StrengthNormal
	}
	if !models.ValidStrength(strength) {
		return nil, &types.ValidationError{Message: fmt.Sprintf("invalid strength '%s'", in.Strength)}
	}

	// Reorient labels to match the canonical stored pair.
	objectA, objectB := models.CanonicalPair(in.ObjectAID, in.ObjectBID)
	labelAToB, labelBToA := in.LabelAToB, in.LabelBToA
	if objectA != in.ObjectAID {
		labelAToB, labelBToA = in.LabelBToA, in.LabelAToB
	}

	for _, objectID := range []string{objectA, objectB} {
		exists, err := s.Catalog.ObjectExists(projectID, objectID)
		if err != nil {
			return nil, &types.StorageError{Op: "createRelationship", Err: err}
		}
		if !exists {
			return nil, &types.NotFoundError{Resource: "object", ID: objectID}
		}
	}

	rel := models.Relationship{
		ProjectID:       projectID,
		ObjectAID:       objectA,
		ObjectBID:       objectB,
		Cardinality:     cardinality,
		LabelAToB:       labelAToB,
		LabelBToA:       labelBToA,
		IsBidirectional: in.IsBidirectional,
		Description:     in.Description,
		Strength:        strength,
		CreatedBy:       actor,
		UpdatedBy:       actor,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireCellLock(tx, projectID, objectA, objectB, actor); err != nil {
			return err
		}

		var existing models.Relationship
		err := tx.Where("project_id = ? AND object_a_id = ? AND object_b_id = ?",
			projectID, objectA, objectB).
			First(&existing).Error
		if err == nil {
			return &types.ValidationError{Message: "relationship already exists for this pair; update it instead"}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.StorageError{Op: "createRelationship", Err: err}
		}

		if err := tx.Create(&rel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost an insert race despite the pre-check.
				return &types.ValidationError{Message: "relationship already exists for this pair; update it instead"}
			}
			return &types.StorageError{Op: "createRelationship", Err: err}
		}

		return s.recordChange(tx, projectID, models.EntityRelationship, rel.ID, models.OpCreated, actor, &rel)
	})
	if err != nil {
		return nil, err
	}

	metrics.RelationshipWrites.WithLabelValues(models.OpCreated).Inc()
	s.notify(projectID, models.EntityRelationship, rel.ID, models.OpCreated, actor)

	return &rel, nil
}

// UpdateRelationship applies a partial update to an existing relationship.
// The actor must hold the lock for the relationship's cell.
func (s *Collab) UpdateRelationship(projectID, relationshipID string, changes RelationshipChanges, actor string) (*models.Relationship, error) {
	if changes.Cardinality != nil && !changes.Cardinality.Valid() {
		return nil, &types.ValidationError{Message: fmt.Sprintf("invalid cardinality '%s'", *changes.Cardinality)}
	}
	if changes.Strength != nil && !models.ValidStrength(*changes.Strength) {
		return nil, &types.ValidationError{Message: fmt.Sprintf("invalid strength '%s'", *changes.Strength)}
	}

	var rel models.Relationship

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND project_id = ?", relationshipID, projectID).
			First(&rel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Resource: "relationship", ID: relationshipID}
			}
			return &types.StorageError{Op: "updateRelationship", Err: err}
		}

		if err := s.requireCellLock(tx, projectID, rel.ObjectAID, rel.ObjectBID, actor); err != nil {
			return err
		}

		if changes.Cardinality != nil {
			rel.Cardinality = *changes.Cardinality
		}
		if changes.LabelAToB != nil {
			rel.LabelAToB = *changes.LabelAToB
		}
		if changes.LabelBToA != nil {
			rel.LabelBToA = *changes.LabelBToA
		}
		if changes.IsBidirectional != nil {
			rel.IsBidirectional = *changes.IsBidirectional
		}
		if changes.Description != nil {
			rel.Description = *changes.Description
		}
		if changes.Strength != nil {
			rel.Strength = *changes.Strength
		}
		rel.UpdatedBy = actor

		if err := tx.Save(&rel).Error; err != nil {
			return &types.StorageError{Op: "updateRelationship", Err: err}
		}

		return s.recordChange(tx, projectID, models.EntityRelationship, rel.ID, models.OpUpdated, actor, &rel)
	})
	if err != nil {
		return nil, err
	}

	metrics.RelationshipWrites.WithLabelValues(models.OpUpdated).Inc()
	s.notify(projectID, models.EntityRelationship, rel.ID, models.OpUpdated, actor)

	return &rel, nil
}

// DeleteRelationship clears a cell. Deleting an id that no longer exists is a
// success, so concurrent double-deletes never surface an error to either
// client.
func (s *Collab) DeleteRelationship(projectID, relationshipID, actor string) error {
	deleted := false

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var rel models.Relationship
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND project_id = ?", relationshipID, projectID).
			First(&rel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return &types.StorageError{Op: "deleteRelationship", Err: err}
		}

		if err := s.requireCellLock(tx, projectID, rel.ObjectAID, rel.ObjectBID, actor); err != nil {
			return err
		}

		if err := tx.Delete(&rel).Error; err != nil {
			return &types.StorageError{Op: "deleteRelationship", Err: err}
		}
		deleted = true

		return s.recordChange(tx, projectID, models.EntityRelationship, rel.ID, models.OpDeleted, actor, nil)
	})
	if err != nil {
		return err
	}

	if deleted {
		metrics.RelationshipWrites.WithLabelValues(models.OpDeleted).Inc()
		s.notify(projectID, models.EntityRelationship, relationshipID, models.OpDeleted, actor)
	}

	return nil
}

// GetRelationship is the canonical cell existence check: it returns the
// relationship for an unordered pair, or nil when the cell is empty. The
// argument order never matters.
func (s *Collab) GetRelationship(projectID, objectAID, objectBID string) (*models.Relationship, error) {
	objectA, objectB := models.CanonicalPair(objectAID, objectBID)

	var rel models.Relationship
	err := s.DB.Where("project_id = ? AND object_a_id = ? AND object_b_id = ?",
		projectID, objectA, objectB).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &types.StorageError{Op: "getRelationship", Err: err}
	}
	return &rel, nil
}

// GetRelationshipByID fetches a relationship by id within a project.
func (s *Collab) GetRelationshipByID(projectID, relationshipID string) (*models.Relationship, error) {
	var rel models.Relationship
	err := s.DB.Where("id = ? AND project_id = ?", relationshipID, projectID).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Resource: "relationship", ID: relationshipID}
		}
		return nil, &types.StorageError{Op: "getRelationshipByID", Err: err}
	}
	return &rel, nil
}

// ListRelationships returns every relationship in a project. Order is not
// semantically meaningful; matrix assembly indexes by pair.
func (s *Collab) ListRelationships(projectID string) ([]models.Relationship, error) {
	query := s.DB.Where("project_id = ?", projectID)
	if s.DB.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_relationships_pair"))
	}

	var rels []models.Relationship
	if err := query.Order("created_at").Find(&rels).Error; err != nil {
		return nil, &types.StorageError{Op: "listRelationships", Err: err}
	}
	return rels, nil
}

// SearchRequest filters and pages a project's relationships.
type SearchRequest struct {
	ObjectID        string               `json:"objectId"`
	Cardinalities   []models.Cardinality `json:"cardinalities"`
	Strength        string               `json:"strength"`
	IsBidirectional *bool                `json:"isBidirectional"`
	SortBy          string               `json:"sortBy"`
	SortOrder       string               `json:"sortOrder"`
	Limit           int                  `json:"limit"`
	Offset          int                  `json:"offset"`
}

var searchSortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"cardinality": true,
	"strength":    true,
}

// SearchRelationships returns the matching page and the total match count.
func (s *Collab) SearchRelationships(projectID string, req SearchRequest) ([]models.Relationship, int64, error) {
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	if !searchSortFields[sortBy] {
		return nil, 0, &types.ValidationError{Message: fmt.Sprintf("invalid sortBy '%s'", req.SortBy)}
	}

	sortOrder := req.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		return nil, 0, &types.ValidationError{Message: fmt.Sprintf("invalid sortOrder '%s'", req.SortOrder)}
	}

	for _, c := range req.Cardinalities {
		if !c.Valid() {
			return nil, 0, &types.ValidationError{Message: fmt.Sprintf("invalid cardinality '%s'", c)}
		}
	}
	if req.Strength != "" && !models.ValidStrength(req.Strength) {
		return nil, 0, &types.ValidationError{Message: fmt.Sprintf("invalid strength '%s'", req.Strength)}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	query := s.DB.Model(&models.Relationship{}).Where("project_id = ?", projectID)
	if req.ObjectID != "" {
		query = query.Where("object_a_id = ? OR object_b_id = ?", req.ObjectID, req.ObjectID)
	}
	if len(req.Cardinalities) > 0 {
		query = query.Where("cardinality IN ?", req.Cardinalities)
	}
	if req.Strength != "" {
		query = query.Where("strength = ?", req.Strength)
	}
	if req.IsBidirectional != nil {
		query = query.Where("is_bidirectional = ?", *req.IsBidirectional)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, &types.StorageError{Op: "searchRelationships", Err: err}
	}

	var rels []models.Relationship
	err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(limit).
		Offset(offset).
		Find(&rels).Error
	if err != nil {
		return nil, 0, &types.StorageError{Op: "searchRelationships", Err: err}
	}

	return rels, total, nil
}

// requireCellLock verifies, inside the caller's transaction, that actor holds
// an unexpired lock on the canonical cell. The row is selected FOR UPDATE so
// the lock cannot be released or expire-swept under a write in progress.
func (s *Collab) requireCellLock(tx *gorm.DB, projectID, objectA, objectB, actor string) error {
	var lock models.CellLock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ? AND object_a_id = ? AND object_b_id = ?",
			projectID, objectA, objectB).
		First(&lock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.LockConflictError{}
		}
		return &types.StorageError{Op: "requireCellLock", Err: err}
	}

	if !lock.Active(s.now()) {
		return &types.LockConflictError{}
	}
	if lock.LockedBy != actor {
		return &types.LockConflictError{LockedBy: lock.LockedBy, ExpiresAt: lock.ExpiresAt}
	}
	return nil
}
