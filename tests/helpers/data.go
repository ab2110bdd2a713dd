// data.go
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

package helpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/nomatrix/internal/models"
	"gorm.io/gorm"
)

// CreateTestObject creates a catalog object and returns its id
func CreateTestObject(t *testing.T, db *gorm.DB, projectID, name string) string {
	obj := models.CatalogObject{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
	}
	if err := db.Create(&obj).Error; err != nil {
		t.Fatalf("Failed to create object %s: %v", name, err)
	}
	return obj.ID
}

// CreateTestRelationship creates a relationship between two objects,
// canonicalizing the pair the way the service does
func CreateTestRelationship(t *testing.T, db *gorm.DB, projectID, objectA, objectB string, cardinality models.Cardinality, actor string) string {
	a, b := models.CanonicalPair(objectA, objectB)
	rel := models.Relationship{
		ProjectID:   projectID,
		ObjectAID:   a,
		ObjectBID:   b,
		Cardinality: cardinality,
		Strength:    models.StrengthNormal,
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	if err := db.Create(&rel).Error; err != nil {
		t.Fatalf("Failed to create relationship: %v", err)
	}
	return rel.ID
}

// CreateTestLock creates an active cell lock expiring after ttl
func CreateTestLock(t *testing.T, db *gorm.DB, projectID, objectA, objectB, userID string, ttl time.Duration) string {
	a, b := models.CanonicalPair(objectA, objectB)
	now := time.Now()
	lock := models.CellLock{
		ProjectID:  projectID,
		ObjectAID:  a,
		ObjectBID:  b,
		LockedBy:   userID,
		AcquiredAt: now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.Create(&lock).Error; err != nil {
		t.Fatalf("Failed to create lock: %v", err)
	}
	return lock.ID
}

// CreateTestPresence creates a presence row last seen at the given instant
func CreateTestPresence(t *testing.T, db *gorm.DB, projectID, userID string, lastSeen time.Time) string {
	p := models.Presence{
		ProjectID:  projectID,
		UserID:     userID,
		Activity:   models.ActivityViewing,
		LastSeenAt: lastSeen,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create presence: %v", err)
	}
	return p.ID
}
