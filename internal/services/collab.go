// collab.go
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
	"encoding/json"
	"log"
	"time"

	"github.com/localnerve/nomatrix/internal/catalog"
	"github.com/localnerve/nomatrix/internal/events"
	"github.com/localnerve/nomatrix/internal/metrics"
	"github.com/localnerve/nomatrix/internal/models"
	"gorm.io/gorm"
)

// Default collaboration timeouts.
const (
	DefaultLockTimeout       = 5 * time.Minute
	DefaultPresenceIdleLimit = 15 * time.Minute
)

// Collab owns the relationship, cell lock, and presence stores for the NOM.
// Each store is independently mutable; no operation spans more than one of
// them in a single transaction except lock-gated relationship writes, which
// check the lock table and write the relationship atomically.
type Collab struct {
	DB                *gorm.DB
	Catalog           catalog.Catalog
	Publisher         events.Publisher
	LockTimeout       time.Duration
	PresenceIdleLimit time.Duration

	// Clock is overridable for expiry tests; nil means time.Now.
	Clock func() time.Time
}

// NewCollab wires a Collab with default timeouts and a database-backed catalog.
func NewCollab(db *gorm.DB, pub events.Publisher) *Collab {
	return &Collab{
		DB:                db,
		Catalog:           catalog.NewDBCatalog(db),
		Publisher:         pub,
		LockTimeout:       DefaultLockTimeout,
		PresenceIdleLimit: DefaultPresenceIdleLimit,
	}
}

func (s *Collab) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// recordChange appends a ChangeEvent row inside the mutation's transaction so
// the event log never disagrees with the store it describes.
func (s *Collab) recordChange(tx *gorm.DB, projectID, entity, entityID, op, actor string, payload interface{}) error {
	event := models.ChangeEvent{
		ProjectID: projectID,
		Entity:    entity,
		EntityID:  entityID,
		Op:        op,
		Actor:     actor,
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		event.Payload = models.EventPayload{JSON: data}
	}

	return tx.Create(&event).Error
}

// notify hands a change notification to the push transport after the owning
// transaction commits. Delivery is best effort; a failed publish never fails
// the mutation that produced it.
func (s *Collab) notify(projectID, entity, entityID, op, actor string) {
	if s.Publisher == nil {
		return
	}

	err := s.Publisher.Publish(events.ChangeNotification{
		ProjectID: projectID,
		Entity:    entity,
		EntityID:  entityID,
		Op:        op,
		Actor:     actor,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		log.Printf("Failed to publish %s %s event for %s: %v", entity, op, entityID, err)
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
}
