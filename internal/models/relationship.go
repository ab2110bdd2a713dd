// relationship.go
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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cardinality is the relationship multiplicity constraint.
type Cardinality string

const (
	OneToOne   Cardinality = "ONE_TO_ONE"
	OneToMany  Cardinality = "ONE_TO_MANY"
	ManyToMany Cardinality = "MANY_TO_MANY"
)

// Valid reports whether c is one of the three recognized cardinality values.
func (c Cardinality) Valid() bool {
	switch c {
	case OneToOne, OneToMany, ManyToMany:
		return true
	}
	return false
}

// Relationship strength values carried for matrix display.
const (
	StrengthWeak   = "weak"
	StrengthNormal = "normal"
	StrengthStrong = "strong"
)

// ValidStrength reports whether s is a recognized relationship strength.
func ValidStrength(s string) bool {
	return s == StrengthWeak || s == StrengthNormal || s == StrengthStrong
}

// Relationship connects exactly two distinct objects within one project.
// The object pair is stored in canonical order (see CanonicalPair) so that
// lookups for {A,B} and {B,A} hit the same row.
type Relationship struct {
	ID              string      `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID       string      `gorm:"type:char(36);not null;index:idx_relationships_pair,unique,priority:1" json:"projectId"`
	ObjectAID       string      `gorm:"type:char(36);not null;index:idx_relationships_pair,unique,priority:2" json:"objectAId"`
	ObjectBID       string      `gorm:"type:char(36);not null;index:idx_relationships_pair,unique,priority:3" json:"objectBId"`
	Cardinality     Cardinality `gorm:"size:32;not null;default:ONE_TO_MANY" json:"cardinality"`
	LabelAToB       string      `gorm:"size:255" json:"labelAtoB"`
	LabelBToA       string      `gorm:"size:255" json:"labelBtoA"`
	IsBidirectional bool        `gorm:"not null;default:false" json:"isBidirectional"`
	Description     string      `gorm:"size:1000" json:"description,omitempty"`
	Strength        string      `gorm:"size:20;not null;default:normal" json:"strength"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	CreatedBy       string      `gorm:"type:char(36);not null" json:"createdBy"`
	UpdatedBy       string      `gorm:"type:char(36);not null" json:"updatedBy"`
}

// TableName overrides the table name for Relationship
func (Relationship) TableName() string {
	return "relationships"
}

// BeforeCreate assigns a UUID primary key when none was supplied
func (r *Relationship) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// CanonicalPair returns the two object ids in storage order, the smaller
// id first. Every store keyed by an unordered cell pair goes through this.
func CanonicalPair(objectA, objectB string) (string, string) {
	if objectB < objectA {
		return objectB, objectA
	}
	return objectA, objectB
}
