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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nomatrix/internal/middleware"
	"github.com/localnerve/nomatrix/internal/models"
	"github.com/localnerve/nomatrix/internal/services"
	"github.com/localnerve/nomatrix/internal/types"
	"github.com/localnerve/nomatrix/internal/utils"
)

// RelationshipHandler handles relationship routes
type RelationshipHandler struct {
	Collab *services.Collab
}

// CreateRelationship handles POST /api/projects/:project/relationships
// @Summary Create a relationship
// @Description Create the relationship between two objects; requires an active cell lock held by the caller
// @Tags Relationships
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Param body body services.RelationshipInput true "Relationship to create"
// @Success 201 {object} models.Relationship
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/relationships [post]
func (h *RelationshipHandler) CreateRelationship(c *fiber.Ctx) error {
	project := c.Params("project")

	var body services.RelationshipInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "nom.validation.input")
	}

	rel, err := h.Collab.CreateRelationship(project, body, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "createRelationship")
	}

	return c.Status(fiber.StatusCreated).JSON(rel)
}

// UpdateRelationship handles PUT /api/projects/:project/relationships/:id
// @Summary Update a relationship
// @Description Update fields of an existing relationship; requires an active cell lock held by the caller
// @Tags Relationships
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Param id path string true "Relationship ID"
// @Param body body services.RelationshipChanges true "Fields to change"
// @Success 200 {object} models.Relationship
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/relationships/{id} [put]
func (h *RelationshipHandler) UpdateRelationship(c *fiber.Ctx) error {
	project := c.Params("project")
	id := c.Params("id")

	var body services.RelationshipChanges
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "nom.validation.input")
	}

	rel, err := h.Collab.UpdateRelationship(project, id, body, middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "updateRelationship")
	}

	return c.Status(fiber.StatusOK).JSON(rel)
}

// DeleteRelationship handles DELETE /api/projects/:project/relationships/:id
// @Summary Delete a relationship
// @Description Delete a relationship; requires an active cell lock held by the caller. Deleting an absent relationship succeeds.
// @Tags Relationships
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Param id path string true "Relationship ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/relationships/{id} [delete]
func (h *RelationshipHandler) DeleteRelationship(c *fiber.Ctx) error {
	project := c.Params("project")
	id := c.Params("id")

	if err := h.Collab.DeleteRelationship(project, id, middleware.UserID(c)); err != nil {
		return respondError(c, err, "deleteRelationship")
	}

	return utils.MutationSuccessResponse(c, 1)
}

// GetRelationship handles GET /api/projects/:project/relationships/:id
// @Summary Get a relationship
// @Description Get a single relationship by id
// @Tags Relationships
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Param id path string true "Relationship ID"
// @Success 200 {object} models.Relationship
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/relationships/{id} [get]
func (h *RelationshipHandler) GetRelationship(c *fiber.Ctx) error {
	project := c.Params("project")
	id := c.Params("id")

	rel, err := h.Collab.GetRelationshipByID(project, id)
	if err != nil {
		return respondError(c, err, "getRelationship")
	}

	return c.Status(fiber.StatusOK).JSON(rel)
}

// ListRelationships handles GET /api/projects/:project/relationships
// @Summary List relationships
// @Description List all relationships in a project. Pass objectA and objectB query params to look up a single cell.
// @Tags Relationships
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Param objectA query string false "First object of a pair lookup"
// @Param objectB query string false "Second object of a pair lookup"
// @Success 200 {array} models.Relationship
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/relationships [get]
func (h *RelationshipHandler) ListRelationships(c *fiber.Ctx) error {
	project := c.Params("project")
	objectA := c.Query("objectA")
	objectB := c.Query("objectB")

	if objectA != "" && objectB != "" {
		rel, err := h.Collab.GetRelationship(project, objectA, objectB)
		if err != nil {
			return respondError(c, err, "listRelationships")
		}
		if rel == nil {
			return c.Status(fiber.StatusOK).JSON([]models.Relationship{})
		}
		return c.Status(fiber.StatusOK).JSON([]models.Relationship{*rel})
	}

	rels, err := h.Collab.ListRelationships(project)
	if err != nil {
		return respondError(c, err, "listRelationships")
	}

	return c.Status(fiber.StatusOK).JSON(rels)
}

// SearchRelationships handles POST /api/projects/:project/relationships/search
// @Summary Search relationships
// @Description Filter, sort, and page a project's relationships
// @Tags Relationships
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Param body body object true "Search filters"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/relationships/search [post]
func (h *RelationshipHandler) SearchRelationships(c *fiber.Ctx) error {
	project := c.Params("project")

	var body struct {
		ObjectID        string                             `json:"objectId"`
		Cardinalities   types.FlexList[models.Cardinality] `json:"cardinalities"`
		Strength        string                             `json:"strength"`
		IsBidirectional *bool                              `json:"isBidirectional"`
		SortBy          string                             `json:"sortBy"`
		SortOrder       string                             `json:"sortOrder"`
		Limit           types.FlexUint64                   `json:"limit"`
		Offset          types.FlexUint64                   `json:"offset"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "nom.validation.input")
	}

	req := services.SearchRequest{
		ObjectID:        body.ObjectID,
		Cardinalities:   body.Cardinalities.Slice(),
		Strength:        body.Strength,
		IsBidirectional: body.IsBidirectional,
		SortBy:          body.SortBy,
		SortOrder:       body.SortOrder,
		Limit:           body.Limit.Int(),
		Offset:          body.Offset.Int(),
	}

	rels, total, err := h.Collab.SearchRelationships(project, req)
	if err != nil {
		return respondError(c, err, "searchRelationships")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"relationships": rels,
		"total":         total,
	})
}
