// presence.go
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
	"github.com/localnerve/nomatrix/internal/services"
	"github.com/localnerve/nomatrix/internal/utils"
)

// PresenceHandler handles presence routes
type PresenceHandler struct {
	Collab *services.Collab
}

// Heartbeat handles POST /api/projects/:project/presence
// @Summary Report presence
// @Description Record or refresh the caller's presence in a project, optionally focused on a matrix cell
// @Tags Presence
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Param body body object true "Presence heartbeat"
// @Success 200 {object} models.Presence
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/presence [post]
func (h *PresenceHandler) Heartbeat(c *fiber.Ctx) error {
	project := c.Params("project")

	var body struct {
		CellFocus *services.CellFocus `json:"cellFocus"`
		Activity  string              `json:"activity"`
		SessionID string              `json:"sessionId"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "nom.validation.input")
	}

	presence, err := h.Collab.Heartbeat(project, middleware.UserID(c), body.CellFocus, body.Activity, body.SessionID)
	if err != nil {
		return respondError(c, err, "presenceHeartbeat")
	}

	return c.Status(fiber.StatusOK).JSON(presence)
}

// ListPresence handles GET /api/projects/:project/presence
// @Summary List active users
// @Description List users recently active in a project with their cell focus
// @Tags Presence
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/presence [get]
func (h *PresenceHandler) ListPresence(c *fiber.Ctx) error {
	project := c.Params("project")

	active, err := h.Collab.ListPresence(project)
	if err != nil {
		return respondError(c, err, "listPresence")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"active": active})
}

// Collaboration handles GET /api/projects/:project/collaboration
// @Summary Collaboration summary
// @Description Active users, active locks, and recent changes for a project in one response
// @Tags Presence
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Success 200 {object} services.CollaborationSummary
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/collaboration [get]
func (h *PresenceHandler) Collaboration(c *fiber.Ctx) error {
	project := c.Params("project")

	summary, err := h.Collab.Collaboration(project)
	if err != nil {
		return respondError(c, err, "collaboration")
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
