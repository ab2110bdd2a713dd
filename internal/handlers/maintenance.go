// maintenance.go
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
	"github.com/localnerve/nomatrix/internal/services"
)

// MaintenanceHandler handles admin maintenance routes
type MaintenanceHandler struct {
	Collab *services.Collab
}

// Cleanup handles POST /api/maintenance/cleanup
// @Summary Sweep expired state
// @Description Delete expired cell locks and evict idle presence records. Expiry is already enforced lazily on read; this reclaims storage.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /maintenance/cleanup [post]
func (h *MaintenanceHandler) Cleanup(c *fiber.Ctx) error {
	locksRemoved, err := h.Collab.CleanupExpiredLocks()
	if err != nil {
		return respondError(c, err, "maintenanceCleanup")
	}

	presenceRemoved, err := h.Collab.EvictIdlePresence(h.Collab.PresenceIdleLimit)
	if err != nil {
		return respondError(c, err, "maintenanceCleanup")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"locksRemoved":    locksRemoved,
		"presenceRemoved": presenceRemoved,
		"ok":              true,
	})
}
