// matrix.go
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

// MatrixHandler handles matrix assembly routes
type MatrixHandler struct {
	Collab *services.Collab
}

// GetMatrix handles GET /api/projects/:project/matrix
// @Summary Get the nested object matrix
// @Description Assemble the full n-by-n matrix view for a project: relationships, lock state, and presence per cell
// @Tags Matrix
// @Accept json
// @Produce json
// @Param project path string true "Project ID"
// @Success 200 {object} services.Matrix
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{project}/matrix [get]
func (h *MatrixHandler) GetMatrix(c *fiber.Ctx) error {
	project := c.Params("project")

	matrix, err := h.Collab.AssembleMatrix(project)
	if err != nil {
		return respondError(c, err, "getMatrix")
	}

	return c.Status(fiber.StatusOK).JSON(matrix)
}
