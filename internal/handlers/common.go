// common.go
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
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nomatrix/internal/types"
	"github.com/localnerve/nomatrix/internal/utils"
)

// respondError maps a domain error to its HTTP envelope. Lock conflicts get a
// distinct envelope from validation failures so the client can render
// "someone else is editing this" versus "invalid input".
func respondError(c *fiber.Ctx, err error, errorType string) error {
	var validation *types.ValidationError
	if errors.As(err, &validation) {
		return utils.ErrorResponse(c, validation.Message, fiber.StatusBadRequest, errorType)
	}

	var notFound *types.NotFoundError
	if errors.As(err, &notFound) {
		return utils.NotFoundResponse(c, notFound.Error())
	}

	var conflict *types.LockConflictError
	if errors.As(err, &conflict) {
		var expiresAt *time.Time
		if !conflict.ExpiresAt.IsZero() {
			expiresAt = &conflict.ExpiresAt
		}
		return utils.LockConflictResponse(c, conflict.Error(), conflict.LockedBy, expiresAt)
	}

	log.Printf("Unhandled error in %s: %v", errorType, err)
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}
