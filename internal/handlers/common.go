// common.go
//
// Course marketplace data service: catalog, purchases and learner progress
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of coursemart.
// coursemart is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// coursemart is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with coursemart.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/coursemart/internal/identity"
	"github.com/localnerve/coursemart/internal/middleware"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/localnerve/coursemart/internal/utils"
)

// splitIDs splits a comma separated id list, trimming and dropping empty entries.
// Order is kept; repeats are removed later by the catalog query.
func splitIDs(raw string) []string {
	var ids []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}

// parseIDs extracts course ids from query parameters,
// supporting both multiple 'ids' keys and comma-separated values.
func parseIDs(c *fiber.Ctx) []string {
	var ids []string

	// Collect every 'ids' parameter, in request order
	for _, value := range c.Context().QueryArgs().PeekMulti("ids") {
		ids = append(ids, splitIDs(string(value))...)
	}

	return ids
}

// pathParam returns a decoded path parameter
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// respondError renders any error in the standard error envelope
func respondError(c *fiber.Ctx, err error) error {
	ce := types.Classify(err)
	if ce.Code >= fiber.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Method(), c.OriginalURL(), err)
	}
	return utils.CustomErrorResponse(c, ce)
}

// requireIdentity returns the caller identity, or an authorization error when absent
func requireIdentity(c *fiber.Ctx) (*identity.Identity, error) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return nil, &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Authentication required",
			Type:    "authorization.identity",
			Err:     types.ErrUnauthorized,
		}
	}
	return id, nil
}
