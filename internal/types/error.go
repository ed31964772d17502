// error.go
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

package types

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"

	"gorm.io/gorm"
)

// Error kinds. Every error that reaches the API boundary wraps one of these.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// CustomError is the structured error rendered by the API
type CustomError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a 400 error carrying field level detail
func NewValidationError(fields map[string]string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Invalid input",
		Type:    "validation",
		Fields:  fields,
		Err:     ErrValidation,
	}
}

// Classify converts any error into the CustomError rendered at the API boundary
func Classify(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}

	switch {
	case errors.Is(err, ErrValidation):
		return &CustomError{Code: http.StatusBadRequest, Message: err.Error(), Type: "validation", Err: err}
	case errors.Is(err, ErrUnauthorized):
		return &CustomError{Code: http.StatusForbidden, Message: err.Error(), Type: "authorization", Err: err}
	case errors.Is(err, ErrNotFound):
		return &CustomError{Code: http.StatusNotFound, Message: err.Error(), Type: "not_found", Err: err}
	case errors.Is(err, ErrConflict):
		return &CustomError{Code: http.StatusConflict, Message: err.Error(), Type: "conflict", Err: err}
	case errors.Is(err, ErrStoreUnavailable):
		return &CustomError{Code: http.StatusInternalServerError, Message: err.Error(), Type: "store.unavailable", Err: err}
	}

	return &CustomError{Code: http.StatusInternalServerError, Message: err.Error(), Type: "internal", Err: err}
}

// FromStore maps errors returned by GORM and the database drivers onto the
// error kinds. Errors already carrying a kind pass through unchanged.
func FromStore(err error) error {
	if err == nil {
		return nil
	}

	for _, kind := range []error{ErrNotFound, ErrUnauthorized, ErrValidation, ErrConflict, ErrStoreUnavailable} {
		if errors.Is(err, kind) {
			return err
		}
	}

	var netErr net.Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return err
}
