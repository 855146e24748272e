// Package handler exposes the admin console's API surface: CRUD over
// properties, units, clients and contracts, installment payments, and the
// dashboard reports.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/aqarat/estate-engine/pkg/apperrors"
)

// decode parses and validates a JSON request body.
func decode(r *http.Request, v *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.WrapValidation("malformed request body", err)
	}
	if err := v.Struct(dst); err != nil {
		return apperrors.WrapValidation("request validation failed", err)
	}
	return nil
}

// pathID extracts a UUID path variable.
func pathID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[key])
	if err != nil {
		return uuid.Nil, apperrors.WrapValidation("invalid id in path", err)
	}
	return id, nil
}
