package handler

import (
	"strings"

	dErrors "adwatch/pkg/domain-errors"
)

// TokenRequest is the HTTP request body for POST /v1/token.
type TokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *TokenRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.ClientID = strings.TrimSpace(r.ClientID)
	if r.ClientID == "" {
		return dErrors.New(dErrors.CodeValidation, "client_id is required")
	}
	if r.ClientSecret == "" {
		return dErrors.New(dErrors.CodeValidation, "client_secret is required")
	}
	return nil
}
