package handler

import (
	"strings"

	dErrors "adwatch/pkg/domain-errors"
)

// maxDocumentBytes bounds ingest payloads; directive documents are a few
// hundred kilobytes of text at most.
const maxDocumentBytes = 1 << 20

// IngestRequest is the HTTP request body for POST /v1/directives.
type IngestRequest struct {
	DirectiveID string `json:"directive_id"`
	Text        string `json:"text"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *IngestRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.DirectiveID = strings.TrimSpace(r.DirectiveID)
	if r.DirectiveID == "" {
		return dErrors.New(dErrors.CodeValidation, "directive_id is required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return dErrors.New(dErrors.CodeValidation, "text is required")
	}
	if len(r.Text) > maxDocumentBytes {
		return dErrors.New(dErrors.CodeValidation, "text exceeds the maximum document size")
	}
	return nil
}
