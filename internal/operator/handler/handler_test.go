package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwatch/internal/operator"
	dErrors "adwatch/pkg/domain-errors"
	"adwatch/pkg/testutil"
)

type stubService struct {
	issued *operator.IssuedToken
	err    error

	gotClientID     string
	gotClientSecret string
}

func (s *stubService) Authenticate(_ context.Context, clientID, clientSecret string) (*operator.IssuedToken, error) {
	s.gotClientID = clientID
	s.gotClientSecret = clientSecret
	if s.err != nil {
		return nil, s.err
	}
	return s.issued, nil
}

func newRouter(svc Service) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func TestHandleTokenSuccess(t *testing.T) {
	svc := &stubService{issued: &operator.IssuedToken{
		AccessToken: "signed.jwt.token",
		ExpiresIn:   15 * time.Minute,
	}}
	router := newRouter(svc)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/token", map[string]string{
		"client_id":     "acme-air",
		"client_secret": "s3cret",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[TokenResponse](t, rr)
	assert.Equal(t, "signed.jwt.token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.EqualValues(t, 900, resp.ExpiresIn)
	assert.Equal(t, "acme-air", svc.gotClientID)
	assert.Equal(t, "s3cret", svc.gotClientSecret)
}

func TestHandleTokenValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing client_id", map[string]string{"client_secret": "s3cret"}},
		{"missing client_secret", map[string]string{"client_id": "acme-air"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{}
			router := newRouter(svc)

			req := testutil.NewJSONRequest(t, http.MethodPost, "/token", tc.body)
			rr := testutil.DoRequest(router, req)

			testutil.AssertStatus(t, rr, http.StatusBadRequest)
			// The service must not be reached with an invalid request.
			assert.Empty(t, svc.gotClientID)
		})
	}
}

func TestHandleTokenMalformedBody(t *testing.T) {
	router := newRouter(&stubService{})

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/token", "{not json")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	errResp := testutil.UnmarshalErrorResponse(t, rr)
	assert.Equal(t, "bad_request", errResp["error"])
}

func TestHandleTokenUnauthorized(t *testing.T) {
	svc := &stubService{err: dErrors.New(dErrors.CodeUnauthorized, "invalid client credentials")}
	router := newRouter(svc)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/token", map[string]string{
		"client_id":     "acme-air",
		"client_secret": "wrong",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	errResp := testutil.UnmarshalErrorResponse(t, rr)
	require.Equal(t, "unauthorized", errResp["error"])
}
