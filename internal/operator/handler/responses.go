package handler

import "adwatch/internal/operator"

// TokenResponse is the HTTP response for POST /v1/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// FromIssuedToken converts an issued token to its HTTP response.
func FromIssuedToken(issued *operator.IssuedToken) *TokenResponse {
	return &TokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(issued.ExpiresIn.Seconds()),
	}
}
