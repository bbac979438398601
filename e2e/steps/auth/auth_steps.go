// Package auth holds step definitions for token issuance.
package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the scenario context these steps need.
type TestContext interface {
	POST(path string, body interface{}) error
	GetResponseField(field string) (interface{}, error)
	SetAccessToken(token string)
	Credentials() (clientID, clientSecret string)
}

// RegisterSteps registers the authentication step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I request a token with the seeded operator credentials$`, steps.requestToken)
	ctx.Step(`^I request a token with client ID "([^"]*)" and secret "([^"]*)"$`, steps.requestTokenWith)
	ctx.Step(`^I am authenticated as the seeded operator$`, steps.authenticate)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) requestToken(ctx context.Context) error {
	clientID, clientSecret := s.tc.Credentials()
	return s.requestTokenWith(ctx, clientID, clientSecret)
}

func (s *authSteps) requestTokenWith(_ context.Context, clientID, clientSecret string) error {
	return s.tc.POST("/v1/token", map[string]interface{}{
		"client_id":     clientID,
		"client_secret": clientSecret,
	})
}

func (s *authSteps) authenticate(ctx context.Context) error {
	if err := s.requestToken(ctx); err != nil {
		return err
	}
	token, err := s.tc.GetResponseField("access_token")
	if err != nil {
		return fmt.Errorf("token response: %w", err)
	}
	value, ok := token.(string)
	if !ok || value == "" {
		return fmt.Errorf("access_token missing from token response")
	}
	s.tc.SetAccessToken(value)
	return nil
}
