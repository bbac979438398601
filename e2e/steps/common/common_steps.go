// Package common holds step definitions shared by every feature: generic
// requests and response assertions.
package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the scenario context these steps need.
type TestContext interface {
	GET(path string, headers map[string]string) error
	LastStatus() int
	GetResponseField(field string) (interface{}, error)
}

// RegisterSteps registers the shared step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^the response status should be (\d+)$`, steps.assertStatus)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.assertFieldString)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, steps.assertFieldBool)
	ctx.Step(`^the response field "([^"]*)" should be (\d+)$`, steps.assertFieldNumber)
	ctx.Step(`^the response should contain field "([^"]*)"$`, steps.assertFieldPresent)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) get(_ context.Context, path string) error {
	return s.tc.GET(path, nil)
}

func (s *commonSteps) assertStatus(_ context.Context, expected int) error {
	if s.tc.LastStatus() != expected {
		return fmt.Errorf("expected status %d, got %d", expected, s.tc.LastStatus())
	}
	return nil
}

func (s *commonSteps) assertFieldString(_ context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if fmt.Sprintf("%v", value) != expected {
		return fmt.Errorf("expected %s=%q, got %v", field, expected, value)
	}
	return nil
}

func (s *commonSteps) assertFieldBool(_ context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("field %s is not a boolean: %v", field, value)
	}
	if fmt.Sprintf("%t", b) != expected {
		return fmt.Errorf("expected %s=%s, got %t", field, expected, b)
	}
	return nil
}

func (s *commonSteps) assertFieldNumber(_ context.Context, field string, expected int) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	n, ok := value.(float64)
	if !ok {
		return fmt.Errorf("field %s is not a number: %v", field, value)
	}
	if int(n) != expected {
		return fmt.Errorf("expected %s=%d, got %d", field, expected, int(n))
	}
	return nil
}

func (s *commonSteps) assertFieldPresent(_ context.Context, field string) error {
	_, err := s.tc.GetResponseField(field)
	return err
}
