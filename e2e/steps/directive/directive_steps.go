// Package directive holds step definitions for directive ingestion.
package directive

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the scenario context these steps need.
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
}

// Known directive documents keyed by the fixture name used in feature files.
var fixtureDocuments = map[string]string{
	"faa-md11": "Federal Aviation Administration\n" +
		"Airworthiness Directive 2025-23-53\n" +
		"Boeing Commercial Airplanes\n\n" +
		"## Applicability\n\n" +
		"(1) Model MD-11 and MD-11F airplanes.\n\n" +
		"## Effective Date\n\n" +
		"December 30, 2025\n",
	"easa-a320": "European Union Aviation Safety Agency\n" +
		"EASA AD No. 2026-0042\n\n" +
		"## Applicability\n\n" +
		"Airbus A320-211, A320-212 and A320-214, all manufacturer serial " +
		"numbers (MSN), except those on which Airbus modification (mod) 24591 " +
		"has been embodied in production.\n\n" +
		"## Effective Date\n\n" +
		"12 March 2026\n",
}

// RegisterSteps registers the directive step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &directiveSteps{tc: tc}

	ctx.Step(`^I ingest the "([^"]*)" directive document as "([^"]*)"$`, steps.ingestFixture)
	ctx.Step(`^I ingest directive "([^"]*)" with text "([^"]*)"$`, steps.ingestText)
	ctx.Step(`^I fetch directive "([^"]*)"$`, steps.fetch)
	ctx.Step(`^I list all directives$`, steps.list)
}

type directiveSteps struct {
	tc TestContext
}

func (s *directiveSteps) ingestFixture(_ context.Context, fixture, directiveID string) error {
	text, ok := fixtureDocuments[fixture]
	if !ok {
		return fmt.Errorf("unknown directive fixture %q", fixture)
	}
	return s.tc.POST("/v1/directives", map[string]interface{}{
		"directive_id": directiveID,
		"text":         text,
	})
}

func (s *directiveSteps) ingestText(_ context.Context, directiveID, text string) error {
	return s.tc.POST("/v1/directives", map[string]interface{}{
		"directive_id": directiveID,
		"text":         text,
	})
}

func (s *directiveSteps) fetch(_ context.Context, directiveID string) error {
	return s.tc.GET("/v1/directives/"+directiveID, nil)
}

func (s *directiveSteps) list(_ context.Context) error {
	return s.tc.GET("/v1/directives", nil)
}
