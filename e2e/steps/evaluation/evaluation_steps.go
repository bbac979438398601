// Package evaluation holds step definitions for applicability evaluation.
package evaluation

import (
	"context"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext is the slice of the scenario context these steps need.
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
}

// RegisterSteps registers the evaluation step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &evaluationSteps{tc: tc}

	ctx.Step(`^I evaluate directive "([^"]*)" against a "([^"]*)" with serial number (\d+)$`, steps.evaluate)
	ctx.Step(`^I evaluate directive "([^"]*)" against a "([^"]*)" with serial number (\d+) and modification "([^"]*)"$`, steps.evaluateWithModification)
	ctx.Step(`^I evaluate directive "([^"]*)" against the fleet:$`, steps.evaluateFleet)
	ctx.Step(`^I list evaluations for directive "([^"]*)"$`, steps.list)
}

type evaluationSteps struct {
	tc TestContext
}

func (s *evaluationSteps) evaluate(_ context.Context, directiveID, model string, serialNumber int) error {
	return s.tc.POST("/v1/evaluations", map[string]interface{}{
		"directive_id": directiveID,
		"configuration": map[string]interface{}{
			"model":         model,
			"serial_number": serialNumber,
		},
	})
}

func (s *evaluationSteps) evaluateWithModification(_ context.Context, directiveID, model string, serialNumber int, modification string) error {
	return s.tc.POST("/v1/evaluations", map[string]interface{}{
		"directive_id": directiveID,
		"configuration": map[string]interface{}{
			"model":         model,
			"serial_number": serialNumber,
			"modifications": []map[string]interface{}{
				{"identifier": modification},
			},
		},
	})
}

// evaluateFleet reads a gherkin table with columns: model | serial_number |
// modifications (comma separated, optional).
func (s *evaluationSteps) evaluateFleet(_ context.Context, directiveID string, table *godog.Table) error {
	configurations := make([]map[string]interface{}, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		serialNumber, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		configuration := map[string]interface{}{
			"model":         row.Cells[0].Value,
			"serial_number": serialNumber,
		}
		if len(row.Cells) > 2 && strings.TrimSpace(row.Cells[2].Value) != "" {
			var mods []map[string]interface{}
			for _, identifier := range strings.Split(row.Cells[2].Value, ",") {
				if identifier = strings.TrimSpace(identifier); identifier != "" {
					mods = append(mods, map[string]interface{}{"identifier": identifier})
				}
			}
			configuration["modifications"] = mods
		}
		configurations = append(configurations, configuration)
	}

	return s.tc.POST("/v1/evaluations/fleet", map[string]interface{}{
		"directive_id":   directiveID,
		"configurations": configurations,
	})
}

func (s *evaluationSteps) list(_ context.Context, directiveID string) error {
	return s.tc.GET("/v1/directives/"+directiveID+"/evaluations", nil)
}
