package e2e

import (
	"github.com/cucumber/godog"

	"adwatch/e2e/steps/auth"
	"adwatch/e2e/steps/common"
	"adwatch/e2e/steps/directive"
	"adwatch/e2e/steps/evaluation"
)

// RegisterSteps registers all step definitions from the step packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	auth.RegisterSteps(ctx, tc)
	directive.RegisterSteps(ctx, tc)
	evaluation.RegisterSteps(ctx, tc)
}
