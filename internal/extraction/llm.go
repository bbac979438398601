package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adwatch/internal/applicability"
)

const llmSystemPrompt = `You are an aviation safety expert. Extract applicability rules from the provided airworthiness directive (AD) text.

Output must be a valid JSON object matching this structure:
{
    "issuing_authority": "FAA" or "EASA" or "UNKNOWN",
    "effective_date": "string",
    "manufacturer": "string",
    "applicability_rules": [
        {
            "aircraft_models": ["model1", "model2"],
            "msn_constraint": {
                "type": "all" or "range" or "list",
                "min_msn": integer or null,
                "max_msn": integer or null,
                "specific_msns": [list of ints] or null
            },
            "excluded_if_modifications": [
                {
                    "identifier": "string",
                    "revision": "string" or null,
                    "phase": "production" or "service" or null
                }
            ],
            "required_modifications": []
        }
    ]
}

RULES:
1. "aircraft_models" must match the AD text exactly.
2. Handle "except those on which..." clauses as exclusions.
3. Treat modification (mod) numbers and Service Bulletin (SB) codes both as modification identifiers.
4. If phase (production/service) is not specified, use null.`

// LLMConfig configures the language-model fallback extractor.
type LLMConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	MaxTextBytes int
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// LLMExtractor extracts directives through an OpenAI-compatible
// chat-completions endpoint. It handles documents the pattern extractors
// cannot: unknown authorities and nonstandard applicability language.
// Model output passes through the same directive constructors as pattern
// extraction, so invariant checking applies to it equally.
type LLMExtractor struct {
	cfg    LLMConfig
	client *http.Client
}

// NewLLMExtractor builds the fallback extractor. The API key is sent only as
// an Authorization header and never appears in errors.
func NewLLMExtractor(cfg LLMConfig) *LLMExtractor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTextBytes <= 0 {
		cfg.MaxTextBytes = 15000
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &LLMExtractor{cfg: cfg, client: client}
}

func (e *LLMExtractor) ID() string                   { return "llm-fallback" }
func (e *LLMExtractor) Authority() DetectedAuthority { return DetectedUnknown }

func (e *LLMExtractor) Extract(ctx context.Context, text, directiveID string) (*applicability.AirworthinessDirective, error) {
	if e.cfg.APIKey == "" {
		return nil, NewExtractionError(ErrorInternal, e.ID(), "api key not configured", nil)
	}

	if len(text) > e.cfg.MaxTextBytes {
		text = text[:e.cfg.MaxTextBytes]
	}

	content, err := e.complete(ctx, text)
	if err != nil {
		return nil, err
	}

	var payload llmDirectivePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, NewExtractionError(ErrorBadPayload, e.ID(), "model returned invalid JSON", err)
	}

	directive, err := payload.toDirective(directiveID)
	if err != nil {
		return nil, NewExtractionError(ErrorBadPayload, e.ID(), "model output failed directive validation", err)
	}
	return directive, nil
}

// complete performs one chat-completions call and returns the message content.
func (e *LLMExtractor) complete(ctx context.Context, text string) (string, error) {
	requestBody, err := json.Marshal(map[string]any{
		"model": e.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": llmSystemPrompt},
			{"role": "user", "content": "Extract rules from this AD:\n\n" + text},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0,
	})
	if err != nil {
		return "", NewExtractionError(ErrorInternal, e.ID(), "marshal completion request", err)
	}

	url := strings.TrimSuffix(e.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return "", NewExtractionError(ErrorInternal, e.ID(), "build completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)

	res, err := e.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", NewExtractionError(ErrorTimeout, e.ID(), "completion request timed out", err)
		}
		return "", NewExtractionError(ErrorProviderOutage, e.ID(), "completion request failed", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return "", NewExtractionError(ErrorRateLimited, e.ID(), "provider rate limited the request", nil)
	case res.StatusCode >= 500:
		return "", NewExtractionError(ErrorProviderOutage, e.ID(), fmt.Sprintf("provider returned status %d", res.StatusCode), nil)
	case res.StatusCode < 200 || res.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", NewExtractionError(ErrorInternal, e.ID(),
			fmt.Sprintf("completion request status %d: %s", res.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", NewExtractionError(ErrorBadPayload, e.ID(), "decode completion response", err)
	}
	if len(payload.Choices) == 0 || strings.TrimSpace(payload.Choices[0].Message.Content) == "" {
		return "", NewExtractionError(ErrorBadPayload, e.ID(), "completion response had no content", nil)
	}
	return payload.Choices[0].Message.Content, nil
}

// llmDirectivePayload mirrors the JSON schema the system prompt mandates.
type llmDirectivePayload struct {
	IssuingAuthority   string           `json:"issuing_authority"`
	EffectiveDate      string           `json:"effective_date"`
	Manufacturer       string           `json:"manufacturer"`
	ApplicabilityRules []llmRulePayload `json:"applicability_rules"`
}

type llmRulePayload struct {
	AircraftModels          []string             `json:"aircraft_models"`
	MSNConstraint           llmConstraintPayload `json:"msn_constraint"`
	ExcludedIfModifications []llmModRefPayload   `json:"excluded_if_modifications"`
	RequiredModifications   []llmModRefPayload   `json:"required_modifications"`
}

type llmConstraintPayload struct {
	Type         string `json:"type"`
	MinMSN       *int   `json:"min_msn"`
	MaxMSN       *int   `json:"max_msn"`
	SpecificMSNs []int  `json:"specific_msns"`
}

type llmModRefPayload struct {
	Identifier string  `json:"identifier"`
	Revision   *string `json:"revision"`
	Phase      *string `json:"phase"`
}

func (p llmDirectivePayload) toDirective(directiveID string) (*applicability.AirworthinessDirective, error) {
	authority, err := applicability.ParseAuthority(p.IssuingAuthority)
	if err != nil {
		authority = applicability.AuthorityUnknown
	}

	rules := make([]applicability.ApplicabilityRule, 0, len(p.ApplicabilityRules))
	for _, rp := range p.ApplicabilityRules {
		rule, err := rp.toRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return applicability.NewAirworthinessDirective(
		directiveID,
		authority,
		orUnknown(p.EffectiveDate),
		orUnknown(p.Manufacturer),
		rules,
		"Extracted by LLM fallback",
	)
}

func (rp llmRulePayload) toRule() (applicability.ApplicabilityRule, error) {
	constraint, err := rp.MSNConstraint.toConstraint()
	if err != nil {
		return applicability.ApplicabilityRule{}, err
	}

	excluded, err := toModificationReferences(rp.ExcludedIfModifications)
	if err != nil {
		return applicability.ApplicabilityRule{}, err
	}
	required, err := toModificationReferences(rp.RequiredModifications)
	if err != nil {
		return applicability.ApplicabilityRule{}, err
	}

	return applicability.NewApplicabilityRule(rp.AircraftModels, constraint, excluded, required)
}

func (cp llmConstraintPayload) toConstraint() (applicability.SerialNumberConstraint, error) {
	switch strings.ToLower(strings.TrimSpace(cp.Type)) {
	case "", "all":
		return applicability.SerialAll(), nil
	case "range":
		return applicability.SerialRange(cp.MinMSN, cp.MaxMSN)
	case "list", "specific":
		return applicability.SerialList(cp.SpecificMSNs)
	default:
		return applicability.SerialNumberConstraint{}, fmt.Errorf("unknown serial constraint type %q", cp.Type)
	}
}

func toModificationReferences(payloads []llmModRefPayload) ([]applicability.ModificationReference, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	refs := make([]applicability.ModificationReference, 0, len(payloads))
	for _, mp := range payloads {
		phaseText := ""
		if mp.Phase != nil {
			phaseText = *mp.Phase
		}
		phase, err := applicability.ParseModificationPhase(phaseText)
		if err != nil {
			return nil, err
		}
		revision := ""
		if mp.Revision != nil {
			revision = *mp.Revision
		}
		ref, err := applicability.NewModificationReference(mp.Identifier, revision, phase)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
