// Command llm-provider is a stand-in OpenAI-compatible chat-completions
// server for local development and end-to-end runs. It answers every
// extraction prompt with a canned directive derived from crude text matching
// on the user message, so adwatch's LLM fallback path can be exercised
// without an API key for a real provider.
//
// Behavior toggles via headers on the request:
//
//	X-Mock-Scenario: rate-limit  -> 429
//	X-Mock-Scenario: outage      -> 503
//	X-Mock-Scenario: garbage     -> syntactically invalid JSON content
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	addr := os.Getenv("MOCK_LLM_ADDR")
	if addr == "" {
		addr = ":9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", handleCompletions)
	mux.HandleFunc("/v1/chat/completions", handleCompletions)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Printf("mock llm provider listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func handleCompletions(w http.ResponseWriter, r *http.Request) {
	switch r.Header.Get("X-Mock-Scenario") {
	case "rate-limit":
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
		return
	case "outage":
		http.Error(w, `{"error":{"message":"upstream unavailable"}}`, http.StatusServiceUnavailable)
		return
	case "garbage":
		writeCompletion(w, "this is not json {")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":{"message":"invalid request body"}}`, http.StatusBadRequest)
		return
	}

	var userText string
	for _, m := range req.Messages {
		if m.Role == "user" {
			userText = m.Content
		}
	}

	writeCompletion(w, directiveFor(userText))
}

// directiveFor returns the canned extraction for the document embedded in
// the prompt. The cases mirror the fixture documents used by the e2e suite.
func directiveFor(text string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "MD-11"):
		return `{
			"issuing_authority": "FAA",
			"effective_date": "December 30, 2025",
			"manufacturer": "Boeing",
			"applicability_rules": [
				{
					"aircraft_models": ["MD-11", "MD-11F"],
					"msn_constraint": {"type": "all", "min_msn": null, "max_msn": null, "specific_msns": null},
					"excluded_if_modifications": [],
					"required_modifications": []
				}
			]
		}`
	case strings.Contains(upper, "A320"):
		return `{
			"issuing_authority": "EASA",
			"effective_date": "12 March 2026",
			"manufacturer": "Airbus",
			"applicability_rules": [
				{
					"aircraft_models": ["A320-211", "A320-212", "A320-214"],
					"msn_constraint": {"type": "all", "min_msn": null, "max_msn": null, "specific_msns": null},
					"excluded_if_modifications": [
						{"identifier": "24591", "revision": null, "phase": "production"}
					],
					"required_modifications": []
				}
			]
		}`
	default:
		return `{
			"issuing_authority": "UNKNOWN",
			"effective_date": "Unknown",
			"manufacturer": "Unknown",
			"applicability_rules": [
				{
					"aircraft_models": ["B737-800"],
					"msn_constraint": {"type": "range", "min_msn": 30000, "max_msn": 39999, "specific_msns": null},
					"excluded_if_modifications": [],
					"required_modifications": []
				}
			]
		}`
	}
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-mock",
		"object": "chat.completion",
		"model":  "mock-extractor",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	})
}
