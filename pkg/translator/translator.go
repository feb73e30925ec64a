// Package translator turns raw user text into a routed, typed request: an
// intent, a domain/team/route classification, and a starting probe list.
// It prefers an LLM-assisted classification but never depends on one: any
// failure of the LLM path (unavailable, timeout, or a response that fails
// validation) falls back to the deterministic keyword tables in this
// package, which are pure, instant, and always available.
package translator

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/jjgarcianorway/anna/pkg/llm"
	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/ticket"
)

var logger = slog.With("component", "translator")

// Output is what the rest of the pipeline consumes: enough to construct a
// Ticket and seed the probe spine.
type Output struct {
	Intent         ticket.Intent
	Domain         string
	Team           string
	RouteClass     string
	ProposedProbes []probe.ID

	// UsedFallback is true when the LLM path was skipped, unavailable, or
	// produced output the translator had to reject.
	UsedFallback bool
}

const systemPrompt = `You classify a request to a local Linux system assistant.
Respond with a single JSON object and nothing else, in this exact shape:
{"intent":"question|investigate|request","domain":"<short lowercase category>","team":"<short capitalized team name>","route_class":"<short snake_case label>","proposed_probes":["<probe id>", ...]}
proposed_probes must be empty or chosen only from this fixed catalogue of probe ids: lscpu, sensors, free, df, lsblk, lspci_audio, pactl_cards, ip_addr, top_memory, top_cpu, failed_units, is_active:<unit>, journal_errors, journal_warnings, pacman_q:<pkg>, pacman_count, command_v:<cmd>, systemd_analyze, uname.
Never invent a probe id outside this list. If you are unsure, return an empty proposed_probes array.`

// llmResponse is the wire shape the system prompt above asks the model for.
type llmResponse struct {
	Intent         string   `json:"intent"`
	Domain         string   `json:"domain"`
	Team           string   `json:"team"`
	RouteClass     string   `json:"route_class"`
	ProposedProbes []string `json:"proposed_probes"`
}

// Translator classifies incoming requests. A nil Client makes it always use
// the deterministic fallback, which is a valid and fully-supported mode
// (tests, or a config that disables LLM-assisted translation entirely).
type Translator struct {
	Client  llm.Client
	Timeout time.Duration
}

// New constructs a Translator. timeout bounds the LLM call; client may be
// nil.
func New(client llm.Client, timeout time.Duration) *Translator {
	return &Translator{Client: client, Timeout: timeout}
}

// Translate classifies userText, preferring the LLM path when a Client is
// configured and falling back deterministically on any failure.
func (t *Translator) Translate(ctx context.Context, userText string) Output {
	if t.Client != nil {
		if out, ok := t.translateWithLLM(ctx, userText); ok {
			return out
		}
	}
	return t.deterministicFallback(userText)
}

func (t *Translator) deterministicFallback(userText string) Output {
	route := ClassifyRoute(userText)
	return Output{
		Intent:         ClassifyIntent(userText),
		Domain:         route.Domain,
		Team:           route.Team,
		RouteClass:     route.RouteClass,
		ProposedProbes: nil,
		UsedFallback:   true,
	}
}

// translateWithLLM calls the LLM and validates its response. ok is false
// for any failure mode (transport, timeout, malformed JSON, or an intent
// value outside the known set), signalling the caller to fall back.
func (t *Translator) translateWithLLM(ctx context.Context, userText string) (Output, bool) {
	deadline := time.Now().Add(t.Timeout)
	raw, err := t.Client.Complete(ctx, llm.Request{
		System:   systemPrompt,
		User:     userText,
		Deadline: deadline,
	})
	if err != nil {
		logger.Warn("LLM classification failed, falling back", "stage", "translate", "error", err)
		return Output{}, false
	}

	var resp llmResponse
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &resp); err != nil {
		logger.Warn("LLM response not valid JSON, falling back", "stage", "translate", "error", err)
		return Output{}, false
	}

	intent, ok := parseIntent(resp.Intent)
	if !ok {
		logger.Warn("LLM response named an unknown intent, falling back", "stage", "translate", "intent", resp.Intent)
		return Output{}, false
	}
	if strings.TrimSpace(resp.Domain) == "" || strings.TrimSpace(resp.Team) == "" || strings.TrimSpace(resp.RouteClass) == "" {
		logger.Warn("LLM response missing a required field, falling back", "stage", "translate")
		return Output{}, false
	}

	var probes []probe.ID
	for _, p := range resp.ProposedProbes {
		id, ok := probe.ParseID(p)
		if !ok {
			continue // drop invented or malformed entries, don't fail the whole translation
		}
		probes = append(probes, id)
	}

	return Output{
		Intent:         intent,
		Domain:         resp.Domain,
		Team:           resp.Team,
		RouteClass:     resp.RouteClass,
		ProposedProbes: probes,
		UsedFallback:   false,
	}, true
}

func parseIntent(s string) (ticket.Intent, bool) {
	switch ticket.Intent(strings.ToLower(strings.TrimSpace(s))) {
	case ticket.IntentQuestion:
		return ticket.IntentQuestion, true
	case ticket.IntentInvestigate:
		return ticket.IntentInvestigate, true
	case ticket.IntentRequest:
		return ticket.IntentRequest, true
	default:
		return "", false
	}
}

// extractJSONObject returns the substring of s spanning the first '{' to
// the last '}', tolerating a model that wraps its JSON in prose or a
// markdown code fence despite being asked not to.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
