package specialist

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jjgarcianorway/anna/pkg/knowledge"
	"github.com/jjgarcianorway/anna/pkg/llm"
	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/reliability"
)

var logger = slog.With("component", "specialist")

// Draft is the specialist's output: the assembled answer text, the parallel
// Claim structure the reliability scorer and review gate consume, and the
// structural facts about how it was produced.
type Draft struct {
	Text                  string
	Claims                []Claim
	GroundingRatio        float64
	NoInvention           bool
	UnverifiableSpecifics int
	Fallback              reliability.Fallback
}

// Specialist assembles a grounded draft answer from probe evidence, the
// knowledge pack, and an LLM, attaching every factual claim to its evidence
// source or marking it ungrounded. Mirrors the teacher's controller shape
// (pkg/agent/base_agent.go's delegate-to-strategy idiom): prefer the LLM,
// fall back deterministically whenever its output can't be trusted.
type Specialist struct {
	Client  llm.Client
	Timeout time.Duration
}

// New constructs a Specialist. client may be nil, which always uses the
// deterministic template path.
func New(client llm.Client, timeout time.Duration) *Specialist {
	return &Specialist{Client: client, Timeout: timeout}
}

// claimLine matches one tagged line of the LLM's response: a bracketed
// evidence tag ("probe:<id>", "pack:<id>", or "none") followed by the claim
// text. The model is asked to emit exactly this shape in the system prompt
// so extraction never has to guess at sentence boundaries in free prose.
var claimLine = regexp.MustCompile(`(?m)^\[(probe:[^\]]+|pack:[^\]]+|none)\]\s*(.+)$`)

const systemPromptTemplate = `You are drafting a factual answer for a local Linux system assistant, using ONLY the evidence listed below. Do not rely on any other knowledge about specific hardware models, software versions, or configuration — if it isn't in the evidence, you don't know it.

Evidence:
%s

Write the answer as one or more lines. Each line MUST begin with exactly one tag:
  [probe:<id>]  a fact taken directly from that probe's output above
  [pack:<id>]   a fact taken directly from that knowledge entry above
  [none]        commentary with no factual claim — no numbers, no specific hardware or software names

Never invent a probe or pack id that is not listed above. If the evidence does not support an answer, say so in a [none] line rather than guessing.`

// Compose drafts an answer to userText from the given probe results and
// knowledge-pack matches. It prefers the LLM path and validates every claim
// the model makes against the evidence actually supplied; any failure of
// that path (no client, transport error, timeout, or a response with no
// parseable claims) falls back to DeterministicDraft.
func (s *Specialist) Compose(ctx context.Context, userText string, results []probe.Result, pack []knowledge.Entry) Draft {
	if s.Client == nil {
		return DeterministicDraft(userText, results, pack)
	}

	evidence, probeByTag, packByTag := renderEvidence(results, pack)
	if evidence == "" {
		return DeterministicDraft(userText, results, pack)
	}

	deadline := time.Now().Add(s.Timeout)
	raw, err := s.Client.Complete(ctx, llm.Request{
		System:   fmt.Sprintf(systemPromptTemplate, evidence),
		User:     userText,
		Deadline: deadline,
	})
	if err != nil {
		logger.Warn("LLM drafting failed, falling back to deterministic draft", "stage", "compose", "error", err)
		draft := DeterministicDraft(userText, results, pack)
		if llm.KindOf(err) == llm.ErrorTimeout {
			draft.Fallback = reliability.FallbackTimeout
		}
		return draft
	}

	claims, invented := parseClaims(raw, probeByTag, packByTag)
	if len(claims) == 0 {
		logger.Warn("LLM draft had no parseable claims, falling back to deterministic draft", "stage", "compose")
		return DeterministicDraft(userText, results, pack)
	}
	if invented {
		logger.Warn("LLM draft cited evidence not actually offered", "stage", "compose")
	}

	return Draft{
		Text:                  strings.TrimSpace(raw),
		Claims:                claims,
		GroundingRatio:        GroundingRatio(claims),
		NoInvention:           !invented,
		UnverifiableSpecifics: CountUnverifiableSpecifics(claims),
		Fallback:              reliability.FallbackNone,
	}
}

// renderEvidence builds the evidence block the system prompt lists, plus
// lookup tables from the tag a claim cites back to the probe/pack entry it
// names, so parseClaims can tell a genuine citation from an invented one.
func renderEvidence(results []probe.Result, pack []knowledge.Entry) (block string, probeByTag map[string]probe.ID, packByTag map[string]string) {
	probeByTag = make(map[string]probe.ID)
	packByTag = make(map[string]string)

	var sb strings.Builder
	for _, r := range results {
		if r.TimedOut || r.ExitCode != 0 || strings.TrimSpace(r.Output) == "" {
			continue
		}
		tag := r.ID.Canonical()
		probeByTag[tag] = r.ID
		fmt.Fprintf(&sb, "[probe:%s] %s\n", tag, firstLine(r.Output))
	}
	for _, e := range pack {
		packByTag[e.ID] = e.ID
		fmt.Fprintf(&sb, "[pack:%s] %s: %s\n", e.ID, e.Title, e.Body)
	}
	return sb.String(), probeByTag, packByTag
}

// parseClaims extracts one Claim per tagged line of raw. invented is true
// if any line cited a probe or pack id that was not actually offered as
// evidence — the one deterministic, testable definition of "invention" this
// pipeline uses: a claim whose evidence reference doesn't exist is an
// escalation-worthy fabrication, distinct from an uncited specific (which
// only counts toward UnverifiableSpecifics).
func parseClaims(raw string, probeByTag map[string]probe.ID, packByTag map[string]string) ([]Claim, bool) {
	matches := claimLine.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil, false
	}

	var claims []Claim
	invented := false

	for _, m := range matches {
		tag, text := m[1], strings.TrimSpace(m[2])
		if text == "" {
			continue
		}

		switch {
		case tag == "none":
			claims = append(claims, Claim{Text: text, Evidence: Evidence{Kind: SourceUngrounded}})

		case strings.HasPrefix(tag, "probe:"):
			id, ok := probeByTag[strings.TrimPrefix(tag, "probe:")]
			if !ok {
				invented = true
				claims = append(claims, Claim{Text: text, Evidence: Evidence{Kind: SourceUngrounded, Invented: true}})
				continue
			}
			claims = append(claims, Claim{Text: text, Evidence: Evidence{Kind: SourceProbe, ProbeID: id}})

		case strings.HasPrefix(tag, "pack:"):
			entryID, ok := packByTag[strings.TrimPrefix(tag, "pack:")]
			if !ok {
				invented = true
				claims = append(claims, Claim{Text: text, Evidence: Evidence{Kind: SourceUngrounded, Invented: true}})
				continue
			}
			claims = append(claims, Claim{Text: text, Evidence: Evidence{Kind: SourcePack, PackEntryID: entryID}})
		}
	}

	return claims, invented
}
