package specialist

import (
	"fmt"
	"strings"

	"github.com/jjgarcianorway/anna/pkg/knowledge"
	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/reliability"
)

// probeLabel gives each probe a short, human-readable name for the
// deterministic fallback template. Falls back to the probe's canonical
// command form for anything not worth a friendlier label.
func probeLabel(id probe.ID) string {
	switch id.Name {
	case probe.NameLscpu:
		return "CPU info"
	case probe.NameSensors:
		return "temperature sensors"
	case probe.NameFree:
		return "memory usage"
	case probe.NameDf:
		return "disk usage"
	case probe.NameLsblk:
		return "block devices"
	case probe.NameLspciAudio:
		return "audio hardware"
	case probe.NamePactlCards:
		return "audio cards"
	case probe.NameIPAddr:
		return "network interfaces"
	case probe.NameTopMemory:
		return "top memory consumers"
	case probe.NameTopCPU:
		return "top CPU consumers"
	case probe.NameFailedUnits:
		return "failed services"
	case probe.NameIsActive:
		return fmt.Sprintf("service %s status", id.Arg)
	case probe.NameJournalErrors:
		return "recent journal errors"
	case probe.NameJournalWarning:
		return "recent journal warnings"
	case probe.NamePacmanQ:
		return fmt.Sprintf("package %s", id.Arg)
	case probe.NamePacmanCount:
		return "installed package count"
	case probe.NameCommandV:
		return fmt.Sprintf("command %s", id.Arg)
	case probe.NameSystemdAnalyze:
		return "boot time"
	case probe.NameUname:
		return "system identification"
	default:
		return id.Canonical()
	}
}

// DeterministicDraft assembles an answer directly from probe output and the
// knowledge pack, without any LLM involvement. Every claim it produces is
// grounded: the text it writes is the evidence, so there is nothing to
// invent. Used on LLM unavailability/timeout and by any caller that wants
// a predictable, zero-latency answer.
func DeterministicDraft(userText string, results []probe.Result, pack []knowledge.Entry) Draft {
	var sb strings.Builder
	var claims []Claim

	for _, r := range results {
		if r.TimedOut || r.ExitCode != 0 || strings.TrimSpace(r.Output) == "" {
			continue
		}
		line := fmt.Sprintf("%s: %s", probeLabel(r.ID), firstLine(r.Output))
		sb.WriteString(line)
		sb.WriteString("\n")
		claims = append(claims, Claim{
			Text:     line,
			Evidence: Evidence{Kind: SourceProbe, ProbeID: r.ID},
		})
	}

	if entry, ok := knowledge.TryAnswer(pack, userText, 10); ok {
		sb.WriteString(entry.Body)
		sb.WriteString("\n")
		claims = append(claims, Claim{
			Text:     entry.Body,
			Evidence: Evidence{Kind: SourcePack, PackEntryID: entry.ID},
		})
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		text = "I could not gather any evidence for this request."
	}

	return Draft{
		Text:                  text,
		Claims:                claims,
		GroundingRatio:        GroundingRatio(claims),
		NoInvention:           true,
		UnverifiableSpecifics: CountUnverifiableSpecifics(claims),
		Fallback:              reliability.FallbackDeterministic,
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
