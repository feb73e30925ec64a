package spine

import (
	"fmt"
	"strings"

	"github.com/jjgarcianorway/anna/pkg/probe"
)

// Decision records the outcome of minimum-probe enforcement: what was
// already proposed, what spine added and why.
type Decision struct {
	Enforced      bool
	Reason        string
	Probes        []probe.ID
	EvidenceKinds []probe.EvidenceKind
}

type rule struct {
	name      string
	keywords  []string
	matches   func(lower string) bool
	addProbes func(lower string) []probe.ID
	evidence  []probe.EvidenceKind
	reason    string
}

// rules is the fixed, ordered table of keyword-triggered minimum-evidence
// requirements, ported from the original's enforce_minimum_probes. Order
// does not affect the final probe set (each rule only ever appends), but is
// kept identical to the original for auditability.
var rules = []rule{
	{
		name: "package_or_tool_check",
		matches: func(lower string) bool {
			return strings.Contains(lower, "do i have") ||
				strings.Contains(lower, "is installed") ||
				strings.Contains(lower, "have i got") ||
				strings.Contains(lower, "installed?")
		},
		reason: "package/tool check",
	},
	{
		name: "audio_hardware",
		matches: func(lower string) bool {
			return strings.Contains(lower, "sound card") ||
				strings.Contains(lower, "audio device") ||
				strings.Contains(lower, "audio card") ||
				strings.Contains(lower, "sound device") ||
				(strings.Contains(lower, "sound") && strings.Contains(lower, "hardware")) ||
				(strings.Contains(lower, "audio") && strings.Contains(lower, "hardware"))
		},
		addProbes: func(lower string) []probe.ID {
			return []probe.ID{probe.LspciAudio(), probe.PactlCards()}
		},
		evidence: []probe.EvidenceKind{probe.EvidenceAudio},
		reason:   "audio hardware query",
	},
	{
		name: "temperature",
		matches: func(lower string) bool {
			return strings.Contains(lower, "temperature") ||
				strings.Contains(lower, " temp ") ||
				strings.Contains(lower, "thermal") ||
				strings.Contains(lower, "temps?") ||
				strings.Contains(lower, "how hot")
		},
		addProbes: func(lower string) []probe.ID { return []probe.ID{probe.Sensors()} },
		evidence:  []probe.EvidenceKind{probe.EvidenceCPUTemperature},
		reason:    "temperature query",
	},
	{
		name: "cpu_info",
		matches: func(lower string) bool {
			return strings.Contains(lower, "cores") ||
				strings.Contains(lower, "cpu model") ||
				strings.Contains(lower, "architecture") ||
				strings.Contains(lower, "processor") ||
				strings.Contains(lower, "how many cpu")
		},
		addProbes: func(lower string) []probe.ID { return []probe.ID{probe.Lscpu()} },
		evidence:  []probe.EvidenceKind{probe.EvidenceCPU},
		reason:    "CPU info query",
	},
	{
		name: "system_health",
		matches: func(lower string) bool {
			return strings.Contains(lower, "how is my computer") ||
				strings.Contains(lower, "errors") ||
				strings.Contains(lower, "problems") ||
				strings.Contains(lower, "system health") ||
				strings.Contains(lower, "what's wrong") ||
				strings.Contains(lower, "issues")
		},
		addProbes: func(lower string) []probe.ID {
			return []probe.ID{probe.JournalErrors(), probe.FailedUnits(), probe.SystemdAnalyze()}
		},
		evidence: []probe.EvidenceKind{probe.EvidenceJournal, probe.EvidenceServices, probe.EvidenceBootTime},
		reason:   "system health query",
	},
}

// EnforceMinimum inspects userText for keyword patterns that imply a
// factual claim and returns the probes spine requires regardless of what
// the translator already proposed. translatorProbes are merged in ahead of
// spine's own additions (translator probes come first), with de-duplication
// by canonical command string.
//
// EnforceMinimum is idempotent: calling it again with its own output as
// translatorProbes returns the same probe set, since every probe it adds
// collapses under the de-dup check on a second pass.
func EnforceMinimum(userText string, translatorProbes []probe.ID) Decision {
	lower := strings.ToLower(userText)

	var spineProbes []probe.ID
	var evidenceKinds []probe.EvidenceKind
	var reasons []string

	for _, r := range rules {
		if !r.matches(lower) {
			continue
		}

		if r.name == "package_or_tool_check" {
			pkg, ok := extractPackageName(userText)
			if !ok {
				continue
			}
			if !containsProbe(spineProbes, probe.PacmanQ(pkg)) {
				spineProbes = append(spineProbes, probe.PacmanQ(pkg), probe.CommandV(pkg))
				evidenceKinds = append(evidenceKinds, probe.EvidencePackages, probe.EvidenceToolExists)
				reasons = append(reasons, r.reason)
			}
			continue
		}

		added := r.addProbes(lower)
		if len(added) == 0 {
			continue
		}
		if containsProbe(spineProbes, added[0]) {
			continue
		}
		spineProbes = append(spineProbes, added...)
		evidenceKinds = append(evidenceKinds, r.evidence...)
		reasons = append(reasons, r.reason)
	}

	final := mergeProbes(spineProbes, translatorProbes)

	reason := "no keyword matches"
	if len(reasons) > 0 {
		reason = fmt.Sprintf("enforced for: %s", strings.Join(reasons, ", "))
	}

	return Decision{
		Enforced:      len(spineProbes) > 0,
		Reason:        reason,
		Probes:        final,
		EvidenceKinds: evidenceKinds,
	}
}

func containsProbe(probes []probe.ID, id probe.ID) bool {
	for _, p := range probes {
		if p == id {
			return true
		}
	}
	return false
}

// mergeProbes puts translatorProbes first, then appends each spine probe not
// already present by canonical command.
func mergeProbes(spineProbes, translatorProbes []probe.ID) []probe.ID {
	final := make([]probe.ID, 0, len(spineProbes)+len(translatorProbes))
	final = append(final, translatorProbes...)

	seen := make(map[string]bool, len(final))
	for _, p := range final {
		cmd, _ := probe.CommandOf(p)
		seen[cmd] = true
	}

	for _, sp := range spineProbes {
		cmd, err := probe.CommandOf(sp)
		if err != nil {
			continue
		}
		if seen[cmd] {
			continue
		}
		seen[cmd] = true
		final = append(final, sp)
	}

	return final
}
