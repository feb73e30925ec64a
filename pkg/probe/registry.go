package probe

import (
	"fmt"
	"strings"
)

// ErrUnknownProbe is returned by CommandOf for any ID whose Name isn't in
// the fixed catalogue below. It should never occur for IDs produced by this
// package's own constructors; it exists as a defensive boundary for IDs
// that arrived over the wire (e.g. replayed from a transcript).
var ErrUnknownProbe = fmt.Errorf("probe: unknown probe name")

// CommandOf returns the exact shell command line for id. These strings are
// ported verbatim from the original probe_spine.rs command table: they are
// the entire set of commands Anna is ever allowed to execute, apart from
// NameCustom, whose Arg is returned verbatim and which ParseID never yields.
func CommandOf(id ID) (string, error) {
	switch id.Name {
	case NameLscpu:
		return "lscpu", nil
	case NameSensors:
		return "sensors", nil
	case NameFree:
		return "free -b", nil
	case NameDf:
		return "df -h", nil
	case NameLsblk:
		return "lsblk -b -J", nil
	case NameLspciAudio:
		return "lspci | grep -i audio", nil
	case NamePactlCards:
		return "pactl list cards 2>/dev/null || true", nil
	case NameIPAddr:
		return "ip addr", nil
	case NameTopMemory:
		return "ps aux --sort=-%mem | head -6", nil
	case NameTopCPU:
		return "ps aux --sort=-%cpu | head -6", nil
	case NameFailedUnits:
		return "systemctl --failed --no-pager", nil
	case NameIsActive:
		return fmt.Sprintf("systemctl is-active %s", id.Arg), nil
	case NameJournalErrors:
		return "journalctl -p err -b --no-pager | head -20", nil
	case NameJournalWarning:
		return "journalctl -p warning -b --no-pager | head -20", nil
	case NamePacmanQ:
		return fmt.Sprintf("pacman -Q %s 2>/dev/null", id.Arg), nil
	case NamePacmanCount:
		return "pacman -Qe | wc -l", nil
	case NameCommandV:
		return fmt.Sprintf("command -v %s", id.Arg), nil
	case NameSystemdAnalyze:
		return "systemd-analyze", nil
	case NameUname:
		return "uname -a", nil
	case NameCustom:
		return id.Arg, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProbe, id.Name)
	}
}

// parameterlessNames is the set of Name values that take no Arg, used by
// ParseID to reject an Arg supplied where the catalogue doesn't expect one.
var parameterlessNames = map[Name]bool{
	NameLscpu: true, NameSensors: true, NameFree: true, NameDf: true,
	NameLsblk: true, NameLspciAudio: true, NamePactlCards: true,
	NameIPAddr: true, NameTopMemory: true, NameTopCPU: true,
	NameFailedUnits: true, NameJournalErrors: true, NameJournalWarning: true,
	NamePacmanCount: true, NameSystemdAnalyze: true, NameUname: true,
}

// parameterizedNames is the set of Name values that require a non-empty
// Arg.
var parameterizedNames = map[Name]bool{
	NameIsActive: true, NamePacmanQ: true, NameCommandV: true,
}

// ParseID parses the "name" or "name:arg" canonical form produced by
// ID.Canonical back into an ID, validating it against the fixed catalogue.
// NameCustom is deliberately rejected here: it is the one catalogue entry
// that runs an arbitrary command, and callers parsing untrusted text (an
// LLM's proposed probes) must never be able to reach it. ParseID is the
// boundary that keeps "propose probes by name" from becoming "propose
// probes by shell command".
func ParseID(canonical string) (ID, bool) {
	name, arg, hasArg := strings.Cut(canonical, ":")
	n := Name(name)

	if parameterlessNames[n] {
		if hasArg {
			return ID{}, false
		}
		return ID{Name: n}, true
	}
	if parameterizedNames[n] {
		if !hasArg || arg == "" {
			return ID{}, false
		}
		return ID{Name: n, Arg: arg}, true
	}
	return ID{}, false
}

// ProbesFor returns the probes that ground the given evidence kind. Gpu and
// ToolExists return nil: Gpu evidence comes from a hardware snapshot outside
// this pipeline, and ToolExists needs a specific tool name the caller must
// supply via CommandV directly.
func ProbesFor(kind EvidenceKind) []ID {
	switch kind {
	case EvidenceCPU:
		return []ID{Lscpu()}
	case EvidenceCPUTemperature:
		return []ID{Sensors()}
	case EvidenceMemory:
		return []ID{Free()}
	case EvidenceDisk:
		return []ID{Df()}
	case EvidenceBlockDevices:
		return []ID{Lsblk()}
	case EvidenceGPU:
		return nil
	case EvidenceAudio:
		return []ID{LspciAudio(), PactlCards()}
	case EvidenceNetwork:
		return []ID{IPAddr()}
	case EvidenceProcesses:
		return []ID{TopCPU(), TopMemory()}
	case EvidenceServices:
		return []ID{FailedUnits()}
	case EvidenceJournal:
		return []ID{JournalErrors(), JournalWarning()}
	case EvidencePackages:
		return []ID{PacmanCount()}
	case EvidenceToolExists:
		return nil
	case EvidenceBootTime:
		return []ID{SystemdAnalyze()}
	case EvidenceSystem:
		return []ID{Uname()}
	default:
		return nil
	}
}
