// Package probe defines the fixed catalogue of host-inspection commands Anna
// is allowed to run, and a bounded-concurrency executor for running them.
// Probes are plain shell commands, not an MCP tool protocol: the catalogue
// in registry.go is the entire attack surface, and nothing outside it can be
// invoked no matter what a translator or specialist proposes.
package probe

// EvidenceKind names a category of system fact a ticket may need grounded.
// Mirrors the EvidenceKind enum ported from original_source's probe_spine.rs.
type EvidenceKind string

const (
	EvidenceCPU            EvidenceKind = "cpu"
	EvidenceCPUTemperature EvidenceKind = "cpu_temperature"
	EvidenceMemory         EvidenceKind = "memory"
	EvidenceDisk           EvidenceKind = "disk"
	EvidenceBlockDevices   EvidenceKind = "block_devices"
	EvidenceGPU            EvidenceKind = "gpu"
	EvidenceAudio          EvidenceKind = "audio"
	EvidenceNetwork        EvidenceKind = "network"
	EvidenceProcesses      EvidenceKind = "processes"
	EvidenceServices       EvidenceKind = "services"
	EvidenceJournal        EvidenceKind = "journal"
	EvidencePackages       EvidenceKind = "packages"
	EvidenceToolExists     EvidenceKind = "tool_exists"
	EvidenceBootTime       EvidenceKind = "boot_time"
	EvidenceSystem         EvidenceKind = "system"
)
