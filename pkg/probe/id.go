package probe

import "fmt"

// Name identifies a probe kind. Parameterized probes (IsActive, PacmanQ,
// CommandV) carry their argument in ID.Arg rather than in the Name itself,
// matching the Rust original's ProbeId::IsActive(String)-style variants
// while staying a comparable, zero-value-friendly Go struct.
type Name string

const (
	NameLscpu          Name = "lscpu"
	NameSensors        Name = "sensors"
	NameFree           Name = "free"
	NameDf             Name = "df"
	NameLsblk          Name = "lsblk"
	NameLspciAudio     Name = "lspci_audio"
	NamePactlCards     Name = "pactl_cards"
	NameIPAddr         Name = "ip_addr"
	NameTopMemory      Name = "top_memory"
	NameTopCPU         Name = "top_cpu"
	NameFailedUnits    Name = "failed_units"
	NameIsActive       Name = "is_active"
	NameJournalErrors  Name = "journal_errors"
	NameJournalWarning Name = "journal_warnings"
	NamePacmanQ        Name = "pacman_q"
	NamePacmanCount    Name = "pacman_count"
	NameCommandV       Name = "command_v"
	NameSystemdAnalyze Name = "systemd_analyze"
	NameUname          Name = "uname"
	NameCustom         Name = "custom"
)

// ID identifies one probe invocation. Arg is empty for parameterless probes.
type ID struct {
	Name Name
	Arg  string
}

// Canonical returns the stable string form used for dedup, transcript
// events, and the "{name}:{arg}" Display format the Rust original used.
func (id ID) Canonical() string {
	if id.Arg == "" {
		return string(id.Name)
	}
	return fmt.Sprintf("%s:%s", id.Name, id.Arg)
}

// Simple probe constructors for the parameterless cases, for readability at
// call sites.
func Lscpu() ID          { return ID{Name: NameLscpu} }
func Sensors() ID        { return ID{Name: NameSensors} }
func Free() ID           { return ID{Name: NameFree} }
func Df() ID             { return ID{Name: NameDf} }
func Lsblk() ID          { return ID{Name: NameLsblk} }
func LspciAudio() ID     { return ID{Name: NameLspciAudio} }
func PactlCards() ID     { return ID{Name: NamePactlCards} }
func IPAddr() ID         { return ID{Name: NameIPAddr} }
func TopMemory() ID      { return ID{Name: NameTopMemory} }
func TopCPU() ID         { return ID{Name: NameTopCPU} }
func FailedUnits() ID    { return ID{Name: NameFailedUnits} }
func JournalErrors() ID  { return ID{Name: NameJournalErrors} }
func JournalWarning() ID { return ID{Name: NameJournalWarning} }
func PacmanCount() ID    { return ID{Name: NamePacmanCount} }
func SystemdAnalyze() ID { return ID{Name: NameSystemdAnalyze} }
func Uname() ID          { return ID{Name: NameUname} }

// Parameterized probe constructors.
func IsActive(unit string) ID  { return ID{Name: NameIsActive, Arg: unit} }
func PacmanQ(pkg string) ID    { return ID{Name: NamePacmanQ, Arg: pkg} }
func CommandV(cmd string) ID   { return ID{Name: NameCommandV, Arg: cmd} }
func Custom(command string) ID { return ID{Name: NameCustom, Arg: command} }
