package config

import "time"

// Config is the umbrella configuration object Initialize returns: every
// budget, threshold, and connection setting the daemon needs, with no
// registries to look things up in — Anna has one pipeline, not a fleet of
// agents and chains to select between.
type Config struct {
	configDir string // configuration directory path (for reference)

	Server     ServerConfig
	LLM        LLMConfig
	Probe      ProbeConfig
	Review     ReviewConfig
	Thresholds ThresholdConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// LLMConfig selects and configures the language model backing the
// translator and specialist. APIKeyEnv names the environment variable
// holding the credential; the key itself never appears in YAML.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// ProbeConfig bounds how probes are executed against the host.
type ProbeConfig struct {
	PerProbeMs     int `yaml:"per_probe_ms" validate:"required,min=1"`
	TotalMs        int `yaml:"total_ms" validate:"required,min=1"`
	Concurrency    int `yaml:"concurrency" validate:"required,min=1"`
	OutputCapBytes int `yaml:"output_cap_bytes" validate:"required,min=1"`
}

// ReviewConfig bounds the translator/specialist/senior LLM calls and the
// junior/senior review loop.
type ReviewConfig struct {
	TranslatorMs    int `yaml:"translator_ms" validate:"required,min=1"`
	SpecialistMs    int `yaml:"specialist_ms" validate:"required,min=1"`
	SeniorMs        int `yaml:"senior_ms" validate:"required,min=1"`
	JuniorRoundsMax int `yaml:"junior_rounds_max" validate:"required,min=1"`
	SeniorRoundsMax int `yaml:"senior_rounds_max" validate:"required,min=1"`
	JuniorThreshold int `yaml:"junior_threshold" validate:"required,min=1,max=100"`
}

// ThresholdConfig is the review gate's acceptance policy.
type ThresholdConfig struct {
	AcceptScore         int     `yaml:"accept_score" validate:"required,min=1,max=100"`
	MinGrounding        float64 `yaml:"min_grounding" validate:"required,min=0,max=1"`
	FallbackAcceptScore int     `yaml:"fallback_accept_score" validate:"required,min=1,max=100"`
}

// ConfigDir returns the configuration directory path Initialize was called
// with.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// PerProbe returns the per-probe deadline as the time.Duration
// pkg/probe.Executor expects.
func (p ProbeConfig) PerProbe() time.Duration { return time.Duration(p.PerProbeMs) * time.Millisecond }

// Total returns the probe batch's overall deadline.
func (p ProbeConfig) Total() time.Duration { return time.Duration(p.TotalMs) * time.Millisecond }
