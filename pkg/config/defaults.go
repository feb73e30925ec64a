package config

// DefaultConfig returns the daemon's built-in defaults. Every value here
// matches pkg/orchestrator.DefaultConfig's budgets and thresholds, since
// this is the YAML-loadable form of the same numbers; Initialize starts
// from this and lets anna.yaml override any field.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:8787",
		},
		LLM: LLMConfig{
			Provider:  "anthropic",
			Model:     "claude-sonnet-4-5",
			APIKeyEnv: "ANTHROPIC_API_KEY",
		},
		Probe: ProbeConfig{
			PerProbeMs:     4000,
			TotalMs:        10000,
			Concurrency:    4,
			OutputCapBytes: 8192,
		},
		Review: ReviewConfig{
			TranslatorMs:    8000,
			SpecialistMs:    12000,
			SeniorMs:        8000,
			JuniorRoundsMax: 2,
			SeniorRoundsMax: 1,
			JuniorThreshold: 80,
		},
		Thresholds: ThresholdConfig{
			AcceptScore:         80,
			MinGrounding:        0.5,
			FallbackAcceptScore: 70,
		},
	}
}
