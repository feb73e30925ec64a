package config

import "fmt"

// Validate checks that every budget and threshold is set to a usable
// value. It runs after YAML overlay so a malformed or zeroed override is
// caught before the daemon starts serving tickets.
func Validate(cfg *Config) error {
	if cfg.Server.ListenAddr == "" {
		return NewValidationError("server.listen_addr", ErrMissingRequiredField)
	}

	if cfg.LLM.Provider == "" {
		return NewValidationError("llm.provider", ErrMissingRequiredField)
	}
	if cfg.LLM.Model == "" {
		return NewValidationError("llm.model", ErrMissingRequiredField)
	}

	if cfg.Probe.PerProbeMs <= 0 {
		return NewValidationError("probe.per_probe_ms", ErrInvalidValue)
	}
	if cfg.Probe.TotalMs <= 0 {
		return NewValidationError("probe.total_ms", ErrInvalidValue)
	}
	if cfg.Probe.TotalMs < cfg.Probe.PerProbeMs {
		return NewValidationError("probe.total_ms", fmt.Errorf("%w: must be at least per_probe_ms", ErrInvalidValue))
	}
	if cfg.Probe.Concurrency <= 0 {
		return NewValidationError("probe.concurrency", ErrInvalidValue)
	}
	if cfg.Probe.OutputCapBytes <= 0 {
		return NewValidationError("probe.output_cap_bytes", ErrInvalidValue)
	}

	if cfg.Review.TranslatorMs <= 0 {
		return NewValidationError("review.translator_ms", ErrInvalidValue)
	}
	if cfg.Review.SpecialistMs <= 0 {
		return NewValidationError("review.specialist_ms", ErrInvalidValue)
	}
	if cfg.Review.SeniorMs <= 0 {
		return NewValidationError("review.senior_ms", ErrInvalidValue)
	}
	if cfg.Review.JuniorRoundsMax <= 0 {
		return NewValidationError("review.junior_rounds_max", ErrInvalidValue)
	}
	if cfg.Review.SeniorRoundsMax <= 0 {
		return NewValidationError("review.senior_rounds_max", ErrInvalidValue)
	}
	if cfg.Review.JuniorThreshold <= 0 || cfg.Review.JuniorThreshold > 100 {
		return NewValidationError("review.junior_threshold", ErrInvalidValue)
	}

	if cfg.Thresholds.AcceptScore <= 0 || cfg.Thresholds.AcceptScore > 100 {
		return NewValidationError("thresholds.accept_score", ErrInvalidValue)
	}
	if cfg.Thresholds.FallbackAcceptScore <= 0 || cfg.Thresholds.FallbackAcceptScore > 100 {
		return NewValidationError("thresholds.fallback_accept_score", ErrInvalidValue)
	}
	if cfg.Thresholds.MinGrounding < 0 || cfg.Thresholds.MinGrounding > 1 {
		return NewValidationError("thresholds.min_grounding", ErrInvalidValue)
	}

	return nil
}
