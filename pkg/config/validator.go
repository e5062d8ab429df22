package config

// Validator collects every configuration problem in one pass rather
// than failing on the first, matching the teacher's validator shape.
type Validator struct {
	cfg *Config
}

// NewValidator constructs a Validator for cfg.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll runs every check and returns the collected errors, or
// nil if cfg is valid.
func (v *Validator) ValidateAll() error {
	var errs ValidationErrors

	if v.cfg.Host == "" {
		errs = append(errs, &ValidationError{Field: "host", Err: errEmptyHost})
	}
	if v.cfg.Port < 1 || v.cfg.Port > 65535 {
		errs = append(errs, &ValidationError{Field: "port", Err: errPortRange})
	}
	if v.cfg.GRPCPort != 0 && (v.cfg.GRPCPort < 1 || v.cfg.GRPCPort > 65535) {
		errs = append(errs, &ValidationError{Field: "grpc_port", Err: errPortRange})
	}
	switch v.cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, &ValidationError{Field: "log_format", Err: errUnknownLogFormat})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
