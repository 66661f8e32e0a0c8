package rustc

import "time"

// Config holds the configuration for the rustc sandbox.
type Config struct {
	// Rustc is the compiler binary, resolved via the host search path.
	Rustc string
	// Edition is the language edition passed to rustc via --edition. It is
	// the only flag beyond source and output paths — no sandboxing flags,
	// no resource limits.
	Edition string
	// CompileTimeout bounds the compiler process. Keep it strictly longer
	// than RunTimeout: compilation is the heavier stage.
	CompileTimeout time.Duration
	// RunTimeout bounds the compiled artifact.
	RunTimeout time.Duration
}

// DefaultConfig provides the defaults the playground ships with.
func DefaultConfig() Config {
	return Config{
		Rustc:          "rustc",
		Edition:        "2021",
		CompileTimeout: 10 * time.Second,
		RunTimeout:     5 * time.Second,
	}
}
