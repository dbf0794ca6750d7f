package config

import "context"

type contextKey struct{}

// ContextWithConfig returns a copy of ctx carrying cfg.
func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the config stored in ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(contextKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return DefaultConfig()
}
