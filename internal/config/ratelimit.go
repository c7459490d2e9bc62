package config

import "time"

// RateLimitConfig controls the fixed-window limiter applied to the public
// submission endpoints (booking requests, contact form).  These endpoints
// are unauthenticated and trigger outbound notifications, so they are the
// only spam-sensitive surface.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // requests allowed per window, per client IP
	Window  time.Duration // window length
	Prefix  string        // redis key prefix
}

// LoadRateLimitConfig reads limiter settings from the environment.  The
// defaults allow 10 submissions per 10 minutes per IP, generous for humans
// and tight for scripts.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   envInt("RATE_LIMIT_REQUESTS", 10),
		Window:  envDur("RATE_LIMIT_WINDOW", 10*time.Minute),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
