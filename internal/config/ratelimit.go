package config

import (
    "os"
    "strconv"
    "time"
)

// RateLimitConfig controls the fixed-window limiter applied to the auth
// endpoints.  Limit requests per Window are allowed per client IP and route.
type RateLimitConfig struct {
    Enabled bool
    Limit   int
    Window  time.Duration
    Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig.
// Defaults allow 20 auth attempts per minute per IP.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: envBool("RATE_LIMIT_ENABLED", true),
        Limit:   envInt("RATE_LIMIT_LIMIT", 20),
        Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
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

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    switch os.Getenv(k) {
    case "1", "true", "TRUE", "True", "yes", "on":
        return true
    case "0", "false", "FALSE", "False", "no", "off":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
