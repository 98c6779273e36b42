package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
	exporters  = []string{"stdout", "otlp"}
)

// problems collects every invalid setting so one run reports them all.
type problems []error

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Errorf(format, args...))
}

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		p.addf(format, args...)
	}
}

func (p *problems) oneOf(key, got string, allowed []string) {
	p.check(slices.Contains(allowed, got), "%s must be one of: %s; got %q", key, strings.Join(allowed, ", "), got)
}

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	var p problems

	p.check(c.Server.Port >= 1 && c.Server.Port <= 65535, "server.port must be between 1 and 65535, got %d", c.Server.Port)
	p.check(c.Server.ReadTimeout > 0, "server.read_timeout must be positive")
	p.check(c.Server.WriteTimeout > 0, "server.write_timeout must be positive")

	p.oneOf("log.level", c.Log.Level, logLevels)
	p.oneOf("log.format", c.Log.Format, logFormats)

	c.Client.validate(&p)

	if c.Telemetry.Enabled {
		p.oneOf("telemetry.exporter", c.Telemetry.Exporter, exporters)
		p.check(c.Telemetry.Exporter != "otlp" || c.Telemetry.Endpoint != "",
			"telemetry.endpoint must not be empty when exporter is otlp")
	}

	d := c.Dialog
	p.check(d.MaxOpen >= 0, "dialog.max_open must not be negative, got %d", d.MaxOpen)
	p.check(d.IdleTimeout > 0, "dialog.idle_timeout must be positive")
	p.check(isLocalPath(d.ReturnPath), "dialog.return_path must be a path on this host, got %q", d.ReturnPath)

	return errors.Join(p...)
}

func (cl *ClientConfig) validate(p *problems) {
	if u, err := url.Parse(cl.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		p.addf("client.base_url must be an absolute http(s) URL, got %q", cl.BaseURL)
	}
	p.check(cl.Timeout > 0, "client.timeout must be positive")

	r := cl.Retry
	p.check(r.MaxAttempts >= 1, "client.retry.max_attempts must be >= 1, got %d", r.MaxAttempts)
	p.check(r.Multiplier > 0, "client.retry.multiplier must be positive, got %g", r.Multiplier)
	p.check(r.MaxInterval >= r.InitialInterval,
		"client.retry.max_interval (%s) must not be below initial_interval (%s)", r.MaxInterval, r.InitialInterval)

	p.check(cl.CircuitBreaker.MaxFailures >= 1,
		"client.circuit_breaker.max_failures must be >= 1, got %d", cl.CircuitBreaker.MaxFailures)

	rl := cl.RateLimit
	p.check(rl.RequestsPerSecond >= 0,
		"client.rate_limit.requests_per_second must not be negative, got %g", rl.RequestsPerSecond)
	p.check(rl.RequestsPerSecond == 0 || rl.BurstSize >= 1,
		"client.rate_limit.burst_size must be >= 1 when rate limiting is enabled, got %d", rl.BurstSize)
}

// isLocalPath rejects anything a browser would resolve to another origin,
// including scheme-relative "//host" forms.
func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, `/\`) {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
