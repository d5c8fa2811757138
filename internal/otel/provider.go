package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Config holds OTel configuration
type Config struct {
	Enabled     bool
	ServiceName string
}

// Provider hands out meters for the pipeline's instruments.
// When enabled, meters come from the global MeterProvider, so a host that
// installs an SDK provider receives the loader metrics. When disabled every
// meter is a no-op.
type Provider struct {
	config Config
}

// New creates a new OTel provider with the given configuration.
func New(cfg Config) *Provider {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "wingmate"
	}
	return &Provider{config: cfg}
}

// Meter returns a meter with the given instrumentation name.
func (p *Provider) Meter(name string) metric.Meter {
	if p == nil || !p.config.Enabled {
		return noop.Meter{}
	}
	return otel.Meter(name)
}

// Enabled returns whether OTel is enabled
func (p *Provider) Enabled() bool {
	return p != nil && p.config.Enabled
}

// ServiceName returns the configured service name.
func (p *Provider) ServiceName() string {
	return p.config.ServiceName
}
