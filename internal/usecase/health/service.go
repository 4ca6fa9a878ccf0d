package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the search index is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentIndex     = "index"
	ComponentCatalog   = "catalog"
	ComponentEmbedding = "embedding"
)

// DefaultTimeout bounds each probe so a hung dependency cannot stall /health.
const DefaultTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// probe is one dependency check. Only required probes make the service unhealthy.
type probe struct {
	name     string
	required bool
	run      func(ctx context.Context) error
}

// Service coordinates health checks.
type Service struct {
	probes  []probe
	timeout time.Duration
}

// New creates a Service. Offer search and suggestions need the index; the
// venue catalog and the embedding provider only enrich them, so they are
// optional and can be nil.
func New(index, catalog Pinger, embedding EmbeddingChecker) *Service {
	probes := []probe{{name: ComponentIndex, required: true, run: index.Ping}}
	if catalog != nil {
		probes = append(probes, probe{name: ComponentCatalog, run: catalog.Ping})
	}
	if embedding != nil {
		probes = append(probes, probe{name: ComponentEmbedding, run: embedding.HealthCheck})
	}
	return &Service{probes: probes, timeout: DefaultTimeout}
}

// WithTimeout overrides the per-probe timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check runs every probe concurrently.
func (s *Service) Check(ctx context.Context) Report {
	results := make([]CheckResult, len(s.probes))

	var wg sync.WaitGroup
	for i, p := range s.probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			results[i] = result(p.run(pctx))
		}()
	}
	wg.Wait()

	report := Report{Status: Healthy, Checks: make(map[string]CheckResult, len(s.probes))}
	for i, p := range s.probes {
		report.Checks[p.name] = results[i]
		if results[i] == CheckOK {
			continue
		}
		if p.required {
			report.Status = Unhealthy
		} else if report.Status == Healthy {
			report.Status = Degraded
		}
	}
	return report
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
