// Package diagnose runs connectivity probes against the live Exa API so
// operators can validate a deployment before serving MCP traffic.
package diagnose

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/exa-search-mcp/library/search"
)

const (
	probeQuery = "test query"
	probeURL   = "https://example.com"

	probeTimeout = 60 * time.Second
)

// Probe is one connectivity check outcome. Non-critical probe failures are
// reported but do not fail the suite.
type Probe struct {
	Name     string
	Critical bool
	Err      error
	Detail   string
}

// Report aggregates the probe outcomes of one diagnose run.
type Report struct {
	Probes []Probe
}

// Passed reports whether every critical probe succeeded.
func (r Report) Passed() bool {
	for _, probe := range r.Probes {
		if probe.Critical && probe.Err != nil {
			return false
		}
	}
	return true
}

// Run executes the search, content extraction, and similarity probes
// concurrently against the provider. It returns an error only when a
// critical probe fails.
func Run(ctx context.Context, provider search.Provider, logger logSDK.Logger) (Report, error) {
	if provider == nil {
		return Report{}, errors.New("search provider is required")
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	// Probes share the diagnose logger so client debug logs land on it.
	ctx = gmw.SetLogger(ctx, logger)

	probes := make([]Probe, 3)
	var pool errgroup.Group

	pool.Go(func() error {
		probes[0] = probeSearch(ctx, provider)
		return nil
	})
	pool.Go(func() error {
		probes[1] = probeContents(ctx, provider)
		return nil
	})
	pool.Go(func() error {
		probes[2] = probeSimilar(ctx, provider)
		return nil
	})

	_ = pool.Wait()

	report := Report{Probes: probes}
	for _, probe := range probes {
		if probe.Err != nil {
			logger.Warn("probe failed",
				zap.String("probe", probe.Name),
				zap.Bool("critical", probe.Critical),
				zap.Error(probe.Err),
			)
			continue
		}
		logger.Info("probe passed",
			zap.String("probe", probe.Name),
			zap.String("detail", probe.Detail),
		)
	}

	if !report.Passed() {
		return report, errors.New("critical connectivity probe failed")
	}
	return report, nil
}

func probeSearch(ctx context.Context, provider search.Provider) Probe {
	probe := Probe{Name: "search", Critical: true}

	items, err := provider.Search(ctx, search.Query{Text: probeQuery, NumResults: 1})
	if err != nil {
		probe.Err = errors.Wrap(err, "basic search")
		return probe
	}
	if len(items) == 0 {
		probe.Err = errors.New("search returned no results, possible api key issue")
		return probe
	}

	probe.Detail = items[0].URL
	return probe
}

func probeContents(ctx context.Context, provider search.Provider) Probe {
	probe := Probe{Name: "contents", Critical: false}

	pages, err := provider.Contents(ctx, []string{probeURL})
	if err != nil {
		probe.Err = errors.Wrap(err, "content extraction")
		return probe
	}
	if len(pages) == 0 {
		probe.Detail = "no content extracted (not critical)"
		return probe
	}

	probe.Detail = pages[0].URL
	return probe
}

func probeSimilar(ctx context.Context, provider search.Provider) Probe {
	probe := Probe{Name: "find_similar", Critical: false}

	items, err := provider.FindSimilar(ctx, probeURL, 1)
	if err != nil {
		probe.Err = errors.Wrap(err, "similarity search")
		return probe
	}
	if len(items) == 0 {
		probe.Detail = "no similar pages found (not critical)"
		return probe
	}

	probe.Detail = items[0].URL
	return probe
}
