package diagnose

import (
	"context"
	"testing"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/exa-search-mcp/library/log"
	"github.com/Laisky/exa-search-mcp/library/search"
)

func TestRunAllProbesPass(t *testing.T) {
	provider := &stubProvider{
		items: []search.SearchResultItem{{URL: "https://example.com", Title: "Example"}},
		pages: []search.PageContent{{URL: "https://example.com", Content: "body"}},
	}

	report, err := Run(context.Background(), provider, log.Logger.Named("test_diagnose"))
	require.NoError(t, err)
	require.True(t, report.Passed())
	require.Len(t, report.Probes, 3)
	for _, probe := range report.Probes {
		require.NoError(t, probe.Err)
	}
}

func TestRunFailsWhenSearchProbeFails(t *testing.T) {
	provider := &stubProvider{
		searchErr: errors.New("invalid api key"),
		pages:     []search.PageContent{{URL: "https://example.com", Content: "body"}},
		items:     []search.SearchResultItem{{URL: "https://example.com"}},
	}

	report, err := Run(context.Background(), provider, log.Logger.Named("test_diagnose"))
	require.Error(t, err)
	require.False(t, report.Passed())
}

func TestRunTreatsEmptySearchAsFailure(t *testing.T) {
	provider := &stubProvider{
		pages: []search.PageContent{{URL: "https://example.com", Content: "body"}},
	}

	report, err := Run(context.Background(), provider, log.Logger.Named("test_diagnose"))
	require.Error(t, err)
	require.False(t, report.Passed())
}

func TestRunToleratesNonCriticalFailures(t *testing.T) {
	provider := &stubProvider{
		items:       []search.SearchResultItem{{URL: "https://example.com"}},
		contentsErr: errors.New("blocked"),
		similarErr:  errors.New("blocked"),
	}

	report, err := Run(context.Background(), provider, log.Logger.Named("test_diagnose"))
	require.NoError(t, err)
	require.True(t, report.Passed())

	failed := 0
	for _, probe := range report.Probes {
		if probe.Err != nil {
			require.False(t, probe.Critical)
			failed++
		}
	}
	require.Equal(t, 2, failed)
}

func TestRunPutsLoggerIntoProbeContext(t *testing.T) {
	provider := &stubProvider{
		items: []search.SearchResultItem{{URL: "https://example.com"}},
		pages: []search.PageContent{{URL: "https://example.com", Content: "body"}},
	}
	logger := log.Logger.Named("test_diagnose_ctx")

	_, err := Run(context.Background(), provider, logger)
	require.NoError(t, err)
	require.NotNil(t, provider.searchCtx)
	require.Same(t, logger, gmw.GetLogger(provider.searchCtx))
}

func TestRunRequiresProvider(t *testing.T) {
	_, err := Run(context.Background(), nil, log.Logger.Named("test_diagnose"))
	require.Error(t, err)
}

type stubProvider struct {
	items       []search.SearchResultItem
	pages       []search.PageContent
	searchErr   error
	contentsErr error
	similarErr  error

	searchCtx context.Context
}

func (s *stubProvider) Search(ctx context.Context, _ search.Query) ([]search.SearchResultItem, error) {
	s.searchCtx = ctx
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.items, nil
}

func (s *stubProvider) Contents(context.Context, []string) ([]search.PageContent, error) {
	if s.contentsErr != nil {
		return nil, s.contentsErr
	}
	return s.pages, nil
}

func (s *stubProvider) FindSimilar(context.Context, string, int) ([]search.SearchResultItem, error) {
	if s.similarErr != nil {
		return nil, s.similarErr
	}
	return s.items, nil
}
