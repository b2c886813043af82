package util

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigil-mini/backend/pkg/common"
)

func posted(uuid, at, client string) common.Filing {
	return common.Filing{UUID: uuid, PostedAt: at, Client: &common.Party{Name: client}}
}

func uuids(filings []common.Filing) []string {
	out := make([]string, 0, len(filings))
	for _, f := range filings {
		out = append(out, f.UUID)
	}
	return out
}

func TestPerFieldQuota(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{50, 17},
		{100, 34},
		{0, 1},
	}

	for _, tc := range tests {
		if got := PerFieldQuota(tc.limit); got != tc.want {
			t.Fatalf("PerFieldQuota(%d) = %d, want %d", tc.limit, got, tc.want)
		}
	}
}

func TestMergeFilings_DedupeSortTruncate(t *testing.T) {
	clients := []common.Filing{
		posted("a", "2024-01-01", "first"),
		posted("b", "2024-03-01", "B"),
	}
	registrants := []common.Filing{
		posted("a", "2024-01-01", "second"),
		posted("", "2025-01-01", "no uuid"),
		posted("c", "2024-02-01", "C"),
	}
	lobbyists := []common.Filing{
		posted("  ", "2026-01-01", "blank uuid"),
		posted("d", "", "D"),
	}

	got := MergeFilings(10, clients, registrants, lobbyists)
	assert.Equal(t, []string{"b", "c", "a", "d"}, uuids(got))
	assert.Equal(t, "second", got[2].ClientName(), "later duplicate should replace contents")

	got = MergeFilings(2, clients, registrants, lobbyists)
	assert.Equal(t, []string{"b", "c"}, uuids(got))
}

func TestMergeFilings_StableOnEqualDates(t *testing.T) {
	got := MergeFilings(10,
		[]common.Filing{posted("x", "2024-01-01", ""), posted("y", "2024-01-01", "")},
		[]common.Filing{posted("z", "2024-01-01", "")},
	)
	assert.Equal(t, []string{"x", "y", "z"}, uuids(got))
}

func TestMergeFilings_Empty(t *testing.T) {
	got := MergeFilings(5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

type fakeLister struct {
	mu    sync.Mutex
	calls []map[string]string
	sizes []int
	pages map[string][]common.Filing
	fail  string
}

func (f *fakeLister) ListFilings(ctx context.Context, pageSize int, params map[string]string) ([]common.Filing, error) {
	f.mu.Lock()
	f.calls = append(f.calls, params)
	f.sizes = append(f.sizes, pageSize)
	f.mu.Unlock()

	for field, page := range f.pages {
		if _, ok := params[field]; ok {
			if field == f.fail {
				return nil, errors.New("upstream down")
			}
			return page, nil
		}
	}
	return nil, nil
}

func TestSearchEntityFilings(t *testing.T) {
	src := &fakeLister{pages: map[string][]common.Filing{
		"client_name":     {posted("1", "2024-01-01", "Acme")},
		"registrant_name": {posted("2", "2024-05-01", "Acme"), posted("1", "2024-01-01", "Acme")},
		"lobbyist_name":   {posted("3", "2024-03-01", "Acme")},
	}}
	base := map[string]string{"ordering": "-filing_dt_posted", "filing_year": "2024"}

	got, err := SearchEntityFilings(context.Background(), src, "Acme", 10, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1"}, uuids(got))

	require.Len(t, src.calls, 3)
	seen := map[string]bool{}
	for i, params := range src.calls {
		assert.Equal(t, 4, src.sizes[i])
		assert.Equal(t, "2024", params["filing_year"])
		assert.Equal(t, "-filing_dt_posted", params["ordering"])
		for _, field := range EntitySearchFields {
			if params[field] == "Acme" {
				seen[field] = true
			}
		}
		assert.Len(t, params, 3, "each query carries exactly one search field")
	}
	assert.Len(t, seen, 3)
	assert.Len(t, base, 2, "base params must not be mutated")
}

func TestSearchEntityFilings_Error(t *testing.T) {
	src := &fakeLister{
		pages: map[string][]common.Filing{"registrant_name": nil},
		fail:  "registrant_name",
	}

	_, err := SearchEntityFilings(context.Background(), src, "Acme", 10, nil)
	require.Error(t, err)
	assert.Equal(t, "upstream down", err.Error())
}

func TestFilingFilters_ToQueryParams(t *testing.T) {
	f := FilingFilters{
		ClientName:   "  Acme  ",
		FilingYear:   "2024",
		LobbyistName: "   ",
	}

	params, err := f.ToQueryParams()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"client_name": "Acme",
		"filing_year": "2024",
		"ordering":    DefaultOrdering,
	}, params)
}

func TestFilingFilters_ExplicitOrdering(t *testing.T) {
	params, err := FilingFilters{Ordering: "filing_dt_posted"}.ToQueryParams()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ordering": "filing_dt_posted"}, params)
}
