package util

import (
	"context"
	"maps"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vigil-mini/backend/pkg/common"
)

// EntitySearchFields are the upstream name filters a free-text entity search
// is fanned out across.
var EntitySearchFields = []string{"client_name", "registrant_name", "lobbyist_name"}

// FilingLister fetches one page of filings.
type FilingLister interface {
	ListFilings(ctx context.Context, pageSize int, params map[string]string) ([]common.Filing, error)
}

// PerFieldQuota is the page size used for each fanned-out query: limit split
// evenly across the search fields, rounded up, never below one.
func PerFieldQuota(limit int) int {
	n := len(EntitySearchFields)
	return max(1, (limit+n-1)/n)
}

// SearchEntityFilings runs one query per entity search field concurrently and
// merges the results with MergeFilings. The first failing query cancels the
// others and its error is returned.
func SearchEntityFilings(
	ctx context.Context,
	src FilingLister,
	q string,
	limit int,
	base map[string]string,
) ([]common.Filing, error) {
	per := PerFieldQuota(limit)
	results := make([][]common.Filing, len(EntitySearchFields))

	eg, gCtx := errgroup.WithContext(ctx)
	for i, field := range EntitySearchFields {
		params := maps.Clone(base)
		if params == nil {
			params = make(map[string]string, 1)
		}
		params[field] = q

		i := i
		eg.Go(func() error {
			filings, err := src.ListFilings(gCtx, per, params)
			if err != nil {
				return err
			}
			results[i] = filings
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return MergeFilings(limit, results...), nil
}

// MergeFilings concatenates lists, deduplicates by filing uuid and returns at
// most limit filings, newest posting date first.
//
// A filing keeps the position of the first occurrence of its uuid but the
// contents of the last one. Filings without a uuid are dropped. Ties on the
// posting date keep their merged order.
func MergeFilings(limit int, lists ...[]common.Filing) []common.Filing {
	index := make(map[string]int)
	merged := make([]common.Filing, 0)
	for _, list := range lists {
		for _, f := range list {
			uid := strings.TrimSpace(f.UUID)
			if uid == "" {
				continue
			}
			if i, ok := index[uid]; ok {
				merged[i] = f
				continue
			}
			index[uid] = len(merged)
			merged = append(merged, f)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PostedAt > merged[j].PostedAt
	})

	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
