package lda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/vigil-mini/backend/pkg/common"
	"github.com/vigil-mini/backend/pkg/logger"
)

type filingsPage struct {
	Results []common.Filing `json:"results"`
}

// ListFilings fetches a single page of up to pageSize filings. params are
// forwarded verbatim as upstream query parameters.
func (c *Client) ListFilings(ctx context.Context, pageSize int, params map[string]string) ([]common.Filing, error) {
	query := pageQuery(pageSize, params)

	body, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	var page filingsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode filings page: %w", err)
	}
	if page.Results == nil {
		page.Results = []common.Filing{}
	}

	logger.Debug("[LDA] Filings fetched", "page_size", pageSize, "results", len(page.Results))
	return page.Results, nil
}

// PingResult summarizes a single-row upstream request.
type PingResult struct {
	Status     string   `json:"status"`
	Count      *int64   `json:"count"`
	Next       *string  `json:"next"`
	SampleKeys []string `json:"sample_keys"`
}

// Ping requests one filing to verify connectivity and credentials. SampleKeys
// lists the fields of the returned filing in document order.
func (c *Client) Ping(ctx context.Context) (*PingResult, error) {
	body, err := c.fetch(ctx, pageQuery(1, nil))
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("failed to decode ping response: invalid json")
	}

	res := &PingResult{
		Status:     "ok",
		SampleKeys: []string{},
	}

	count := gjson.GetBytes(body, "count")
	if count.Type == gjson.Number {
		n := count.Int()
		res.Count = &n
	}
	next := gjson.GetBytes(body, "next")
	if next.Type == gjson.String {
		s := next.String()
		res.Next = &s
	}

	if first := gjson.GetBytes(body, "results.0"); first.IsObject() {
		first.ForEach(func(key, _ gjson.Result) bool {
			res.SampleKeys = append(res.SampleKeys, key.String())
			return true
		})
	}

	return res, nil
}
