// Package sheets reads product catalogs from the Google Sheets values API.
//
// Each worksheet is one logical catalog source: the header row names the
// attributes, every following row becomes one record. The transport is a
// plain REST call with an API key; the service-account flow is not needed
// for read-only public sheets.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Client fetches worksheet rows and maps them to catalog records.
type Client struct {
	http          *http.Client
	baseURL       string
	spreadsheetID string
	apiKey        string
}

func NewClient(spreadsheetID, apiKey string) *Client {
	return &Client{
		http:          &http.Client{Timeout: 15 * time.Second},
		baseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
		apiKey:        apiKey,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Fetch loads every row of the named worksheet. Row order is preserved as
// returned by the API. Blank cells produce absent keys, so records carry
// only the attributes they actually have. A reachable but empty worksheet
// returns an empty slice and no error; any transport or decoding failure
// wraps catalog.ErrSourceUnavailable.
func (c *Client) Fetch(ctx context.Context, worksheet string) ([]catalog.Record, error) {
	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("valueRenderOption", "FORMATTED_VALUE")

	endpoint := fmt.Sprintf("%s/%s/values/%s?%s",
		c.baseURL, c.spreadsheetID, url.PathEscape(worksheet), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrSourceUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: sheets API returned %s for worksheet %q",
			catalog.ErrSourceUnavailable, resp.Status, worksheet)
	}

	var result struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", catalog.ErrSourceUnavailable, err)
	}

	return rowsToRecords(result.Values), nil
}

// rowsToRecords turns a header row plus data rows into records. Rows
// shorter than the header are fine: missing trailing cells are treated the
// same as blank ones.
func rowsToRecords(rows [][]string) []catalog.Record {
	if len(rows) < 2 {
		return []catalog.Record{}
	}

	header := rows[0]
	records := make([]catalog.Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		rec := catalog.Record{}
		for i, name := range header {
			if name == "" || i >= len(row) || row[i] == "" {
				continue
			}
			rec[name] = row[i]
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records
}
