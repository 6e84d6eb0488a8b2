// Package dhlottery fetches official 6/45 draw results.
package dhlottery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/history"
)

// The endpoint rejects requests without a browser User-Agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client is a bounded-timeout client for the draw-number endpoint.
type Client struct {
	http    *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewClient creates a new draw source client. The timeout bounds the
// whole request; a slow upstream degrades to "round absent".
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		log:     log.With().Str("client", "dhlottery").Logger(),
	}
}

// roundResponse mirrors the upstream payload. The six drawn numbers
// arrive as positional fields.
type roundResponse struct {
	ReturnValue string `json:"returnValue"`
	Round       int    `json:"drwNo"`
	No1         int    `json:"drwtNo1"`
	No2         int    `json:"drwtNo2"`
	No3         int    `json:"drwtNo3"`
	No4         int    `json:"drwtNo4"`
	No5         int    `json:"drwtNo5"`
	No6         int    `json:"drwtNo6"`
}

// FetchRound requests one round. Any transport error, non-200 status,
// or unsuccessful payload yields (zero, false) - the fetch is an
// optional enrichment, never a hard dependency.
func (c *Client) FetchRound(ctx context.Context, round int) (history.DrawRecord, bool) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		c.log.Error().Err(err).Msg("Invalid upstream URL")
		return history.DrawRecord{}, false
	}
	q := u.Query()
	q.Set("method", "getLottoNumber")
	q.Set("drwNo", strconv.Itoa(round))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return history.DrawRecord{}, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Int("round", round).Msg("Round fetch failed")
		return history.DrawRecord{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug().Int("status", resp.StatusCode).Int("round", round).Msg("Round fetch rejected")
		return history.DrawRecord{}, false
	}

	var payload roundResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Debug().Err(err).Int("round", round).Msg("Round payload unreadable")
		return history.DrawRecord{}, false
	}
	if payload.ReturnValue != "success" {
		// Round not drawn yet.
		return history.DrawRecord{}, false
	}

	rec := history.DrawRecord{
		Round:   payload.Round,
		Numbers: []int{payload.No1, payload.No2, payload.No3, payload.No4, payload.No5, payload.No6},
	}
	sort.Ints(rec.Numbers)
	if !rec.Valid() {
		c.log.Warn().Int("round", round).Msg("Round payload malformed")
		return history.DrawRecord{}, false
	}
	return rec, true
}
