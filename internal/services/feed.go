package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

const (
	planPath         = "/jit/plan"
	maxFeedBodyBytes = 1 << 20
)

var (
	ErrUnexpectedPayload = errors.New("unexpected price feed structure")
	ErrFeedDisabled      = errors.New("live price feed disabled")
)

// FeedService fetches vendor totals and item counts from the supermarket
// price feed. It never returns an error to callers: any failure produces the
// synthetic fallback dataset tagged with mode "fallback".
type FeedService struct {
	baseURL    string
	live       bool
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewFeedService creates a new FeedService. ratePerMinute <= 0 disables
// throttling.
func NewFeedService(baseURL string, live bool, timeout time.Duration, ratePerMinute int) *FeedService {
	limit := rate.Inf
	burst := 1
	if ratePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(ratePerMinute))
		burst = ratePerMinute
	}

	return &FeedService{
		baseURL: strings.TrimRight(baseURL, "/"),
		live:    live,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// flexFloat accepts JSON numbers and numeric strings; anything else reads as 0
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			*f = flexFloat(parsed)
			return nil
		}
	}

	*f = 0
	return nil
}

// livePayload is the wire shape of the price feed response
type livePayload struct {
	MondayItems  map[string]flexFloat `json:"monday_items"`
	TuesdayItems map[string]flexFloat `json:"tuesday_items"`
	Totals       map[string]flexFloat `json:"totals"`
	Cheapest     json.RawMessage      `json:"cheapest"`
}

func toFloatMap(in map[string]flexFloat) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = float64(v)
	}
	return out
}

// FetchPlanInputs returns live data when the feed answers with the expected
// shape, otherwise the fallback dataset.
func (s *FeedService) FetchPlanInputs(ctx context.Context, att models.Attendance) models.SourceData {
	data, err := s.fetchLive(ctx, att)
	if err != nil {
		log.Printf("Using fallback price data: %v", err)
		return FallbackData(att)
	}

	log.Printf("Live price data loaded for %d children", att.TotalChildren())
	return *data
}

func (s *FeedService) fetchLive(ctx context.Context, att models.Attendance) (*models.SourceData, error) {
	if !s.live {
		return nil, ErrFeedDisabled
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("mon", strconv.Itoa(att.Monday))
	params.Set("tue", strconv.Itoa(att.Tuesday))
	params.Set("live", "true")

	reqURL := s.baseURL + planPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var payload livePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if payload.MondayItems == nil && payload.TuesdayItems == nil {
		return nil, ErrUnexpectedPayload
	}

	return &models.SourceData{
		Mode:         models.SourceModeLive,
		VendorTotals: toFloatMap(payload.Totals),
		Ingredients:  MergeDayItems(toFloatMap(payload.MondayItems), toFloatMap(payload.TuesdayItems)),
		Cheapest:     cheapestLabel(payload.Cheapest),
	}, nil
}

// cheapestLabel extracts the upstream pick, which is either a plain string
// or an object carrying a store name.
func cheapestLabel(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Store string `json:"store"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Store != "" {
			return obj.Store
		}
		return obj.Name
	}

	return ""
}
