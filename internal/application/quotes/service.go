package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"resty.dev/v3"
)

// Service proxies quote lookups to the upstream finance API. Quotes are
// cached per symbol in Redis so a page of repeat symbols does not hammer the
// upstream; the cache is optional and a nil client disables it.
type Service struct {
	Client *resty.Client
	Rdb    *redis.Client
	TTL    time.Duration
}

const cachePrefix = "quote:"

// NewService builds a quote proxy against the given upstream base URL.
func NewService(baseURL string, rdb *redis.Client, ttl time.Duration) *Service {
	return &Service{
		Client: resty.New().SetBaseURL(baseURL),
		Rdb:    rdb,
		TTL:    ttl,
	}
}

type quoteEnvelope struct {
	QuoteResponse struct {
		Result []map[string]interface{} `json:"result"`
	} `json:"quoteResponse"`
}

// Quote returns one quote object per requested symbol, serving cached entries
// where fresh and fetching the rest in a single upstream call.
func (s *Service) Quote(ctx context.Context, symbols []string) ([]map[string]interface{}, error) {
	bySymbol := make(map[string]map[string]interface{}, len(symbols))
	missing := make([]string, 0, len(symbols))

	for _, sym := range symbols {
		if q := s.cached(ctx, sym); q != nil {
			bySymbol[sym] = q
		} else {
			missing = append(missing, sym)
		}
	}

	if len(missing) > 0 {
		resp, err := s.Client.R().
			SetContext(ctx).
			SetQueryParam("symbols", strings.Join(missing, ",")).
			SetResult(&quoteEnvelope{}).
			Get("/v7/finance/quote")
		if err != nil {
			return nil, fmt.Errorf("%w: quote request failed", err)
		}
		defer resp.Body.Close()
		if resp.IsError() {
			return nil, fmt.Errorf("quote upstream error: %s", resp.Status())
		}

		env := resp.Result().(*quoteEnvelope)
		for _, q := range env.QuoteResponse.Result {
			sym, _ := q["symbol"].(string)
			if sym == "" {
				continue
			}
			bySymbol[sym] = q
			s.cache(ctx, sym, q)
		}
	}

	quotes := make([]map[string]interface{}, 0, len(symbols))
	for _, sym := range symbols {
		if q, ok := bySymbol[sym]; ok {
			quotes = append(quotes, q)
		}
	}
	return quotes, nil
}

// Search proxies a free-text symbol search. Results are not cached; search
// terms rarely repeat.
func (s *Service) Search(ctx context.Context, term string) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	resp, err := s.Client.R().
		SetContext(ctx).
		SetQueryParam("q", term).
		SetResult(&out).
		Get("/v1/finance/search")
	if err != nil {
		return nil, fmt.Errorf("%w: search request failed", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("search upstream error: %s", resp.Status())
	}
	return out, nil
}

func (s *Service) cached(ctx context.Context, symbol string) map[string]interface{} {
	if s.Rdb == nil {
		return nil
	}
	raw, err := s.Rdb.Get(ctx, cachePrefix+symbol).Bytes()
	if err != nil {
		return nil
	}
	var q map[string]interface{}
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil
	}
	return q
}

func (s *Service) cache(ctx context.Context, symbol string, q map[string]interface{}) {
	if s.Rdb == nil {
		return
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	_ = s.Rdb.Set(ctx, cachePrefix+symbol, raw, s.TTL).Err()
}
