// Package rates looks up the display-currency conversion rate. Purely
// cosmetic for buyers; a failure degrades the UI, never a purchase.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	redisrepo "github.com/ticketblock/ticketblock/internal/repository/redis"
)

type Config struct {
	BaseURL  string
	Asset    string
	Currency string
	CacheTTL time.Duration
	Timeout  time.Duration
}

type Service struct {
	cfg   Config
	cache *redisrepo.Cache
	http  *http.Client
}

func New(cfg Config, cache *redisrepo.Cache) *Service {
	if cfg.Asset == "" {
		cfg.Asset = "ethereum"
	}
	if cfg.Currency == "" {
		cfg.Currency = "mxn"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &Service{
		cfg:   cfg,
		cache: cache,
		http:  &http.Client{Timeout: cfg.Timeout},
	}
}

type Rate struct {
	Asset    string  `json:"asset"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

// Current returns the cached rate, fetching from the upstream simple-price
// API on a cache miss.
func (s *Service) Current(ctx context.Context) (Rate, error) {
	const op = "rates.Current"

	key := redisrepo.KeyDisplayRate(s.cfg.Currency)

	rate, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.CacheTTL,
		func(ctx context.Context) (Rate, error) {
			return s.fetch(ctx)
		},
	)
	if err != nil {
		return Rate{}, fmt.Errorf("%s: %w", op, err)
	}

	return rate, nil
}

func (s *Service) fetch(ctx context.Context) (Rate, error) {
	u := fmt.Sprintf(
		"%s/api/v3/simple/price?ids=%s&vs_currencies=%s",
		s.cfg.BaseURL,
		url.QueryEscape(s.cfg.Asset),
		url.QueryEscape(s.cfg.Currency),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Rate{}, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return Rate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Rate{}, fmt.Errorf("rate upstream returned %d", resp.StatusCode)
	}

	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Rate{}, err
	}

	price, ok := body[s.cfg.Asset][s.cfg.Currency]
	if !ok {
		return Rate{}, fmt.Errorf("rate for %s/%s missing from response", s.cfg.Asset, s.cfg.Currency)
	}

	return Rate{Asset: s.cfg.Asset, Currency: s.cfg.Currency, Price: price}, nil
}
