package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/pkg/config"
	"resort-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

type priceResponse struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	ServiceType    string `json:"service_type"`
	UnitPricePaise int64  `json:"unit_price_paise"`
	Unit           string `json:"unit"`
	MaxQuantity    int    `json:"max_quantity"`
}

// HTTPResolver fetches price tuples from the catalog service and keeps
// a short-lived cache in redis so a burst of quotes for the same room
// does not hammer the upstream.
type HTTPResolver struct {
	baseURL  string
	client   *http.Client
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewHTTPResolver(cfg config.CatalogConfig, rdb *redis.Client) *HTTPResolver {
	return &HTTPResolver{
		baseURL:  cfg.BaseURL,
		client:   &http.Client{Timeout: cfg.Timeout},
		rdb:      rdb,
		cacheTTL: cfg.CacheTTL,
	}
}

var _ catalog.Resolver = (*HTTPResolver)(nil)

func (r *HTTPResolver) Resolve(ctx context.Context, kind catalog.ItemKind, id string) (catalog.Item, error) {
	cacheKey := fmt.Sprintf("catalog:price:%s:%s", kind, id)

	if cached, err := r.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var pr priceResponse
		if err := json.Unmarshal(cached, &pr); err == nil {
			return toItem(pr), nil
		}
	}

	body, err := r.fetch(ctx, kind, id)
	if err != nil {
		return catalog.Item{}, err
	}

	var pr priceResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return catalog.Item{}, errs.Wrap(err, "failed to decode catalog response")
	}

	// Cache failures are not worth failing a quote over.
	_ = r.rdb.Set(ctx, cacheKey, body, r.cacheTTL).Err()

	return toItem(pr), nil
}

func (r *HTTPResolver) fetch(ctx context.Context, kind catalog.ItemKind, id string) ([]byte, error) {
	url := fmt.Sprintf("%s/prices/%s/%s", r.baseURL, kind, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build catalog request")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "catalog request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, catalog.ErrItemNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, errs.New(fmt.Sprintf("catalog returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read catalog response")
	}
	return body, nil
}

func toItem(pr priceResponse) catalog.Item {
	return catalog.Item{
		ID:             pr.ID,
		Kind:           catalog.ItemKind(pr.Kind),
		ServiceType:    catalog.ServiceType(pr.ServiceType),
		UnitPricePaise: pr.UnitPricePaise,
		Unit:           catalog.PriceUnit(pr.Unit),
		MaxQuantity:    pr.MaxQuantity,
	}
}
