package datasource

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/kalshi-scout/internal/models"
)

// CachedMarketProvider wraps a MarketProvider with a short-lived
// in-memory cache. Contract listings change slowly relative to prices,
// so repeated scans within the TTL reuse the previous listing.
type CachedMarketProvider struct {
	provider MarketProvider
	cache    *gocache.Cache
	logger   *logrus.Logger
}

// NewCachedMarketProvider wraps a market provider with a TTL cache
func NewCachedMarketProvider(provider MarketProvider, ttl time.Duration, logger *logrus.Logger) *CachedMarketProvider {
	if logger == nil {
		logger = logrus.New()
	}
	return &CachedMarketProvider{
		provider: provider,
		cache:    gocache.New(ttl, 2*ttl),
		logger:   logger,
	}
}

// FetchContracts returns cached contracts when fresh, otherwise fetches
// from the underlying provider
func (c *CachedMarketProvider) FetchContracts(ctx context.Context, sport string) ([]models.MarketContract, error) {
	if cached, found := c.cache.Get(sport); found {
		contracts := cached.([]models.MarketContract)
		c.logger.WithFields(logrus.Fields{
			"sport":     sport,
			"contracts": len(contracts),
		}).Debug("Serving contracts from cache")
		return contracts, nil
	}

	contracts, err := c.provider.FetchContracts(ctx, sport)
	if err != nil {
		return nil, err
	}

	c.cache.Set(sport, contracts, gocache.DefaultExpiration)
	return contracts, nil
}

// Invalidate drops the cached listing for a sport
func (c *CachedMarketProvider) Invalidate(sport string) {
	c.cache.Delete(sport)
}

// Name returns the underlying data source name
func (c *CachedMarketProvider) Name() string {
	return c.provider.Name()
}
