package auth

import (
	"time"

	"github.com/patrickmn/go-cache"

	"eventstaff_backend/internal/models"
)

// ProfileCache memoises profile lookups for authenticated requests.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache(ttl time.Duration) *ProfileCache {
	return &ProfileCache{cache: cache.New(ttl, 2*ttl)}
}

// Get returns a copy of the cached profile, calling load on a miss.
func (c *ProfileCache) Get(id string, load func() (*models.Profile, error)) (*models.Profile, error) {
	if v, ok := c.cache.Get(id); ok {
		cp := *v.(*models.Profile)
		return &cp, nil
	}

	p, err := load()
	if err != nil {
		return nil, err
	}
	stored := *p
	c.cache.SetDefault(id, &stored)
	return p, nil
}

func (c *ProfileCache) Invalidate(id string) {
	c.cache.Delete(id)
}
