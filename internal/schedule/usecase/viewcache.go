package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"appointment-calendar/pkg/daterange"
)

const lastViewCacheSize = 1024

// lastViewCache remembers the last selected view per widget id so a returning
// widget reopens where it left off.
type lastViewCache struct {
	lru *expirable.LRU[string, daterange.View]
}

func newLastViewCache(ttl time.Duration) *lastViewCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &lastViewCache{
		lru: expirable.NewLRU[string, daterange.View](lastViewCacheSize, nil, ttl),
	}
}

func (c *lastViewCache) Get(widgetID string) (daterange.View, bool) {
	return c.lru.Get(widgetID)
}

func (c *lastViewCache) Set(widgetID string, view daterange.View) {
	c.lru.Add(widgetID, view)
}
