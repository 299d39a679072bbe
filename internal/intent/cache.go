package intent

import (
	"sync"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/stringutil"
)

// Cache is the in-memory phrase cache. Entries never expire; phrases are
// short generic intents, not entity names, so catalog changes cannot
// invalidate them. Append-only under concurrent access.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Record
}

// NewCache creates a cache seeded with well-known phrases so the most
// common queries never touch the oracle.
func NewCache() *Cache {
	c := &Cache{entries: make(map[string]Record)}
	for phrase, rec := range seedEntries() {
		c.entries[stringutil.Normalize(phrase)] = rec
	}
	return c
}

// Get returns the cached record for a phrase, if any. The phrase is
// normalized before lookup.
func (c *Cache) Get(phrase string) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.entries[stringutil.Normalize(phrase)]
	return rec, ok
}

// Put stores a record under the normalized phrase. Last writer wins on
// identical keys, which is acceptable because concurrent extractions of
// the same phrase produce equivalent records.
func (c *Cache) Put(phrase string, rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[stringutil.Normalize(phrase)] = rec
}

// Len returns the number of cached phrases.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func seedEntries() map[string]Record {
	sports := Record{
		Intent:       "find_sports_facility",
		Keywords:     []string{"运动", "体育", "sports", "gym", "fitness", "游泳", "swimming", "羽毛球", "篮球", "健身房"},
		CategoryHint: catalog.CategoryFacility,
	}
	bank := Record{
		Intent:       "find_bank",
		Keywords:     []string{"bank", "银行", "banking", "atm"},
		CategoryHint: catalog.CategoryFacility,
	}
	return map[string]Record{
		"我想去运动": sports,
		"我想运动":  sports,
		"我想吃饭": {
			Intent:       "find_dining",
			Keywords:     []string{"餐厅", "食堂", "canteen", "restaurant", "dining", "cafe", "咖啡", "美食", "吃饭"},
			CategoryHint: catalog.CategoryFacility,
		},
		"我要学习": {
			Intent:       "find_study_space",
			Keywords:     []string{"图书馆", "library", "study", "自习室", "学习", "阅览室", "reading room"},
			CategoryHint: catalog.CategoryFacility,
		},
		"哪里可以停车": {
			Intent:       "find_parking",
			Keywords:     []string{"parking", "停车", "泊车", "car park"},
			CategoryHint: catalog.CategoryFacility,
		},
		"学校有银行吗":    bank,
		"学校里有什么bank": bank,
	}
}
