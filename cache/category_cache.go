package category_cache

import (
	"sync"
	"time"

	"github.com/itsAdil45/HajveryStoreBackend/models"
)

const TTL = 5 * time.Minute

// ── Category list cache ──────────────────────────────────────────────────────
// The category list is read-only for the storefront and changes rarely, so a
// short in-process TTL keeps it off the hot path. Pricing, stock, and deal
// validity are never cached anywhere.

type listEntry struct {
	categories    []models.Category
	productCounts map[string]int
	fetchedAt     time.Time
}

var (
	listMu    sync.RWMutex
	listCache *listEntry
)

func GetList() (categories []models.Category, productCounts map[string]int, ok bool) {
	listMu.RLock()
	defer listMu.RUnlock()
	if listCache != nil && time.Since(listCache.fetchedAt) < TTL {
		return listCache.categories, listCache.productCounts, true
	}
	return nil, nil, false
}

func SetList(categories []models.Category, productCounts map[string]int) {
	listMu.Lock()
	defer listMu.Unlock()
	listCache = &listEntry{
		categories:    categories,
		productCounts: productCounts,
		fetchedAt:     time.Now(),
	}
}

// Invalidate drops the cached list. Called after admin catalog writes.
func Invalidate() {
	listMu.Lock()
	defer listMu.Unlock()
	listCache = nil
}
