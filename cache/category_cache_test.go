package category_cache

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/itsAdil45/HajveryStoreBackend/models"
)

func TestListCacheRoundTrip(t *testing.T) {
	Invalidate()

	if _, _, ok := GetList(); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	categories := []models.Category{{ID: uuid.Must(uuid.NewV7()), Name: "Dairy"}}
	counts := map[string]int{categories[0].ID.String(): 3}
	SetList(categories, counts)

	gotCategories, gotCounts, ok := GetList()
	if !ok {
		t.Fatal("expected a hit after SetList")
	}
	if len(gotCategories) != 1 || gotCategories[0].Name != "Dairy" {
		t.Fatalf("categories = %+v", gotCategories)
	}
	if gotCounts[categories[0].ID.String()] != 3 {
		t.Fatalf("counts = %+v", gotCounts)
	}

	Invalidate()
	if _, _, ok := GetList(); ok {
		t.Fatal("expected a miss after Invalidate")
	}
}

func TestListCacheExpires(t *testing.T) {
	SetList([]models.Category{{ID: uuid.Must(uuid.NewV7()), Name: "Snacks"}}, nil)

	listMu.Lock()
	listCache.fetchedAt = time.Now().Add(-TTL - time.Second)
	listMu.Unlock()

	if _, _, ok := GetList(); ok {
		t.Fatal("expected a miss after the TTL elapsed")
	}
}
