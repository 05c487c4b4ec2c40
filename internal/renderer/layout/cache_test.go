package layout

import "testing"

func TestNewResultCache(t *testing.T) {
	cache := NewResultCache(100)

	if cache.Size() != 0 {
		t.Errorf("new cache should be empty, got size %d", cache.Size())
	}
	if stats := cache.Stats(); stats.MaxSize != 100 {
		t.Errorf("expected max size 100, got %d", stats.MaxSize)
	}
	if NewResultCache(-1).Stats().MaxSize != 0 {
		t.Error("negative size should mean unlimited")
	}
}

func TestResultCacheHit(t *testing.T) {
	cache := NewResultCache(100)
	p := basicParams(0)

	r1 := cache.Shape("Hello", p)
	r2 := cache.Shape("Hello", p)

	if r1.Blob != r2.Blob {
		t.Error("second Shape should return the cached result")
	}
	stats := cache.Stats()
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("expected hit rate 0.5, got %v", stats.HitRate)
	}
}

func TestResultCacheParamsChange(t *testing.T) {
	cache := NewResultCache(100)
	p := basicParams(0)

	cache.Shape("Hello", p)
	cache.Shape("World", p)
	if cache.Size() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Size())
	}

	p.Width = 20
	res := cache.Shape("Hello", p)
	if cache.Size() != 1 {
		t.Errorf("params change should clear the cache, got size %d", cache.Size())
	}
	if len(res.LineBreakOffsets) == 0 {
		t.Error("expected the new width to apply")
	}
}

func TestResultCacheEviction(t *testing.T) {
	cache := NewResultCache(2)
	p := basicParams(0)

	cache.Shape("a", p)
	cache.Shape("b", p)
	cache.Shape("a", p) // refresh a
	cache.Shape("c", p) // evicts b

	if cache.Size() != 2 {
		t.Errorf("expected 2 entries, got %d", cache.Size())
	}
	if cache.Stats().Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", cache.Stats().Evictions)
	}

	cache.ResetStats()
	cache.Shape("a", p)
	if cache.Stats().Hits != 1 {
		t.Error("expected a to survive eviction")
	}
}

func TestResultCacheInvalidateAll(t *testing.T) {
	cache := NewResultCache(10)
	p := basicParams(0)
	cache.Shape("x", p)
	cache.InvalidateAll()

	if cache.Size() != 0 {
		t.Errorf("expected empty cache, got %d", cache.Size())
	}
}

func TestLineReshapeThroughCache(t *testing.T) {
	cache := NewResultCache(10)
	p := basicParams(0)

	a := NewLine("same")
	b := NewLine("same")
	a.Reshape(cache, p)
	b.Reshape(cache, p)

	if cache.Stats().Hits != 1 {
		t.Errorf("expected equal paragraphs to share a result, got %d hits", cache.Stats().Hits)
	}
	if len(b.CursorPos) != 5 {
		t.Errorf("expected 5 cursor rects, got %d", len(b.CursorPos))
	}
}
