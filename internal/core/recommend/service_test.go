package recommend

import (
	"context"
	"os"
	"testing"
	"time"

	"fridge-recommender/internal/core/catalog"
	"fridge-recommender/internal/core/engine"
	"fridge-recommender/internal/infrastructure/config"
	"fridge-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Recommend: config.RecommendConfig{
			Limit:                10,
			UrgencyThresholdDays: 3,
			UrgencyBoostWeight:   5,
		},
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         100,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

func testRecipes() []common.Recipe {
	return []common.Recipe{
		{
			ID: "r1", Name: "제육볶음", Category: "한식", Servings: 2,
			Ingredients: []common.RecipeIngredientRequirement{
				{IngredientName: "돼지고기", IsEssential: true},
				{IngredientName: "양파", IsEssential: true},
			},
		},
		{
			ID: "r2", Name: "감자조림", Category: "한식", Servings: 2,
			Ingredients: []common.RecipeIngredientRequirement{
				{IngredientName: "감자", IsEssential: true},
			},
		},
	}
}

func TestRecommendWithoutCatalogOrCache(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)

	inventory := []common.InventoryItem{
		{IngredientName: "돼지고기"},
		{IngredientName: "양파"},
	}

	results, err := svc.Recommend(context.Background(), testRecipes(), inventory, nil, svc.Options(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Recipe.ID != "r1" {
		t.Errorf("top result = %s, want r1", results[0].Recipe.ID)
	}
}

func TestRecommendUsesCatalogAlternatives(t *testing.T) {
	cat := catalog.New([]common.IngredientCatalogEntry{
		{Name: "양파", Alternatives: []string{"적양파"}},
	})
	svc := NewService(testConfig(), nil, cat)

	// 持有替代食材也要能滿足需求
	inventory := []common.InventoryItem{
		{IngredientName: "돼지고기"},
		{IngredientName: "적양파"},
	}

	results, err := svc.Recommend(context.Background(), testRecipes(), inventory, nil, svc.Options(0))
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Recipe.ID != "r1" {
		t.Errorf("top result = %s, want r1 (via catalog alternative)", results[0].Recipe.ID)
	}
	if len(results[0].MissingEssential) != 0 {
		t.Errorf("MissingEssential = %v, want empty", results[0].MissingEssential)
	}
}

func TestRecommendCacheRoundTrip(t *testing.T) {
	cache := NewCacheManager(testConfig())
	if cache == nil {
		t.Fatal("cache manager is nil with cache enabled")
	}
	defer cache.Close()

	svc := NewService(testConfig(), cache, nil)
	inventory := []common.InventoryItem{{IngredientName: "감자"}}

	first, err := svc.Recommend(context.Background(), testRecipes(), inventory, nil, svc.Options(0))
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Recommend(context.Background(), testRecipes(), inventory, nil, svc.Options(0))
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("cached result length %d != %d", len(second), len(first))
	}
	for i := range first {
		if first[i].Recipe.ID != second[i].Recipe.ID || first[i].FinalScore != second[i].FinalScore {
			t.Errorf("cached result differs at %d: %+v vs %+v", i, first[i], second[i])
		}
	}

	stats := cache.GetStats()
	if stats["hits"].(int64) < 1 {
		t.Errorf("expected at least one cache hit, stats %v", stats)
	}
}

func TestRecommendCacheDistinguishesRecipeContents(t *testing.T) {
	cache := NewCacheManager(testConfig())
	if cache == nil {
		t.Fatal("cache manager is nil with cache enabled")
	}
	defer cache.Close()

	svc := NewService(testConfig(), cache, nil)
	inventory := []common.InventoryItem{{IngredientName: "감자"}}

	if _, err := svc.Recommend(context.Background(), testRecipes(), inventory, nil, svc.Options(0)); err != nil {
		t.Fatal(err)
	}

	// r2 同一個 ID 但換了需求內容，必須重算而不是吃舊快取
	changed := testRecipes()
	changed[1].Ingredients = []common.RecipeIngredientRequirement{
		{IngredientName: "송로버섯", IsEssential: true},
	}
	results, err := svc.Recommend(context.Background(), changed, inventory, nil, svc.Options(0))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Recipe.ID == "r2" {
			if r.MatchScore != 0 {
				t.Errorf("r2 with changed ingredients scored %d, want 0", r.MatchScore)
			}
			if r.Executable {
				t.Error("r2 missing its new essential ingredient must not be executable")
			}
		}
	}
}

func TestRecommendLimitOverride(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)
	inventory := []common.InventoryItem{{IngredientName: "양파"}, {IngredientName: "감자"}}

	results, err := svc.Recommend(context.Background(), testRecipes(), inventory, nil, svc.Options(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want override limit 1", len(results))
	}
}

func TestRecommendInvalidOptions(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)
	opts := engine.Options{Limit: 0}

	if _, err := svc.Recommend(context.Background(), testRecipes(), nil, nil, opts); err == nil {
		t.Fatal("invalid options must be rejected before scoring")
	}
}

func TestMatchRecipe(t *testing.T) {
	svc := NewService(testConfig(), nil, nil)

	match := svc.MatchRecipe(context.Background(), testRecipes()[0], []common.InventoryItem{{IngredientName: "양파"}})
	if match.MatchedCount != 1 || match.TotalCount != 2 {
		t.Errorf("matched %d/%d, want 1/2", match.MatchedCount, match.TotalCount)
	}
	if match.Executable() {
		t.Error("missing essential must make recipe non-executable")
	}
}

func TestBuildRecommendKeyOrderIndependent(t *testing.T) {
	opts := engine.DefaultOptions()
	a := []common.InventoryItem{{IngredientName: "양파"}, {IngredientName: "감자"}}
	b := []common.InventoryItem{{IngredientName: "감자"}, {IngredientName: "양파"}}

	keyA := buildRecommendKey(testRecipes(), a, nil, nil, opts)
	keyB := buildRecommendKey(testRecipes(), b, nil, nil, opts)
	if keyA != keyB {
		t.Error("cache key must not depend on inventory order")
	}

	pref := &common.UserPreference{CookingSkillLevel: 2}
	keyC := buildRecommendKey(testRecipes(), a, pref, nil, opts)
	if keyA == keyC {
		t.Error("cache key must change with preference")
	}

	changed := testRecipes()
	changed[0].Ingredients = []common.RecipeIngredientRequirement{
		{IngredientName: "송로버섯", IsEssential: true},
	}
	keyD := buildRecommendKey(changed, a, nil, nil, opts)
	if keyA == keyD {
		t.Error("cache key must change with recipe ingredient contents")
	}
}
