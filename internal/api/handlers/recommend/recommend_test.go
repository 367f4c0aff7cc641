package recommend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	recommendService "fridge-recommender/internal/core/recommend"
	"fridge-recommender/internal/infrastructure/config"
	"fridge-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Recommend: config.RecommendConfig{
			Limit:                10,
			UrgencyThresholdDays: 3,
			UrgencyBoostWeight:   5,
		},
	}
}

func setupTestRouter() *gin.Engine {
	svc := recommendService.NewService(testConfig(), nil, nil)
	handler := NewHandler(svc)

	r := gin.New()
	r.POST("/api/v1/recommend", handler.HandleRecommend)
	r.POST("/api/v1/recipe/match", handler.HandleRecipeMatch)
	return r
}

func TestHandleRecommend(t *testing.T) {
	r := setupTestRouter()

	body := RecommendRequest{
		Inventory: []common.InventoryItem{
			{IngredientName: "돼지고기", Amount: "300", Unit: "g", ExpiryDate: time.Now().AddDate(0, 0, 1)},
			{IngredientName: "양파", Amount: "2", Unit: "개"},
		},
		Recipes: []common.Recipe{
			{
				ID: "r1", Name: "제육볶음", Category: "한식", Servings: 2,
				Ingredients: []common.RecipeIngredientRequirement{
					{IngredientName: "돼지고기", IsEssential: true},
					{IngredientName: "양파", IsEssential: true},
				},
			},
		},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp RecommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if !resp.Results[0].Executable {
		t.Error("fully stocked recipe must be executable")
	}
	// 即期的돼지고기命中 → 有加成
	if resp.Results[0].UrgencyBoost <= 0 {
		t.Error("soon-expiring matched ingredient must add urgency boost")
	}
}

func TestHandleRecommendInvalidBody(t *testing.T) {
	r := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader([]byte(`{"inventory":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRecommendNegativeLimit(t *testing.T) {
	r := setupTestRouter()

	payload := []byte(`{"inventory":[],"recipes":[],"limit":-1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRecipeMatch(t *testing.T) {
	r := setupTestRouter()

	body := MatchRequest{
		Recipe: common.Recipe{
			ID: "r1", Name: "제육볶음", Servings: 2,
			Ingredients: []common.RecipeIngredientRequirement{
				{IngredientName: "돼지고기", IsEssential: true},
				{IngredientName: "양파", IsEssential: true},
				{IngredientName: "마늘", IsEssential: false},
			},
		},
		Inventory: []common.InventoryItem{
			{IngredientName: "돼지고기"},
			{IngredientName: "양파"},
		},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipe/match", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp MatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.MatchedCount != 2 || resp.TotalCount != 3 {
		t.Errorf("matched %d/%d, want 2/3", resp.MatchedCount, resp.TotalCount)
	}
	if resp.Score != 60 {
		t.Errorf("score = %d, want 60", resp.Score)
	}
	if !resp.Executable {
		t.Error("executable = false, want true")
	}
}
