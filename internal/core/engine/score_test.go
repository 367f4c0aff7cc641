package engine

import (
	"math"
	"testing"

	"fridge-recommender/internal/pkg/common"
)

func inventoryOf(names ...string) []common.InventoryItem {
	items := make([]common.InventoryItem, 0, len(names))
	for _, name := range names {
		items = append(items, common.InventoryItem{IngredientName: name})
	}
	return items
}

func TestScoreMatchExample(t *testing.T) {
	// 3 樣食材持有 2 樣：必備兩樣各 15+10，覆蓋率 66.7% 加 10
	recipe := common.Recipe{
		Name: "제육볶음",
		Ingredients: []common.RecipeIngredientRequirement{
			{IngredientName: "돼지고기", IsEssential: true},
			{IngredientName: "양파", IsEssential: true},
			{IngredientName: "마늘", IsEssential: false},
		},
	}
	inventory := inventoryOf("돼지고기", "양파")

	got := ScoreMatch(recipe, inventory)

	if got.Score != 60 {
		t.Errorf("Score = %d, want 60", got.Score)
	}
	if math.Abs(got.Percentage-200.0/3.0) > 0.01 {
		t.Errorf("Percentage = %v, want 66.67", got.Percentage)
	}
	if got.MatchedCount != 2 || got.TotalCount != 3 {
		t.Errorf("Matched %d/%d, want 2/3", got.MatchedCount, got.TotalCount)
	}
	if len(got.MissingEssential) != 0 {
		t.Errorf("MissingEssential = %v, want empty", got.MissingEssential)
	}
	if len(got.MissingOptional) != 1 || got.MissingOptional[0].IngredientName != "마늘" {
		t.Errorf("MissingOptional = %v, want [마늘]", got.MissingOptional)
	}
	if !got.Executable() {
		t.Error("Executable() = false, want true")
	}
}

func TestScoreMatchEmptyRecipe(t *testing.T) {
	got := ScoreMatch(common.Recipe{Name: "빈 식단"}, inventoryOf("양파"))
	if got.Score != 0 || got.Percentage != 0 {
		t.Errorf("empty recipe: score=%d percentage=%v, want both 0", got.Score, got.Percentage)
	}
}

func TestScoreMatchMaximum(t *testing.T) {
	// 全必備、全命中、覆蓋率 100%，累加後收斂到理論上限 105
	recipe := common.Recipe{
		Name: "된장찌개",
		Ingredients: []common.RecipeIngredientRequirement{
			{IngredientName: "된장", IsEssential: true},
			{IngredientName: "두부", IsEssential: true},
			{IngredientName: "애호박", IsEssential: true},
			{IngredientName: "감자", IsEssential: true},
		},
	}
	got := ScoreMatch(recipe, inventoryOf("된장", "두부", "애호박", "감자"))
	if got.Score != 105 {
		t.Errorf("Score = %d, want 105", got.Score)
	}

	// 三樣全中還不到上限：25×3 + 15 = 90
	smaller := common.Recipe{
		Name:        "된장찌개",
		Ingredients: recipe.Ingredients[:3],
	}
	if got := ScoreMatch(smaller, inventoryOf("된장", "두부", "애호박")); got.Score != 90 {
		t.Errorf("Score = %d, want 90", got.Score)
	}
}

func TestScoreMatchBounds(t *testing.T) {
	recipes := []common.Recipe{
		{Name: "a"},
		{Name: "b", Ingredients: []common.RecipeIngredientRequirement{{IngredientName: "양파", IsEssential: true}}},
		{Name: "c", Ingredients: []common.RecipeIngredientRequirement{
			{IngredientName: "양파"}, {IngredientName: "마늘"}, {IngredientName: "대파", IsEssential: true},
			{IngredientName: "간장"}, {IngredientName: "설탕", IsEssential: true},
		}},
	}
	inventories := [][]common.InventoryItem{
		nil,
		inventoryOf("양파"),
		inventoryOf("양파", "마늘", "대파", "간장", "설탕"),
	}
	for _, recipe := range recipes {
		for _, inventory := range inventories {
			got := ScoreMatch(recipe, inventory)
			if got.Score < 0 || got.Score > MaxMatchScore {
				t.Errorf("recipe %q: score %d out of [0,%d]", recipe.Name, got.Score, MaxMatchScore)
			}
		}
	}
}

func TestScoreMatchCaseInsensitive(t *testing.T) {
	recipe := common.Recipe{
		Name: "tomato soup",
		Ingredients: []common.RecipeIngredientRequirement{
			{IngredientName: "Tomato", IsEssential: true},
			{IngredientName: "양파", IsEssential: true},
		},
	}
	upper := ScoreMatch(recipe, inventoryOf("TOMATO", "양파"))
	lower := ScoreMatch(recipe, inventoryOf("tomato", " 양파 "))
	if upper.Score != lower.Score || upper.MatchedCount != lower.MatchedCount {
		t.Errorf("case/whitespace variants differ: %+v vs %+v", upper, lower)
	}
	// 兩樣全中：25×2 + 15 = 65
	if upper.Score != 65 {
		t.Errorf("Score = %d, want 65", upper.Score)
	}
}

func TestCoverageBonusTiers(t *testing.T) {
	tests := []struct {
		percentage float64
		want       int
	}{
		{100, 15},
		{80, 15},
		{79.9, 10},
		{60, 10},
		{59.9, 5},
		{40, 5},
		{39.9, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := coverageBonus(tt.percentage); got != tt.want {
			t.Errorf("coverageBonus(%v) = %d, want %d", tt.percentage, got, tt.want)
		}
	}
}

func TestIsExecutable(t *testing.T) {
	recipe := common.Recipe{
		Name: "계란찜",
		Ingredients: []common.RecipeIngredientRequirement{
			{IngredientName: "계란", IsEssential: true},
			{IngredientName: "쪽파", IsEssential: false},
		},
	}
	if !IsExecutable(recipe, inventoryOf("계란")) {
		t.Error("optional gap should not block executability")
	}
	if IsExecutable(recipe, inventoryOf("쪽파")) {
		t.Error("missing essential should block executability")
	}

	// executable ⇔ 無缺必備食材
	inventories := [][]common.InventoryItem{nil, inventoryOf("계란"), inventoryOf("쪽파"), inventoryOf("계란", "쪽파")}
	for _, inventory := range inventories {
		result := ScoreMatch(recipe, inventory)
		if IsExecutable(recipe, inventory) != (len(result.MissingEssential) == 0) {
			t.Errorf("IsExecutable disagrees with MissingEssential for %v", inventory)
		}
	}
}
