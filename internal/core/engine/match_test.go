package engine

import (
	"math"
	"testing"

	"fridge-recommender/internal/pkg/common"
)

func TestMatchIngredient(t *testing.T) {
	tests := []struct {
		name string
		item common.InventoryItem
		req  common.RecipeIngredientRequirement
		want common.IngredientMatch
	}{
		{
			name: "name mismatch",
			item: common.InventoryItem{IngredientName: "양파", Amount: "2", Unit: "개"},
			req:  common.RecipeIngredientRequirement{IngredientName: "마늘", Amount: "1", Unit: "쪽"},
			want: common.IngredientMatch{},
		},
		{
			name: "name match case and whitespace insensitive",
			item: common.InventoryItem{IngredientName: " Tomato ", Amount: "3", Unit: "개"},
			req:  common.RecipeIngredientRequirement{IngredientName: "tomato", Amount: "2", Unit: "개"},
			want: common.IngredientMatch{Available: true, SufficientQuantity: true},
		},
		{
			name: "sufficient quantity",
			item: common.InventoryItem{IngredientName: "양파", Amount: "3", Unit: "개"},
			req:  common.RecipeIngredientRequirement{IngredientName: "양파", Amount: "2", Unit: "개"},
			want: common.IngredientMatch{Available: true, SufficientQuantity: true},
		},
		{
			name: "shortfall",
			item: common.InventoryItem{IngredientName: "양파", Amount: "1", Unit: "개"},
			req:  common.RecipeIngredientRequirement{IngredientName: "양파", Amount: "3", Unit: "개"},
			want: common.IngredientMatch{Available: true, SufficientQuantity: false, Shortfall: 2},
		},
		{
			name: "unit conversion kg to g",
			item: common.InventoryItem{IngredientName: "돼지고기", Amount: "1", Unit: "kg"},
			req:  common.RecipeIngredientRequirement{IngredientName: "돼지고기", Amount: "600", Unit: "g"},
			want: common.IngredientMatch{Available: true, SufficientQuantity: true},
		},
		{
			name: "unit conversion shortfall",
			item: common.InventoryItem{IngredientName: "우유", Amount: "200", Unit: "ml"},
			req:  common.RecipeIngredientRequirement{IngredientName: "우유", Amount: "1", Unit: "l"},
			want: common.IngredientMatch{Available: true, SufficientQuantity: false, Shortfall: 0.8},
		},
		{
			name: "requirement without amount satisfied by presence",
			item: common.InventoryItem{IngredientName: "소금", Amount: "", Unit: ""},
			req:  common.RecipeIngredientRequirement{IngredientName: "소금"},
			want: common.IngredientMatch{Available: true, SufficientQuantity: true},
		},
		{
			name: "requirement amount to taste treated as zero",
			item: common.InventoryItem{IngredientName: "후추", Amount: "1", Unit: "통"},
			req:  common.RecipeIngredientRequirement{IngredientName: "후추", Amount: "적당량"},
			want: common.IngredientMatch{Available: true, SufficientQuantity: true},
		},
		{
			name: "held amount unknown falls back to presence",
			item: common.InventoryItem{IngredientName: "간장", Amount: "적당량"},
			req:  common.RecipeIngredientRequirement{IngredientName: "간장", Amount: "2", Unit: "큰술"},
			want: common.IngredientMatch{Available: true, SufficientQuantity: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchIngredient(tt.item, tt.req)
			if got.Available != tt.want.Available || got.SufficientQuantity != tt.want.SufficientQuantity {
				t.Errorf("MatchIngredient() = %+v, want %+v", got, tt.want)
			}
			if math.Abs(got.Shortfall-tt.want.Shortfall) > 1e-9 {
				t.Errorf("MatchIngredient() shortfall = %v, want %v", got.Shortfall, tt.want.Shortfall)
			}
		})
	}
}
