package engine

import (
	"fridge-recommender/internal/pkg/common"
)

// MatchIngredient 判定一個持有食材能否滿足一條食譜需求。
// 名稱比對為去空白、不分大小寫的完全相等；替代食材的比對屬於
// 食材主檔（catalog）層的責任，不在此處做模糊比對。
func MatchIngredient(item common.InventoryItem, req common.RecipeIngredientRequirement) common.IngredientMatch {
	if common.NormalizeName(item.IngredientName) != common.NormalizeName(req.IngredientName) {
		return common.IngredientMatch{}
	}

	// 需求未標數量：有就算滿足
	required, reqKnown := ParseQuantity(req.Amount)
	if !reqKnown {
		required = 0
	}

	held, heldKnown := ParseQuantity(item.Amount)
	if !heldKnown {
		// 持有數量不明（"적당량" 等）：退回只看有無的比對
		return common.IngredientMatch{
			Available:          true,
			SufficientQuantity: true,
			Shortfall:          0,
		}
	}

	converted := ConvertQuantity(held, item.Unit, req.Unit)
	shortfall := required - converted
	if shortfall < 0 {
		shortfall = 0
	}

	return common.IngredientMatch{
		Available:          true,
		SufficientQuantity: converted >= required,
		Shortfall:          shortfall,
	}
}
