package engine

import (
	"fridge-recommender/internal/pkg/common"
)

// 配對評分常數。每命中一樣 +15，必備再 +10、選用再 +5，
// 覆蓋率分級加成只加一次，總分收斂在 0-105。
const (
	matchBaseScore      = 15
	essentialMatchBonus = 10
	optionalMatchBonus  = 5

	coverageBonusHigh   = 15 // 覆蓋率 >= 80%
	coverageBonusMedium = 10 // 覆蓋率 >= 60%
	coverageBonusLow    = 5  // 覆蓋率 >= 40%

	// MaxMatchScore 配對分數理論上限
	MaxMatchScore = 105
)

// ScoreMatch 將單一食譜與持有食材快照配對，產生配對分數與覆蓋率。
// 食譜沒有任何食材時回傳全零結果（定義內的邊界情況，不是錯誤）。
func ScoreMatch(recipe common.Recipe, inventory []common.InventoryItem) common.MatchResult {
	result := common.MatchResult{
		TotalCount: len(recipe.Ingredients),
	}
	if len(recipe.Ingredients) == 0 {
		return result
	}

	held := inventoryNameSet(inventory)

	for _, req := range recipe.Ingredients {
		name := common.NormalizeName(req.IngredientName)
		if _, ok := held[name]; ok {
			result.MatchedCount++
			result.MatchedIngredients = append(result.MatchedIngredients, name)
			result.Score += matchBaseScore
			if req.IsEssential {
				result.Score += essentialMatchBonus
			} else {
				result.Score += optionalMatchBonus
			}
			continue
		}
		if req.IsEssential {
			result.MissingEssential = append(result.MissingEssential, req)
		} else {
			result.MissingOptional = append(result.MissingOptional, req)
		}
	}

	result.Percentage = float64(result.MatchedCount) / float64(result.TotalCount) * 100
	result.Score += coverageBonus(result.Percentage)

	// 分數上限 105：食材數多的食譜累加會超過，收斂到理論上限
	if result.Score > MaxMatchScore {
		result.Score = MaxMatchScore
	}

	return result
}

// IsExecutable 必備食材全數在庫時食譜才可製作；選用食材缺少不影響可製作性
func IsExecutable(recipe common.Recipe, inventory []common.InventoryItem) bool {
	return ScoreMatch(recipe, inventory).Executable()
}

// coverageBonus 覆蓋率分級加成，整份食譜只加一次
func coverageBonus(percentage float64) int {
	switch {
	case percentage >= 80:
		return coverageBonusHigh
	case percentage >= 60:
		return coverageBonusMedium
	case percentage >= 40:
		return coverageBonusLow
	default:
		return 0
	}
}

// inventoryNameSet 建立正規化後的持有食材名稱集合
func inventoryNameSet(inventory []common.InventoryItem) map[string]struct{} {
	set := make(map[string]struct{}, len(inventory))
	for _, item := range inventory {
		name := common.NormalizeName(item.IngredientName)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}
