package engine

import (
	"fridge-recommender/internal/pkg/common"
)

// 偏好相容性加分常數
const (
	timeBonusClose  = 10 // 時間差 <= 10 分鐘
	timeBonusNear   = 5  // 時間差 <= 20 分鐘
	timeBonusFar    = 2  // 時間差 <= 30 分鐘
	skillBonusExact = 8  // 難度與技能相同
	skillBonusNear  = 5  // 差 1 級
	skillBonusFar   = 2  // 差 2 級
	categoryBonus   = 5
)

// ScorePreference 計算食譜與使用者偏好的相容性分數。
// 純加法且各項獨立：烹調時間、難度差距、偏好分類各自計分。
// 食譜未提供時間或難度時跳過該項。
func ScorePreference(recipe common.Recipe, pref common.UserPreference) int {
	score := 0

	if recipe.CookingTimeMinutes > 0 {
		score += timeScore(absInt(recipe.CookingTimeMinutes - pref.PreferredCookingTime))
	}

	if recipe.Difficulty > 0 {
		difficulty := clampDifficulty(recipe.Difficulty)
		score += skillScore(absInt(difficulty - pref.CookingSkillLevel))
	}

	for _, category := range pref.PreferredCategories {
		if common.NormalizeName(category) == common.NormalizeName(recipe.Category) {
			score += categoryBonus
			break
		}
	}

	return score
}

func timeScore(delta int) int {
	switch {
	case delta <= 10:
		return timeBonusClose
	case delta <= 20:
		return timeBonusNear
	case delta <= 30:
		return timeBonusFar
	default:
		return 0
	}
}

func skillScore(delta int) int {
	switch delta {
	case 0:
		return skillBonusExact
	case 1:
		return skillBonusNear
	case 2:
		return skillBonusFar
	default:
		return 0
	}
}

// clampDifficulty 將難度限制在 1-5；上游驗證層應已擋下越界值，這裡防禦性收斂
func clampDifficulty(difficulty int) int {
	if difficulty < 1 {
		return 1
	}
	if difficulty > 5 {
		return 5
	}
	return difficulty
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
