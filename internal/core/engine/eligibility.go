package engine

import (
	"strings"

	"fridge-recommender/internal/pkg/common"
)

// 飲食限制違規標記字組。各限制種類對應一組禁用子字串，
// 對食譜的每個食材名稱做不分大小寫的包含檢查。
var (
	meatMarkers = []string{
		"돼지고기", "소고기", "닭고기", "양고기", "오리고기", "고기",
		"베이컨", "햄", "소시지", "삼겹살", "갈비",
	}
	seafoodMarkers = []string{
		"생선", "고등어", "갈치", "연어", "참치", "멸치", "새우",
		"오징어", "조개", "굴", "게", "어묵",
	}
	dairyMarkers = []string{
		"우유", "치즈", "버터", "생크림", "요거트", "연유",
	}
	eggMarkers = []string{
		"계란", "달걀", "메추리알",
	}
	glutenMarkers = []string{
		"밀가루", "빵", "파스타", "국수", "라면", "우동", "만두피", "부침가루",
	}
	porkMarkers = []string{
		"돼지고기", "삼겹살", "베이컨", "햄", "소시지",
	}
	alcoholMarkers = []string{
		"맛술", "미림", "와인", "소주", "맥주", "청주",
	}
)

// dietForbiddenMarkers 限制種類 → 禁用字組。
// 未列出的限制種類一律視為符合（寬鬆預設，原始系統的既定行為）。
var dietForbiddenMarkers = map[common.DietRestriction][]string{
	common.DietVegetarian:  concat(meatMarkers, seafoodMarkers),
	common.DietVegan:       concat(meatMarkers, seafoodMarkers, dairyMarkers, eggMarkers),
	common.DietPescatarian: meatMarkers,
	common.DietHalal:       concat(porkMarkers, alcoholMarkers),
	common.DietLactoseFree: dairyMarkers,
	common.DietGlutenFree:  glutenMarkers,
}

// CheckEligibility 硬性排除：過敏原、飲食限制、難度超出技能上限。
// 不合格的食譜不進入評分與排序。Reason 為機器可讀代碼，不是使用者文案。
func CheckEligibility(recipe common.Recipe, pref common.UserPreference) common.Eligibility {
	for _, allergen := range pref.Allergies {
		needle := common.NormalizeName(allergen)
		if needle == "" {
			continue
		}
		for _, req := range recipe.Ingredients {
			if strings.Contains(common.NormalizeName(req.IngredientName), needle) {
				return common.Eligibility{Reason: "allergen:" + needle}
			}
		}
	}

	for _, restriction := range pref.DietRestrictions {
		markers, ok := dietForbiddenMarkers[restriction]
		if !ok {
			continue
		}
		for _, req := range recipe.Ingredients {
			name := common.NormalizeName(req.IngredientName)
			for _, marker := range markers {
				if strings.Contains(name, marker) {
					return common.Eligibility{
						Reason: "diet:" + string(restriction) + ":" + marker,
					}
				}
			}
		}
	}

	// 難度上限：最多比技能高一級
	if recipe.Difficulty > 0 && clampDifficulty(recipe.Difficulty) > pref.CookingSkillLevel+1 {
		return common.Eligibility{Reason: "difficulty_above_skill"}
	}

	return common.Eligibility{Eligible: true}
}

func concat(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
