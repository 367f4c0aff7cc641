package engine

import (
	"sort"
	"time"

	"fridge-recommender/internal/pkg/common"
)

// 預設排序設定
const (
	DefaultLimit                = 10
	DefaultUrgencyThresholdDays = 3
	// DefaultUrgencyBoostWeight 每命中一個即期食材的加分權重（可由設定覆寫）
	DefaultUrgencyBoostWeight = 5.0
)

// Options 推薦排序設定
type Options struct {
	Limit                int     `json:"limit"`
	UrgencyThresholdDays int     `json:"urgency_threshold_days"`
	UrgencyBoostWeight   float64 `json:"urgency_boost_weight"`
}

// DefaultOptions 回傳預設排序設定
func DefaultOptions() Options {
	return Options{
		Limit:                DefaultLimit,
		UrgencyThresholdDays: DefaultUrgencyThresholdDays,
		UrgencyBoostWeight:   DefaultUrgencyBoostWeight,
	}
}

// Validate 檢查設定。這是引擎唯一會在評分開始前擋下呼叫的條件。
func (o Options) Validate() error {
	if o.Limit <= 0 {
		return common.NewValidationError("limit must be positive")
	}
	if o.UrgencyThresholdDays < 0 {
		return common.NewValidationError("urgency threshold days must not be negative")
	}
	return nil
}

// SoonExpiring 從持有食材中挑出效期逼近（threshold 天內，含已過期）的項目
func SoonExpiring(inventory []common.InventoryItem, now time.Time, thresholdDays int) []common.InventoryItem {
	cutoff := now.AddDate(0, 0, thresholdDays)
	var soon []common.InventoryItem
	for _, item := range inventory {
		if item.ExpiryDate.IsZero() {
			continue
		}
		if !item.ExpiryDate.After(cutoff) {
			soon = append(soon, item)
		}
	}
	return soon
}

// Rank 對候選食譜做完整推薦：配對評分、偏好評分、適配性過濾、
// 即期食材加成，最後以確定性的順序排序並截斷。
// pref 為 nil 時偏好分數為 0 且不做過濾。
func Rank(recipes []common.Recipe, inventory []common.InventoryItem, pref *common.UserPreference, soonExpiring []common.InventoryItem, opts Options) ([]common.RecommendationResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	urgent := inventoryNameSet(soonExpiring)

	results := make([]common.RecommendationResult, 0, len(recipes))
	for _, recipe := range recipes {
		// 過濾先於評分，不合格的食譜不佔排名名額
		if pref != nil {
			if eligibility := CheckEligibility(recipe, *pref); !eligibility.Eligible {
				continue
			}
		}

		match := ScoreMatch(recipe, inventory)

		preferenceScore := 0
		if pref != nil {
			preferenceScore = ScorePreference(recipe, *pref)
		}

		urgencyBoost := 0.0
		for _, name := range match.MatchedIngredients {
			if _, ok := urgent[name]; ok {
				urgencyBoost += opts.UrgencyBoostWeight
			}
		}

		results = append(results, common.RecommendationResult{
			Recipe:             recipe,
			MatchScore:         match.Score,
			MatchingPercentage: match.Percentage,
			MissingEssential:   match.MissingEssential,
			MissingOptional:    match.MissingOptional,
			PreferenceScore:    preferenceScore,
			UrgencyBoost:       urgencyBoost,
			FinalScore:         float64(match.Score+preferenceScore) + urgencyBoost,
			Executable:         match.Executable(),
		})
	}

	// 總分高者優先；同分比覆蓋率，再以食譜名稱字典序保證結果穩定
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		if results[i].MatchingPercentage != results[j].MatchingPercentage {
			return results[i].MatchingPercentage > results[j].MatchingPercentage
		}
		return results[i].Recipe.Name < results[j].Recipe.Name
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}
