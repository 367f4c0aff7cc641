package common

import (
	"strings"
	"time"
)

// IngredientCatalogEntry 食材主檔（唯讀參考資料，由外部目錄同步服務維護）
type IngredientCatalogEntry struct {
	Name         string   `json:"name"`                   // 唯一鍵（不分大小寫）
	Category     string   `json:"category"`               // 分類（蔬菜、肉類...）
	Alternatives []string `json:"alternatives,omitempty"` // 可替代食材名稱
	CommonUnit   string   `json:"common_unit,omitempty"`  // 常用單位
}

// InventoryItem 使用者持有的食材
type InventoryItem struct {
	IngredientName  string    `json:"ingredient_name"`
	Amount          string    `json:"amount"` // 自由格式數量字串（"1/2"、"적당량"、"300g"）
	Unit            string    `json:"unit"`
	ExpiryDate      time.Time `json:"expiry_date"`
	StorageLocation string    `json:"storage_location,omitempty"`
	Memo            string    `json:"memo,omitempty"`
}

// RecipeIngredientRequirement 食譜所需的單一食材
type RecipeIngredientRequirement struct {
	IngredientName  string `json:"ingredient_name"`
	Amount          string `json:"amount,omitempty"`
	Unit            string `json:"unit,omitempty"`
	IsEssential     bool   `json:"is_essential"`
	PreparationNote string `json:"preparation_note,omitempty"`
}

// Recipe 食譜定義
type Recipe struct {
	ID                 string                        `json:"id"`
	Name               string                        `json:"name"`
	Category           string                        `json:"category"`
	MealType           string                        `json:"meal_type,omitempty"`
	Difficulty         int                           `json:"difficulty,omitempty"` // 1-5，0 表示未提供
	CookingTimeMinutes int                           `json:"cooking_time_minutes,omitempty"`
	Servings           int                           `json:"servings"`
	Ingredients        []RecipeIngredientRequirement `json:"ingredients"`
	Tags               []string                      `json:"tags,omitempty"`
}

// DietRestriction 飲食限制種類
type DietRestriction string

const (
	DietVegetarian  DietRestriction = "vegetarian"
	DietVegan       DietRestriction = "vegan"
	DietPescatarian DietRestriction = "pescatarian"
	DietHalal       DietRestriction = "halal"
	DietLactoseFree DietRestriction = "lactose_free"
	DietGlutenFree  DietRestriction = "gluten_free"
)

// UserPreference 使用者偏好設定
type UserPreference struct {
	CookingSkillLevel    int               `json:"cooking_skill_level"`    // 1-5
	PreferredCookingTime int               `json:"preferred_cooking_time"` // 分鐘
	PreferredCategories  []string          `json:"preferred_categories,omitempty"`
	DislikedIngredients  []string          `json:"disliked_ingredients,omitempty"`
	Allergies            []string          `json:"allergies,omitempty"`
	DietRestrictions     []DietRestriction `json:"diet_restrictions,omitempty"`
	HouseholdSize        int               `json:"household_size"` // >= 1
}

// IngredientMatch 單一（持有食材, 食譜需求）配對結果
type IngredientMatch struct {
	Available          bool    `json:"available"`
	SufficientQuantity bool    `json:"sufficient_quantity"`
	Shortfall          float64 `json:"shortfall"` // 換算後仍缺少的數量
}

// MatchResult 單一食譜的配對評分結果
type MatchResult struct {
	Score              int                           `json:"score"`      // 0-105
	Percentage         float64                       `json:"percentage"` // 0-100
	MatchedCount       int                           `json:"matched_count"`
	TotalCount         int                           `json:"total_count"`
	MatchedIngredients []string                      `json:"matched_ingredients,omitempty"` // 正規化後的名稱
	MissingEssential   []RecipeIngredientRequirement `json:"missing_essential,omitempty"`
	MissingOptional    []RecipeIngredientRequirement `json:"missing_optional,omitempty"`
}

// Executable 必備食材皆備齊時食譜才可製作
func (r MatchResult) Executable() bool {
	return len(r.MissingEssential) == 0
}

// Eligibility 食譜適配性判定結果
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"` // 機器可讀代碼，如 "allergen:새우"
}

// RecommendationResult 單一食譜的最終推薦結果
type RecommendationResult struct {
	Recipe             Recipe                        `json:"recipe"`
	MatchScore         int                           `json:"match_score"`
	MatchingPercentage float64                       `json:"matching_percentage"`
	MissingEssential   []RecipeIngredientRequirement `json:"missing_essential,omitempty"`
	MissingOptional    []RecipeIngredientRequirement `json:"missing_optional,omitempty"`
	PreferenceScore    int                           `json:"preference_score"`
	UrgencyBoost       float64                       `json:"urgency_boost"`
	FinalScore         float64                       `json:"final_score"`
	Executable         bool                          `json:"executable"`
}

// NormalizeName 食材名稱比對鍵：去空白、轉小寫
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FormatInventory 格式化持有食材列表（日誌用）
func FormatInventory(items []InventoryItem) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- " + item.IngredientName)
		if item.Amount != "" {
			sb.WriteString(": " + item.Amount + item.Unit)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
