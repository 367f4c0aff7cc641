package recommend

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"fridge-recommender/internal/core/catalog"
	"fridge-recommender/internal/core/engine"
	"fridge-recommender/internal/infrastructure/config"
	"fridge-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜推薦服務。把主檔展開、即期食材挑選、引擎排序
// 與結果緩存串成一次推薦呼叫。
type Service struct {
	config *config.Config
	cache  ResultCache

	mu      sync.RWMutex
	catalog *catalog.Catalog

	// seenKeys 記住每個快照鍵上次服務的時間，重複提交時留紀錄
	seenKeys sync.Map

	// now 可替換以便測試
	now func() time.Time
}

// NewService 創建推薦服務。cache 與 cat 皆可為 nil。
func NewService(cfg *config.Config, cache ResultCache, cat *catalog.Catalog) *Service {
	return &Service{
		config:  cfg,
		cache:   cache,
		catalog: cat,
		now:     time.Now,
	}
}

// SetCatalog 替換主檔快照（由同步排程呼叫）
func (s *Service) SetCatalog(cat *catalog.Catalog) {
	s.mu.Lock()
	s.catalog = cat
	s.mu.Unlock()
}

func (s *Service) currentCatalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Options 由設定組出引擎排序參數；呼叫端可用 limit 覆寫單次上限
func (s *Service) Options(limit int) engine.Options {
	opts := engine.Options{
		Limit:                s.config.Recommend.Limit,
		UrgencyThresholdDays: s.config.Recommend.UrgencyThresholdDays,
		UrgencyBoostWeight:   s.config.Recommend.UrgencyBoostWeight,
	}
	if limit > 0 {
		opts.Limit = limit
	}
	return opts
}

// Recommend 對候選食譜產生排序後的推薦清單。
// pref 為 nil 時停用偏好評分與適配性過濾。
func (s *Service) Recommend(ctx context.Context, recipes []common.Recipe, inventory []common.InventoryItem, pref *common.UserPreference, opts engine.Options) ([]common.RecommendationResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := s.now()

	// 替代食材展開屬於主檔層；沒有主檔就用原始快照
	expanded := inventory
	if cat := s.currentCatalog(); cat != nil {
		expanded = cat.ExpandInventory(inventory)
	}

	// 用展開後的清單挑即期食材，替代食材沿用原項目的效期
	soonExpiring := engine.SoonExpiring(expanded, start, opts.UrgencyThresholdDays)

	common.LogDebug("冰箱快照",
		zap.Int("原始項目數", len(inventory)),
		zap.Int("展開後項目數", len(expanded)),
		zap.Int("即期項目數", len(soonExpiring)),
		zap.String("清單", common.FormatInventory(expanded)),
	)

	key := buildRecommendKey(recipes, inventory, pref, soonExpiring, opts)

	if prev, seen := s.seenKeys.Load(key); seen {
		common.LogDebug("重複的推薦快照",
			zap.String("鍵", key),
			zap.Time("上次服務時間", prev.(time.Time)),
		)
	}
	s.seenKeys.Store(key, start)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var results []common.RecommendationResult
			if err := common.ParseJSONBytes([]byte(cached), &results); err == nil {
				return results, nil
			}
			common.LogWarn("快取內容解析失敗，重新計算",
				zap.String("鍵", key),
			)
		}
	}

	results, err := engine.Rank(recipes, expanded, pref, soonExpiring, opts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := common.ToJSON(results); err == nil {
			if err := s.cache.Set(ctx, key, data); err != nil {
				common.LogWarn("無法寫入結果快取",
					zap.Error(err),
				)
			}
		}
	}

	common.LogRecommendation(len(recipes), len(results), s.now().Sub(start), requestIDFrom(ctx))

	return results, nil
}

// MatchRecipe 單一食譜查詢：回傳原始配對結果（UI 顯示「5 樣食材有 3 樣」用）
func (s *Service) MatchRecipe(ctx context.Context, recipe common.Recipe, inventory []common.InventoryItem) common.MatchResult {
	expanded := inventory
	if cat := s.currentCatalog(); cat != nil {
		expanded = cat.ExpandInventory(inventory)
	}
	return engine.ScoreMatch(recipe, expanded)
}

// requestIDKey context 內 request id 的鍵
type requestIDKey struct{}

// WithRequestID 將 request id 放入 context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// buildRecommendKey 由輸入快照組出確定性的緩存鍵：
// 各部分先正規化、排序再雜湊，與輸入順序無關。
func buildRecommendKey(recipes []common.Recipe, inventory []common.InventoryItem, pref *common.UserPreference, soonExpiring []common.InventoryItem, opts engine.Options) string {
	invParts := make([]string, 0, len(inventory))
	for _, item := range inventory {
		part := fmt.Sprintf("%s|%s|%s",
			common.NormalizeName(item.IngredientName),
			strings.ToLower(strings.TrimSpace(item.Amount)),
			strings.ToLower(strings.TrimSpace(item.Unit)),
		)
		invParts = append(invParts, part)
	}
	sort.Strings(invParts)

	// 食譜定義隨請求而來，同一個 ID 也可能帶不同內容，
	// 鍵必須涵蓋會影響評分的全部欄位
	recipeParts := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		reqs := make([]string, 0, len(recipe.Ingredients))
		for _, req := range recipe.Ingredients {
			reqs = append(reqs, fmt.Sprintf("%s|%s|%s|%t",
				common.NormalizeName(req.IngredientName),
				strings.ToLower(strings.TrimSpace(req.Amount)),
				strings.ToLower(strings.TrimSpace(req.Unit)),
				req.IsEssential,
			))
		}
		sort.Strings(reqs)

		recipeParts = append(recipeParts, fmt.Sprintf("%s|%s|%s|%d|%d|%s",
			recipe.ID,
			common.NormalizeName(recipe.Name),
			common.NormalizeName(recipe.Category),
			recipe.Difficulty,
			recipe.CookingTimeMinutes,
			strings.Join(reqs, ","),
		))
	}
	sort.Strings(recipeParts)

	urgent := make([]string, 0, len(soonExpiring))
	for _, item := range soonExpiring {
		urgent = append(urgent, common.NormalizeName(item.IngredientName))
	}
	sort.Strings(urgent)

	prefPart := ""
	if pref != nil {
		categories := append([]string(nil), pref.PreferredCategories...)
		for i := range categories {
			categories[i] = common.NormalizeName(categories[i])
		}
		sort.Strings(categories)

		allergies := append([]string(nil), pref.Allergies...)
		for i := range allergies {
			allergies[i] = common.NormalizeName(allergies[i])
		}
		sort.Strings(allergies)

		restrictions := make([]string, 0, len(pref.DietRestrictions))
		for _, r := range pref.DietRestrictions {
			restrictions = append(restrictions, string(r))
		}
		sort.Strings(restrictions)

		prefPart = fmt.Sprintf("%d|%d|%d|%s|%s|%s",
			pref.CookingSkillLevel,
			pref.PreferredCookingTime,
			pref.HouseholdSize,
			strings.Join(categories, ";"),
			strings.Join(allergies, ";"),
			strings.Join(restrictions, ";"),
		)
	}

	optsPart := strings.Join([]string{
		strconv.Itoa(opts.Limit),
		strconv.Itoa(opts.UrgencyThresholdDays),
		strconv.FormatFloat(opts.UrgencyBoostWeight, 'f', -1, 64),
	}, "|")

	return CacheKey([]string{
		strings.Join(invParts, ";"),
		strings.Join(recipeParts, ";"),
		strings.Join(urgent, ";"),
		prefPart,
		optsPart,
	})
}
