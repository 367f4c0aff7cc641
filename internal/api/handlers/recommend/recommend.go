package recommend

import (
	"net/http"

	recommendService "fridge-recommender/internal/core/recommend"
	"fridge-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendRequest 推薦請求：持有食材與候選食譜的點時快照
type RecommendRequest struct {
	Inventory  []common.InventoryItem `json:"inventory" binding:"required"` // 目前持有的食材
	Recipes    []common.Recipe        `json:"recipes" binding:"required"`   // 候選食譜
	Preference *common.UserPreference `json:"preference,omitempty"`         // 省略時停用偏好評分與過濾
	Limit      int                    `json:"limit,omitempty"`              // 覆寫單次回傳上限
}

// RecommendResponse 排序後的推薦清單
type RecommendResponse struct {
	Results []common.RecommendationResult `json:"results"`
	Count   int                           `json:"count"`
}

// Handler 推薦處理程序
type Handler struct {
	service *recommendService.Service
}

// NewHandler 創建新的推薦處理程序
func NewHandler(service *recommendService.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleRecommend 產生排序後的食譜推薦
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理推薦請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "limit must be positive",
			"code":  "INVALID_LIMIT",
		})
		return
	}

	ctx := recommendService.WithRequestID(c.Request.Context(), requestID)
	opts := h.service.Options(req.Limit)

	results, err := h.service.Recommend(ctx, req.Recipes, req.Inventory, req.Preference, opts)
	if err != nil {
		if common.IsValidationError(err) {
			common.LogWarn("推薦設定無效",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"code":  "INVALID_LIMIT",
			})
			return
		}
		common.LogError("推薦計算失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
		return
	}

	c.JSON(http.StatusOK, RecommendResponse{
		Results: results,
		Count:   len(results),
	})
}
