package recommend

import (
	"net/http"

	"fridge-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchRequest 單一食譜配對查詢
type MatchRequest struct {
	Recipe    common.Recipe          `json:"recipe" binding:"required"`
	Inventory []common.InventoryItem `json:"inventory" binding:"required"`
}

// MatchResponse 原始配對結果，給 UI 顯示「5 樣食材有 3 樣」
type MatchResponse struct {
	Score            int                                  `json:"score"`
	Percentage       float64                              `json:"percentage"`
	MatchedCount     int                                  `json:"matched_count"`
	TotalCount       int                                  `json:"total_count"`
	MissingEssential []common.RecipeIngredientRequirement `json:"missing_essential"`
	MissingOptional  []common.RecipeIngredientRequirement `json:"missing_optional"`
	Executable       bool                                 `json:"executable"`
}

// HandleRecipeMatch 單一食譜的配對評分查詢
func (h *Handler) HandleRecipeMatch(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	match := h.service.MatchRecipe(c.Request.Context(), req.Recipe, req.Inventory)

	common.LogDebug("單一食譜配對完成",
		zap.String("recipe_id", req.Recipe.ID),
		zap.Int("score", match.Score),
		zap.Float64("percentage", match.Percentage),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, MatchResponse{
		Score:            match.Score,
		Percentage:       match.Percentage,
		MatchedCount:     match.MatchedCount,
		TotalCount:       match.TotalCount,
		MissingEssential: match.MissingEssential,
		MissingOptional:  match.MissingOptional,
		Executable:       match.Executable(),
	})
}
