package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"fridge-recommender/internal/infrastructure/config"
	"fridge-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SyncClient 從上游主檔服務拉取食材主檔快照。
// 主檔的建立與維護都在上游；這裡只讀取。
type SyncClient struct {
	config *config.CatalogConfig
	client *resty.Client
}

// NewSyncClient 創建主檔同步客戶端
func NewSyncClient(cfg *config.CatalogConfig) *SyncClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey))
	}

	return &SyncClient{
		config: cfg,
		client: client,
	}
}

// catalogResponse 上游主檔服務的回應格式
type catalogResponse struct {
	Entries   []common.IngredientCatalogEntry `json:"entries"`
	UpdatedAt time.Time                       `json:"updated_at"`
}

// FetchSnapshot 取得完整主檔快照
func (s *SyncClient) FetchSnapshot(ctx context.Context) (*Catalog, error) {
	start := time.Now()

	resp, err := s.client.R().
		SetContext(ctx).
		Get("/catalog/ingredients")
	if err != nil {
		common.LogError("主檔同步請求失敗",
			zap.Error(err),
			zap.Duration("耗時", time.Since(start)),
		)
		return nil, fmt.Errorf("failed to fetch ingredient catalog: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("主檔服務回應異常",
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode())
	}

	var result catalogResponse
	if err := common.DecodeJSONStrict(bytes.NewReader(resp.Body()), &result); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}

	common.LogInfo("主檔同步完成",
		zap.Int("記錄數", len(result.Entries)),
		zap.Time("updated_at", result.UpdatedAt),
		zap.Duration("耗時", time.Since(start)),
	)

	return New(result.Entries), nil
}
