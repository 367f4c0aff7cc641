package common

import "github.com/google/uuid"

// GenerateUUID 生成請求追蹤用的 UUID
func GenerateUUID() string {
	return uuid.New().String()
}
