package common

import (
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// IntPtr 回傳整數指標，用於可省略的回應欄位
func IntPtr(v int) *int {
	return &v
}
