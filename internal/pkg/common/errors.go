package common

import (
	"errors"
	"net/http"
)

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

// Error 實現 error 介面
func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓包裝過的錯誤仍可與預定義錯誤比較
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Wrap 附加原始錯誤並回傳新的錯誤實例，預定義錯誤本身不會被修改
func (e *CustomError) Wrap(err error) *CustomError {
	return &CustomError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Err:     err,
	}
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"   // 400
	ErrCodeInvalidInput     = "INVALID_INPUT"     // 400
	ErrCodeNotFound         = "NOT_FOUND"         // 404
	ErrCodePayloadTooLarge  = "PAYLOAD_TOO_LARGE" // 413
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS" // 429
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError  = "INTERNAL_ERROR"  // 500
	ErrCodeGatewayTimeout = "GATEWAY_TIMEOUT" // 504

	// 食譜來源（降級為備用食譜，不會以錯誤狀態回應）
	ErrCodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrCodeNoMatches         = "NO_MATCHES"
	ErrCodeDetailFetchFailed = "DETAIL_FETCH_FAILED"
	ErrCodeAllFilteredOut    = "ALL_FILTERED_OUT"
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "Invalid request format", http.StatusBadRequest, nil)
	ErrInvalidInput     = NewError(ErrCodeInvalidInput, "Please provide at least one ingredient", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "Endpoint not found", http.StatusNotFound, nil)
	ErrPayloadTooLarge  = NewError(ErrCodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "Too many requests", http.StatusTooManyRequests, nil)
	ErrDuplicateRequest = NewError(ErrCodeDuplicateRequest, "Request too frequent", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError  = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)
	ErrGatewayTimeout = NewError(ErrCodeGatewayTimeout, "Request timeout", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrSourceUnavailable = NewError(ErrCodeSourceUnavailable, "API unavailable, showing demo recipe", http.StatusBadGateway, nil)
	ErrNoMatches         = NewError(ErrCodeNoMatches, "No matches found, showing custom recipe", http.StatusOK, nil)
	ErrDetailFetchFailed = NewError(ErrCodeDetailFetchFailed, "Recipe details unavailable, showing custom recipe", http.StatusBadGateway, nil)
	ErrAllFilteredOut    = NewError(ErrCodeAllFilteredOut, "No recipes matched your filters, showing custom recipe", http.StatusOK, nil)
)
