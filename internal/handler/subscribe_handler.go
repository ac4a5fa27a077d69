package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/grown/internal/middleware"
	"github.com/hitoshi/grown/internal/model"
	"github.com/hitoshi/grown/internal/subscriber"
)

// SubscribeServiceInterface は登録ハンドラーが必要とするサービスインターフェース。
type SubscribeServiceInterface interface {
	// Subscribe は登録リクエストを検証し、登録者をUPSERTする。
	Subscribe(ctx context.Context, p subscriber.Payload) (*model.Subscriber, error)
}

// SubscribeHandler はウェイトリスト登録APIのHTTPハンドラー。
type SubscribeHandler struct {
	service SubscribeServiceInterface
}

// NewSubscribeHandler はSubscribeHandlerを生成する。
func NewSubscribeHandler(service SubscribeServiceInterface) *SubscribeHandler {
	return &SubscribeHandler{
		service: service,
	}
}

// subscribeResponse は登録成功時のAPIレスポンス。
type subscribeResponse struct {
	OK bool `json:"ok"`
}

// Subscribe はウェイトリストへの登録を受け付ける。
// POST /api/subscribe
//
// 不正なJSONやオブジェクト以外のボディは空のペイロードとして扱うため、
// メールアドレス不正の400になる。
func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	payload := subscriber.DecodePayload(r.Body)

	if _, err := h.service.Subscribe(r.Context(), payload); err != nil {
		handleServiceError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, subscribeResponse{OK: true})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外はストレージ障害として扱い、詳細はログのみに残す
	slog.Error("failed to save subscription", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidEmail, model.ErrCodeNoInterest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
