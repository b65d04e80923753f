package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/starman/internal/chat"
	"github.com/hitoshi/starman/internal/model"
)

// maxChatHistory はプロンプトに含める会話履歴の上限件数。
const maxChatHistory = 10

// ChatServiceInterface はチャットハンドラーが必要とするサービスインターフェース。
type ChatServiceInterface interface {
	Send(ctx context.Context, user *model.User, message string, history []chat.Message) (*chat.Reply, error)
	Suggestions() []string
}

// ChatHandler はAstraチャットのHTTPハンドラー。
type ChatHandler struct {
	service ChatServiceInterface
	users   UserFinder
}

// NewChatHandler はChatHandlerを生成する。
func NewChatHandler(service ChatServiceInterface, users UserFinder) *ChatHandler {
	return &ChatHandler{
		service: service,
		users:   users,
	}
}

// chatMessageRequest はチャット送信リクエストのボディ。
type chatMessageRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history"`
}

// suggestionsResponse は会話スターターのAPIレスポンス。
type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Message はメッセージをAstraへ送り応答を返す。
// 履歴は直近10件までをプロンプトに含める。
// POST /api/chat/message
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	var req chatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	history := req.History
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	reply, err := h.service.Send(r.Context(), user, req.Message, history)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, reply)
}

// Suggestions は会話のきっかけになる質問の一覧を返す。
// GET /api/chat/suggestions
func (h *ChatHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, suggestionsResponse{Suggestions: h.service.Suggestions()})
}
