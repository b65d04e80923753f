package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/synastry"
)

// SynastryServiceInterface は相性診断ハンドラーが必要とするサービスインターフェース。
type SynastryServiceInterface interface {
	Analyze(ctx context.Context, user *model.User, in synastry.Input) (*synastry.Result, error)
}

// SynastryHandler はシナストリー（相性診断）のHTTPハンドラー。
type SynastryHandler struct {
	service SynastryServiceInterface
	users   UserFinder
}

// NewSynastryHandler はSynastryHandlerを生成する。
func NewSynastryHandler(service SynastryServiceInterface, users UserFinder) *SynastryHandler {
	return &SynastryHandler{
		service: service,
		users:   users,
	}
}

// synastryRequest は相性診断リクエストのボディ。
type synastryRequest struct {
	PartnerName      string   `json:"partner_name"`
	PartnerBirthDate string   `json:"partner_birth_date"` // YYYY-MM-DD
	PartnerBirthTime string   `json:"partner_birth_time"` // HH:MM
	PartnerLatitude  *float64 `json:"partner_latitude"`
	PartnerLongitude *float64 `json:"partner_longitude"`
}

// Compatibility はユーザーとパートナーの相性を診断する。
// POST /api/synastry/compatibility
func (h *SynastryHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	var req synastryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	partnerBirthDate, err := time.Parse("2006-01-02", req.PartnerBirthDate)
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError())
		return
	}

	result, err := h.service.Analyze(r.Context(), user, synastry.Input{
		PartnerName:      req.PartnerName,
		PartnerBirthDate: partnerBirthDate,
		PartnerBirthTime: req.PartnerBirthTime,
		PartnerLatitude:  req.PartnerLatitude,
		PartnerLongitude: req.PartnerLongitude,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}
