package handler

import (
	"context"
	"net/http"
	"unicode/utf8"

	"github.com/hitoshi/starman/internal/geocoding"
	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
)

// searchResultLimit は検索結果の上限件数。
const searchResultLimit = 5

// GeocodingClientInterface は都市検索ハンドラーが必要とするクライアントインターフェース。
type GeocodingClientInterface interface {
	Search(ctx context.Context, query string, limit int) ([]geocoding.Place, error)
}

// GeocodingHandler は出生地検索のHTTPハンドラー。
type GeocodingHandler struct {
	client GeocodingClientInterface
}

// NewGeocodingHandler はGeocodingHandlerを生成する。
func NewGeocodingHandler(client GeocodingClientInterface) *GeocodingHandler {
	return &GeocodingHandler{
		client: client,
	}
}

// placesResponse は都市検索結果のAPIレスポンス。
type placesResponse struct {
	Results []geocoding.Place `json:"results"`
}

// Search は地名で都市を検索し座標付きの候補を返す。
// GET /api/geocoding/search?query=
func (h *GeocodingHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if utf8.RuneCountInString(query) < 2 {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewQueryTooShortError())
		return
	}

	places, err := h.client.Search(r.Context(), query, searchResultLimit)
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusServiceUnavailable, model.NewGeocodingFailedError())
		return
	}

	writeJSONResponse(w, http.StatusOK, placesResponse{Results: places})
}
