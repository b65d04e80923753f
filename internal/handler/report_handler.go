package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/starman/internal/astro"
	"github.com/hitoshi/starman/internal/middleware"
	"github.com/hitoshi/starman/internal/model"
	"github.com/hitoshi/starman/internal/report"
)

// ReportRendererInterface はPDFレポート生成サービスのインターフェース。
type ReportRendererInterface interface {
	Render(in report.Input) ([]byte, error)
}

// ReportHandler はPDFレポート関連のハンドラー。
type ReportHandler struct {
	charts   ChartServiceInterface
	renderer ReportRendererInterface
	users    UserFinder
}

// NewReportHandler はReportHandlerを生成する。
func NewReportHandler(charts ChartServiceInterface, renderer ReportRendererInterface, users UserFinder) *ReportHandler {
	return &ReportHandler{charts: charts, renderer: renderer, users: users}
}

// Generate はGET /api/natal-chart/reportに対応する。
// プレミアム会員限定。登録済みの出生情報からチャートを計算しPDFを返す。
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.users)
	if !ok {
		return
	}

	if !user.IsPremium() {
		middleware.WriteErrorResponse(w, http.StatusForbidden, model.NewPremiumRequiredError())
		return
	}
	if !user.HasBirthData() {
		middleware.WriteErrorResponse(w, http.StatusUnprocessableEntity, model.NewBirthDateRequiredError())
		return
	}

	input := astro.ChartInput{
		BirthDate: user.BirthDate.Format("2006-01-02"),
		BirthTime: "12:00",
	}
	if user.BirthTime != nil {
		input.BirthTime = *user.BirthTime
	}
	if user.BirthLatitude != nil {
		input.Latitude = *user.BirthLatitude
	}
	if user.BirthLongitude != nil {
		input.Longitude = *user.BirthLongitude
	}

	chart, err := h.charts.Compute(input)
	if err != nil {
		slog.Error("レポート用チャートの計算に失敗しました", "error", err, "user_id", user.ID)
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewChartFailedError())
		return
	}

	in := report.Input{
		UserName:  user.Name,
		BirthDate: user.BirthDate.Format("January 2, 2006"),
		Chart:     chart,
	}
	if user.BirthTime != nil {
		in.BirthTime = *user.BirthTime
	}
	if user.BirthLocation != nil {
		in.BirthLocation = *user.BirthLocation
	}

	pdfBytes, err := h.renderer.Render(in)
	if err != nil {
		slog.Error("PDFレポートの生成に失敗しました", "error", err, "user_id", user.ID)
		middleware.WriteInternalServerError(w)
		return
	}

	filename := fmt.Sprintf("astrolia_report_%s_%s.pdf", chart.Sun.Sign, user.BirthDate.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		slog.Error("PDFレポートの送信に失敗しました", "error", err)
	}
}
