// Package report はネイタルチャートのPDFレポートを生成する。
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/hitoshi/starman/internal/astro"
)

// ページレイアウト定数（A4縦、mm単位）。
const (
	pageWidth    = 210
	headerHeight = 30
	marginBottom = 15
)

// Input はレポート生成の入力。チャートは計算済みであること。
type Input struct {
	UserName      string
	BirthDate     string // 表示用（例 "January 6, 2000"）
	BirthTime     string // "HH:MM"、空可
	BirthLocation string // 空可
	Chart         *astro.NatalChart
}

// Renderer はチャートをスタイル付きPDFに描画する。
type Renderer struct {
	now func() time.Time
}

// NewRenderer はRendererを生成する。
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render はレポートPDFのバイト列を返す。
// 構成: プロフィール、天体配置表、各配置のリーディング、ハウス一覧。
func (r *Renderer) Render(in Input) ([]byte, error) {
	if in.Chart == nil {
		return nil, fmt.Errorf("チャートがnilです")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Your Personal Astrology Report", false)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetHeaderFunc(func() { drawHeader(pdf) })
	generated := r.now().UTC().Format("January 2, 2006")
	pdf.SetFooterFunc(func() { drawFooter(pdf, generated) })

	pdf.AddPage()

	// --- プロフィール ---
	sectionTitle(pdf, "YOUR COSMIC PROFILE")
	name := in.UserName
	if name == "" {
		name = "Cosmic Traveler"
	}
	infoBox(pdf, "Name", name)
	if in.BirthDate != "" {
		infoBox(pdf, "Birth Date", in.BirthDate)
	}
	if in.BirthTime != "" {
		infoBox(pdf, "Birth Time", in.BirthTime)
	}
	if in.BirthLocation != "" {
		infoBox(pdf, "Birth Place", in.BirthLocation)
	}
	if sign := astro.SignByID(in.Chart.Sun.Sign); sign != nil {
		infoBox(pdf, "Sun Sign", sign.Name)
		infoBox(pdf, "Element", astro.TitleSign(sign.Element))
		infoBox(pdf, "Ruling Planet", astro.TitleSign(sign.RulingPlanet))
	}
	pdf.Ln(6)

	// --- 天体配置表 ---
	sectionTitle(pdf, "PLANETARY POSITIONS")
	positionTableHeader(pdf)
	positionRow(pdf, "Sun", in.Chart.Sun)
	positionRow(pdf, "Moon", in.Chart.Moon)
	positionRow(pdf, "Rising", in.Chart.Rising)
	for _, p := range in.Chart.Planets {
		positionRow(pdf, astro.TitleSign(p.Planet), p)
	}
	pdf.Ln(6)

	// --- リーディング ---
	pdf.AddPage()
	sectionTitle(pdf, "YOUR READINGS")
	readingBlock(pdf, "Sun", in.Chart.Sun)
	readingBlock(pdf, "Moon", in.Chart.Moon)
	readingBlock(pdf, "Rising", in.Chart.Rising)
	for _, p := range in.Chart.Planets {
		readingBlock(pdf, astro.TitleSign(p.Planet), p)
	}

	// --- ハウス ---
	pdf.AddPage()
	sectionTitle(pdf, "WHOLE SIGN HOUSES")
	bodyText(pdf, in.Chart.Summary)
	pdf.Ln(2)
	for _, house := range in.Chart.Houses {
		houseRow(pdf, house)
	}
	pdf.Ln(5)

	highlightBox(pdf,
		"From Astra, Your AI Astrologer",
		"This report offers general guidance. For deeper personalized readings, chat with me in the Astrolia app!",
		255, 248, 220)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDFの出力に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// drawHeader はダークパープルのヘッダーバーと金の装飾を描く。
func drawHeader(pdf *fpdf.Fpdf) {
	pdf.SetFillColor(26, 26, 46)
	pdf.Rect(0, 0, pageWidth, headerHeight, "F")

	// 装飾の星
	pdf.SetFillColor(255, 215, 0)
	pdf.Ellipse(181, 6, 1.5, 1.5, 0, "F")
	pdf.Ellipse(191, 11, 1, 1, 0, "F")
	pdf.Ellipse(176, 16, 1, 1, 0, "F")
	pdf.Ellipse(196, 21, 0.75, 0.75, 0, "F")

	pdf.SetDrawColor(255, 215, 0)
	pdf.SetLineWidth(1)
	pdf.Line(0, headerHeight, pageWidth, headerHeight)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(255, 215, 0)
	pdf.SetXY(10, 8)
	pdf.CellFormat(0, 10, "ASTROLIA", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(200, 200, 220)
	pdf.SetXY(10, 18)
	pdf.CellFormat(0, 5, "Your Personal Astrology Report", "", 0, "L", false, 0, "")

	pdf.SetY(headerHeight + 6)
}

// drawFooter は生成日入りのフッターバーを描く。
func drawFooter(pdf *fpdf.Fpdf, generated string) {
	pdf.SetY(-20)
	pdf.SetFillColor(26, 26, 46)
	pdf.Rect(0, pdf.GetY(), pageWidth, 20, "F")

	pdf.SetY(-15)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(200, 200, 220)
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated on %s | Astrolia App", generated), "", 0, "C", false, 0, "")
}

// sectionTitle はバイオレットのアクセントバー付きセクション見出しを描く。
func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFillColor(155, 125, 255)
	pdf.Rect(10, pdf.GetY(), 4, 8, "F")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(60, 40, 120)
	pdf.SetX(18)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetDrawColor(200, 180, 255)
	pdf.SetLineWidth(0.3)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)
}

// bodyText は本文テキストを描く。
func bodyText(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(50, 50, 70)
	pdf.MultiCell(0, 5.5, text, "", "L", false)
	pdf.Ln(2)
}

// infoBox はドット付きのラベルと値の行を描く。
func infoBox(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFillColor(155, 125, 255)
	pdf.Ellipse(13, pdf.GetY()+3, 1, 1, 0, "F")

	pdf.SetX(18)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(100, 80, 140)
	pdf.CellFormat(35, 6, label+":", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(50, 50, 70)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

// positionTableHeader は配置表のヘッダー行を描く。
func positionTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFillColor(240, 235, 250)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(60, 40, 120)
	pdf.SetX(10)
	pdf.CellFormat(60, 7, "Body", "", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "Sign", "", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Degree", "", 1, "L", true, 0, "")
}

// positionRow は配置表の1行を描く。
func positionRow(pdf *fpdf.Fpdf, label string, pos astro.BodyPosition) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(50, 50, 70)
	pdf.SetX(10)
	pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 6, astro.TitleSign(pos.Sign), "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 6, fmt.Sprintf("%.2f deg", pos.Degree), "", 1, "L", false, 0, "")

	pdf.SetDrawColor(230, 225, 245)
	pdf.SetLineWidth(0.2)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
}

// readingBlock は1配置の見出しとリーディング本文を描く。
func readingBlock(pdf *fpdf.Fpdf, label string, pos astro.BodyPosition) {
	if pos.Reading == "" {
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(80, 60, 120)
	pdf.SetX(10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s in %s", label, astro.TitleSign(pos.Sign)), "", 1, "L", false, 0, "")
	bodyText(pdf, pos.Reading)
}

// houseRow は1ハウスの行を描く。
func houseRow(pdf *fpdf.Fpdf, house astro.HouseCusp) {
	pdf.SetFillColor(155, 125, 255)
	pdf.Ellipse(13, pdf.GetY()+3, 3, 3, 0, "F")

	pdf.SetXY(10, pdf.GetY())
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(6, 6, fmt.Sprintf("%d", house.House), "", 0, "C", false, 0, "")

	pdf.SetX(20)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(50, 50, 70)
	pdf.CellFormat(0, 6, fmt.Sprintf("House %d - %s", house.House, astro.TitleSign(house.Sign)), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// highlightBox はアクセントバー付きの強調ボックスを描く。
func highlightBox(pdf *fpdf.Fpdf, title, content string, colR, colG, colB int) {
	yStart := pdf.GetY()

	pdf.SetFillColor(colR, colG, colB)
	pdf.Rect(10, yStart, 190, 25, "F")

	pdf.SetFillColor(min255(colR+40), min255(colG+40), min255(colB+40))
	pdf.Rect(10, yStart, 4, 25, "F")

	pdf.SetXY(18, yStart+3)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(80, 60, 100)
	pdf.CellFormat(0, 5, title, "", 1, "L", false, 0, "")

	pdf.SetX(18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(60, 60, 80)
	pdf.MultiCell(175, 4.5, content, "", "L", false)

	pdf.SetY(yStart + 28)
}

func min255(v int) int {
	if v > 255 {
		return 255
	}
	return v
}
