package astro

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/unit"
)

// Source は天体の視黄経を提供するインターフェース。
type Source interface {
	// EclipticLongitude はbodyの地心視黄経（度、[0,360)）を返す。
	// 視位置 = 幾何位置に光差・光行差・黄経章動を補正したもの。
	EclipticLongitude(body string, at AstronomicalTime) (float64, error)

	// Status はデータセットの読み込み状態を返す。ヘルスチェックで使う。
	Status() Status
}

// Status は天体暦データセットの読み込み状態を表す。
type Status struct {
	Loaded  bool     // 全惑星データが参照可能か
	Detail  string   // 表示用の状態文字列
	Missing []string // 縮退する天体ID
}

// chartPlanets は太陽・月を除くチャート対象惑星の順序付きリスト。
var chartPlanets = []string{"mercury", "venus", "mars", "jupiter", "saturn", "uranus", "neptune"}

// vsopIndex は天体IDからVSOP87データのインデックスへの対応。
var vsopIndex = map[string]int{
	"mercury": planetposition.Mercury,
	"venus":   planetposition.Venus,
	"mars":    planetposition.Mars,
	"jupiter": planetposition.Jupiter,
	"saturn":  planetposition.Saturn,
	"uranus":  planetposition.Uranus,
	"neptune": planetposition.Neptune,
}

// vsopNames はVSOP87インデックス順の天体名。ログ出力に使う。
var vsopNames = []string{"mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune"}

// VSOP87Source はVSOP87理論にもとづく天体暦。
// 惑星データファイルはプロセス起動時に一度だけ読み込み、以後は
// 読み取り専用で全リクエストに共有する。読み込みに失敗した天体は
// 縮退として記録され、参照時にエラーを返す。月は理論の級数を直接
// 計算するためデータファイルを必要としない。
type VSOP87Source struct {
	planets map[int]*planetposition.V87Planet
	missing []string
}

// NewVSOP87Source はdirのVSOP87データファイルを読み込む。
// ファイルが欠けていてもエラーにはせず、その天体を縮退として扱う。
func NewVSOP87Source(dir string) *VSOP87Source {
	s := &VSOP87Source{planets: make(map[int]*planetposition.V87Planet)}

	for ibody := planetposition.Mercury; ibody <= planetposition.Neptune; ibody++ {
		p, err := planetposition.LoadPlanetPath(ibody, dir)
		if err != nil {
			slog.Warn("failed to load ephemeris data",
				slog.String("body", vsopNames[ibody]),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.planets[ibody] = p
	}

	s.missing = s.computeMissing()
	if len(s.missing) > 0 {
		slog.Warn("ephemeris degraded at startup", slog.Any("missing_bodies", s.missing))
	} else {
		slog.Info("ephemeris loaded", slog.Int("planets", len(s.planets)))
	}
	return s
}

// computeMissing は縮退する天体IDを求める。
// 地球データは太陽と全惑星の地心換算に必要なため、欠けると月以外の
// 全天体が縮退する。
func (s *VSOP87Source) computeMissing() []string {
	if s.planets[planetposition.Earth] == nil {
		missing := []string{"sun"}
		return append(missing, chartPlanets...)
	}

	var missing []string
	for _, name := range chartPlanets {
		if s.planets[vsopIndex[name]] == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// Status はデータセットの読み込み状態を返す。
func (s *VSOP87Source) Status() Status {
	if len(s.missing) == 0 {
		return Status{Loaded: true, Detail: fmt.Sprintf("VSOP87 loaded (%d planets)", len(s.planets))}
	}
	return Status{
		Loaded:  false,
		Detail:  fmt.Sprintf("VSOP87 degraded (%d bodies unavailable)", len(s.missing)),
		Missing: append([]string(nil), s.missing...),
	}
}

// EclipticLongitude はbodyの地心視黄経（度）を返す。
func (s *VSOP87Source) EclipticLongitude(body string, at AstronomicalTime) (float64, error) {
	switch body {
	case "moon":
		return s.moonLongitude(at.JDTT), nil
	case "sun":
		return s.sunLongitude(at.JDTT)
	default:
		idx, ok := vsopIndex[body]
		if !ok {
			return 0, fmt.Errorf("unsupported body: %s", body)
		}
		return s.planetLongitude(idx, at.JDTT)
	}
}

// moonLongitude は月の視黄経を返す。
// 理論値は平均春分点基準のため、章動を加えて視位置にする。
func (s *VSOP87Source) moonLongitude(jde float64) float64 {
	lon, _, _ := moonposition.Position(jde)
	dpsi, _ := nutation.Nutation(jde)
	return unit.PMod(lon.Deg()+dpsi.Deg(), 360)
}

// sunLongitude は太陽の視黄経を返す。
// 地球の日心位置の反対方向に、光行差と章動を補正する。
func (s *VSOP87Source) sunLongitude(jde float64) (float64, error) {
	earth := s.planets[planetposition.Earth]
	if earth == nil {
		return 0, errors.New("earth ephemeris not loaded")
	}

	l0, _, r0 := earth.Position(jde)
	lon := l0.Deg() + 180

	// 光行差 -20.4898"/R と黄経章動
	lon -= 20.4898 / r0 / 3600
	dpsi, _ := nutation.Nutation(jde)
	lon += dpsi.Deg()

	return unit.PMod(lon, 360), nil
}

// planetLongitude は惑星の地心視黄経を返す。
// 日心位置から地心に換算し、光差の収束計算、年周光行差、章動を適用する。
func (s *VSOP87Source) planetLongitude(ibody int, jde float64) (float64, error) {
	earth := s.planets[planetposition.Earth]
	if earth == nil {
		return 0, errors.New("earth ephemeris not loaded")
	}
	p := s.planets[ibody]
	if p == nil {
		return 0, fmt.Errorf("%s ephemeris not loaded", vsopNames[ibody])
	}

	l0, b0, r0 := earth.Position(jde)
	sb0, cb0 := math.Sincos(b0.Rad())
	sl0, cl0 := math.Sincos(l0.Rad())
	x0 := r0 * cb0 * cl0
	y0 := r0 * cb0 * sl0
	z0 := r0 * sb0

	// 光差: 光が惑星から届くまでの時間ぶん惑星位置を遡って評価する
	var x, y, z float64
	tau := 0.0
	for i := 0; i < 5; i++ {
		l, b, r := p.Position(jde - tau)
		sb, cb := math.Sincos(b.Rad())
		sl, cl := math.Sincos(l.Rad())
		x = r*cb*cl - x0
		y = r*cb*sl - y0
		z = r*sb - z0
		delta := math.Sqrt(x*x + y*y + z*z)
		next := base.LightTime(delta)
		if math.Abs(next-tau) < 1e-9 {
			tau = next
			break
		}
		tau = next
	}

	lon := math.Atan2(y, x)
	lat := math.Atan2(z, math.Hypot(x, y))

	// 年周光行差。太陽真黄経・地球軌道離心率・近日点黄経から求める。
	t := base.J2000Century(jde)
	ecc := 0.016708634 - t*(0.000042037+t*0.0000001267)
	peri := (102.93735 + t*(1.71946+t*0.00046)) * math.Pi / 180
	theta := l0.Rad() + math.Pi
	const kappa = 20.49552 // 光行差定数（秒角）
	dlon := (-kappa*math.Cos(theta-lon) + ecc*kappa*math.Cos(peri-lon)) / math.Cos(lat) / 3600

	dpsi, _ := nutation.Nutation(jde)

	return unit.PMod(lon*180/math.Pi+dlon+dpsi.Deg(), 360), nil
}

// compile-time interface check
var _ Source = (*VSOP87Source)(nil)
