// Package charts renders resampled rate series as PNG line charts.
package charts

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/SscSPs/currency_exchange_tracker/internal/core/domain"
	gocharts "github.com/vicanso/go-charts/v2"
)

// DefaultCacheTTL is how long a rendered chart is served from memory.
const DefaultCacheTTL = 60 * time.Second

const (
	chartWidth  = 1000
	chartHeight = 600
)

type cacheEntry struct {
	createdAt time.Time
	image     []byte
}

// Renderer draws line charts and keeps recent images in memory.
type Renderer struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewRenderer creates a Renderer. A ttl of zero or less disables caching.
func NewRenderer(ttl time.Duration) *Renderer {
	return &Renderer{ttl: ttl, now: time.Now, cache: make(map[string]cacheEntry)}
}

// Title is the chart heading for a pair at a cadence.
func Title(from, to string, c domain.Cadence) string {
	return fmt.Sprintf("%s/%s • %s", from, to, c)
}

// CacheKey identifies a chart by its query.
func CacheKey(q domain.RateQuery) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s|%s", q.From, q.To, q.Year,
		q.Start.Format(time.DateOnly), q.End.Format(time.DateOnly), q.Cadence)
}

// Render returns the PNG for key, drawing it from t when it is not cached.
// Each column of t becomes one line; the first uses the left axis and the
// second the right one, since rates of different currencies rarely share a scale.
func (r *Renderer) Render(key, title string, t domain.RateTable) ([]byte, error) {
	if img, ok := r.get(key); ok {
		return img, nil
	}
	img, err := draw(title, t)
	if err != nil {
		return nil, err
	}
	r.set(key, img)
	out := make([]byte, len(img))
	copy(out, img)
	return out, nil
}

func draw(title string, t domain.RateTable) ([]byte, error) {
	if t.IsEmpty() || len(t.Codes) == 0 {
		return nil, fmt.Errorf("%w: nothing to plot", apperrors.ErrInsufficientData)
	}

	xLabels := make([]string, len(t.Dates))
	for i, d := range t.Dates {
		xLabels[i] = d.Format(time.DateOnly)
	}

	values := make([][]float64, 0, len(t.Codes))
	axes := make([]gocharts.YAxisOption, 0, 2)
	for i, code := range t.Codes {
		col, err := t.Column(code)
		if err != nil {
			return nil, err
		}
		line, ok := carryForward(col)
		if !ok {
			return nil, fmt.Errorf("%w: no values for %s", apperrors.ErrInsufficientData, code)
		}
		values = append(values, line)
		if i < 2 {
			yMin, yMax := paddedRange(line)
			opt := gocharts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}
			if i == 1 {
				opt.Position = gocharts.PositionRight
			}
			axes = append(axes, opt)
		}
	}

	seriesList := gocharts.NewSeriesListDataFromValues(values, gocharts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = t.Codes[i]
		seriesList[i].AxisIndex = i % 2
	}

	painter, err := gocharts.Render(gocharts.ChartOption{SeriesList: seriesList},
		gocharts.TitleTextOptionFunc(title),
		gocharts.XAxisOptionFunc(gocharts.XAxisOption{Data: xLabels, BoundaryGap: gocharts.FalseFlag(), SplitNumber: splitNumber(len(xLabels))}),
		gocharts.YAxisOptionFunc(axes...),
		gocharts.LegendOptionFunc(gocharts.LegendOption{Data: t.Codes}),
		gocharts.ThemeOptionFunc(gocharts.ThemeLight),
		gocharts.WidthOptionFunc(chartWidth),
		gocharts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return painter.Bytes()
}

// carryForward replaces NaNs with the previous value, and leading NaNs with
// the first defined one. It reports false when the column has no values.
func carryForward(col []float64) ([]float64, bool) {
	out := make([]float64, len(col))
	first := math.NaN()
	for _, v := range col {
		if !math.IsNaN(v) {
			first = v
			break
		}
	}
	if math.IsNaN(first) {
		return nil, false
	}
	prev := first
	for i, v := range col {
		if math.IsNaN(v) {
			v = prev
		}
		out[i] = v
		prev = v
	}
	return out, true
}

func paddedRange(values []float64) (float64, float64) {
	mn, mx := values[0], values[0]
	for _, v := range values[1:] {
		mn = math.Min(mn, v)
		mx = math.Max(mx, v)
	}
	pad := (mx - mn) * 0.05
	if pad < math.Abs(mx)*0.002 {
		pad = math.Abs(mx) * 0.002
	}
	if pad == 0 {
		pad = 1
	}
	return mn - pad, mx + pad
}

func splitNumber(points int) int {
	switch {
	case points <= 8:
		return points
	case points <= 60:
		return 10
	default:
		return 12
	}
}

func (r *Renderer) get(key string) ([]byte, bool) {
	if r.ttl <= 0 {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.cache[key]
	if !ok {
		return nil, false
	}
	if r.now().After(entry.createdAt.Add(r.ttl)) {
		delete(r.cache, key)
		return nil, false
	}
	img := make([]byte, len(entry.image))
	copy(img, entry.image)
	return img, true
}

func (r *Renderer) set(key string, img []byte) {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	r.cache[key] = cacheEntry{createdAt: r.now(), image: img}
	r.mu.Unlock()
}
