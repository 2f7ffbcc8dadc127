package palette

import (
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/mhschmieder/fxchart/pkg/axis"
)

// Legend default geometry: SPL legends span 7 divisions of 6 dB normalized
// to a 0 dB maximum; percent legends span [0, 1] in tenths.
const (
	splDivDefault     = 6.0
	splDivCount       = 7
	percentDivDefault = 0.1
	percentDivCount   = 10
)

// Legend is a Fyne widget pairing a color-palette column with a labeled
// value axis and a title. It is agnostic toward the palette itself, which
// need not be monotonic in hue; the legend only maintains the title, the
// dynamic range, and the tick labels.
type Legend struct {
	widget.BaseWidget

	mu sync.RWMutex

	title    string
	scale    Scale
	gradient Gradient
	colors   int

	magMin, magMax float64
	div            float64
	dynamicRange   float64

	// normalizeMaxToZero pins the top of the displayed range to zero,
	// showing the dynamic range as negative offsets from the maximum.
	normalizeMaxToZero bool
	aspectRatio        float64
	paletteVisible     bool
}

// NewSPLLegend returns a legend for SPL color maps using the jet palette.
func NewSPLLegend(normalizeMaxToZero bool, aspectRatio float64) *Legend {
	return newLegend("SPL (dB)", SPLScale{}, Jet, 256,
		splDivDefault, splDivCount, normalizeMaxToZero, aspectRatio)
}

// NewPercentLegend returns a legend for ratio color maps, e.g. coverage or
// coherence displays.
func NewPercentLegend(title string, normalizeMaxToZero bool, aspectRatio float64) *Legend {
	return newLegend(title, PercentScale{}, Jet, 256,
		percentDivDefault, percentDivCount, normalizeMaxToZero, aspectRatio)
}

func newLegend(title string, scale Scale, gradient Gradient, colors int,
	div float64, divCount int, normalizeMaxToZero bool, aspectRatio float64) *Legend {
	dynamicRange := div * float64(divCount)
	magMax := 0.0
	if _, ok := scale.(PercentScale); ok {
		magMax = 1.0
	}

	l := &Legend{
		title:              title,
		scale:              scale,
		gradient:           gradient,
		colors:             colors,
		magMin:             magMax - dynamicRange,
		magMax:             magMax,
		div:                div,
		dynamicRange:       dynamicRange,
		normalizeMaxToZero: normalizeMaxToZero,
		aspectRatio:        aspectRatio,
		paletteVisible:     true,
	}
	l.ExtendBaseWidget(l)
	return l
}

// UpdateRange stores a new dynamic range, rationalizes the tick division to
// match it, and refreshes the legend. Bounds are rounded to whole units so
// that tick labels stay clean.
func (l *Legend) UpdateRange(minimum, maximum float64) {
	l.mu.Lock()
	l.magMin = math.Round(math.Min(minimum, maximum))
	l.magMax = math.Round(math.Max(minimum, maximum))
	l.dynamicRange = math.Abs(l.magMax - l.magMin)
	l.div = l.scale.RationalizeDiv(l.dynamicRange)
	l.mu.Unlock()

	l.Refresh()
}

// ShowPalette switches the legend between its palette and a blank pane, so
// that exported snapshots don't leave a hole when no data is applicable.
func (l *Legend) ShowPalette(visible bool) {
	l.mu.Lock()
	l.paletteVisible = visible
	l.mu.Unlock()

	l.Refresh()
}

// SetPalette replaces the gradient and the color count.
func (l *Legend) SetPalette(gradient Gradient, colors int) {
	l.mu.Lock()
	l.gradient = gradient
	l.colors = colors
	l.mu.Unlock()

	l.Refresh()
}

// Axis returns the value axis for the current dynamic range.
func (l *Legend) Axis() *axis.Linear {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.axisLocked()
}

func (l *Legend) axisLocked() *axis.Linear {
	if l.normalizeMaxToZero {
		return l.scale.AxisFor(-l.dynamicRange, 0, l.div)
	}
	return l.scale.AxisFor(l.magMin, l.magMax, l.div)
}

// DynamicRange returns the displayed min/max pair.
func (l *Legend) DynamicRange() (float64, float64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.magMin, l.magMax
}

// Div returns the current tick division.
func (l *Legend) Div() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.div
}

// CreateRenderer creates the Fyne renderer for the legend.
func (l *Legend) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255})
	return &legendRenderer{
		legend:     l,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}

// legendRenderer lays the title above the palette column and the tick
// labels beside it.
type legendRenderer struct {
	legend     *Legend
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *legendRenderer) MinSize() fyne.Size {
	return fyne.NewSize(120, 240)
}

func (r *legendRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *legendRenderer) Refresh() {
	r.legend.mu.RLock()
	title := r.legend.title
	gradient := r.legend.gradient
	colors := r.legend.colors
	visible := r.legend.paletteVisible
	aspectRatio := r.legend.aspectRatio
	valueAxis := r.legend.axisLocked()
	r.legend.mu.RUnlock()

	size := r.legend.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.background}
	if !visible {
		canvas.Refresh(r.legend)
		return
	}

	const (
		titleHeight = 28
		labelWidth  = 52
		pad         = 6
	)

	titleText := canvas.NewText(title, color.RGBA{R: 220, G: 220, B: 220, A: 255})
	titleText.TextSize = 16
	titleText.TextStyle = fyne.TextStyle{Bold: true}
	titleText.Alignment = fyne.TextAlignCenter
	titleText.Move(fyne.NewPos(size.Width/2-40, pad))
	r.objects = append(r.objects, titleText)

	columnHeight := size.Height - titleHeight - 2*pad
	columnWidth := columnHeight * float32(aspectRatio)
	if max := size.Width - labelWidth - 2*pad; columnWidth > max {
		columnWidth = max
	}
	columnX := float32(labelWidth + pad)
	columnY := float32(titleHeight + pad)

	img := canvas.NewImageFromImage(gradient.Image(colors))
	img.ScaleMode = canvas.ImageScalePixels
	img.Move(fyne.NewPos(columnX, columnY))
	img.Resize(fyne.NewSize(columnWidth, columnHeight))
	r.objects = append(r.objects, img)

	for _, tick := range valueAxis.Ticks() {
		if tick.Minor {
			continue
		}
		// Highest value at the top of the column.
		frac := float32(valueAxis.Normalize(tick.Value))
		y := columnY + (1-frac)*columnHeight

		mark := canvas.NewLine(color.RGBA{R: 150, G: 150, B: 150, A: 255})
		mark.Position1 = fyne.NewPos(columnX-4, y)
		mark.Position2 = fyne.NewPos(columnX, y)
		mark.StrokeWidth = 1
		r.objects = append(r.objects, mark)

		label := canvas.NewText(tick.Label, color.RGBA{R: 150, G: 150, B: 150, A: 255})
		label.TextSize = 10
		label.Alignment = fyne.TextAlignTrailing
		label.Move(fyne.NewPos(columnX-8, y-6))
		r.objects = append(r.objects, label)
	}

	canvas.Refresh(r.legend)
}

func (r *legendRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *legendRenderer) Destroy() {}
