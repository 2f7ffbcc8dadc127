package chart

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"

	"github.com/mhschmieder/fxchart/pkg/axis"
)

// fracTick is an axis tick projected onto [0, 1].
type fracTick struct {
	frac  float64
	label string
	minor bool
}

// snapSeries is one drawable series with coordinates projected onto [0, 1].
type snapSeries struct {
	color color.RGBA
	xs    []float64
	ys    []float64
}

// snapshot is everything the renderer needs, copied under the state lock so
// drawing never races with data updates.
type snapshot struct {
	xTicks, yTicks []fracTick
	xLabel, yLabel string
	grid           GridResolution
	series         []snapSeries

	trackerFrac    float64
	trackerLabel   string
	trackerVisible bool
}

func (s *State) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		xLabel: s.xAxis.Label(),
		yLabel: s.yAxis.Label(),
		grid:   s.grid,
	}

	for _, t := range s.xAxis.Ticks() {
		snap.xTicks = append(snap.xTicks, fracTick{
			frac:  s.xAxis.Normalize(t.Value),
			label: t.Label,
			minor: t.Minor,
		})
	}
	for _, t := range s.yAxis.Ticks() {
		snap.yTicks = append(snap.yTicks, fracTick{
			frac:  s.yAxis.Normalize(t.Value),
			label: t.Label,
			minor: t.Minor,
		})
	}

	for _, ser := range s.series {
		if !ser.visible || !ser.valid {
			continue
		}
		ss := snapSeries{
			color: ser.color,
			xs:    make([]float64, len(ser.trace)),
			ys:    make([]float64, len(ser.trace)),
		}
		for i, p := range ser.trace {
			ss.xs[i] = s.xAxis.Normalize(p.X)
			ss.ys[i] = s.yAxis.Normalize(p.Y)
		}
		snap.series = append(snap.series, ss)
	}

	if s.trackerVisible && s.trackerValid {
		snap.trackerVisible = true
		snap.trackerFrac = s.xAxis.Normalize(s.trackerValue)
		if s.trackerHasY {
			snap.trackerLabel = FormatDataPoint(s.xAxis.Label(), s.trackerValue,
				s.yAxis.Label(), s.trackerY)
		} else {
			snap.trackerLabel = fmt.Sprintf("%s = %s", s.xAxis.Label(),
				axis.FormatTickValue(s.trackerValue))
		}
	}

	return snap
}

// FormatDataPoint formats a tracked data point for on-chart readouts.
func FormatDataPoint(xLabel string, x float64, yLabel string, y float64) string {
	return fmt.Sprintf("%s = %s, %s = %s",
		xLabel, axis.FormatTickValue(x), yLabel, axis.FormatTickValue(y))
}

// paneRenderer renders a chart pane: background, axis grid with labels, the
// reduced series polylines, and the tracker. Shared by all pane widgets.
type paneRenderer struct {
	widget fyne.Widget
	state  *State

	background *canvas.Rectangle
	objects    []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

func newPaneRenderer(w fyne.Widget, state *State) *paneRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255})
	return &paneRenderer{
		widget:     w,
		state:      state,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}

// MinSize returns the minimum size of the widget.
func (r *paneRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *paneRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.lastSize.Width != size.Width || r.lastSize.Height != size.Height {
		r.lastSize = size
		// Size changed, redraw with the new plot dimensions.
		r.widget.Refresh()
	}
}

// Refresh rebuilds the canvas objects from a fresh state snapshot.
func (r *paneRenderer) Refresh() {
	snap := r.state.snapshot()

	size := r.widget.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	// Clear old objects (but keep background)
	r.objects = []fyne.CanvasObject{r.background}

	marginLeft := float32(60.0)
	marginRight := float32(20.0)
	marginTop := float32(20.0)
	marginBottom := float32(40.0)

	plotWidth := size.Width - marginLeft - marginRight
	plotHeight := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop

	r.drawGrid(plotX, plotY, plotWidth, plotHeight, snap)
	for _, ser := range snap.series {
		r.drawSeries(plotX, plotY, plotWidth, plotHeight, ser)
	}
	if snap.trackerVisible {
		r.drawTracker(plotX, plotY, plotWidth, plotHeight, snap)
	}

	canvas.Refresh(r.widget)
}

// mapX and mapY project a normalized coordinate into the plot rectangle,
// clamped so sentinel points outside the window stay on the frame.
func mapX(plotX, plotWidth float32, frac float64) float32 {
	return plotX + math32.Min(math32.Max(float32(frac), 0), 1)*plotWidth
}

func mapY(plotY, plotHeight float32, frac float64) float32 {
	return plotY + plotHeight - math32.Min(math32.Max(float32(frac), 0), 1)*plotHeight
}

func (r *paneRenderer) drawGrid(plotX, plotY, plotWidth, plotHeight float32, snap snapshot) {
	gridColor := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	minorColor := color.RGBA{R: 30, G: 30, B: 30, A: 255}
	labelColor := color.RGBA{R: 150, G: 150, B: 150, A: 255}

	for _, t := range snap.xTicks {
		if !snap.grid.showsTick(t.minor) {
			continue
		}
		x := mapX(plotX, plotWidth, t.frac)

		c := gridColor
		if t.minor {
			c = minorColor
		}
		line := canvas.NewLine(c)
		line.Position1 = fyne.NewPos(x, plotY)
		line.Position2 = fyne.NewPos(x, plotY+plotHeight)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		if t.minor {
			continue
		}
		text := canvas.NewText(t.label, labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, plotY+plotHeight+5))
		r.objects = append(r.objects, text)
	}

	for _, t := range snap.yTicks {
		if !snap.grid.showsTick(t.minor) {
			continue
		}
		y := mapY(plotY, plotHeight, t.frac)

		c := gridColor
		if t.minor {
			c = minorColor
		}
		line := canvas.NewLine(c)
		line.Position1 = fyne.NewPos(plotX, y)
		line.Position2 = fyne.NewPos(plotX+plotWidth, y)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		if t.minor {
			continue
		}
		text := canvas.NewText(t.label, labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(plotX-5, y-6))
		r.objects = append(r.objects, text)
	}

	// Axis names in the corners of the plot area.
	xName := canvas.NewText(snap.xLabel, labelColor)
	xName.TextSize = 11
	xName.Alignment = fyne.TextAlignTrailing
	xName.Move(fyne.NewPos(plotX+plotWidth-5, plotY+plotHeight-16))
	r.objects = append(r.objects, xName)

	yName := canvas.NewText(snap.yLabel, labelColor)
	yName.TextSize = 11
	yName.Move(fyne.NewPos(plotX+5, plotY+2))
	r.objects = append(r.objects, yName)
}

func (r *paneRenderer) drawSeries(plotX, plotY, plotWidth, plotHeight float32, ser snapSeries) {
	if len(ser.xs) < 2 {
		return
	}

	points := make([]fyne.Position, len(ser.xs))
	for i := range ser.xs {
		points[i] = fyne.NewPos(
			mapX(plotX, plotWidth, ser.xs[i]),
			mapY(plotY, plotHeight, ser.ys[i]),
		)
	}

	// Draw connected line segments
	for i := 0; i < len(points)-1; i++ {
		line := canvas.NewLine(ser.color)
		line.Position1 = points[i]
		line.Position2 = points[i+1]
		line.StrokeWidth = 1.5
		r.objects = append(r.objects, line)
	}
}

func (r *paneRenderer) drawTracker(plotX, plotY, plotWidth, plotHeight float32, snap snapshot) {
	trackerColor := color.RGBA{R: 255, G: 165, B: 0, A: 255}

	x := mapX(plotX, plotWidth, snap.trackerFrac)
	line := canvas.NewLine(trackerColor)
	line.Position1 = fyne.NewPos(x, plotY)
	line.Position2 = fyne.NewPos(x, plotY+plotHeight)
	line.StrokeWidth = 1
	r.objects = append(r.objects, line)

	text := canvas.NewText(snap.trackerLabel, trackerColor)
	text.TextSize = 12
	text.Alignment = fyne.TextAlignCenter
	text.Move(fyne.NewPos(x-60, plotY+4))
	r.objects = append(r.objects, text)
}

// Objects returns all canvas objects for rendering.
func (r *paneRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *paneRenderer) Destroy() {
	// Cleanup handled by Fyne
}
