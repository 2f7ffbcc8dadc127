package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/mhschmieder/fxchart/pkg/capture"
	"github.com/mhschmieder/fxchart/pkg/chart"
	"github.com/mhschmieder/fxchart/pkg/config"
	"github.com/mhschmieder/fxchart/pkg/palette"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked capture device instead of serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.mhschmieder.fxchart")

	// Create main window
	window := application.NewWindow("Acoustic Response Charts")
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	// Build the chart panes
	impulsePane := chart.NewImpulsePane(cfg.Chart.StartTimeMs, cfg.Chart.EndTimeMs,
		cfg.Chart.SampleRateKHz, cfg.Chart.TrackerResolutionDivisor)
	measuredTrace := impulsePane.AddTrace("measured", color.RGBA{R: 255, G: 165, B: 0, A: 255})
	impulsePane.SetActiveSeries(measuredTrace)
	if err := impulsePane.SetEpsilon(cfg.Chart.EpsilonThreshold); err != nil {
		log.Fatalf("Bad epsilon threshold: %v", err)
	}
	if err := impulsePane.SetDelay(cfg.Chart.DelayMs); err != nil {
		log.Fatalf("Bad delay: %v", err)
	}
	impulsePane.SetAnalysisTimeEdge(cfg.Chart.AnalysisTimeEdgeMs)

	frequencyPane := chart.NewFrequencyPane(cfg.Chart.LowestFrequency,
		cfg.Chart.HighestFrequency, cfg.Chart.LimitFrequencyRange)
	spectrumSeries := frequencyPane.AddSeries("measured", color.RGBA{R: 100, G: 200, B: 255, A: 255})
	if err := frequencyPane.SetEpsilon(cfg.Chart.EpsilonThreshold); err != nil {
		log.Fatalf("Bad epsilon threshold: %v", err)
	}

	legend := palette.NewSPLLegend(cfg.Palette.NormalizeMaxToZero, 0.25)
	legend.SetPalette(palette.Jet, cfg.Palette.Colors)
	legend.UpdateRange(-cfg.Palette.DynamicRange, 0)

	// Create recorder assembling device samples into complete sweeps
	recorder := capture.NewRecorder(cfg.Mock.FrameSamples)

	// Create application state
	appState := &appState{
		cfg:            cfg,
		configPath:     *configFlag,
		recorder:       recorder,
		impulsePane:    impulsePane,
		frequencyPane:  frequencyPane,
		legend:         legend,
		measuredTrace:  measuredTrace,
		spectrumSeries: spectrumSeries,
		window:         window,
		useMock:        *mockFlag,
		paletteShown:   true,
	}

	// Create toolbar
	toolbar := createToolbar(appState)

	// Layout: impulse response above the derived spectrum, legend on the
	// right, toolbar on top.
	panes := container.NewVSplit(impulsePane, frequencyPane)
	content := container.NewBorder(
		toolbar,
		nil,
		nil,
		legend,
		panes,
	)

	window.SetMainMenu(createMainMenu(appState))
	window.SetContent(content)

	// Hot-reload tunable chart parameters when the config file changes.
	watcher, err := config.Watch(*configFlag, func(next *config.Config) {
		fyne.Do(func() {
			applyChartConfig(appState, next)
		})
	})
	if err != nil {
		log.Printf("Config watch disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	window.ShowAndRun()
}

// captureChain tracks the components of the capture chain for graceful shutdown.
type captureChain struct {
	device            capture.Device
	samples           <-chan capture.Sample
	recorderGoroutine chan struct{} // Closed when recorder goroutine exits
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string

	recorder       *capture.Recorder
	impulsePane    *chart.ImpulsePane
	frequencyPane  *chart.FrequencyPane
	legend         *palette.Legend
	measuredTrace  int
	spectrumSeries int

	window       fyne.Window
	connectBtn   *widget.Button
	useMock      bool
	device       capture.Device
	chain        *captureChain
	paletteShown bool

	// Throttling for pane updates
	lastUpdateTime time.Time
	updateMu       sync.Mutex
}

// createToolbar creates the application toolbar with Connect and Settings buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		nil, // right
		nil, // center (spacer)
	)
}

// createMainMenu builds the chart menus: grid resolution, frequency zoom,
// and vertical grid spacing.
func createMainMenu(state *appState) *fyne.MainMenu {
	gridMenu := chart.GridResolutionMenu(func(g chart.GridResolution) {
		state.impulsePane.SetGridResolution(g)
		state.frequencyPane.SetGridResolution(g)
	})

	zoomMenu := chart.FrequencyZoomMenu(func(z chart.FrequencyZoom) {
		state.frequencyPane.SetZoom(z)
	})

	spacingItems := make([]*fyne.MenuItem, 0, len(chart.VerticalGridSpacings()))
	for _, spacing := range chart.VerticalGridSpacings() {
		spacingItems = append(spacingItems, fyne.NewMenuItem(
			fmt.Sprintf("%g dB", spacing), func() {
				state.frequencyPane.SetVerticalGridSpacing(spacing)
			}))
	}
	spacingMenu := fyne.NewMenu("Grid Spacing", spacingItems...)

	paletteToggle := fyne.NewMenuItem("Toggle Palette", func() {
		state.paletteShown = !state.paletteShown
		state.legend.ShowPalette(state.paletteShown)
	})
	resetRange := fyne.NewMenuItem("Reset Magnitude Range", func() {
		state.frequencyPane.ResetMagnitudeRange()
	})
	viewMenu := fyne.NewMenu("View", paletteToggle, resetRange)

	return fyne.NewMainMenu(gridMenu, zoomMenu, spacingMenu, viewMenu)
}

// applyChartConfig pushes reloaded tunables into the live panes.
func applyChartConfig(state *appState, next *config.Config) {
	state.cfg = next
	if err := state.impulsePane.SetEpsilon(next.Chart.EpsilonThreshold); err != nil {
		log.Printf("Ignoring reloaded epsilon: %v", err)
	}
	if err := state.frequencyPane.SetEpsilon(next.Chart.EpsilonThreshold); err != nil {
		log.Printf("Ignoring reloaded epsilon: %v", err)
	}
	if err := state.impulsePane.SetDelay(next.Chart.DelayMs); err != nil {
		log.Printf("Ignoring reloaded delay: %v", err)
	}
	state.impulsePane.SetAnalysisTimeEdge(next.Chart.AnalysisTimeEdgeMs)
	state.legend.UpdateRange(-next.Palette.DynamicRange, 0)
}

// closeCaptureChain gracefully closes the capture chain, waiting for the
// recorder goroutine to drain.
func closeCaptureChain(chain *captureChain) {
	if chain == nil {
		return
	}

	// Close device - this will close the samples channel
	if chain.device != nil {
		chain.device.Close()
	}

	// Wait for recorder goroutine to finish
	if chain.recorderGoroutine != nil {
		<-chain.recorderGoroutine
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		// Disconnect - gracefully close capture chain
		closeCaptureChain(state.chain)
		state.chain = nil
		state.device = nil
		if state.useMock {
			log.Println("Disconnected from mocked device")
		} else {
			log.Println("Disconnected from serial port")
		}
		return
	}

	// Connect
	var device capture.Device
	if state.useMock {
		device = capture.NewMock(&state.cfg.Mock, state.cfg.Chart.SampleRateKHz)
		log.Println("Using mocked device")
	} else {
		device = capture.New(state.cfg.Serial.Port, state.cfg.Serial.BaudRate,
			capture.DefaultBufferSize)
	}

	if err := device.Connect(); err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to connect to mocked device: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
		}
		return
	}
	state.device = device
	if state.useMock {
		log.Println("Connected to mocked device")
	} else {
		log.Printf("Connected to serial port: %s", state.cfg.Serial.Port)
	}

	// Reset recorder shutdown flag for new chain
	state.recorder.ResetShutdown()

	// Register callback to push completed sweeps into the panes.
	// Throttle updates to ~60 FPS to ensure smooth UI.
	const updateInterval = 16 * time.Millisecond
	state.recorder.OnUpdate(func(amplitudes []float64) {
		state.updateMu.Lock()
		now := time.Now()
		tooSoon := now.Sub(state.lastUpdateTime) < updateInterval
		if !tooSoon {
			state.lastUpdateTime = now
		}
		state.updateMu.Unlock()
		if tooSoon {
			return
		}

		// Update panes on main thread
		fyne.Do(func() {
			if err := state.impulsePane.SetAmplitudes(state.measuredTrace, amplitudes); err != nil {
				log.Printf("Impulse update failed: %v", err)
				return
			}
			if err := state.frequencyPane.SetImpulseResponse(state.spectrumSeries,
				amplitudes, state.cfg.Chart.SampleRateKHz); err != nil {
				log.Printf("Spectrum update failed: %v", err)
				return
			}
			magMin, magMax := state.frequencyPane.MagnitudeRange()
			state.legend.UpdateRange(magMin, magMax)
		})
	})

	// Process samples through the recorder
	recorderDone := make(chan struct{})
	samples := device.Samples()
	go func() {
		defer close(recorderDone)
		state.recorder.ProcessSamples(samples)
	}()

	// Store chain for graceful shutdown
	state.chain = &captureChain{
		device:            device,
		samples:           samples,
		recorderGoroutine: recorderDone,
	}
}
