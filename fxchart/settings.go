package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/mhschmieder/fxchart/pkg/capture"
	"github.com/mhschmieder/fxchart/pkg/palette"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	// Create tabs
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createChartTab(state),
		createPaletteTab(state),
		createMockTab(state),
	)

	// Create dialog with tabs as content
	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := capture.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
		currentDisplay = currentPort
	}

	portSelect := widget.NewSelect(portOptions, func(selected string) {
		// Selection handler - will be called on submit
	})
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
		},
		OnSubmit: func() {
			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}

				// Check if port changed and device is connected
				portChanged := state.cfg.Serial.Port != selectedPort
				wasConnected := state.device != nil && state.device.IsConnected()

				state.cfg.Serial.Port = selectedPort
				if err := state.cfg.Save(state.configPath); err != nil {
					dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
					return
				}

				// If port changed and device was connected, restart the capture chain
				if portChanged && wasConnected {
					// Gracefully close old chain
					closeCaptureChain(state.chain)
					state.chain = nil
					state.device = nil

					// Reconnect with new port
					handleConnect(state)
				}
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createChartTab creates the Chart configuration tab.
func createChartTab(state *appState) *container.TabItem {
	epsilonEntry := widget.NewEntry()
	epsilonEntry.SetText(fmt.Sprintf("%.6f", state.cfg.Chart.EpsilonThreshold))

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Chart.SampleRateKHz))

	delayEntry := widget.NewEntry()
	delayEntry.SetText(fmt.Sprintf("%.3f", state.cfg.Chart.DelayMs))

	edgeEntry := widget.NewEntry()
	edgeEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Chart.AnalysisTimeEdgeMs))

	divisorEntry := widget.NewEntry()
	divisorEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Chart.TrackerResolutionDivisor))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Epsilon Threshold (0=disabled)", Widget: epsilonEntry},
			{Text: "Sample Rate (kHz)", Widget: sampleRateEntry},
			{Text: "Delay (ms)", Widget: delayEntry},
			{Text: "Analysis Time Edge (ms)", Widget: edgeEntry},
			{Text: "Tracker Resolution Divisor", Widget: divisorEntry},
		},
		OnSubmit: func() {
			if eps, err := strconv.ParseFloat(epsilonEntry.Text, 64); err == nil && eps >= 0 {
				state.cfg.Chart.EpsilonThreshold = eps
			}
			if sr, err := strconv.ParseFloat(sampleRateEntry.Text, 64); err == nil && sr > 0 {
				state.cfg.Chart.SampleRateKHz = sr
			}
			if d, err := strconv.ParseFloat(delayEntry.Text, 64); err == nil {
				state.cfg.Chart.DelayMs = d
			}
			if edge, err := strconv.ParseFloat(edgeEntry.Text, 64); err == nil && edge > 0 {
				state.cfg.Chart.AnalysisTimeEdgeMs = edge
			}
			if div, err := strconv.ParseFloat(divisorEntry.Text, 64); err == nil && div > 0 {
				state.cfg.Chart.TrackerResolutionDivisor = div
			}
			if err := state.cfg.Save(state.configPath); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
			// Push the new tunables into the live panes
			applyChartConfig(state, state.cfg)
		},
	}

	return container.NewTabItem("Chart", form)
}

// createPaletteTab creates the Palette legend configuration tab.
func createPaletteTab(state *appState) *container.TabItem {
	colorsEntry := widget.NewEntry()
	colorsEntry.SetText(fmt.Sprintf("%d", state.cfg.Palette.Colors))

	rangeEntry := widget.NewEntry()
	rangeEntry.SetText(fmt.Sprintf("%.0f", state.cfg.Palette.DynamicRange))

	normalizeCheck := widget.NewCheck("", nil)
	normalizeCheck.SetChecked(state.cfg.Palette.NormalizeMaxToZero)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Colors", Widget: colorsEntry},
			{Text: "Dynamic Range (dB)", Widget: rangeEntry},
			{Text: "Normalize Max to Zero", Widget: normalizeCheck},
		},
		OnSubmit: func() {
			if n, err := strconv.Atoi(colorsEntry.Text); err == nil && n > 1 {
				state.cfg.Palette.Colors = n
			}
			if dr, err := strconv.ParseFloat(rangeEntry.Text, 64); err == nil && dr > 0 {
				state.cfg.Palette.DynamicRange = dr
			}
			state.cfg.Palette.NormalizeMaxToZero = normalizeCheck.Checked
			if err := state.cfg.Save(state.configPath); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
			state.legend.SetPalette(palette.Jet, state.cfg.Palette.Colors)
			state.legend.UpdateRange(-state.cfg.Palette.DynamicRange, 0)
		},
	}

	return container.NewTabItem("Palette", form)
}

// createMockTab creates the Mock device configuration tab.
func createMockTab(state *appState) *container.TabItem {
	noiseLevelEntry := widget.NewEntry()
	noiseLevelEntry.SetText(fmt.Sprintf("%.6f", state.cfg.Mock.NoiseLevel))

	peakTimeEntry := widget.NewEntry()
	peakTimeEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.PeakTimeMs))

	decayEntry := widget.NewEntry()
	decayEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Mock.DecayMs))

	sweepPeriodEntry := widget.NewEntry()
	sweepPeriodEntry.SetText(state.cfg.Mock.SweepPeriod.String())

	frameSamplesEntry := widget.NewEntry()
	frameSamplesEntry.SetText(fmt.Sprintf("%d", state.cfg.Mock.FrameSamples))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Noise Level", Widget: noiseLevelEntry},
			{Text: "Peak Time (ms)", Widget: peakTimeEntry},
			{Text: "Decay (ms)", Widget: decayEntry},
			{Text: "Sweep Period", Widget: sweepPeriodEntry},
			{Text: "Frame Samples", Widget: frameSamplesEntry},
		},
		OnSubmit: func() {
			if nl, err := strconv.ParseFloat(noiseLevelEntry.Text, 64); err == nil {
				state.cfg.Mock.NoiseLevel = nl
			}
			if pt, err := strconv.ParseFloat(peakTimeEntry.Text, 64); err == nil {
				state.cfg.Mock.PeakTimeMs = pt
			}
			if d, err := strconv.ParseFloat(decayEntry.Text, 64); err == nil && d > 0 {
				state.cfg.Mock.DecayMs = d
			}
			if sp, err := time.ParseDuration(sweepPeriodEntry.Text); err == nil {
				state.cfg.Mock.SweepPeriod = sp
			}
			if fs, err := strconv.Atoi(frameSamplesEntry.Text); err == nil && fs > 0 {
				state.cfg.Mock.FrameSamples = fs
			}
			if err := state.cfg.Save(state.configPath); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
