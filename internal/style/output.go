package style

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

var (
	// Color palette
	PrimaryTextColor = lipgloss.Color("#E4E4E7")
	ErrorColor       = lipgloss.Color("#FF6B6B")
	ErrorBgColor     = lipgloss.Color("#3D2020")
	WarningColor     = lipgloss.Color("#FFA726")
	SuccessColor     = lipgloss.Color("#66BB6A")
	InfoColor        = lipgloss.Color("#42A5F5")
	MutedColor       = lipgloss.Color("#6C757D")
	AccentColor      = lipgloss.Color("#7C3AED")
	CodeColor        = lipgloss.Color("#D4D4D4")

	// Base styles
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(MutedColor)

	ResultStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)
)

// PrintJSON outputs data as formatted JSON
func PrintJSON(w io.Writer, data interface{}) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding JSON: %v\n", err)
	}
}

// PrintYAML outputs data as YAML
func PrintYAML(w io.Writer, data interface{}) {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding YAML: %v\n", err)
	}
	encoder.Close()
}

func SuccessIcon() string {
	return SuccessStyle.Render("✓")
}

func ErrorIcon() string {
	return ErrorStyle.Render("✗")
}

func InfoIcon() string {
	return InfoStyle.Render("ℹ")
}

// Success prints a success message with styling
func Success(w io.Writer, message string) {
	msg := lipgloss.NewStyle().Foreground(SuccessColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", SuccessIcon(), msg)
}

// Error prints an error message with styling
func Error(w io.Writer, message string) {
	msg := lipgloss.NewStyle().Foreground(ErrorColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", ErrorIcon(), msg)
}

// Info prints an info message with styling
func Info(w io.Writer, message string) {
	msg := lipgloss.NewStyle().Foreground(InfoColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", InfoIcon(), msg)
}

// Result prints a labelled calculation result
func Result(w io.Writer, expression string, value float64) {
	fmt.Fprintf(w, "%s %s %s\n", SuccessIcon(), MutedStyle.Render(expression+" ="), ResultStyle.Render(fmt.Sprintf("%g", value)))
}
