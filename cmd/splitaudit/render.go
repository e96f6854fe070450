package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"splitaudit/internal/report"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + kindLabel(kind) + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize {
		return kindColor(kind).Sprint(line)
	}
	return line
}

func kindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func kindColor(kind statusKind) *color.Color {
	switch kind {
	case statusOK:
		return color.New(color.FgGreen)
	case statusWarn:
		return color.New(color.FgYellow)
	case statusError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// riskColor maps a risk level to its terminal style.
func riskColor(level report.RiskLevel) *color.Color {
	switch level {
	case report.RiskNone:
		return color.New(color.FgGreen, color.Bold)
	case report.RiskLow:
		return color.New(color.FgCyan, color.Bold)
	case report.RiskMedium:
		return color.New(color.FgYellow, color.Bold)
	case report.RiskHigh:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgHiRed, color.Bold)
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	header := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len(header))
	if colorize {
		blue := color.New(color.FgBlue)
		header = blue.Sprint(header)
		rule = blue.Sprint(rule)
	}
	return []string{header, rule}
}

func shouldColorize(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return false
}
