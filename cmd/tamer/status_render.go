package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tamer/internal/ipc"
	"tamer/internal/scheduler"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var titleCaser = cases.Title(language.English)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
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

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", titleCaser.String(strings.TrimSpace(title)))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func daemonStatusLines(status *ipc.StatusResponse, colorize bool) []string {
	lines := make([]string, 0, 5)
	if status.Running {
		lines = append(lines, renderStatusLine("Daemon", statusOK, fmt.Sprintf("Running (pid %d)", status.PID), colorize))
	} else {
		lines = append(lines, renderStatusLine("Daemon", statusWarn, "Not running (run `tamer start`)", colorize))
	}
	lines = append(lines, renderStatusLine("Rule file", statusInfo, status.RulesPath, colorize))
	if status.LogPath != "" {
		lines = append(lines, renderStatusLine("Log file", statusInfo, status.LogPath, colorize))
	}
	return lines
}

func schedulerStatusLines(status ipc.SchedulerStatus, colorize bool) []string {
	lines := make([]string, 0, 6)
	switch status.State {
	case string(scheduler.StateReady):
		detail := fmt.Sprintf("%d rule(s), digest %08x", status.RuleCount, status.Digest)
		lines = append(lines, renderStatusLine("Rules", statusOK, detail, colorize))
	default:
		lines = append(lines, renderStatusLine("Rules", statusWarn, "No valid rule set loaded", colorize))
	}
	interval := time.Duration(status.IntervalMillis) * time.Millisecond
	lines = append(lines, renderStatusLine("Interval", statusInfo, interval.String(), colorize))
	lines = append(lines, renderStatusLine("Cycles", statusInfo, fmt.Sprintf("%d", status.Cycles), colorize))
	if !status.LastCycle.IsZero() {
		summary := fmt.Sprintf("matched %d, applied %d, already ok %d, skipped %d",
			status.Matched, status.Applied, status.AlreadyOK, status.Skipped)
		lines = append(lines, renderStatusLine("Last pass", statusInfo, summary, colorize))
	}
	if status.LastError != "" {
		lines = append(lines, renderStatusLine("Last error", statusError, status.LastError, colorize))
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
