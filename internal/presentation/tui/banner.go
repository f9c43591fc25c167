package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the routeops banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                 _                        ", "#38bdf8"},
		{"  _ __ ___  _   _| |_ ___  ___  _ __  ___ ", "#22d3ee"},
		{" | '__/ _ \\| | | | __/ _ \\/ _ \\| '_ \\/ __|", "#2dd4bf"},
		{" | | | (_) | |_| | ||  __/ (_) | |_) \\__ \\", "#34d399"},
		{" |_|  \\___/ \\__,_|\\__\\___|\\___/| .__/|___/", "#4ade80"},
		{"                               |_|        ", "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}

// Success formats msg as a positive status line.
func Success(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✔ " + msg).Foreground(p.Color("#4ade80")).String()
}

// Failure formats msg as an error status line.
func Failure(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✘ " + msg).Foreground(p.Color("#f87171")).Bold().String()
}

// Warning formats msg as a warning status line.
func Warning(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("! " + msg).Foreground(p.Color("#facc15")).String()
}
