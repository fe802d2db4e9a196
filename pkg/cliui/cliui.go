// Package cliui provides reusable terminal UI helpers (step indicators,
// styled key/value output, markdown rendering) for augmem CLI commands.
//
// Hook commands never use this package. Their stdout belongs to the Augment
// editor, so anything human-facing stays on the interactive commands.
package cliui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	StepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	KeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	ValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	NameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Step runs fn while an animated spinner plays on w, then replaces the
// spinner line with a pass or fail mark and the elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	var mu sync.Mutex
	done := make(chan struct{})
	go spin(w, msg, done, &mu)

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	close(done)

	mark := SuccessMark
	if err != nil {
		mark = FailMark
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(w, "\r  %s %s %s\n", mark, msg, StepStyle.Render("("+formatDuration(elapsed)+")"))

	return err
}

// spin redraws the spinner frame every 80ms until done closes. The mutex
// keeps frame redraws from interleaving with the final result line.
func spin(w io.Writer, msg string, done <-chan struct{}, mu *sync.Mutex) {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		mu.Lock()
		fmt.Fprintf(w, "\r  %s %s", spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]), msg)
		mu.Unlock()

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// RenderMarkdown renders a markdown block for terminal display. On failure
// the original content comes back alongside the error so callers can fall
// back to plain output.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}

	return rendered, nil
}
