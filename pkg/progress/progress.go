/*
Package progress draws a single line progress indicator on a terminal while
the plan command evaluates rules against files.

	p := progress.New(progress.Config{Style: progress.StyleBar, Writer: os.Stderr}, log)
	p.Start("Evaluating rules")
	p.Update(progress.Status{Current: 10, Total: 200, CurrentItem: "src/App.kt"})
	p.Complete("Evaluated 200 files")

Updates are throttled to RefreshRate; the final update of a run is always drawn.
*/
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/sonemaro/lintconf/pkg/logger"
)

// Style represents the type of progress visualization
type Style string

const (
	// StyleBar shows a progress bar with percentage
	StyleBar Style = "bar"

	// StyleSimple shows a counter only
	StyleSimple Style = "simple"
)

// Config holds the configuration for progress visualization
type Config struct {
	Style Style

	// Width is the width of the bar (0 = derived from the terminal)
	Width int

	NoColor bool

	// RefreshRate is the minimum interval between two draws
	RefreshRate time.Duration

	// Writer receives the output. Defaults to os.Stderr.
	Writer io.Writer

	// HideAfterComplete clears the line instead of leaving the final message
	HideAfterComplete bool
}

// Status represents the current progress state
type Status struct {
	Current     int64
	Total       int64
	CurrentItem string
}

// Progress defines the interface for progress visualization
type Progress interface {
	Start(message string)
	Update(status Status)
	Complete(message string)
	Error(message string)
	Stop()

	// IsSupportedTerminal reports whether the writer is an interactive terminal
	IsSupportedTerminal() bool
}

type progress struct {
	config   Config
	log      logger.Logger
	writer   io.Writer
	width    int
	ok       *color.Color
	fail     *color.Color
	bar      *color.Color
	mu       sync.Mutex
	status   Status
	message  string
	active   bool
	lastDraw time.Time
}

// New creates a new progress visualization instance
func New(config Config, log logger.Logger) Progress {
	if log == nil {
		log = logger.Nop()
	}
	if config.RefreshRate == 0 {
		config.RefreshRate = 100 * time.Millisecond
	}
	if config.Writer == nil {
		config.Writer = os.Stderr
	}

	p := &progress{
		config: config,
		log:    log,
		writer: config.Writer,
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
		bar:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.ok, p.fail, p.bar} {
		if config.NoColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	p.width = config.Width
	if p.width == 0 {
		p.width = p.terminalWidth() / 3
	}
	if p.width < 10 {
		p.width = 10
	}

	p.log.WithFields(logger.Fields{
		"style":   config.Style,
		"width":   p.width,
		"noColor": config.NoColor,
		"refresh": config.RefreshRate,
	}).Debug("Created new progress instance")

	return p
}

func (p *progress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.message = message
	p.status = Status{}
	p.active = true
	p.lastDraw = time.Time{}
	p.draw()
}

func (p *progress) Update(status Status) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}
	p.status = status

	final := status.Total > 0 && status.Current >= status.Total
	if !final && time.Since(p.lastDraw) < p.config.RefreshRate {
		return
	}
	p.draw()
}

func (p *progress) Complete(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}
	p.active = false
	p.clearLine()
	if !p.config.HideAfterComplete {
		fmt.Fprintln(p.writer, p.ok.Sprint("✓ ")+message)
	}
}

func (p *progress) Error(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active = false
	p.clearLine()
	fmt.Fprintln(p.writer, p.fail.Sprint("✗ ")+message)
}

func (p *progress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active {
		p.active = false
		p.clearLine()
	}
}

func (p *progress) IsSupportedTerminal() bool {
	if f, ok := p.writer.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// draw renders the current state. Callers hold p.mu.
func (p *progress) draw() {
	p.lastDraw = time.Now()
	p.clearLine()
	fmt.Fprint(p.writer, p.render())
}

func (p *progress) render() string {
	var b strings.Builder
	b.WriteString(p.message)

	if p.config.Style == StyleBar && p.status.Total > 0 {
		ratio := float64(p.status.Current) / float64(p.status.Total)
		if ratio > 1 {
			ratio = 1
		}
		filled := int(float64(p.width) * ratio)

		bar := strings.Repeat("=", filled)
		if filled < p.width {
			bar += ">" + strings.Repeat(" ", p.width-filled-1)
		}
		b.WriteString(" [" + p.bar.Sprint(bar) + "]")
		b.WriteString(fmt.Sprintf(" %3.0f%%", ratio*100))
	}

	if p.status.Total > 0 {
		b.WriteString(fmt.Sprintf(" %d/%d", p.status.Current, p.status.Total))
	}
	if p.status.CurrentItem != "" {
		b.WriteString(" " + p.status.CurrentItem)
	}
	return b.String()
}

func (p *progress) clearLine() {
	if p.IsSupportedTerminal() {
		fmt.Fprint(p.writer, "\r\033[K")
	} else {
		fmt.Fprint(p.writer, "\r")
	}
}

func (p *progress) terminalWidth() int {
	if f, ok := p.writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			return w
		}
	}
	return 80
}

type nop struct{}

// Nop returns a Progress that draws nothing.
func Nop() Progress { return nop{} }

func (nop) Start(string)              {}
func (nop) Update(Status)             {}
func (nop) Complete(string)           {}
func (nop) Error(string)              {}
func (nop) Stop()                     {}
func (nop) IsSupportedTerminal() bool { return false }
