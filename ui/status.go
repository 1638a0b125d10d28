package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
)

// StatusLine manages an in-place updating status line in the terminal
type StatusLine struct {
	mu          sync.Mutex
	active      bool
	message     string
	spinner     []string
	spinnerIdx  int
	stopCh      chan bool
	lastLineLen int
	isTTY       bool
}

// NewStatusLine creates a new status line manager
func NewStatusLine() *StatusLine {
	fileInfo, _ := os.Stdout.Stat()
	isTTY := (fileInfo.Mode() & os.ModeCharDevice) != 0

	return &StatusLine{
		spinner: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		stopCh:  make(chan bool),
		isTTY:   isTTY,
	}
}

// Show displays a static status message (no spinner)
func (s *StatusLine) Show(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isTTY {
		// For pipes and logs, just print normally
		fmt.Println(msg)
		return
	}

	s.clear()
	s.message = msg
	s.active = true
	s.print(msg)
}

// ShowWithSpinner displays a status message with an animated spinner
func (s *StatusLine) ShowWithSpinner(msg string) {
	s.mu.Lock()
	s.message = msg
	s.active = true
	s.spinnerIdx = 0
	s.mu.Unlock()

	if !s.isTTY {
		fmt.Println(msg)
		return
	}

	go s.animate()
}

// Clear removes the status line and stops any animation
func (s *StatusLine) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active && s.isTTY {
		select {
		case s.stopCh <- true:
		default:
		}
		s.clear()
	}
	s.active = false
	s.message = ""
}

func (s *StatusLine) animate() {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.active {
				s.mu.Unlock()
				return
			}
			s.spinnerIdx = (s.spinnerIdx + 1) % len(s.spinner)
			s.clear()
			s.print(fmt.Sprintf("%s%s%s %s", colorGreen, s.spinner[s.spinnerIdx], colorReset, s.message))
			s.mu.Unlock()
		}
	}
}

func (s *StatusLine) print(text string) {
	fmt.Print(text)
	s.lastLineLen = len(text)
}

func (s *StatusLine) clear() {
	if s.lastLineLen > 0 {
		fmt.Print("\r" + strings.Repeat(" ", s.lastLineLen) + "\r")
		s.lastLineLen = 0
	}
}

// Global status line instance
var globalStatus *StatusLine
var globalStatusOnce sync.Once

// GetGlobalStatus returns the global status line instance
func GetGlobalStatus() *StatusLine {
	globalStatusOnce.Do(func() {
		globalStatus = NewStatusLine()
	})
	return globalStatus
}
