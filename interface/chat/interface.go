package chat

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"workbench/ui"
)

// Interface handles chat I/O operations
type Interface struct {
	scanner *bufio.Scanner
	status  *ui.StatusLine
}

// NewInterface creates a new chat interface
func NewInterface() *Interface {
	return &Interface{
		scanner: bufio.NewScanner(os.Stdin),
		status:  ui.GetGlobalStatus(),
	}
}

// ReadInput reads user input from stdin
func (i *Interface) ReadInput() (string, error) {
	fmt.Print("You: ")

	if !i.scanner.Scan() {
		if err := i.scanner.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		// EOF
		return "", nil
	}

	return strings.TrimSpace(i.scanner.Text()), nil
}

// ShowThinking displays a thinking indicator
func (i *Interface) ShowThinking(message string) {
	i.status.ShowWithSpinner(message)
}

// ClearStatus clears the status line
func (i *Interface) ClearStatus() {
	i.status.Clear()
}

// DisplayResponse displays the assistant's reply
func (i *Interface) DisplayResponse(response string) {
	fmt.Print("Workbench: ")
	fmt.Println(response)
}

// DisplayError displays an error message
func (i *Interface) DisplayError(err error) {
	fmt.Printf("\nError: %v\n", err)
}

// DisplayWidget renders an open widget below the chat
func (i *Interface) DisplayWidget(rendered string) {
	fmt.Println()
	fmt.Println(rendered)
	fmt.Println()
}

// StreamLine prints one line of streamed output (terminal simulator)
func (i *Interface) StreamLine(line string) {
	fmt.Println(line)
}

// PrintSeparator prints a line separator for readability
func (i *Interface) PrintSeparator() {
	fmt.Println()
}

// PrintHelp prints help information
func (i *Interface) PrintHelp(helpText string) {
	fmt.Println(helpText)
}

// PrintWelcome prints welcome banner
func (i *Interface) PrintWelcome(banner string) {
	fmt.Println(banner)
}
