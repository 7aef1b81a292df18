package ui

import (
	"bufio"
	"fmt"
	"io"
)

// Console renders notifications to a writer and acknowledges blocking
// messages by waiting for an Enter keypress on the reader.
type Console struct {
	out io.Writer
	in  *bufio.Reader
}

func NewConsole(out io.Writer, in io.Reader) *Console {
	return &Console{out: out, in: bufio.NewReader(in)}
}

func (c *Console) Notify(message string, severity Severity) {
	switch severity {
	case SeverityError:
		fmt.Fprintf(c.out, "[error] %s\n", message)
	default:
		fmt.Fprintf(c.out, "%s\n", message)
	}
}

func (c *Console) PromptBlockingMessage(text string) {
	fmt.Fprintf(c.out, "%s\n(press Enter to continue)\n", text)
	_, _ = c.in.ReadString('\n')
}
