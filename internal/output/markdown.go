package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	descriptionWidth = 80
	minDescription   = 20
	descriptionInset = 2
)

// isTTY is swapped in tests.
var isTTY = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// TerminalWidth returns the stdout width, then $COLUMNS, then fallback.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = descriptionWidth
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return fallback
}

// RenderDescription renders a task or project description as markdown
// wrapped to width. Blank text renders as "".
func RenderDescription(text string, width int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	width = max(width-descriptionInset, minDescription)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return "", err
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(rendered, "\n"), nil
}

// PrintDescription writes text after a blank line. On a terminal it is
// rendered as markdown; piped output keeps the raw text.
func PrintDescription(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	out := text
	if isTTY() {
		if rendered, err := RenderDescription(text, TerminalWidth(descriptionWidth)); err == nil {
			out = rendered
		}
	}
	fmt.Println()
	fmt.Println(out)
}
