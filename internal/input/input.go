// Package input provides flag values that may be read from stdin ("-") or
// from a file ("@path").
package input

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Expand resolves v: "-" reads all of stdin, "@path" reads the file and
// anything else is returned unchanged. Trailing newlines are trimmed.
func Expand(v string, stdin io.Reader) (string, error) {
	switch {
	case v == "-":
		if stdin == nil {
			return "", fmt.Errorf("stdin is not available")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case strings.HasPrefix(v, "@") && len(v) > 1:
		path := strings.TrimPrefix(v, "@")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return v, nil
}

// Text is a string flag whose value goes through Expand when set. It
// reports its type as "string" so GetString keeps working.
type Text struct {
	value string
	stdin io.Reader
}

var _ pflag.Value = (*Text)(nil)

// NewText returns a Text reading "-" from stdin.
func NewText(stdin io.Reader) *Text {
	return &Text{stdin: stdin}
}

func (t *Text) String() string { return t.value }

func (t *Text) Set(s string) error {
	v, err := Expand(s, t.stdin)
	if err != nil {
		return err
	}
	t.value = v
	return nil
}

func (t *Text) Type() string { return "string" }
