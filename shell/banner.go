package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mbndr/figlet4go"
)

// RenderBanner draws text as FIGlet ASCII art in the default font. Only
// printable ASCII is accepted.
func RenderBanner(text string) (art string, err error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("banner text is empty")
	}
	for i, r := range text {
		if r < ' ' || r > '~' {
			return "", fmt.Errorf("banner text has unsupported character %q at offset %d", r, i)
		}
	}
	// figlet4go indexes its font tables without bounds checks.
	defer func() {
		if p := recover(); p != nil {
			art, err = "", fmt.Errorf("render banner: %v", p)
		}
	}()
	return figlet4go.NewAsciiRender().Render(text)
}
