// Package terminal renders the CHIP-8 display as text and reads keypad
// input from a terminal in raw mode.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Every text cell shows two vertically stacked pixels.
var halfBlocks = [4]string{
	0b00: " ",
	0b10: "▀",
	0b01: "▄",
	0b11: "█",
}

// Renderer writes the display as text, using half block characters so
// that the 64x32 pixel screen fits into 64x16 text cells.
type Renderer struct {
	w    io.Writer
	ansi bool
}

// NewRenderer returns a renderer writing to w. With ansi set every frame
// is drawn over the previous one and lines end with CR LF, as needed for
// a terminal in raw mode.
func NewRenderer(w io.Writer, ansi bool) *Renderer {
	return &Renderer{
		w:    w,
		ansi: ansi,
	}
}

// Start clears the terminal and hides the cursor.
func (r *Renderer) Start() error {
	if !r.ansi {
		return nil
	}
	if _, err := io.WriteString(r.w, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("writing terminal setup: %w", err)
	}
	return nil
}

// Stop shows the cursor again.
func (r *Renderer) Stop() error {
	if !r.ansi {
		return nil
	}
	if _, err := io.WriteString(r.w, showCursor+"\r\n"); err != nil {
		return fmt.Errorf("writing terminal reset: %w", err)
	}
	return nil
}

// Render writes one frame.
func (r *Renderer) Render(pixels []bool) error {
	lineEnd := "\n"
	prefix := ""
	if r.ansi {
		lineEnd = "\r\n"
		prefix = cursorHome
	}

	if _, err := io.WriteString(r.w, prefix+Format(pixels, lineEnd)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Format converts a pixel buffer of vm.PixelCount entries into text lines
// terminated by lineEnd. Missing pixels are treated as unset.
func Format(pixels []bool, lineEnd string) string {
	var sb strings.Builder
	sb.Grow((vm.ScreenWidth*len("█") + len(lineEnd)) * vm.ScreenHeight / 2)

	pixel := func(x, y int) int {
		i := x + vm.ScreenWidth*y
		if i < len(pixels) && pixels[i] {
			return 1
		}
		return 0
	}

	for y := 0; y < vm.ScreenHeight; y += 2 {
		for x := range vm.ScreenWidth {
			sb.WriteString(halfBlocks[pixel(x, y)<<1|pixel(x, y+1)])
		}
		sb.WriteString(lineEnd)
	}
	return sb.String()
}
