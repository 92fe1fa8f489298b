package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether the stream is attached to an interactive terminal.
func IsTerminal(stream any) bool {
	file, isFile := stream.(*os.File)
	if !isFile || file == nil {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// ShouldColorize reports whether output written to writer should carry ANSI colors.
// NO_COLOR and non-terminal writers disable colors.
func ShouldColorize(writer io.Writer) bool {
	if color.NoColor {
		return false
	}
	return IsTerminal(writer)
}

// Palette groups the colors used across console output.
type Palette struct {
	Frame     *color.Color
	Label     *color.Color
	ErrorBar  *color.Color
	Highlight *color.Color
	Muted     *color.Color
	Success   *color.Color
	Failure   *color.Color
}

// NewPalette constructs the default palette, with colors enabled only when requested.
func NewPalette(colorEnabled bool) Palette {
	palette := Palette{
		Frame:     color.New(color.FgHiCyan, color.Bold),
		Label:     color.New(color.FgMagenta),
		ErrorBar:  color.New(color.FgRed, color.Bold),
		Highlight: color.New(color.FgGreen, color.Bold),
		Muted:     color.New(color.FgHiBlack),
		Success:   color.New(color.FgGreen),
		Failure:   color.New(color.FgRed),
	}
	for _, paletteColor := range []*color.Color{palette.Frame, palette.Label, palette.ErrorBar, palette.Highlight, palette.Muted, palette.Success, palette.Failure} {
		if colorEnabled {
			paletteColor.EnableColor()
		} else {
			paletteColor.DisableColor()
		}
	}
	return palette
}
