package ui

import (
	"fmt"
	"io"

	"github.com/temirov/gitutils/internal/execshell"
)

const (
	boxTopCornerConstant          = "╭─"
	boxBottomCornerConstant       = "╰─"
	boxVerticalBarConstant        = "│"
	boxStartLabelConstant         = "start:"
	boxEndLabelConstant           = "end:"
	boxEdgeLineTemplateConstant   = "%s %s %s\n"
	boxBodyLineTemplateConstant   = "%s  %s\n"
	boxSpacerLineTemplateConstant = "%s\n"
)

// ChildOutputPrinter frames a child process's output between start and end markers.
// Standard error lines are marked with a distinct bar color.
type ChildOutputPrinter struct {
	writer  io.Writer
	palette Palette
}

// NewChildOutputPrinter constructs a printer writing to writer.
func NewChildOutputPrinter(writer io.Writer, colorEnabled bool) *ChildOutputPrinter {
	if writer == nil {
		writer = io.Discard
	}
	return &ChildOutputPrinter{writer: writer, palette: NewPalette(colorEnabled)}
}

// Begin prints the opening frame for commandLabel.
func (printer *ChildOutputPrinter) Begin(commandLabel string) {
	fmt.Fprintf(printer.writer, boxEdgeLineTemplateConstant, printer.palette.Frame.Sprint(boxTopCornerConstant), printer.palette.Label.Sprint(boxStartLabelConstant), printer.palette.Frame.Sprint(commandLabel))
	fmt.Fprintf(printer.writer, boxSpacerLineTemplateConstant, printer.palette.Frame.Sprint(boxVerticalBarConstant))
}

// PrintLine prints one framed output line.
func (printer *ChildOutputPrinter) PrintLine(line execshell.OutputLine) {
	bar := printer.palette.Frame.Sprint(boxVerticalBarConstant)
	if line.Stream == execshell.OutputStreamStandardError {
		bar = printer.palette.ErrorBar.Sprint(boxVerticalBarConstant)
	}
	fmt.Fprintf(printer.writer, boxBodyLineTemplateConstant, bar, line.Text)
}

// End prints the closing frame for commandLabel.
func (printer *ChildOutputPrinter) End(commandLabel string) {
	fmt.Fprintf(printer.writer, boxSpacerLineTemplateConstant, printer.palette.Frame.Sprint(boxVerticalBarConstant))
	fmt.Fprintf(printer.writer, boxEdgeLineTemplateConstant, printer.palette.Frame.Sprint(boxBottomCornerConstant), printer.palette.Label.Sprint(boxEndLabelConstant), printer.palette.Frame.Sprint(commandLabel))
}

// Frame runs operation between the opening and closing frames, passing it a handler that prints lines.
// The closing frame is printed even when operation fails.
func (printer *ChildOutputPrinter) Frame(commandLabel string, operation func(handler execshell.LineHandler) error) error {
	printer.Begin(commandLabel)
	operationError := operation(printer.PrintLine)
	printer.End(commandLabel)
	return operationError
}
