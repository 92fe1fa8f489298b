package ui

import (
	"fmt"
	"io"
)

const (
	listTitleTemplateConstant     = "%s %s\n"
	listItemTemplateConstant      = "%s  %s %s\n"
	listClosingTemplateConstant   = "%s\n"
	listHighlightedMarkerConstant = "*"
	listPlainMarkerConstant       = " "
	listEmptyPlaceholderConstant  = "(none)"
	listBottomCornerOnlyConstant  = "╰─"
	listTopCornerConstant         = "╭─"
)

// ListItem is one entry of a framed list.
type ListItem struct {
	Text        string
	Highlighted bool
}

// ListPrinter renders framed lists with an optional highlighted entry.
type ListPrinter struct {
	writer  io.Writer
	palette Palette
}

// NewListPrinter constructs a list printer writing to writer.
func NewListPrinter(writer io.Writer, colorEnabled bool) *ListPrinter {
	if writer == nil {
		writer = io.Discard
	}
	return &ListPrinter{writer: writer, palette: NewPalette(colorEnabled)}
}

// Print renders title followed by each item, highlighted items marked with an asterisk.
func (printer *ListPrinter) Print(title string, items []ListItem) {
	fmt.Fprintf(printer.writer, listTitleTemplateConstant, printer.palette.Frame.Sprint(listTopCornerConstant), printer.palette.Label.Sprint(title))
	bar := printer.palette.Frame.Sprint(boxVerticalBarConstant)
	if len(items) == 0 {
		fmt.Fprintf(printer.writer, listItemTemplateConstant, bar, listPlainMarkerConstant, printer.palette.Muted.Sprint(listEmptyPlaceholderConstant))
	}
	for _, item := range items {
		if item.Highlighted {
			fmt.Fprintf(printer.writer, listItemTemplateConstant, bar, printer.palette.Highlight.Sprint(listHighlightedMarkerConstant), printer.palette.Highlight.Sprint(item.Text))
			continue
		}
		fmt.Fprintf(printer.writer, listItemTemplateConstant, bar, listPlainMarkerConstant, item.Text)
	}
	fmt.Fprintf(printer.writer, listClosingTemplateConstant, printer.palette.Frame.Sprint(listBottomCornerOnlyConstant))
}
