// Package observability provides formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/brand-ad-studio/internal/adcopy"
	"github.com/jonathan/brand-ad-studio/internal/batch"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most width runes
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintAdResult outputs the generated copy and how the loop ended
func (p *Printer) PrintAdResult(res *adcopy.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Task:     %s\n", res.TaskType))
	sb.WriteString(fmt.Sprintf("State:    %s after %d attempt(s)\n", res.State, res.Attempts))
	sb.WriteString("\n")

	if res.Copy != nil {
		sb.WriteString(fmt.Sprintf("Headline: %s\n", res.Copy.Headline))
		sb.WriteString(fmt.Sprintf("Text:     %s\n", res.Copy.PrimaryText))
		sb.WriteString(fmt.Sprintf("CTA:      %s\n", res.Copy.CTA))
	} else {
		sb.WriteString(res.Text)
		sb.WriteString("\n")
	}

	if len(res.Errors) > 0 {
		sb.WriteString("\nLast validation errors:\n")
		writeList(&sb, res.Errors)
	}

	p.printBox("GENERATED "+strings.ToUpper(string(res.TaskType)), sb.String())
}

// PrintGuideline outputs a summary of a parsed guideline
func (p *Printer) PrintGuideline(g *types.ParsedGuideline) {
	if g == nil {
		return
	}

	var sb strings.Builder
	if g.Colors.HasColors() {
		sb.WriteString("Colors:\n")
		for _, group := range []struct {
			label  string
			colors []string
		}{
			{"Primary", g.Colors.Primary},
			{"Secondary", g.Colors.Secondary},
			{"Accent", g.Colors.Accent},
		} {
			if len(group.colors) > 0 {
				sb.WriteString(fmt.Sprintf("  %-10s %s\n", group.label+":", strings.Join(group.colors, ", ")))
			}
		}
		sb.WriteString(fmt.Sprintf("  %-10s %d\n", "Total:", len(g.Colors.All)))
	} else {
		sb.WriteString("Colors: none found\n")
	}

	if g.Typography != nil {
		sb.WriteString("\nTypography:\n")
		if g.Typography.PrimaryFont != "" {
			sb.WriteString(fmt.Sprintf("  Primary:   %s\n", g.Typography.PrimaryFont))
		}
		if g.Typography.SecondaryFont != "" {
			sb.WriteString(fmt.Sprintf("  Secondary: %s\n", g.Typography.SecondaryFont))
		}
	}

	if g.LogoRules != "" {
		sb.WriteString(fmt.Sprintf("\nLogo: %s\n", g.LogoRules))
	}
	if tone := g.Guidelines.ToneOfVoice; tone != "" {
		sb.WriteString(fmt.Sprintf("Tone: %s\n", tone))
	}

	p.printBox("PARSED GUIDELINE", sb.String())
}

// PrintBatch outputs which variations succeeded
func (p *Printer) PrintBatch(requested int, images []batch.Image) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d of %d variation(s)\n", len(images), requested))

	if len(images) > 0 {
		sb.WriteString("\n")
		count := min(len(images), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  #%d  %d bytes\n", images[i].Index+1, len(images[i].DataURL)))
		}
		if len(images) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(images)-maxItemsToShow))
		}
	}

	p.printBox("IMAGE VARIATIONS", sb.String())
}

// PrintProgress prints one progress line
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(current, total int) {
	fmt.Fprintf(p.out, "  [%d/%d] variation done\n", current, total)
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
