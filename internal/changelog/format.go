package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// TagStyle defines the color and icon for a tag in terminal output.
type TagStyle struct {
	Color *color.Color
	Icon  string
}

// tagStyles maps tags to their terminal styling.
var tagStyles = map[Tag]TagStyle{
	TagFeature:     {Color: color.New(color.FgGreen), Icon: "✓"},
	TagBugfix:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	TagImprovement: {Color: color.New(color.FgMagenta), Icon: "~"},
}

var untaggedStyle = TagStyle{Color: color.New(color.Reset), Icon: "-"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes records to w with terminal styling, one section per version.
func FormatTerminal(records []VersionRecord, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := FormatRecord(&records[i], w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", records[i].Version, err)
		}
	}

	return nil
}

// FormatRecord writes a single version with its updates.
func FormatRecord(rec *VersionRecord, w io.Writer, opts FormatOptions, width int) error {
	if err := writeVersionHeader(rec.Version, rec.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, u := range rec.Updates {
		if err := writeUpdate(u, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	header := "Version " + version
	if date != "" {
		header = fmt.Sprintf("%s (%s)", header, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeUpdate writes a single update line with its label, wrapping long text.
func writeUpdate(u UpdateItem, w io.Writer, opts FormatOptions, width int) error {
	label := TagLabel(u.Type)

	if opts.Plain {
		if label != "" {
			_, err := fmt.Fprintf(w, "  - [%s] %s\n", label, u.Text)
			return err
		}
		_, err := fmt.Fprintf(w, "  - %s\n", u.Text)
		return err
	}

	style, ok := tagStyles[u.Type]
	if !ok {
		style = untaggedStyle
	}
	colored := style.Color.SprintFunc()

	prefix := "  " + style.Icon + " "
	wrapped := wrapText(u.Text, width-len(prefix), "    ")
	if label != "" {
		_, err := fmt.Fprintf(w, "%s%s %s\n", colored(prefix), wrapped, colored("["+label+"]"))
		return err
	}
	_, err := fmt.Fprintf(w, "%s%s\n", colored(prefix), wrapped)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
