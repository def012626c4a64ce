package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a formatted error. The plain palette leaves
// text untouched so output to files and buffers stays greppable.
type palette struct {
	label, message, category, usage, fix, bullet, footer func(a ...interface{}) string
}

var (
	colored = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
		footer:   color.New(color.Faint).SprintFunc(),
	}
	plain = palette{
		label: fmt.Sprint, message: fmt.Sprint, category: fmt.Sprint, usage: fmt.Sprint,
		fix: fmt.Sprint, bullet: fmt.Sprint, footer: fmt.Sprint,
	}
)

// FormatError renders err as the block verlog prints before exiting:
// headline, optional usage, remediation steps and the exit status the
// category maps to.
func FormatError(err *CLIError, useColors bool) string {
	if err == nil {
		return ""
	}
	p := plain
	if useColors {
		p = colored
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	fmt.Fprintf(&sb, "\n%s\n", p.footer(fmt.Sprintf("exit status %d", err.Category.ExitCode())))
	return sb.String()
}

// FprintError writes err to w. Colors are used only when w is the
// process's stdout or stderr and color output has not been disabled.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err, useColorsFor(w)))
}

func useColorsFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (f == os.Stdout || f == os.Stderr) && !color.NoColor
}
