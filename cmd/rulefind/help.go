package main

import (
	"flag"
	"fmt"
	"reflect"
	"strings"

	meta "github.com/amonks/rulefind"
	"github.com/amonks/rulefind/internal/color"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(color.Yellow)

func helpText(fs *flag.FlagSet) string {
	b := &strings.Builder{}
	b.WriteString("Rulefind searches, and optionally rewrites, the patterns of a rule tree\n")
	b.WriteString("project: topic filters, inputs, outputs, no-reply responses, conditions,\n")
	b.WriteString("and the code run by rules and questions.\n")
	b.WriteString("\n")
	b.WriteString(usageText())
	b.WriteString("\n")
	b.WriteString(flagText(fs))
	b.WriteString("\n")
	b.WriteString(versionText())
	return b.String()
}

func usageText() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, headerStyle.Render("USAGE"))
	b.WriteString("  rulefind [flags]           browse interactively\n")
	b.WriteString("  rulefind [flags] <text>    print every match\n")
	return b.String()
}

func flagText(fs *flag.FlagSet) string {
	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render("FLAGS"))

	fs.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(&b, "  -%s", f.Name)
		name, usage := flag.UnquoteUsage(f)
		if len(name) > 0 {
			b.WriteString("=")
			b.WriteString(name)
		}
		if !isZeroValue(f, f.DefValue) {
			fmt.Fprintf(&b, " (default %q)", f.DefValue)
		}
		b.WriteString("\n")

		usage = wordwrap.String(usage, 52)
		usage = indent.String(usage, 8)
		b.WriteString(usage)

		b.WriteString("\n")
	})
	return b.String()
}

// isZeroValue reports whether value is the zero value of the flag's type.
func isZeroValue(f *flag.Flag, value string) bool {
	typ := reflect.TypeOf(f.Value)
	var z reflect.Value
	if typ.Kind() == reflect.Pointer {
		z = reflect.New(typ.Elem())
	} else {
		z = reflect.Zero(typ)
	}
	return value == z.Interface().(flag.Value).String()
}

func versionText() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, headerStyle.Render("VERSION"))
	fmt.Fprintln(b, "  Version:", meta.Version)
	if meta.Revision != "unknown" {
		if meta.DirtyBuild {
			fmt.Fprintln(b, "  Dirty Build")
			fmt.Fprintln(b, "  Last commit:", meta.ReleaseDate)
		} else {
			fmt.Fprintln(b, "  Revision:", meta.Revision)
			fmt.Fprintln(b, "  Committed:", meta.ReleaseDate)
		}
	}
	return b.String()
}
