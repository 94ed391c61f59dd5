package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/amonks/rulefind/cursor"
	"github.com/amonks/rulefind/finder"
	"github.com/amonks/rulefind/internal/watcher"
	"github.com/amonks/rulefind/printer"
	"github.com/amonks/rulefind/projectfile"
	"github.com/amonks/rulefind/scope"
	"github.com/amonks/rulefind/tui"
	"golang.org/x/term"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer cancel()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type flags struct {
	ui      string
	dir     string
	replace string
	matchCase,
	regex bool
	scope   string
	all     bool
	editor  string
	open    string
	include string
	write   bool
	watch   bool
	verbose bool
	logFile string

	version, help bool

	// replaceSet is true if -replace was passed, even as "".
	replaceSet bool
}

func newFlagSet(f *flags, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("rulefind", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.ui, "ui", "", "Force a particular ui. Legal values are 'tui' and 'printer'.")
	fs.StringVar(&f.dir, "dir", ".", "Load the project in the given directory.")
	fs.StringVar(&f.replace, "replace", "", "Replace every match with the given text. With -regex, $1 or ${name} refer to submatches.")
	fs.BoolVar(&f.matchCase, "case", false, "Match case.")
	fs.BoolVar(&f.regex, "regex", false, "Treat the search text as a regular expression.")
	fs.StringVar(&f.scope, "scope", "current", "Which editors to search. Legal values are 'current', 'open', and 'project'.")
	fs.BoolVar(&f.all, "all", false, "Search the entire project. Shorthand for -scope=project.")
	fs.StringVar(&f.editor, "editor", "", "Focus the named editor before searching.")
	fs.StringVar(&f.open, "open", "", "Open the named editors, separated by commas, before searching.")
	fs.StringVar(&f.include, "include", "all", "Which leaves to search, separated by commas. Legal values are 'topics', 'input', 'output', 'noreply', 'condition', 'do', 'questions', and 'all'.")
	fs.BoolVar(&f.write, "write", false, "Save replacements to disk. Without -write, -replace only shows what would change.")
	fs.BoolVar(&f.watch, "watch", false, "Search again whenever a project file changes.")
	fs.BoolVar(&f.verbose, "v", false, "Log debug information.")
	fs.StringVar(&f.logFile, "log", "", "Write logs to the given file instead of stderr.")
	fs.BoolVar(&f.version, "version", false, "Display the version and exit.")
	fs.BoolVar(&f.help, "help", false, "Display the help text and exit.")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, usageText())
		fmt.Fprintln(stderr, flagText(fs))
	}
	return fs
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "replace" {
			f.replaceSet = true
		}
	})

	if f.version {
		fmt.Fprintln(stdout, versionText())
		return 0
	} else if f.help {
		fmt.Fprintln(stdout, "\n"+helpText(fs))
		return 0
	}

	logger, closeLog, err := newLogger(f, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	defer closeLog()

	o, err := searchOptions(f, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	if f.watch && f.write {
		fmt.Fprintln(stderr, "Error: -watch can't be combined with -write")
		return 1
	}

	project, err := loadProject(f)
	if err != nil {
		fmt.Fprintln(stderr, "Error loading project:")
		fmt.Fprintln(stderr, err)
		return 1
	}

	ui := f.ui
	switch ui {
	case "tui", "printer":
	case "":
		ui = "printer"
		if o.Text == "" && isTerminal(stdout) {
			ui = "tui"
		}
	default:
		fmt.Fprintln(stderr, "Invalid value for flag -ui. Legal values are 'tui' and 'printer'.")
		return 1
	}

	if ui == "tui" {
		if f.logFile == "" && !f.verbose {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		err := tui.Start(ctx, tui.Config{
			Project: project,
			Options: o,
			Logger:  logger,
			Stdin:   stdin,
			Stdout:  stdout,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
		return 0
	}

	if o.Text == "" {
		fmt.Fprintln(stderr, helpText(fs))
		return 1
	}

	p := printer.New(longestName(project), stdout)
	if fd, ok := stdout.(interface{ Fd() uintptr }); ok && isTerminal(stdout) {
		if w, _, err := term.GetSize(int(fd.Fd())); err == nil {
			p.Width = w
		}
	}
	s := &search{
		flags:   f,
		options: o,
		printer: p,
		logger:  logger,
	}

	err = s.run(ctx, project)
	if err == nil && f.watch {
		err = s.watch(ctx)
	}
	switch {
	case errors.Is(err, context.Canceled):
		return 0
	case err != nil:
		// The printer has already shown it.
		return 1
	}
	return 0
}

func isTerminal(w io.Writer) bool {
	fd, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fd.Fd()))
}

func newLogger(f flags, stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	out, closeLog := stderr, func() {}
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closeLog = file, func() { file.Close() }
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closeLog, nil
}

func searchOptions(f flags, text string) (finder.Options, error) {
	o := finder.DefaultOptions()
	o.Text = text
	o.Replacement = f.replace
	o.MatchCase = f.matchCase
	o.Regex = f.regex

	kind, err := scope.ParseKind(f.scope)
	if err != nil {
		return o, err
	}
	o.Scope = kind
	if f.all {
		o.Scope = scope.KindProject
	}

	if o.Include, err = cursor.ParseOptions(f.include); err != nil {
		return o, err
	}
	return o, nil
}

func loadProject(f flags) (*projectfile.Project, error) {
	project, err := projectfile.Load(f.dir)
	if err != nil {
		return nil, err
	}
	tree := project.Tree
	if f.open != "" {
		for _, name := range strings.Split(f.open, ",") {
			e := tree.Editor(strings.TrimSpace(name))
			if e == nil {
				return nil, fmt.Errorf("-open: editor '%s' doesn't exist", name)
			}
			tree.AddOpenDocument(e)
		}
	}
	if f.editor != "" {
		e := tree.Editor(f.editor)
		if e == nil {
			return nil, fmt.Errorf("-editor: editor '%s' doesn't exist", f.editor)
		}
		tree.SetCurrent(e)
	}
	if tree.Current() == nil && len(tree.Editors()) > 0 {
		tree.SetCurrent(tree.Editors()[0])
	}
	return project, nil
}

func longestName(project *projectfile.Project) int {
	longest := 0
	for _, e := range project.Tree.Editors() {
		longest = max(longest, len(e.Name))
	}
	return longest
}

// A search runs the command line's search against a project and prints
// the results.
type search struct {
	flags   flags
	options finder.Options
	printer *printer.Printer
	logger  *slog.Logger
}

func (s *search) run(ctx context.Context, project *projectfile.Project) error {
	c := finder.New(project.Tree, finder.Config{
		Presenter: s.printer,
		Logger:    s.logger,
	})
	if err := c.SetOptions(s.options); err != nil {
		return err
	}

	if !s.flags.replaceSet {
		return c.FindAll(ctx)
	}

	if err := c.ReplaceAll(ctx); err != nil {
		return err
	}
	var changed []string
	editors := c.Results().Groups()
	for _, g := range editors {
		changed = append(changed, project.Path(g.Editor))
	}
	if len(changed) == 0 {
		return nil
	}
	if !s.flags.write {
		s.printer.Write("dry run; pass -write to save these changes")
		return nil
	}
	for _, g := range editors {
		if err := project.Save(g.Editor); err != nil {
			s.printer.Report(err)
			return err
		}
	}
	s.printer.Write(fmt.Sprintf("saved %s", strings.Join(changed, ", ")))
	return nil
}

// watch reloads the project and runs the search again every time one of
// its files changes, until ctx is done.
func (s *search) watch(ctx context.Context) error {
	filter, err := watcher.NewFilter(watcher.ProjectFiles...)
	if err != nil {
		return err
	}
	changes, stop, err := watcher.Watch(s.flags.dir, filter, 200*time.Millisecond)
	if err != nil {
		s.printer.Report(err)
		return err
	}
	defer stop()

	s.printer.Write(fmt.Sprintf("watching %s for changes", s.flags.dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case evs, ok := <-changes:
			if !ok {
				return nil
			}
			var paths []string
			for _, ev := range evs {
				paths = append(paths, ev.Path)
			}
			s.logger.Debug("project changed", "paths", paths)
			s.printer.Write(fmt.Sprintf("%s changed", strings.Join(paths, ", ")))

			project, err := loadProject(s.flags)
			if err != nil {
				s.printer.Report(err)
				continue
			}
			if err := s.run(ctx, project); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Debug("search failed", "error", err)
			}
		}
	}
}
