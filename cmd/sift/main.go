// Command sift runs text through a named analyzer and prints the tokens.
//
//	sift -a autocomplete "Search as you type"
//	sift -c analysis.yaml -a title --format json < page.html
//	sift -c analysis.yaml --batch docs.jsonl
//
// Batch input is JSON Lines, one {"id", "analyzer", "text"} object per line;
// documents without an id get a ULID.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"github.com/cognicore/sift/pkg/sift"
	"github.com/cognicore/sift/pkg/sift/config"
)

const (
	defaultAnalyzer = "standard"
	defaultWidth    = 80
)

func init() {
	version.SetDefaultModule("github.com/cognicore/sift")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		configPath   string
		stoplistPath string
		lexiconPath  string
		analyzer     string
		batchPath    string
		format       string
		width        int
		list         bool
		logLevel     string
	)

	flags := pflag.NewFlagSet("sift", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&configPath, "config", "c", "", "Analysis definitions (YAML)")
	flags.StringVar(&stoplistPath, "stoplist", "", "Stoplist used by the stop filter (YAML)")
	flags.StringVar(&lexiconPath, "lexicon", "", "Synonym lexicon used by the synonym filter (YAML)")
	flags.StringVarP(&analyzer, "analyzer", "a", defaultAnalyzer, "Analyzer name")
	flags.StringVarP(&batchPath, "batch", "b", "", "JSON Lines batch file (- for stdin)")
	flags.StringVarP(&format, "format", "f", "auto", "Output format: auto|table|json")
	flags.IntVarP(&width, "width", "w", 0, "Table width (0 uses terminal width if available)")
	flags.BoolVarP(&list, "list", "l", false, "List analyzer names")
	flags.StringVar(&logLevel, "log-level", envOr("SIFT_LOG_LEVEL", "warn"), "Log level: debug|info|warn|error")

	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintln(stderr, "Usage: sift [flags] [text...]")
		fmt.Fprintln(stderr, "\nWithout text or --batch, the text is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(logLevel),
	}))

	comp, err := (&config.Loader{
		AnalysisPath: configPath,
		StoplistPath: stoplistPath,
		LexiconPath:  lexiconPath,
	}).Load()
	if err != nil {
		logger.Error("load configuration", "error", err)
		return 1
	}
	reg, err := sift.New(sift.Options{Components: comp})
	if err != nil {
		logger.Error("create registry", "error", err)
		return 1
	}
	logger.Debug("configuration loaded",
		"config", configPath,
		"analyzers", len(reg.Names()),
		"stopwords", comp.Stoplist.Len(),
		"synonym_groups", comp.Lexicon.Stats().SynonymGroups,
	)

	if list {
		for _, name := range reg.Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	out, err := newWriter(format, stdout, resolveWidth(width, stdout))
	if err != nil {
		fmt.Fprintf(stderr, "invalid --format %q: %v\n", format, err)
		return 2
	}

	var docs []document
	switch {
	case batchPath != "":
		docs, err = readBatch(batchPath, stdin, analyzer)
		if err != nil {
			logger.Error("read batch", "path", batchPath, "error", err)
			return 1
		}
	case flags.NArg() > 0:
		docs = []document{{Analyzer: analyzer, Text: strings.Join(flags.Args(), " ")}}
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			logger.Error("read stdin", "error", err)
			return 1
		}
		docs = []document{{Analyzer: analyzer, Text: strings.TrimRight(string(data), "\r\n")}}
	}

	ids := newIDSource()
	failed := 0
	for _, d := range docs {
		if d.ID == "" && batchPath != "" {
			d.ID = ids.next()
		}
		tokens, err := reg.Tokens(d.Analyzer, d.Text)
		if err != nil {
			logger.Error("analyze", "id", d.ID, "analyzer", d.Analyzer, "error", err)
			failed++
			continue
		}
		logger.Debug("analyzed", "id", d.ID, "analyzer", d.Analyzer, "tokens", len(tokens))
		if err := out.write(d, tokens); err != nil {
			logger.Error("write output", "error", err)
			return 1
		}
	}
	if err := out.flush(); err != nil {
		logger.Error("write output", "error", err)
		return 1
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
				return cols
			}
		}
	}
	return defaultWidth
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
