package mine

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/katalvlaran/fpgrowth/dataset"
	"github.com/katalvlaran/fpgrowth/fptree"
	"github.com/katalvlaran/fpgrowth/miner"
	"github.com/katalvlaran/fpgrowth/report"
	"github.com/mitchellh/cli"
)

// DefaultMinSupport is the minimum support used when -min-support is not given.
const DefaultMinSupport = 400

func New(ui cli.Ui) *cmd {
	c := &cmd{UI: ui, logOutput: os.Stderr}
	c.init()
	return c
}

type cmd struct {
	UI        cli.Ui
	flags     *flag.FlagSet
	help      string
	logOutput io.Writer

	// flags
	minSupport int
	vocab      string
	output     string
	outputDir  string
	format     string
	workers    int
	logLevel   string
	logJSON    bool
}

func (c *cmd) init() {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.IntVar(&c.minSupport, "min-support", DefaultMinSupport,
		"Minimum weighted number of transactions an itemset must occur in.")
	c.flags.StringVar(&c.vocab, "vocab", "",
		"Path to an \"<id> <term>\" vocabulary file. Without it, item ids are printed.")
	c.flags.StringVar(&c.output, "output", "",
		"File to write the patterns of a single input to. Defaults to stdout.")
	c.flags.StringVar(&c.outputDir, "output-dir", "",
		"Directory receiving one pattern file per input. Required for several inputs.")
	c.flags.StringVar(&c.format, "format", string(report.FormatText),
		"Output format: \"text\" or \"table\".")
	c.flags.IntVar(&c.workers, "workers", 1,
		"Goroutines mining top-level items. 0 uses all CPUs.")
	c.flags.StringVar(&c.logLevel, "log-level", "warn",
		"Log level: trace, debug, info, warn or error.")
	c.flags.BoolVar(&c.logJSON, "log-json", false,
		"Emit logs as JSON.")
	c.help = usage(help, c.flags)
}

// input is one loaded transaction file.
type input struct {
	path string
	ms   *fptree.Multiset
}

func (c *cmd) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		return 1
	}

	files := c.flags.Args()
	switch {
	case len(files) == 0:
		c.UI.Error("Missing FILE argument")
		return 1
	case len(files) > 1 && c.outputDir == "":
		c.UI.Error("Several input files require -output-dir")
		return 1
	case c.output != "" && c.outputDir != "":
		c.UI.Error("Only one of -output and -output-dir may be set")
		return 1
	}
	format, err := report.ParseFormat(c.format)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	level := hclog.LevelFromString(c.logLevel)
	if level == hclog.NoLevel {
		c.UI.Error(fmt.Sprintf("Invalid log level: %s", c.logLevel))
		return 1
	}
	if c.minSupport <= 0 {
		c.UI.Error(fmt.Sprintf("Invalid -min-support: %d (%v)", c.minSupport, fptree.ErrInvalidThreshold))
		return 1
	}
	if c.workers < 0 {
		c.UI.Error(fmt.Sprintf("Invalid -workers: %d", c.workers))
		return 1
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "fpgrowth",
		Level:      level,
		Output:     c.logOutput,
		JSONFormat: c.logJSON,
	})

	var vocab dataset.Vocabulary
	if c.vocab != "" {
		if vocab, err = dataset.LoadVocabulary(c.vocab); err != nil {
			c.UI.Error(fmt.Sprintf("Error loading vocabulary: %s", err))
			return 1
		}
		logger.Info("loaded vocabulary", "path", c.vocab, "terms", len(vocab))
	}

	// Validate every input before mining any of them.
	inputs := make([]input, 0, len(files))
	for _, path := range files {
		ms, err := dataset.LoadTransactions(path)
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error loading transactions: %s", err))
			return 1
		}
		logger.Info("loaded transactions", "path", path, "distinct", ms.Len(), "total", ms.Total())
		inputs = append(inputs, input{path: path, ms: ms})
	}

	for _, in := range inputs {
		res, err := miner.Run(in.ms, c.minSupport,
			miner.WithLogger(logger.Named("miner").With("input", in.path)),
			miner.WithWorkers(c.workers))
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error mining %s: %s", in.path, err))
			return 1
		}
		patterns := report.Build(in.ms, res.Itemsets, vocab)
		logger.Info("mined", "path", in.path, "patterns", len(patterns),
			"conditional_trees", res.Trees, "max_depth", res.MaxDepth)

		var buf bytes.Buffer
		if err := report.Write(&buf, patterns, format); err != nil {
			c.UI.Error(fmt.Sprintf("Error rendering patterns: %s", err))
			return 1
		}
		if err := c.emit(in.path, buf.Bytes()); err != nil {
			c.UI.Error(fmt.Sprintf("Error writing patterns: %s", err))
			return 1
		}
	}

	return 0
}

// emit sends rendered patterns of path to stdout, -output or -output-dir.
func (c *cmd) emit(path string, data []byte) error {
	switch {
	case c.outputDir != "":
		if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(c.outputDir, PatternFileName(path)), data, 0o644)
	case c.output != "":
		return os.WriteFile(c.output, data, 0o644)
	default:
		c.UI.Output(strings.TrimRight(string(data), "\n"))
		return nil
	}
}

// PatternFileName derives the output name of an input file:
// "topic-N.txt" becomes "pattern-N.txt", anything else "<base>.patterns.txt".
func PatternFileName(input string) string {
	base := filepath.Base(input)
	if rest, ok := strings.CutPrefix(base, "topic-"); ok {
		return "pattern-" + rest
	}

	return strings.TrimSuffix(base, filepath.Ext(base)) + ".patterns.txt"
}

func (c *cmd) Synopsis() string {
	return synopsis
}

func (c *cmd) Help() string {
	return c.help
}

// usage appends the flag defaults of fs to txt.
func usage(txt string, fs *flag.FlagSet) string {
	var buf bytes.Buffer
	buf.WriteString(strings.TrimSpace(txt))
	buf.WriteString("\n\nOptions:\n\n")
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(&buf, "  -%s=%s\n", f.Name, f.DefValue)
		fmt.Fprintf(&buf, "      %s\n\n", f.Usage)
	})

	return strings.TrimRight(buf.String(), "\n")
}

const synopsis = "Mine frequent itemsets from transaction files"
const help = `
Usage: fpgrowth mine [options] FILE...

  Reads each FILE as one transaction per line (whitespace-separated integer
  item ids), mines every itemset whose support reaches -min-support with
  FP-growth, and writes the patterns sorted by descending support, one
  "support<TAB>terms" line each.

  All inputs are validated before anything is mined or written.

      $ fpgrowth mine -vocab=vocab.txt -output-dir=output topic-1.txt topic-2.txt
`
