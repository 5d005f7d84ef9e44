package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/sputter"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const maxLineSize = 1024 * 1024

// REPL feeds lines to the parser and evaluator and prints the outcome.
type REPL struct {
	cfg    *Config
	out    io.Writer
	logger *log.Logger
	failed int
}

// New returns a REPL writing to out. A nil cfg uses the defaults and a nil
// logger uses the logrus standard logger.
func New(cfg *Config, out io.Writer, logger *log.Logger) *REPL {
	if cfg == nil {
		cfg = defaultConfig()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &REPL{
		cfg:    cfg,
		out:    out,
		logger: logger,
	}
}

// Failed returns how many lines failed to parse or evaluate so far.
func (r *REPL) Failed() int {
	return r.failed
}

func (r *REPL) isQuit(text string) bool {
	return strings.TrimSpace(text) == r.cfg.Quit
}

func (r *REPL) print(prefix string, v *sputter.Value) {
	s, err := Format(r.cfg.Format, v)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to format value")
		s = v.String()
	}
	fmt.Fprintf(r.out, "%s%s\n", prefix, s)
}

// Line parses and evaluates one line of input.
func (r *REPL) Line(text string) (*sputter.Value, error) {
	entry := r.logger.WithFields(log.Fields{
		"line": text,
	})

	node, err := sputter.Parse(text)
	if err != nil {
		r.failed++
		entry.WithError(err).Debug("Parse failed")
		fmt.Fprintf(r.out, "Could not parse: %v\n", err)
		return nil, err
	}
	if r.cfg.ShowParsed {
		r.print("Parsed: ", node)
	}

	ret, err := sputter.Eval(node)
	if err != nil {
		r.failed++
		entry.WithError(err).Debug("Evaluation failed")
		fmt.Fprintf(r.out, "Could not evaluate: %v\n", err)
		return nil, err
	}

	entry.WithFields(log.Fields{
		"parsed": node.String(),
		"result": ret.String(),
	}).Debug("Evaluated")
	r.print("Evaluated Result: ", ret)
	return ret, nil
}

// Run reads lines from in until EOF or the quit word.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		text := scanner.Text()
		if r.isQuit(text) {
			r.logger.Debug("Quit")
			return nil
		}
		r.Line(text)
	}
	return errors.Wrap(scanner.Err(), "read input")
}

// RunTerminal runs an interactive session with line editing on the
// controlling terminal.
func (r *REPL) RunTerminal() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(Complete)

	r.readHistory(line)
	defer r.writeHistory(line)

	for {
		text, err := line.Prompt(r.cfg.Prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read line")
		}
		if r.isQuit(text) {
			return nil
		}
		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}
		r.Line(text)
	}
}

// Complete returns the completions of the last word of line against the
// operator symbols.
func Complete(line string) []string {
	i := strings.LastIndexAny(line, " \t\n()") + 1
	prefix, word := line[:i], line[i:]
	var completions []string
	for _, op := range sputter.Operators() {
		if strings.HasPrefix(op, word) {
			completions = append(completions, prefix+op)
		}
	}
	return completions
}

func (r *REPL) readHistory(line *liner.State) {
	if r.cfg.History == "" {
		return
	}
	f, err := os.Open(r.cfg.History)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.WithError(err).Warn("Failed to open history")
		}
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		r.logger.WithError(err).Warn("Failed to read history")
	}
}

func (r *REPL) writeHistory(line *liner.State) {
	if r.cfg.History == "" {
		return
	}
	f, err := os.Create(r.cfg.History)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to create history")
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		r.logger.WithError(err).Warn("Failed to write history")
	}
}
