package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/vedicmath/internal/classifier"
	"github.com/agbru/vedicmath/internal/dispatch"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/telemetry"
	"github.com/agbru/vedicmath/internal/ui"
)

// LastRecord is a dispatch.Observer keeping the most recent record, logged
// or not. It is not safe for concurrent use.
type LastRecord struct {
	rec telemetry.Record
	ok  bool
}

func (l *LastRecord) ObserveRecord(r telemetry.Record) { l.rec, l.ok = r, true }
func (l *LastRecord) ObserveDrop()                     {}

// Take returns the record observed since the previous call, if any.
func (l *LastRecord) Take() (*telemetry.Record, bool) {
	if !l.ok {
		return nil, false
	}
	l.ok = false
	r := l.rec
	return &r, true
}

// REPL is an interactive session over one dispatcher.
type REPL struct {
	d      *dispatch.Dispatcher
	last   *LastRecord
	output OutputConfig
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a dispatcher for cfg and a session over it. The caller
// owns the dispatcher and tears it down after Start returns.
func NewREPL(cfg dispatch.Config, output OutputConfig, opts ...dispatch.Option) (*REPL, error) {
	last := &LastRecord{}
	d, err := dispatch.New(cfg, append(opts, dispatch.WithObserver(last))...)
	if err != nil {
		return nil, err
	}
	return &REPL{d: d, last: last, output: output, in: os.Stdin, out: os.Stdout}, nil
}

// Dispatcher returns the session's dispatcher.
func (r *REPL) Dispatcher() *dispatch.Dispatcher { return r.d }

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads commands until exit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"vedic> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if err != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%sVedic arithmetic kernel, interactive mode%s (session %s)\n",
		ui.ColorBold(), ui.ColorReset(), r.d.Session())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, h := range [][2]string{
		{"<a> <op> <b>", "Evaluate, op is one of + - * / % ^"},
		{"mul|div|add|sub|mod|pow <a> <b>", "Evaluate a binary operation"},
		{"sq <a>", "Square a"},
		{"divmod <a> <b>", "Euclidean quotient and remainder"},
		{"divisible <n> <p>", "Test divisibility"},
		{"mode [name]", "Show or change the routing mode"},
		{"stats", "Display telemetry statistics"},
		{"export <file>", "Write telemetry as CSV"},
		{"clear", "Clear telemetry"},
		{"help", "Display this help"},
		{"exit", "Leave interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-32s%s %s\n", ui.ColorYellow(), h[0], ui.ColorReset(), h[1])
	}
}

// processCommand executes one line. It returns false on exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	case "help", "h", "?":
		r.printHelp()
	case "mode":
		r.cmdMode(args)
	case "stats":
		DisplayStats(r.out, r.d.Stats())
	case "export":
		r.cmdExport(args)
	case "clear":
		r.d.ClearTelemetry()
		fmt.Fprintln(r.out, "Telemetry cleared.")
	case "divmod":
		r.cmdDivMod(args)
	case "divisible":
		r.cmdDivisible(args)
	case "sq", "square":
		if len(args) != 1 {
			r.usage("sq <a>")
			return true
		}
		r.eval(numeric.Square, args[0], "0")
	default:
		if op, err := numeric.ParseOpKind(cmd); err == nil && !op.IsUnary() {
			if len(args) != 2 {
				r.usage(cmd + " <a> <b>")
				return true
			}
			r.eval(op, args[0], args[1])
			return true
		}
		if len(parts) == 3 {
			if op, err := numeric.ParseOpKind(parts[1]); err == nil && !op.IsUnary() {
				r.eval(op, parts[0], parts[2])
				return true
			}
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) usage(s string) {
	fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), s, ui.ColorReset())
}

// operands parses two number literals, reporting the first failure.
func (r *REPL) operands(sa, sb string) (a, b numeric.Value, ok bool) {
	var err error
	if a, err = numeric.Parse(sa); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return a, b, false
	}
	if b, err = numeric.Parse(sb); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return a, b, false
	}
	return a, b, true
}

func (r *REPL) eval(op numeric.OpKind, sa, sb string) {
	a, b, ok := r.operands(sa, sb)
	if !ok {
		return
	}
	if op.IsUnary() {
		b = numeric.Value{}
	}
	result := r.d.Evaluate(a, b, op)
	rec, _ := r.last.Take()
	DisplayResult(r.out, op, a, b, result, rec, r.output)
}

func (r *REPL) cmdDivMod(args []string) {
	if len(args) != 2 {
		r.usage("divmod <a> <b>")
		return
	}
	a, b, ok := r.operands(args[0], args[1])
	if !ok {
		return
	}
	q, rem := r.d.DivMod(a, b)
	rec, _ := r.last.Take()
	fmt.Fprintf(r.out, "divmod(%s, %s) = (%s%s%s, %s%s%s)\n", a, b,
		ui.ColorBold(), q, ui.ColorReset(), ui.ColorBold(), rem, ui.ColorReset())
	if rec != nil && !r.output.Quiet {
		fmt.Fprintf(r.out, "  sutra: %s%s%s\n", ui.ColorGreen(), rec.Sutra, ui.ColorReset())
	}
}

func (r *REPL) cmdDivisible(args []string) {
	if len(args) != 2 {
		r.usage("divisible <n> <p>")
		return
	}
	n, err1 := strconv.ParseInt(args[0], 10, 64)
	p, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil || p == 0 {
		fmt.Fprintf(r.out, "%sdivisible needs two integers and a non-zero divisor%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%d divisible by %d: %s%t%s\n", n, p, ui.ColorBold(), r.d.IsDivisible(n, p), ui.ColorReset())
}

func (r *REPL) cmdMode(args []string) {
	cfg := r.d.GetConfig()
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Mode: %s%s%s\n", ui.ColorCyan(), cfg.Mode, ui.ColorReset())
		return
	}
	m, err := classifier.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	cfg.Mode = m
	if err := r.d.SetConfig(cfg); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Mode changed to: %s%s%s\n", ui.ColorGreen(), m, ui.ColorReset())
}

func (r *REPL) cmdExport(args []string) {
	if len(args) != 1 {
		r.usage("export <file>")
		return
	}
	if err := WriteTelemetryToFile(r.d, args[0]); err != nil {
		fmt.Fprintf(r.out, "%sExport failed: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Telemetry written to %s%s%s\n", ui.ColorCyan(), args[0], ui.ColorReset())
}
