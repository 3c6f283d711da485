package dispatch

import (
	"io"
	"math"
	"math/bits"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/vedicmath/internal/classifier"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/logging"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/sysmon"
	"github.com/agbru/vedicmath/internal/telemetry"
)

// Fallback reasons recorded when the classifier's choice was not used.
const (
	ReasonPreconditionFallback = "fallback: precondition"
	ReasonMismatchFallback     = "fallback: mismatch"
)

// State is the dispatcher lifecycle state.
type State uint8

const (
	Uninitialized State = iota
	Ready
	TornDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case TornDown:
		return "torn down"
	}
	return "unknown"
}

// Observer receives every dispatched record, whether or not the log keeps
// it, and every drop.
type Observer interface {
	ObserveRecord(r telemetry.Record)
	ObserveDrop()
}

// Saver persists a telemetry log under a label and returns its session id.
type Saver interface {
	Save(label string, l *telemetry.Log) (string, error)
}

// Option configures a Dispatcher at init.
type Option func(*Dispatcher)

// WithLogger sets the debug logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithObserver attaches an observer, typically a metrics exporter.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observers = append(d.observers, o) }
}

// WithMonitor sets the resource snapshot source used in Adaptive mode.
func WithMonitor(src sysmon.Source) Option {
	return func(d *Dispatcher) { d.monitor = src }
}

// WithClock replaces the time source, for reproducible timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// Dispatcher routes arithmetic through the kernels and records telemetry.
// The zero value is Uninitialized; use New or Init.
type Dispatcher struct {
	cfg       Config
	state     State
	log       *telemetry.Log
	logger    logging.Logger
	observers []Observer
	monitor   sysmon.Source
	now       func() time.Time
	session   string
	calls     uint64
}

// New returns a Ready dispatcher.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{}
	if err := d.Init(cfg, opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// Init validates cfg, allocates the telemetry log and moves an
// Uninitialized dispatcher to Ready. It fails with ConfigError for an
// invalid configuration, MemoryError for an oversized log, and StateError
// when the dispatcher is not Uninitialized.
func (d *Dispatcher) Init(cfg Config, opts ...Option) error {
	if d.state != Uninitialized {
		return apperrors.StateError{Op: "init", State: d.state.String()}
	}
	if err := cfg.Check(); err != nil {
		return err
	}
	if err := cfg.checkMemory(); err != nil {
		return err
	}
	d.cfg = cfg
	d.logger = logging.Nop
	d.now = time.Now
	for _, opt := range opts {
		opt(d)
	}
	d.log = telemetry.NewLog(cfg.LogCapacity)
	d.session = uuid.New().String()
	d.state = Ready
	d.logger.Debug("dispatcher ready",
		logging.String("session", d.session),
		logging.String("mode", cfg.Mode.String()),
		logging.Int("log_capacity", cfg.LogCapacity))
	return nil
}

// State returns the lifecycle state.
func (d *Dispatcher) State() State { return d.state }

// Session returns the id generated at init, used to label persisted
// telemetry.
func (d *Dispatcher) Session() string { return d.session }

// GetConfig returns the active configuration.
func (d *Dispatcher) GetConfig() Config { return d.cfg }

// SetConfig replaces the configuration between calls. The log capacity is
// fixed at init and cannot change.
func (d *Dispatcher) SetConfig(cfg Config) error {
	if d.state != Ready {
		return apperrors.StateError{Op: "set config", State: d.state.String()}
	}
	if err := cfg.Check(); err != nil {
		return err
	}
	if cfg.LogCapacity != d.cfg.LogCapacity {
		return apperrors.NewConfigError("log capacity is fixed at init (%d), got %d", d.cfg.LogCapacity, cfg.LogCapacity)
	}
	d.cfg = cfg
	return nil
}

// Evaluate returns a op b. It never fails: a zero divisor yields +/-Inf
// under float result tags and the saturated integer extreme otherwise.
// Outside the Ready state the straight answer is returned unrecorded.
func (d *Dispatcher) Evaluate(a, b numeric.Value, op numeric.OpKind) numeric.Value {
	if op.IsUnary() {
		b = numeric.Value{}
	}
	if d.state != Ready {
		return numeric.Apply(op, a, b)
	}
	start := d.now()
	decision := classifier.Classify(a, b, op, d.options())
	result, used := d.run(decision.Sutra, a, b, op)
	rec := d.settle(decision, used, a, b, op, result)
	rec.Timestamp = start
	rec.Elapsed = d.now().Sub(start)
	d.record(rec)
	return rec.Result
}

// options assembles the classifier options, sampling the monitor in
// Adaptive mode.
func (d *Dispatcher) options() classifier.Options {
	opts := classifier.Options{Mode: d.cfg.Mode, Opt: d.cfg.OptLevel, Sutra: d.cfg.Sutra}
	if d.cfg.Mode == classifier.Adaptive && d.monitor != nil {
		opts.Snapshot, opts.HasSnapshot = d.monitor.Snapshot()
	}
	return opts
}

// newRecord builds the record for a call the kernel s answered, marking a
// precondition fallback when a vedic choice came back as Standard.
func (d *Dispatcher) newRecord(decision classifier.Result, used sutra.Sutra, a, b numeric.Value, op numeric.OpKind, result numeric.Value) telemetry.Record {
	rec := telemetry.Record{
		Op:         op,
		A:          a,
		B:          b,
		Result:     result,
		Sutra:      used,
		Confidence: decision.Confidence,
		Reason:     decision.Reason,
		Mode:       d.cfg.Mode,
		Platform:   d.cfg.Platform,
	}
	if decision.Sutra.IsVedic() && !used.IsVedic() {
		rec.Reason = ReasonPreconditionFallback
		rec.Fallback = true
		d.logger.Debug("kernel precondition miss",
			logging.String("sutra", decision.Sutra.String()),
			logging.String("op", op.String()),
			logging.String("a", a.String()),
			logging.String("b", b.String()))
	}
	return rec
}

// settle builds the record and, with validation on, replaces a kernel
// answer that disagrees with straight arithmetic.
func (d *Dispatcher) settle(decision classifier.Result, used sutra.Sutra, a, b numeric.Value, op numeric.OpKind, result numeric.Value) telemetry.Record {
	rec := d.newRecord(decision, used, a, b, op, result)
	if d.cfg.Validate && used.IsVedic() {
		if want := numeric.Apply(op, a, b); !same(want, result) {
			d.mismatch(&rec, want)
		}
	}
	return rec
}

// mismatch rewrites rec to carry the straight answer want.
func (d *Dispatcher) mismatch(rec *telemetry.Record, want numeric.Value) {
	d.logger.Error("kernel mismatch", nil,
		logging.String("sutra", rec.Sutra.String()),
		logging.String("op", rec.Op.String()),
		logging.String("a", rec.A.String()),
		logging.String("b", rec.B.String()),
		logging.String("got", rec.Result.String()),
		logging.String("want", want.String()))
	rec.Result = want
	rec.Sutra = sutra.Standard
	rec.Reason = ReasonMismatchFallback
	rec.Fallback = true
}

// same reports whether two values agree in tag and payload.
func same(x, y numeric.Value) bool {
	return x.Tag() == y.Tag() && x.Equal(y)
}

// record appends rec to the log and notifies observers.
func (d *Dispatcher) record(rec telemetry.Record) {
	d.calls++
	for _, o := range d.observers {
		o.ObserveRecord(rec)
	}
	if !d.cfg.Logging {
		return
	}
	if d.log.Append(rec) {
		return
	}
	for _, o := range d.observers {
		o.ObserveDrop()
	}
	if n := d.log.Dropped(); isPowerOfTwo(n) {
		d.logger.Debug("telemetry log full, dropping records",
			logging.Int("capacity", d.log.Cap()),
			logging.Uint64("dropped", n))
	}
}

// run evaluates op with kernel s and reports the identity that produced
// the answer.
func (d *Dispatcher) run(s sutra.Sutra, a, b numeric.Value, op numeric.OpKind) (numeric.Value, sutra.Sutra) {
	if !s.IsVedic() {
		return numeric.Apply(op, a, b), sutra.Standard
	}
	tag := numeric.ResultTag(a, b)
	x, y := a.Int64(), b.Int64()
	switch op {
	case numeric.Mul:
		p, used := sutra.Product(s, x, y)
		return numeric.FromInt128(p, tag), used
	case numeric.Square, numeric.Pow:
		p, used := sutra.SquareOf(s, x)
		return numeric.FromInt128(p, tag), used
	case numeric.Div:
		q, r, used := sutra.Quotient(s, x, y)
		if !used.IsVedic() {
			// Standard's q and r are a sentinel for divisions no kernel takes.
			return numeric.Apply(op, a, b), used
		}
		if r != 0 {
			return numeric.InexactQuotient(a, b), used
		}
		return numeric.FromInt128(numeric.I128(q), tag), used
	case numeric.Mod:
		_, r, used := sutra.Quotient(s, x, y)
		if !used.IsVedic() {
			return numeric.Apply(op, a, b), used
		}
		return numeric.FromInt128(numeric.I128(r), tag), used
	case numeric.Add, numeric.Sub:
		p, used := sutra.Sum(s, x, y, op == numeric.Sub)
		return numeric.FromInt128(p, tag), used
	}
	return numeric.Apply(op, a, b), sutra.Standard
}

// Multiply returns a*b.
func (d *Dispatcher) Multiply(a, b numeric.Value) numeric.Value {
	return d.Evaluate(a, b, numeric.Mul)
}

// Divide returns a/b under the promotion rule.
func (d *Dispatcher) Divide(a, b numeric.Value) numeric.Value {
	return d.Evaluate(a, b, numeric.Div)
}

// Square returns a*a.
func (d *Dispatcher) Square(a numeric.Value) numeric.Value {
	return d.Evaluate(a, numeric.Value{}, numeric.Square)
}

// Add returns a+b.
func (d *Dispatcher) Add(a, b numeric.Value) numeric.Value {
	return d.Evaluate(a, b, numeric.Add)
}

// Sub returns a-b.
func (d *Dispatcher) Sub(a, b numeric.Value) numeric.Value {
	return d.Evaluate(a, b, numeric.Sub)
}

// Mod returns the Euclidean remainder of a/b.
func (d *Dispatcher) Mod(a, b numeric.Value) numeric.Value {
	return d.Evaluate(a, b, numeric.Mod)
}

// DivMod returns the Euclidean quotient and remainder, a = q*b + r with
// 0 <= r < |b|. It records one Div record whose result is the quotient.
// Float operands use the floored quotient; a zero divisor yields the
// division-by-zero sentinel for both results.
func (d *Dispatcher) DivMod(a, b numeric.Value) (q, r numeric.Value) {
	if d.state != Ready {
		return divModStraight(a, b)
	}
	start := d.now()
	decision := classifier.Classify(a, b, numeric.Div, d.options())
	q, r, used := divMod(decision.Sutra, a, b)
	rec := d.newRecord(decision, used, a, b, numeric.Div, q)
	if d.cfg.Validate && used.IsVedic() {
		if wq, wr := divModStraight(a, b); !same(q, wq) || !same(r, wr) {
			d.mismatch(&rec, wq)
			q, r = wq, wr
		}
	}
	rec.Timestamp = start
	rec.Elapsed = d.now().Sub(start)
	d.record(rec)
	return q, r
}

// divMod runs the division kernel s when both operands are integers and
// the division is representable.
func divMod(s sutra.Sutra, a, b numeric.Value) (q, r numeric.Value, used sutra.Sutra) {
	x, y := a.Int64(), b.Int64()
	if !a.IsInteger() || !b.IsInteger() || y == 0 || (x == math.MinInt64 && y == -1) {
		q, r = divModStraight(a, b)
		return q, r, sutra.Standard
	}
	qi, ri, used := sutra.Quotient(s, x, y)
	tag := numeric.ResultTag(a, b)
	return numeric.FromInt128(numeric.I128(qi), tag), numeric.FromInt128(numeric.I128(ri), tag), used
}

func divModStraight(a, b numeric.Value) (q, r numeric.Value) {
	tag := numeric.ResultTag(a, b)
	x, y := a.Int64(), b.Int64()
	switch {
	case b.Float64() == 0:
		q = numeric.DivideByZero(a, b)
		return q, q
	case !tag.IsInteger():
		q = numeric.FromFloat64(math.Floor(a.Float64() / b.Float64())).Convert(tag)
		return q, numeric.Apply(numeric.Mod, a, b)
	case x == math.MinInt64 && y == -1:
		return numeric.InexactQuotient(a, b), numeric.FromInt128(numeric.I128(0), tag)
	}
	qi, ri := numeric.DivModEuclid(x, y)
	return numeric.FromInt128(numeric.I128(qi), tag), numeric.FromInt128(numeric.I128(ri), tag)
}

// IsDivisible reports whether p divides n, using the Vestanam
// osculation test where one is known.
func (d *Dispatcher) IsDivisible(n, p int64) bool {
	ok, used := sutra.IsDivisible(n, p)
	d.logger.Debug("divisibility", logging.Int64("n", n), logging.Int64("p", p), logging.String("sutra", used.String()))
	return ok
}

// SolveLinear solves a1*x + b1*y = c1, a2*x + b2*y = c2. A singular system
// yields ErrNoUniqueSolution.
func (d *Dispatcher) SolveLinear(a1, b1, c1, a2, b2, c2 int64) (x, y numeric.Value, err error) {
	return sutra.SolveLinear(a1, b1, c1, a2, b2, c2)
}

// FindSimpleRoot returns the first integer root in [-10, 10] of the
// polynomial with coefficients highest degree first, or ErrNoSimpleRoot.
func (d *Dispatcher) FindSimpleRoot(coeffs []float64) (int64, error) {
	return sutra.FindSimpleRoot(coeffs)
}

// ExportTelemetry writes the log as CSV. It is permitted only in Ready.
func (d *Dispatcher) ExportTelemetry(w io.Writer) error {
	if d.state != Ready {
		return apperrors.StateError{Op: "export telemetry", State: d.state.String()}
	}
	return d.log.Export(w)
}

// SaveTelemetry persists the log with s under label. It is permitted only
// in Ready.
func (d *Dispatcher) SaveTelemetry(s Saver, label string) (string, error) {
	if d.state != Ready {
		return "", apperrors.StateError{Op: "save telemetry", State: d.state.String()}
	}
	return s.Save(label, d.log)
}

// Records returns a copy of the logged records in call order.
func (d *Dispatcher) Records() []telemetry.Record {
	if d.log == nil {
		return nil
	}
	return d.log.Records()
}

// ClearTelemetry empties the log. The drop counter keeps counting.
func (d *Dispatcher) ClearTelemetry() {
	if d.log != nil {
		d.log.Clear()
	}
}

// Stats summarises the telemetry log. A torn down dispatcher reports an
// empty summary.
func (d *Dispatcher) Stats() telemetry.Stats {
	if d.log == nil {
		return telemetry.Stats{}
	}
	return d.log.Stats()
}

// Calls returns the number of recorded calls, logged or not.
func (d *Dispatcher) Calls() uint64 { return d.calls }

// Teardown releases the log and moves to the terminal state. It is
// idempotent.
func (d *Dispatcher) Teardown() {
	if d.state == TornDown {
		return
	}
	if d.state == Ready {
		d.logger.Debug("dispatcher teardown",
			logging.String("session", d.session),
			logging.Uint64("calls", d.calls),
			logging.Int("logged", d.log.Len()),
			logging.Uint64("dropped", d.log.Dropped()))
	}
	d.log = nil
	d.state = TornDown
}

// isPowerOfTwo reports whether n is a power of two.
func isPowerOfTwo(n uint64) bool { return bits.OnesCount64(n) == 1 }
