package cubeclust

import (
	"github.com/hupe1980/cubeclust/executor"
	"github.com/hupe1980/cubeclust/resource"
	"github.com/hupe1980/cubeclust/snapshot"
)

const (
	// DefaultConvergenceThreshold is the default tolerance on the objective
	// delta between iterations.
	DefaultConvergenceThreshold = 1e-5

	// DefaultMaxIterations is the default iteration cap per run.
	DefaultMaxIterations = 1

	// DefaultRuns is the default number of independently initialized runs.
	DefaultRuns = 1

	// DefaultEpsilon is the default regularizer for empty blocks and log
	// arguments.
	DefaultEpsilon = 1e-8
)

type options struct {
	threshold     float64
	maxIterations int
	nRuns         int
	epsilon       float64
	rowInit       []int
	colInit       []int
	bandInit      []int
	writer        *snapshot.Writer
	exec          executor.Executor
	parallelism   int
	lowMemory     bool
	logger        *Logger
	metrics       MetricsCollector
	seed          int64
	hasSeed       bool
	ctrl          *resource.Controller
}

func defaultOptions() options {
	return options{
		threshold:     DefaultConvergenceThreshold,
		maxIterations: DefaultMaxIterations,
		nRuns:         DefaultRuns,
		epsilon:       DefaultEpsilon,
		parallelism:   1,
		logger:        NoopLogger(),
		metrics:       NoopMetrics{},
	}
}

func (o *options) validate() error {
	if o.threshold <= 0 {
		return &ErrInvalidParameter{Name: "convergence threshold", Value: o.threshold, Reason: "must be > 0"}
	}
	if o.maxIterations < 1 {
		return &ErrInvalidParameter{Name: "max iterations", Value: o.maxIterations, Reason: "must be >= 1"}
	}
	if o.nRuns < 1 {
		return &ErrInvalidParameter{Name: "runs", Value: o.nRuns, Reason: "must be >= 1"}
	}
	if o.epsilon <= 0 {
		return &ErrInvalidParameter{Name: "epsilon", Value: o.epsilon, Reason: "must be > 0"}
	}
	if o.parallelism < 1 {
		return &ErrInvalidParameter{Name: "parallelism", Value: o.parallelism, Reason: "must be >= 1"}
	}
	return nil
}

func (o *options) executor() executor.Executor {
	if o.exec != nil {
		return o.exec
	}
	if o.ctrl != nil {
		return executor.NewLocalWithController(o.ctrl)
	}
	p := o.parallelism
	if o.lowMemory {
		p = 1
	}
	return executor.NewLocal(p)
}

// Option configures a clustering session.
type Option func(*options)

// WithConvergenceThreshold sets the tolerance on the objective delta below
// which a run is considered converged.
func WithConvergenceThreshold(t float64) Option {
	return func(o *options) {
		o.threshold = t
	}
}

// WithMaxIterations caps the number of alternating-minimization iterations
// per run.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithRuns sets how many independently initialized runs to perform. The
// session keeps the lowest-error outcome.
func WithRuns(n int) Option {
	return func(o *options) {
		o.nRuns = n
	}
}

// WithEpsilon sets the regularizer added to block averages and log
// arguments. It keeps empty blocks and zero averages finite.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		o.epsilon = eps
	}
}

// WithInitialPartitions fixes the initial cluster assignments instead of
// drawing them at random. band is ignored by co-clustering sessions and may
// be nil for them. Fixed initials require WithRuns(1).
func WithInitialPartitions(band, row, col []int) Option {
	return func(o *options) {
		o.bandInit = band
		o.rowInit = row
		o.colInit = col
	}
}

// WithSnapshotWriter enables incremental persistence: the best-so-far state
// is written whenever a run improves it, plus once unconditionally at the
// end of the session.
func WithSnapshotWriter(w *snapshot.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithExecutor replaces the default local worker pool with a custom
// execution backend.
func WithExecutor(e executor.Executor) Option {
	return func(o *options) {
		o.exec = e
	}
}

// WithParallelism sets how many runs the default local executor executes
// concurrently. Ignored when a custom executor is supplied.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithLowMemory forces strictly sequential run execution regardless of the
// configured parallelism.
func WithLowMemory() Option {
	return func(o *options) {
		o.lowMemory = true
	}
}

// WithLogger sets the session logger. Nil restores the no-op logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. Nil restores the no-op collector.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetrics{}
		}
		o.metrics = m
	}
}

// WithSeed makes the random partition initialization deterministic. Run i
// draws from a source seeded with seed+i, so runs stay independent yet
// reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// WithResourceController bounds the session's concurrency and snapshot IO
// through the given controller.
func WithResourceController(ctrl *resource.Controller) Option {
	return func(o *options) {
		o.ctrl = ctrl
	}
}
