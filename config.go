package thread

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// AssignPolicy decides what Assign does with a goroutine the destination
// still owns.
type AssignPolicy int

const (
	// AssignJoin joins the prior goroutine before taking ownership.
	AssignJoin AssignPolicy = iota
	// AssignDetach detaches the prior goroutine before taking ownership.
	AssignDetach
	// AssignReject refuses the assignment with an IllegalStateErr.
	AssignReject
)

func (p AssignPolicy) String() string {
	switch p {
	case AssignJoin:
		return "join"
	case AssignDetach:
		return "detach"
	case AssignReject:
		return "reject"
	default:
		return fmt.Sprintf("AssignPolicy(%d)", int(p))
	}
}

const (
	// DefaultName is the name of a thread started without WithName.
	DefaultName = ""
	// DefaultJoinWarnAfter disables the slow join warning.
	DefaultJoinWarnAfter = time.Duration(0)
	// DefaultAssignPolicy is the policy of a thread started without WithAssignPolicy.
	DefaultAssignPolicy = AssignJoin
)

// Config controls a single Thread.
type Config struct {
	// Name is attached to every log entry of the thread.
	Name string
	// JoinWarnAfter, when positive, makes a blocked Join or Close log a
	// warning each time this much time passed without the goroutine returning.
	JoinWarnAfter time.Duration
	// AssignPolicy is applied when another thread is assigned into this one
	// while it still owns a joinable goroutine.
	AssignPolicy AssignPolicy
}

// NewDefaultConfig return a Config with default settings
func NewDefaultConfig() Config {
	return Config{
		Name:          DefaultName,
		JoinWarnAfter: DefaultJoinWarnAfter,
		AssignPolicy:  DefaultAssignPolicy,
	}
}

type options struct {
	config Config
	logger *zap.Logger
	clock  clockwork.Clock
}

func newOptions(opts []Opt) *options {
	o := &options{
		config: NewDefaultConfig(),
		logger: zap.NewNop(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	return o
}

// Opt configures a Thread at construction.
type Opt func(*options)

// WithConfig replaces the whole config.
func WithConfig(cfg Config) Opt {
	return func(o *options) {
		o.config = cfg
	}
}

// WithName sets Config.Name.
func WithName(name string) Opt {
	return func(o *options) {
		o.config.Name = name
	}
}

// WithJoinWarnAfter sets Config.JoinWarnAfter.
func WithJoinWarnAfter(d time.Duration) Opt {
	return func(o *options) {
		o.config.JoinWarnAfter = d
	}
}

// WithAssignPolicy sets Config.AssignPolicy.
func WithAssignPolicy(p AssignPolicy) Opt {
	return func(o *options) {
		o.config.AssignPolicy = p
	}
}

// WithLogger specifies logger for the thread.
func WithLogger(logger *zap.Logger) Opt {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the clock used to time slow joins.
func WithClock(clock clockwork.Clock) Opt {
	return func(o *options) {
		o.clock = clock
	}
}
