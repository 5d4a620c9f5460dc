// Package thread provides Thread, an owner for a single goroutine that makes
// sure the goroutine is joined before the owner lets go of it.
//
// A Thread is released with Close, typically deferred right after it is
// started, or by running the owning scope through Guard:
//
//	t, err := thread.New(work)
//	if err != nil {
//		return err
//	}
//	defer t.Close()
//
// Ownership is exclusive. A Thread must not be copied, use Move or Assign to
// hand the goroutine to another owner.
package thread

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/jolestar/go-guarded-thread/concurrent"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Runnable is the entry point of a Thread.
type Runnable interface {
	Run()
}

// FuncRun adapts an ordinary function to Runnable.
type FuncRun func()

// Run calls f.
func (f FuncRun) Run() {
	f()
}

var (
	lastID  uint64
	running concurrent.AtomicInteger
)

// Running returns the number of goroutines started by this package whose
// entry point has not returned yet, detached ones included.
func Running() int {
	return int(running.Get())
}

// noCopy makes go vet's copylocks check report any copy of the enclosing struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Thread owns at most one goroutine. The zero value owns nothing and is
// ready to use.
//
// A Thread is not safe for concurrent use: like any uniquely owned value
// only one goroutine may operate on it at a time.
type Thread struct {
	noCopy noCopy
	h      *handle
}

// New starts entry in a new goroutine owned by the returned Thread.
// The caller must Close, Join or Detach it.
func New(entry func(), opts ...Opt) (*Thread, error) {
	if entry == nil {
		return nil, NewSpawnErr("thread: entry point can not be nil")
	}
	return NewWithRunnable(FuncRun(entry), opts...)
}

// NewWithRunnable starts run.Run in a new goroutine owned by the returned Thread.
func NewWithRunnable(run Runnable, opts ...Opt) (*Thread, error) {
	t := new(Thread)
	if err := t.start(run, opts); err != nil {
		return nil, err
	}
	return t, nil
}

// NewWithArg starts fn(arg) in a new goroutine owned by the returned Thread.
// arg is evaluated by the caller, before the goroutine starts.
func NewWithArg[A any](fn func(A), arg A, opts ...Opt) (*Thread, error) {
	if fn == nil {
		return nil, NewSpawnErr("thread: entry point can not be nil")
	}
	return New(func() { fn(arg) }, opts...)
}

// Start starts entry in a new goroutine owned by t. It is meant for a Thread
// embedded by value in another struct. Starting a Thread that still owns a
// joinable goroutine fails with IllegalStateErr.
func (t *Thread) Start(entry func(), opts ...Opt) error {
	if entry == nil {
		return NewSpawnErr("thread: entry point can not be nil")
	}
	return t.start(FuncRun(entry), opts)
}

func (t *Thread) start(run Runnable, opts []Opt) error {
	if t.h != nil {
		return NewIllegalStateErr("thread: already owns a joinable goroutine")
	}
	if run == nil {
		return NewSpawnErr("thread: runnable can not be nil")
	}
	t.h = spawn(run, newOptions(opts))
	return nil
}

// Joinable reports whether t owns a goroutine that was neither joined nor detached.
func (t *Thread) Joinable() bool {
	return t.h != nil
}

// ID returns a process unique id of the owned goroutine, 0 if t owns none.
func (t *Thread) ID() uint64 {
	if t.h == nil {
		return 0
	}
	return t.h.id
}

// Name returns the configured name of the owned goroutine.
func (t *Thread) Name() string {
	if t.h == nil {
		return ""
	}
	return t.h.cfg.Name
}

// Join blocks until the owned goroutine returns. Afterwards t owns nothing.
//
// Joining a Thread that is not joinable, or joining from inside the owned
// goroutine, fails with IllegalStateErr.
func (t *Thread) Join() error {
	h := t.h
	if h == nil {
		return NewIllegalStateErr("thread: not joinable")
	}
	if h.gid.Load() == concurrent.GoroutineID() {
		return NewIllegalStateErr("thread: join from the owned goroutine would deadlock")
	}
	h.wait()
	t.h = nil
	h.release()
	h.log.Debug("thread joined")
	return nil
}

// Detach lets the owned goroutine run on its own. Afterwards t owns nothing
// and nobody waits for the goroutine.
func (t *Thread) Detach() error {
	h := t.h
	if h == nil {
		return NewIllegalStateErr("thread: not joinable")
	}
	t.h = nil
	h.release()
	h.log.Debug("thread detached")
	return nil
}

// Close joins the owned goroutine if t is joinable, it does nothing otherwise.
func (t *Thread) Close() error {
	if t.h == nil {
		return nil
	}
	return t.Join()
}

// Move hands the owned goroutine to a new Thread. Afterwards t owns nothing.
func (t *Thread) Move() *Thread {
	moved := &Thread{h: t.h}
	t.h = nil
	return moved
}

// Assign takes the goroutine owned by src, leaving src empty.
//
// If t still owns a joinable goroutine its Config.AssignPolicy applies:
// AssignJoin joins it first, AssignDetach detaches it first and AssignReject
// fails with IllegalStateErr without touching either Thread.
func (t *Thread) Assign(src *Thread) error {
	if t == src {
		return nil
	}
	if h := t.h; h != nil {
		switch h.cfg.AssignPolicy {
		case AssignReject:
			return NewIllegalStateErr("thread: assign into a thread that still owns a joinable goroutine")
		case AssignDetach:
			h.log.Debug("detaching previous goroutine on assign")
			if err := t.Detach(); err != nil {
				return err
			}
		default:
			h.log.Debug("joining previous goroutine on assign")
			if err := t.Join(); err != nil {
				return err
			}
		}
	}
	if src != nil {
		t.h = src.h
		src.h = nil
	}
	return nil
}

type handle struct {
	id    uint64
	gid   atomic.Int64
	cfg   Config
	log   *zap.Logger
	clock clockwork.Clock
	owner *ownerToken

	lock     sync.Mutex
	cond     *concurrent.TimeoutCond
	finished bool
}

func spawn(run Runnable, o *options) *handle {
	h := &handle{
		id:    atomic.AddUint64(&lastID, 1),
		cfg:   o.config,
		clock: o.clock,
	}
	h.log = o.logger.With(zap.Uint64("thread", h.id), zap.String("name", h.cfg.Name))
	h.cond = concurrent.NewTimeoutCond(&h.lock, h.clock)
	h.owner = &ownerToken{log: h.log}
	runtime.SetFinalizer(h.owner, (*ownerToken).reportDropped)

	running.IncrementAndGet()
	go h.run(run)
	h.log.Debug("thread started")
	return h
}

func (h *handle) run(r Runnable) {
	h.gid.Store(concurrent.GoroutineID())
	defer h.finish()
	r.Run()
}

func (h *handle) finish() {
	running.DecrementAndGet()
	h.lock.Lock()
	h.finished = true
	h.cond.Broadcast()
	h.lock.Unlock()
}

func (h *handle) wait() {
	h.lock.Lock()
	defer h.lock.Unlock()
	begin := h.clock.Now()
	for !h.finished {
		if h.cfg.JoinWarnAfter <= 0 {
			h.cond.Wait()
			continue
		}
		if _, signalled := h.cond.WaitWithTimeout(h.cfg.JoinWarnAfter); !signalled && !h.finished {
			h.log.Warn("join still waiting for thread", zap.Duration("elapsed", h.clock.Since(begin)))
		}
	}
}

func (h *handle) release() {
	h.owner.released.Store(true)
}

// ownerToken holds no pointer back to its handle, its finalizer runs once
// the handle is unreachable.
type ownerToken struct {
	released atomic.Bool
	log      *zap.Logger
}

func (o *ownerToken) reportDropped() {
	if !o.released.Load() {
		o.log.Warn("thread dropped without join or detach")
	}
}
