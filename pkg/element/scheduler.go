package element

import (
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/view"
)

// Scheduler defers work until the current task completes.
type Scheduler interface {
	Schedule(task func())
}

// TaskQueue is a deferred FIFO queue, the equivalent of a microtask queue.
// Tasks run when the owner calls Flush.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// NewTaskQueue returns an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Schedule enqueues task.
func (q *TaskQueue) Schedule(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Flush runs queued tasks until the queue is empty, including tasks scheduled
// while flushing, and returns how many ran.
func (q *TaskQueue) Flush() int {
	ran := 0
	for {
		q.mu.Lock()
		batch := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		if len(batch) == 0 {
			return ran
		}
		for _, task := range batch {
			task()
			ran++
		}
	}
}

// Pending reports how many tasks wait for the next Flush.
func (q *TaskQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// ImmediateScheduler runs tasks inline. Every mutation renders synchronously,
// trading batching for simplicity.
type ImmediateScheduler struct{}

// Schedule runs task straight away.
func (ImmediateScheduler) Schedule(task func()) {
	if task != nil {
		task()
	}
}

// RenderObserver receives the view produced by each render pass.
type RenderObserver func(*view.Node)

// reactor tracks the dirty flag of one element and coalesces any number of
// invalidations into a single scheduled render pass.
type reactor struct {
	tag       string
	scheduler Scheduler
	own       *TaskQueue
	render    func() *view.Node
	logger    *zap.Logger

	dirty     bool
	closed    bool
	renders   int
	last      *view.Node
	nextID    uint64
	observers []observerEntry
}

type observerEntry struct {
	id uint64
	fn RenderObserver
}

func newReactor(tag string, cfg config, render func() *view.Node) *reactor {
	r := &reactor{
		tag:       tag,
		scheduler: cfg.scheduler,
		render:    render,
		logger:    cfg.logger,
	}
	if r.scheduler == nil {
		r.own = NewTaskQueue()
		r.scheduler = r.own
	}
	return r
}

func (r *reactor) invalidate() {
	if r.closed || r.dirty {
		return
	}
	r.dirty = true
	r.scheduler.Schedule(r.flush)
}

func (r *reactor) flush() {
	if r.closed || !r.dirty {
		return
	}
	r.dirty = false
	node := r.render()
	r.last = node
	r.renders++
	r.logger.Debug("element rendered",
		zap.String("tag", r.tag),
		zap.Int("pass", r.renders),
	)

	observers := append([]observerEntry(nil), r.observers...)
	for _, observer := range observers {
		observer.fn(node)
	}
}

// flushNow renders a pending pass without waiting for the scheduler. A task
// already queued elsewhere finds the element clean and does nothing.
func (r *reactor) flushNow() int {
	before := r.renders
	if r.own != nil {
		r.own.Flush()
	}
	r.flush()
	return r.renders - before
}

func (r *reactor) observe(fn RenderObserver) func() {
	if fn == nil {
		return func() {}
	}
	r.nextID++
	id := r.nextID
	r.observers = append(r.observers, observerEntry{id: id, fn: fn})
	return func() {
		for idx, entry := range r.observers {
			if entry.id == id {
				r.observers = append(r.observers[:idx:idx], r.observers[idx+1:]...)
				return
			}
		}
	}
}

func (r *reactor) close() {
	r.closed = true
	r.dirty = false
	r.observers = nil
}
