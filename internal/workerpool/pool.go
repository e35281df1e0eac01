// Package workerpool provides a bounded goroutine pool for running
// independent per-zone work concurrently, adapted from the teacher's
// internal/workers.Pool. Generalized from a tick-processing throughput
// pool to a general bounded task pool; the worker loop, panic
// recovery, and timeout handling are unchanged in shape.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atlas-quant/zoneengine/internal/metricsserver"
	"go.uber.org/zap"
)

// Task is a unit of work submitted to a Pool.
type Task interface {
	Execute() error
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func() error

func (f TaskFunc) Execute() error { return f() }

// Config configures a Pool.
type Config struct {
	Name            string
	NumWorkers      int
	QueueSize       int
	TaskTimeout     time.Duration
	ShutdownTimeout time.Duration
	PanicRecovery   bool
}

// DefaultConfig sizes the pool for CPU-bound per-zone feature
// extraction (spec.md §5's "optional parallel execution" note): one
// worker per core rather than the teacher's I/O-bound 2x multiplier.
func DefaultConfig(name string, numCPU int) *Config {
	if numCPU < 1 {
		numCPU = 1
	}
	return &Config{
		Name:            name,
		NumWorkers:      numCPU,
		QueueSize:       1024,
		TaskTimeout:     30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		PanicRecovery:   true,
	}
}

// Stats reports pool counters.
type Stats struct {
	TasksSubmitted int64
	TasksCompleted int64
	TasksFailed    int64
	TasksTimeout   int64
	PanicRecovered int64
}

// Pool manages a fixed set of worker goroutines draining a bounded
// task queue.
type Pool struct {
	logger *zap.Logger
	config *Config

	taskQueue chan Task
	wg        sync.WaitGroup

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc

	tasksSubmitted int64
	tasksCompleted int64
	tasksFailed    int64
	tasksTimeout   int64
	panicRecovered int64
}

// New builds a Pool. config may be nil to use DefaultConfig("pool", 1).
func New(logger *zap.Logger, config *Config) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config == nil {
		config = DefaultConfig("pool", 1)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		logger:    logger,
		config:    config,
		taskQueue: make(chan Task, config.QueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the worker goroutines. A no-op if already running.
func (p *Pool) Start() {
	if p.running.Swap(true) {
		return
	}
	p.logger.Info("starting worker pool",
		zap.String("name", p.config.Name),
		zap.Int("workers", p.config.NumWorkers),
		zap.Int("queue_size", p.config.QueueSize))

	for i := 0; i < p.config.NumWorkers; i++ {
		p.wg.Add(1)
		go p.runWorker(i)
	}
}

func (p *Pool) runWorker(id int) {
	defer p.wg.Done()
	workerLogger := p.logger.With(zap.Int("worker_id", id))
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			metricsserver.WorkerPoolQueueDepth.WithLabelValues(p.config.Name).Set(float64(len(p.taskQueue)))
			p.executeTask(task, workerLogger)
		}
	}
}

func (p *Pool) executeTask(task Task, logger *zap.Logger) {
	taskCtx, cancel := context.WithTimeout(p.ctx, p.config.TaskTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		var err error
		if p.config.PanicRecovery {
			defer func() {
				if r := recover(); r != nil {
					atomic.AddInt64(&p.panicRecovered, 1)
					logger.Error("worker recovered from panic", zap.Any("panic", r))
					done <- &PanicError{Recovered: r}
					return
				}
			}()
		}
		err = task.Execute()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			atomic.AddInt64(&p.tasksFailed, 1)
			logger.Debug("task failed", zap.Error(err))
			return
		}
		atomic.AddInt64(&p.tasksCompleted, 1)
	case <-taskCtx.Done():
		atomic.AddInt64(&p.tasksTimeout, 1)
		logger.Warn("task timed out", zap.Duration("timeout", p.config.TaskTimeout))
	}
}

// Submit enqueues a task without blocking; returns ErrQueueFull if the
// queue is at capacity, ErrPoolStopped if the pool is not running.
func (p *Pool) Submit(task Task) error {
	if !p.running.Load() {
		return ErrPoolStopped
	}
	select {
	case p.taskQueue <- task:
		atomic.AddInt64(&p.tasksSubmitted, 1)
		metricsserver.WorkerPoolQueueDepth.WithLabelValues(p.config.Name).Set(float64(len(p.taskQueue)))
		return nil
	default:
		return ErrQueueFull
	}
}

// SubmitFunc submits a plain function as a Task.
func (p *Pool) SubmitFunc(fn func() error) error { return p.Submit(TaskFunc(fn)) }

// Stop signals all workers to exit and waits up to ShutdownTimeout.
func (p *Pool) Stop() error {
	if !p.running.Swap(false) {
		return nil
	}
	p.logger.Info("stopping worker pool", zap.String("name", p.config.Name))
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(p.config.ShutdownTimeout):
		p.logger.Warn("worker pool shutdown timed out", zap.String("name", p.config.Name))
		return ErrShutdownTimeout
	}
}

// IsRunning reports whether the pool is accepting tasks.
func (p *Pool) IsRunning() bool { return p.running.Load() }

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	return Stats{
		TasksSubmitted: atomic.LoadInt64(&p.tasksSubmitted),
		TasksCompleted: atomic.LoadInt64(&p.tasksCompleted),
		TasksFailed:    atomic.LoadInt64(&p.tasksFailed),
		TasksTimeout:   atomic.LoadInt64(&p.tasksTimeout),
		PanicRecovered: atomic.LoadInt64(&p.panicRecovered),
	}
}

var (
	ErrPoolStopped     = &PoolError{Message: "pool is stopped"}
	ErrQueueFull       = &PoolError{Message: "task queue is full"}
	ErrShutdownTimeout = &PoolError{Message: "shutdown timed out"}
)

// PoolError is a sentinel pool-level error.
type PoolError struct{ Message string }

func (e *PoolError) Error() string { return e.Message }

// PanicError wraps a recovered panic value as an error.
type PanicError struct{ Recovered interface{} }

func (e *PanicError) Error() string { return "panic recovered in worker pool task" }
