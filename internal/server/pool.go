package server

import "sync"

// WorkerPool runs a fixed number of workers over a shared queue. Each job
// is handled to completion by exactly one worker.
type WorkerPool[T any] struct {
	size      int
	queue     chan T
	wg        sync.WaitGroup
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewWorkerPool creates a pool of size workers and a queue holding up to
// queueSize pending jobs.
func NewWorkerPool[T any](size, queueSize int) *WorkerPool[T] {
	if size < 1 {
		size = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &WorkerPool[T]{
		size:  size,
		queue: make(chan T, queueSize),
		done:  make(chan struct{}),
	}
}

func (p *WorkerPool[T]) Size() int {
	return p.size
}

// Start launches the workers. Worker ids run from 1 to Size().
func (p *WorkerPool[T]) Start(handle func(workerID int, job T)) {
	p.startOnce.Do(func() {
		p.wg.Add(p.size)
		for id := 1; id <= p.size; id++ {
			go p.work(id, handle)
		}
		go func() {
			p.wg.Wait()
			close(p.done)
		}()
	})
}

func (p *WorkerPool[T]) work(id int, handle func(int, T)) {
	defer p.wg.Done()
	for job := range p.queue {
		handle(id, job)
	}
}

// Submit queues a job, blocking while the queue is full.
// Submit must not be called after Close.
func (p *WorkerPool[T]) Submit(job T) {
	p.queue <- job
}

// Close stops intake. Queued jobs are still handled.
func (p *WorkerPool[T]) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
	})
}

// Done is closed once every started worker has exited
func (p *WorkerPool[T]) Done() <-chan struct{} {
	return p.done
}
