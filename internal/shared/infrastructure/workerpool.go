package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task représente une tâche à exécuter
type Task func(ctx context.Context) error

// ErrPoolStopped est retournée par Submit après Stop ou Wait
var ErrPoolStopped = errors.New("worker pool is stopped")

// WorkerPool gère un pool de workers pour traiter des tâches en parallèle
// Les erreurs de toutes les tâches sont conservées et restituées par Wait,
// aucune n'est perdue même si plusieurs tâches échouent en même temps.
type WorkerPool struct {
	workerCount int
	tasks       chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc

	submitMu sync.Mutex
	closed   bool

	errMu sync.Mutex
	errs  []error
}

// NewWorkerPool crée un nouveau pool de workers lié au contexte parent
func NewWorkerPool(parent context.Context, workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(parent)
	return &WorkerPool{
		workerCount: workerCount,
		tasks:       make(chan Task, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// worker est la routine d'exécution des tâches
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}
			if err := task(wp.ctx); err != nil {
				wp.errMu.Lock()
				wp.errs = append(wp.errs, err)
				wp.errMu.Unlock()
			}
		}
	}
}

// Start démarre les workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit soumet une tâche au pool
func (wp *WorkerPool) Submit(task Task) error {
	wp.submitMu.Lock()
	defer wp.submitMu.Unlock()
	if wp.closed {
		return ErrPoolStopped
	}

	select {
	case <-wp.ctx.Done():
		return fmt.Errorf("%w: %w", ErrPoolStopped, wp.ctx.Err())
	case wp.tasks <- task:
		return nil
	}
}

// Wait attend que toutes les tâches soient terminées et retourne leurs erreurs
// jointes (nil si toutes ont réussi). Le pool ne peut plus être utilisé ensuite.
func (wp *WorkerPool) Wait() error {
	wp.submitMu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.tasks)
	}
	wp.submitMu.Unlock()

	wp.wg.Wait()
	ctxErr := wp.ctx.Err()
	wp.cancel()

	wp.errMu.Lock()
	defer wp.errMu.Unlock()
	if len(wp.errs) == 0 && ctxErr != nil {
		return ctxErr
	}
	return errors.Join(wp.errs...)
}

// Stop arrête le pool immédiatement (les tâches en attente sont abandonnées)
func (wp *WorkerPool) Stop() {
	wp.cancel()

	wp.submitMu.Lock()
	wp.closed = true
	wp.submitMu.Unlock()

	wp.wg.Wait()
}
