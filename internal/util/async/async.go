package async

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Group is a set of started tasks.
type Group struct {
	done chan struct{}

	mu   sync.Mutex
	errs []error
}

// Start launches every task concurrently, with the group's parallelism
// bounded by the number of tasks. A failing task does not cancel its
// siblings; all errors are collected and joined.
func Start(ctx context.Context, tasks []Task) *Group {
	g := &Group{done: make(chan struct{})}
	if len(tasks) == 0 {
		close(g.done)
		return g
	}

	var eg errgroup.Group
	eg.SetLimit(len(tasks))

	for _, task := range tasks {
		eg.Go(func() error {
			if err := task.Func(ctx); err != nil {
				g.mu.Lock()
				g.errs = append(g.errs, fmt.Errorf("%s: %w", task.Name, err))
				g.mu.Unlock()
			}
			return nil
		})
	}

	go func() {
		_ = eg.Wait()
		close(g.done)
	}()

	return g
}

// Done is closed once every task has returned.
func (g *Group) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until every task has returned and reports their joined errors.
func (g *Group) Wait() error {
	<-g.done
	return g.Err()
}

// Err returns the errors collected so far.
func (g *Group) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}

// RunParallel executes tasks concurrently and waits for all of them.
func RunParallel(ctx context.Context, tasks []Task) error {
	return Start(ctx, tasks).Wait()
}
