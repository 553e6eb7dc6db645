package utils

import (
	"sync"
)

// ParallelTask represents a unit of work that can be executed in parallel
type ParallelTask[T any] func() (T, error)

// RunParallelTasks executes tasks with at most maxWorkers running at once and
// returns results and errors positionally. maxWorkers < 1 means no limit.
func RunParallelTasks[T any](maxWorkers int, tasks []ParallelTask[T]) ([]T, []error) {
	results := make([]T, len(tasks))
	errs := make([]error, len(tasks))
	if maxWorkers < 1 || maxWorkers > len(tasks) {
		maxWorkers = len(tasks)
	}

	var wg sync.WaitGroup
	slots := make(chan struct{}, maxWorkers)
	wg.Add(len(tasks))
	for i, task := range tasks {
		slots <- struct{}{}
		go func(index int, t ParallelTask[T]) {
			defer wg.Done()
			defer func() { <-slots }()
			results[index], errs[index] = t()
		}(i, task)
	}

	wg.Wait()
	return results, errs
}

// FirstError returns the first non-nil error in errs.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
