// Copyright 2025 The Datus Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datusadapters

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// TaskPool runs tasks with a bounded degree of concurrency. It is used to
// probe or introspect several data sources in parallel without opening an
// unbounded number of sessions at once.
type TaskPool struct {
	semaphore chan struct{}
	logger    *slog.Logger
	wg        sync.WaitGroup
	mu        sync.Mutex
	errs      []error
}

// NewTaskPool creates a pool limited to poolSize concurrent tasks. A nil
// logger disables logging.
func NewTaskPool(poolSize int, logger *slog.Logger) *TaskPool {
	if poolSize < 1 {
		poolSize = 1
	}
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &TaskPool{
		semaphore: make(chan struct{}, poolSize),
		logger:    logger,
	}
}

// Enqueue schedules a task. The id is only used for logging.
func (tp *TaskPool) Enqueue(id string, task func() error) {
	tp.wg.Add(1)
	go func() {
		tp.semaphore <- struct{}{}
		defer func() {
			<-tp.semaphore
			tp.wg.Done()
		}()

		tp.logger.Debug("executing task", "task_id", id)
		startTime := time.Now()
		if err := task(); err != nil {
			tp.logger.Error("task failed", "task_id", id, "error", err.Error())
			tp.mu.Lock()
			tp.errs = append(tp.errs, err)
			tp.mu.Unlock()
		}
		tp.logger.Debug("completed task",
			"task_id", id,
			"elapsed_ms", time.Since(startTime).Milliseconds())
	}()
}

// Join waits for all enqueued tasks and returns their failures joined into
// a single error, or nil when every task succeeded.
func (tp *TaskPool) Join() error {
	tp.wg.Wait()

	tp.mu.Lock()
	defer tp.mu.Unlock()
	return errors.Join(tp.errs...)
}
