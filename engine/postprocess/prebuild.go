package postprocess

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-aa/common"
)

// PassFactory builds a pass. Factories usually compile shaders, so they run once at startup.
type PassFactory func() (Pass, error)

// Prebuild runs every factory on a bounded worker pool and blocks until all passes are built.
// All passes must exist before the anti-aliasing controller starts routing input, so building
// is eager rather than deferred to the first toggle.
//
// Parameters:
//   - factories: pass factories keyed by name
//   - workers: maximum concurrent builds; values <= 0 use NumCPU-1 (at least 1)
//
// Returns:
//   - map[string]Pass: the built passes keyed like factories
//   - error: every factory failure joined, in key order; nil when all succeeded
func Prebuild(factories map[string]PassFactory, workers int) (map[string]Pass, error) {
	built := make(map[string]Pass, len(factories))
	if len(factories) == 0 {
		return built, nil
	}
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	workers = min(workers, len(factories))

	keys := make([]string, 0, len(factories))
	for k := range factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pool := worker.NewDynamicWorkerPool(workers, len(factories), 1*time.Second)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = make(map[string]error)
	)
	for id, key := range keys {
		wg.Add(1)
		k, factory := key, factories[key]
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				start := time.Now()
				p, err := factory()
				if err == nil && p == nil {
					err = errors.New("factory returned a nil pass")
				}

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs[k] = err
					return nil, err
				}
				built[k] = p
				common.Logger().Debug("pass built", "pass", k, "elapsed", time.Since(start))
				return p, nil
			},
		})
	}
	wg.Wait()

	if len(errs) > 0 {
		joined := make([]error, 0, len(errs))
		for _, k := range keys {
			if err, ok := errs[k]; ok {
				joined = append(joined, fmt.Errorf("postprocess: build pass %q: %w", k, err))
			}
		}
		return nil, errors.Join(joined...)
	}
	return built, nil
}
