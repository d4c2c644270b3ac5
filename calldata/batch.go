package calldata

import (
	"context"

	"github.com/NethermindEth/expectations/core"
	"github.com/NethermindEth/expectations/utils"
	"github.com/sourcegraph/conc/pool"
)

// EncodeAll encodes calls on at most workers goroutines. Records keep the
// order of calls; calls without call data are left out.
func (e *Encoder) EncodeAll(ctx context.Context, calls []*core.Call, workers int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	workers = max(workers, 1)

	type slot struct {
		record Record
		ok     bool
	}
	slots := make([]slot, len(calls))

	workerPool := pool.New().
		WithContext(ctx).
		WithFirstError().
		WithCancelOnError().
		WithMaxGoroutines(workers)
	for i, call := range calls {
		workerPool.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i].record, slots[i].ok = e.Encode(call)
			return nil
		})
	}
	if err := workerPool.Wait(); err != nil {
		return nil, err
	}

	encoded := utils.Filter(slots, func(s slot) bool { return s.ok })
	return utils.Map(encoded, func(s slot) Record { return s.record }), nil
}
