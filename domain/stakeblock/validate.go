package stakeblock

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/tandemnet/tandemd/infrastructure/logger"
)

// ValidateSignaturesInParallel checks SignatureValid for every given block
// across numWorkers goroutines and returns the results indexed like blocks.
// Signature checks are pure and CPU-bound, so the workers need no
// coordination beyond handing out indexes. A numWorkers of zero or less
// means one worker per CPU.
func ValidateSignaturesInParallel(blocks []*StakeBlock, numWorkers int) []bool {
	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateSignaturesInParallel")
	defer onEnd()

	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(blocks) {
		numWorkers = len(blocks)
	}

	results := make([]bool, len(blocks))
	nextIndex := int64(-1)
	wg := &sync.WaitGroup{}
	for worker := 0; worker < numWorkers; worker++ {
		wg.Add(1)
		spawn(func() {
			defer wg.Done()
			for {
				index := atomic.AddInt64(&nextIndex, 1)
				if index >= int64(len(blocks)) {
					return
				}
				results[index] = blocks[index].SignatureValid()
			}
		})
	}
	wg.Wait()

	log.Tracef("validated signatures of %d blocks with %d workers", len(blocks), numWorkers)
	return results
}
