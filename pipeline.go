package quill

import "sync"

// task splits data into one contiguous chunk per worker and runs fn over each
// chunk in its own goroutine. fn receives the chunk bounds so that a worker can
// hold per-goroutine state, such as a pooled engine, across its items.
func task[T any](workersCount int, data []T, fn func(start, end int)) {
	dataSize := len(data)
	if dataSize == 0 {
		return
	}
	workersCount = min(max(workersCount, 1), dataSize)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	var wg sync.WaitGroup
	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
