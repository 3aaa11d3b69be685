package parallel

import (
	"sync/atomic"
	"time"
)

// RunStatistics tracks work executed by a parallel Engine
type RunStatistics struct {
	startTime           time.Time
	rowsProcessed       int64
	partitionsProcessed int64
}

func createRunStatistics() *RunStatistics {
	return &RunStatistics{startTime: time.Now()}
}

func (s *RunStatistics) recordPartition(numRows int) {
	atomic.AddInt64(&s.rowsProcessed, int64(numRows))
	atomic.AddInt64(&s.partitionsProcessed, 1)
}

// GetStartTime returns the time this Engine was created
func (s *RunStatistics) GetStartTime() time.Time {
	return s.startTime
}

// GetRuntime returns the time elapsed since this Engine was created
func (s *RunStatistics) GetRuntime() time.Duration {
	return time.Since(s.startTime)
}

// GetNumRowsProcessed returns the number of Rows processed so far
func (s *RunStatistics) GetNumRowsProcessed() int64 {
	return atomic.LoadInt64(&s.rowsProcessed)
}

// GetNumPartitionsProcessed returns the number of Partitions processed so far
func (s *RunStatistics) GetNumPartitionsProcessed() int64 {
	return atomic.LoadInt64(&s.partitionsProcessed)
}
