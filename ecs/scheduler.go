package ecs

import (
	"context"
	"time"
)

// FrameInfo is a model singleton the scheduler refreshes before each pass.
// Systems that need frame timing read it through Singleton[FrameInfo].
type FrameInfo struct {
	DeltaTime float64
	Frame     int64
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Handle         SystemHandle
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler drives a model's systems on a fixed timestep and records
// per-system execution statistics. It owns a command buffer that is flushed
// after each pass, so callbacks can defer structural mutations to the end of
// the frame instead of applying them mid-pass.
type Scheduler struct {
	model     *Model
	commands  *Commands
	frameInfo *Singleton[FrameInfo]
	stats     map[SystemHandle]*systemStatsInternal
}

// NewScheduler creates a scheduler for the given model.
func NewScheduler(m *Model) *Scheduler {
	return &Scheduler{
		model:     m,
		commands:  NewCommands(),
		frameInfo: NewSingleton[FrameInfo](m),
		stats:     make(map[SystemHandle]*systemStatsInternal),
	}
}

// Commands returns the scheduler's end-of-frame command buffer.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Once refreshes the FrameInfo singleton, executes every registered system
// once with the given delta time, and flushes the command buffer. Returns
// the flush error, if any.
func (s *Scheduler) Once(dt float64) error {
	info := s.frameInfo.Get()
	info.DeltaTime = dt
	info.Frame++

	for _, h := range s.model.Systems() {
		start := time.Now()
		if err := s.model.ProcessSystem(h); err != nil {
			// Removed mid-pass by an earlier callback.
			continue
		}
		duration := time.Since(start)

		st := s.stats[h]
		if st == nil {
			name, _ := s.model.SystemName(h)
			st = &systemStatsInternal{
				name:        name,
				minDuration: time.Duration(1<<63 - 1),
			}
			s.stats[h] = st
		}
		st.executionCount++
		st.lastDuration = duration
		st.totalDuration += duration
		if duration < st.minDuration {
			st.minDuration = duration
		}
		if duration > st.maxDuration {
			st.maxDuration = duration
		}
	}

	return s.commands.Flush(s.model)
}

// Run executes all systems repeatedly at the given interval until the
// context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution, in the model's current
// system order followed by systems that have since been removed.
func (s *Scheduler) Stats() *SchedulerStats {
	out := &SchedulerStats{
		SystemCount: s.model.SystemCount(),
	}

	appendStats := func(h SystemHandle, internal *systemStatsInternal) {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}
		out.Systems = append(out.Systems, SystemStats{
			Handle:         h,
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		})
		out.TotalExecutions += internal.executionCount
	}

	seen := make(map[SystemHandle]bool)
	for _, h := range s.model.Systems() {
		if internal, ok := s.stats[h]; ok {
			appendStats(h, internal)
			seen[h] = true
		}
	}
	for h, internal := range s.stats {
		if !seen[h] {
			appendStats(h, internal)
		}
	}
	return out
}
