package search

import (
	"time"

	"spotlight/internal/domain"
)

// State holds search state
type State struct {
	Query       string        // case-folded query as typed
	Results     []domain.Item // last committed result set
	LatestToken uint64        // most recently issued request token
	Loading     bool          // a search was requested but has not committed
}

// Options bounds and shapes the result set
type Options struct {
	MaxResults  int
	ShowRecent  bool
	RecentLimit int
	Delay       time.Duration
}

// Timer is a pending scheduled execution
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules on wall-clock timers
func RealScheduler() Scheduler {
	return realScheduler{}
}
