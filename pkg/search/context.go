package search

import "time"

// SearchContext is the wall-clock budget shared by every query of a search.
type SearchContext struct {
	Start  time.Time
	Budget time.Duration
	Now    func() time.Time // time.Now when nil
}

func NewSearchContext(budget time.Duration) SearchContext {
	return SearchContext{
		Start:  time.Now(),
		Budget: budget,
		Now:    time.Now,
	}
}

func (sc SearchContext) now() time.Time {
	if sc.Now == nil {
		return time.Now()
	}
	return sc.Now()
}

func (sc SearchContext) Elapsed() time.Duration {
	return sc.now().Sub(sc.Start)
}

// Remaining never goes below zero.
func (sc SearchContext) Remaining() time.Duration {
	return max(0, sc.Budget-sc.Elapsed())
}

func (sc SearchContext) Expired() bool {
	return sc.Remaining() <= 0
}
