package stats

import "time"

// Collector receives search events as they happen. A search owns its collector for the
// duration of one call, so implementations need not be safe for concurrent use.
type Collector interface {
	Start()
	AddEvaluation(depth int)
	AddExpansion(depth, children int)
	MarkTimedOut()
	Complete() Statistics
}

type collector struct {
	startTime time.Time
	current   Statistics
	timedOut  bool
}

// NewCollector returns a collector that records every counter.
func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.current = Statistics{}
	c.timedOut = false
}

func (c *collector) AddEvaluation(depth int) {
	c.current.Evaluations++
	c.current.EvaluationsByDepth = grow(c.current.EvaluationsByDepth, depth)
	c.current.EvaluationsByDepth[depth]++
}

func (c *collector) AddExpansion(depth, children int) {
	c.current.NodesByDepth = grow(c.current.NodesByDepth, depth)
	c.current.ChildrenByDepth = grow(c.current.ChildrenByDepth, depth)
	c.current.NodesByDepth[depth]++
	c.current.ChildrenByDepth[depth] += int64(children)
}

func (c *collector) MarkTimedOut() {
	c.timedOut = true
}

func (c *collector) Complete() Statistics {
	out := c.current.Clone()
	out.Elapsed = time.Since(c.startTime)
	out.Searches = 1
	if c.timedOut {
		out.TimedOut = 1
	}
	return out
}

type noCollector struct{}

// NewNoCollector returns a collector that discards everything.
func NewNoCollector() Collector {
	return noCollector{}
}

func (noCollector) Start()                {}
func (noCollector) AddEvaluation(int)     {}
func (noCollector) AddExpansion(int, int) {}
func (noCollector) MarkTimedOut()         {}
func (noCollector) Complete() Statistics  { return Statistics{} }
