// Package stats holds search statistics and the collectors that accumulate them.
package stats

import (
	"time"

	"github.com/mitchelldurbincs/AIWargame/internal/common"
)

// Statistics describes one or more searches. Per-depth slices are indexed by depth, root = 0.
// Only raw counters are stored; everything else is derived on demand.
type Statistics struct {
	Evaluations        int64         `json:"evaluations"`
	EvaluationsByDepth []int64       `json:"evaluations_by_depth"`
	NodesByDepth       []int64       `json:"nodes_by_depth"`    // interior nodes expanded
	ChildrenByDepth    []int64       `json:"children_by_depth"` // children generated below each depth
	Elapsed            time.Duration `json:"elapsed_ns"`
	Searches           int           `json:"searches"`
	TimedOut           int           `json:"timed_out"`
}

// MaxDepth is the deepest level with any recorded activity, or -1 for empty statistics.
func (s Statistics) MaxDepth() int {
	return common.Max(len(s.EvaluationsByDepth), len(s.NodesByDepth)) - 1
}

// AverageBranchingFactor is the mean number of children per expanded node.
func (s Statistics) AverageBranchingFactor() float64 {
	var nodes, children int64
	for i := range s.NodesByDepth {
		nodes += s.NodesByDepth[i]
		children += at(s.ChildrenByDepth, i)
	}
	if nodes == 0 {
		return 0
	}
	return float64(children) / float64(nodes)
}

// BranchingByDepth is the mean number of children per expanded node at each depth.
func (s Statistics) BranchingByDepth() []float64 {
	out := make([]float64, len(s.NodesByDepth))
	for i, n := range s.NodesByDepth {
		if n > 0 {
			out[i] = float64(at(s.ChildrenByDepth, i)) / float64(n)
		}
	}
	return out
}

// CumulativeEvaluationPercent reports, for each depth d, the percentage of all evaluations
// performed at depths <= d. The last entry is 100 whenever any evaluation happened.
func (s Statistics) CumulativeEvaluationPercent() []float64 {
	out := make([]float64, len(s.EvaluationsByDepth))
	if s.Evaluations == 0 {
		return out
	}
	var running int64
	for i, n := range s.EvaluationsByDepth {
		running += n
		out[i] = 100 * float64(running) / float64(s.Evaluations)
	}
	return out
}

// EvaluationsPerSecond is the heuristic throughput over the recorded elapsed time.
func (s Statistics) EvaluationsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Evaluations) / s.Elapsed.Seconds()
}

// Merge adds other's counters into s. Used to build cumulative per-game statistics.
func (s *Statistics) Merge(other Statistics) {
	s.Evaluations += other.Evaluations
	s.EvaluationsByDepth = addInto(s.EvaluationsByDepth, other.EvaluationsByDepth)
	s.NodesByDepth = addInto(s.NodesByDepth, other.NodesByDepth)
	s.ChildrenByDepth = addInto(s.ChildrenByDepth, other.ChildrenByDepth)
	s.Elapsed += other.Elapsed
	s.Searches += other.Searches
	s.TimedOut += other.TimedOut
}

// Clone returns a deep copy.
func (s Statistics) Clone() Statistics {
	c := s
	c.EvaluationsByDepth = append([]int64(nil), s.EvaluationsByDepth...)
	c.NodesByDepth = append([]int64(nil), s.NodesByDepth...)
	c.ChildrenByDepth = append([]int64(nil), s.ChildrenByDepth...)
	return c
}

func at(xs []int64, i int) int64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

func addInto(dst, src []int64) []int64 {
	for len(dst) < len(src) {
		dst = append(dst, 0)
	}
	for i, v := range src {
		dst[i] += v
	}
	return dst
}

func grow(xs []int64, depth int) []int64 {
	for len(xs) <= depth {
		xs = append(xs, 0)
	}
	return xs
}
