// Package queue implements the priority queue that schedules open clusters
// for splitting.
//
// Candidates are ordered by negated within-cluster dispersion, so the open
// cluster with the highest outcome-metric standard deviation pops first.
package queue

// Candidate references a currently open cluster pending a split attempt.
type Candidate struct {
	Dispersion float64 // negated std-dev of the outcome metric within the cluster
	Label      int     // current label carried by the cluster's points
	Score      float64 // discrimination score computed when the cluster was created
}

// CandidateQueue is a value-based binary min-heap of Candidates.
//
// Ordering is lexicographic over (Dispersion, Label, Score) so that equal
// dispersions resolve deterministically by label.
type CandidateQueue struct {
	items []Candidate
}

// New initializes a CandidateQueue with the given capacity hint.
func New(capacity int) *CandidateQueue {
	return &CandidateQueue{
		items: make([]Candidate, 0, capacity),
	}
}

// Len returns the number of candidates in the queue.
func (q *CandidateQueue) Len() int { return len(q.items) }

// Push inserts a candidate while maintaining the heap invariant.
func (q *CandidateQueue) Push(c Candidate) {
	q.items = append(q.items, c)
	q.siftUp(len(q.items) - 1)
}

// Pop removes and returns the top candidate while maintaining the heap invariant.
func (q *CandidateQueue) Pop() (Candidate, bool) {
	n := len(q.items)
	if n == 0 {
		return Candidate{}, false
	}
	root := q.items[0]
	last := q.items[n-1]
	q.items[n-1] = Candidate{}
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root, true
}

// Drain removes and returns all remaining candidates in heap order.
func (q *CandidateQueue) Drain() []Candidate {
	out := make([]Candidate, 0, len(q.items))
	for {
		c, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func (q *CandidateQueue) less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.Dispersion != b.Dispersion {
		return a.Dispersion < b.Dispersion
	}
	if a.Label != b.Label {
		return a.Label < b.Label
	}
	return a.Score < b.Score
}

func (q *CandidateQueue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *CandidateQueue) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && q.less(r, l) {
			best = r
		}
		if !q.less(best, i) {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}
