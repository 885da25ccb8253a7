package track

import "github.com/soniakeys/unit"

// ComputeCircuitTables allocates and fills LastFinish and BestStart for
// the given closure radius epsilon. Must be called again, overwriting
// the previous tables, whenever epsilon changes — a Track only ever
// holds tables for one epsilon at a time.
//
// For each i, LastFinish[i] is found by scanning backward from the end
// of the track using FastBackward; BestStart tracks a running argmax
// and only falls back to a full linear rescan of [0,i] when the
// previous best's finish window no longer reaches i. That rescan
// happens at most once per "lost" candidate, which is what keeps the
// outer loop O(n) on average despite the inner rescan.
func (t *Track) ComputeCircuitTables(epsilon unit.Angle) {
	n := t.N()
	t.epsilon = epsilon
	t.LastFinish = make([]int, n)
	t.BestStart = make([]int, n)
	if n == 0 {
		return
	}

	currentBestStart := 0
	for i := 0; i < n; i++ {
		t.LastFinish[i] = i
		for j := n - 1; j >= i; {
			d := t.Delta(i, j)
			if d <= epsilon {
				t.LastFinish[i] = j
				break
			}
			j = t.FastBackward(j, d-epsilon)
		}
		if t.LastFinish[i] > t.LastFinish[currentBestStart] {
			currentBestStart = i
		}
		if t.LastFinish[currentBestStart] < i {
			currentBestStart = 0
			for j := 1; j <= i; j++ {
				if t.LastFinish[j] > t.LastFinish[currentBestStart] {
					currentBestStart = j
				}
			}
		}
		t.BestStart[i] = currentBestStart
	}
}
