package app

import (
	"math/rand"
	"reflect"
	"testing"

	"twodo/model"
)

func task(id int64, parent *int64) model.Task {
	return model.Task{ID: id, Title: "t", ProjectID: model.InboxProjectID, ParentID: parent}
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestReorderVisitsSiblingsInReverse(t *testing.T) {
	in := []model.Task{
		task(1, nil),
		task(2, model.Int64(1)),
		task(3, model.Int64(2)),
		task(5, model.Int64(2)),
		task(6, model.Int64(5)),
	}

	got, depths := ReorderTasks(in)
	if want := []int64{1, 2, 5, 6, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
	if want := []int{0, 1, 2, 3, 2}; !reflect.DeepEqual(depths, want) {
		t.Fatalf("expected depths %v, got %v", want, depths)
	}
	for i, tk := range got {
		if tk.Depth != depths[i] {
			t.Fatalf("task %d: Depth %d does not match depths[%d]=%d", tk.ID, tk.Depth, i, depths[i])
		}
	}
}

func TestReorderNestedTree(t *testing.T) {
	in := []model.Task{
		task(1, nil),
		task(2, model.Int64(1)),
		task(5, model.Int64(2)),
		task(4, model.Int64(3)),
		task(8, model.Int64(7)),
		task(6, model.Int64(5)),
		task(7, model.Int64(2)),
		task(3, model.Int64(2)),
		task(9, model.Int64(7)),
	}

	got, depths := ReorderTasks(in)
	if want := []int64{1, 2, 3, 4, 7, 9, 8, 5, 6}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
	if want := []int{0, 1, 2, 3, 2, 3, 3, 2, 3}; !reflect.DeepEqual(depths, want) {
		t.Fatalf("expected depths %v, got %v", want, depths)
	}
}

func TestReorderEmpty(t *testing.T) {
	got, depths := ReorderTasks(nil)
	if len(got) != 0 || len(depths) != 0 {
		t.Fatalf("expected empty output, got %v %v", got, depths)
	}
}

func TestReorderTreatsOrphansAsRoots(t *testing.T) {
	in := []model.Task{
		task(1, nil),
		task(2, model.Int64(42)),
		task(3, model.Int64(2)),
	}

	got, depths := ReorderTasks(in)
	if want := []int64{2, 3, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
	if want := []int{0, 1, 0}; !reflect.DeepEqual(depths, want) {
		t.Fatalf("expected depths %v, got %v", want, depths)
	}
}

func TestReorderEmitsCycles(t *testing.T) {
	in := []model.Task{
		task(1, model.Int64(2)),
		task(2, model.Int64(1)),
		task(3, nil),
		task(4, model.Int64(2)),
	}

	got, depths := ReorderTasks(in)
	if len(got) != len(in) {
		t.Fatalf("expected %d tasks, got %v", len(in), ids(got))
	}
	// The cycle is entered at task 1, the first unreached task in input
	// order that sits on it.
	if !reflect.DeepEqual(ids(got), []int64{3, 1, 2, 4}) || !reflect.DeepEqual(depths, []int{0, 0, 1, 2}) {
		t.Fatalf("unexpected cycle order %v depths %v", ids(got), depths)
	}
	seen := map[int64]bool{}
	for _, tk := range got {
		if seen[tk.ID] {
			t.Fatalf("task %d emitted twice: %v", tk.ID, ids(got))
		}
		seen[tk.ID] = true
	}
	if got[0].ID != 3 {
		t.Fatalf("expected real root first, got %v", ids(got))
	}
}

func TestReorderIsStableOnChains(t *testing.T) {
	// Without siblings there is no tie-break to flip, so a second pass is a
	// fixed point.
	in := []model.Task{
		task(4, model.Int64(3)),
		task(1, nil),
		task(3, model.Int64(2)),
		task(2, model.Int64(1)),
	}

	once, _ := ReorderTasks(in)
	twice, _ := ReorderTasks(stripDepths(once))
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("expected fixed point, got %v then %v", ids(once), ids(twice))
	}
}

func stripDepths(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, tk := range tasks {
		tk.Depth = 0
		out[i] = tk
	}
	return out
}

// randomForest builds n tasks whose parents are earlier tasks or nil, then
// shuffles them so parents do not always precede children.
func randomForest(r *rand.Rand, n int) []model.Task {
	tasks := make([]model.Task, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		var parent *int64
		if i > 0 && r.Intn(4) != 0 {
			parent = model.Int64(int64(r.Intn(i) + 1))
		}
		tasks[i] = task(id, parent)
	}
	r.Shuffle(n, func(i, j int) { tasks[i], tasks[j] = tasks[j], tasks[i] })
	return tasks
}

func TestReorderProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		in := randomForest(r, r.Intn(30))
		got, depths := ReorderTasks(in)

		// Permutation of the input.
		if len(got) != len(in) {
			t.Fatalf("round %d: expected %d tasks, got %d", round, len(in), len(got))
		}
		pos := map[int64]int{}
		for i, tk := range got {
			if _, dup := pos[tk.ID]; dup {
				t.Fatalf("round %d: task %d emitted twice", round, tk.ID)
			}
			pos[tk.ID] = i
		}
		inputPos := map[int64]int{}
		byID := map[int64]model.Task{}
		for i, tk := range in {
			if _, ok := pos[tk.ID]; !ok {
				t.Fatalf("round %d: task %d missing", round, tk.ID)
			}
			inputPos[tk.ID] = i
			byID[tk.ID] = tk
		}

		for i, tk := range got {
			// Depth follows the parent.
			wantDepth := 0
			if tk.ParentID != nil {
				if _, ok := byID[*tk.ParentID]; ok {
					wantDepth = depths[pos[*tk.ParentID]] + 1
					// Children follow their parent.
					if pos[*tk.ParentID] >= i {
						t.Fatalf("round %d: task %d precedes its parent", round, tk.ID)
					}
				}
			}
			if depths[i] != wantDepth {
				t.Fatalf("round %d: task %d depth %d, want %d", round, tk.ID, depths[i], wantDepth)
			}

			// The subtree is the contiguous run of deeper rows.
			end := i + 1
			for end < len(got) && depths[end] > depths[i] {
				end++
			}
			for j := i + 1; j < end; j++ {
				if !isAncestor(byID, tk.ID, got[j]) {
					t.Fatalf("round %d: task %d inside subtree of %d", round, got[j].ID, tk.ID)
				}
			}
			for j := end; j < len(got); j++ {
				if isAncestor(byID, tk.ID, got[j]) {
					t.Fatalf("round %d: descendant %d of %d outside its block", round, got[j].ID, tk.ID)
				}
			}
		}

		// Siblings come out in reverse input order.
		lastSibling := map[int64]int64{}
		for _, tk := range got {
			parent := int64(0)
			if tk.ParentID != nil {
				parent = *tk.ParentID
			}
			if prev, ok := lastSibling[parent]; ok && inputPos[prev] < inputPos[tk.ID] {
				t.Fatalf("round %d: siblings %d and %d kept input order", round, prev, tk.ID)
			}
			lastSibling[parent] = tk.ID
		}

		// Flipping the tie-break twice restores it.
		again, _ := ReorderTasks(stripDepths(got))
		third, _ := ReorderTasks(stripDepths(again))
		if !reflect.DeepEqual(ids(third), ids(got)) {
			t.Fatalf("round %d: expected %v after three passes, got %v", round, ids(got), ids(third))
		}
	}
}

func isAncestor(byID map[int64]model.Task, ancestor int64, tk model.Task) bool {
	for tk.ParentID != nil {
		parent, ok := byID[*tk.ParentID]
		if !ok {
			return false
		}
		if parent.ID == ancestor {
			return true
		}
		tk = parent
	}
	return false
}
