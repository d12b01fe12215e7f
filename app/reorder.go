package app

import "twodo/model"

type reorderFrame struct {
	index int
	depth int
}

// ReorderTasks linearizes a flat set of tasks into a preorder sequence and
// returns it with a parallel slice of depths.
//
// A task is a root when it has no parent or its parent is not part of the
// input. The traversal is a single stack-based depth-first walk: roots and
// the children of each task are pushed in input order and popped in reverse,
// so siblings come out in the reverse of their input order. Callers and
// tests rely on that tie-break; it is kept on purpose.
//
// Every input task is emitted exactly once, including tasks caught in a
// parent cycle, which are walked from one of the cycle members at depth 0.
func ReorderTasks(tasks []model.Task) ([]model.Task, []int) {
	indexByID := make(map[int64]int, len(tasks))
	for i, t := range tasks {
		indexByID[t.ID] = i
	}

	children := make(map[int64][]int, len(tasks))
	roots := make([]int, 0, len(tasks))
	for i, t := range tasks {
		if t.ParentID == nil {
			roots = append(roots, i)
			continue
		}
		if _, ok := indexByID[*t.ParentID]; !ok {
			// Orphaned subtrees stay visible as roots.
			roots = append(roots, i)
			continue
		}
		children[*t.ParentID] = append(children[*t.ParentID], i)
	}

	ordered := make([]model.Task, 0, len(tasks))
	depths := make([]int, 0, len(tasks))
	visited := make([]bool, len(tasks))
	stack := make([]reorderFrame, 0, len(tasks))

	walk := func(start []int) {
		for _, i := range start {
			stack = append(stack, reorderFrame{index: i})
		}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[f.index] {
				continue
			}
			visited[f.index] = true

			t := tasks[f.index]
			t.Depth = f.depth
			ordered = append(ordered, t)
			depths = append(depths, f.depth)

			for _, c := range children[t.ID] {
				stack = append(stack, reorderFrame{index: c, depth: f.depth + 1})
			}
		}
	}

	walk(roots)
	for i := range tasks {
		if len(ordered) == len(tasks) {
			break
		}
		if visited[i] {
			continue
		}
		walk([]int{cycleEntry(tasks, indexByID, i)})
	}

	return ordered, depths
}

// cycleEntry follows parent links from an unreached task until one repeats.
// Every unreached task hangs below a cycle, so the repeated task is on it.
func cycleEntry(tasks []model.Task, indexByID map[int64]int, start int) int {
	seen := map[int]bool{}
	i := start
	for !seen[i] {
		seen[i] = true
		i = indexByID[*tasks[i].ParentID]
	}
	return i
}
