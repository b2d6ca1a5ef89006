// Package reorder computes drag-and-drop moves over a plan's item list and the
// minimal set of sort_order writes they require.
package reorder

import (
	"fmt"

	"pacemaker/entities"
)

// Change is one pending sort_order write.
type Change struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}

// Command is a planned move. After is the optimistic list; Changes are the
// writes needed to persist it.
type Command struct {
	From, To int
	Before   []entities.PlanItemView
	After    []entities.PlanItemView
	Changes  []Change
}

// Move removes the element at from and reinserts it at to, shifting the
// elements in between by one. The input slice is not modified.
func Move[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	moved := items[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}

// Diff lists the items in positions [min(from,to), max(from,to)] of after whose
// previous sort_order differs from their new position.
func Diff(before, after []entities.PlanItemView, from, to int) []Change {
	prev := make(map[string]int, len(before))
	for _, it := range before {
		prev[it.ID] = it.SortOrder
	}
	lo, hi := min(from, to), max(from, to)
	var changes []Change
	for i := lo; i <= hi; i++ {
		old, ok := prev[after[i].ID]
		if ok && old != i {
			changes = append(changes, Change{ID: after[i].ID, SortOrder: i})
		}
	}
	return changes
}

// Plan validates the indexes and builds the command. After carries the new
// sort_order values for changed items.
func Plan(items []entities.PlanItemView, from, to int) (*Command, error) {
	n := len(items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: move %d -> %d out of range for %d items", entities.ErrInvalidInput, from, to, n)
	}
	cmd := &Command{From: from, To: to, Before: items}
	if from == to {
		cmd.After = append([]entities.PlanItemView(nil), items...)
		return cmd, nil
	}
	cmd.After = Move(items, from, to)
	cmd.Changes = Diff(items, cmd.After, from, to)
	for _, c := range cmd.Changes {
		for i := range cmd.After {
			if cmd.After[i].ID == c.ID {
				cmd.After[i].SortOrder = c.SortOrder
				break
			}
		}
	}
	return cmd, nil
}

// IndexOf returns the position of the item with id, or -1.
func IndexOf(items []entities.PlanItemView, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
