package engine

import (
	"encoding/json"
	"sort"
)

// Reachability maps every legal destination to the minimum number of jumps
// needed to reach it. Simple steps are 0. It is only valid for the board it
// was computed on.
type Reachability map[Position]int

// Destination is one entry of a Reachability
type Destination struct {
	Position
	Jumps int `json:"jumps"`
}

// Contains reports whether p is a legal destination
func (r Reachability) Contains(p Position) bool {
	_, ok := r[p]
	return ok
}

// Jumps returns the jump count recorded for p
func (r Reachability) Jumps(p Position) (int, bool) {
	j, ok := r[p]
	return j, ok
}

// MaxJumps returns the longest chain in the result, or 0 if there is none
func (r Reachability) MaxJumps() int {
	maxJumps := 0
	for _, j := range r {
		if j > maxJumps {
			maxJumps = j
		}
	}
	return maxJumps
}

// Destinations lists the result in row-major order
func (r Reachability) Destinations() []Destination {
	out := make([]Destination, 0, len(r))
	for p, j := range r {
		out = append(out, Destination{Position: p, Jumps: j})
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Row != out[k].Row {
			return out[i].Row < out[k].Row
		}
		return out[i].Col < out[k].Col
	})
	return out
}

// MarshalJSON encodes the result as a sorted list of destinations
func (r Reachability) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Destinations())
}

// UnmarshalJSON decodes a list of destinations
func (r *Reachability) UnmarshalJSON(data []byte) error {
	var list []Destination
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	out := make(Reachability, len(list))
	for _, d := range list {
		out[d.Position] = d.Jumps
	}
	*r = out
	return nil
}

// FindReachable computes every destination open to the piece on origin.
//
// The origin is treated as vacated for the whole search: it never blocks a
// scan or a jump path, it can not be vaulted over and it is never offered as
// a destination. The board is not modified.
func FindReachable(board *Board, origin Position) Reachability {
	result := make(Reachability)
	if !board.IsInside(origin) {
		return result
	}

	occupied := func(p Position) bool {
		return p != origin && board.at(p) != Empty
	}

	type node struct {
		pos   Position
		jumps int
	}

	// Breadth-first over jump edges. Every edge costs one jump, so the first
	// time a cell is reached is with its minimum count.
	best := map[Position]int{origin: 0}
	queue := []node{{pos: origin, jumps: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if recorded, ok := best[current.pos]; ok && recorded < current.jumps {
			continue
		}

		for _, dir := range Directions {
			landing, ok := jumpLanding(board, current.pos, dir, occupied)
			if !ok || landing == origin {
				continue
			}

			next := current.jumps + 1
			if recorded, seen := best[landing]; seen && recorded <= next {
				continue
			}
			best[landing] = next
			result[landing] = next
			queue = append(queue, node{pos: landing, jumps: next})
		}
	}

	// Simple steps are computed on their own and overlaid; 0 always wins
	for _, dir := range Directions {
		step := origin.Add(dir, 1)
		if board.IsInside(step) && !occupied(step) {
			result[step] = 0
		}
	}

	return result
}

// jumpLanding scans from 'from' along dir to the first occupied cell and
// returns the cell the same distance beyond it, if that jump is legal
func jumpLanding(board *Board, from Position, dir Direction, occupied func(Position) bool) (Position, bool) {
	for step := 1; ; step++ {
		pivot := from.Add(dir, step)
		if !board.IsInside(pivot) {
			return Position{}, false
		}
		if !occupied(pivot) {
			continue
		}

		landing := from.Add(dir, step*2)
		if !board.IsInside(landing) || occupied(landing) {
			return Position{}, false
		}

		// Everything between the pivot and the landing cell must be clear.
		// Cells before the pivot are clear by construction of the scan.
		for k := step + 1; k < step*2; k++ {
			if occupied(from.Add(dir, k)) {
				return Position{}, false
			}
		}
		return landing, true
	}
}
