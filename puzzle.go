package hanoi

import (
	"errors"
	"fmt"
)

// RodCount is the number of rods in the puzzle.
const RodCount = 3

// MaxDisks bounds the disk count so the stacks stay inside the clip-space
// rod height and 2^MaxDisks-1 moves fit in a 32-bit int.
const MaxDisks = 30

// Disk sizes are widths in clip-space units: the bottom disk is
// baseDiskSize wide and each disk above it is narrower by up to
// maxDiskStep, never reaching zero.
const (
	baseDiskSize = 0.46
	minDiskSize  = 0.02
	maxDiskStep  = 0.03
)

var (
	// ErrNoDisks is returned by NewPuzzle for a disk count below one.
	ErrNoDisks = errors.New("hanoi: puzzle needs at least one disk")

	// ErrTooManyDisks is returned by NewPuzzle for a disk count above MaxDisks.
	ErrTooManyDisks = errors.New("hanoi: too many disks")
)

// State is the lifecycle state of a Puzzle.
type State int

const (
	// InProgress means further steps will move disks.
	InProgress State = iota
	// Solved means every disk has left rod 0 and sits on a single rod.
	Solved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Solved:
		return "Solved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Move records one disk transfer.
type Move struct {
	From, To int
	Size     float32
}

// Puzzle is the Towers of Hanoi state machine.
//
// Each Step alternates between two kinds of move: the smallest disk moves one
// rod to the right (wrapping around), and otherwise the single legal move
// between the two rods not holding the smallest disk is made. Starting with
// all disks on rod 0 this solves the puzzle in the minimum 2^N-1 steps.
//
// A Puzzle is not safe for concurrent use.
type Puzzle struct {
	rods  [RodCount][]float32
	disks int

	// smallestNext selects the kind of the next move.
	smallestNext bool
	// smallestRod is the rod currently holding the smallest disk.
	smallestRod int

	moves int
	last  Move
	state State
}

// NewPuzzle creates a puzzle with n disks stacked on rod 0, largest at the
// bottom.
func NewPuzzle(n int) (*Puzzle, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoDisks, n)
	}
	if n > MaxDisks {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyDisks, n, MaxDisks)
	}

	p := &Puzzle{
		disks:        n,
		smallestNext: true,
	}
	step := diskStep(n)
	p.rods[0] = make([]float32, n)
	for i := range n {
		p.rods[0][i] = baseDiskSize - float32(i)*step
	}
	return p, nil
}

// diskStep returns the width difference between neighboring disks.
func diskStep(n int) float32 {
	if n <= 1 {
		return 0
	}
	return min(maxDiskStep, (baseDiskSize-minDiskSize)/float32(n-1))
}

// Step advances the puzzle by one move and reports whether a step was taken.
// Step on a solved puzzle does nothing and returns false.
func (p *Puzzle) Step() bool {
	if p.state == Solved {
		return false
	}

	if p.smallestNext {
		to := (p.smallestRod + 1) % RodCount
		// Always legal: the destination is empty or topped by a larger disk.
		p.moveDisk(p.smallestRod, to)
		p.smallestRod = to
	} else {
		a := (p.smallestRod + 1) % RodCount
		b := (p.smallestRod + 2) % RodCount
		if !p.moveDisk(a, b) {
			p.moveDisk(b, a)
		}
	}
	p.smallestNext = !p.smallestNext

	if p.complete() {
		p.state = Solved
	}
	return true
}

// moveDisk moves the top disk of rod from onto rod to if that is legal.
// A disk may land on an empty rod or on a strictly larger disk; moving from
// an empty rod is never legal.
func (p *Puzzle) moveDisk(from, to int) bool {
	src := p.rods[from]
	if len(src) == 0 {
		return false
	}
	disk := src[len(src)-1]
	if dst := p.rods[to]; len(dst) > 0 && dst[len(dst)-1] <= disk {
		return false
	}

	p.rods[from] = src[:len(src)-1]
	p.rods[to] = append(p.rods[to], disk)
	p.moves++
	p.last = Move{From: from, To: to, Size: disk}
	return true
}

// complete reports whether rod 0 is empty and one rod holds every disk.
// Rod 0 alone is empty halfway through the solution, when the largest disk
// has just moved, so the second condition is needed.
func (p *Puzzle) complete() bool {
	if len(p.rods[0]) != 0 {
		return false
	}
	return len(p.rods[1]) == p.disks || len(p.rods[2]) == p.disks
}

// Solved reports whether the puzzle is solved.
func (p *Puzzle) Solved() bool { return p.state == Solved }

// State returns the current lifecycle state.
func (p *Puzzle) State() State { return p.state }

// Disks returns the number of disks.
func (p *Puzzle) Disks() int { return p.disks }

// Moves returns the number of disks moved so far.
func (p *Puzzle) Moves() int { return p.moves }

// LastMove returns the most recent move and false if no move has been made.
func (p *Puzzle) LastMove() (Move, bool) {
	return p.last, p.moves > 0
}

// SmallestNext reports whether the next step moves the smallest disk.
func (p *Puzzle) SmallestNext() bool { return p.smallestNext }

// Rod returns a copy of the disk sizes on rod i, bottom first.
// It panics if i is not a valid rod index.
func (p *Puzzle) Rod(i int) []float32 {
	return append([]float32(nil), p.rods[i]...)
}

// EachDisk calls fn for every disk, rod by rod and bottom-up within a rod.
// level is 1 for the bottom disk of each rod.
func (p *Puzzle) EachDisk(fn func(rod, level int, size float32)) {
	for r := range p.rods {
		for i, size := range p.rods[r] {
			fn(r, i+1, size)
		}
	}
}

// MinMoves returns 2^n-1, the number of steps needed to solve n disks.
// n is clamped to MaxDisks.
func MinMoves(n int) int {
	if n < 1 {
		return 0
	}
	n = min(n, MaxDisks)
	return 1<<uint(n) - 1
}
