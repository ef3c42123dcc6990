// Package action defines the unit of work produced by a change tracker and
// consumed by the modifier engine and deployers: a single path paired with
// what must happen to it.
package action

import (
	"sort"

	"github.com/r3c/creep/pkg/constants"
)

// Kind identifies what a deployer must do with an Action's path.
type Kind int

const (
	// Add means the path must be sent to the destination.
	Add Kind = iota
	// Del means the path must be removed from the destination.
	Del
	// Nop means a filter modifier suppressed the path; it is never sent.
	Nop
	// Err means processing this path failed; it is reported, never sent.
	Err
)

// String renders the kind using the same three/four-letter names used in log
// output and in the console deployer's preview marker.
func (k Kind) String() string {
	switch k {
	case Add:
		return "ADD"
	case Del:
		return "DEL"
	case Nop:
		return "NOP"
	default:
		return "ERR"
	}
}

// Marker returns the single-character preview marker used by the console
// deployer and FormatAction: "+" for Add, "-" for Del, "!" for anything else.
func (k Kind) Marker() string {
	switch k {
	case Add:
		return "+"
	case Del:
		return "-"
	default:
		return "!"
	}
}

// Action is a single path with the change that must be applied to it.
type Action struct {
	Path string
	Kind Kind
}

func rank(k Kind) constants.ActionRank {
	switch k {
	case Del:
		return constants.RankDelete
	case Add:
		return constants.RankAdd
	case Nop:
		return constants.RankNop
	default:
		return constants.RankOther
	}
}

// Sort orders actions for transmission: all DEL actions first, then ADD, then
// everything else, ties broken lexicographically by path. Deletes are ordered
// first so that a path being both freed (by a delete of an old file) and
// reused (by an add) never races on a case-insensitive or symlinked
// destination.
func Sort(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		ri, rj := rank(actions[i].Kind), rank(actions[j].Kind)
		if ri != rj {
			return ri < rj
		}
		return actions[i].Path < actions[j].Path
	})
}

// Deployable reports whether an action should actually be sent to a deployer
// (Add or Del); Nop and Err are never transmitted.
func (a Action) Deployable() bool {
	return a.Kind == Add || a.Kind == Del
}
