package operation

import (
	"errors"
	"fmt"
	"slices"

	"yard/internal/pkg/errs"
)

var (
	ErrGraphHasNoFirst         = errors.New("graph must have exactly one first operation")
	ErrGraphHasNoLast          = errors.New("graph must have exactly one last operation")
	ErrGraphChainIsBroken      = errors.New("next chain must lead from first to last without cycles")
	ErrGraphPrevIsInconsistent = errors.New("prev link disagrees with next chain")
	ErrGraphReloadIsInvalid    = errors.New("reload target must be a reload operation leading back to the main chain")
)

// Graph is the validated checkpoint graph with its transition table.
type Graph struct {
	ops   map[Code]Operation
	order []Code
	first Code
	last  Code
	// transitions holds every legal move of current_operation.
	transitions map[Code][]Code
}

var defaultGraph = mustGraph(seed())

// Default returns the yard's checkpoint graph built from the static seed table.
func Default() Graph {
	return defaultGraph
}

func mustGraph(ops []Operation) Graph {
	g, err := NewGraph(ops)
	if err != nil {
		panic(fmt.Sprintf("operation seed is invalid: %v", err))
	}
	return g
}

// NewGraph validates ops and builds the transition table.
func NewGraph(ops []Operation) (Graph, error) {
	g := Graph{
		ops:         make(map[Code]Operation, len(ops)),
		transitions: make(map[Code][]Code, len(ops)),
	}

	var firsts, lasts []Code
	for _, op := range ops {
		if err := op.Code.Validate(); err != nil {
			return Graph{}, err
		}
		if _, dup := g.ops[op.Code]; dup {
			return Graph{}, errs.NewValueIsInvalidErrorWithCause("operation", fmt.Errorf("%s is duplicated", op.Code))
		}
		g.ops[op.Code] = op
		g.order = append(g.order, op.Code)
		if op.IsFirst {
			firsts = append(firsts, op.Code)
		}
		if op.IsLast {
			lasts = append(lasts, op.Code)
		}
	}

	if len(firsts) != 1 {
		return Graph{}, ErrGraphHasNoFirst
	}
	if len(lasts) != 1 {
		return Graph{}, ErrGraphHasNoLast
	}
	g.first, g.last = firsts[0], lasts[0]

	mainChain, err := g.walkMainChain()
	if err != nil {
		return Graph{}, err
	}

	for _, code := range g.order {
		op := g.ops[code]
		if op.Next != Unknown && !op.IsLast {
			g.transitions[code] = append(g.transitions[code], op.Next)
		}
		for _, target := range op.RejectTo {
			reload, ok := g.ops[target]
			if !ok || !reload.IsReload || !slices.Contains(mainChain, reload.Next) {
				return Graph{}, fmt.Errorf("%w: %s -> %s", ErrGraphReloadIsInvalid, code, target)
			}
			g.transitions[code] = append(g.transitions[code], target)
		}
		if op.IsReload && !slices.Contains(mainChain, op.Next) {
			return Graph{}, fmt.Errorf("%w: %s", ErrGraphReloadIsInvalid, code)
		}
	}

	return g, nil
}

func (g Graph) walkMainChain() ([]Code, error) {
	visited := make(map[Code]bool, len(g.ops))
	chain := make([]Code, 0, len(g.ops))
	prev := Unknown

	for code := g.first; ; {
		op, ok := g.ops[code]
		if !ok || visited[code] {
			return nil, ErrGraphChainIsBroken
		}
		if op.Prev != prev {
			return nil, fmt.Errorf("%w: %s", ErrGraphPrevIsInconsistent, code)
		}
		visited[code] = true
		chain = append(chain, code)

		if op.IsLast {
			return chain, nil
		}
		if op.Next == Unknown {
			return nil, ErrGraphChainIsBroken
		}
		prev, code = code, op.Next
	}
}

// Get returns the operation for code.
func (g Graph) Get(code Code) (Operation, error) {
	op, ok := g.ops[code]
	if !ok {
		return Operation{}, errs.NewObjectNotFoundError("operation", code.String())
	}
	return op, nil
}

func (g Graph) First() Operation {
	return g.ops[g.first]
}

func (g Graph) Last() Operation {
	return g.ops[g.last]
}

// All returns the operations in seed order.
func (g Graph) All() []Operation {
	ops := make([]Operation, 0, len(g.order))
	for _, code := range g.order {
		ops = append(ops, g.ops[code])
	}
	return ops
}

// Advance returns the operation that follows a passed checkpoint. terminal is true when
// from is the last operation; the visit then ends at from.
func (g Graph) Advance(from Code) (next Code, terminal bool, err error) {
	op, err := g.Get(from)
	if err != nil {
		return Unknown, false, err
	}
	if op.IsLast {
		return from, true, nil
	}
	return op.Next, false, nil
}

// RouteBack validates a denial at from that sends the visit to the reload node to.
func (g Graph) RouteBack(from, to Code) error {
	op, err := g.Get(from)
	if err != nil {
		return err
	}
	if !slices.Contains(op.RejectTo, to) {
		return errs.NewValueIsInvalidErrorWithCause("next_operation",
			fmt.Errorf("%s is not a reload target of %s", to, from))
	}
	return nil
}

// CanMove reports whether current_operation may change from one code to another in a single step.
func (g Graph) CanMove(from, to Code) bool {
	return slices.Contains(g.transitions[from], to)
}

// Reachable reports whether to can be reached from from by a sequence of legal moves.
func (g Graph) Reachable(from, to Code) bool {
	if from == to {
		return true
	}
	seen := map[Code]bool{from: true}
	queue := []Code{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nxt := range g.transitions[cur] {
			if nxt == to {
				return true
			}
			if !seen[nxt] {
				seen[nxt] = true
				queue = append(queue, nxt)
			}
		}
	}
	return false
}
