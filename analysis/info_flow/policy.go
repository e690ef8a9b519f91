package info_flow

import (
	"fmt"

	"github.com/Troublor/erebus-infoflow/helpers"
)

// FlowFn applies the taint effect of one operation. It must validate every
// argument it depends on before touching the store, so that a rejected
// record has no effect.
type FlowFn func(e *Engine, op *Operation) error

type FlowPolicy map[OpID]FlowFn

func GenDefaultFlowPolicy() FlowPolicy {
	policy := FlowPolicy{}
	families := []FlowPolicy{
		movePolicy(),
		arithPolicy(),
		mulDivPolicy(),
		memoryPolicy(),
		shiftPolicy(),
		stringPolicy(),
		systemPolicy(),
		sinkPolicy(),
	}
	for _, family := range families {
		for id, flow := range family {
			id := id
			helpers.SanityCheck(func() bool {
				_, dup := policy[id]
				return !dup
			}, id.String(), "is handled by two flow families")
			policy[id] = flow
		}
	}
	return policy
}

// Merge returns a copy of p with the handlers of other overriding its own.
func (p FlowPolicy) Merge(other FlowPolicy) FlowPolicy {
	merged := make(FlowPolicy, len(p)+len(other))
	for id, flow := range p {
		merged[id] = flow
	}
	for id, flow := range other {
		merged[id] = flow
	}
	return merged
}

func noopFlow(*Engine, *Operation) error {
	return nil
}

// deleteFlow fully untaints every register the instruction may write.
func deleteFlow(regs ...Register) FlowFn {
	return func(e *Engine, _ *Operation) error {
		for _, reg := range regs {
			e.deleteReg(reg, 0, RegisterWidth)
		}
		return nil
	}
}

func incrementFlow(reg Register) FlowFn {
	return func(e *Engine, _ *Operation) error {
		e.increment(reg)
		return nil
	}
}

func selfComputeFlow(r1, r2 Register, n uint64) FlowFn {
	return func(e *Engine, _ *Operation) error {
		e.selfCompute(r1, r2, n)
		return nil
	}
}

func copyFlow(dst, src Register) FlowFn {
	return func(e *Engine, _ *Operation) error {
		e.copyReg(dst, 0, src, 0, RegisterWidth)
		return nil
	}
}

func generalRegisterArg(op *Operation, i int) (Register, error) {
	reg := Register(op.Args[i].U8())
	if !reg.IsGeneral() {
		return 0, fmt.Errorf("%w: %s expects a general register, got %d", ErrInvalidInput, op.ID, op.Args[i].U8())
	}
	return reg, nil
}

// withGeneralRegister decodes argument 0 as a general register.
func withGeneralRegister(fn func(e *Engine, reg Register)) FlowFn {
	return func(e *Engine, op *Operation) error {
		reg, err := generalRegisterArg(op, 0)
		if err != nil {
			return err
		}
		fn(e, reg)
		return nil
	}
}
