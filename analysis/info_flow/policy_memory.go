package info_flow

import (
	"fmt"
)

func memoryPolicy() FlowPolicy {
	return FlowPolicy{
		OpLdubT0A0: loadFlow(T0, 1, true),
		OpLdsbT0A0: loadFlow(T0, 1, false),
		OpLduwT0A0: loadFlow(T0, 2, true),
		OpLdswT0A0: loadFlow(T0, 2, false),
		OpLdlT0A0:  loadFlow(T0, 4, true),
		OpLdubT1A0: loadFlow(T1, 1, true),
		OpLdsbT1A0: loadFlow(T1, 1, false),
		OpLduwT1A0: loadFlow(T1, 2, true),
		OpLdswT1A0: loadFlow(T1, 2, false),
		OpLdlT1A0:  loadFlow(T1, 4, true),

		OpStbT0A0: storeFlow(T0, 1),
		OpStwT0A0: storeFlow(T0, 2),
		OpStlT0A0: storeFlow(T0, 4),
		OpStbT1A0: storeFlow(T1, 1),
		OpStwT1A0: storeFlow(T1, 2),
		OpStlT1A0: storeFlow(T1, 4),

		// A0 = segment base read from the CPU state
		OpMovlA0Seg: func(e *Engine, op *Operation) error {
			addr, err := e.envAddr(op.Args[0].U64())
			if err != nil {
				return err
			}
			e.loadReg(A0, 4, addr, true)
			return nil
		},
		OpAddlA0Seg: func(e *Engine, op *Operation) error {
			addr, err := e.envAddr(op.Args[0].U64())
			if err != nil {
				return err
			}
			e.loadReg(Q1, 4, addr, true)
			e.selfCompute(A0, Q1, 4)
			return nil
		},
	}
}

// memory records carry the softmmu suffix in arg 0 and the guest address in
// arg 1
func loadFlow(reg Register, n uint64, unsigned bool) FlowFn {
	return func(e *Engine, op *Operation) error {
		return e.LoadFromMemory(MemSuffix(op.Args[0].U8()), reg, n, Address(op.Args[1].U64()), unsigned)
	}
}

func storeFlow(reg Register, n uint64) FlowFn {
	return func(e *Engine, op *Operation) error {
		return e.StoreToMemory(MemSuffix(op.Args[0].U8()), reg, n, Address(op.Args[1].U64()))
	}
}

// envAddr maps an offset into the emulator CPU state to its fake address.
// Offsets that would run past MaxAddress are rejected rather than wrapped.
func (e *Engine) envAddr(off uint64) (Address, error) {
	if e.envBase > MaxAddress || off > uint64(MaxAddress-e.envBase) {
		return 0, fmt.Errorf("%w: cpu state offset 0x%x", ErrInvalidInput, off)
	}
	addr := e.envBase + Address(off)
	return addr, checkRange(addr, RegisterWidth)
}
