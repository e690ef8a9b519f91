package info_flow

import (
	"fmt"
)

// shift is log2 of the operand width in bytes: 0 byte, 1 word, 2 long,
// 3 quad
const maxShift = 3

func shiftPolicy() FlowPolicy {
	return FlowPolicy{
		// TODO: use the shift to limit the spread to the operand width
		OpShlT0T1: withShift(shiftFlow),
		OpShrT0T1: withShift(shiftFlow),
		OpSarT0T1: withShift(shiftFlow),

		OpRolT0T1CcMemwrite: shiftMemFlow,
		OpRorT0T1CcMemwrite: shiftMemFlow,
		OpRolT0T1Memwrite:   shiftMemFlow,
		OpRorT0T1Memwrite:   shiftMemFlow,
		OpRclT0T1CcMemwrite: shiftMemFlow,
		OpRcrT0T1CcMemwrite: shiftMemFlow,
		OpShlT0T1CcMemwrite: shiftMemFlow,
		OpShrT0T1CcMemwrite: shiftMemFlow,
		OpSarT0T1CcMemwrite: shiftMemFlow,

		OpShldT0T1ImCcMemwrite:  doubleShiftFlow,
		OpShldT0T1EcxCcMemwrite: doubleShiftFlow,
		OpShrdT0T1ImCcMemwrite:  doubleShiftFlow,
		OpShrdT0T1EcxCcMemwrite: doubleShiftFlow,

		OpAdcT0T1CcMemwrite:        carryMemFlow,
		OpSbbT0T1CcMemwrite:        carryMemFlow,
		OpCmpxchgT0T1EaxCcMemwrite: carryMemFlow,

		OpSetbT0Sub:  withShift(deleteT0),
		OpSetzT0Sub:  withShift(deleteT0),
		OpSetbeT0Sub: withShift(deleteT0),
		OpSetsT0Sub:  withShift(deleteT0),
		OpSetlT0Sub:  withShift(deleteT0),
		OpSetleT0Sub: withShift(deleteT0),

		// Q1 = T1 & mask; T1 = T0 >> Q1; T0 = T0 op (1 << Q1)
		OpBtsT0T1Cc: withShift(bitTestFlow),
		OpBtrT0T1Cc: withShift(bitTestFlow),
		OpBtcT0T1Cc: withShift(bitTestFlow),
		OpAddBitA0T1: withShift(func(e *Engine, _ uint8) {
			e.selfCompute(A0, T1, 4)
		}),
		OpBsfT0Cc: withShift(bitScanFlow),
		OpBsrT0Cc: withShift(bitScanFlow),

		// T0 = DF << shift
		OpMovlT0Dshift: withShift(deleteT0),

		// port input is labelled by the device model, not here
		OpInT0T1: withShift(func(*Engine, uint8) {}),
		OpInDxT0: withShift(func(*Engine, uint8) {}),
	}
}

func checkShift(op *Operation, shift uint8) error {
	if shift > maxShift {
		return fmt.Errorf("%w: %s shift %d", ErrInvalidInput, op.ID, shift)
	}
	return nil
}

func withShift(fn func(e *Engine, shift uint8)) FlowFn {
	return func(e *Engine, op *Operation) error {
		shift := op.Args[0].U8()
		if err := checkShift(op, shift); err != nil {
			return err
		}
		fn(e, shift)
		return nil
	}
}

func shiftFlow(e *Engine, _ uint8) {
	e.selfCompute(T0, T1, 4)
}

func deleteT0(e *Engine, _ uint8) {
	e.deleteReg(T0, 0, 4)
}

func bitTestFlow(e *Engine, _ uint8) {
	e.deleteReg(Q1, 0, 4)
	e.computeReg(Q1, 0, 4, T1, 0, 4)
	e.deleteReg(T1, 0, 4)
	e.computeReg(T1, 0, 4, T0, 0, 4)
	e.computeReg(T1, 0, 4, Q1, 0, 4)
	e.selfCompute(T0, Q1, 4)
}

func bitScanFlow(e *Engine, _ uint8) {
	e.deleteReg(T1, 0, 4)
	e.computeReg(T1, 0, 4, T0, 0, 4)
}

// memWriteArgs decodes the shift, memory write flag, memory suffix and
// address carried by the read-modify-write shift family.
type memWriteArgs struct {
	shift    uint8
	memWrite bool
	suffix   MemSuffix
	addr     Address
}

func decodeMemWrite(op *Operation) (memWriteArgs, error) {
	args := memWriteArgs{
		shift:    op.Args[0].U8(),
		memWrite: op.Args[1].U8() == 1,
		suffix:   MemSuffix(op.Args[2].U8()),
		addr:     Address(op.Args[3].U64()),
	}
	if err := checkShift(op, args.shift); err != nil {
		return args, err
	}
	if args.memWrite && !args.suffix.Valid() {
		return args, fmt.Errorf("%w: %s memory suffix %d", ErrInvalidInput, op.ID, args.suffix)
	}
	if args.memWrite {
		if err := checkRange(args.addr, args.width()); err != nil {
			return args, err
		}
	}
	return args, nil
}

func (a memWriteArgs) width() uint64 {
	return 1 << a.shift
}

// shiftMemFlow updates T0 from T0 and the count in T1 and, when the
// instruction writes memory, stores the result at the operand address.
func shiftMemFlow(e *Engine, op *Operation) error {
	args, err := decodeMemWrite(op)
	if err != nil {
		return err
	}
	if args.shift == maxShift {
		e.deleteReg(T0, 0, 4)
		if args.memWrite {
			e.deleteRange(args.addr, args.width())
		}
		return nil
	}
	e.selfCompute(T0, T1, 4)
	if args.memWrite {
		e.storeReg(T0, args.width(), args.addr)
	}
	return nil
}

// doubleShiftFlow covers SHLD and SHRD, which have no byte form.
func doubleShiftFlow(e *Engine, op *Operation) error {
	args, err := decodeMemWrite(op)
	if err != nil {
		return err
	}
	if args.shift == 0 {
		return fmt.Errorf("%w: %s has no byte form", ErrInvalidInput, op.ID)
	}
	e.deleteReg(T0, 0, 4)
	if args.shift >= 2 {
		e.deleteReg(T1, 0, 4)
	}
	if args.memWrite {
		e.deleteRange(args.addr, args.width())
	}
	return nil
}

func carryMemFlow(e *Engine, op *Operation) error {
	args, err := decodeMemWrite(op)
	if err != nil {
		return err
	}
	e.deleteReg(T0, 0, 4)
	if args.memWrite {
		e.deleteRange(args.addr, args.width())
	}
	return nil
}
