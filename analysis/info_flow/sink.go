package info_flow

import (
	"fmt"
)

func sinkPolicy() FlowPolicy {
	return FlowPolicy{
		OpKeyboardInput: keyboardInputFlow,
		// labels are built from the input record itself
		OpNewKeyboardLabel: noopFlow,
		OpNewNetworkLabel:  noopFlow,

		OpNetworkInputByteT0: networkInputFlow(T0, 1),
		OpNetworkInputWordT0: networkInputFlow(T0, 2),
		OpNetworkInputLongT0: networkInputFlow(T0, 4),
		OpNetworkInputByteT1: networkInputFlow(T1, 1),
		OpNetworkInputWordT1: networkInputFlow(T1, 2),
		OpNetworkInputLongT1: networkInputFlow(T1, 4),

		OpNetworkOutputByteT0: networkOutputFlow(T0, 1),
		OpNetworkOutputWordT0: networkOutputFlow(T0, 2),
		OpNetworkOutputLongT0: networkOutputFlow(T0, 4),
		OpNetworkOutputByteT1: networkOutputFlow(T1, 1),
		OpNetworkOutputWordT1: networkOutputFlow(T1, 2),
		OpNetworkOutputLongT1: networkOutputFlow(T1, 4),

		OpHdTransfer:      hdTransferFlow,
		OpHdTransferPart1: hdTransferPart1Flow,
		OpHdTransferPart2: hdTransferPart2Flow,
	}
}

func KeyboardLabel(device, code, value uint32) string {
	return fmt.Sprintf("key-%d-%x-%x", device, code, value)
}

func NetworkLabel(channel uint32) string {
	return fmt.Sprintf("net-%x", channel)
}

// a keystroke arrives in the low byte of T1
func keyboardInputFlow(e *Engine, op *Operation) error {
	label := KeyboardLabel(op.Args[0].U32(), op.Args[1].U32(), op.Args[2].U32())
	if e.DebugAtLeast(DebugLow) {
		e.logger.Debug().Str("label", label).Msg("keyboard input")
	}
	e.labelRegister(T1, 1, label)
	return nil
}

func networkInputFlow(reg Register, n uint64) FlowFn {
	return func(e *Engine, op *Operation) error {
		label := NetworkLabel(op.Args[0].U32())
		if e.DebugAtLeast(DebugLow) {
			e.logger.Debug().Str("label", label).Stringer("reg", reg).
				Uint64("n", n).Uint32("value", op.Args[1].U32()).Msg("network input")
		}
		e.labelRegister(reg, n, label)
		return nil
	}
}

func networkOutputFlow(reg Register, n uint64) FlowFn {
	return func(e *Engine, _ *Operation) error {
		e.CheckOutput(AlertNetworkOutput, e.regAddr(reg, 0), n)
		return nil
	}
}

func hdTransferFlow(e *Engine, op *Operation) error {
	to, from, size := Address(op.Args[0].U64()), Address(op.Args[1].U64()), uint64(op.Args[2].U32())
	if err := checkTransfer(to, from, size); err != nil {
		return err
	}
	e.hdTransfer(to, from, size)
	return nil
}

func checkTransfer(to, from Address, size uint64) error {
	if err := checkRange(to, size); err != nil {
		return err
	}
	return checkRange(from, size)
}

// The first half of a split transfer only announces the source. The second
// half carries the source, the destination and the size and performs the
// copy on its own.
func hdTransferPart1Flow(e *Engine, op *Operation) error {
	e.hdPending = true
	e.hdSource = Address(op.Args[0].U64())
	if e.DebugAtLeast(DebugLow) {
		e.logger.Debug().Str("from", e.hdSource.String()).Msg("disk transfer part 1")
	}
	return nil
}

func hdTransferPart2Flow(e *Engine, op *Operation) error {
	to, from, size := Address(op.Args[0].U64()), Address(op.Args[1].U64()), uint64(op.Args[2].U32())
	if err := checkTransfer(to, from, size); err != nil {
		return err
	}
	if e.hdPending && e.hdSource != from {
		e.logger.Warn().
			Str("announced", e.hdSource.String()).
			Str("from", from.String()).
			Msg("disk transfer part 2 does not match part 1")
	}
	e.hdPending = false
	e.hdTransfer(to, from, size)
	return nil
}

func (e *Engine) hdTransfer(to, from Address, size uint64) {
	if size == 0 {
		return
	}
	if e.DebugAtLeast(DebugLow) {
		e.logger.Debug().Str("to", to.String()).Str("from", from.String()).Uint64("size", size).Msg("disk transfer")
	}
	e.CheckOutput(AlertDiskTransfer, from, size)
	e.copyRange(to, from, size)
}

// LabelInput labels [addr, addr+n) as coming from an input source. Labelling
// the fake range of a register this way does not update the cache; use
// LabelRegister for that.
func (e *Engine) LabelInput(addr Address, n uint64, label string) error {
	if err := checkRange(addr, n); err != nil {
		return err
	}
	if n > 0 {
		e.store.Label(addr, n, label)
	}
	return nil
}

// LabelRegister labels the low n bytes of reg and marks it possibly tainted.
func (e *Engine) LabelRegister(reg Register, n uint64, label string) error {
	if err := checkRegisterBytes(reg, 0, n); err != nil {
		return err
	}
	e.labelRegister(reg, n, label)
	return nil
}

func (e *Engine) labelRegister(reg Register, n uint64, label string) {
	e.store.Label(e.regAddr(reg, 0), n, label)
	e.cache.MarkPossiblyTainted(reg)
}

// CheckOutput reports whether any of [addr, addr+n) is tainted and raises an
// alert of the given kind if so. The store is never modified. Nothing past
// MaxAddress can hold taint.
func (e *Engine) CheckOutput(kind AlertKind, addr Address, n uint64) bool {
	if n == 0 || checkRange(addr, n) != nil || !e.store.Exists(addr, n) {
		return false
	}
	e.raise(kind, addr, n)
	return true
}
