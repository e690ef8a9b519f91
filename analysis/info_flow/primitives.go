package info_flow

import (
	"fmt"
	"math"
)

// MemSuffix selects the softmmu access path of a load or store. It does not
// change propagation.
type MemSuffix uint8

const (
	MemRaw MemSuffix = iota
	MemKernel
	MemUser
)

func (s MemSuffix) Valid() bool {
	return s <= MemUser
}

func (s MemSuffix) String() string {
	switch s {
	case MemRaw:
		return "raw"
	case MemKernel:
		return "kernel"
	case MemUser:
		return "user"
	}
	return fmt.Sprintf("suffix(%d)", uint8(s))
}

func checkRegisterBytes(reg Register, off, n uint64) error {
	if !reg.Valid() {
		return fmt.Errorf("%w: register %d", ErrInvalidInput, uint8(reg))
	}
	if n == 0 || n > RegisterWidth || off+n > RegisterWidth {
		return fmt.Errorf("%w: %s bytes [%d,%d) out of range", ErrInvalidInput, reg, off, off+n)
	}
	return nil
}

// MaxAddress bounds the taint namespace: every range [addr, addr+n) must end
// at or below it.
const MaxAddress Address = math.MaxInt64

func checkRange(addr Address, n uint64) error {
	if addr > MaxAddress || n > uint64(MaxAddress-addr) {
		return fmt.Errorf("%w: range %s+%d past %s", ErrInvalidInput, addr, n, MaxAddress)
	}
	return nil
}

func (e *Engine) regAddr(reg Register, off uint64) Address {
	return e.resolver.BaseAddress(reg) + Address(off)
}

func (e *Engine) deleteRange(addr Address, n uint64) {
	if e.DebugAtLeast(DebugOMG) {
		e.logger.Debug().Str("addr", e.resolver.Render(addr)).Uint64("n", n).
			Bool("temporary", !e.resolver.IsRealAddress(addr)).Msg("delete")
	}
	e.store.Delete(addr, n)
}

func (e *Engine) copyRange(dst, src Address, n uint64) {
	if e.DebugAtLeast(DebugOMG) {
		e.logger.Debug().Str("dst", e.resolver.Render(dst)).Str("src", e.resolver.Render(src)).
			Uint64("n", n).Bool("temporary", e.touchesTemporary(dst, src)).Msg("copy")
	}
	e.store.Copy(dst, n, src, n)
}

func (e *Engine) computeRange(dst Address, dstLen uint64, src Address, srcLen uint64) {
	if e.DebugAtLeast(DebugOMG) {
		e.logger.Debug().Str("dst", e.resolver.Render(dst)).Uint64("dstLen", dstLen).
			Str("src", e.resolver.Render(src)).Uint64("srcLen", srcLen).
			Bool("temporary", e.touchesTemporary(dst, src)).Msg("compute")
	}
	e.store.Compute(dst, dstLen, src, srcLen)
}

// touchesTemporary reports whether either end of a transfer is an emulator
// temporary rather than guest state.
func (e *Engine) touchesTemporary(dst, src Address) bool {
	return !e.resolver.IsRealAddress(dst) || !e.resolver.IsRealAddress(src)
}

// checkRegister logs when the cache claims reg is clean but the store
// disagrees.
func (e *Engine) checkRegister(reg Register) {
	if !e.DebugAtLeast(DebugMedium) {
		return
	}
	if !e.cache.IsPossiblyTainted(reg) && e.store.Exists(e.regAddr(reg, 0), RegisterWidth) {
		e.logger.Error().Stringer("reg", reg).Msg("register tainted in store but not possibly tainted in cache")
	}
}

// DeleteRegisterBytes untaints n bytes of reg starting at off. The cache
// flag is only cleared when the whole register is deleted.
func (e *Engine) DeleteRegisterBytes(reg Register, off, n uint64) error {
	if err := checkRegisterBytes(reg, off, n); err != nil {
		return err
	}
	e.deleteReg(reg, off, n)
	return nil
}

func (e *Engine) deleteReg(reg Register, off, n uint64) {
	if e.cache.IsPossiblyTainted(reg) {
		e.deleteRange(e.regAddr(reg, off), n)
		if off == 0 && n == RegisterWidth {
			e.cache.MarkNotPossiblyTainted(reg)
		}
	}
	e.checkRegister(reg)
}

// CopyRegisterBytes makes n bytes of dst at dOff a copy of n bytes of src at
// sOff. Copying a clean register over all of dst scrubs it.
func (e *Engine) CopyRegisterBytes(dst Register, dOff uint64, src Register, sOff, n uint64) error {
	if err := checkRegisterBytes(dst, dOff, n); err != nil {
		return err
	}
	if err := checkRegisterBytes(src, sOff, n); err != nil {
		return err
	}
	e.copyReg(dst, dOff, src, sOff, n)
	return nil
}

func (e *Engine) copyReg(dst Register, dOff uint64, src Register, sOff, n uint64) {
	if e.cache.IsPossiblyTainted(src) {
		e.copyRange(e.regAddr(dst, dOff), e.regAddr(src, sOff), n)
		e.cache.MarkPossiblyTainted(dst)
	} else if dOff == 0 && n == RegisterWidth && e.cache.IsPossiblyTainted(dst) {
		e.deleteRange(e.regAddr(dst, 0), RegisterWidth)
		e.cache.MarkNotPossiblyTainted(dst)
	}
	e.checkRegister(dst)
	e.checkRegister(src)
}

// ComputeRegisterBytes adds the taint of src to dst. A clean src leaves dst
// as it was.
func (e *Engine) ComputeRegisterBytes(dst Register, dOff, dN uint64, src Register, sOff, sN uint64) error {
	if err := checkRegisterBytes(dst, dOff, dN); err != nil {
		return err
	}
	if err := checkRegisterBytes(src, sOff, sN); err != nil {
		return err
	}
	e.computeReg(dst, dOff, dN, src, sOff, sN)
	return nil
}

func (e *Engine) computeReg(dst Register, dOff, dN uint64, src Register, sOff, sN uint64) {
	if e.cache.IsPossiblyTainted(src) {
		e.computeRange(e.regAddr(dst, dOff), dN, e.regAddr(src, sOff), sN)
		e.cache.MarkPossiblyTainted(dst)
	}
	e.checkRegister(dst)
	e.checkRegister(src)
}

// SelfComputeRegisterBytes models r1 = f(r1, r2) over the low n bytes,
// going through Q0.
func (e *Engine) SelfComputeRegisterBytes(r1, r2 Register, n uint64) error {
	if err := checkRegisterBytes(r1, 0, n); err != nil {
		return err
	}
	if err := checkRegisterBytes(r2, 0, n); err != nil {
		return err
	}
	e.selfCompute(r1, r2, n)
	return nil
}

func (e *Engine) selfCompute(r1, r2 Register, n uint64) {
	if !e.cache.IsPossiblyTainted(r1) && !e.cache.IsPossiblyTainted(r2) {
		return
	}
	e.deleteReg(Q0, 0, n)
	e.computeReg(Q0, 0, n, r1, 0, n)
	e.computeReg(Q0, 0, n, r2, 0, n)
	e.copyReg(r1, 0, Q0, 0, n)
}

// IncrementStyleUpdate models reg = f(reg, constant).
func (e *Engine) IncrementStyleUpdate(reg Register) error {
	if err := checkRegisterBytes(reg, 0, RegisterWidth); err != nil {
		return err
	}
	e.increment(reg)
	return nil
}

func (e *Engine) increment(reg Register) {
	if !e.cache.IsPossiblyTainted(reg) {
		return
	}
	e.deleteReg(Q0, 0, RegisterWidth)
	e.computeReg(Q0, 0, RegisterWidth, reg, 0, RegisterWidth)
	e.copyReg(reg, 0, Q0, 0, RegisterWidth)
}

// LoadFromMemory copies n bytes at addr into the low bytes of reg. Unsigned
// loads clear the upper bytes; sign-extended loads leave them alone. Taint on
// the four bytes at addr is also computed into the loaded bytes.
func (e *Engine) LoadFromMemory(suffix MemSuffix, reg Register, n uint64, addr Address, unsigned bool) error {
	if !suffix.Valid() {
		return fmt.Errorf("%w: memory suffix %d", ErrInvalidInput, uint8(suffix))
	}
	if err := checkRegisterBytes(reg, 0, n); err != nil {
		return err
	}
	// the whole word at addr is read for pointer taint
	if err := checkRange(addr, RegisterWidth); err != nil {
		return err
	}
	e.loadReg(reg, n, addr, unsigned)
	return nil
}

func (e *Engine) loadReg(reg Register, n uint64, addr Address, unsigned bool) {
	base := e.regAddr(reg, 0)
	e.copyRange(base, addr, n)
	if unsigned && n < RegisterWidth {
		e.deleteRange(base+Address(n), RegisterWidth-n)
	}
	e.cache.MarkPossiblyTainted(reg)
	if e.store.Exists(addr, RegisterWidth) {
		e.computeRange(base, n, addr, RegisterWidth)
	}
	e.checkRegister(reg)
}

// StoreToMemory copies the low n bytes of reg to addr. A clean register
// does not scrub the destination.
func (e *Engine) StoreToMemory(suffix MemSuffix, reg Register, n uint64, addr Address) error {
	if !suffix.Valid() {
		return fmt.Errorf("%w: memory suffix %d", ErrInvalidInput, uint8(suffix))
	}
	if err := checkRegisterBytes(reg, 0, n); err != nil {
		return err
	}
	if err := checkRange(addr, n); err != nil {
		return err
	}
	e.storeReg(reg, n, addr)
	return nil
}

func (e *Engine) storeReg(reg Register, n uint64, addr Address) {
	if e.cache.IsPossiblyTainted(reg) {
		e.copyRange(addr, e.regAddr(reg, 0), n)
	}
	e.checkRegister(reg)
}

// AddLabel adds label to [addr, addr+n) while keeping the labels already
// there. The label is staged at the scratch extent and computed in.
func (e *Engine) AddLabel(addr Address, n uint64, label string) error {
	if err := checkRange(addr, n); err != nil {
		return err
	}
	if err := checkRange(e.scratchBase, n); err != nil {
		return err
	}
	e.store.Label(e.scratchBase, n, label)
	e.computeRange(addr, n, e.scratchBase, n)
	e.deleteRange(e.scratchBase, n)
	return nil
}
