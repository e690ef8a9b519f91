package info_flow

import (
	"fmt"
	"strings"
)

// Address is a location in the shared taint namespace. Guest memory and the
// fake register file live side by side in it.
type Address uint64

func (a Address) String() string {
	return fmt.Sprintf("0x%x", uint64(a))
}

// Register is one of the tracked 32-bit registers.
type Register uint8

const (
	EAX Register = iota
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
	T0
	T1
	A0
	Q0
	Q1
	Q2
	Q3
	Q4

	NumRegisters = 16
)

// RegisterWidth is the number of bytes tracked per register.
const RegisterWidth = 4

// RegisterStride is the distance between the fake base addresses of two
// consecutive registers.
const RegisterStride = 16

const (
	DefaultRegisterBase Address = 0x7e00_0000_0000
	DefaultEnvBase      Address = 0x7f00_0000_0000
	DefaultScratchBase  Address = 0x7d00_0000_0000
)

var registerNames = [NumRegisters]string{
	"EAX", "ECX", "EDX", "EBX", "ESP", "EBP", "ESI", "EDI",
	"T0", "T1", "A0", "Q0", "Q1", "Q2", "Q3", "Q4",
}

func (r Register) String() string {
	if !r.Valid() {
		return fmt.Sprintf("REG(%d)", uint8(r))
	}
	return registerNames[r]
}

func (r Register) Valid() bool {
	return r < NumRegisters
}

// IsGeneral reports whether r is one of the eight architectural registers.
func (r Register) IsGeneral() bool {
	return r <= EDI
}

// IsTemporary reports whether r is an emulator temporary or a scratch register.
func (r Register) IsTemporary() bool {
	return r >= T0 && r.Valid()
}

func ParseRegister(name string) (Register, error) {
	for i, n := range registerNames {
		if strings.EqualFold(n, name) {
			return Register(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown register %q", ErrInvalidInput, name)
}

// Resolver maps registers to their fake base addresses.
type Resolver struct {
	base Address
}

func NewResolver(base Address) Resolver {
	return Resolver{base: base}
}

func (r Resolver) BaseAddress(reg Register) Address {
	return r.base + Address(reg)*RegisterStride
}

// IsRealAddress returns false iff addr is the base address of an emulator
// temporary (T0, T1, A0, Q0-Q4).
func (r Resolver) IsRealAddress(addr Address) bool {
	reg, ok := r.registerAt(addr)
	return !ok || !reg.IsTemporary()
}

// Render prints register base addresses as "&eax" and anything else in hex.
func (r Resolver) Render(addr Address) string {
	if reg, ok := r.registerAt(addr); ok {
		return "&" + strings.ToLower(reg.String())
	}
	return addr.String()
}

func (r Resolver) registerAt(addr Address) (Register, bool) {
	if addr < r.base {
		return 0, false
	}
	off := addr - r.base
	if off%RegisterStride != 0 || off/RegisterStride >= NumRegisters {
		return 0, false
	}
	return Register(off / RegisterStride), true
}
