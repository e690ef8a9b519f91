package info_flow

import (
	"fmt"
	"strings"
)

// MaxArgs is the number of argument slots in an operation record.
const MaxArgs = 5

// ArgWidth is the declared width of an argument slot, in bits.
type ArgWidth uint8

const (
	W8  ArgWidth = 8
	W16 ArgWidth = 16
	W32 ArgWidth = 32
	W64 ArgWidth = 64
)

func (w ArgWidth) Bytes() int {
	return int(w) / 8
}

func (w ArgWidth) Valid() bool {
	switch w {
	case W8, W16, W32, W64:
		return true
	}
	return false
}

func (w ArgWidth) mask() uint64 {
	if w == W64 {
		return ^uint64(0)
	}
	return uint64(1)<<w - 1
}

// Arg is one typed argument slot.
type Arg struct {
	Width ArgWidth
	Value uint64
}

func (a Arg) U8() uint8   { return uint8(a.Value) }
func (a Arg) U16() uint16 { return uint16(a.Value) }
func (a Arg) U32() uint32 { return uint32(a.Value) }
func (a Arg) U64() uint64 { return a.Value }
func (a Arg) I8() int8    { return int8(a.Value) }
func (a Arg) I16() int16  { return int16(a.Value) }
func (a Arg) I32() int32  { return int32(a.Value) }
func (a Arg) I64() int64  { return int64(a.Value) }

// Operation is one record emitted by the instruction emulator.
type Operation struct {
	ID    OpID
	Args  [MaxArgs]Arg
	Index uint64 // position in the stream, diagnostics only
}

// NewOperation builds an operation using the argument shape declared for id.
// Values beyond the declared width are truncated.
func NewOperation(id OpID, values ...uint64) (*Operation, error) {
	shape, ok := id.Shape()
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownOperation, uint16(id))
	}
	if len(values) != len(shape) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgumentShape, id, len(shape), len(values))
	}
	op := &Operation{ID: id}
	for i, w := range shape {
		op.Args[i] = Arg{Width: w, Value: values[i] & w.mask()}
	}
	return op, nil
}

// MustOperation is NewOperation for statically known records.
func MustOperation(id OpID, values ...uint64) *Operation {
	op, err := NewOperation(id, values...)
	if err != nil {
		panic(err)
	}
	return op
}

// Validate checks that the id is known and that the slots match its shape.
func (o *Operation) Validate() error {
	shape, ok := o.ID.Shape()
	if !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownOperation, uint16(o.ID))
	}
	for i := 0; i < MaxArgs; i++ {
		if i < len(shape) {
			if o.Args[i].Width != shape[i] {
				return fmt.Errorf("%w: %s arg %d is %d bits, want %d",
					ErrArgumentShape, o.ID, i, o.Args[i].Width, shape[i])
			}
		} else if o.Args[i].Width != 0 {
			return fmt.Errorf("%w: %s has unexpected arg %d", ErrArgumentShape, o.ID, i)
		}
	}
	return nil
}

func (o *Operation) Arg(i int) Arg {
	return o.Args[i]
}

func (o *Operation) String() string {
	shape, _ := o.ID.Shape()
	args := make([]string, 0, len(shape))
	for i := range shape {
		args = append(args, fmt.Sprintf("0x%x", o.Args[i].Value))
	}
	return fmt.Sprintf("%s(%s)", o.ID, strings.Join(args, ","))
}

// argument shapes
var (
	argsNone     []ArgWidth
	argsReg      = []ArgWidth{W8}               // register number
	argsImm      = []ArgWidth{W32}              // immediate
	argsImm2     = []ArgWidth{W32, W32}         // two immediates
	argsMem      = []ArgWidth{W8, W64}          // memory suffix, address
	argsEnv      = []ArgWidth{W64}              // offset into the CPU state
	argsShift    = []ArgWidth{W8}               // log2 of operand width
	argsShiftMem = []ArgWidth{W8, W8, W8, W64}  // shift, memory write flag, memory suffix, address
	argsKeyboard = []ArgWidth{W32, W32, W32}    // device, key number, key value
	argsChannel  = []ArgWidth{W32}              // network channel
	argsNetIn    = []ArgWidth{W32, W32}         // channel, value
	argsHD       = []ArgWidth{W64, W64, W32}    // to, from, size
	argsHDPart1  = []ArgWidth{W64}              // from
	argsSaveReg  = []ArgWidth{W32, W64}         // register, address
)
