// Package trace reads and writes binary operation streams.
//
// A record is the operation id as a little-endian uint16 followed by each
// argument at its declared width, also little-endian. There is no framing:
// the id determines the record length.
package trace

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
)

var ErrTruncatedRecord = fmt.Errorf("%w: truncated record", info_flow.ErrInvalidInput)

type Reader struct {
	r     *bufio.Reader
	index uint64
	buf   [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next decodes the following record. It returns io.EOF only at a record
// boundary.
func (r *Reader) Next() (*info_flow.Operation, error) {
	if _, err := io.ReadFull(r.r, r.buf[:2]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: record %d id", ErrTruncatedRecord, r.index)
		}
		return nil, err
	}
	id := info_flow.OpID(binary.LittleEndian.Uint16(r.buf[:2]))
	shape, ok := id.Shape()
	if !ok {
		return nil, fmt.Errorf("%w: record %d id %d", info_flow.ErrUnknownOperation, r.index, uint16(id))
	}
	op := &info_flow.Operation{ID: id, Index: r.index}
	for i, w := range shape {
		b := r.buf[:w.Bytes()]
		if _, err := io.ReadFull(r.r, b); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: record %d %s arg %d", ErrTruncatedRecord, r.index, id, i)
			}
			return nil, err
		}
		op.Args[i] = info_flow.Arg{Width: w, Value: decode(b)}
	}
	r.index++
	return op, nil
}

// ReadAll decodes records until the end of the stream.
func (r *Reader) ReadAll() ([]*info_flow.Operation, error) {
	var ops []*info_flow.Operation
	for {
		op, err := r.Next()
		if errors.Is(err, io.EOF) {
			return ops, nil
		}
		if err != nil {
			return ops, err
		}
		ops = append(ops, op)
	}
}

func decode(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

type Writer struct {
	w   *bufio.Writer
	buf [8]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Write(op *info_flow.Operation) error {
	if err := op.Validate(); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(w.buf[:2], uint16(op.ID))
	if _, err := w.w.Write(w.buf[:2]); err != nil {
		return err
	}
	shape, _ := op.ID.Shape()
	for i, width := range shape {
		binary.LittleEndian.PutUint64(w.buf[:], op.Args[i].Value)
		if _, err := w.w.Write(w.buf[:width.Bytes()]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}
