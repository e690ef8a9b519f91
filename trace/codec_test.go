package trace_test

import (
	"bytes"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
	"github.com/Troublor/erebus-infoflow/trace"
)

func encode(ops ...*info_flow.Operation) []byte {
	var buf bytes.Buffer
	w := trace.NewWriter(&buf)
	for _, op := range ops {
		Expect(w.Write(op)).To(Succeed())
	}
	Expect(w.Flush()).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("Codec", func() {
	It("should lay out records little-endian at the declared widths", func() {
		data := encode(info_flow.MustOperation(info_flow.OpLdlT0A0, uint64(info_flow.MemUser), 0x1122334455667788))
		id := uint16(info_flow.OpLdlT0A0)
		Expect(data).To(Equal([]byte{
			byte(id), byte(id >> 8),
			0x02,
			0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11,
		}))
	})

	It("should decode a stream and number the records", func() {
		data := encode(
			info_flow.MustOperation(info_flow.OpNetworkInputLongT0, 3, 0xcafe),
			info_flow.MustOperation(info_flow.OpAddlT0T1),
			info_flow.MustOperation(info_flow.OpHdTransfer, 0x9000, 0x5000, 512),
		)
		ops, err := trace.NewReader(bytes.NewReader(data)).ReadAll()
		Expect(err).To(BeNil())
		Expect(ops).To(HaveLen(3))
		Expect(ops[0].ID).To(Equal(info_flow.OpNetworkInputLongT0))
		Expect(ops[0].Args[1].U32()).To(Equal(uint32(0xcafe)))
		Expect(ops[1].Index).To(Equal(uint64(1)))
		Expect(ops[2].Args[2]).To(Equal(info_flow.Arg{Width: info_flow.W32, Value: 512}))
		for _, op := range ops {
			Expect(op.Validate()).To(Succeed())
		}
	})

	It("should report a clean end of stream", func() {
		_, err := trace.NewReader(bytes.NewReader(nil)).Next()
		Expect(err).To(Equal(io.EOF))
	})

	It("should reject a record cut short", func() {
		data := encode(info_flow.MustOperation(info_flow.OpStlT0A0, 0, 0x1000))
		_, err := trace.NewReader(bytes.NewReader(data[:len(data)-3])).Next()
		Expect(err).To(MatchError(trace.ErrTruncatedRecord))
		Expect(err).To(MatchError(info_flow.ErrInvalidInput))

		_, err = trace.NewReader(bytes.NewReader(data[:1])).Next()
		Expect(err).To(MatchError(trace.ErrTruncatedRecord))
	})

	It("should reject an unknown id", func() {
		_, err := trace.NewReader(bytes.NewReader([]byte{0xff, 0xff})).Next()
		Expect(err).To(MatchError(info_flow.ErrUnknownOperation))
	})

	It("should refuse to write a malformed record", func() {
		w := trace.NewWriter(io.Discard)
		Expect(w.Write(&info_flow.Operation{ID: info_flow.OpLdlT0A0})).To(MatchError(info_flow.ErrArgumentShape))
	})
})
