package info_flow_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/Troublor/erebus-infoflow/analysis/info_flow"
)

var _ = Describe("OpID", func() {
	It("should have a handler for every operation", func() {
		policy := GenDefaultFlowPolicy()
		for _, id := range AllOps() {
			Expect(policy).To(HaveKey(id), id.String())
		}
		Expect(policy).To(HaveLen(len(AllOps())))
	})

	It("should round trip names", func() {
		for _, id := range AllOps() {
			parsed, err := ParseOpID(id.String())
			Expect(err).To(BeNil())
			Expect(parsed).To(Equal(id))
		}
	})

	DescribeTable("should accept the emulator prefixes",
		func(name string, want OpID) {
			id, err := ParseOpID(name)
			Expect(err).To(BeNil())
			Expect(id).To(Equal(want))
		},
		Entry("bare", "ADDL_T0_T1", OpAddlT0T1),
		Entry("lower case", " addl_t0_t1 ", OpAddlT0T1),
		Entry("register template", "IFLO_OPREG_TEMPL_MOVL_T0_R", OpMovlT0R),
		Entry("memory", "IFLO_OPS_MEM_LDL_T0_A0", OpLdlT0A0),
		Entry("plain prefix", "IFLO_JMP_T0", OpJmpT0),
	)

	It("should reject unknown names", func() {
		_, err := ParseOpID("NOT_AN_OP")
		Expect(err).To(MatchError(ErrUnknownOperation))
	})

	It("should print unknown ids", func() {
		Expect(OpID(0xffff).Known()).To(BeFalse())
		Expect(OpID(0xffff).String()).To(Equal("OP(65535)"))
		Expect(OpInvalid.Known()).To(BeFalse())
	})

	It("should build operations from their shape", func() {
		op, err := NewOperation(OpLdlT0A0, uint64(MemUser), 0x1234)
		Expect(err).To(BeNil())
		Expect(op.Validate()).To(Succeed())
		Expect(op.Args[0]).To(Equal(Arg{Width: W8, Value: 2}))
		Expect(op.Args[1].U64()).To(Equal(uint64(0x1234)))
		Expect(op.String()).To(Equal("LDL_T0_A0(0x2,0x1234)"))

		_, err = NewOperation(OpLdlT0A0, 1)
		Expect(err).To(MatchError(ErrArgumentShape))
	})

	It("should truncate values to the declared width", func() {
		op := MustOperation(OpMovlT0R, 0x1ff)
		Expect(op.Args[0].Value).To(Equal(uint64(0xff)))
	})
})
