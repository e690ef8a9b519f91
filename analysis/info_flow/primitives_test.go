package info_flow_test

import (
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/Troublor/erebus-infoflow/analysis/info_flow"
	info_flow_mocks "github.com/Troublor/erebus-infoflow/analysis/info_flow/mocks"
)

var _ = Describe("Primitives against the store contract", func() {
	var (
		mockCtrl *gomock.Controller
		store    *info_flow_mocks.MockStore
		engine   *Engine
		base     func(reg Register) Address
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		store = info_flow_mocks.NewMockStore(mockCtrl)
		engine = NewEngine(store, DefaultOptions())
		base = engine.Resolver().BaseAddress
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should skip the store for provably clean registers", func() {
		Expect(engine.DeleteRegisterBytes(T0, 0, 4)).To(Succeed())
		Expect(engine.CopyRegisterBytes(T1, 0, T0, 0, 4)).To(Succeed())
		Expect(engine.ComputeRegisterBytes(T1, 0, 4, T0, 0, 4)).To(Succeed())
		Expect(engine.SelfComputeRegisterBytes(T0, T1, 4)).To(Succeed())
		Expect(engine.IncrementStyleUpdate(EAX)).To(Succeed())
	})

	It("should copy through the store when the source may be tainted", func() {
		engine.Cache().MarkPossiblyTainted(EBX)
		store.EXPECT().Copy(base(T0), uint64(4), base(EBX), uint64(4)).Times(1)
		Expect(engine.CopyRegisterBytes(T0, 0, EBX, 0, 4)).To(Succeed())
		Expect(engine.Cache().IsPossiblyTainted(T0)).To(BeTrue())
	})

	It("should scrub a possibly tainted destination on a clean full copy", func() {
		engine.Cache().MarkPossiblyTainted(T0)
		store.EXPECT().Delete(base(T0), uint64(4)).Times(1)
		Expect(engine.CopyRegisterBytes(T0, 0, EBX, 0, 4)).To(Succeed())
		Expect(engine.Cache().IsPossiblyTainted(T0)).To(BeFalse())
	})

	It("should route a self compute through Q0", func() {
		engine.Cache().MarkPossiblyTainted(T0)
		gomock.InOrder(
			store.EXPECT().Compute(base(Q0), uint64(2), base(T0), uint64(2)),
			store.EXPECT().Copy(base(T0), uint64(2), base(Q0), uint64(2)),
		)
		Expect(engine.SelfComputeRegisterBytes(T0, T1, 2)).To(Succeed())
	})

	It("should check the whole word at the address on a load", func() {
		gomock.InOrder(
			store.EXPECT().Copy(base(T0), uint64(2), Address(0x1000), uint64(2)),
			store.EXPECT().Delete(base(T0)+2, uint64(2)),
			store.EXPECT().Exists(Address(0x1000), uint64(4)).Return(false),
		)
		Expect(engine.LoadFromMemory(MemRaw, T0, 2, 0x1000, true)).To(Succeed())
	})

	DescribeTable("should reject bad input without touching the store",
		func(call func() error) {
			Expect(call()).To(MatchError(ErrInvalidInput))
		},
		Entry("register out of range", func() error {
			return engine.DeleteRegisterBytes(Register(16), 0, 4)
		}),
		Entry("zero bytes", func() error {
			return engine.DeleteRegisterBytes(T0, 0, 0)
		}),
		Entry("bytes past the register", func() error {
			return engine.CopyRegisterBytes(T0, 3, T1, 0, 2)
		}),
		Entry("bad source register", func() error {
			return engine.ComputeRegisterBytes(T0, 0, 4, Register(99), 0, 4)
		}),
		Entry("bad memory suffix on load", func() error {
			return engine.LoadFromMemory(MemSuffix(7), T0, 4, 0x1000, true)
		}),
		Entry("bad memory suffix on store", func() error {
			return engine.StoreToMemory(MemSuffix(3), T0, 4, 0x1000)
		}),
		Entry("load wider than a register", func() error {
			return engine.LoadFromMemory(MemRaw, T0, 8, 0x1000, true)
		}),
		Entry("non general register operand", func() error {
			return engine.ProcessOperation(MustOperation(OpMovlT0R, uint64(T1)))
		}),
		Entry("oversized shift", func() error {
			return engine.ProcessOperation(MustOperation(OpShlT0T1, 4))
		}),
		Entry("byte form of a double shift", func() error {
			return engine.ProcessOperation(MustOperation(OpShldT0T1ImCcMemwrite, 0, 0, 0, 0x1000))
		}),
		Entry("memory write with a bad suffix", func() error {
			return engine.ProcessOperation(MustOperation(OpShlT0T1CcMemwrite, 2, 1, 9, 0x1000))
		}),
		Entry("load with a bad suffix", func() error {
			return engine.ProcessOperation(MustOperation(OpLdlT0A0, 5, 0x1000))
		}),
		Entry("load past the address space", func() error {
			return engine.ProcessOperation(MustOperation(OpLdlT0A0, 0, 1<<63))
		}),
		Entry("load whose word crosses the end", func() error {
			return engine.LoadFromMemory(MemRaw, T0, 1, MaxAddress-2, true)
		}),
		Entry("store crossing the end", func() error {
			return engine.StoreToMemory(MemRaw, T0, 4, MaxAddress-1)
		}),
		Entry("disk transfer from a wrapping range", func() error {
			return engine.ProcessOperation(MustOperation(OpHdTransfer, 0x1000, 0xFFFFFFFFFFFFFFF0, 16))
		}),
		Entry("second half of a transfer to a wrapping range", func() error {
			return engine.ProcessOperation(MustOperation(OpHdTransferPart2, 0xFFFFFFFFFFFFFFF0, 0x1000, 16))
		}),
		Entry("shift writing back past the end", func() error {
			return engine.ProcessOperation(MustOperation(OpShlT0T1CcMemwrite, 3, 1, 0, 1<<63))
		}),
		Entry("cpu state offset wrapping the address space", func() error {
			return engine.ProcessOperation(MustOperation(OpMovlT0Env, 0xFFFFFFFFFFFFFF00))
		}),
		Entry("segment base offset wrapping the address space", func() error {
			return engine.ProcessOperation(MustOperation(OpAddlA0Seg, 0xFFFFFFFFFFFFFF00))
		}),
	)
})
