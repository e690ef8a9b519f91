package info_flow_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/Troublor/erebus-infoflow/analysis/info_flow"
	"github.com/Troublor/erebus-infoflow/analysis/taint_store"
)

var _ = Describe("Engine", func() {
	var (
		store     *taint_store.Store
		engine    *Engine
		collector *AlertCollector
		resolver  Resolver
	)

	regLabels := func(reg Register, off, n uint64) []string {
		return store.Labels(resolver.BaseAddress(reg)+Address(off), n)
	}
	process := func(id OpID, values ...uint64) {
		Expect(engine.ProcessOperation(MustOperation(id, values...))).To(Succeed())
	}

	BeforeEach(func() {
		store = taint_store.New()
		collector = &AlertCollector{}
		opts := DefaultOptions()
		opts.Alerts = collector
		engine = NewEngine(store, opts)
		resolver = engine.Resolver()
	})

	Context("register primitives", func() {
		It("should be idempotent when deleting", func() {
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			Expect(engine.DeleteRegisterBytes(T0, 0, 4)).To(Succeed())
			Expect(engine.DeleteRegisterBytes(T0, 0, 4)).To(Succeed())
			Expect(regLabels(T0, 0, 4)).To(BeEmpty())
			Expect(engine.Cache().IsPossiblyTainted(T0)).To(BeFalse())
		})

		It("should keep the cache flag on a partial delete", func() {
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			Expect(engine.DeleteRegisterBytes(T0, 2, 2)).To(Succeed())
			Expect(regLabels(T0, 0, 2)).To(Equal([]string{"a"}))
			Expect(regLabels(T0, 2, 2)).To(BeEmpty())
			Expect(engine.Cache().IsPossiblyTainted(T0)).To(BeTrue())
		})

		It("should copy taint between registers", func() {
			Expect(engine.LabelRegister(EBX, 4, "a")).To(Succeed())
			process(OpMovlT0R, uint64(EBX))
			Expect(regLabels(T0, 0, 4)).To(Equal([]string{"a"}))
			Expect(engine.Cache().IsPossiblyTainted(T0)).To(BeTrue())
		})

		It("should scrub a register overwritten by a clean one", func() {
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			process(OpMovlT0R, uint64(EAX))
			Expect(regLabels(T0, 0, 4)).To(BeEmpty())
			Expect(engine.Cache().IsPossiblyTainted(T0)).To(BeFalse())
		})

		It("should merge both operands without losing the destination", func() {
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			Expect(engine.LabelRegister(T1, 4, "b")).To(Succeed())
			process(OpAddlT0T1)
			Expect(regLabels(T0, 0, 4)).To(Equal([]string{"a", "b"}))
			Expect(regLabels(T1, 0, 4)).To(Equal([]string{"b"}))
		})

		It("should leave the destination alone when computing from a clean source", func() {
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			Expect(engine.ComputeRegisterBytes(T0, 0, 4, T1, 0, 4)).To(Succeed())
			Expect(regLabels(T0, 0, 4)).To(Equal([]string{"a"}))
		})

		It("should move the low byte of T0 into the second byte of a register", func() {
			Expect(engine.LabelRegister(T0, 1, "k")).To(Succeed())
			process(OpMovhRT0, uint64(ECX))
			Expect(regLabels(ECX, 0, 1)).To(BeEmpty())
			Expect(regLabels(ECX, 1, 1)).To(Equal([]string{"k"}))
		})

		It("should untaint on immediate loads", func() {
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			process(OpMovlT0Imu, 7)
			Expect(regLabels(T0, 0, 4)).To(BeEmpty())
		})

		It("should only merge into the targeted bytes", func() {
			Expect(engine.LabelRegister(T0, 2, "a")).To(Succeed())
			Expect(engine.ComputeRegisterBytes(T0, 2, 2, T1, 0, 2)).To(Succeed())
			Expect(regLabels(T0, 0, 2)).To(Equal([]string{"a"}))
			Expect(regLabels(T0, 2, 2)).To(BeEmpty())
		})

		It("should copy the low byte and word of T0 into a register", func() {
			Expect(engine.LabelRegister(EBX, 4, "old")).To(Succeed())
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			process(OpMovbRT0, uint64(EBX))
			Expect(regLabels(EBX, 0, 1)).To(Equal([]string{"a"}))
			Expect(regLabels(EBX, 1, 3)).To(Equal([]string{"old"}))

			process(OpMovwRT0, uint64(ESI))
			Expect(regLabels(ESI, 0, 2)).To(Equal([]string{"a"}))
			Expect(regLabels(ESI, 2, 2)).To(BeEmpty())
			Expect(engine.Cache().IsPossiblyTainted(ESI)).To(BeTrue())
		})

		It("should put the remainder of a word division in EDX", func() {
			Expect(engine.LabelRegister(T0, 2, "d")).To(Succeed())
			process(OpDivwAxT0)
			Expect(regLabels(EAX, 0, 2)).To(Equal([]string{"d"}))
			Expect(regLabels(EDX, 0, 2)).To(Equal([]string{"d"}))
		})
	})

	Context("memory", func() {
		const addr = Address(0x1000)

		It("should clear the upper bytes on an unsigned load", func() {
			store.Label(addr, 1, "m")
			Expect(engine.LabelRegister(T0, 4, "old")).To(Succeed())
			process(OpLdubT0A0, uint64(MemUser), uint64(addr))
			Expect(regLabels(T0, 0, 1)).To(Equal([]string{"m"}))
			Expect(regLabels(T0, 1, 3)).To(BeEmpty())
		})

		It("should keep the upper bytes on a sign-extended load", func() {
			store.Label(addr, 1, "m")
			Expect(engine.LabelRegister(T0, 4, "old")).To(Succeed())
			process(OpLdsbT0A0, uint64(MemUser), uint64(addr))
			Expect(regLabels(T0, 0, 1)).To(Equal([]string{"m"}))
			Expect(regLabels(T0, 1, 3)).To(Equal([]string{"old"}))
		})

		It("should carry taint of the surrounding word into the loaded bytes", func() {
			store.Label(addr+1, 1, "p")
			process(OpLdubT0A0, uint64(MemRaw), uint64(addr))
			Expect(regLabels(T0, 0, 1)).To(Equal([]string{"p"}))
		})

		It("should store a tainted register", func() {
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			process(OpStlT0A0, uint64(MemKernel), uint64(addr))
			Expect(store.Labels(addr, 4)).To(Equal([]string{"a"}))
		})

		It("should not scrub memory when storing a clean register", func() {
			store.Label(addr, 4, "m")
			process(OpStlT0A0, uint64(MemKernel), uint64(addr))
			Expect(store.Labels(addr, 4)).To(Equal([]string{"m"}))
		})

		It("should round trip through the cpu state", func() {
			Expect(engine.LabelRegister(T0, 4, "a")).To(Succeed())
			process(OpMovlEnvT0, 0x20)
			process(OpMovlT0Imu, 0)
			Expect(regLabels(T0, 0, 4)).To(BeEmpty())
			process(OpMovlT0Env, 0x20)
			Expect(regLabels(T0, 0, 4)).To(Equal([]string{"a"}))
		})

		It("should add labels on top of existing ones", func() {
			store.Label(addr, 4, "a")
			Expect(engine.AddLabel(addr, 2, "b")).To(Succeed())
			Expect(store.Labels(addr, 2)).To(Equal([]string{"a", "b"}))
			Expect(store.Labels(addr+2, 2)).To(Equal([]string{"a"}))
			Expect(store.Exists(DefaultScratchBase, 2)).To(BeFalse())
		})
	})

	Context("sources and sinks", func() {
		It("should report data read from the network and sent back out", func() {
			process(OpNetworkInputLongT0, 1, 0xdeadbeef)
			process(OpStlT0A0, uint64(MemUser), 0x2000)
			process(OpMovlT0Imu, 0)
			process(OpLdlT1A0, uint64(MemUser), 0x2000)
			process(OpMovlRT1, uint64(EBX))
			process(OpMovlT0R, uint64(EBX))
			process(OpMovlT1R, uint64(EBX))
			process(OpNetworkOutputLongT1)

			alerts := collector.OfKind(AlertNetworkOutput)
			Expect(alerts).To(HaveLen(1))
			Expect(alerts[0].Labels).To(Equal([]string{NetworkLabel(1)}))
			Expect(alerts[0].Location).To(Equal("&t1"))
			Expect(alerts[0].Op).To(Equal("NETWORK_OUTPUT_LONG_T1"))
			Expect(alerts[0].OpIndex).To(BeZero())
			Expect(alerts[0].RunID).To(Equal(engine.RunID()))
		})

		It("should stay quiet when clean data is sent", func() {
			process(OpNetworkOutputLongT1)
			Expect(collector.Alerts).To(BeEmpty())
		})

		It("should label keystrokes", func() {
			process(OpKeyboardInput, 1, 0x1e, 0x61)
			Expect(regLabels(T1, 0, 1)).To(Equal([]string{"key-1-1e-61"}))
			Expect(regLabels(T1, 1, 3)).To(BeEmpty())
		})

		It("should transfer taint to and from disk", func() {
			store.Label(0x5000, 4, "secret")
			process(OpHdTransfer, 0x9000, 0x5000, 4)
			Expect(store.Labels(0x9000, 4)).To(Equal([]string{"secret"}))
			Expect(collector.OfKind(AlertDiskTransfer)).To(HaveLen(1))
		})

		It("should complete a split disk transfer", func() {
			store.Label(0x5000, 4, "secret")
			process(OpHdTransferPart1, 0x5000)
			Expect(store.Exists(0x9000, 4)).To(BeFalse())
			process(OpHdTransferPart2, 0x9000, 0x5000, 4)
			Expect(store.Labels(0x9000, 4)).To(Equal([]string{"secret"}))
		})

		It("should perform the second half of a split transfer on its own", func() {
			store.Label(0x5000, 4, "secret")
			process(OpHdTransferPart2, 0x9000, 0x5000, 4)
			Expect(store.Labels(0x9000, 4)).To(Equal([]string{"secret"}))
		})

		It("should flag a jump to a tainted target", func() {
			process(OpNetworkInputLongT0, 2, 0x401000)
			process(OpJmpT0)
			alerts := collector.OfKind(AlertTaintedJump)
			Expect(alerts).To(HaveLen(1))
			Expect(alerts[0].Location).To(Equal("&t0"))
		})

		It("should not modify the store when checking an output", func() {
			store.Label(0x3000, 4, "a")
			before := store.Extents()
			Expect(engine.CheckOutput(AlertNetworkOutput, 0x3000, 4)).To(BeTrue())
			Expect(engine.CheckOutput(AlertNetworkOutput, 0x4000, 4)).To(BeFalse())
			Expect(store.Extents()).To(Equal(before))
		})

		It("should stop reporting a range once it is cleared", func() {
			Expect(engine.LabelInput(0x3000, 4, "a")).To(Succeed())
			Expect(engine.CheckOutput(AlertNetworkOutput, 0x3000, 4)).To(BeTrue())
			store.Delete(0x3000, 4)
			Expect(engine.CheckOutput(AlertNetworkOutput, 0x3000, 4)).To(BeFalse())
			Expect(collector.OfKind(AlertNetworkOutput)).To(HaveLen(1))
		})

		It("should stop reporting a register once it is overwritten", func() {
			process(OpNetworkInputLongT0, 1, 7)
			process(OpNetworkOutputLongT0)
			process(OpMovlT0Imu, 0)
			process(OpNetworkOutputLongT0)
			Expect(collector.OfKind(AlertNetworkOutput)).To(HaveLen(1))
		})
	})

	Context("invalid records", func() {
		It("should reject an unknown id", func() {
			err := engine.ProcessOperation(&Operation{ID: OpID(0xffff)})
			Expect(err).To(MatchError(ErrUnknownOperation))
			Expect(err).To(MatchError(ErrInvalidInput))
		})

		It("should reject a record whose arguments do not match", func() {
			err := engine.ProcessOperation(&Operation{ID: OpLdlT0A0})
			Expect(err).To(MatchError(ErrArgumentShape))
		})

		It("should reject an operation without a handler", func() {
			engine = NewEngine(store, Options{Policy: FlowPolicy{}})
			err := engine.ProcessOperation(MustOperation(OpAddlT0T1))
			Expect(err).To(MatchError(ErrUnknownOperation))
		})

		It("should stop a batch at the first bad record", func() {
			ops := []*Operation{
				MustOperation(OpNetworkInputLongT0, 1, 1),
				MustOperation(OpMovlRT0, 12),
				MustOperation(OpMovlRT0, uint64(EAX)),
			}
			Expect(engine.ProcessAll(ops)).To(MatchError(ErrInvalidInput))
			Expect(engine.Processed()).To(Equal(uint64(1)))
			Expect(regLabels(EAX, 0, 4)).To(BeEmpty())
		})
	})

	Context("records reaching past the address space", func() {
		It("should leave the store untouched", func() {
			process(OpNetworkInputLongT0, 1, 1)
			store.Label(0x1000, 16, "disk")
			before := store.Extents()

			for _, op := range []*Operation{
				MustOperation(OpLdlT0A0, uint64(MemRaw), 1<<63),
				MustOperation(OpStlT0A0, uint64(MemRaw), uint64(MaxAddress)-1),
				MustOperation(OpHdTransfer, 0x1000, 0xFFFFFFFFFFFFFFF0, 16),
				MustOperation(OpHdTransfer, 0xFFFFFFFFFFFFFFF0, 0x1000, 16),
				MustOperation(OpHdTransferPart2, 0x1000, 0xFFFFFFFFFFFFFFF0, 16),
				MustOperation(OpShlT0T1CcMemwrite, 3, 1, 0, 1<<63),
				MustOperation(OpMovlEnvT0, 0xFFFFFFFFFFFFFF00),
				MustOperation(OpMovlA0Seg, 0xFFFFFFFFFFFFFF00),
			} {
				Expect(engine.ProcessOperation(op)).To(MatchError(ErrInvalidInput), op.String())
			}
			Expect(store.Extents()).To(Equal(before))
			Expect(collector.Alerts).To(BeEmpty())
		})

		It("should reject labels past the end", func() {
			Expect(engine.LabelInput(MaxAddress, 1, "x")).To(MatchError(ErrInvalidInput))
			Expect(engine.AddLabel(1<<63, 4, "x")).To(MatchError(ErrInvalidInput))
			Expect(engine.LabelInput(MaxAddress-4, 4, "x")).To(Succeed())
			Expect(engine.CheckOutput(AlertNetworkOutput, MaxAddress, 8)).To(BeFalse())
		})

		It("should refuse bases that do not fit", func() {
			opts := DefaultOptions()
			Expect(opts.Validate()).To(Succeed())
			opts.EnvBase = 1 << 63
			Expect(opts.Validate()).To(MatchError(ErrInvalidInput))
			opts = DefaultOptions()
			opts.RegisterBase = MaxAddress - 8
			Expect(opts.Validate()).To(MatchError(ErrInvalidInput))
		})
	})

	Context("with the cache disabled", func() {
		BeforeEach(func() {
			opts := DefaultOptions()
			opts.CacheEnabled = false
			opts.Alerts = collector
			engine = NewEngine(store, opts)
		})

		It("should reach the same result as with the cache", func() {
			process(OpNetworkInputLongT0, 1, 1)
			process(OpMovlRT0, uint64(ESI))
			process(OpMovlT0R, uint64(EAX))
			Expect(regLabels(ESI, 0, 4)).To(Equal([]string{NetworkLabel(1)}))
			Expect(regLabels(T0, 0, 4)).To(BeEmpty())
			Expect(engine.Cache().IsPossiblyTainted(EAX)).To(BeTrue())
		})
	})
})
