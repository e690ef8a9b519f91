package info_flow

// movePolicy covers register moves between the general registers and the
// temporaries, immediate loads and in-register extensions.
func movePolicy() FlowPolicy {
	return FlowPolicy{
		// A0 = REG
		OpMovlA0R: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(A0, 0, reg, 0, 4)
		}),
		// A0 += REG << s
		OpAddlA0R:   withGeneralRegister(addToA0),
		OpAddlA0RS1: withGeneralRegister(addToA0),
		OpAddlA0RS2: withGeneralRegister(addToA0),
		OpAddlA0RS3: withGeneralRegister(addToA0),

		OpMovlT0R: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(T0, 0, reg, 0, 4)
		}),
		OpMovlT1R: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(T1, 0, reg, 0, 4)
		}),
		// T = REG >> 8
		OpMovhT0R: withGeneralRegister(func(e *Engine, reg Register) {
			e.deleteReg(T0, 0, 4)
			e.computeReg(T0, 0, 4, reg, 0, 4)
		}),
		OpMovhT1R: withGeneralRegister(func(e *Engine, reg Register) {
			e.deleteReg(T1, 0, 4)
			e.computeReg(T1, 0, 4, reg, 0, 4)
		}),

		OpMovlRT0: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, T0, 0, 4)
		}),
		OpMovlRT1: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, T1, 0, 4)
		}),
		OpMovlRA0: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, A0, 0, 4)
		}),
		OpCmovwRT1T0: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, T1, 0, 2)
		}),
		OpCmovlRT1T0: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, T1, 0, 4)
		}),

		// word and byte moves leave the upper bytes of REG alone
		OpMovwRT0: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, T0, 0, 2)
		}),
		OpMovwRT1: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, T1, 0, 2)
		}),
		OpMovwRA0: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, A0, 0, 2)
		}),
		OpMovbRT0: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, T0, 0, 1)
		}),
		OpMovbRT1: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 0, T1, 0, 1)
		}),
		// REG byte 1 = T byte 0
		OpMovhRT0: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 1, T0, 0, 1)
		}),
		OpMovhRT1: withGeneralRegister(func(e *Engine, reg Register) {
			e.copyReg(reg, 1, T1, 0, 1)
		}),

		OpMovlT0T1: copyFlow(T0, T1),
		OpMovlT1A0: copyFlow(T1, A0),

		OpMovlT0Imu: deleteFlow(T0),
		OpMovlT0Im:  deleteFlow(T0),
		OpMovlT1Imu: deleteFlow(T1),
		OpMovlT1Im:  deleteFlow(T1),
		OpMovlA0Im:  deleteFlow(A0),
		OpMovlT00:   deleteFlow(T0),

		OpMovsblT0T0: incrementFlow(T0),
		OpMovswlT0T0: incrementFlow(T0),
		OpMovzblT0T0: func(e *Engine, _ *Operation) error {
			e.deleteReg(T0, 1, 3)
			return nil
		},
		OpMovzwlT0T0: func(e *Engine, _ *Operation) error {
			e.deleteReg(T0, 2, 2)
			return nil
		},
		OpMovswlEaxAx:  incrementFlow(EAX),
		OpMovsbwAxAl:   incrementFlow(EAX),
		OpMovslqEdxEax: selfComputeFlow(EDX, EAX, 4),
		OpMovswlDxAx:   selfComputeFlow(EDX, EAX, 4),
	}
}

func addToA0(e *Engine, reg Register) {
	e.selfCompute(A0, reg, 4)
}
