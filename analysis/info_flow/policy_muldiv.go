package info_flow

// mulDivPolicy routes double-width results through Q1 (low half) and Q2
// (high half). Dividers use Q3 for the quotient and Q4 for the remainder.
// Every output half is computed from both operands.
func mulDivPolicy() FlowPolicy {
	return FlowPolicy{
		OpMulbAlT0:   mulByteFlow,
		OpImulbAlT0:  mulByteFlow,
		OpMulwAxT0:   mulWordFlow,
		OpImulwAxT0:  mulWordFlow,
		OpMullEaxT0:  mulLongFlow,
		OpImullEaxT0: mulLongFlow,

		// T0 = (int16)T0 * (int16)T1
		OpImulwT0T1: func(e *Engine, _ *Operation) error {
			e.deleteReg(Q1, 0, 4)
			e.computeReg(Q1, 0, 4, T0, 0, 2)
			e.computeReg(Q1, 0, 4, T1, 0, 2)
			e.copyReg(T0, 0, Q1, 0, 4)
			return nil
		},
		OpImullT0T1: deleteFlow(T0),

		OpDivbAlT0:   divByteFlow,
		OpIdivbAlT0:  divByteFlow,
		OpDivwAxT0:   divWordFlow,
		OpIdivwAxT0:  divWordFlow,
		OpDivlEaxT0:  deleteFlow(EAX, EDX),
		OpIdivlEaxT0: deleteFlow(EAX, EDX),
	}
}

// AX = AL * T0.b
func mulByteFlow(e *Engine, _ *Operation) error {
	e.deleteReg(Q1, 0, 4)
	e.computeReg(Q1, 0, 2, EAX, 0, 1)
	e.computeReg(Q1, 0, 2, T0, 0, 1)
	e.copyReg(EAX, 0, Q1, 0, 2)
	return nil
}

// DX:AX = AX * T0.w
func mulWordFlow(e *Engine, _ *Operation) error {
	e.deleteReg(Q1, 0, 4)
	e.computeReg(Q1, 0, 4, EAX, 0, 2)
	e.computeReg(Q1, 0, 4, T0, 0, 2)
	e.copyReg(EAX, 0, Q1, 0, 2)
	e.copyReg(EDX, 0, Q1, 2, 2)
	return nil
}

// EDX:EAX = EAX * T0
func mulLongFlow(e *Engine, _ *Operation) error {
	e.deleteReg(Q1, 0, 4)
	e.computeReg(Q1, 0, 4, EAX, 0, 4)
	e.computeReg(Q1, 0, 4, T0, 0, 4)
	e.deleteReg(Q2, 0, 4)
	e.computeReg(Q2, 0, 4, EAX, 0, 4)
	e.computeReg(Q2, 0, 4, T0, 0, 4)
	e.copyReg(EAX, 0, Q1, 0, 4)
	e.copyReg(EDX, 0, Q2, 0, 4)
	return nil
}

// AL = AX / T0.b, AH = AX % T0.b
func divByteFlow(e *Engine, _ *Operation) error {
	e.deleteReg(Q1, 0, 4)
	e.deleteReg(Q2, 0, 4)
	e.copyReg(Q1, 0, EAX, 0, 2)
	e.copyReg(Q2, 0, T0, 0, 1)
	quotientRemainder(e, 1, 2, 1)
	e.copyReg(EAX, 0, Q3, 0, 1)
	e.copyReg(EAX, 1, Q4, 0, 1)
	return nil
}

// AX = DX:AX / T0.w, DX = DX:AX % T0.w
func divWordFlow(e *Engine, _ *Operation) error {
	e.deleteReg(Q1, 0, 4)
	e.deleteReg(Q2, 0, 4)
	e.copyReg(Q1, 0, EAX, 0, 2)
	e.copyReg(Q1, 2, EDX, 0, 2)
	e.copyReg(Q2, 0, T0, 0, 2)
	quotientRemainder(e, 2, 4, 2)
	e.copyReg(EAX, 0, Q3, 0, 2)
	e.copyReg(EDX, 0, Q4, 0, 2)
	return nil
}

// quotientRemainder derives Q3 and Q4 from the dividend in Q1 and the
// divisor in Q2.
func quotientRemainder(e *Engine, n, dividend, divisor uint64) {
	for _, out := range []Register{Q3, Q4} {
		e.deleteReg(out, 0, 4)
		e.computeReg(out, 0, n, Q1, 0, dividend)
		e.computeReg(out, 0, n, Q2, 0, divisor)
	}
}
