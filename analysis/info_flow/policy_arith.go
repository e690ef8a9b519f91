package info_flow

func arithPolicy() FlowPolicy {
	return FlowPolicy{
		OpAddlT0T1: selfComputeFlow(T0, T1, 4),
		OpOrlT0T1:  selfComputeFlow(T0, T1, 4),
		OpAndlT0T1: selfComputeFlow(T0, T1, 4),
		OpSublT0T1: selfComputeFlow(T0, T1, 4),
		OpXorlT0T1: selfComputeFlow(T0, T1, 4),

		OpNeglT0:     incrementFlow(T0),
		OpInclT0:     incrementFlow(T0),
		OpDeclT0:     incrementFlow(T0),
		OpNotlT0:     incrementFlow(T0),
		OpBswaplT0:   incrementFlow(T0),
		OpAddlT0Im:   incrementFlow(T0),
		OpAndlT0Ffff: incrementFlow(T0),
		OpAndlT0Im:   incrementFlow(T0),
		OpXorT01:     incrementFlow(T0),
		OpAddlT1Im:   incrementFlow(T1),

		OpAddlA0Im: incrementFlow(A0),
		OpAddlA0Al: selfComputeFlow(A0, EAX, 4),
		OpAndlA0Ffff: func(e *Engine, _ *Operation) error {
			e.deleteReg(A0, 2, 2)
			return nil
		},
		OpAddlA0Ss: incrementFlow(A0),
		OpSublA02:  incrementFlow(A0),
		OpSublA04:  incrementFlow(A0),

		OpAddlEsp4:  incrementFlow(ESP),
		OpAddlEsp2:  incrementFlow(ESP),
		OpAddwEsp4:  incrementFlow(ESP),
		OpAddwEsp2:  incrementFlow(ESP),
		OpAddlEspIm: incrementFlow(ESP),
		OpAddwEspIm: incrementFlow(ESP),
	}
}

// stringPolicy covers the index register updates of string instructions.
func stringPolicy() FlowPolicy {
	return FlowPolicy{
		OpAddlEsiT0: selfComputeFlow(ESI, T0, 4),
		OpAddwEsiT0: selfComputeFlow(ESI, T0, 2),
		OpAddlEdiT0: selfComputeFlow(EDI, T0, 4),
		OpAddwEdiT0: selfComputeFlow(EDI, T0, 2),
		OpDeclEcx:   incrementFlow(ECX),
		OpDecwEcx:   incrementFlow(ECX),
	}
}
