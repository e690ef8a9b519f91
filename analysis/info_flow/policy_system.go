package info_flow

// systemPolicy covers control transfers, CPU control, descriptor tables, BCD
// and flag operations. Their effect on data is not modeled: every register
// the instruction may write is untainted and everything else is left alone.
func systemPolicy() FlowPolicy {
	return FlowPolicy{
		OpJmpT0:     taintedJumpFlow,
		OpMovlEipIm: noopFlow, // EIP is not tracked

		OpCmpxchg8bPart1:        noopFlow,
		OpCmpxchg8bPart2:        noopFlow,
		OpCmpxchgT0T1EaxCcCase1: noopFlow,
		OpCmpxchgT0T1EaxCcCase2: noopFlow,
		OpCmpxchgT0T1EaxCcCase3: noopFlow,

		OpRdtsc:      deleteFlow(EAX, EDX),
		OpCpuid:      deleteFlow(EAX, EBX, ECX, EDX),
		OpEnterLevel: noopFlow,
		OpSysenter:   noopFlow,
		OpSysexit:    noopFlow,
		OpRdmsr:      deleteFlow(EAX, EDX),
		OpWrmsr:      deleteFlow(EAX, EDX),

		OpAam: deleteFlow(EAX),
		OpAad: deleteFlow(EAX),
		OpAaa: deleteFlow(EAX),
		OpAas: deleteFlow(EAX),
		OpDaa: deleteFlow(EAX),
		OpDas: deleteFlow(EAX),

		OpMovlSegT0:   deleteFlow(T0),
		OpMovlSegT0Vm: deleteFlow(T0),
		OpMovlT0Seg:   deleteFlow(T0),
		OpLsl:         deleteFlow(T1),
		OpLar:         deleteFlow(T1),
		OpArpl:        deleteFlow(T0, T1),

		OpLjmpProtectedT0T1:  noopFlow,
		OpLcallRealT0T1:      noopFlow,
		OpLcallProtectedT0T1: noopFlow,
		OpIretReal:           noopFlow,
		OpIretProtected:      noopFlow,
		OpLretProtected:      noopFlow,
		OpLldtT0:             noopFlow,
		OpLtrT0:              noopFlow,
		OpMovlCrnT0:          noopFlow,
		OpMovtlT0Cr8:         deleteFlow(T0),
		OpMovlDrnT0:          noopFlow,
		OpLmswT0:             deleteFlow(T0),
		OpInvlpgA0:           noopFlow,
		OpClts:               noopFlow,

		// loads and stores against the emulator CPU state
		OpMovlT0Env:  envLoadFlow(T0),
		OpMovtlT0Env: envLoadFlow(T0),
		OpMovtlT1Env: envLoadFlow(T1),
		OpMovlEnvT0:  envStoreFlow(T0),
		OpMovlEnvT1:  envStoreFlow(T1),
		OpMovtlEnvT0: envStoreFlow(T0),
		OpMovtlEnvT1: envStoreFlow(T1),

		OpSetoT0Cc:     deleteFlow(T0),
		OpSetbT0Cc:     deleteFlow(T0),
		OpSetzT0Cc:     deleteFlow(T0),
		OpSetbeT0Cc:    deleteFlow(T0),
		OpSetsT0Cc:     deleteFlow(T0),
		OpSetpT0Cc:     deleteFlow(T0),
		OpSetlT0Cc:     deleteFlow(T0),
		OpSetleT0Cc:    deleteFlow(T0),
		OpMovT0Cc:      deleteFlow(T0),
		OpMovlT0Eflags: deleteFlow(T0),

		// flags are not tracked
		OpMovlEflagsT0:     noopFlow,
		OpMovwEflagsT0:     noopFlow,
		OpMovlEflagsT0Io:   noopFlow,
		OpMovwEflagsT0Io:   noopFlow,
		OpMovlEflagsT0Cpl0: noopFlow,
		OpMovwEflagsT0Cpl0: noopFlow,
		OpMovbEflagsT0:     noopFlow,

		OpSalc:      deleteFlow(EAX),
		OpFnstswEax: deleteFlow(EAX),

		OpTlbFill:    tlbFillFlow,
		OpSaveEnv:    saveEnvFlow,
		OpRestoreEnv: restoreEnvFlow,
		OpX86Insn:    instructionMarkFlow,
		OpSaveReg:    saveRegFlow,
	}
}

func envLoadFlow(reg Register) FlowFn {
	return func(e *Engine, op *Operation) error {
		addr, err := e.envAddr(op.Args[0].U64())
		if err != nil {
			return err
		}
		e.loadReg(reg, 4, addr, true)
		return nil
	}
}

func envStoreFlow(reg Register) FlowFn {
	return func(e *Engine, op *Operation) error {
		addr, err := e.envAddr(op.Args[0].U64())
		if err != nil {
			return err
		}
		e.storeReg(reg, 4, addr)
		return nil
	}
}

// EIP = T0
func taintedJumpFlow(e *Engine, _ *Operation) error {
	if e.cache.IsPossiblyTainted(T0) {
		e.CheckOutput(AlertTaintedJump, e.regAddr(T0, 0), RegisterWidth)
	}
	return nil
}

func tlbFillFlow(e *Engine, _ *Operation) error {
	if e.DebugAtLeast(DebugLow) {
		e.logger.Debug().Msg("tlb fill")
	}
	return nil
}

func saveEnvFlow(e *Engine, _ *Operation) error {
	if e.DebugAtLeast(DebugLow) {
		e.logger.Debug().Msg("save env outside the cpu loop")
	}
	e.envSaved = true
	return nil
}

func restoreEnvFlow(e *Engine, _ *Operation) error {
	if e.DebugAtLeast(DebugLow) {
		if !e.envSaved {
			e.logger.Warn().Msg("restore env without a preceding save")
		} else {
			e.logger.Debug().Msg("restore env outside the cpu loop")
		}
	}
	e.envSaved = false
	return nil
}

func instructionMarkFlow(e *Engine, op *Operation) error {
	if !e.DebugAtLeast(DebugLow) {
		return nil
	}
	event := e.logger.Info().Uint32("mark", op.Args[0].U32())
	if counter, ok := e.store.(ExtentCounter); ok {
		event = event.Int("extents", counter.Len())
	}
	event.Strs("possiblyTainted", e.taintedRegisterNames()).Msg("instruction mark")
	return nil
}

func saveRegFlow(e *Engine, op *Operation) error {
	if e.DebugAtLeast(DebugLow) {
		e.logger.Debug().
			Uint32("reg", op.Args[0].U32()).
			Str("addr", Address(op.Args[1].U64()).String()).
			Msg("save register")
	}
	return nil
}

func (e *Engine) taintedRegisterNames() []string {
	var names []string
	for i, flag := range e.cache.Snapshot() {
		if flag {
			names = append(names, Register(i).String())
		}
	}
	return names
}
