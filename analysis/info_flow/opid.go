package info_flow

import (
	"fmt"
	"strings"
)

// OpID identifies an emulated micro-operation.
type OpID uint16

const (
	OpInvalid OpID = iota

	// register moves
	OpMovlA0R
	OpAddlA0R
	OpAddlA0RS1
	OpAddlA0RS2
	OpAddlA0RS3
	OpMovlT0R
	OpMovlT1R
	OpMovhT0R
	OpMovhT1R
	OpMovlRT0
	OpMovlRT1
	OpMovlRA0
	OpCmovwRT1T0
	OpCmovlRT1T0
	OpMovwRT0
	OpMovwRT1
	OpMovwRA0
	OpMovbRT0
	OpMovhRT0
	OpMovbRT1
	OpMovhRT1
	OpMovlT0T1
	OpMovlT1A0
	OpMovlT0Imu
	OpMovlT0Im
	OpMovlT1Imu
	OpMovlT1Im
	OpMovlA0Im
	OpMovlT00
	OpMovsblT0T0
	OpMovzblT0T0
	OpMovswlT0T0
	OpMovzwlT0T0
	OpMovswlEaxAx
	OpMovsbwAxAl
	OpMovslqEdxEax
	OpMovswlDxAx

	// arithmetic and logic
	OpAddlT0T1
	OpOrlT0T1
	OpAndlT0T1
	OpSublT0T1
	OpXorlT0T1
	OpNeglT0
	OpInclT0
	OpDeclT0
	OpNotlT0
	OpBswaplT0
	OpAddlT0Im
	OpAndlT0Ffff
	OpAndlT0Im
	OpAddlT1Im
	OpAddlA0Im
	OpAddlA0Al
	OpAndlA0Ffff
	OpXorT01
	OpAddlA0Ss
	OpSublA02
	OpSublA04
	OpAddlEsp4
	OpAddlEsp2
	OpAddwEsp4
	OpAddwEsp2
	OpAddlEspIm
	OpAddwEspIm

	// multiply and divide
	OpMulbAlT0
	OpImulbAlT0
	OpMulwAxT0
	OpImulwAxT0
	OpMullEaxT0
	OpImullEaxT0
	OpImulwT0T1
	OpImullT0T1
	OpDivbAlT0
	OpIdivbAlT0
	OpDivwAxT0
	OpIdivwAxT0
	OpDivlEaxT0
	OpIdivlEaxT0

	// memory
	OpLdubT0A0
	OpLdsbT0A0
	OpLduwT0A0
	OpLdswT0A0
	OpLdlT0A0
	OpLdubT1A0
	OpLdsbT1A0
	OpLduwT1A0
	OpLdswT1A0
	OpLdlT1A0
	OpStbT0A0
	OpStwT0A0
	OpStlT0A0
	OpStbT1A0
	OpStwT1A0
	OpStlT1A0
	OpMovlA0Seg
	OpAddlA0Seg

	// shifts, rotates and bit operations
	OpShlT0T1
	OpShrT0T1
	OpSarT0T1
	OpRolT0T1CcMemwrite
	OpRorT0T1CcMemwrite
	OpRolT0T1Memwrite
	OpRorT0T1Memwrite
	OpRclT0T1CcMemwrite
	OpRcrT0T1CcMemwrite
	OpShlT0T1CcMemwrite
	OpShrT0T1CcMemwrite
	OpSarT0T1CcMemwrite
	OpShldT0T1ImCcMemwrite
	OpShldT0T1EcxCcMemwrite
	OpShrdT0T1ImCcMemwrite
	OpShrdT0T1EcxCcMemwrite
	OpAdcT0T1CcMemwrite
	OpSbbT0T1CcMemwrite
	OpCmpxchgT0T1EaxCcMemwrite
	OpSetbT0Sub
	OpSetzT0Sub
	OpSetbeT0Sub
	OpSetsT0Sub
	OpSetlT0Sub
	OpSetleT0Sub
	OpBtsT0T1Cc
	OpBtrT0T1Cc
	OpBtcT0T1Cc
	OpAddBitA0T1
	OpBsfT0Cc
	OpBsrT0Cc
	OpMovlT0Dshift
	OpInT0T1
	OpInDxT0

	// string instruction index updates
	OpAddlEsiT0
	OpAddwEsiT0
	OpAddlEdiT0
	OpAddwEdiT0
	OpDeclEcx
	OpDecwEcx

	// control, system and other unmodeled operations
	OpJmpT0
	OpMovlEipIm
	OpCmpxchg8bPart1
	OpCmpxchg8bPart2
	OpCmpxchgT0T1EaxCcCase1
	OpCmpxchgT0T1EaxCcCase2
	OpCmpxchgT0T1EaxCcCase3
	OpRdtsc
	OpCpuid
	OpEnterLevel
	OpSysenter
	OpSysexit
	OpRdmsr
	OpWrmsr
	OpAam
	OpAad
	OpAaa
	OpAas
	OpDaa
	OpDas
	OpMovlSegT0
	OpMovlSegT0Vm
	OpMovlT0Seg
	OpLsl
	OpLar
	OpArpl
	OpLjmpProtectedT0T1
	OpLcallRealT0T1
	OpLcallProtectedT0T1
	OpIretReal
	OpIretProtected
	OpLretProtected
	OpLldtT0
	OpLtrT0
	OpMovlCrnT0
	OpMovtlT0Cr8
	OpMovlDrnT0
	OpLmswT0
	OpInvlpgA0
	OpMovlT0Env
	OpMovlEnvT0
	OpMovlEnvT1
	OpMovtlT0Env
	OpMovtlEnvT0
	OpMovtlT1Env
	OpMovtlEnvT1
	OpClts
	OpSetoT0Cc
	OpSetbT0Cc
	OpSetzT0Cc
	OpSetbeT0Cc
	OpSetsT0Cc
	OpSetpT0Cc
	OpSetlT0Cc
	OpSetleT0Cc
	OpMovT0Cc
	OpMovlEflagsT0
	OpMovwEflagsT0
	OpMovlEflagsT0Io
	OpMovwEflagsT0Io
	OpMovlEflagsT0Cpl0
	OpMovwEflagsT0Cpl0
	OpMovbEflagsT0
	OpMovlT0Eflags
	OpSalc
	OpFnstswEax
	OpTlbFill
	OpSaveEnv
	OpRestoreEnv
	OpX86Insn
	OpSaveReg

	// input sources and output sinks
	OpKeyboardInput
	OpNewKeyboardLabel
	OpNewNetworkLabel
	OpNetworkInputByteT0
	OpNetworkInputWordT0
	OpNetworkInputLongT0
	OpNetworkInputByteT1
	OpNetworkInputWordT1
	OpNetworkInputLongT1
	OpNetworkOutputByteT0
	OpNetworkOutputWordT0
	OpNetworkOutputLongT0
	OpNetworkOutputByteT1
	OpNetworkOutputWordT1
	OpNetworkOutputLongT1
	OpHdTransfer
	OpHdTransferPart1
	OpHdTransferPart2

	numOps
)

type opInfo struct {
	name  string
	shape []ArgWidth
}

var opInfos = [numOps]opInfo{
	OpMovlA0R: {"MOVL_A0_R", argsReg},
	OpAddlA0R: {"ADDL_A0_R", argsReg},
	OpAddlA0RS1: {"ADDL_A0_R_S1", argsReg},
	OpAddlA0RS2: {"ADDL_A0_R_S2", argsReg},
	OpAddlA0RS3: {"ADDL_A0_R_S3", argsReg},
	OpMovlT0R: {"MOVL_T0_R", argsReg},
	OpMovlT1R: {"MOVL_T1_R", argsReg},
	OpMovhT0R: {"MOVH_T0_R", argsReg},
	OpMovhT1R: {"MOVH_T1_R", argsReg},
	OpMovlRT0: {"MOVL_R_T0", argsReg},
	OpMovlRT1: {"MOVL_R_T1", argsReg},
	OpMovlRA0: {"MOVL_R_A0", argsReg},
	OpCmovwRT1T0: {"CMOVW_R_T1_T0", argsReg},
	OpCmovlRT1T0: {"CMOVL_R_T1_T0", argsReg},
	OpMovwRT0: {"MOVW_R_T0", argsReg},
	OpMovwRT1: {"MOVW_R_T1", argsReg},
	OpMovwRA0: {"MOVW_R_A0", argsReg},
	OpMovbRT0: {"MOVB_R_T0", argsReg},
	OpMovhRT0: {"MOVH_R_T0", argsReg},
	OpMovbRT1: {"MOVB_R_T1", argsReg},
	OpMovhRT1: {"MOVH_R_T1", argsReg},
	OpMovlT0T1: {"MOVL_T0_T1", argsNone},
	OpMovlT1A0: {"MOVL_T1_A0", argsNone},
	OpMovlT0Imu: {"MOVL_T0_IMU", argsImm},
	OpMovlT0Im: {"MOVL_T0_IM", argsImm},
	OpMovlT1Imu: {"MOVL_T1_IMU", argsImm},
	OpMovlT1Im: {"MOVL_T1_IM", argsImm},
	OpMovlA0Im: {"MOVL_A0_IM", argsImm},
	OpMovlT00: {"MOVL_T0_0", argsNone},
	OpMovsblT0T0: {"MOVSBL_T0_T0", argsNone},
	OpMovzblT0T0: {"MOVZBL_T0_T0", argsNone},
	OpMovswlT0T0: {"MOVSWL_T0_T0", argsNone},
	OpMovzwlT0T0: {"MOVZWL_T0_T0", argsNone},
	OpMovswlEaxAx: {"MOVSWL_EAX_AX", argsNone},
	OpMovsbwAxAl: {"MOVSBW_AX_AL", argsNone},
	OpMovslqEdxEax: {"MOVSLQ_EDX_EAX", argsNone},
	OpMovswlDxAx: {"MOVSWL_DX_AX", argsNone},
	OpAddlT0T1: {"ADDL_T0_T1", argsNone},
	OpOrlT0T1: {"ORL_T0_T1", argsNone},
	OpAndlT0T1: {"ANDL_T0_T1", argsNone},
	OpSublT0T1: {"SUBL_T0_T1", argsNone},
	OpXorlT0T1: {"XORL_T0_T1", argsNone},
	OpNeglT0: {"NEGL_T0", argsNone},
	OpInclT0: {"INCL_T0", argsNone},
	OpDeclT0: {"DECL_T0", argsNone},
	OpNotlT0: {"NOTL_T0", argsNone},
	OpBswaplT0: {"BSWAPL_T0", argsNone},
	OpAddlT0Im: {"ADDL_T0_IM", argsImm},
	OpAndlT0Ffff: {"ANDL_T0_FFFF", argsNone},
	OpAndlT0Im: {"ANDL_T0_IM", argsImm},
	OpAddlT1Im: {"ADDL_T1_IM", argsImm},
	OpAddlA0Im: {"ADDL_A0_IM", argsImm},
	OpAddlA0Al: {"ADDL_A0_AL", argsNone},
	OpAndlA0Ffff: {"ANDL_A0_FFFF", argsNone},
	OpXorT01: {"XOR_T0_1", argsNone},
	OpAddlA0Ss: {"ADDL_A0_SS", argsNone},
	OpSublA02: {"SUBL_A0_2", argsNone},
	OpSublA04: {"SUBL_A0_4", argsNone},
	OpAddlEsp4: {"ADDL_ESP_4", argsNone},
	OpAddlEsp2: {"ADDL_ESP_2", argsNone},
	OpAddwEsp4: {"ADDW_ESP_4", argsNone},
	OpAddwEsp2: {"ADDW_ESP_2", argsNone},
	OpAddlEspIm: {"ADDL_ESP_IM", argsImm},
	OpAddwEspIm: {"ADDW_ESP_IM", argsImm},
	OpMulbAlT0: {"MULB_AL_T0", argsNone},
	OpImulbAlT0: {"IMULB_AL_T0", argsNone},
	OpMulwAxT0: {"MULW_AX_T0", argsNone},
	OpImulwAxT0: {"IMULW_AX_T0", argsNone},
	OpMullEaxT0: {"MULL_EAX_T0", argsNone},
	OpImullEaxT0: {"IMULL_EAX_T0", argsNone},
	OpImulwT0T1: {"IMULW_T0_T1", argsNone},
	OpImullT0T1: {"IMULL_T0_T1", argsNone},
	OpDivbAlT0: {"DIVB_AL_T0", argsNone},
	OpIdivbAlT0: {"IDIVB_AL_T0", argsNone},
	OpDivwAxT0: {"DIVW_AX_T0", argsNone},
	OpIdivwAxT0: {"IDIVW_AX_T0", argsNone},
	OpDivlEaxT0: {"DIVL_EAX_T0", argsNone},
	OpIdivlEaxT0: {"IDIVL_EAX_T0", argsNone},
	OpLdubT0A0: {"LDUB_T0_A0", argsMem},
	OpLdsbT0A0: {"LDSB_T0_A0", argsMem},
	OpLduwT0A0: {"LDUW_T0_A0", argsMem},
	OpLdswT0A0: {"LDSW_T0_A0", argsMem},
	OpLdlT0A0: {"LDL_T0_A0", argsMem},
	OpLdubT1A0: {"LDUB_T1_A0", argsMem},
	OpLdsbT1A0: {"LDSB_T1_A0", argsMem},
	OpLduwT1A0: {"LDUW_T1_A0", argsMem},
	OpLdswT1A0: {"LDSW_T1_A0", argsMem},
	OpLdlT1A0: {"LDL_T1_A0", argsMem},
	OpStbT0A0: {"STB_T0_A0", argsMem},
	OpStwT0A0: {"STW_T0_A0", argsMem},
	OpStlT0A0: {"STL_T0_A0", argsMem},
	OpStbT1A0: {"STB_T1_A0", argsMem},
	OpStwT1A0: {"STW_T1_A0", argsMem},
	OpStlT1A0: {"STL_T1_A0", argsMem},
	OpMovlA0Seg: {"MOVL_A0_SEG", argsEnv},
	OpAddlA0Seg: {"ADDL_A0_SEG", argsEnv},
	OpShlT0T1: {"SHL_T0_T1", argsShift},
	OpShrT0T1: {"SHR_T0_T1", argsShift},
	OpSarT0T1: {"SAR_T0_T1", argsShift},
	OpRolT0T1CcMemwrite: {"ROL_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpRorT0T1CcMemwrite: {"ROR_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpRolT0T1Memwrite: {"ROL_T0_T1_MEMWRITE", argsShiftMem},
	OpRorT0T1Memwrite: {"ROR_T0_T1_MEMWRITE", argsShiftMem},
	OpRclT0T1CcMemwrite: {"RCL_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpRcrT0T1CcMemwrite: {"RCR_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpShlT0T1CcMemwrite: {"SHL_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpShrT0T1CcMemwrite: {"SHR_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpSarT0T1CcMemwrite: {"SAR_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpShldT0T1ImCcMemwrite: {"SHLD_T0_T1_IM_CC_MEMWRITE", argsShiftMem},
	OpShldT0T1EcxCcMemwrite: {"SHLD_T0_T1_ECX_CC_MEMWRITE", argsShiftMem},
	OpShrdT0T1ImCcMemwrite: {"SHRD_T0_T1_IM_CC_MEMWRITE", argsShiftMem},
	OpShrdT0T1EcxCcMemwrite: {"SHRD_T0_T1_ECX_CC_MEMWRITE", argsShiftMem},
	OpAdcT0T1CcMemwrite: {"ADC_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpSbbT0T1CcMemwrite: {"SBB_T0_T1_CC_MEMWRITE", argsShiftMem},
	OpCmpxchgT0T1EaxCcMemwrite: {"CMPXCHG_T0_T1_EAX_CC_MEMWRITE", argsShiftMem},
	OpSetbT0Sub: {"SETB_T0_SUB", argsShift},
	OpSetzT0Sub: {"SETZ_T0_SUB", argsShift},
	OpSetbeT0Sub: {"SETBE_T0_SUB", argsShift},
	OpSetsT0Sub: {"SETS_T0_SUB", argsShift},
	OpSetlT0Sub: {"SETL_T0_SUB", argsShift},
	OpSetleT0Sub: {"SETLE_T0_SUB", argsShift},
	OpBtsT0T1Cc: {"BTS_T0_T1_CC", argsShift},
	OpBtrT0T1Cc: {"BTR_T0_T1_CC", argsShift},
	OpBtcT0T1Cc: {"BTC_T0_T1_CC", argsShift},
	OpAddBitA0T1: {"ADD_BIT_A0_T1", argsShift},
	OpBsfT0Cc: {"BSF_T0_CC", argsShift},
	OpBsrT0Cc: {"BSR_T0_CC", argsShift},
	OpMovlT0Dshift: {"MOVL_T0_DSHIFT", argsShift},
	OpInT0T1: {"IN_T0_T1", argsShift},
	OpInDxT0: {"IN_DX_T0", argsShift},
	OpAddlEsiT0: {"ADDL_ESI_T0", argsNone},
	OpAddwEsiT0: {"ADDW_ESI_T0", argsNone},
	OpAddlEdiT0: {"ADDL_EDI_T0", argsNone},
	OpAddwEdiT0: {"ADDW_EDI_T0", argsNone},
	OpDeclEcx: {"DECL_ECX", argsNone},
	OpDecwEcx: {"DECW_ECX", argsNone},
	OpJmpT0: {"JMP_T0", argsNone},
	OpMovlEipIm: {"MOVL_EIP_IM", argsImm},
	OpCmpxchg8bPart1: {"CMPXCHG8B_PART1", argsNone},
	OpCmpxchg8bPart2: {"CMPXCHG8B_PART2", argsNone},
	OpCmpxchgT0T1EaxCcCase1: {"CMPXCHG_T0_T1_EAX_CC_CASE1", argsNone},
	OpCmpxchgT0T1EaxCcCase2: {"CMPXCHG_T0_T1_EAX_CC_CASE2", argsNone},
	OpCmpxchgT0T1EaxCcCase3: {"CMPXCHG_T0_T1_EAX_CC_CASE3", argsNone},
	OpRdtsc: {"RDTSC", argsNone},
	OpCpuid: {"CPUID", argsNone},
	OpEnterLevel: {"ENTER_LEVEL", argsImm2},
	OpSysenter: {"SYSENTER", argsNone},
	OpSysexit: {"SYSEXIT", argsNone},
	OpRdmsr: {"RDMSR", argsNone},
	OpWrmsr: {"WRMSR", argsNone},
	OpAam: {"AAM", argsImm},
	OpAad: {"AAD", argsImm},
	OpAaa: {"AAA", argsNone},
	OpAas: {"AAS", argsNone},
	OpDaa: {"DAA", argsNone},
	OpDas: {"DAS", argsNone},
	OpMovlSegT0: {"MOVL_SEG_T0", argsImm},
	OpMovlSegT0Vm: {"MOVL_SEG_T0_VM", argsImm},
	OpMovlT0Seg: {"MOVL_T0_SEG", argsImm},
	OpLsl: {"LSL", argsNone},
	OpLar: {"LAR", argsNone},
	OpArpl: {"ARPL", argsNone},
	OpLjmpProtectedT0T1: {"LJMP_PROTECTED_T0_T1", argsNone},
	OpLcallRealT0T1: {"LCALL_REAL_T0_T1", argsNone},
	OpLcallProtectedT0T1: {"LCALL_PROTECTED_T0_T1", argsNone},
	OpIretReal: {"IRET_REAL", argsNone},
	OpIretProtected: {"IRET_PROTECTED", argsNone},
	OpLretProtected: {"LRET_PROTECTED", argsNone},
	OpLldtT0: {"LLDT_T0", argsNone},
	OpLtrT0: {"LTR_T0", argsNone},
	OpMovlCrnT0: {"MOVL_CRN_T0", argsImm},
	OpMovtlT0Cr8: {"MOVTL_T0_CR8", argsNone},
	OpMovlDrnT0: {"MOVL_DRN_T0", argsImm},
	OpLmswT0: {"LMSW_T0", argsNone},
	OpInvlpgA0: {"INVLPG_A0", argsNone},
	OpMovlT0Env: {"MOVL_T0_ENV", argsEnv},
	OpMovlEnvT0: {"MOVL_ENV_T0", argsEnv},
	OpMovlEnvT1: {"MOVL_ENV_T1", argsEnv},
	OpMovtlT0Env: {"MOVTL_T0_ENV", argsEnv},
	OpMovtlEnvT0: {"MOVTL_ENV_T0", argsEnv},
	OpMovtlT1Env: {"MOVTL_T1_ENV", argsEnv},
	OpMovtlEnvT1: {"MOVTL_ENV_T1", argsEnv},
	OpClts: {"CLTS", argsNone},
	OpSetoT0Cc: {"SETO_T0_CC", argsNone},
	OpSetbT0Cc: {"SETB_T0_CC", argsNone},
	OpSetzT0Cc: {"SETZ_T0_CC", argsNone},
	OpSetbeT0Cc: {"SETBE_T0_CC", argsNone},
	OpSetsT0Cc: {"SETS_T0_CC", argsNone},
	OpSetpT0Cc: {"SETP_T0_CC", argsNone},
	OpSetlT0Cc: {"SETL_T0_CC", argsNone},
	OpSetleT0Cc: {"SETLE_T0_CC", argsNone},
	OpMovT0Cc: {"MOV_T0_CC", argsNone},
	OpMovlEflagsT0: {"MOVL_EFLAGS_T0", argsNone},
	OpMovwEflagsT0: {"MOVW_EFLAGS_T0", argsNone},
	OpMovlEflagsT0Io: {"MOVL_EFLAGS_T0_IO", argsNone},
	OpMovwEflagsT0Io: {"MOVW_EFLAGS_T0_IO", argsNone},
	OpMovlEflagsT0Cpl0: {"MOVL_EFLAGS_T0_CPL0", argsNone},
	OpMovwEflagsT0Cpl0: {"MOVW_EFLAGS_T0_CPL0", argsNone},
	OpMovbEflagsT0: {"MOVB_EFLAGS_T0", argsNone},
	OpMovlT0Eflags: {"MOVL_T0_EFLAGS", argsNone},
	OpSalc: {"SALC", argsNone},
	OpFnstswEax: {"FNSTSW_EAX", argsNone},
	OpTlbFill: {"TLB_FILL", argsNone},
	OpSaveEnv: {"SAVE_ENV", argsNone},
	OpRestoreEnv: {"RESTORE_ENV", argsNone},
	OpX86Insn: {"X86_INSN", argsImm},
	OpSaveReg: {"SAVE_REG", argsSaveReg},
	OpKeyboardInput: {"KEYBOARD_INPUT", argsKeyboard},
	OpNewKeyboardLabel: {"NEW_KEYBOARD_LABEL", argsChannel},
	OpNewNetworkLabel: {"NEW_NETWORK_LABEL", argsChannel},
	OpNetworkInputByteT0: {"NETWORK_INPUT_BYTE_T0", argsNetIn},
	OpNetworkInputWordT0: {"NETWORK_INPUT_WORD_T0", argsNetIn},
	OpNetworkInputLongT0: {"NETWORK_INPUT_LONG_T0", argsNetIn},
	OpNetworkInputByteT1: {"NETWORK_INPUT_BYTE_T1", argsNetIn},
	OpNetworkInputWordT1: {"NETWORK_INPUT_WORD_T1", argsNetIn},
	OpNetworkInputLongT1: {"NETWORK_INPUT_LONG_T1", argsNetIn},
	OpNetworkOutputByteT0: {"NETWORK_OUTPUT_BYTE_T0", argsNone},
	OpNetworkOutputWordT0: {"NETWORK_OUTPUT_WORD_T0", argsNone},
	OpNetworkOutputLongT0: {"NETWORK_OUTPUT_LONG_T0", argsNone},
	OpNetworkOutputByteT1: {"NETWORK_OUTPUT_BYTE_T1", argsNone},
	OpNetworkOutputWordT1: {"NETWORK_OUTPUT_WORD_T1", argsNone},
	OpNetworkOutputLongT1: {"NETWORK_OUTPUT_LONG_T1", argsNone},
	OpHdTransfer: {"HD_TRANSFER", argsHD},
	OpHdTransferPart1: {"HD_TRANSFER_PART1", argsHDPart1},
	OpHdTransferPart2: {"HD_TRANSFER_PART2", argsHD},
}

var opsByName = func() map[string]OpID {
	m := make(map[string]OpID, numOps)
	for id := OpInvalid + 1; id < numOps; id++ {
		m[opInfos[id].name] = id
	}
	return m
}()

func (id OpID) Known() bool {
	return id > OpInvalid && id < numOps
}

func (id OpID) String() string {
	if !id.Known() {
		return fmt.Sprintf("OP(%d)", uint16(id))
	}
	return opInfos[id].name
}

// Shape returns the declared argument widths of id.
func (id OpID) Shape() ([]ArgWidth, bool) {
	if !id.Known() {
		return nil, false
	}
	return opInfos[id].shape, true
}

// emulator log names carry the template they were generated from
var opNamePrefixes = []string{"IFLO_", "OPREG_TEMPL_", "OPS_TEMPLATE_", "OPS_MEM_", "SHIFT_"}

// ParseOpID accepts both the bare names listed by AllOps and the prefixed
// names used in emulator logs, e.g. IFLO_OPS_MEM_LDUB_T0_A0.
func ParseOpID(name string) (OpID, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, prefix := range opNamePrefixes {
		key = strings.TrimPrefix(key, prefix)
	}
	if id, ok := opsByName[key]; ok {
		return id, nil
	}
	return OpInvalid, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// AllOps lists every known operation in enumeration order.
func AllOps() []OpID {
	ops := make([]OpID, 0, numOps-1)
	for id := OpInvalid + 1; id < numOps; id++ {
		ops = append(ops, id)
	}
	return ops
}
