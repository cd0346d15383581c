package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// instructionName resolves the mnemonic for a word using the retrogolib
// CHIP-8 instruction table, matching on each candidate's mask/value pair.
func instructionName(word uint16) string {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			if op.Instruction == nil {
				return ""
			}
			return op.Instruction.Name
		}
	}
	return ""
}

// disassemble renders a decoded instruction as assembly text for debug
// tracing.
func disassemble(in instruction) string {
	name := instructionName(in.word)
	if name == "" {
		return fmt.Sprintf(".dw $%04X", in.word)
	}
	if params := formatParams(in); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operand list for one instruction form.
func formatParams(in instruction) string {
	switch in.kind {
	case opCls, opRet:
		return ""
	case opJp, opCall:
		return fmt.Sprintf("$%03X", in.nnn)
	case opSeByte, opSneByte, opLdByte, opAddByte, opRnd:
		return fmt.Sprintf("V%X, $%02X", in.x, in.kk)
	case opSeReg, opSneReg, opLdReg, opOr, opAnd, opXor, opAddReg, opSub, opSubn:
		return fmt.Sprintf("V%X, V%X", in.x, in.y)
	case opShr, opShl:
		return fmt.Sprintf("V%X", in.x)
	case opLdI:
		return fmt.Sprintf("I, $%03X", in.nnn)
	case opJpV0:
		return fmt.Sprintf("V0, $%03X", in.nnn)
	case opDrw:
		return fmt.Sprintf("V%X, V%X, $%X", in.x, in.y, in.n)
	case opSkp, opSknp:
		return fmt.Sprintf("V%X", in.x)
	case opLdRegDelay:
		return fmt.Sprintf("V%X, DT", in.x)
	case opLdKey:
		return fmt.Sprintf("V%X, K", in.x)
	case opLdDelayReg:
		return fmt.Sprintf("DT, V%X", in.x)
	case opLdSoundReg:
		return fmt.Sprintf("ST, V%X", in.x)
	case opAddI:
		return fmt.Sprintf("I, V%X", in.x)
	case opLdFont:
		return fmt.Sprintf("F, V%X", in.x)
	case opLdBCD:
		return fmt.Sprintf("B, V%X", in.x)
	case opLdMemRegs:
		return fmt.Sprintf("[I], V%X", in.x)
	case opLdRegsMem:
		return fmt.Sprintf("V%X, [I]", in.x)
	}
	return ""
}
