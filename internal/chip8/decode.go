package chip8

// opKind enumerates every documented CHIP-8 instruction form. Decoding
// classifies a word into exactly one kind before execution, so the unknown
// opcode path is an explicit decode failure instead of a switch fallthrough.
type opKind uint8

const (
	opCls opKind = iota // 00E0 - CLS
	opRet               // 00EE - RET
	opJp                // 1nnn - JP addr
	opCall              // 2nnn - CALL addr
	opSeByte            // 3xkk - SE Vx, byte
	opSneByte           // 4xkk - SNE Vx, byte
	opSeReg             // 5xy0 - SE Vx, Vy
	opLdByte            // 6xkk - LD Vx, byte
	opAddByte           // 7xkk - ADD Vx, byte
	opLdReg             // 8xy0 - LD Vx, Vy
	opOr                // 8xy1 - OR Vx, Vy
	opAnd               // 8xy2 - AND Vx, Vy
	opXor               // 8xy3 - XOR Vx, Vy
	opAddReg            // 8xy4 - ADD Vx, Vy
	opSub               // 8xy5 - SUB Vx, Vy
	opShr               // 8xy6 - SHR Vx
	opSubn              // 8xy7 - SUBN Vx, Vy
	opShl               // 8xyE - SHL Vx
	opSneReg            // 9xy0 - SNE Vx, Vy
	opLdI               // Annn - LD I, addr
	opJpV0              // Bnnn - JP V0, addr
	opRnd               // Cxkk - RND Vx, byte
	opDrw               // Dxyn - DRW Vx, Vy, nibble
	opSkp               // Ex9E - SKP Vx
	opSknp              // ExA1 - SKNP Vx
	opLdRegDelay        // Fx07 - LD Vx, DT
	opLdKey             // Fx0A - LD Vx, K
	opLdDelayReg        // Fx15 - LD DT, Vx
	opLdSoundReg        // Fx18 - LD ST, Vx
	opAddI              // Fx1E - ADD I, Vx
	opLdFont            // Fx29 - LD F, Vx
	opLdBCD             // Fx33 - LD B, Vx
	opLdMemRegs         // Fx55 - LD [I], Vx
	opLdRegsMem         // Fx65 - LD Vx, [I]
)

// instruction is one decoded instruction with its operand fields.
//
// nnn or addr - the lowest 12 bits of the instruction
// n or nibble - the lowest 4 bits of the instruction
// x           - the lower 4 bits of the high byte of the instruction
// y           - the upper 4 bits of the low byte of the instruction
// kk or byte  - the lowest 8 bits of the instruction
type instruction struct {
	kind opKind
	x    uint8
	y    uint8
	n    uint8
	kk   uint8
	nnn  uint16
	word uint16
}

// decode classifies a big-endian 16-bit word into an instruction form.
// The second return value is false for bit patterns outside the documented
// instruction set.
func decode(word uint16) (instruction, bool) {
	in := instruction{
		x:    uint8((word >> 8) & 0x000F),
		y:    uint8((word >> 4) & 0x000F),
		n:    uint8(word & 0x000F),
		kk:   uint8(word & 0x00FF),
		nnn:  word & 0x0FFF,
		word: word,
	}

	switch word & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch in.kk {
		case 0xE0:
			in.kind = opCls
		case 0xEE:
			in.kind = opRet
		default:
			return in, false
		}
	case 0x1000:
		in.kind = opJp
	case 0x2000:
		in.kind = opCall
	case 0x3000:
		in.kind = opSeByte
	case 0x4000:
		in.kind = opSneByte
	case 0x5000:
		if in.n != 0x0 {
			return in, false
		}
		in.kind = opSeReg
	case 0x6000:
		in.kind = opLdByte
	case 0x7000:
		in.kind = opAddByte
	case 0x8000:
		switch in.n {
		case 0x0:
			in.kind = opLdReg
		case 0x1:
			in.kind = opOr
		case 0x2:
			in.kind = opAnd
		case 0x3:
			in.kind = opXor
		case 0x4:
			in.kind = opAddReg
		case 0x5:
			in.kind = opSub
		case 0x6:
			in.kind = opShr
		case 0x7:
			in.kind = opSubn
		case 0xE:
			in.kind = opShl
		default:
			return in, false
		}
	case 0x9000:
		if in.n != 0x0 {
			return in, false
		}
		in.kind = opSneReg
	case 0xA000:
		in.kind = opLdI
	case 0xB000:
		in.kind = opJpV0
	case 0xC000:
		in.kind = opRnd
	case 0xD000:
		in.kind = opDrw
	case 0xE000:
		switch in.kk {
		case 0x9E:
			in.kind = opSkp
		case 0xA1:
			in.kind = opSknp
		default:
			return in, false
		}
	case 0xF000:
		switch in.kk {
		case 0x07:
			in.kind = opLdRegDelay
		case 0x0A:
			in.kind = opLdKey
		case 0x15:
			in.kind = opLdDelayReg
		case 0x18:
			in.kind = opLdSoundReg
		case 0x1E:
			in.kind = opAddI
		case 0x29:
			in.kind = opLdFont
		case 0x33:
			in.kind = opLdBCD
		case 0x55:
			in.kind = opLdMemRegs
		case 0x65:
			in.kind = opLdRegsMem
		default:
			return in, false
		}
	}
	return in, true
}
