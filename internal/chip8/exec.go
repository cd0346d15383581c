package chip8

// exec applies the effect of one decoded instruction. The program counter
// already points at the next instruction; jumps and calls overwrite it,
// skips advance it by another 2. addr is the address the instruction was
// fetched from, used for stack fault reporting.
//
// Conventions for the historically ambiguous forms (see DESIGN.md):
// 8xy6/8xyE shift Vx in place and ignore Vy, Bnnn always offsets with V0,
// and Fx55/Fx65 leave I unchanged.
func (vm *VM) exec(in instruction, addr uint16) error {
	x, y := in.x, in.y

	switch in.kind {
	case opCls:
		vm.pixels = [ScreenWidth][ScreenHeight]uint8{}
		vm.drawFlag = true
	case opRet:
		if vm.sp == 0 {
			return &StackUnderflowError{Addr: addr}
		}
		vm.sp--
		vm.pc = vm.stack[vm.sp]
	case opJp:
		vm.pc = in.nnn
	case opCall:
		if vm.sp >= stackDepth {
			return &StackOverflowError{Addr: addr}
		}
		vm.stack[vm.sp] = vm.pc
		vm.sp++
		vm.pc = in.nnn
	case opSeByte:
		if vm.regV[x] == in.kk {
			vm.skip()
		}
	case opSneByte:
		if vm.regV[x] != in.kk {
			vm.skip()
		}
	case opSeReg:
		if vm.regV[x] == vm.regV[y] {
			vm.skip()
		}
	case opLdByte:
		vm.regV[x] = in.kk
	case opAddByte:
		vm.regV[x] += in.kk
	case opLdReg:
		vm.regV[x] = vm.regV[y]
	case opOr:
		vm.regV[x] |= vm.regV[y]
	case opAnd:
		vm.regV[x] &= vm.regV[y]
	case opXor:
		vm.regV[x] ^= vm.regV[y]
	case opAddReg:
		sum := uint16(vm.regV[x]) + uint16(vm.regV[y])
		vm.regV[x] = uint8(sum)
		vm.setFlag(sum > 255)
	case opSub:
		borrow := vm.regV[x] < vm.regV[y]
		vm.regV[x] -= vm.regV[y]
		vm.setFlag(!borrow)
	case opShr:
		bit := vm.regV[x] & 0x01
		vm.regV[x] >>= 1
		vm.setFlag(bit == 1)
	case opSubn:
		borrow := vm.regV[y] < vm.regV[x]
		vm.regV[x] = vm.regV[y] - vm.regV[x]
		vm.setFlag(!borrow)
	case opShl:
		bit := vm.regV[x] & 0x80
		vm.regV[x] <<= 1
		vm.setFlag(bit == 0x80)
	case opSneReg:
		if vm.regV[x] != vm.regV[y] {
			vm.skip()
		}
	case opLdI:
		vm.regI = in.nnn
	case opJpV0:
		vm.pc = (in.nnn + uint16(vm.regV[0])) & addrMask
	case opRnd:
		vm.regV[x] = vm.randByte() & in.kk
	case opDrw:
		vm.drawSprite(vm.regV[x], vm.regV[y], in.n)
	case opSkp:
		if vm.keys[vm.regV[x]&0x0F] {
			vm.skip()
		}
	case opSknp:
		if !vm.keys[vm.regV[x]&0x0F] {
			vm.skip()
		}
	case opLdRegDelay:
		vm.regV[x] = vm.delayTimer
	case opLdKey:
		vm.waiting = true
		vm.waitReg = x
		vm.waitSeen = vm.keys
	case opLdDelayReg:
		vm.delayTimer = vm.regV[x]
	case opLdSoundReg:
		vm.soundTimer = vm.regV[x]
	case opAddI:
		vm.regI = (vm.regI + uint16(vm.regV[x])) & addrMask
	case opLdFont:
		vm.regI = uint16(vm.regV[x]&0x0F) * fontGlyphSize
	case opLdBCD:
		vm.memory[vm.regI&addrMask] = vm.regV[x] / 100 % 10
		vm.memory[(vm.regI+1)&addrMask] = vm.regV[x] / 10 % 10
		vm.memory[(vm.regI+2)&addrMask] = vm.regV[x] % 10
	case opLdMemRegs:
		for i := uint16(0); i <= uint16(x); i++ {
			vm.memory[(vm.regI+i)&addrMask] = vm.regV[i]
		}
	case opLdRegsMem:
		for i := uint16(0); i <= uint16(x); i++ {
			vm.regV[i] = vm.memory[(vm.regI+i)&addrMask]
		}
	}
	return nil
}

// skip advances the program counter past the next instruction.
func (vm *VM) skip() {
	vm.pc = (vm.pc + 2) & addrMask
}

// setFlag writes the VF carry/borrow/collision flag.
func (vm *VM) setFlag(set bool) {
	if set {
		vm.regV[0xF] = 1
	} else {
		vm.regV[0xF] = 0
	}
}

// drawSprite XOR-blits an n-row sprite read from memory at I onto the
// display at (x, y). Coordinates wrap around both screen edges. VF is set
// to 1 if any lit pixel was cleared, else 0.
func (vm *VM) drawSprite(x, y, n uint8) {
	vm.regV[0xF] = 0
	for row := uint8(0); row < n; row++ {
		spriteByte := vm.memory[(vm.regI+uint16(row))&addrMask]
		for bit := uint8(0); bit < 8; bit++ {
			px := &vm.pixels[(x+bit)%ScreenWidth][(y+row)%ScreenHeight]
			on := (spriteByte >> (7 - bit)) & 0x1
			if on == 1 && *px == 1 {
				vm.regV[0xF] = 1
			}
			*px ^= on
		}
	}
	vm.drawFlag = true
}
