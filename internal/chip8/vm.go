// Package chip8 implements a CHIP-8 virtual machine following the technical
// reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
//
// The VM is driven cooperatively by an external frame loop calling Tick once
// per frame. Rendering, input and audio live outside this package; the VM
// exposes snapshot accessors for them.
package chip8

import (
	"math/rand"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 VM constants
const (
	totalMemory    = 0x1000
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr
	addrMask       = totalMemory - 1
	stackDepth     = 16
	fontGlyphSize  = 5

	ScreenWidth  = 64
	ScreenHeight = 32

	NumKeys = 16
)

// VM is an emulated CHIP-8 virtual machine. Every instance owns its complete
// state; multiple instances run independently.
type VM struct {
	regV   [16]uint8          // 16 general purpose 8-bit registers
	regI   uint16             // 16-bit register that is generally used to store memory addresses
	pc     uint16             // Program counter
	sp     uint8              // Stack pointer
	stack  [stackDepth]uint16 // A stack of 16 16-bit return addresses
	memory [totalMemory]uint8 // 4 KB global memory

	delayTimer uint8
	soundTimer uint8

	// 64 px x 32 px monochrome display
	pixels   [ScreenWidth][ScreenHeight]uint8
	drawFlag bool

	// Hexadecimal keypad state, written by the input collaborator
	// between frames.
	keys [NumKeys]bool

	// Fx0A suspension: while waiting is set no instruction executes.
	// waitSeen holds the key state observed since the wait began so that
	// only a transition to pressed satisfies the wait.
	waiting  bool
	waitReg  uint8
	waitSeen [NumKeys]bool

	randByte func() uint8

	// A fatal fault is sticky: every Tick after it returns it unchanged.
	fault error

	logger *log.Logger
}

// New creates a new instance of an emulated CHIP-8 VM with the fontset
// loaded and all other state zeroed.
func New() *VM {
	vm := &VM{
		pc:       pcStartAddr,
		randByte: func() uint8 { return uint8(rand.Intn(256)) },
	}
	copy(vm.memory[:], fontset)
	return vm
}

// SetLogger enables debug tracing of executed instructions. A nil logger
// disables tracing.
func (vm *VM) SetLogger(logger *log.Logger) {
	vm.logger = logger
}

// SetRandomSource replaces the byte source used by the RND instruction.
// Tests use this to make RND deterministic.
func (vm *VM) SetRandomSource(src func() uint8) {
	if src != nil {
		vm.randByte = src
	}
}

// LoadProgram copies a ROM image into memory at the program start address.
func (vm *VM) LoadProgram(rom []byte) error {
	if len(rom) > maxProgramSize {
		return &RomTooLargeError{Size: len(rom)}
	}
	copy(vm.memory[pcStartAddr:], rom)
	return nil
}

// Tick runs one frame: cycles instruction dispatches followed by exactly one
// decrement of each timer. Once a fatal fault occurred every later Tick
// returns it without executing anything.
func (vm *VM) Tick(cycles uint32) error {
	if vm.fault != nil {
		return vm.fault
	}
	for i := uint32(0); i < cycles; i++ {
		if err := vm.step(); err != nil {
			vm.fault = err
			return err
		}
	}
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
	return nil
}

// step fetches, decodes and executes a single instruction, unless the VM is
// suspended on a key wait.
func (vm *VM) step() error {
	if vm.waiting {
		vm.pollWaitKey()
		return nil
	}

	addr := vm.pc
	word := uint16(vm.memory[addr])<<8 | uint16(vm.memory[(addr+1)&addrMask])
	in, ok := decode(word)
	if !ok {
		return &UnknownInstructionError{Word: word, Addr: addr}
	}
	vm.pc = (vm.pc + 2) & addrMask

	vm.trace(addr, in)
	return vm.exec(in, addr)
}

// pollWaitKey resolves a pending Fx0A. Only a key seen unpressed since the
// wait began satisfies it; keys already held when the wait started do not.
func (vm *VM) pollWaitKey() {
	for k := uint8(0); k < NumKeys; k++ {
		if !vm.keys[k] {
			vm.waitSeen[k] = false
			continue
		}
		if !vm.waitSeen[k] {
			vm.regV[vm.waitReg] = k
			vm.waiting = false
			return
		}
	}
}

// SetKeyState records a key press or release. Keys outside the 16-key pad
// are ignored.
func (vm *VM) SetKeyState(key uint8, pressed bool) {
	if key >= NumKeys {
		return
	}
	vm.keys[key] = pressed
}

// Pixels returns a snapshot of the display buffer, valid between Tick calls.
func (vm *VM) Pixels() [ScreenWidth][ScreenHeight]uint8 {
	return vm.pixels
}

// DrawFlag reports whether the display buffer changed since the flag was
// last cleared.
func (vm *VM) DrawFlag() bool {
	return vm.drawFlag
}

// ClearDrawFlag is called by the renderer once it presented the buffer.
func (vm *VM) ClearDrawFlag() {
	vm.drawFlag = false
}

// DelayTimer returns the current delay timer value.
func (vm *VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the current sound timer value. Nonzero means the audio
// collaborator should play a tone.
func (vm *VM) SoundTimer() uint8 {
	return vm.soundTimer
}

func (vm *VM) trace(addr uint16, in instruction) {
	if vm.logger == nil {
		return
	}
	vm.logger.Debug("executing",
		log.Hex("address", addr),
		log.String("instruction", disassemble(in)))
}
