package chip8

import "fmt"

// RomTooLargeError is returned by LoadProgram when the image does not fit
// into the program region. Loading a different image afterwards is fine.
type RomTooLargeError struct {
	Size int
}

func (e *RomTooLargeError) Error() string {
	return fmt.Sprintf("rom size %d exceeds maximum program size %d", e.Size, maxProgramSize)
}

// UnknownInstructionError is a fatal fault raised when the decoder meets a
// bit pattern that matches no documented instruction form.
type UnknownInstructionError struct {
	Word uint16 // the fetched 16-bit word
	Addr uint16 // program counter at fetch time
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction %04X at address %03X", e.Word, e.Addr)
}

// StackOverflowError is a fatal fault raised by a CALL issued with a full
// call stack.
type StackOverflowError struct {
	Addr uint16
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("call stack overflow at address %03X", e.Addr)
}

// StackUnderflowError is a fatal fault raised by a RET issued with an empty
// call stack.
type StackUnderflowError struct {
	Addr uint16
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("call stack underflow at address %03X", e.Addr)
}
