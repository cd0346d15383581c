// Package sdl is the SDL2 frontend: it renders the VM's display buffer,
// maps the keyboard to the 16-key pad, plays the beeper tone and drives
// the VM at 60 frames per second.
package sdl

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/retroforge/chirp8/internal/chip8"
)

const (
	pixelSize = 20

	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA

	frameDelayMs = 1000 / 60
)

// IO is the input/output layer around a VM.
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	audio   sdl.AudioDeviceID

	vm     *chip8.VM
	logger *log.Logger
}

// New returns a new I/O instance for the SDL frontend.
func New(vm *chip8.VM, logger *log.Logger) *IO {
	return &IO{
		vm:     vm,
		logger: logger,
	}
}

// SetupWindow initialises SDL and creates the main window and the beeper
// audio device.
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		chip8.ScreenWidth*pixelSize, chip8.ScreenHeight*pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	io.surface.FillRect(nil, screenColor)
	io.window.UpdateSurface()

	if err := io.setupAudio(); err != nil {
		// No audio device is not fatal, the VM runs silently.
		io.logger.Error("Audio unavailable", log.Err(err))
	}
	return nil
}

// Destroy should be called before quitting the application.
func (io *IO) Destroy() {
	if io.audio != 0 {
		sdl.CloseAudioDevice(io.audio)
	}
	if io.window != nil {
		io.window.Destroy()
	}
	sdl.Quit()
}

// Loop runs the 60 Hz frame loop: pump input events, tick the VM for one
// frame's worth of cycles, then present the display and queue audio. It
// returns when the window is closed, or with the fault that halted the VM.
func (io *IO) Loop(cyclesPerFrame uint32) error {
	for {
		frameStart := sdl.GetTicks64()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch t := event.(type) {
			case *sdl.KeyboardEvent:
				switch t.GetType() {
				case sdl.KEYDOWN:
					io.setKeyState(t.Keysym.Scancode, true)
				case sdl.KEYUP:
					io.setKeyState(t.Keysym.Scancode, false)
				}
			case *sdl.QuitEvent:
				return nil
			}
		}

		if err := io.vm.Tick(cyclesPerFrame); err != nil {
			var unknown *chip8.UnknownInstructionError
			if errors.As(err, &unknown) {
				io.logger.Error("VM halted on unknown instruction",
					log.Hex("word", unknown.Word),
					log.Hex("address", unknown.Addr))
			}
			return err
		}

		if io.vm.DrawFlag() {
			io.draw()
			io.vm.ClearDrawFlag()
		}
		io.pumpAudio()

		elapsed := sdl.GetTicks64() - frameStart
		if elapsed < frameDelayMs {
			sdl.Delay(uint32(frameDelayMs - elapsed))
		}
	}
}

// Draws the current display buffer on screen.
func (io *IO) draw() {
	io.surface.FillRect(nil, screenColor)
	pixels := io.vm.Pixels()
	for w := int32(0); w < chip8.ScreenWidth; w++ {
		for h := int32(0); h < chip8.ScreenHeight; h++ {
			if pixels[w][h] == 1 {
				rect := &sdl.Rect{X: w * pixelSize, Y: h * pixelSize, W: pixelSize, H: pixelSize}
				io.surface.FillRect(rect, spriteColor)
			}
		}
	}
	io.window.UpdateSurface()
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func (io *IO) keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}

func (io *IO) setKeyState(keycode sdl.Scancode, pressed bool) {
	code := io.keymap(keycode)
	if code != -1 {
		io.vm.SetKeyState(uint8(code), pressed)
	}
}
