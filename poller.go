package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/thumbstick/ecs/system"
)

// mouseTouchID is the touch id the left mouse button reports as, so touch
// zones can be tried on a desktop.
const mouseTouchID = -1

// ebitenPoller reads gamepad, touch and mouse state from ebiten once per
// frame.
type ebitenPoller struct {
	gamepads []ebiten.GamepadID
	touches  []ebiten.TouchID
	mouse    bool
}

var _ system.Poller = (*ebitenPoller)(nil)

func (p *ebitenPoller) Poll() system.InputSnapshot {
	return system.InputSnapshot{
		Gamepad:    p.pollGamepad(),
		Touches:    p.pollTouches(nil),
		EndSession: inpututil.IsKeyJustPressed(ebiten.KeyF12),
	}
}

func (p *ebitenPoller) pollGamepad() system.GamepadState {
	p.gamepads = ebiten.AppendGamepadIDs(p.gamepads[:0])
	for _, id := range p.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		// Standard layout sticks report +Y toward the player.
		return system.GamepadState{
			Connected: true,
			Left: mgl64.Vec2{
				ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
				-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
			},
			Right: mgl64.Vec2{
				ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
				-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
			},
			LeftTap:  inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftStick),
			RightTap: inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightStick),
		}
	}
	return system.GamepadState{}
}

func (p *ebitenPoller) pollTouches(out []system.TouchEvent) []system.TouchEvent {
	p.touches = inpututil.AppendJustReleasedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		out = append(out, system.TouchEvent{ID: int(id), Phase: system.TouchEnded})
	}

	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		out = append(out, system.TouchEvent{ID: int(id), X: float64(x), Y: float64(y), Phase: system.TouchBegan})
	}

	p.touches = ebiten.AppendTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		if inpututil.TouchPressDuration(id) <= 1 {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		out = append(out, system.TouchEvent{ID: int(id), X: float64(x), Y: float64(y), Phase: system.TouchMoved})
	}

	return p.pollMouse(out)
}

func (p *ebitenPoller) pollMouse(out []system.TouchEvent) []system.TouchEvent {
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !p.mouse:
		out = append(out, system.TouchEvent{ID: mouseTouchID, X: float64(x), Y: float64(y), Phase: system.TouchBegan})
	case pressed:
		out = append(out, system.TouchEvent{ID: mouseTouchID, X: float64(x), Y: float64(y), Phase: system.TouchMoved})
	case p.mouse:
		out = append(out, system.TouchEvent{ID: mouseTouchID, Phase: system.TouchEnded})
	}
	p.mouse = pressed
	return out
}
