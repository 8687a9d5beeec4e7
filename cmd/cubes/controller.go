package main

import (
	"cube-renderer/config"
	"cube-renderer/core"
	"cube-renderer/scene"
)

// input is the part of core.Window the controller reads.
type input interface {
	IsKeyPressed(key int) bool
	IsMouseButtonPressed(button int) bool
	GetCursorPos() (float64, float64)
	CaptureCursor(capture bool)
}

// CameraController turns WASD, right-mouse drag and scroll into camera deltas.
type CameraController struct {
	moveSpeed  float32 // units per second
	lookSpeed  float32 // degrees per pixel
	zoomSpeed  float32 // degrees per scroll step
	lastMouseX float64
	lastMouseY float64
	firstMouse bool
	looking    bool
	scroll     float64
}

func NewCameraController(cfg config.Camera) *CameraController {
	return &CameraController{
		moveSpeed:  cfg.MoveSpeed,
		lookSpeed:  cfg.MouseSensitivity,
		zoomSpeed:  cfg.ZoomSpeed,
		firstMouse: true,
	}
}

// OnScroll accumulates wheel steps until the next Update.
func (cc *CameraController) OnScroll(_, yoff float64) {
	cc.scroll += yoff
}

func (cc *CameraController) Update(in input, camera *scene.Camera, deltaTime float32) {
	// Cap deltaTime to avoid huge jumps after hitches
	if deltaTime > 0.05 {
		deltaTime = 0.05
	}

	// Mouse look (right mouse drag), cursor hidden while dragging
	looking := in.IsMouseButtonPressed(core.MouseButtonRight)
	if looking != cc.looking {
		in.CaptureCursor(looking)
		cc.looking = looking
	}
	if looking {
		mouseX, mouseY := in.GetCursorPos()
		if cc.firstMouse {
			cc.lastMouseX = mouseX
			cc.lastMouseY = mouseY
			cc.firstMouse = false
		}
		camera.Rotate(
			float32(mouseX-cc.lastMouseX)*cc.lookSpeed,
			float32(cc.lastMouseY-mouseY)*cc.lookSpeed,
		)
		cc.lastMouseX = mouseX
		cc.lastMouseY = mouseY
	} else {
		cc.firstMouse = true
	}

	if cc.scroll != 0 {
		camera.Zoom(float32(cc.scroll) * cc.zoomSpeed)
		cc.scroll = 0
	}

	step := cc.moveSpeed * deltaTime
	if in.IsKeyPressed(core.KeyLeftShift) {
		step *= 3
	}
	for key, dir := range map[int]scene.Movement{
		core.KeyW:           scene.Forward,
		core.KeyS:           scene.Backward,
		core.KeyA:           scene.Left,
		core.KeyD:           scene.Right,
		core.KeySpace:       scene.Up,
		core.KeyE:           scene.Up,
		core.KeyLeftControl: scene.Down,
		core.KeyQ:           scene.Down,
	} {
		if in.IsKeyPressed(key) {
			camera.Move(dir, step)
		}
	}
}
