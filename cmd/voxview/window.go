package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"voxview/internal/config"
)

func setupWindow(r config.RenderSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(r.Width, r.Height, "voxview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if r.FPSLimit > 0 {
		glfw.SwapInterval(0)
	} else {
		glfw.SwapInterval(1)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}

func setupInputHandlers(window *glfw.Window, l *Loop) {
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !l.paused {
			l.cam.HandleMouseMovement(xpos, ypos)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			l.paused = !l.paused
			if l.paused {
				w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			} else {
				w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
				l.cam.ResetMouse()
			}
		case glfw.KeyQ:
			w.SetShouldClose(true)
		case glfw.KeyC:
			l.collide = !l.collide
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		l.fbWidth, l.fbHeight = width, height
		l.cam.SetViewport(width, height)
	})
}

// movement reads WASD, space and shift into camera axes.
func movement(w *glfw.Window) (forward, strafe, lift float32) {
	if w.GetKey(glfw.KeyW) == glfw.Press {
		forward++
	}
	if w.GetKey(glfw.KeyS) == glfw.Press {
		forward--
	}
	if w.GetKey(glfw.KeyD) == glfw.Press {
		strafe++
	}
	if w.GetKey(glfw.KeyA) == glfw.Press {
		strafe--
	}
	if w.GetKey(glfw.KeySpace) == glfw.Press {
		lift++
	}
	if w.GetKey(glfw.KeyLeftShift) == glfw.Press {
		lift--
	}
	return forward, strafe, lift
}
