package shmup

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input carries the pointer-driven emitter signals for the frame: the
// cursor position in field coordinates (origin bottom-left) and the
// left-button firing flag.
type Input struct {
	PointerX, PointerY        float64
	Firing                    bool
	WindowWidth, WindowHeight int
}

type InputModule struct{}

func (InputModule) Install(app *App) {
	app.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input, life *Lifecycle) {
	glfw.PollEvents()

	if s.windowGlfw.ShouldClose() {
		life.Quit = true
	}

	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()
	s.WindowWidth, s.WindowHeight = input.WindowWidth, input.WindowHeight

	mx, my := s.windowGlfw.GetCursorPos()
	input.PointerX = mx
	// GLFW reports the cursor from the top-left corner; the field uses
	// a bottom-left origin.
	input.PointerY = float64(input.WindowHeight) - my

	input.Firing = s.windowGlfw.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
}
