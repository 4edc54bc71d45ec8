// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It renders inspection windows for a model's entities, components, systems and
// performance through ECS components and a system.
package debugui

import (
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/strata/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// InstallImguiSystem registers the system that drives ImguiItem rendering.
// Each pass it updates the ImguiInputState singleton and defers every member's
// render function onto commands, so widgets draw after all systems have run.
// Render functions must only be called between the backend's BeginFrame and
// EndFrame; schedule the pass accordingly.
func InstallImguiSystem(m *ecs.Model, commands *ecs.Commands) ecs.SystemHandle {
	state := ecs.NewSingleton[ImguiInputState](m)
	return m.CreateNamedSystem("imgui", func(members []ecs.Entity, model *ecs.Model) {
		io := imgui.CurrentIO()
		s := state.Get()
		s.WantCaptureMouse = io.WantCaptureMouse()
		s.WantCaptureKeyboard = io.WantCaptureKeyboard()

		for _, e := range members {
			commands.Defer(ecs.Get[ImguiItem](model, e).Render)
		}
	}, reflect.TypeFor[ImguiItem]())
}
