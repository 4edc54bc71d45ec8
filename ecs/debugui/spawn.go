package debugui

import "github.com/plus3/strata/ecs"

// SpawnDebugUI creates one entity per debug window and wires each window's
// render call into an ImguiItem, so InstallImguiSystem picks them all up.
func SpawnDebugUI(m *ecs.Model) {
	frame := ecs.NewSingleton[ecs.FrameInfo](m)

	browser := m.CreateEntity()
	mustAdd(m, browser, NewEntityBrowserComponent(100))
	mustAdd(m, browser, ImguiItem{Render: func() {
		ecs.Get[EntityBrowserComponent](m, browser).Render(m)
	}})

	inspector := m.CreateEntity()
	mustAdd(m, inspector, NewComponentInspectorComponent())
	mustAdd(m, inspector, ImguiItem{Render: func() {
		selected := ecs.Get[EntityBrowserComponent](m, browser).GetSelectedEntity()
		ecs.Get[ComponentInspectorComponent](m, inspector).Render(m, selected)
	}})

	viewer := m.CreateEntity()
	mustAdd(m, viewer, NewSystemViewerComponent())
	mustAdd(m, viewer, ImguiItem{Render: func() {
		ecs.Get[SystemViewerComponent](m, viewer).Render(m)
	}})

	perf := m.CreateEntity()
	mustAdd(m, perf, NewPerformanceStatsComponent(120))
	mustAdd(m, perf, ImguiItem{Render: func() {
		dt := float32(frame.Get().DeltaTime)
		ecs.Get[PerformanceStatsComponent](m, perf).Render(m, dt)
	}})

	filter := m.CreateEntity()
	mustAdd(m, filter, NewFilterDebuggerComponent())
	mustAdd(m, filter, ImguiItem{Render: func() {
		ecs.Get[FilterDebuggerComponent](m, filter).Render(m)
	}})
}

// RegisterDebugUIComponents registers every component type the debug UI
// attaches to entities. Call before building the model.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[SystemViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[FilterDebuggerComponent](registry)
	ecs.RegisterComponent[FrameTimer](registry)
}

func mustAdd(m *ecs.Model, e ecs.Entity, component any) {
	if err := m.AddComponent(e, component); err != nil {
		panic(err)
	}
}
