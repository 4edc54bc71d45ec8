package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/strata/ecs"
)

func NewFilterDebuggerComponent() FilterDebuggerComponent {
	return FilterDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		maxListedEntities:      50,
	}
}

func (fd *FilterDebuggerComponent) Render(m *ecs.Model) {
	if !imgui.BeginV("Filter Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		fd.selectedComponentTypes = make(map[string]bool)
	}

	// The registry is sealed once a model exists, so the type list is stable.
	registered := m.Registry().Types()
	for _, compType := range registered {
		name := compType.String()
		selected := fd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			if selected {
				fd.selectedComponentTypes[name] = true
			} else {
				delete(fd.selectedComponentTypes, name)
			}
		}
	}

	imgui.Separator()

	selectedTypes := make([]reflect.Type, 0, len(fd.selectedComponentTypes))
	for _, compType := range registered {
		if fd.selectedComponentTypes[compType.String()] {
			selectedTypes = append(selectedTypes, compType)
		}
	}

	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	filter := m.NewFilter(selectedTypes...)
	matching := filter.Entities()

	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Matching Entities") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("FilterEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			listed := matching
			if len(listed) > fd.maxListedEntities {
				listed = listed[:fd.maxListedEntities]
			}

			for _, e := range listed {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", e.Index()))

				imgui.TableSetColumnIndex(1)
				types := m.ComponentTypesOf(e)
				names := make([]string, len(types))
				for i, t := range types {
					names[i] = t.String()
				}
				imgui.Text(strings.Join(names, ", "))
			}

			imgui.EndTable()
		}

		if len(matching) > fd.maxListedEntities {
			imgui.Text(fmt.Sprintf("... and %d more", len(matching)-fd.maxListedEntities))
		}
		imgui.TreePop()
	}

	imgui.End()
}
