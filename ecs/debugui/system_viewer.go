package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/strata/ecs"
)

type SystemInfo struct {
	Handle        ecs.SystemHandle
	Name          string
	RequiredTypes []string
	MemberCount   int
}

type SystemViewerCache struct {
	systems         []SystemInfo
	lastSystemCount int
	sortColumn      int
	sortAscending   bool
}

func NewSystemViewerComponent() SystemViewerComponent {
	return SystemViewerComponent{
		cache: &SystemViewerCache{
			lastSystemCount: -1,
			sortColumn:      3,
			sortAscending:   false,
		},
		sortColumn:    3,
		sortAscending: false,
	}
}

func (sv *SystemViewerComponent) Render(m *ecs.Model) *ecs.SystemHandle {
	if !imgui.BeginV("System Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	sv.refreshCache(m)

	maxMemberCount := 0
	for _, sys := range sv.cache.systems {
		if sys.MemberCount > maxMemberCount {
			maxMemberCount = sys.MemberCount
		}
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Handle")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Required Components")
		imgui.TableSetupColumn("Members")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.cache.sortColumn = int(spec.ColumnIndex())
			sv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortColumn = sv.cache.sortColumn
			sv.sortAscending = sv.cache.sortAscending
			sv.sortSystems()
			sortSpecs.SetSpecsDirty(false)
		}

		var clickedHandle *ecs.SystemHandle

		for _, sys := range sv.cache.systems {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedHandle != nil && *sv.selectedHandle == sys.Handle
			if imgui.SelectableBoolV(fmt.Sprintf("%d", sys.Handle), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				handleCopy := sys.Handle
				clickedHandle = &handleCopy
				sv.selectedHandle = &handleCopy
			}

			imgui.TableNextColumn()
			imgui.Text(sys.Name)

			imgui.TableNextColumn()
			if len(sys.RequiredTypes) == 0 {
				imgui.Text("(all entities)")
			} else {
				imgui.Text(strings.Join(sys.RequiredTypes, ", "))
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.MemberCount))

			if maxMemberCount > 0 {
				barWidth := float32(sys.MemberCount) / float32(maxMemberCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()

		imgui.End()
		return clickedHandle
	}

	imgui.End()
	return nil
}

// refreshCache rebuilds the listing when systems come or go, and refreshes
// member counts every frame since membership changes with ordinary churn.
func (sv *SystemViewerComponent) refreshCache(m *ecs.Model) {
	stats := m.CollectStats()

	if sv.cache.lastSystemCount != len(stats.Systems) {
		sv.cache.systems = nil
		sv.cache.lastSystemCount = len(stats.Systems)
	}

	if sv.cache.systems == nil {
		sv.cache.systems = make([]SystemInfo, 0, len(stats.Systems))
		for _, sys := range stats.Systems {
			sv.cache.systems = append(sv.cache.systems, SystemInfo{
				Handle:        sys.Handle,
				Name:          sys.Name,
				RequiredTypes: sys.RequiredTypes,
				MemberCount:   sys.MemberCount,
			})
		}
		sv.sortSystems()
		return
	}

	counts := make(map[ecs.SystemHandle]int, len(stats.Systems))
	for _, sys := range stats.Systems {
		counts[sys.Handle] = sys.MemberCount
	}
	for i := range sv.cache.systems {
		if count, ok := counts[sv.cache.systems[i].Handle]; ok {
			sv.cache.systems[i].MemberCount = count
		}
	}

	if sv.sortColumn == 3 {
		sv.sortSystems()
	}
}

func (sv *SystemViewerComponent) sortSystems() {
	sort.Slice(sv.cache.systems, func(i, j int) bool {
		a, b := sv.cache.systems[i], sv.cache.systems[j]
		var less bool

		switch sv.cache.sortColumn {
		case 0:
			less = a.Handle < b.Handle
		case 1:
			less = a.Name < b.Name
		case 2:
			less = strings.Join(a.RequiredTypes, ",") < strings.Join(b.RequiredTypes, ",")
		case 3:
			less = a.MemberCount < b.MemberCount
		default:
			less = a.MemberCount < b.MemberCount
		}

		if !sv.cache.sortAscending {
			return !less
		}
		return less
	})
}
