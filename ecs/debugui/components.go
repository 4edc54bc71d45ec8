package debugui

import (
	"github.com/plus3/strata/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

type SystemViewerComponent struct {
	cache          *SystemViewerCache
	selectedHandle *ecs.SystemHandle
	sortColumn     int
	sortAscending  bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type FilterDebuggerComponent struct {
	selectedComponentTypes map[string]bool
	maxListedEntities      int
}
