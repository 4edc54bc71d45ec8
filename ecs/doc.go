// Package ecs is a data-oriented storage engine: entities carry an
// arbitrary, dynamically changing subset of typed component tables, and
// registered systems are invoked with exactly the entities that currently
// hold all components they require.
//
// Storage layout: each entity addresses a fixed access record inside an
// append-only arena of never-resized blocks, so an entity's identity stays
// valid as the population grows. Each component type gets one dense table
// (values plus owning entities) compacted by swap-with-last removal. An
// entity's signature, a bitmask of populated tables, is diffed against every
// system's requirement on each mutation so memberships stay correct
// incrementally; only system creation scans the full population.
//
// The package provides no internal synchronization; see Model.
package ecs
