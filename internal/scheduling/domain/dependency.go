package domain

import (
	"github.com/google/uuid"
)

// DependencyMap is the adjacency of task -> prerequisite task IDs. It is
// assembled by the calling layer from its join table and used only for
// ordering; cycles are an error condition, not something the engine
// untangles.
type DependencyMap map[uuid.UUID][]uuid.UUID

// BuildDependencyMap derives the map from the DependsOn sets of a snapshot.
func BuildDependencyMap(tasks []Task) DependencyMap {
	m := make(DependencyMap)
	for _, t := range tasks {
		if len(t.DependsOn) > 0 {
			m[t.ID] = append([]uuid.UUID(nil), t.DependsOn...)
		}
	}
	return m
}

// Prerequisites returns the direct prerequisites of a task.
func (m DependencyMap) Prerequisites(id uuid.UUID) []uuid.UUID {
	if m == nil {
		return nil
	}
	return m[id]
}

// HasCycle reports whether a dependency cycle is reachable from the given
// task. Detecting this up front keeps the conservative unscheduled-prereq
// rule from walking the whole horizon for nothing.
func (m DependencyMap) HasCycle(from uuid.UUID) bool {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[uuid.UUID]int)

	var visit func(id uuid.UUID) bool
	visit = func(id uuid.UUID) bool {
		switch state[id] {
		case visiting:
			return true
		case done:
			return false
		}
		state[id] = visiting
		for _, pre := range m[id] {
			if visit(pre) {
				return true
			}
		}
		state[id] = done
		return false
	}

	return visit(from)
}
