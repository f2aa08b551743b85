package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/sundial-app/sundial/internal/scheduling/domain"
)

func TestBuildDependencyMap(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	tasks := []domain.Task{
		{ID: a, DependsOn: []uuid.UUID{b, c}},
		{ID: b},
		{ID: c},
	}

	m := domain.BuildDependencyMap(tasks)

	assert.ElementsMatch(t, []uuid.UUID{b, c}, m.Prerequisites(a))
	assert.Empty(t, m.Prerequisites(b))
}

func TestDependencyMap_PrerequisitesOnNilMap(t *testing.T) {
	var m domain.DependencyMap
	assert.Empty(t, m.Prerequisites(uuid.New()))
}

func TestDependencyMap_HasCycle(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	t.Run("self loop", func(t *testing.T) {
		m := domain.DependencyMap{a: {a}}
		assert.True(t, m.HasCycle(a))
	})

	t.Run("two node cycle", func(t *testing.T) {
		m := domain.DependencyMap{a: {b}, b: {a}}
		assert.True(t, m.HasCycle(a))
	})

	t.Run("chain without cycle", func(t *testing.T) {
		m := domain.DependencyMap{a: {b}, b: {c}}
		assert.False(t, m.HasCycle(a))
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		d := uuid.New()
		m := domain.DependencyMap{a: {b, c}, b: {d}, c: {d}}
		assert.False(t, m.HasCycle(a))
	})

	t.Run("cycle unreachable from start", func(t *testing.T) {
		m := domain.DependencyMap{a: {b}, c: {c}}
		assert.False(t, m.HasCycle(a))
	})
}
