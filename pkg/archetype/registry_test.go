package archetype_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("identical schema twice is a no-op", func(t *testing.T) {
		t.Parallel()

		reg := archetype.NewRegistry(nil)
		require.NoError(t, reg.Register(newWidgetSchema(t)))
		require.NoError(t, reg.Register(newWidgetSchema(t)))
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("different schema under the same name conflicts", func(t *testing.T) {
		t.Parallel()

		reg := archetype.NewRegistry(nil)
		original := newWidgetSchema(t)
		require.NoError(t, reg.Register(original))

		slots := widgetSlots()
		slots[3] = archetype.OptionalSlot("c", descC)
		other, err := archetype.Define("Widget", slots, "WidgetIndicator")
		require.NoError(t, err)

		err = reg.Register(other)
		require.Error(t, err)
		assert.True(t, eris.Is(err, archetype.ErrSchemaConflict))

		got, err := reg.Lookup("Widget")
		require.NoError(t, err)
		assert.Same(t, original, got, "the first schema stays registered")
	})

	t.Run("registers slot components", func(t *testing.T) {
		t.Parallel()

		components := component.NewRegistry()
		reg := archetype.NewRegistry(components)
		require.NoError(t, reg.Register(newWidgetSchema(t)))

		assert.Equal(t, []string{"A", "B", "C", "D", "E", "WidgetIndicator"}, components.Names())
		dt, err := components.Describe("B")
		require.NoError(t, err)
		assert.True(t, dt.Equal(datatype.Vec3()))
		assert.Same(t, components, reg.Components())
	})

	t.Run("component type conflict leaves both registries untouched", func(t *testing.T) {
		t.Parallel()

		components := component.NewRegistry()
		require.NoError(t, components.Register("C", datatype.Float64()))
		reg := archetype.NewRegistry(components)

		err := reg.Register(newWidgetSchema(t))
		require.Error(t, err)
		assert.True(t, eris.Is(err, archetype.ErrSchemaConflict))

		_, err = reg.Lookup("Widget")
		assert.True(t, eris.Is(err, archetype.ErrUnknownArchetype))
		assert.Equal(t, []string{"C"}, components.Names())
	})

	t.Run("nil schema", func(t *testing.T) {
		t.Parallel()

		reg := archetype.NewRegistry(nil)
		require.Error(t, reg.Register(nil))
	})
}

func TestRegistry_Define(t *testing.T) {
	t.Parallel()

	reg := archetype.NewRegistry(nil)
	schema, err := reg.Define("Widget", widgetSlots(), "WidgetIndicator")
	require.NoError(t, err)
	assert.Equal(t, "Widget", schema.Name())

	// Define is the strict path: even an identical schema is a duplicate.
	_, err = reg.Define("Widget", widgetSlots(), "WidgetIndicator")
	require.Error(t, err)
	assert.True(t, eris.Is(err, archetype.ErrDuplicateArchetype))

	// Register is the idempotent path.
	require.NoError(t, reg.Register(newWidgetSchema(t)))

	_, err = reg.Define("Broken", widgetSlots(), "Nope")
	assert.True(t, eris.Is(err, archetype.ErrMissingIndicator))
	assert.Equal(t, []string{"Widget"}, reg.Names())
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := archetype.NewRegistry(nil)
	_, err := reg.Lookup("Widget")
	require.Error(t, err)
	assert.True(t, eris.Is(err, archetype.ErrUnknownArchetype))

	schema := newWidgetSchema(t)
	require.NoError(t, reg.Register(schema))
	got, err := reg.Lookup("Widget")
	require.NoError(t, err)
	assert.Same(t, schema, got)
}

func TestRegistry_ConcurrentRegistration(t *testing.T) {
	t.Parallel()

	const writers = 16

	reg := archetype.NewRegistry(nil)

	// Distinct names all succeed.
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := "Widget" + strconv.Itoa(i)
			slots := []archetype.Slot{
				archetype.RequiredSlot("a", descA),
				archetype.IndicatorSlot(name),
			}
			_, errs[i] = reg.Define(name, slots, archetype.IndicatorName(name))
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, writers, reg.Len())

	// Two different schemas raced under one name: exactly one wins, the loser gets a conflict.
	strict := newWidgetSchema(t)
	slots := widgetSlots()
	slots[3] = archetype.OptionalSlot("c", descC)
	relaxed, err := archetype.Define("Widget", slots, "WidgetIndicator")
	require.NoError(t, err)

	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				errs[i] = reg.Register(strict)
			} else {
				errs[i] = reg.Register(relaxed)
			}
		}()
	}
	wg.Wait()

	winner, err := reg.Lookup("Widget")
	require.NoError(t, err)
	for i, err := range errs {
		mine := strict
		if i%2 == 1 {
			mine = relaxed
		}
		if winner.Equal(mine) {
			require.NoError(t, err)
		} else {
			require.Error(t, err)
			assert.True(t, eris.Is(err, archetype.ErrSchemaConflict))
		}
	}
}

func TestRegistry_RacesDirectComponentRegistration(t *testing.T) {
	t.Parallel()

	schema := newWidgetSchema(t)
	for range 50 {
		components := component.NewRegistry()
		reg := archetype.NewRegistry(components)

		// The schema declares C as utf8 while another caller claims C as float64 directly.
		var wg sync.WaitGroup
		var schemaErr, directErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			schemaErr = reg.Register(schema)
		}()
		go func() {
			defer wg.Done()
			directErr = components.Register("C", datatype.Float64())
		}()
		wg.Wait()

		c, err := components.Describe("C")
		require.NoError(t, err)
		if schemaErr == nil {
			assert.True(t, c.Equal(descC.Type), "C is %s", c)
			assert.True(t, eris.Is(directErr, component.ErrSchemaConflict))
			continue
		}
		assert.True(t, eris.Is(schemaErr, archetype.ErrSchemaConflict))
		require.NoError(t, directErr)
		assert.Equal(t, []string{"C"}, components.Names(), "a rejected schema registers no component")
		assert.Equal(t, 0, reg.Len())
	}
}
