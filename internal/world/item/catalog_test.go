package item

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	def, ok := Get(StonePickaxe)
	require.True(t, ok)
	assert.Equal(t, 2, def.ToolTier)
	assert.Equal(t, 1, def.MaxStack, "инструменты не складываются")

	assert.True(t, IsPlaceable(Dirt))
	assert.False(t, IsPlaceable(Stick))
	assert.False(t, IsPlaceable(Water), "вода не ставится игроком")
	assert.Equal(t, 0, ToolTier(None))
	assert.Equal(t, 64, MaxStack(Cobblestone))
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"неизвестный предмет", "items:\n  - {name: diamond}\n"},
		{"чистый предмет помечен placeable", "items:\n  - {name: stick, placeable: true}\n"},
		{"стак вне диапазона", "items:\n  - {name: dirt, max_stack: 65}\n"},
		{"не все предметы описаны", "items:\n  - {name: dirt}\n"},
		{"битый YAML", "items: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := Load([]byte("items:\n  - {name: diamond}\n"))
	assert.True(t, errors.Is(err, ErrUnknownItem))
}

func TestID_String(t *testing.T) {
	assert.Equal(t, "crafting_table", CraftingTable.String())
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "item#999", ID(999).String())
}
