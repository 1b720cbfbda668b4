package inventory

import (
	"testing"

	"github.com/annel0/voxelcraft/internal/world/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrafter_PlanksFromLog(t *testing.T) {
	inv := New()
	inv.Add(item.Log, 2)
	c := NewCrafter(inv, nil)

	require.True(t, c.AddToGrid(0, 0))
	assert.Equal(t, 1, inv.Count(item.Log), "в сетку переносится один предмет")

	result, ok := c.Craft()
	require.True(t, ok)
	assert.Equal(t, item.Stack{Item: item.Planks, Count: 4}, result)
	assert.Equal(t, 4, inv.Count(item.Planks))
	assert.True(t, c.Grid().IsEmpty())

	_, ok = c.Craft()
	assert.False(t, ok, "пустая сетка ничего не крафтит")
}

func TestCrafter_ConsumesOnlyPatternCells(t *testing.T) {
	inv := New()
	inv.Add(item.Log, 3)
	c := NewCrafter(inv, nil)

	require.True(t, c.AddToGrid(0, 0))
	require.True(t, c.AddToGrid(0, 0), "тот же предмет добавляется в стак клетки")
	assert.Equal(t, 2, c.Grid().Cell(0).Count)

	_, ok := c.Craft()
	require.True(t, ok)
	assert.Equal(t, item.Stack{Item: item.Log, Count: 1}, c.Grid().Cell(0), "списывается одна единица")

	_, ok = c.Craft()
	require.True(t, ok, "остатка хватает на повторный крафт")
	assert.Equal(t, 8, inv.Count(item.Planks))
}

func TestCrafter_WoodenPickaxe(t *testing.T) {
	inv := New()
	inv.SetSlot(0, item.Stack{Item: item.Planks, Count: 3})
	inv.SetSlot(1, item.Stack{Item: item.Stick, Count: 2})
	c := NewCrafter(inv, nil)

	for _, cell := range []int{0, 1, 2} {
		require.True(t, c.AddToGrid(cell, 0))
	}
	for _, cell := range []int{4, 7} {
		require.True(t, c.AddToGrid(cell, 1))
	}
	require.NotNil(t, c.Match())
	assert.Equal(t, "wooden_pickaxe", c.Match().Name)

	result, ok := c.Craft()
	require.True(t, ok)
	assert.Equal(t, item.WoodenPickaxe, result.Item)
	assert.Equal(t, 1, inv.Count(item.WoodenPickaxe))
}

func TestCrafter_GridOperations(t *testing.T) {
	inv := New()
	inv.SetSlot(0, item.Stack{Item: item.Planks, Count: 1})
	inv.SetSlot(1, item.Stack{Item: item.Stick, Count: 1})
	c := NewCrafter(inv, nil)

	assert.False(t, c.AddToGrid(9, 0), "клетка вне сетки")
	assert.False(t, c.AddToGrid(0, 5), "пустой слот")
	require.True(t, c.AddToGrid(0, 0))
	assert.False(t, c.AddToGrid(0, 1), "в клетке уже другой предмет")

	assert.True(t, c.TakeFromGrid(0))
	assert.Equal(t, 1, inv.Count(item.Planks))
	assert.False(t, c.TakeFromGrid(0))

	require.True(t, c.AddToGrid(3, 1))
	c.ReturnAll()
	assert.True(t, c.Grid().IsEmpty())
	assert.Equal(t, 1, inv.Count(item.Stick))
}

func TestCrafter_ResultMustFit(t *testing.T) {
	inv := New()
	for i := 0; i < Size; i++ {
		inv.SetSlot(i, item.Stack{Item: item.Dirt, Count: 64})
	}
	c := NewCrafter(inv, nil)
	c.Grid().Set(0, item.Stack{Item: item.Log, Count: 1})

	_, ok := c.Craft()
	assert.False(t, ok, "результат не помещается")
	assert.Equal(t, 1, c.Grid().Cell(0).Count, "сетка не тронута")
}
