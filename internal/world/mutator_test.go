package world

import (
	"math/rand"
	"testing"

	"github.com/annel0/voxelcraft/internal/inventory"
	"github.com/annel0/voxelcraft/internal/render"
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
	"github.com/annel0/voxelcraft/internal/world/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	broken, placed int
}

func (o *countingObserver) BlockBroken(block.ID) { o.broken++ }
func (o *countingObserver) BlockPlaced(block.ID) { o.placed++ }

func newMutatorFixture() (*World, *render.Recorder, *Mutator, *inventory.Inventory) {
	w := New(16, 16, 16)
	rec := render.NewRecorder(true)
	m := NewMutator(w, rec.Sink(), rand.New(rand.NewSource(42)))
	return w, rec, m, inventory.New()
}

func TestTryBreak_GrassDropsDirtExample(t *testing.T) {
	w, rec, m, inv := newMutatorFixture()
	g := NewTerrainGenerator(GeneratorConfig{Seed: 1, SeaLevel: 5})
	g.fillColumn(w, 5, 5, 7, BiomePlains, rand.New(rand.NewSource(1)))

	res := m.TryBreak(vec.Vec3{X: 5, Y: 7, Z: 5}, item.None, inv)

	assert.Equal(t, BreakBroken, res.Outcome)
	assert.Equal(t, []item.Stack{{Item: item.Dirt, Count: 1}}, res.Drops)
	assert.Equal(t, 1, inv.Count(item.Dirt))
	assert.Equal(t, block.AirBlockID, w.Get(5, 7, 5))
	assert.Equal(t, 1, rec.Count(render.EventUnmaterialize))
}

func TestTryBreak_SilentNoOps(t *testing.T) {
	w, rec, m, inv := newMutatorFixture()
	w.Set(1, 0, 1, block.BedrockBlockID)
	w.Set(2, 1, 2, block.WaterBlockID)

	targets := []vec.Vec3{
		{X: -1, Y: 0, Z: 0},
		{X: 3, Y: 3, Z: 3},
		{X: 1, Y: 0, Z: 1},
		{X: 2, Y: 1, Z: 2},
	}
	for _, p := range targets {
		res := m.TryBreak(p, item.IronPickaxe, inv)
		assert.Equal(t, BreakNone, res.Outcome, "позиция %v", p)
	}
	assert.Equal(t, block.BedrockBlockID, w.Get(1, 0, 1), "бедрок неразрушаем")
	assert.Empty(t, rec.Events)
}

func TestTryBreak_ToolGating(t *testing.T) {
	tests := []struct {
		name  string
		block block.ID
		tool  item.ID
		drop  item.ID
	}{
		{"камень рукой", block.StoneBlockID, item.None, item.None},
		{"камень деревянной киркой", block.StoneBlockID, item.WoodenPickaxe, item.Cobblestone},
		{"железо деревянной киркой", block.IronOreBlockID, item.WoodenPickaxe, item.None},
		{"железо каменной киркой", block.IronOreBlockID, item.StonePickaxe, item.IronOre},
		{"золото железной киркой", block.GoldOreBlockID, item.IronPickaxe, item.GoldOre},
		{"уголь рукой", block.CoalOreBlockID, item.None, item.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, m, inv := newMutatorFixture()
			w.Set(4, 4, 4, tt.block)

			res := m.TryBreak(vec.Vec3{X: 4, Y: 4, Z: 4}, tt.tool, inv)
			assert.Equal(t, BreakBroken, res.Outcome, "блок ломается при любом инструменте")
			assert.Equal(t, block.AirBlockID, w.Get(4, 4, 4))
			if tt.drop == item.None {
				assert.Empty(t, res.Drops)
			} else {
				assert.Equal(t, 1, inv.Count(tt.drop))
			}
		})
	}
}

func TestTryBreak_InteractiveOpensUI(t *testing.T) {
	w, rec, m, inv := newMutatorFixture()
	w.Set(3, 3, 3, block.CraftingTableBlockID)

	res := m.TryBreak(vec.Vec3{X: 3, Y: 3, Z: 3}, item.None, inv)
	assert.Equal(t, BreakOpenUI, res.Outcome)
	assert.Equal(t, "crafting", res.UI)
	assert.Equal(t, block.CraftingTableBlockID, w.Get(3, 3, 3), "верстак не ломается основным действием")
	assert.Equal(t, 1, rec.Count(render.EventOpenUI))
}

func TestBreakPlaceSymmetry(t *testing.T) {
	w, rec, m, inv := newMutatorFixture()
	obs := &countingObserver{}
	m.SetObserver(obs)
	inv.SetSlot(0, item.Stack{Item: item.Dirt, Count: 5})
	pos := vec.Vec3{X: 8, Y: 8, Z: 8}

	require.True(t, m.TryPlace(pos, inv, 0))
	assert.Equal(t, block.DirtBlockID, w.GetAt(pos))
	assert.Equal(t, 4, inv.Count(item.Dirt))
	visible, ok := rec.Visible(pos)
	assert.True(t, ok)
	assert.Equal(t, block.DirtBlockID, visible)

	m.TryBreak(pos, item.None, inv)
	assert.Equal(t, block.AirBlockID, w.GetAt(pos))
	assert.Equal(t, 5, inv.Count(item.Dirt), "количество вернулось к исходному")
	_, ok = rec.Visible(pos)
	assert.False(t, ok)
	assert.Equal(t, 1, obs.placed)
	assert.Equal(t, 1, obs.broken)
}

func TestTryPlace_Rejections(t *testing.T) {
	w, _, m, inv := newMutatorFixture()
	w.Set(1, 1, 1, block.StoneBlockID)
	inv.SetSlot(0, item.Stack{Item: item.Dirt, Count: 1})
	inv.SetSlot(1, item.Stack{Item: item.Stick, Count: 1})

	assert.False(t, m.TryPlace(vec.Vec3{X: 1, Y: 1, Z: 1}, inv, 0), "клетка занята")
	assert.False(t, m.TryPlace(vec.Vec3{X: 16, Y: 1, Z: 1}, inv, 0), "вне мира")
	assert.False(t, m.TryPlace(vec.Vec3{X: 2, Y: 2, Z: 2}, inv, 1), "палка не ставится")
	assert.False(t, m.TryPlace(vec.Vec3{X: 2, Y: 2, Z: 2}, inv, 2), "пустой слот")
	assert.Equal(t, 1, inv.Count(item.Dirt))
}

func TestApplyDrops_IndependentChance(t *testing.T) {
	_, _, m, inv := newMutatorFixture()
	drops := []block.Drop{
		{Item: item.Stick, Count: 1, Chance: 0.5},
		{Item: item.Apple, Count: 1, Chance: 1},
	}

	for i := 0; i < 200; i++ {
		m.ApplyDrops(drops, inv)
	}
	assert.Equal(t, 200, inv.Count(item.Apple), "гарантированный дроп выпадает всегда")
	sticks := inv.Count(item.Stick)
	assert.Greater(t, sticks, 50)
	assert.Less(t, sticks, 150)
}
