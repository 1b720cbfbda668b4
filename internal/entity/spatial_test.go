package entity

import (
	"testing"

	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mobAt(t *testing.T, id uint64, x, z float64) *Mob {
	t.Helper()
	stats, ok := DefaultMobs().Get(MobSheep)
	require.True(t, ok)
	m := NewMob(stats, vec.Vec3Float{X: x, Y: 5, Z: z})
	m.ID = id
	return m
}

func ids(mobs []*Mob) []uint64 {
	out := make([]uint64, 0, len(mobs))
	for _, m := range mobs {
		out = append(out, m.ID)
	}
	return out
}

func TestSpatialIndex_QueryRange(t *testing.T) {
	si := NewSpatialIndex(4)
	si.Insert(mobAt(t, 3, 1, 1))
	si.Insert(mobAt(t, 2, 5, 1))
	si.Insert(mobAt(t, 4, 20, 20))

	assert.Equal(t, []uint64{2, 3}, ids(si.QueryRange(vec.Vec3Float{X: 3, Z: 1}, 2.5)))
	assert.Equal(t, []uint64{3}, ids(si.QueryRange(vec.Vec3Float{X: 0, Z: 0}, 2)))
	assert.Empty(t, si.QueryRange(vec.Vec3Float{X: 10, Z: 10}, 1))
	assert.Equal(t, 3, si.Len())
}

func TestSpatialIndex_StraddlingMobFoundOnce(t *testing.T) {
	si := NewSpatialIndex(4)
	m := mobAt(t, 7, 4, 4) // хитбокс на стыке четырёх ячеек
	si.Insert(m)

	assert.Equal(t, 4, si.CellCount())
	assert.Len(t, si.QueryRect(0, 0, 8, 8), 1)
}

func TestSpatialIndex_UpdateAndRemove(t *testing.T) {
	si := NewSpatialIndex(4)
	m := mobAt(t, 1, 1, 1)
	si.Insert(m)

	m.Body.Position = vec.Vec3Float{X: 30, Y: 5, Z: 30}
	si.Update(m)
	assert.Empty(t, si.QueryRange(vec.Vec3Float{X: 1, Z: 1}, 2))
	assert.Len(t, si.QueryRange(vec.Vec3Float{X: 30, Z: 30}, 1), 1)

	si.Remove(m.ID)
	si.Remove(m.ID)
	assert.Zero(t, si.Len())
	assert.Zero(t, si.CellCount(), "пустые ячейки удаляются")
}

func TestSpatialIndex_NegativeCoordinates(t *testing.T) {
	si := NewSpatialIndex(4)
	si.Insert(mobAt(t, 1, -0.2, -0.2))

	assert.Len(t, si.QueryRange(vec.Vec3Float{X: -1, Z: -1}, 1.5), 1)
}
