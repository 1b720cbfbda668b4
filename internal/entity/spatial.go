package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/annel0/voxelcraft/internal/vec"
)

// DefaultCellSize — размер ячейки индекса по умолчанию, блоков
const DefaultCellSize = 8.0

// SpatialIndex — равномерная сетка по плоскости XZ для поиска мобов рядом с точкой.
// Моб попадает во все ячейки, которые пересекает его хитбокс.
// Доступ только из тика, поэтому без блокировок.
type SpatialIndex struct {
	cellSize float64
	cells    map[cellKey]map[uint64]*Mob
	mobs     map[uint64]*indexedMob
}

type cellKey struct {
	x, z int
}

type indexedMob struct {
	mob   *Mob
	cells []cellKey
}

type bounds struct {
	minX, minZ float64
	maxX, maxZ float64
}

// NewSpatialIndex создаёт индекс; неположительный размер заменяется DefaultCellSize
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[uint64]*Mob),
		mobs:     make(map[uint64]*indexedMob),
	}
}

func mobBounds(m *Mob) bounds {
	p := m.Position()
	hw := m.Body.Collider.HalfWidth
	return bounds{minX: p.X - hw, minZ: p.Z - hw, maxX: p.X + hw, maxZ: p.Z + hw}
}

// Insert добавляет моба; повторная вставка равна Update
func (si *SpatialIndex) Insert(m *Mob) {
	if _, ok := si.mobs[m.ID]; ok {
		si.Update(m)
		return
	}
	keys := si.cellsFor(mobBounds(m))
	for _, k := range keys {
		si.cell(k)[m.ID] = m
	}
	si.mobs[m.ID] = &indexedMob{mob: m, cells: keys}
}

// Update перекладывает моба по ячейкам после движения
func (si *SpatialIndex) Update(m *Mob) {
	im, ok := si.mobs[m.ID]
	if !ok {
		si.Insert(m)
		return
	}
	keys := si.cellsFor(mobBounds(m))
	if sameCells(im.cells, keys) {
		return
	}
	si.detach(m.ID, im.cells)
	for _, k := range keys {
		si.cell(k)[m.ID] = m
	}
	im.cells = keys
}

// Remove удаляет моба из индекса
func (si *SpatialIndex) Remove(id uint64) {
	im, ok := si.mobs[id]
	if !ok {
		return
	}
	si.detach(id, im.cells)
	delete(si.mobs, id)
}

// QueryRange возвращает мобов, чей центр в горизонтальном радиусе от точки, по возрастанию ID
func (si *SpatialIndex) QueryRange(center vec.Vec3Float, radius float64) []*Mob {
	area := bounds{minX: center.X - radius, minZ: center.Z - radius, maxX: center.X + radius, maxZ: center.Z + radius}
	return si.collect(area, func(m *Mob) bool {
		dx := m.Position().X - center.X
		dz := m.Position().Z - center.Z
		return dx*dx+dz*dz <= radius*radius
	})
}

// QueryRect возвращает мобов, чей хитбокс пересекает прямоугольник XZ
func (si *SpatialIndex) QueryRect(minX, minZ, maxX, maxZ float64) []*Mob {
	area := bounds{minX: minX, minZ: minZ, maxX: maxX, maxZ: maxZ}
	return si.collect(area, func(m *Mob) bool {
		b := mobBounds(m)
		return b.maxX >= minX && b.minX <= maxX && b.maxZ >= minZ && b.minZ <= maxZ
	})
}

// Len возвращает число мобов в индексе
func (si *SpatialIndex) Len() int { return len(si.mobs) }

// CellCount возвращает число непустых ячеек
func (si *SpatialIndex) CellCount() int { return len(si.cells) }

// Stats возвращает краткую статистику для логов
func (si *SpatialIndex) Stats() string {
	maxPerCell, total := 0, 0
	for _, c := range si.cells {
		total += len(c)
		if len(c) > maxPerCell {
			maxPerCell = len(c)
		}
	}
	avg := 0.0
	if len(si.cells) > 0 {
		avg = float64(total) / float64(len(si.cells))
	}
	return fmt.Sprintf("SpatialIndex: %d mobs, %d cells, avg %.2f mobs/cell, max %d",
		len(si.mobs), len(si.cells), avg, maxPerCell)
}

func (si *SpatialIndex) collect(area bounds, keep func(*Mob) bool) []*Mob {
	seen := make(map[uint64]struct{})
	var out []*Mob
	for _, k := range si.cellsFor(area) {
		for id, m := range si.cells[k] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if keep(m) {
				out = append(out, m)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (si *SpatialIndex) detach(id uint64, keys []cellKey) {
	for _, k := range keys {
		c, ok := si.cells[k]
		if !ok {
			continue
		}
		delete(c, id)
		if len(c) == 0 {
			delete(si.cells, k)
		}
	}
}

func (si *SpatialIndex) cell(k cellKey) map[uint64]*Mob {
	c, ok := si.cells[k]
	if !ok {
		c = make(map[uint64]*Mob)
		si.cells[k] = c
	}
	return c
}

// cellsFor возвращает ключи ячеек, пересекающих прямоугольник
func (si *SpatialIndex) cellsFor(b bounds) []cellKey {
	minX := int(math.Floor(b.minX / si.cellSize))
	minZ := int(math.Floor(b.minZ / si.cellSize))
	maxX := int(math.Floor(b.maxX / si.cellSize))
	maxZ := int(math.Floor(b.maxZ / si.cellSize))

	keys := make([]cellKey, 0, (maxX-minX+1)*(maxZ-minZ+1))
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			keys = append(keys, cellKey{x: x, z: z})
		}
	}
	return keys
}

func sameCells(a, b []cellKey) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
