package world

import (
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
)

// World — плотная трёхмерная сетка блоков, индексируемая [y][z][x].
// Размер задаётся один раз при создании. Все операции мягко
// обрабатывают выход за границы: чтение возвращает OutsideBlockID, запись игнорируется.
// Мир не потокобезопасен: пишет в него только тик симуляции.
type World struct {
	width  int
	height int
	depth  int
	blocks []block.ID
}

// New создаёт мир из воздуха с указанными размерами
func New(width, height, depth int) *World {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if depth < 0 {
		depth = 0
	}
	return &World{
		width:  width,
		height: height,
		depth:  depth,
		blocks: make([]block.ID, width*height*depth),
	}
}

// Width возвращает размер мира по X
func (w *World) Width() int { return w.width }

// Height возвращает размер мира по Y
func (w *World) Height() int { return w.height }

// Depth возвращает размер мира по Z
func (w *World) Depth() int { return w.depth }

// InBounds проверяет, лежит ли воксель внутри мира
func (w *World) InBounds(x, y, z int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height && z >= 0 && z < w.depth
}

// Contains — InBounds для vec.Vec3
func (w *World) Contains(p vec.Vec3) bool {
	return w.InBounds(p.X, p.Y, p.Z)
}

func (w *World) index(x, y, z int) int {
	return (y*w.depth+z)*w.width + x
}

// Get возвращает блок в позиции или OutsideBlockID за границами
func (w *World) Get(x, y, z int) block.ID {
	if !w.InBounds(x, y, z) {
		return block.OutsideBlockID
	}
	return w.blocks[w.index(x, y, z)]
}

// GetAt — Get для vec.Vec3
func (w *World) GetAt(p vec.Vec3) block.ID {
	return w.Get(p.X, p.Y, p.Z)
}

// Set записывает блок; за границами — ничего не делает.
// После генерации вызывается только из Mutator.
func (w *World) Set(x, y, z int, id block.ID) {
	if !w.InBounds(x, y, z) {
		return
	}
	w.blocks[w.index(x, y, z)] = id
}

// setIfAir пишет блок только в пустую клетку
func (w *World) setIfAir(x, y, z int, id block.ID) bool {
	if w.Get(x, y, z) != block.AirBlockID {
		return false
	}
	w.blocks[w.index(x, y, z)] = id
	return true
}

// HighestSolid сканирует колонку сверху вниз и возвращает Y самого высокого
// твёрдого блока или -1, если колонка пуста или вне мира
func (w *World) HighestSolid(x, z int) int {
	if !w.InBounds(x, 0, z) {
		return -1
	}
	for y := w.height - 1; y >= 0; y-- {
		if block.IsSolid(w.blocks[w.index(x, y, z)]) {
			return y
		}
	}
	return -1
}

// SurfaceY возвращает высоту, на которой стоит сущность в колонке
func (w *World) SurfaceY(x, z int) int {
	return w.HighestSolid(x, z) + 1
}

// CountBlocks возвращает количество блоков каждого типа (для логов и тестов)
func (w *World) CountBlocks() map[block.ID]int {
	counts := make(map[block.ID]int)
	for _, id := range w.blocks {
		counts[id]++
	}
	return counts
}

// Equal сравнивает содержимое двух миров
func (w *World) Equal(other *World) bool {
	if w.width != other.width || w.height != other.height || w.depth != other.depth {
		return false
	}
	for i := range w.blocks {
		if w.blocks[i] != other.blocks[i] {
			return false
		}
	}
	return true
}
