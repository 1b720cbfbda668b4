package inventory

import "github.com/annel0/voxelcraft/internal/world/item"

// GridCells — число клеток сетки крафта 3×3
const GridCells = 9

// Pattern — раскладка типов предметов 3×3, None означает пустую клетку
type Pattern [3][3]item.ID

// Grid — сетка крафта. Клетки хранят стаки, но для сопоставления
// с рецептом учитывается только тип предмета.
type Grid struct {
	cells [GridCells]item.Stack
}

// Cell возвращает содержимое клетки 0..8 (построчно)
func (g *Grid) Cell(i int) item.Stack {
	if i < 0 || i >= GridCells {
		return item.Stack{}
	}
	return g.cells[i]
}

// Set кладёт стак в клетку
func (g *Grid) Set(i int, s item.Stack) {
	if i < 0 || i >= GridCells {
		return
	}
	if s.Empty() {
		s = item.Stack{}
	}
	g.cells[i] = s
}

// Pattern возвращает раскладку типов для сопоставления
func (g *Grid) Pattern() Pattern {
	var p Pattern
	for i, s := range g.cells {
		if !s.Empty() {
			p[i/3][i%3] = s.Item
		}
	}
	return p
}

// Snapshot возвращает копию клеток
func (g *Grid) Snapshot() [GridCells]item.Stack {
	return g.cells
}

// IsEmpty сообщает, пуста ли сетка
func (g *Grid) IsEmpty() bool {
	for _, s := range g.cells {
		if !s.Empty() {
			return false
		}
	}
	return true
}

// Clear очищает все клетки
func (g *Grid) Clear() {
	g.cells = [GridCells]item.Stack{}
}
