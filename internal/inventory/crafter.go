package inventory

import "github.com/annel0/voxelcraft/internal/world/item"

// Crafter связывает инвентарь игрока, сетку крафта и книгу рецептов.
// Все операции — мягкие: неудача возвращает false без изменений.
type Crafter struct {
	inv  *Inventory
	grid Grid
	book *Book
}

// NewCrafter создаёт крафтер; nil-книга заменяется встроенной
func NewCrafter(inv *Inventory, book *Book) *Crafter {
	if book == nil {
		book = DefaultBook()
	}
	return &Crafter{inv: inv, book: book}
}

// Grid возвращает сетку крафта
func (c *Crafter) Grid() *Grid { return &c.grid }

// Book возвращает книгу рецептов
func (c *Crafter) Book() *Book { return c.book }

// AddToGrid переносит один предмет из слота инвентаря в клетку сетки.
// Клетка должна быть пустой или содержать тот же предмет с запасом до предела стака.
func (c *Crafter) AddToGrid(cell, slot int) bool {
	if cell < 0 || cell >= GridCells {
		return false
	}
	src := c.inv.Slot(slot)
	if src.Empty() {
		return false
	}
	dst := c.grid.Cell(cell)
	if !dst.Empty() && (dst.Item != src.Item || dst.Count >= item.MaxStack(src.Item)) {
		return false
	}

	taken := c.inv.TakeFromSlot(slot, 1)
	c.grid.Set(cell, item.Stack{Item: taken.Item, Count: dst.Count + taken.Count})
	return true
}

// TakeFromGrid возвращает содержимое клетки в инвентарь.
// То, что не поместилось, остаётся в клетке.
func (c *Crafter) TakeFromGrid(cell int) bool {
	s := c.grid.Cell(cell)
	if s.Empty() {
		return false
	}
	left := c.inv.Add(s.Item, s.Count)
	if left == s.Count {
		return false
	}
	c.grid.Set(cell, item.Stack{Item: s.Item, Count: left})
	return true
}

// Match возвращает рецепт для текущей сетки или nil
func (c *Crafter) Match() *Recipe {
	return c.book.Match(c.grid.Pattern())
}

// Craft выполняет совпавший рецепт: списывает по одному предмету из каждой клетки узора
// и кладёт результат в инвентарь. Не выполняется, если результат не помещается.
func (c *Crafter) Craft() (item.Stack, bool) {
	r := c.Match()
	if r == nil {
		return item.Stack{}, false
	}
	if !c.inv.CanFit(r.Result) {
		return item.Stack{}, false
	}

	for _, i := range r.Cells() {
		s := c.grid.Cell(i)
		s.Count--
		c.grid.Set(i, s)
	}
	c.inv.Add(r.Result.Item, r.Result.Count)
	return r.Result, true
}

// ReturnAll переносит содержимое сетки обратно в инвентарь (при закрытии UI)
func (c *Crafter) ReturnAll() {
	for i := 0; i < GridCells; i++ {
		c.TakeFromGrid(i)
	}
}
