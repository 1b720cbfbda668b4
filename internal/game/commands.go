package game

import (
	"context"
	"errors"

	"github.com/annel0/voxelcraft/internal/inventory"
	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
	"github.com/annel0/voxelcraft/internal/world/item"
)

// ErrClosed возвращается командам, поставленным после Close
var ErrClosed = errors.New("session closed")

// Exec ставит fn в очередь и ждёт, пока следующий тик её выполнит.
// Это единственный безопасный способ менять сессию из другой горутины.
func (s *Session) Exec(ctx context.Context, fn func(*Session)) error {
	cmd := command{fn: fn, done: make(chan struct{})}
	select {
	case s.commands <- cmd:
	case <-s.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-cmd.done:
		return nil
	case <-s.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) drainCommands() {
	for {
		select {
		case cmd := <-s.commands:
			cmd.fn(s)
			close(cmd.done)
		default:
			return
		}
	}
}

// SelectHotbar выбирает слот хотбара 0..8
func (s *Session) SelectHotbar(slot int) bool { return s.inv.Select(slot) }

// AddToCraftingGrid переносит один предмет из слота инвентаря в клетку сетки
func (s *Session) AddToCraftingGrid(cell, slot int) bool { return s.crafter.AddToGrid(cell, slot) }

// TakeFromCraftingGrid возвращает клетку сетки в инвентарь
func (s *Session) TakeFromCraftingGrid(cell int) bool { return s.crafter.TakeFromGrid(cell) }

// CloseCrafting возвращает содержимое сетки в инвентарь при закрытии UI.
// Возвращает число непустых клеток, которым не хватило места.
func (s *Session) CloseCrafting() int {
	s.crafter.ReturnAll()
	left := 0
	for _, st := range s.crafter.Grid().Snapshot() {
		if !st.Empty() {
			left++
		}
	}
	return left
}

// Craft выполняет рецепт, совпавший с сеткой
func (s *Session) Craft() (item.Stack, bool) {
	r := s.crafter.Match()
	if r == nil {
		return item.Stack{}, false
	}
	name := r.Name
	result, ok := s.crafter.Craft()
	if !ok {
		return item.Stack{}, false
	}
	s.metrics.Crafted(name)
	logging.Debug("🔨 Скрафчено %s: %dx %s", name, result.Count, result.Item)
	return result, true
}

// Give кладёт предметы в инвентарь и возвращает то, что не поместилось
func (s *Session) Give(id item.ID, count int) int { return s.inv.Add(id, count) }

// InventoryView — снимок инвентаря для UI
type InventoryView struct {
	Selected int          `json:"selected"`
	Slots    []item.Stack `json:"slots"`
}

// CraftingView — снимок сетки крафта и совпавшего рецепта
type CraftingView struct {
	Grid   [inventory.GridCells]item.Stack `json:"grid"`
	Recipe string                          `json:"recipe,omitempty"`
	Result *item.Stack                     `json:"result,omitempty"`
}

// BlockView — содержимое вокселя
type BlockView struct {
	Position vec.Vec3 `json:"position"`
	Block    string   `json:"block"`
	ID       block.ID `json:"id"`
	Inside   bool     `json:"inside"`
}

// InventoryView возвращает снимок инвентаря
func (s *Session) InventoryView() InventoryView {
	return InventoryView{Selected: s.inv.Selected(), Slots: s.inv.Snapshot()}
}

// CraftingView возвращает снимок сетки крафта
func (s *Session) CraftingView() CraftingView {
	v := CraftingView{Grid: s.crafter.Grid().Snapshot()}
	if r := s.crafter.Match(); r != nil {
		res := r.Result
		v.Recipe = r.Name
		v.Result = &res
	}
	return v
}

// BlockAt возвращает содержимое вокселя
func (s *Session) BlockAt(pos vec.Vec3) BlockView {
	id := s.world.GetAt(pos)
	v := BlockView{Position: pos, ID: id, Inside: id != block.OutsideBlockID}
	if v.Inside {
		v.Block = id.String()
	}
	return v
}
