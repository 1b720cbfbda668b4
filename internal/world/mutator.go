package world

import (
	"math/rand"

	"github.com/annel0/voxelcraft/internal/inventory"
	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/render"
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
	"github.com/annel0/voxelcraft/internal/world/item"
)

// BreakOutcome — итог попытки сломать блок
type BreakOutcome uint8

const (
	BreakNone   BreakOutcome = iota // ничего не произошло
	BreakBroken                     // блок сломан
	BreakOpenUI                     // интерактивный блок открыл интерфейс
)

// BreakResult описывает итог TryBreak
type BreakResult struct {
	Outcome BreakOutcome
	Block   block.ID
	UI      string
	Drops   []item.Stack
}

// MutationObserver получает уведомления об изменениях мира (метрики)
type MutationObserver interface {
	BlockBroken(id block.ID)
	BlockPlaced(id block.ID)
}

// Mutator — единственный легальный писатель в мир после генерации.
// Проверяет цель, уровень инструмента, начисляет дроп и уведомляет рендер.
type Mutator struct {
	world    *World
	sink     render.Sink
	rng      *rand.Rand
	observer MutationObserver
}

// NewMutator создаёт мутатор; rng определяет броски вероятностей дропа
func NewMutator(w *World, sink render.Sink, rng *rand.Rand) *Mutator {
	if sink == nil {
		sink = render.Nop{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Mutator{world: w, sink: sink, rng: rng}
}

// SetObserver устанавливает наблюдателя изменений
func (m *Mutator) SetObserver(obs MutationObserver) {
	m.observer = obs
}

// World возвращает изменяемый мир (только для чтения вызывающими)
func (m *Mutator) World() *World { return m.world }

// TryBreak пытается сломать блок инструментом tool (item.None — рука).
// Молча ничего не делает вне мира, на воздухе и на неразрушаемых блоках.
func (m *Mutator) TryBreak(pos vec.Vec3, tool item.ID, inv *inventory.Inventory) BreakResult {
	id := m.world.GetAt(pos)
	if id == block.OutsideBlockID || id == block.AirBlockID {
		return BreakResult{}
	}
	def, ok := block.Get(id)
	if !ok {
		return BreakResult{}
	}

	if def.Interactive {
		m.sink.OpenUI(def.UI, pos)
		return BreakResult{Outcome: BreakOpenUI, Block: id, UI: def.UI}
	}
	if !def.Breakable() {
		return BreakResult{}
	}

	res := BreakResult{Outcome: BreakBroken, Block: id}
	if def.DropsWith(item.ToolTier(tool)) {
		res.Drops = m.ApplyDrops(def.Drops, inv)
	}

	m.world.Set(pos.X, pos.Y, pos.Z, block.AirBlockID)
	m.sink.Unmaterialize(pos)
	if m.observer != nil {
		m.observer.BlockBroken(id)
	}
	logging.Debug("⛏️ Блок %s сломан в %v, дроп %v", id, pos, res.Drops)
	return res
}

// TryPlace ставит блок из слота инвентаря. Цель должна быть пустой клеткой
// внутри мира, предмет — ставимым. Списывает одну единицу из слота.
func (m *Mutator) TryPlace(pos vec.Vec3, inv *inventory.Inventory, slot int) bool {
	if m.world.GetAt(pos) != block.AirBlockID {
		return false
	}
	stack := inv.Slot(slot)
	if stack.Empty() || !item.IsPlaceable(stack.Item) {
		return false
	}
	id, ok := block.FromItem(stack.Item)
	if !ok {
		return false
	}

	m.world.Set(pos.X, pos.Y, pos.Z, id)
	inv.TakeFromSlot(slot, 1)
	m.sink.Materialize(pos, id)
	if m.observer != nil {
		m.observer.BlockPlaced(id)
	}
	return true
}

// ApplyDrops бросает независимую вероятность для каждой записи и кладёт выпавшее
// в инвентарь. Используется и при убийстве мобов. Не поместившееся теряется.
func (m *Mutator) ApplyDrops(drops []block.Drop, inv *inventory.Inventory) []item.Stack {
	var got []item.Stack
	for _, d := range drops {
		if d.Chance < 1 && m.rng.Float64() >= d.Chance {
			continue
		}
		if inv != nil {
			inv.Add(d.Item, d.Count)
		}
		got = append(got, item.Stack{Item: d.Item, Count: d.Count})
	}
	return got
}
