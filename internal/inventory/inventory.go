package inventory

import "github.com/annel0/voxelcraft/internal/world/item"

// Размеры инвентаря
const (
	Size       = 36
	HotbarSize = 9
)

// Inventory — фиксированный набор слотов со стаками.
// Инвариант: в каждом слоте либо пусто, либо 1..MaxStack предметов одного типа.
type Inventory struct {
	slots    [Size]item.Stack
	selected int
}

// New создаёт пустой инвентарь с выбранным слотом 0
func New() *Inventory {
	return &Inventory{}
}

// Slot возвращает содержимое слота; за пределами — пустой стак
func (inv *Inventory) Slot(i int) item.Stack {
	if i < 0 || i >= Size {
		return item.Stack{}
	}
	return inv.slots[i]
}

// Snapshot возвращает копию всех слотов
func (inv *Inventory) Snapshot() []item.Stack {
	out := make([]item.Stack, Size)
	copy(out, inv.slots[:])
	return out
}

// Select выбирает слот хотбара 0..8
func (inv *Inventory) Select(i int) bool {
	if i < 0 || i >= HotbarSize {
		return false
	}
	inv.selected = i
	return true
}

// Selected возвращает индекс выбранного слота хотбара
func (inv *Inventory) Selected() int { return inv.selected }

// SelectedStack возвращает стак в выбранном слоте
func (inv *Inventory) SelectedStack() item.Stack { return inv.slots[inv.selected] }

// Count возвращает общее количество предметов типа
func (inv *Inventory) Count(id item.ID) int {
	n := 0
	for _, s := range inv.slots {
		if s.Item == id {
			n += s.Count
		}
	}
	return n
}

// Space возвращает, сколько предметов типа ещё поместится
func (inv *Inventory) Space(id item.ID) int {
	limit := item.MaxStack(id)
	space := 0
	for _, s := range inv.slots {
		switch {
		case s.Empty():
			space += limit
		case s.Item == id:
			space += limit - s.Count
		}
	}
	return space
}

// CanFit проверяет, поместится ли стак целиком
func (inv *Inventory) CanFit(s item.Stack) bool {
	return s.Empty() || inv.Space(s.Item) >= s.Count
}

// Add добавляет предметы: сначала дополняет существующие стаки, потом занимает пустые слоты.
// Возвращает количество, которое не поместилось.
func (inv *Inventory) Add(id item.ID, count int) int {
	if id == item.None || count <= 0 {
		return 0
	}
	limit := item.MaxStack(id)

	for i := range inv.slots {
		if count == 0 {
			return 0
		}
		s := &inv.slots[i]
		if s.Item != id || s.Count >= limit {
			continue
		}
		n := min(limit-s.Count, count)
		s.Count += n
		count -= n
	}

	for i := range inv.slots {
		if count == 0 {
			return 0
		}
		s := &inv.slots[i]
		if !s.Empty() {
			continue
		}
		n := min(limit, count)
		*s = item.Stack{Item: id, Count: n}
		count -= n
	}
	return count
}

// Remove забирает до count предметов типа, начиная с последних слотов.
// Возвращает фактически удалённое количество.
func (inv *Inventory) Remove(id item.ID, count int) int {
	removed := 0
	for i := Size - 1; i >= 0 && removed < count; i-- {
		s := &inv.slots[i]
		if s.Item != id {
			continue
		}
		n := min(s.Count, count-removed)
		s.Count -= n
		removed += n
		if s.Count == 0 {
			*s = item.Stack{}
		}
	}
	return removed
}

// TakeFromSlot забирает до count предметов из конкретного слота
func (inv *Inventory) TakeFromSlot(i, count int) item.Stack {
	if i < 0 || i >= Size || count <= 0 {
		return item.Stack{}
	}
	s := &inv.slots[i]
	if s.Empty() {
		return item.Stack{}
	}
	n := min(s.Count, count)
	taken := item.Stack{Item: s.Item, Count: n}
	s.Count -= n
	if s.Count == 0 {
		*s = item.Stack{}
	}
	return taken
}

// SetSlot кладёт стак в слот, обрезая его до предела стака
func (inv *Inventory) SetSlot(i int, s item.Stack) {
	if i < 0 || i >= Size {
		return
	}
	if s.Empty() {
		inv.slots[i] = item.Stack{}
		return
	}
	s.Count = min(s.Count, item.MaxStack(s.Item))
	inv.slots[i] = s
}
