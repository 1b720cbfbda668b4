package game

import (
	"github.com/annel0/voxelcraft/internal/entity"
	"github.com/annel0/voxelcraft/internal/vec"
)

// GridAssign — перенос одного предмета из слота инвентаря в клетку сетки крафта
type GridAssign struct {
	Cell int
	Slot int
}

// Input — снимок ввода за один тик. Опрашивается внутри тика.
type Input struct {
	Move      entity.MoveIntent
	Jump      bool
	Primary   bool // ломать / бить
	Secondary bool // ставить
	LookDX    float64
	LookDY    float64
	Hotbar    *int // nil — без изменений

	// Target задаёт воксель явно вместо луча из глаз.
	// Для Primary — ломаемый блок, для Secondary — клетка, куда ставить.
	Target *vec.Vec3

	Grid []GridAssign
}

// Idle возвращает пустой ввод; нулевой Input ему равен
func Idle() Input { return Input{} }

// HotbarSlot — значение для Input.Hotbar
func HotbarSlot(i int) *int { return &i }

// InputSource отдаёт ввод на очередной тик
type InputSource interface {
	Poll() Input
}

// InputFunc адаптирует функцию к InputSource
type InputFunc func() Input

func (f InputFunc) Poll() Input { return f() }

type idleSource struct{}

func (idleSource) Poll() Input { return Idle() }
