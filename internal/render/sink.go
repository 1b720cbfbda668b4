// Package render описывает границу между симуляцией и внешним рендерером.
// Рендерер только потребляет события и не имеет доступа на запись в мир.
package render

import (
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
)

// EntityKind различает игрока и мобов для рендерера
type EntityKind string

const (
	KindPlayer EntityKind = "player"
	KindMob    EntityKind = "mob"
)

// Pose — положение и ориентация сущности за тик
type Pose struct {
	EntityID uint64
	Kind     EntityKind
	Variant  string // тип моба ("zombie", "pig", ...), пусто для игрока
	Position vec.Vec3Float
	Yaw      float64
	Pitch    float64
}

// Sink принимает события симуляции
type Sink interface {
	// Materialize — показать блок данного типа в позиции
	Materialize(pos vec.Vec3, id block.ID)
	// Unmaterialize — убрать блок из позиции
	Unmaterialize(pos vec.Vec3)
	// UpdatePose — обновить позу сущности (раз в тик)
	UpdatePose(p Pose)
	// RemoveEntity — освободить визуальное представление сущности
	RemoveEntity(entityID uint64)
	// OpenUI — открыть внешний интерфейс интерактивного блока
	OpenUI(kind string, pos vec.Vec3)
	// LoadingComplete — первая волна чанков материализована
	LoadingComplete()
}

// Nop игнорирует все события
type Nop struct{}

func (Nop) Materialize(vec.Vec3, block.ID) {}
func (Nop) Unmaterialize(vec.Vec3)         {}
func (Nop) UpdatePose(Pose)                {}
func (Nop) RemoveEntity(uint64)            {}
func (Nop) OpenUI(string, vec.Vec3)        {}
func (Nop) LoadingComplete()               {}
