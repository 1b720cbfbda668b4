package render

import (
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
)

// Recorder запоминает события и восстанавливает видимое состояние сцены.
// Используется headless-сервером и тестами вместо настоящего рендерера.
type Recorder struct {
	Events  []Event
	visible map[vec.Vec3]block.ID
	poses   map[uint64]Pose
	keep    bool
}

// NewRecorder создаёт рекордер; keepEvents=false хранит только итоговое состояние
func NewRecorder(keepEvents bool) *Recorder {
	return &Recorder{
		visible: make(map[vec.Vec3]block.ID),
		poses:   make(map[uint64]Pose),
		keep:    keepEvents,
	}
}

// Handle — обработчик для Bus.Subscribe
func (r *Recorder) Handle(ev Event) {
	if r.keep {
		r.Events = append(r.Events, ev)
	}
	switch ev.Type {
	case EventMaterialize:
		r.visible[ev.Position] = ev.Block
	case EventUnmaterialize:
		delete(r.visible, ev.Position)
	case EventPose:
		r.poses[ev.EntityID] = ev.Pose
	case EventRemoveEntity:
		delete(r.poses, ev.EntityID)
	}
}

// Visible возвращает блок, видимый в позиции
func (r *Recorder) Visible(pos vec.Vec3) (block.ID, bool) {
	id, ok := r.visible[pos]
	return id, ok
}

// VisibleCount возвращает число видимых блоков
func (r *Recorder) VisibleCount() int { return len(r.visible) }

// Pose возвращает последнюю позу сущности
func (r *Recorder) Pose(entityID uint64) (Pose, bool) {
	p, ok := r.poses[entityID]
	return p, ok
}

// Count возвращает число записанных событий указанного типа
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Sink возвращает шину, подписанную на этот рекордер
func (r *Recorder) Sink() *Bus {
	bus := NewBus()
	bus.Subscribe(Filter{}, r.Handle)
	return bus
}
