package render

import (
	"sync"

	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
)

// EventType определяет тип события рендерера
type EventType uint8

const (
	EventMaterialize EventType = iota
	EventUnmaterialize
	EventPose
	EventRemoveEntity
	EventOpenUI
	EventLoadingComplete
)

// String возвращает имя типа события
func (t EventType) String() string {
	switch t {
	case EventMaterialize:
		return "materialize"
	case EventUnmaterialize:
		return "unmaterialize"
	case EventPose:
		return "pose"
	case EventRemoveEntity:
		return "remove_entity"
	case EventOpenUI:
		return "open_ui"
	case EventLoadingComplete:
		return "loading_complete"
	default:
		return "unknown"
	}
}

// Event — универсальный контейнер события; заполнены только поля своего типа
type Event struct {
	Type     EventType
	Position vec.Vec3
	Block    block.ID
	Pose     Pose
	EntityID uint64
	UI       string
}

// Filter позволяет подписаться только на нужные события
type Filter struct {
	Types []EventType // Если пусто — все типы.
}

// Handler потребляет события
type Handler func(ev Event)

// Subscription возвращается при подписке; позволяет отписаться
type Subscription interface {
	Unsubscribe()
}

// Stats — агрегированные счётчики шины
type Stats struct {
	Published   uint64
	Delivered   uint64
	Subscribers int
}

// Bus синхронно раздаёт события подписчикам в порядке подписки.
// Реализует Sink, поэтому симуляция пишет в неё как в рендерер.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]subscriber
	order       []int
	nextID      int
	stats       Stats
}

type subscriber struct {
	filter  Filter
	handler Handler
}

// NewBus создаёт пустую шину
func NewBus() *Bus {
	return &Bus{subscribers: make(map[int]subscriber)}
}

// Subscribe регистрирует обработчик
func (b *Bus) Subscribe(f Filter, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = subscriber{filter: f, handler: h}
	b.order = append(b.order, id)
	return &busSub{bus: b, id: id}
}

// Publish доставляет событие всем подходящим подписчикам
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	subs := make([]subscriber, 0, len(b.order))
	for _, id := range b.order {
		if sub, ok := b.subscribers[id]; ok {
			subs = append(subs, sub)
		}
	}
	b.mu.RUnlock()

	delivered := uint64(0)
	for _, sub := range subs {
		if !matchFilter(ev, sub.filter) {
			continue
		}
		sub.handler(ev)
		delivered++
	}

	b.mu.Lock()
	b.stats.Published++
	b.stats.Delivered += delivered
	b.mu.Unlock()
}

// Metrics возвращает снимок счётчиков
func (b *Bus) Metrics() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := b.stats
	s.Subscribers = len(b.subscribers)
	return s
}

func (b *Bus) Materialize(pos vec.Vec3, id block.ID) {
	b.Publish(Event{Type: EventMaterialize, Position: pos, Block: id})
}

func (b *Bus) Unmaterialize(pos vec.Vec3) {
	b.Publish(Event{Type: EventUnmaterialize, Position: pos})
}

func (b *Bus) UpdatePose(p Pose) {
	b.Publish(Event{Type: EventPose, Pose: p, EntityID: p.EntityID})
}

func (b *Bus) RemoveEntity(entityID uint64) {
	b.Publish(Event{Type: EventRemoveEntity, EntityID: entityID})
}

func (b *Bus) OpenUI(kind string, pos vec.Vec3) {
	b.Publish(Event{Type: EventOpenUI, UI: kind, Position: pos})
}

func (b *Bus) LoadingComplete() {
	b.Publish(Event{Type: EventLoadingComplete})
}

func matchFilter(ev Event, f Filter) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if t == ev.Type {
			return true
		}
	}
	return false
}

type busSub struct {
	bus *Bus
	id  int
}

func (s *busSub) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	delete(s.bus.subscribers, s.id)
	for i, id := range s.bus.order {
		if id == s.id {
			s.bus.order = append(s.bus.order[:i], s.bus.order[i+1:]...)
			break
		}
	}
}
