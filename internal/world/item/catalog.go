package item

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownItem возвращается, если таблица ссылается на неизвестный предмет
var ErrUnknownItem = errors.New("unknown item")

//go:embed items.yaml
var defaultTable []byte

// Definition описывает свойства типа предмета
type Definition struct {
	ID        ID
	Name      string
	Placeable bool    // ставится в мир как блок с тем же ID
	ToolTier  int     // 0 — не инструмент
	Damage    float64 // урон при ударе мобу
	MaxStack  int
}

type itemEntry struct {
	Name      string   `yaml:"name"`
	Placeable bool     `yaml:"placeable"`
	ToolTier  int      `yaml:"tool_tier"`
	Damage    *float64 `yaml:"damage"`
	MaxStack  *int     `yaml:"max_stack"`
}

type itemFile struct {
	Items []itemEntry `yaml:"items"`
}

// Catalog хранит определения всех предметов
type Catalog struct {
	defs map[ID]*Definition
}

// Load разбирает YAML-таблицу предметов и проверяет её
func Load(data []byte) (*Catalog, error) {
	var f itemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}

	c := &Catalog{defs: make(map[ID]*Definition, len(f.Items))}
	for i, e := range f.Items {
		id, ok := ByName(e.Name)
		if !ok {
			return nil, fmt.Errorf("items[%d] %q: %w", i, e.Name, ErrUnknownItem)
		}
		if _, dup := c.defs[id]; dup {
			return nil, fmt.Errorf("items[%d] %q: duplicate entry", i, e.Name)
		}
		if e.Placeable && !id.IsBlockItem() {
			return nil, fmt.Errorf("items[%d] %q: only block items can be placeable", i, e.Name)
		}

		def := &Definition{
			ID:        id,
			Name:      e.Name,
			Placeable: e.Placeable,
			ToolTier:  e.ToolTier,
			Damage:    1,
			MaxStack:  DefaultMaxStack,
		}
		if e.Damage != nil {
			def.Damage = *e.Damage
		}
		if e.MaxStack != nil {
			def.MaxStack = *e.MaxStack
		}
		if def.MaxStack < 1 || def.MaxStack > DefaultMaxStack {
			return nil, fmt.Errorf("items[%d] %q: max_stack %d out of range", i, e.Name, def.MaxStack)
		}
		if def.ToolTier < 0 {
			return nil, fmt.Errorf("items[%d] %q: negative tool_tier", i, e.Name)
		}
		c.defs[id] = def
	}

	for id, name := range names {
		if _, ok := c.defs[id]; !ok {
			return nil, fmt.Errorf("item %q has no table entry", name)
		}
	}
	return c, nil
}

// MustLoad как Load, но паникует — таблицы проверяются один раз при старте
func MustLoad(data []byte) *Catalog {
	c, err := Load(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Get возвращает определение предмета
func (c *Catalog) Get(id ID) (*Definition, bool) {
	def, ok := c.defs[id]
	return def, ok
}

var defaultCatalog = MustLoad(defaultTable)

// Default возвращает встроенный каталог предметов
func Default() *Catalog { return defaultCatalog }

// Get возвращает определение предмета из встроенного каталога
func Get(id ID) (*Definition, bool) {
	return defaultCatalog.Get(id)
}

// MaxStack возвращает предел стака для предмета (64 для неизвестных)
func MaxStack(id ID) int {
	if def, ok := defaultCatalog.Get(id); ok {
		return def.MaxStack
	}
	return DefaultMaxStack
}

// ToolTier возвращает уровень инструмента (0 для не-инструментов и пустой руки)
func ToolTier(id ID) int {
	if def, ok := defaultCatalog.Get(id); ok {
		return def.ToolTier
	}
	return 0
}

// IsPlaceable сообщает, можно ли поставить предмет в мир
func IsPlaceable(id ID) bool {
	def, ok := defaultCatalog.Get(id)
	return ok && def.Placeable
}
