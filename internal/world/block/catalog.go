package block

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/annel0/voxelcraft/internal/world/item"
	"gopkg.in/yaml.v3"
)

// ErrUnknownBlock возвращается, если таблица ссылается на неизвестный блок
var ErrUnknownBlock = errors.New("unknown block")

//go:embed blocks.yaml
var defaultTable []byte

// Drop — одна запись таблицы выпадения
type Drop struct {
	Item   item.ID
	Count  int
	Chance float64 // независимая вероятность выпадения, (0, 1]
}

// Definition описывает неизменяемые свойства типа блока
type Definition struct {
	ID          ID
	Name        string
	Solid       bool
	Hardness    float64 // < 0 — блок нельзя сломать
	Interactive bool    // основное действие открывает внешний UI
	UI          string  // вид интерфейса для интерактивных блоков
	MinToolTier int     // минимальный уровень инструмента, при котором есть дроп
	Drops       []Drop
}

// Breakable сообщает, можно ли сломать блок
func (d *Definition) Breakable() bool {
	return d.Hardness >= 0
}

// DropsWith сообщает, даст ли блок дроп при данном уровне инструмента
func (d *Definition) DropsWith(toolTier int) bool {
	return toolTier >= d.MinToolTier
}

// DropEntry описывает запись выпадения в YAML; используется и таблицами мобов
type DropEntry struct {
	Item   string   `yaml:"item"`
	Count  int      `yaml:"count"`
	Chance *float64 `yaml:"chance"`
}

type blockEntry struct {
	Name        string      `yaml:"name"`
	Solid       *bool       `yaml:"solid"`
	Hardness    *float64    `yaml:"hardness"`
	Interactive bool        `yaml:"interactive"`
	UI          string      `yaml:"ui"`
	MinToolTier int         `yaml:"min_tool_tier"`
	Drops       []DropEntry `yaml:"drops"`
}

type blockFile struct {
	Blocks []blockEntry `yaml:"blocks"`
}

// Catalog — статическая таблица блоков
type Catalog struct {
	defs map[ID]*Definition
}

// ParseDrops переводит записи выпадения из YAML в типизированный вид
func ParseDrops(entries []DropEntry) ([]Drop, error) {
	drops := make([]Drop, 0, len(entries))
	for i, e := range entries {
		it, ok := item.ByName(e.Item)
		if !ok {
			return nil, fmt.Errorf("drops[%d] %q: %w", i, e.Item, item.ErrUnknownItem)
		}
		d := Drop{Item: it, Count: e.Count, Chance: 1}
		if d.Count == 0 {
			d.Count = 1
		}
		if e.Chance != nil {
			d.Chance = *e.Chance
		}
		if d.Count < 0 || d.Chance <= 0 || d.Chance > 1 {
			return nil, fmt.Errorf("drops[%d] %q: count %d / chance %.2f out of range", i, e.Item, d.Count, d.Chance)
		}
		drops = append(drops, d)
	}
	return drops, nil
}

// Load разбирает YAML-таблицу блоков. Запись без solid/hardness считается битой.
func Load(data []byte) (*Catalog, error) {
	var f blockFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse blocks: %w", err)
	}

	c := &Catalog{defs: make(map[ID]*Definition, len(f.Blocks))}
	for i, e := range f.Blocks {
		id, ok := ByName(e.Name)
		if !ok {
			return nil, fmt.Errorf("blocks[%d] %q: %w", i, e.Name, ErrUnknownBlock)
		}
		if _, dup := c.defs[id]; dup {
			return nil, fmt.Errorf("blocks[%d] %q: duplicate entry", i, e.Name)
		}
		if e.Solid == nil || e.Hardness == nil {
			return nil, fmt.Errorf("blocks[%d] %q: solid and hardness are required", i, e.Name)
		}
		if e.Interactive && e.UI == "" {
			return nil, fmt.Errorf("blocks[%d] %q: interactive block needs ui", i, e.Name)
		}
		drops, err := ParseDrops(e.Drops)
		if err != nil {
			return nil, fmt.Errorf("blocks[%d] %q: %w", i, e.Name, err)
		}
		c.defs[id] = &Definition{
			ID:          id,
			Name:        e.Name,
			Solid:       *e.Solid,
			Hardness:    *e.Hardness,
			Interactive: e.Interactive,
			UI:          e.UI,
			MinToolTier: e.MinToolTier,
			Drops:       drops,
		}
	}

	for id, name := range names {
		if _, ok := c.defs[id]; !ok {
			return nil, fmt.Errorf("block %q has no table entry", name)
		}
	}
	return c, nil
}

// MustLoad как Load, но паникует
func MustLoad(data []byte) *Catalog {
	c, err := Load(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Get возвращает определение блока
func (c *Catalog) Get(id ID) (*Definition, bool) {
	def, ok := c.defs[id]
	return def, ok
}

// MinToolTiers возвращает карту блок → минимальный уровень инструмента
// (только блоки, которым инструмент нужен)
func (c *Catalog) MinToolTiers() map[ID]int {
	m := make(map[ID]int)
	for id, def := range c.defs {
		if def.MinToolTier > 0 {
			m[id] = def.MinToolTier
		}
	}
	return m
}

var defaultCatalog = MustLoad(defaultTable)

// Default возвращает встроенный каталог блоков
func Default() *Catalog { return defaultCatalog }
