package entity

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/annel0/voxelcraft/internal/physics"
	"github.com/annel0/voxelcraft/internal/world/block"
	"gopkg.in/yaml.v3"
)

// ErrBadMob возвращается для некорректной записи таблицы мобов
var ErrBadMob = errors.New("bad mob definition")

//go:embed mobs.yaml
var defaultMobTable []byte

// MobType — имя типа моба из таблицы
type MobType string

const (
	MobZombie MobType = "zombie"
	MobPig    MobType = "pig"
	MobCow    MobType = "cow"
	MobSheep  MobType = "sheep"
)

// MobStats — неизменяемые константы типа моба
type MobStats struct {
	Type           MobType
	Hostile        bool
	Speed          float64
	DetectionRange float64
	AttackRange    float64
	AttackDamage   float64
	AttackCooldown float64 // секунды
	MaxHealth      float64
	Collider       physics.BoxCollider
	Drops          []block.Drop
}

type mobEntry struct {
	Name           string            `yaml:"name"`
	Hostile        bool              `yaml:"hostile"`
	Speed          float64           `yaml:"speed"`
	DetectionRange float64           `yaml:"detection_range"`
	AttackRange    float64           `yaml:"attack_range"`
	AttackDamage   float64           `yaml:"attack_damage"`
	AttackCooldown float64           `yaml:"attack_cooldown"`
	MaxHealth      float64           `yaml:"max_health"`
	Width          float64           `yaml:"width"`
	Height         float64           `yaml:"height"`
	Drops          []block.DropEntry `yaml:"drops"`
}

type mobFile struct {
	Mobs []mobEntry `yaml:"mobs"`
}

// MobCatalog хранит статистику всех типов мобов
type MobCatalog struct {
	stats map[MobType]*MobStats
}

// LoadMobs разбирает и проверяет таблицу мобов
func LoadMobs(data []byte) (*MobCatalog, error) {
	var f mobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mobs: %w", err)
	}

	c := &MobCatalog{stats: make(map[MobType]*MobStats, len(f.Mobs))}
	for i, e := range f.Mobs {
		if e.Name == "" {
			return nil, fmt.Errorf("mobs[%d]: missing name: %w", i, ErrBadMob)
		}
		if _, dup := c.stats[MobType(e.Name)]; dup {
			return nil, fmt.Errorf("mobs[%d] %q: duplicate: %w", i, e.Name, ErrBadMob)
		}
		if e.Speed <= 0 || e.MaxHealth <= 0 || e.Width <= 0 || e.Height <= 0 {
			return nil, fmt.Errorf("mobs[%d] %q: speed, max_health and size must be positive: %w", i, e.Name, ErrBadMob)
		}
		if e.Hostile && (e.DetectionRange <= 0 || e.AttackRange <= 0 || e.AttackDamage <= 0 || e.AttackCooldown <= 0) {
			return nil, fmt.Errorf("mobs[%d] %q: hostile mob needs detection/attack parameters: %w", i, e.Name, ErrBadMob)
		}
		drops, err := block.ParseDrops(e.Drops)
		if err != nil {
			return nil, fmt.Errorf("mobs[%d] %q: %w", i, e.Name, err)
		}

		c.stats[MobType(e.Name)] = &MobStats{
			Type:           MobType(e.Name),
			Hostile:        e.Hostile,
			Speed:          e.Speed,
			DetectionRange: e.DetectionRange,
			AttackRange:    e.AttackRange,
			AttackDamage:   e.AttackDamage,
			AttackCooldown: e.AttackCooldown,
			MaxHealth:      e.MaxHealth,
			Collider:       physics.NewBoxCollider(e.Width, e.Height),
			Drops:          drops,
		}
	}
	return c, nil
}

// MustLoadMobs паникует на некорректной таблице
func MustLoadMobs(data []byte) *MobCatalog {
	c, err := LoadMobs(data)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultMobs = MustLoadMobs(defaultMobTable)

// DefaultMobs возвращает встроенную таблицу мобов
func DefaultMobs() *MobCatalog { return defaultMobs }

// Get возвращает статистику типа
func (c *MobCatalog) Get(t MobType) (*MobStats, bool) {
	s, ok := c.stats[t]
	return s, ok
}

// Types возвращает все типы в алфавитном порядке
func (c *MobCatalog) Types() []MobType {
	types := make([]MobType, 0, len(c.stats))
	for t := range c.stats {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
