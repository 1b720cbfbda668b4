package item

import "fmt"

// ID представляет идентификатор типа предмета.
// Предметы-блоки (1..255) совпадают по значению с block.ID того блока,
// который они ставят; чистые предметы начинаются с 256.
type ID uint16

// Константы ID предметов
const (
	None ID = iota // 0 — пустой слот / пустая клетка

	// Предметы-блоки
	Grass
	Dirt
	Stone
	Bedrock
	Log
	Leaves
	Sand
	Sandstone
	Water
	CoalOre
	IronOre
	GoldOre
	Cobblestone
	CraftingTable
	Glass
	Planks
	Cactus
)

// Чистые предметы (начиная с 256)
const (
	Stick ID = 256 + iota
	Coal
	IronIngot
	GoldIngot
	Apple
	WoodenPickaxe
	StonePickaxe
	IronPickaxe
	Porkchop
	Beef
	Mutton
	RottenFlesh
)

// FirstPureItem отделяет предметы-блоки от остальных
const FirstPureItem ID = 256

// DefaultMaxStack — предел стака по умолчанию
const DefaultMaxStack = 64

var names = map[ID]string{
	Grass:         "grass",
	Dirt:          "dirt",
	Stone:         "stone",
	Bedrock:       "bedrock",
	Log:           "log",
	Leaves:        "leaves",
	Sand:          "sand",
	Sandstone:     "sandstone",
	Water:         "water",
	CoalOre:       "coal_ore",
	IronOre:       "iron_ore",
	GoldOre:       "gold_ore",
	Cobblestone:   "cobblestone",
	CraftingTable: "crafting_table",
	Glass:         "glass",
	Planks:        "planks",
	Cactus:        "cactus",
	Stick:         "stick",
	Coal:          "coal",
	IronIngot:     "iron_ingot",
	GoldIngot:     "gold_ingot",
	Apple:         "apple",
	WoodenPickaxe: "wooden_pickaxe",
	StonePickaxe:  "stone_pickaxe",
	IronPickaxe:   "iron_pickaxe",
	Porkchop:      "porkchop",
	Beef:          "beef",
	Mutton:        "mutton",
	RottenFlesh:   "rotten_flesh",
}

var byName = func() map[string]ID {
	m := make(map[string]ID, len(names))
	for id, name := range names {
		m[name] = id
	}
	return m
}()

// ByName возвращает ID предмета по имени из таблиц
func ByName(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// String возвращает имя предмета
func (id ID) String() string {
	if id == None {
		return "none"
	}
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("item#%d", uint16(id))
}

// IsBlockItem сообщает, соответствует ли предмет блоку с тем же числовым ID
func (id ID) IsBlockItem() bool {
	return id != None && id < FirstPureItem
}

// Stack — стопка предметов одного типа
type Stack struct {
	Item  ID  `json:"item"`
	Count int `json:"count"`
}

// Empty сообщает, пуст ли стак
func (s Stack) Empty() bool {
	return s.Item == None || s.Count <= 0
}
