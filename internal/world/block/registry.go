package block

import (
	"fmt"

	"github.com/annel0/voxelcraft/internal/world/item"
)

// ID представляет идентификатор типа блока
type ID uint16

// Константы ID блоков. Значения совпадают с item.ID соответствующих предметов-блоков.
const (
	AirBlockID           ID = iota // 0
	GrassBlockID                   // 1
	DirtBlockID                    // 2
	StoneBlockID                   // 3
	BedrockBlockID                 // 4
	LogBlockID                     // 5
	LeavesBlockID                  // 6
	SandBlockID                    // 7
	SandstoneBlockID               // 8
	WaterBlockID                   // 9
	CoalOreBlockID                 // 10
	IronOreBlockID                 // 11
	GoldOreBlockID                 // 12
	CobblestoneBlockID             // 13
	CraftingTableBlockID           // 14
	GlassBlockID                   // 15
	PlanksBlockID                  // 16
	CactusBlockID                  // 17
)

// OutsideBlockID возвращается при чтении за границами мира.
// Вызывающий сам решает, считать ли его твёрдым или пустым.
const OutsideBlockID ID = 0xFFFF

var names = map[ID]string{
	AirBlockID:           "air",
	GrassBlockID:         "grass",
	DirtBlockID:          "dirt",
	StoneBlockID:         "stone",
	BedrockBlockID:       "bedrock",
	LogBlockID:           "log",
	LeavesBlockID:        "leaves",
	SandBlockID:          "sand",
	SandstoneBlockID:     "sandstone",
	WaterBlockID:         "water",
	CoalOreBlockID:       "coal_ore",
	IronOreBlockID:       "iron_ore",
	GoldOreBlockID:       "gold_ore",
	CobblestoneBlockID:   "cobblestone",
	CraftingTableBlockID: "crafting_table",
	GlassBlockID:         "glass",
	PlanksBlockID:        "planks",
	CactusBlockID:        "cactus",
}

var byName = func() map[string]ID {
	m := make(map[string]ID, len(names))
	for id, name := range names {
		m[name] = id
	}
	return m
}()

// ByName возвращает ID блока по имени из таблиц
func ByName(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// String возвращает имя блока
func (id ID) String() string {
	if id == OutsideBlockID {
		return "outside"
	}
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("block#%d", uint16(id))
}

// Item возвращает предмет, соответствующий блоку
func (id ID) Item() item.ID {
	return item.ID(id)
}

// FromItem возвращает блок, который ставит предмет
func FromItem(it item.ID) (ID, bool) {
	if !it.IsBlockItem() {
		return AirBlockID, false
	}
	id := ID(it)
	_, ok := names[id]
	return id, ok
}

// Get возвращает определение блока из встроенного каталога
func Get(id ID) (*Definition, bool) {
	return defaultCatalog.Get(id)
}

// IsSolid сообщает, твёрдый ли блок. Неизвестные и OutsideBlockID не твёрдые.
func IsSolid(id ID) bool {
	def, ok := defaultCatalog.Get(id)
	return ok && def.Solid
}
