package world

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/util"
	"github.com/annel0/voxelcraft/internal/world/block"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Biome представляет тип биома колонки
type Biome uint8

const (
	BiomeDesert Biome = iota
	BiomePlains
	BiomeForest
	BiomeMountains
)

func (b Biome) String() string {
	switch b {
	case BiomeDesert:
		return "desert"
	case BiomePlains:
		return "plains"
	case BiomeForest:
		return "forest"
	case BiomeMountains:
		return "mountains"
	}
	return "unknown"
}

// biomeProfile — базовая высота и амплитуда рельефа биома (смещения от уровня моря)
type biomeProfile struct {
	baseOffset int
	amplitude  float64
}

var biomeProfiles = map[Biome]biomeProfile{
	BiomeDesert:    {baseOffset: 1, amplitude: 2},
	BiomePlains:    {baseOffset: 2, amplitude: 3},
	BiomeForest:    {baseOffset: 3, amplitude: 3},
	BiomeMountains: {baseOffset: 6, amplitude: 7},
}

// Пороги поля биомов
const (
	desertMax = -0.3
	plainsMax = 0.2
	forestMax = 0.5
)

// Вероятности растительности и построек
const (
	forestTreeChance    = 0.08
	plainsTreeChance    = 0.01
	desertCactusChance  = 0.02
	craftingTableChance = 1.0 / 40
)

// oreBand — руды, доступные ниже maxY, с вероятностями подстановки вместо камня
type oreBand struct {
	maxY int
	ores []oreChance
}

type oreChance struct {
	id     block.ID
	chance float64
}

// Глубинные полосы идут снизу вверх: у бедрока реже и ценнее
var oreBands = []oreBand{
	{maxY: 4, ores: []oreChance{{block.GoldOreBlockID, 0.015}, {block.IronOreBlockID, 0.03}}},
	{maxY: 10, ores: []oreChance{{block.IronOreBlockID, 0.025}, {block.CoalOreBlockID, 0.06}}},
	{maxY: math.MaxInt, ores: []oreChance{{block.CoalOreBlockID, 0.08}}},
}

// Источники шума
const (
	NoiseSine   = "sine"
	NoisePerlin = "perlin"
)

// GeneratorConfig — параметры генерации мира
type GeneratorConfig struct {
	Seed     int64
	SeaLevel int
	Noise    string // sine | perlin
}

// GenerationStats — итог генерации для логов и метрик
type GenerationStats struct {
	Columns        int
	Ores           int
	Trees          int
	Cacti          int
	CraftingTables int
	Duration       time.Duration
}

// TerrainGenerator заполняет мир ландшафтом один раз при старте.
// Результат — чистая функция сида и координат.
type TerrainGenerator struct {
	cfg         GeneratorConfig
	biomeNoise  util.Noise2D
	heightNoise util.Noise2D
}

// NewTerrainGenerator создаёт генератор с выбранным источником шума
func NewTerrainGenerator(cfg GeneratorConfig) *TerrainGenerator {
	g := &TerrainGenerator{cfg: cfg}
	switch cfg.Noise {
	case NoisePerlin:
		g.biomeNoise = util.NewPerlinNoise(cfg.Seed+42, 0.015)
		g.heightNoise = util.NewPerlinNoise(cfg.Seed, 0.06)
	default:
		g.biomeNoise = util.NewSineNoise(cfg.Seed+42, []util.Octave{
			{Amplitude: 1.0, Frequency: 0.011},
			{Amplitude: 0.5, Frequency: 0.027},
		})
		g.heightNoise = util.NewSineNoise(cfg.Seed, []util.Octave{
			{Amplitude: 1.0, Frequency: 0.05},
			{Amplitude: 0.5, Frequency: 0.11},
			{Amplitude: 0.25, Frequency: 0.23},
		})
	}
	return g
}

// BiomeAt классифицирует колонку по медленному полю биомов
func (g *TerrainGenerator) BiomeAt(x, z int) Biome {
	v := g.biomeNoise.Noise2D(float64(x), float64(z))
	switch {
	case v < desertMax:
		return BiomeDesert
	case v < plainsMax:
		return BiomePlains
	case v < forestMax:
		return BiomeForest
	default:
		return BiomeMountains
	}
}

// HeightAt возвращает высоту поверхности колонки для мира высотой worldHeight
func (g *TerrainGenerator) HeightAt(x, z int, biome Biome, worldHeight int) int {
	p := biomeProfiles[biome]
	n := g.heightNoise.Noise2D(float64(x), float64(z))
	h := g.cfg.SeaLevel + p.baseOffset + int(math.Round(p.amplitude*n))

	// Оставляем место под кроны деревьев
	maxH := worldHeight - 7
	if h > maxH {
		h = maxH
	}
	if h < 4 {
		h = 4
	}
	if h > worldHeight-1 {
		h = worldHeight - 1
	}
	return h
}

// Generate заполняет мир: сначала рельеф всех колонок, затем растительность
func (g *TerrainGenerator) Generate(ctx context.Context, w *World) GenerationStats {
	_, span := otel.Tracer("voxelcraft/world").Start(ctx, "world.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("world.seed", g.cfg.Seed),
		attribute.Int("world.width", w.Width()),
		attribute.Int("world.height", w.Height()),
		attribute.Int("world.depth", w.Depth()),
		attribute.String("world.noise", g.noiseName()),
	)

	start := time.Now()
	var stats GenerationStats
	if w.Height() == 0 {
		return stats
	}

	heights := make([]int, w.Width()*w.Depth())
	biomes := make([]Biome, w.Width()*w.Depth())

	for z := 0; z < w.Depth(); z++ {
		for x := 0; x < w.Width(); x++ {
			biome := g.BiomeAt(x, z)
			h := g.HeightAt(x, z, biome, w.Height())
			heights[z*w.Width()+x] = h
			biomes[z*w.Width()+x] = biome

			rng := g.columnRand(x, z, 0)
			stats.Ores += g.fillColumn(w, x, z, h, biome, rng)
			stats.Columns++
		}
	}

	for z := 0; z < w.Depth(); z++ {
		for x := 0; x < w.Width(); x++ {
			rng := g.columnRand(x, z, 1)
			g.decorate(w, x, z, heights[z*w.Width()+x], biomes[z*w.Width()+x], rng, &stats)
		}
	}

	stats.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("world.trees", stats.Trees),
		attribute.Int("world.ores", stats.Ores),
	)
	logging.Info("🌍 Мир %dx%dx%d сгенерирован за %v: деревьев %d, кактусов %d, верстаков %d, руд %d",
		w.Width(), w.Height(), w.Depth(), stats.Duration, stats.Trees, stats.Cacti, stats.CraftingTables, stats.Ores)
	return stats
}

func (g *TerrainGenerator) noiseName() string {
	if g.cfg.Noise == NoisePerlin {
		return NoisePerlin
	}
	return NoiseSine
}

// columnRand создаёт детерминированный генератор для колонки и прохода
func (g *TerrainGenerator) columnRand(x, z int, pass int64) *rand.Rand {
	seed := g.cfg.Seed
	seed = seed*6364136223846793005 + int64(x)*73856093
	seed ^= int64(z) * 19349663
	seed ^= pass * 83492791
	return rand.New(rand.NewSource(seed))
}

// fillColumn заполняет колонку снизу вверх и возвращает число поставленных руд
func (g *TerrainGenerator) fillColumn(w *World, x, z, h int, biome Biome, rng *rand.Rand) int {
	ores := 0
	w.Set(x, 0, z, block.BedrockBlockID)

	for y := 1; y <= h-4; y++ {
		id := oreAt(y, rng)
		if id != block.StoneBlockID {
			ores++
		}
		w.Set(x, y, z, id)
	}

	filler := block.DirtBlockID
	if biome == BiomeDesert {
		filler = block.SandBlockID
	}
	for y := max(1, h-3); y <= h-1; y++ {
		w.Set(x, y, z, filler)
	}

	if h > 0 {
		w.Set(x, h, z, g.surfaceBlock(h, biome))
	}

	for y := h + 1; y <= g.cfg.SeaLevel; y++ {
		w.Set(x, y, z, block.WaterBlockID)
	}
	return ores
}

func oreAt(y int, rng *rand.Rand) block.ID {
	for _, band := range oreBands {
		if y > band.maxY {
			continue
		}
		roll := rng.Float64()
		for _, o := range band.ores {
			if roll < o.chance {
				return o.id
			}
			roll -= o.chance
		}
		break
	}
	return block.StoneBlockID
}

func (g *TerrainGenerator) surfaceBlock(h int, biome Biome) block.ID {
	sea := g.cfg.SeaLevel
	switch biome {
	case BiomeDesert:
		if h >= sea+3 {
			return block.SandstoneBlockID
		}
		return block.SandBlockID
	case BiomeMountains:
		if h >= sea+8 {
			return block.StoneBlockID
		}
		return block.GrassBlockID
	default:
		if h <= sea {
			return block.SandBlockID
		}
		return block.GrassBlockID
	}
}

// decorate ставит растительность и верстаки на подходящую поверхность
func (g *TerrainGenerator) decorate(w *World, x, z, h int, biome Biome, rng *rand.Rand, stats *GenerationStats) {
	if w.Get(x, h+1, z) != block.AirBlockID {
		return
	}
	surface := w.Get(x, h, z)

	switch {
	case surface == block.GrassBlockID && biome == BiomeForest && rng.Float64() < forestTreeChance,
		surface == block.GrassBlockID && biome == BiomePlains && rng.Float64() < plainsTreeChance:
		growTree(w, x, h+1, z, rng)
		stats.Trees++
	case surface == block.SandBlockID && biome == BiomeDesert && rng.Float64() < desertCactusChance:
		height := 1 + rng.Intn(3)
		for dy := 0; dy < height; dy++ {
			w.setIfAir(x, h+1+dy, z, block.CactusBlockID)
		}
		stats.Cacti++
	case (surface == block.GrassBlockID || surface == block.SandBlockID) && rng.Float64() < craftingTableChance:
		if w.setIfAir(x, h+1, z, block.CraftingTableBlockID) {
			stats.CraftingTables++
		}
	}
}

// growTree выращивает ствол 3–5 блоков и крону по манхэттенскому расстоянию от верхушки.
// Крона растёт только в воздух, поэтому на стыке с рельефом обрезается.
func growTree(w *World, x, baseY, z int, rng *rand.Rand) {
	trunk := 3 + rng.Intn(3)
	for dy := 0; dy < trunk; dy++ {
		w.setIfAir(x, baseY+dy, z, block.LogBlockID)
	}

	topY := baseY + trunk - 1
	for dy := -2; dy <= 1; dy++ {
		for dz := -2; dz <= 2; dz++ {
			for dx := -2; dx <= 2; dx++ {
				d := abs(dx) + abs(dy) + abs(dz)
				switch {
				case d <= 2:
				case d == 3 && rng.Float64() < 0.5:
				default:
					continue
				}
				w.setIfAir(x+dx, topY+dy, z+dz, block.LeavesBlockID)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
