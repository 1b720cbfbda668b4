package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/annel0/voxelcraft/internal/config"
	"github.com/annel0/voxelcraft/internal/world"
	"github.com/annel0/voxelcraft/internal/world/block"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML конфигурация (секция world)")
		command    = flag.String("cmd", "stats", "Command: stats, map, column")
		seed       = flag.Int64("seed", 0, "Seed (0 — из конфигурации)")
		noise      = flag.String("noise", "", "Noise: sine, perlin (пусто — из конфигурации)")
		x          = flag.Int("x", 0, "X колонки для column")
		z          = flag.Int("z", 0, "Z колонки для column")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *noise != "" {
		cfg.World.Noise = *noise
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid config: %v", err)
	}

	wc := cfg.World
	w := world.New(wc.Width, wc.Height, wc.Depth)
	gen := world.NewTerrainGenerator(world.GeneratorConfig{Seed: wc.Seed, SeaLevel: wc.SeaLevel, Noise: wc.Noise})
	stats := gen.Generate(context.Background(), w)

	switch *command {
	case "stats":
		printStats(w, stats)
	case "map":
		printMap(w, gen)
	case "column":
		if err := printColumn(w, gen, *x, *z); err != nil {
			log.Fatalf("❌ %v", err)
		}
	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		flag.Usage()
		os.Exit(2)
	}
}

func printStats(w *world.World, stats world.GenerationStats) {
	fmt.Printf("🌍 World %dx%dx%d generated in %s\n", w.Width(), w.Height(), w.Depth(), stats.Duration)
	fmt.Printf("   columns=%d ores=%d trees=%d cacti=%d crafting_tables=%d\n",
		stats.Columns, stats.Ores, stats.Trees, stats.Cacti, stats.CraftingTables)

	counts := w.CountBlocks()
	ids := make([]block.ID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return counts[ids[i]] > counts[ids[j]] })

	fmt.Println("\n📊 Blocks:")
	for _, id := range ids {
		fmt.Printf("   %-15s %8d\n", id, counts[id])
	}
}

var biomeGlyph = map[world.Biome]byte{
	world.BiomeDesert:    '.',
	world.BiomePlains:    '"',
	world.BiomeForest:    '^',
	world.BiomeMountains: 'M',
}

// printMap рисует вид сверху: вода — '~', иначе символ биома
func printMap(w *world.World, gen *world.TerrainGenerator) {
	var sb strings.Builder
	for z := 0; z < w.Depth(); z++ {
		for x := 0; x < w.Width(); x++ {
			top := w.Get(x, w.SurfaceY(x, z), z)
			if top == block.WaterBlockID {
				sb.WriteByte('~')
				continue
			}
			sb.WriteByte(biomeGlyph[gen.BiomeAt(x, z)])
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
	fmt.Println("\n. desert  \" plains  ^ forest  M mountains  ~ water")
}

func printColumn(w *world.World, gen *world.TerrainGenerator, x, z int) error {
	if !w.InBounds(x, 0, z) {
		return fmt.Errorf("column (%d, %d) outside world", x, z)
	}
	fmt.Printf("🧱 Column (%d, %d), biome %s, highest solid %d\n", x, z, gen.BiomeAt(x, z), w.HighestSolid(x, z))
	for y := w.Height() - 1; y >= 0; y-- {
		id := w.Get(x, y, z)
		if id == block.AirBlockID {
			continue
		}
		fmt.Printf("   y=%-3d %s\n", y, id)
	}
	return nil
}
