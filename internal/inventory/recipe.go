package inventory

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/annel0/voxelcraft/internal/world/item"
	"gopkg.in/yaml.v3"
)

// ErrBadPattern возвращается для некорректного узора рецепта
var ErrBadPattern = errors.New("bad recipe pattern")

//go:embed recipes.yaml
var defaultRecipes []byte

// Recipe — точный узор 3×3 и результат крафта
type Recipe struct {
	Name    string
	Pattern Pattern
	Result  item.Stack
}

// Cells возвращает индексы непустых клеток узора
func (r *Recipe) Cells() []int {
	var cells []int
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if r.Pattern[row][col] != item.None {
				cells = append(cells, row*3+col)
			}
		}
	}
	return cells
}

type recipeEntry struct {
	Name    string            `yaml:"name"`
	Pattern []string          `yaml:"pattern"`
	Key     map[string]string `yaml:"key"`
	Result  struct {
		Item  string `yaml:"item"`
		Count int    `yaml:"count"`
	} `yaml:"result"`
}

type recipeFile struct {
	Recipes []recipeEntry `yaml:"recipes"`
}

// Book — упорядоченная таблица рецептов
type Book struct {
	recipes []Recipe
}

// LoadRecipes разбирает и проверяет таблицу рецептов
func LoadRecipes(data []byte) (*Book, error) {
	var f recipeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}

	b := &Book{recipes: make([]Recipe, 0, len(f.Recipes))}
	for i, e := range f.Recipes {
		r, err := buildRecipe(e)
		if err != nil {
			return nil, fmt.Errorf("recipes[%d] %q: %w", i, e.Name, err)
		}
		b.recipes = append(b.recipes, r)
	}
	return b, nil
}

func buildRecipe(e recipeEntry) (Recipe, error) {
	r := Recipe{Name: e.Name}
	if e.Name == "" {
		return r, fmt.Errorf("missing name: %w", ErrBadPattern)
	}
	if len(e.Pattern) == 0 || len(e.Pattern) > 3 {
		return r, fmt.Errorf("pattern must have 1..3 rows: %w", ErrBadPattern)
	}

	key := make(map[rune]item.ID, len(e.Key))
	for k, name := range e.Key {
		runes := []rune(k)
		if len(runes) != 1 || runes[0] == ' ' || runes[0] == '.' {
			return r, fmt.Errorf("key %q: %w", k, ErrBadPattern)
		}
		id, ok := item.ByName(name)
		if !ok {
			return r, fmt.Errorf("key %q -> %q: %w", k, name, item.ErrUnknownItem)
		}
		key[runes[0]] = id
	}

	filled := 0
	for row, line := range e.Pattern {
		runes := []rune(line)
		if len(runes) > 3 {
			return r, fmt.Errorf("row %d longer than 3: %w", row, ErrBadPattern)
		}
		for col, ch := range runes {
			if ch == ' ' || ch == '.' {
				continue
			}
			id, ok := key[ch]
			if !ok {
				return r, fmt.Errorf("symbol %q not in key: %w", ch, ErrBadPattern)
			}
			r.Pattern[row][col] = id
			filled++
		}
	}
	if filled == 0 {
		return r, fmt.Errorf("empty pattern: %w", ErrBadPattern)
	}

	id, ok := item.ByName(e.Result.Item)
	if !ok {
		return r, fmt.Errorf("result %q: %w", e.Result.Item, item.ErrUnknownItem)
	}
	count := e.Result.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > item.MaxStack(id) {
		return r, fmt.Errorf("result count %d out of range: %w", count, ErrBadPattern)
	}
	r.Result = item.Stack{Item: id, Count: count}
	return r, nil
}

// MustLoadRecipes паникует, если таблица некорректна
func MustLoadRecipes(data []byte) *Book {
	b, err := LoadRecipes(data)
	if err != nil {
		panic(err)
	}
	return b
}

var defaultBook = MustLoadRecipes(defaultRecipes)

// DefaultBook возвращает встроенную таблицу рецептов
func DefaultBook() *Book { return defaultBook }

// Recipes возвращает рецепты в порядке таблицы
func (b *Book) Recipes() []Recipe {
	return b.recipes
}

// Find ищет рецепт по имени
func (b *Book) Find(name string) (*Recipe, bool) {
	for i := range b.recipes {
		if b.recipes[i].Name == name {
			return &b.recipes[i], true
		}
	}
	return nil, false
}

// Match возвращает первый рецепт, узор которого поклеточно равен сетке, или nil
func (b *Book) Match(p Pattern) *Recipe {
	for i := range b.recipes {
		if b.recipes[i].Pattern == p {
			return &b.recipes[i]
		}
	}
	return nil
}
