package inventory

import (
	"testing"

	"github.com/annel0/voxelcraft/internal/world/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBook_Loaded(t *testing.T) {
	b := DefaultBook()
	require.NotEmpty(t, b.Recipes())

	r, ok := b.Find("wooden_pickaxe")
	require.True(t, ok)
	assert.Equal(t, Pattern{
		{item.Planks, item.Planks, item.Planks},
		{item.None, item.Stick, item.None},
		{item.None, item.Stick, item.None},
	}, r.Pattern)
	assert.Equal(t, item.Stack{Item: item.WoodenPickaxe, Count: 1}, r.Result)
	assert.Equal(t, []int{0, 1, 2, 4, 7}, r.Cells())
}

func TestMatch_Exactness(t *testing.T) {
	b := DefaultBook()
	for _, r := range b.Recipes() {
		r := r
		t.Run(r.Name, func(t *testing.T) {
			got := b.Match(r.Pattern)
			require.NotNil(t, got)
			assert.Equal(t, r.Name, got.Name, "точный узор должен находить свой рецепт")

			for cell := 0; cell < GridCells; cell++ {
				row, col := cell/3, cell%3

				if r.Pattern[row][col] != item.None {
					missing := r.Pattern
					missing[row][col] = item.None
					assert.Nil(t, b.Match(missing), "клетка %d пропущена", cell)
				}

				if r.Pattern[row][col] != item.Dirt {
					wrong := r.Pattern
					wrong[row][col] = item.Dirt
					assert.Nil(t, b.Match(wrong), "лишний или чужой предмет в клетке %d", cell)
				}
			}
		})
	}
}

func TestMatch_NoTranslation(t *testing.T) {
	b := DefaultBook()
	shifted := Pattern{{item.None, item.Log}}
	assert.Nil(t, b.Match(shifted), "сдвинутый узор не совпадает")
	assert.Nil(t, b.Match(Pattern{}))
}

func TestMatch_FirstInTableOrder(t *testing.T) {
	data := []byte(`
recipes:
  - {name: first, pattern: ["L"], key: {L: log}, result: {item: planks, count: 4}}
  - {name: second, pattern: ["L"], key: {L: log}, result: {item: stick}}
`)
	b, err := LoadRecipes(data)
	require.NoError(t, err)
	assert.Equal(t, "first", b.Match(Pattern{{item.Log}}).Name)
}

func TestLoadRecipes_Validation(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"неизвестный предмет в ключе", `recipes: [{name: x, pattern: ["A"], key: {A: unobtainium}, result: {item: stick}}]`, item.ErrUnknownItem},
		{"символ вне ключа", `recipes: [{name: x, pattern: ["AB"], key: {A: log}, result: {item: stick}}]`, ErrBadPattern},
		{"слишком длинная строка", `recipes: [{name: x, pattern: ["AAAA"], key: {A: log}, result: {item: stick}}]`, ErrBadPattern},
		{"четыре строки", `recipes: [{name: x, pattern: ["A","A","A","A"], key: {A: log}, result: {item: stick}}]`, ErrBadPattern},
		{"пустой узор", `recipes: [{name: x, pattern: ["..."], key: {A: log}, result: {item: stick}}]`, ErrBadPattern},
		{"без имени", `recipes: [{pattern: ["A"], key: {A: log}, result: {item: stick}}]`, ErrBadPattern},
		{"неизвестный результат", `recipes: [{name: x, pattern: ["A"], key: {A: log}, result: {item: nope}}]`, item.ErrUnknownItem},
		{"результат больше стака", `recipes: [{name: x, pattern: ["A"], key: {A: log}, result: {item: iron_pickaxe, count: 2}}]`, ErrBadPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRecipes([]byte(tt.data))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.Panics(t, func() { MustLoadRecipes([]byte("recipes: [{name: x}]")) })
}
