package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/voxelcraft/internal/game"
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/item"
	"github.com/gin-gonic/gin"
)

// HotbarRequest — выбор слота хотбара
type HotbarRequest struct {
	Slot *int `json:"slot" binding:"required"`
}

// GridRequest — перенос предмета из слота инвентаря в клетку сетки
type GridRequest struct {
	Cell *int `json:"cell" binding:"required"`
	Slot *int `json:"slot" binding:"required"`
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	var ticks uint64
	ready := false
	if !rs.exec(c, func(s *game.Session) {
		ticks = s.Ticks()
		select {
		case <-s.Ready():
			ready = true
		default:
		}
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
		"ticks":  ticks,
		"ready":  ready,
	})
}

// handleStats возвращает статистику симуляции
func (rs *RestServer) handleStats(c *gin.Context) {
	stats := make(map[string]interface{})
	if !rs.exec(c, func(s *game.Session) {
		gen := s.GenerationStats()
		mobs := make(map[string]int)
		for t, n := range s.Registry().CountByType() {
			mobs[string(t)] = n
		}
		p := s.Player()
		stats["ticks"] = s.Ticks()
		stats["mobs"] = mobs
		stats["chunks"] = map[string]int{
			"pending":  s.Loader().Pending(),
			"executed": s.Loader().Executed(),
		}
		stats["generation"] = map[string]interface{}{
			"columns":         gen.Columns,
			"ores":            gen.Ores,
			"trees":           gen.Trees,
			"cacti":           gen.Cacti,
			"crafting_tables": gen.CraftingTables,
			"duration_ms":     gen.Duration.Milliseconds(),
		}
		stats["player"] = map[string]interface{}{
			"position": p.Position(),
			"health":   p.Health,
			"deaths":   p.Deaths,
		}
	}) {
		return
	}
	stats["uptime"] = time.Since(rs.started).Round(time.Second).String()

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Статистика получена", Data: stats})
}

func (rs *RestServer) handleInventory(c *gin.Context) {
	var view game.InventoryView
	if !rs.exec(c, func(s *game.Session) { view = s.InventoryView() }) {
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Инвентарь", Data: view})
}

func (rs *RestServer) handleHotbar(c *gin.Context) {
	var req HotbarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Message: "Неверный формат запроса"})
		return
	}
	var ok bool
	if !rs.exec(c, func(s *game.Session) { ok = s.SelectHotbar(*req.Slot) }) {
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, GenericResponse{Message: "Слот хотбара должен быть 0..8"})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Слот выбран", Data: gin.H{"slot": *req.Slot}})
}

func (rs *RestServer) handleCrafting(c *gin.Context) {
	var view game.CraftingView
	if !rs.exec(c, func(s *game.Session) { view = s.CraftingView() }) {
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Сетка крафта", Data: view})
}

func (rs *RestServer) handleGridAdd(c *gin.Context) {
	var req GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Message: "Неверный формат запроса"})
		return
	}
	var ok bool
	var view game.CraftingView
	if !rs.exec(c, func(s *game.Session) {
		ok = s.AddToCraftingGrid(*req.Cell, *req.Slot)
		view = s.CraftingView()
	}) {
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, GenericResponse{Message: "Предмет нельзя положить в клетку", Data: view})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Предмет в сетке", Data: view})
}

func (rs *RestServer) handleGridTake(c *gin.Context) {
	cell, err := strconv.Atoi(c.Param("cell"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Message: "Неверный номер клетки"})
		return
	}
	var ok bool
	var view game.CraftingView
	if !rs.exec(c, func(s *game.Session) {
		ok = s.TakeFromCraftingGrid(cell)
		view = s.CraftingView()
	}) {
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, GenericResponse{Message: "Клетка пуста или инвентарь полон", Data: view})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Предмет возвращён", Data: view})
}

// handleGridClear закрывает крафт: всё из сетки возвращается в инвентарь
func (rs *RestServer) handleGridClear(c *gin.Context) {
	var left int
	var view game.CraftingView
	if !rs.exec(c, func(s *game.Session) {
		left = s.CloseCrafting()
		view = s.CraftingView()
	}) {
		return
	}
	if left > 0 {
		c.JSON(http.StatusUnprocessableEntity, GenericResponse{Message: "Инвентарь полон, часть предметов осталась в сетке", Data: view})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Сетка очищена", Data: view})
}

func (rs *RestServer) handleCraft(c *gin.Context) {
	var ok bool
	var result item.Stack
	if !rs.exec(c, func(s *game.Session) { result, ok = s.Craft() }) {
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, GenericResponse{Message: "Нет подходящего рецепта"})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Скрафчено",
		Data:    gin.H{"item": result.Item.String(), "count": result.Count},
	})
}

func (rs *RestServer) handleBlock(c *gin.Context) {
	var pos vec.Vec3
	for _, coord := range []struct {
		name string
		dst  *int
	}{{"x", &pos.X}, {"y", &pos.Y}, {"z", &pos.Z}} {
		v, err := strconv.Atoi(c.Query(coord.name))
		if err != nil {
			c.JSON(http.StatusBadRequest, GenericResponse{Message: "Нужны целые координаты x, y, z"})
			return
		}
		*coord.dst = v
	}

	var view game.BlockView
	if !rs.exec(c, func(s *game.Session) { view = s.BlockAt(pos) }) {
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Блок", Data: view})
}
