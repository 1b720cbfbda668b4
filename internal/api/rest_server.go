package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/annel0/voxelcraft/internal/game"
	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// execTimeout — сколько запрос ждёт выполнения команды в тике
const execTimeout = 2 * time.Second

// RestServer — REST API для UI: инвентарь, хотбар, крафт и чтение блоков.
// Все обращения к сессии проходят через её очередь команд.
type RestServer struct {
	router  *gin.Engine
	session *game.Session
	port    string
	server  *http.Server
	started time.Time
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port       string                // адрес, например ":8088"
	Session    *game.Session         // сессия симуляции
	Registerer prometheus.Registerer // реестр для HTTP-метрик; nil — дефолтный
	Logger     *logging.Logger       // логгер запросов; nil — пакетный
}

// NewRestServer создаёт REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(otelgin.Middleware("rest_api"))
	router.Use(middleware.NewRequestLogger(config.Logger).Handler())
	router.Use(middleware.NewPrometheusMiddleware("rest_api", config.Registerer).Handler())

	rs := &RestServer{
		router:  router,
		session: config.Session,
		port:    config.Port,
		started: time.Now(),
	}
	rs.server = &http.Server{
		Addr:              rs.port,
		Handler:           rs.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	rs.setupRoutes()
	return rs
}

// Handler возвращает HTTP-обработчик (для тестов и встраивания)
func (rs *RestServer) Handler() http.Handler { return rs.router }

func (rs *RestServer) setupRoutes() {
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/stats", rs.handleStats)
		api.GET("/inventory", rs.handleInventory)
		api.POST("/hotbar", rs.handleHotbar)
		api.GET("/world/block", rs.handleBlock)

		crafting := api.Group("/crafting")
		crafting.GET("", rs.handleCrafting)
		crafting.POST("/grid", rs.handleGridAdd)
		crafting.DELETE("/grid", rs.handleGridClear)
		crafting.DELETE("/grid/:cell", rs.handleGridTake)
		crafting.POST("/craft", rs.handleCraft)
	}
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// exec выполняет fn в следующем тике и пишет ошибку очереди в ответ.
// Возвращает false, если ответ уже отправлен.
func (rs *RestServer) exec(c *gin.Context, fn func(*game.Session)) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), execTimeout)
	defer cancel()

	err := rs.session.Exec(ctx, fn)
	switch {
	case err == nil:
		return true
	case errors.Is(err, game.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, GenericResponse{Message: "Сессия завершена"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, GenericResponse{Message: "Симуляция не ответила вовремя"})
	default:
		c.JSON(http.StatusInternalServerError, GenericResponse{Message: err.Error()})
	}
	return false
}

// Start запускает REST сервер; блокирует до Stop.
// После Stop сразу возвращает nil.
func (rs *RestServer) Start() error {
	logging.Info("🌐 REST API слушает %s", rs.port)
	if err := rs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("rest server: %w", err)
	}
	return nil
}

// Stop плавно останавливает REST сервер; безопасен и до Start
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.server.Shutdown(ctx)
}
