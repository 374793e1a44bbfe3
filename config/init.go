package config

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"hotelcore/jobs"
	"hotelcore/services"
	"hotelcore/services/logger"
	"hotelcore/services/notification"
	"hotelcore/store"
)

// App là các thành phần đã được nối với nhau, dùng bởi main và routes.
type App struct {
	Config   AppConfig
	Router   *gin.Engine
	Melody   *melody.Melody
	Cron     *cron.Cron
	Redis    *redis.Client
	Store    store.Store
	Bookings *services.BookingService
	Facade   *services.BookingFacade
	Logger   logger.Logger
}

func NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)
	return router
}

// InitApp kết nối storage, redis và dựng các service theo cấu hình.
func InitApp(cfg AppConfig, log logger.Logger) (*App, error) {
	log = logger.OrNop(log)
	app := &App{
		Config: cfg,
		Router: NewRouter(),
		Melody: melody.New(),
		Cron:   cron.New(),
		Logger: log,
	}

	if err := app.initComponents(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize components: %v", err)
	}
	return app, nil
}

func (a *App) initComponents() error {
	cfg := a.Config

	switch cfg.StorageDriver {
	case StoragePostgres:
		db, err := ConnectDB(cfg)
		if err != nil {
			return err
		}
		a.Store = store.NewGormStore(db)
	case StorageMemory:
		a.Logger.Warn("STORAGE_DRIVER=memory: dữ liệu sẽ mất khi khởi động lại")
		a.Store = store.NewMemoryStore()
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := ConnectRedis(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %v", err)
		}
		a.Redis = rdb
	}

	var locker services.Locker
	switch cfg.LockBackend {
	case LockRedis:
		if a.Redis == nil {
			return fmt.Errorf("LOCK_BACKEND=redis requires REDIS_ADDR")
		}
		locker = services.NewRedisLocker(a.Redis, 2*cfg.LockTimeout+cfg.StorageTimeout)
	default:
		locker = services.NewKeyedMutex()
	}

	var cache services.Cache = services.NopCache{}
	notifiers := notification.MultiService{notification.NewMelodyService(a.Melody)}
	if a.Redis != nil {
		cache = services.NewRedisCache(a.Redis)
		notifiers = append(notifiers, notification.NewRedisService(a.Redis, cfg.NotifyChannel))
	}

	a.Bookings = services.NewBookingService(services.BookingServiceOptions{
		Store:           a.Store,
		Locker:          locker,
		Notifier:        notifiers,
		Logger:          a.Logger,
		StorageTimeout:  cfg.StorageTimeout,
		LockTimeout:     cfg.LockTimeout,
		PendingTTL:      cfg.PendingTTL,
		LenientCheckout: cfg.LenientCheckout,
	})
	rooms := services.NewRoomService(services.RoomServiceOptions{
		Store:          a.Store,
		Locker:         locker,
		Logger:         a.Logger,
		StorageTimeout: cfg.StorageTimeout,
		LockTimeout:    cfg.LockTimeout,
	})
	ratings := services.NewRatingService(services.RatingServiceOptions{
		Store:          a.Store,
		Locker:         locker,
		Cache:          cache,
		Notifier:       notifiers,
		Logger:         a.Logger,
		CacheTTL:       cfg.RatingCacheTTL,
		StorageTimeout: cfg.StorageTimeout,
		LockTimeout:    cfg.LockTimeout,
	})
	users := services.NewUserService(services.UserServiceOptions{
		Store:          a.Store,
		Logger:         a.Logger,
		StorageTimeout: cfg.StorageTimeout,
		TokenSecret:    cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
	})
	availability := services.NewAvailabilityService(a.Store, a.Logger, cfg.StorageTimeout)
	a.Facade = services.NewBookingFacade(availability, a.Bookings, rooms, ratings, users)

	a.Logger.Info("All components initialized (storage=%s, lock=%s)", cfg.StorageDriver, cfg.LockBackend)
	return nil
}

// InitCronJobs đăng ký job hủy booking pending quá hạn
func (a *App) InitCronJobs() error {
	if err := jobs.InitCronJobs(a.Cron, a.Config.ExpirePendingCron, a.Bookings, a.Logger); err != nil {
		return fmt.Errorf("failed to initialize cron jobs: %v", err)
	}
	return nil
}

func (a *App) InitWebSocket() {
	a.Router.GET("/ws", services.WebSocketHandler(a.Melody, a.Config.JWTSecret, a.Logger))
	a.Logger.Info("WebSocket initialized successfully")
}

// Close dừng cron và đóng kết nối
func (a *App) Close() {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
	if a.Melody != nil {
		a.Melody.Close()
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.Store != nil {
		a.Store.Close()
	}
}
