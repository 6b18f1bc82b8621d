package app

import (
	"context"
	"errors"
	"log"
	"time"

	"hiring-board/internal/config"
	"hiring-board/internal/database"
	dbpostgres "hiring-board/internal/database/postgres"
	"hiring-board/internal/infrastructure/cache"
	userpg "hiring-board/internal/infrastructure/persistence/postgres"
	"hiring-board/internal/infrastructure/storage"
	"hiring-board/internal/pkg/jwt"
	"hiring-board/internal/repository"
	"hiring-board/internal/usecase"
	ucapp "hiring-board/internal/usecase/application"
	ucdept "hiring-board/internal/usecase/department"
	ucjob "hiring-board/internal/usecase/job"
	ucuser "hiring-board/internal/usecase/user"
	"hiring-board/internal/ws"
)

// Container owns the process-wide dependencies and the services built on
// them.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    *jwt.HMACService
	Store  *storage.Local

	Auth         *usecase.Auth
	Users        *ucuser.Service
	Departments  *ucdept.Service
	Jobs         *ucjob.Service
	Applications *ucapp.Service

	hubDone chan struct{}
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := newContainer(cfg, logger, db, cache.NewRedis(cfg.Redis, logger))
	c.hubDone = make(chan struct{})
	go c.Hub.Run(c.hubDone)
	return c, nil
}

func newContainer(cfg config.Config, logger *log.Logger, db database.DB, rc *cache.Redis) *Container {
	hub := ws.NewHub(logger)
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	store := storage.NewLocal(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	userRepo := userpg.NewUserRepository(db)
	deptRepo := repository.NewPostgresDepartmentRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	jobQuery := repository.NewPostgresJobQueryRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  rc,
		Hub:    hub,
		JWT:    jwtSvc,
		Store:  store,

		Auth:         usecase.NewAuthUsecase(userRepo, deptRepo, jwtSvc),
		Users:        ucuser.NewService(userRepo),
		Departments:  ucdept.NewService(deptRepo),
		Jobs:         ucjob.NewService(jobRepo, jobQuery, rc, ws.NewNotifier(hub), cfg.Redis.TTL, logger),
		Applications: ucapp.NewService(jobRepo, appRepo, store, logger),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.hubDone != nil {
		close(c.hubDone)
		c.hubDone = nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
