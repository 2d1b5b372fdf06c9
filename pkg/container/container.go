package container

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/logger"

	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"

	copyHandler "library-backend/internal/domains/copy/handler"
	copyRepo "library-backend/internal/domains/copy/repository"
	copyService "library-backend/internal/domains/copy/service"

	memberHandler "library-backend/internal/domains/member/handler"
	memberRepo "library-backend/internal/domains/member/repository"
	memberService "library-backend/internal/domains/member/service"
)

// Container holds the full dependency graph. Everything here is a
// singleton built once at startup: config, then infrastructure, then
// repositories, services and handlers in that order.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB

	BookRepo   bookRepo.RepositoryInterface
	CopyRepo   copyRepo.RepositoryInterface
	MemberRepo memberRepo.RepositoryInterface

	BookService   bookService.ServiceInterface
	ImportService bookService.ImportServiceInterface
	CopyService   copyService.ServiceInterface
	MemberService memberService.ServiceInterface

	BookHandler   *bookHandler.BookHandler
	ImportHandler *bookHandler.ImportHandler
	CopyHandler   *copyHandler.CopyHandler
	MemberHandler *memberHandler.MemberHandler
}

// NewContainer builds and wires the whole graph. A failure at any layer
// aborts startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.CopyRepo = copyRepo.NewPostgresRepository(pool)
	c.MemberRepo = memberRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewService(c.BookRepo)
	c.ImportService = bookService.NewImportService(c.BookRepo)
	c.CopyService = copyService.NewService(c.CopyRepo)
	c.MemberService = memberService.NewService(c.MemberRepo)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ImportHandler = bookHandler.NewImportHandler(c.ImportService)
	c.CopyHandler = copyHandler.NewCopyHandler(c.CopyService)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService)
}

// Cleanup releases held resources during shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		logger.Info("database connections closed", nil)
	}
}
