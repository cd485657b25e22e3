package app

import (
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bjo163/orderdesk/config"
	"github.com/bjo163/orderdesk/internal/audit"
	"github.com/bjo163/orderdesk/internal/auth"
	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/repository"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	store     *repository.Store
	tokens    *auth.TokenIssuer
	authSvc   *auth.Service
	bus       EventBus.Bus
	recorder  *audit.Recorder
}

// Ensure Application implements all interfaces
var (
	_ DBProvider     = (*Application)(nil)
	_ ConfigProvider = (*Application)(nil)
	_ StoreProvider  = (*Application)(nil)
	_ AuthProvider   = (*Application)(nil)
	_ AppContext     = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Store() *repository.Store {
	return a.store
}

func (a *Application) Auth() *auth.Service {
	return a.authSvc
}

func (a *Application) Tokens() *auth.TokenIssuer {
	return a.tokens
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// OverrideDB replaces the application's database handle and rebuilds
// everything bound to it (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) error {
	a.gormDB = db
	return a.wire()
}

// Init sets up logging, opens the database and migrates it, then builds the
// repositories, the auth service and the audit recorder.
func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := initLogger(cfg); err != nil {
		return err
	}
	warnInsecureConfig(cfg)

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB, err = getDatabase(cfg.Database, cfg.GetDataDir())
	if err != nil {
		return err
	}
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(cfg.Database.Debug); err != nil {
		return errors.Wrap(err, "database migration failed")
	}
	return a.wire()
}

func warnInsecureConfig(cfg *config.AppConfig) {
	if cfg.RandomSecret() {
		zap.S().Warn("web.secret is empty, using a random signing key; issued tokens will not survive a restart")
	}
}

func (a *Application) wire() error {
	if a.recorder != nil {
		_ = a.recorder.Close()
	}
	a.store = repository.NewStore(a.gormDB)
	a.tokens = auth.NewTokenIssuer(a.appConfig.Web.Secret)
	a.authSvc = auth.NewService(a.store.Administrators, auth.NewBcryptHasher(auth.DefaultCost), a.tokens)
	a.bus = EventBus.New()
	recorder, err := audit.NewRecorder(a.gormDB, a.bus)
	if err != nil {
		return errors.Wrap(err, "subscribe audit recorder")
	}
	a.recorder = recorder
	return nil
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

// InitDb drops and re-creates every table
func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// Release releases application resources
func (a *Application) Release() {
	if a.recorder != nil {
		_ = a.recorder.Close()
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
