package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/bjo163/orderdesk/config"
	"github.com/bjo163/orderdesk/internal/auth"
	"github.com/bjo163/orderdesk/internal/repository"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the entity repositories
type StoreProvider interface {
	Store() *repository.Store
}

// AuthProvider provides administrator authentication
type AuthProvider interface {
	Auth() *auth.Service
	Tokens() *auth.TokenIssuer
}

// AppContext combines all provider interfaces for full application context
type AppContext interface {
	DBProvider
	ConfigProvider
	StoreProvider
	AuthProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
	Seed(ctx context.Context) error
	Release()
}
