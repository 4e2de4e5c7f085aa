package setup

import (
	"log"

	"go.uber.org/zap"

	"github.com/usherbot/usher/internal/guild"
	"github.com/usherbot/usher/internal/setup/config"
)

// App contains all the components shared by the application.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *guild.Registry
}

// InitializeApp loads the configuration, sets up logging, and builds the
// guild section registry.
func InitializeApp(logDir string) (*App, error) {
	// Load configuration
	cfg, configPath, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Initialize logging
	logger, err := GetLogger(logDir, cfg.Logging.Level, cfg.Logging.MaxLogsToKeep)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded configuration",
		zap.String("path", configPath),
		zap.Int("guilds", len(cfg.Guilds)))

	return &App{
		Config:   cfg,
		Logger:   logger,
		Registry: cfg.GuildRegistry(),
	}, nil
}

// CleanupApp performs cleanup tasks.
func (app *App) CleanupApp() {
	if err := app.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}
}
