package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"pipoca/internal/assets"
	"pipoca/internal/catalog"
	"pipoca/internal/config"
	"pipoca/internal/enrich"
	"pipoca/internal/history"
	"pipoca/internal/identify"
	"pipoca/internal/logging"
	"pipoca/internal/notifications"
	"pipoca/internal/tmdb"
)

// commandContext lazily resolves shared dependencies so each subcommand
// only pays for what it uses.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	catalogOnce sync.Once
	catalog     *catalog.Store
	catalogErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		outputs := []string{"stderr"}
		if logPath := cfg.LogFilePath(); logPath != "" {
			outputs = append(outputs, logPath)
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: outputs,
		})
	})
	return c.logger, c.loggerErr
}

// ensureCatalog opens the catalog store once per process. Opening triggers
// validate-and-prune, so commands observe a consistent view.
func (c *commandContext) ensureCatalog() (*catalog.Store, error) {
	c.catalogOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.catalogErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.catalogErr = err
			return
		}
		c.catalog, c.catalogErr = catalog.Open(cfg.Paths.CatalogFile, logger)
	})
	return c.catalog, c.catalogErr
}

func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.HistoryDBPath())
}

func (c *commandContext) newTMDBClient() (*tmdb.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.ImageBaseURL, cfg.TMDB.Language,
		tmdb.WithTimeout(time.Duration(cfg.TMDB.RequestTimeout)*time.Second))
}

// newEnricher wires the full enrichment pipeline from configuration.
// The returned cleanup closes the history store.
func (c *commandContext) newEnricher(notifier notifications.Service, skipDuplicates bool) (*enrich.Enricher, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	store, err := c.ensureCatalog()
	if err != nil {
		return nil, nil, err
	}
	client, err := c.newTMDBClient()
	if err != nil {
		return nil, nil, err
	}
	historyStore, err := c.openHistory()
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}

	enricher, err := enrich.New(enrich.Options{
		Store:          store,
		Provider:       client,
		Matcher:        identify.NewMatcher(logger, cfg.Match.MinScore, cfg.Match.YearBonus),
		Assets:         assets.New(cfg.Paths.AssetsDir, logger),
		History:        historyStore,
		Notifier:       notifier,
		SkipDuplicates: skipDuplicates,
		Logger:         logger,
	})
	if err != nil {
		_ = historyStore.Close()
		return nil, nil, err
	}
	return enricher, func() { _ = historyStore.Close() }, nil
}

func (c *commandContext) notifier() notifications.Service {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil
	}
	return notifications.NewService(cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
