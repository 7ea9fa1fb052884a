package adapter

import (
	"log/slog"

	"github.com/mmcdole/dex/internal/adapter/source/pokeapi"
	"github.com/mmcdole/dex/internal/adapter/transport"
	"github.com/mmcdole/dex/internal/domain"
	"github.com/mmcdole/dex/internal/imagecache"
)

// Container is the composition root. It wires either live or fixture
// dependencies once, at startup; nothing downstream inspects the mode.
type Container struct {
	Config     *Config
	Logger     *slog.Logger
	Repository domain.CatalogRepository
	Images     imagecache.AsyncLoader

	loader *imagecache.Loader
}

// NewContainer builds the dependency graph for cfg
func NewContainer(cfg *Config, logger *slog.Logger) *Container {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	if cfg.Fixture {
		logger.Debug("using fixture dependencies")
		repo := pokeapi.NewFixtureRepository(cfg.API.BaseURL, cfg.API.SpriteBaseURL)
		c.Repository = repo
		c.loader = imagecache.NewFixtureLoader(logger, repo.SpriteURLs()...)
		c.Images = c.loader
		return c
	}

	tr := transport.NewHTTP(logger,
		transport.WithTimeout(cfg.API.Timeout),
		transport.WithUserAgent(cfg.API.UserAgent),
	)
	c.Repository = pokeapi.NewClient(tr, cfg.API.BaseURL, cfg.API.SpriteBaseURL, logger)
	c.loader = imagecache.NewLoader(tr, imagecache.NewCache(), logger)
	c.Images = c.loader
	return c
}

// CachedImages returns how many images the loader holds
func (c *Container) CachedImages() int {
	return c.loader.Cache().Len()
}

// Close waits for background cache writes to finish
func (c *Container) Close() {
	c.loader.Wait()
}
