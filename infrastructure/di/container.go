package di

import (
	"context"
	"net/http"

	"github.com/Kian-Chen/DSADesign/application/ports"
	"github.com/Kian-Chen/DSADesign/application/services"
	"github.com/Kian-Chen/DSADesign/domain/social"
	"github.com/Kian-Chen/DSADesign/infrastructure/config"
	"github.com/Kian-Chen/DSADesign/infrastructure/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	LogLevel  zap.AtomicLevel
	Logger    *zap.Logger
	Store     ports.SnapshotStore
	Graph     *social.Graph
	Social    *services.SocialService
	Lists     *services.ListService
	Collector *observability.Collector
	Handler   http.Handler
	Watcher   *config.Watcher
}

// Start restores the persisted graph. A failed restore is logged and the
// seed data is served.
func (c *Container) Start(ctx context.Context) {
	if err := c.Social.Load(ctx); err != nil {
		c.Logger.Warn("Starting with seed data", zap.Error(err))
	}
}
