package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	careeradvice "academy-assistant/internal/agents/advisory/career-advice"
	memberlookup "academy-assistant/internal/agents/membership/member-lookup"
	coachrecruitment "academy-assistant/internal/agents/recruitment/coach-recruitment"
	playerscouting "academy-assistant/internal/agents/recruitment/player-scouting"
	conversationrouter "academy-assistant/internal/agents/routing/conversation-router"
	"academy-assistant/internal/common/config"
	"academy-assistant/internal/common/database"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/conversation"
	"academy-assistant/internal/intake"
	"academy-assistant/internal/server"
	"academy-assistant/pkg/registry"

	"github.com/redis/go-redis/v9"
)

// app holds everything a command needs, built once from configuration.
type app struct {
	config  *config.Config
	logger  logger.Logger
	router  *conversationrouter.Router
	store   conversation.Store
	checks  map[string]server.Check
	closers []func() error
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	a := &app{config: cfg, logger: log, checks: map[string]server.Check{}}

	var db *sql.DB
	if cfg.Database.Postgres.Enabled {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		if err := retryWithBackoff(func() error { return pg.Ping(ctx) }, 5, time.Second, log, "PostgreSQL connection"); err != nil {
			a.Close()
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
		db = pg.DB
		a.checks["postgres"] = pg.Ping
		log.Info("PostgreSQL connected", map[string]interface{}{"host": cfg.Database.Postgres.Host})
	}

	var rdb *redis.Client
	if cfg.Database.Redis.Enabled {
		rc := database.NewRedis(cfg.Database.Redis)
		a.closers = append(a.closers, rc.Close)
		if err := retryWithBackoff(func() error { return rc.Ping(ctx) }, 5, time.Second, log, "Redis connection"); err != nil {
			a.Close()
			return nil, err
		}
		rdb = rc.Client
		a.checks["redis"] = rc.Ping
		log.Info("Redis connected", map[string]interface{}{"address": cfg.Database.Redis.Address})
	}

	store, err := conversation.NewStore(cfg.Session, rdb)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store

	pathways, err := buildRegistry(cfg.Intake, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	members := memberlookup.NewHandler(memberlookup.LoadConfig(cfg.Members), db, rdb, log)
	advisor := careeradvice.NewHandler(careeradvice.LoadConfig(cfg.Advisory), buildProvider(ctx, cfg.Advisory, log), log)
	evaluator := intake.NewEvaluator(cfg.Intake.ApplicationFormURL, intake.NewSequenceIDs(nil))

	a.router = conversationrouter.NewRouter(conversationrouter.LoadConfig(cfg.Intake),
		pathways, evaluator, members, advisor, log)
	return a, nil
}

// buildProvider returns nil when advisory is not configured; the router then answers
// advisory turns with a notice instead of failing.
func buildProvider(ctx context.Context, cfg config.AdvisoryConfig, log logger.Logger) careeradvice.Provider {
	advCfg := careeradvice.LoadConfig(cfg)
	if advCfg.APIKey == "" && advCfg.Provider != careeradvice.ProviderGateway {
		log.Warn("Advisory API key not set, career advice disabled", map[string]interface{}{"provider": advCfg.Provider})
		return nil
	}
	provider, err := careeradvice.NewProvider(ctx, advCfg)
	if err != nil {
		log.Warn("Advisory provider unavailable, career advice disabled", map[string]interface{}{
			"provider": advCfg.Provider,
			"error":    err.Error(),
		})
		return nil
	}
	return provider
}

func buildRegistry(cfg config.IntakeConfig, log logger.Logger) (*registry.Registry, error) {
	defs := registry.DefaultRegistry()
	if cfg.PathwaysFile != "" {
		if _, err := os.Stat(cfg.PathwaysFile); err == nil {
			loaded, err := registry.LoadRegistry(cfg.PathwaysFile)
			if err != nil {
				return nil, err
			}
			defs = loaded
		} else {
			log.Warn("Pathways file not found, using built-in pathways", map[string]interface{}{"path": cfg.PathwaysFile})
		}
	}

	return registry.New(defs, map[string]*intake.Schema{
		playerscouting.SchemaName:   playerscouting.NewSchema(playerscouting.LoadConfig(cfg.Player)),
		coachrecruitment.SchemaName: coachrecruitment.NewSchema(coachrecruitment.LoadConfig(cfg.Coach)),
	})
}

// Close releases connections in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Error closing resource", map[string]interface{}{"error": err.Error()})
		}
	}
	a.closers = nil
}
