package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ersonp/restmodel/internal/application/rest"
	"github.com/ersonp/restmodel/internal/domain/services"
	"github.com/ersonp/restmodel/internal/infrastructure/config"
	"github.com/ersonp/restmodel/internal/infrastructure/modelstore/memory"
)

// Deps holds the wired application for the serve command.
type Deps struct {
	Config        *config.Config
	Log           *zap.SugaredLogger
	Schema        *services.SchemaService
	Entities      *services.EntityService
	Relationships *services.RelationshipService
	Dispatcher    *rest.Dispatcher
}

// withDeps loads config, builds the full dependency graph and calls the
// provided function. The store is in-memory, so every invocation starts from
// the seeded sample model.
func withDeps(opts serveOptions, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	opts.apply(cfg)

	log, err := newLogger(cfg.Server.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if !config.Exists(cwd) {
		log.Debugw("no config file, using defaults", "path", config.ConfigFilePath(cwd))
	}

	schema := services.NewSchemaService()
	if err := schema.LoadDefaults(); err != nil {
		return fmt.Errorf("registering model: %w", err)
	}

	store := memory.NewStore()
	validator := services.NewValidator()
	entityService := services.NewEntityService(validator, store)
	relationshipService := services.NewRelationshipService(schema, entityService, store)

	if cfg.Server.Seed {
		if err := seedSampleData(context.Background(), schema, entityService, relationshipService); err != nil {
			return fmt.Errorf("seeding sample data: %w", err)
		}
		counts := make([]any, 0, len(schema.EntityTypes())*2)
		for _, def := range schema.EntityTypes() {
			n, err := entityService.Count(context.Background(), def)
			if err != nil {
				return fmt.Errorf("counting %s: %w", def.Plural, err)
			}
			counts = append(counts, def.Plural, n)
		}
		log.Debugw("sample data seeded", counts...)
	}

	metrics := rest.NewMetrics(prometheus.NewRegistry())
	dispatcher := rest.NewDispatcher(schema, entityService, relationshipService, validator, metrics, log)

	deps := &Deps{
		Config:        cfg,
		Log:           log,
		Schema:        schema,
		Entities:      entityService,
		Relationships: relationshipService,
		Dispatcher:    dispatcher,
	}

	return fn(deps)
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	zapCfg := zap.NewProductionConfig()
	if debug {
		zapCfg = zap.NewDevelopmentConfig()
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Sugar(), nil
}
