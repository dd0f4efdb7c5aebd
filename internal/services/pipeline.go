package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
	"github.com/fastygo/salesboard/repository/memory"
	"github.com/fastygo/salesboard/usecase/export"
	leadUC "github.com/fastygo/salesboard/usecase/lead"
	"github.com/fastygo/salesboard/usecase/pipeline"
)

// PipelineConfig controls how the in-memory board is populated.
type PipelineConfig struct {
	SeedDemo     bool
	DefaultStage string
	Events       pipeline.Events
	Now          func() time.Time
}

// Pipeline bundles the stores and the use cases built on them.
type Pipeline struct {
	Stages repository.StageRepository
	Leads  repository.LeadRepository
	Lists  repository.ListRepository

	Controller *pipeline.Controller
	Search     *leadUC.UseCase
	Exporter   *export.Exporter
}

// NewPipeline wires the stores together, installing the stage delete guard
// backed by the lead store.
func NewPipeline(cfg PipelineConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var (
		leadOpts []memory.LeadOption
		lists    []domain.LeadList
	)
	if cfg.SeedDemo {
		leadOpts = append(leadOpts, memory.WithLeads(domain.DemoLeads()))
		lists = domain.DemoLists(cfg.Now())
	}
	leadOpts = append(leadOpts, memory.WithClock(cfg.Now))
	leads := memory.NewLeadRepository(leadOpts...)

	stages := memory.NewStageRepository(
		memory.WithStages(domain.DefaultStages()),
		memory.WithDeleteGuard(func(ctx context.Context, stageID string) (bool, error) {
			n, err := leads.CountByStage(ctx, stageID)
			return n > 0, err
		}),
	)
	listRepo := memory.NewListRepository(lists)

	ctrl := pipeline.New(stages, leads, logger.Named("pipeline"),
		pipeline.WithEvents(cfg.Events),
		pipeline.WithDefaultStage(cfg.DefaultStage),
	)

	logger.Info("pipeline ready",
		zap.Bool("demo", cfg.SeedDemo),
		zap.Int("lists", len(lists)),
	)

	return &Pipeline{
		Stages:     stages,
		Leads:      leads,
		Lists:      listRepo,
		Controller: ctrl,
		Search:     leadUC.New(leads, listRepo, logger.Named("leads")),
		Exporter:   export.New(leads, listRepo, stages, logger.Named("export")),
	}
}
