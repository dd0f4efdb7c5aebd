// Package pipeline coordinates the stage and lead stores: drag-and-drop
// lead moves, stage administration and the cross-store delete guard.
package pipeline

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

// Events receives notifications about committed pipeline changes.
type Events interface {
	LeadMoved(from, to string)
	StageDeleted(stageID string)
	StageDeleteRefused(stageID string)
}

type nopEvents struct{}

func (nopEvents) LeadMoved(string, string)  {}
func (nopEvents) StageDeleted(string)       {}
func (nopEvents) StageDeleteRefused(string) {}

// Option configures a Controller.
type Option func(*Controller)

// WithEvents registers an observer for committed changes.
func WithEvents(events Events) Option {
	return func(c *Controller) {
		if events != nil {
			c.events = events
		}
	}
}

// WithDefaultStage sets the stage new leads fall back to.
func WithDefaultStage(stageID string) Option {
	return func(c *Controller) {
		if stageID != "" {
			c.defaultStage = stageID
		}
	}
}

// Controller is the only writer that touches both stores. Every operation
// holds mu for its whole duration, so operations never interleave.
type Controller struct {
	stages       repository.StageRepository
	leads        repository.LeadRepository
	logger       *zap.Logger
	events       Events
	defaultStage string

	mu   sync.Mutex
	drag dragState
}

func New(stages repository.StageRepository, leads repository.LeadRepository, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		stages:       stages,
		leads:        leads,
		logger:       logger,
		events:       nopEvents{},
		defaultStage: domain.DefaultStageID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Stages(ctx context.Context) ([]domain.Stage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stages.List(ctx)
}

func (c *Controller) Leads(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leads.List(ctx, filter)
}

func (c *Controller) Lead(ctx context.Context, id string) (*domain.Lead, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leads.GetByID(ctx, id)
}

func (c *Controller) AddStage(ctx context.Context, title string) (*domain.Stage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stage, err := c.stages.Create(ctx, title)
	if err != nil {
		return nil, err
	}
	c.logger.Info("stage added", zap.String("stage_id", stage.ID), zap.Int("order", stage.Order))
	return stage, nil
}

func (c *Controller) UpdateStage(ctx context.Context, id string, patch domain.StagePatch) (*domain.Stage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stages.Update(ctx, id, patch)
}

// ReorderStage swaps the stage at index with its neighbour. Moving past
// either end of the board is a no-op and reports false.
func (c *Controller) ReorderStage(ctx context.Context, index int, dir domain.Direction) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	moved, err := c.stages.Reorder(ctx, index, dir)
	if err != nil {
		return false, err
	}
	if !moved {
		c.logger.Debug("stage reorder ignored at boundary", zap.Int("index", index), zap.String("direction", string(dir)))
	}
	return moved, nil
}

// RequestDeleteStage deletes the stage only when no lead references it.
func (c *Controller) RequestDeleteStage(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.stages.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := c.leads.CountByStage(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		c.logger.Info("stage delete refused", zap.String("stage_id", id), zap.Int("leads", count))
		c.events.StageDeleteRefused(id)
		return domain.ErrStageInUse
	}
	if err := c.stages.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("stage deleted", zap.String("stage_id", id))
	c.events.StageDeleted(id)
	return nil
}

// NewLead carries the caller-supplied fields of a lead to create.
type NewLead struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Value   float64
	StageID string
	ListID  string
}

// AddLead creates a lead in the requested stage, or in the default stage
// when none is given.
func (c *Controller) AddLead(ctx context.Context, in NewLead) (*domain.Lead, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stageID, err := c.resolveStage(ctx, in.StageID)
	if err != nil {
		return nil, err
	}

	lead, err := c.leads.Create(ctx, &domain.Lead{
		Name:    strings.TrimSpace(in.Name),
		Company: strings.TrimSpace(in.Company),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Value:   in.Value,
		StageID: stageID,
		ListID:  in.ListID,
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("lead added", zap.String("lead_id", lead.ID), zap.String("stage_id", lead.StageID))
	return lead, nil
}

// UpdateLead merges patch into the lead. A stage change must target a live
// stage and is committed through the same path as a drop.
func (c *Controller) UpdateLead(ctx context.Context, id string, patch domain.LeadPatch) (*domain.Lead, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	candidate := *current
	if err := patch.Apply(&candidate); err != nil {
		return nil, err
	}
	moving := patch.ChangesStage(current.StageID)
	if moving {
		if _, err := c.stages.GetByID(ctx, candidate.StageID); err != nil {
			return nil, err
		}
	}

	rest := patch
	rest.StageID = nil
	updated, err := c.leads.Update(ctx, id, rest)
	if err != nil {
		return nil, err
	}
	if !moving {
		return updated, nil
	}
	if _, err := c.move(ctx, id, candidate.StageID); err != nil {
		return nil, err
	}
	return c.leads.GetByID(ctx, id)
}

// MoveLead assigns the lead to stageID outside of a drag gesture.
func (c *Controller) MoveLead(ctx context.Context, leadID, stageID string) (DropResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.move(ctx, leadID, stageID)
}

func (c *Controller) move(ctx context.Context, leadID, stageID string) (DropResult, error) {
	if _, err := c.stages.GetByID(ctx, stageID); err != nil {
		return DropResult{LeadID: leadID, ToStage: stageID}, err
	}
	lead, err := c.leads.GetByID(ctx, leadID)
	if err != nil {
		return DropResult{LeadID: leadID, ToStage: stageID}, err
	}

	result := DropResult{LeadID: leadID, FromStage: lead.StageID, ToStage: stageID}
	if lead.StageID == stageID {
		return result, nil
	}
	if _, err := c.leads.Update(ctx, leadID, domain.LeadPatch{StageID: &stageID}); err != nil {
		return result, err
	}
	result.Moved = true
	c.logger.Info("lead moved",
		zap.String("lead_id", leadID),
		zap.String("from", result.FromStage),
		zap.String("to", stageID),
	)
	c.events.LeadMoved(result.FromStage, stageID)
	return result, nil
}

func (c *Controller) resolveStage(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		if _, err := c.stages.GetByID(ctx, requested); err != nil {
			return "", err
		}
		return requested, nil
	}
	stages, err := c.stages.List(ctx)
	if err != nil {
		return "", err
	}
	if len(stages) == 0 {
		return "", domain.ErrNoStages
	}
	if slices.ContainsFunc(stages, func(s domain.Stage) bool { return s.ID == c.defaultStage }) {
		return c.defaultStage, nil
	}
	return stages[0].ID, nil
}
