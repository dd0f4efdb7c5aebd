package pipeline

import (
	"context"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

// Column is one stage with the leads it currently contains.
type Column struct {
	Stage      domain.Stage  `json:"stage"`
	Leads      []domain.Lead `json:"leads"`
	Count      int           `json:"count"`
	TotalValue float64       `json:"total_value"`
}

// Board is a derived view of the whole pipeline, recomputed on every read.
type Board struct {
	Columns    []Column `json:"columns"`
	LeadCount  int      `json:"lead_count"`
	TotalValue float64  `json:"total_value"`
}

// Board groups every lead under its stage in stage order.
func (c *Controller) Board(ctx context.Context) (Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stages, err := c.stages.List(ctx)
	if err != nil {
		return Board{}, err
	}
	leads, err := c.leads.List(ctx, repository.LeadFilter{})
	if err != nil {
		return Board{}, err
	}

	board := Board{Columns: make([]Column, 0, len(stages))}
	for _, stage := range stages {
		col := buildColumn(stage, leads)
		board.LeadCount += col.Count
		board.TotalValue += col.TotalValue
		board.Columns = append(board.Columns, col)
	}
	return board, nil
}

// Column returns the leads and total value of a single stage.
func (c *Controller) Column(ctx context.Context, stageID string) (Column, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stage, err := c.stages.GetByID(ctx, stageID)
	if err != nil {
		return Column{}, err
	}
	leads, err := c.leads.List(ctx, repository.LeadFilter{StageID: stageID})
	if err != nil {
		return Column{}, err
	}
	return buildColumn(*stage, leads), nil
}

func buildColumn(stage domain.Stage, leads []domain.Lead) Column {
	col := Column{Stage: stage, Leads: []domain.Lead{}}
	for _, lead := range leads {
		if lead.StageID != stage.ID {
			continue
		}
		col.Leads = append(col.Leads, lead)
		col.TotalValue += lead.Value
	}
	col.Count = len(col.Leads)
	return col
}
