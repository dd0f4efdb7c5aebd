package pipeline

import (
	"context"

	"go.uber.org/zap"
)

// dragState records the single in-flight lead.
type dragState struct {
	leadID string
}

func (d *dragState) active() bool { return d.leadID != "" }

func (d *dragState) clear() { d.leadID = "" }

// DropResult describes the outcome of a drop or move.
type DropResult struct {
	LeadID    string `json:"lead_id,omitempty"`
	FromStage string `json:"from_stage,omitempty"`
	ToStage   string `json:"to_stage,omitempty"`
	Moved     bool   `json:"moved"`
}

// StartDrag marks leadID as in flight, replacing any previous record.
func (c *Controller) StartDrag(ctx context.Context, leadID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.leads.GetByID(ctx, leadID); err != nil {
		return err
	}
	if c.drag.active() && c.drag.leadID != leadID {
		c.logger.Debug("drag replaced", zap.String("previous", c.drag.leadID), zap.String("lead_id", leadID))
	}
	c.drag.leadID = leadID
	return nil
}

// DragOver acknowledges a pointer over stageID. It never mutates state and
// reports whether a drop there would be accepted.
func (c *Controller) DragOver(ctx context.Context, stageID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.drag.active() {
		return false
	}
	_, err := c.stages.GetByID(ctx, stageID)
	return err == nil
}

// Drop commits the in-flight lead to stageID. Dropping on the lead's own
// stage changes nothing. The in-flight record is cleared whatever the outcome.
func (c *Controller) Drop(ctx context.Context, stageID string) (DropResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.drag.active() {
		return DropResult{ToStage: stageID}, nil
	}
	leadID := c.drag.leadID
	defer c.drag.clear()

	result, err := c.move(ctx, leadID, stageID)
	if err != nil {
		c.logger.Warn("drop rejected", zap.String("lead_id", leadID), zap.String("stage_id", stageID), zap.Error(err))
		return result, err
	}
	return result, nil
}

// CancelDrag clears the in-flight record. Calling it with nothing in flight is a no-op.
func (c *Controller) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag.clear()
}

// InFlight returns the lead currently being dragged.
func (c *Controller) InFlight() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drag.leadID, c.drag.active()
}
