package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/usecase/pipeline"
)

type stubBoard struct {
	board pipeline.Board
	err   error
}

func (s *stubBoard) Board(context.Context) (pipeline.Board, error) {
	return s.board, s.err
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name, stage string) (float64, bool) {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "stage" && l.GetValue() == stage {
					return m.GetGauge().GetValue(), true
				}
			}
			if stage == "" {
				return m.GetGauge().GetValue(), true
			}
		}
	}
	return 0, false
}

func TestRefreshPublishesBoard(t *testing.T) {
	reg := prometheus.NewRegistry()
	board := &stubBoard{board: pipeline.Board{
		Columns: []pipeline.Column{
			{Stage: domain.Stage{ID: "new", Title: "New lead"}, Count: 2, TotalValue: 18000},
			{Stage: domain.Stage{ID: "closed", Title: "Closed won"}, Count: 1, TotalValue: 120000},
		},
		LeadCount:  3,
		TotalValue: 138000,
	}}
	m := New(board, reg, time.Minute, nil)
	fixed := time.Date(2023, 10, 5, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	m.Refresh(context.Background())

	status := m.GetStatus()
	assert.True(t, status.Healthy)
	assert.Equal(t, 3, status.Leads)
	assert.Equal(t, 138000.0, status.TotalValue)
	assert.Equal(t, fixed, status.LastCheck)
	require.Len(t, status.Stages, 2)
	assert.Equal(t, "Closed won", status.Stages[1].Title)

	stages, ok := gaugeValue(t, reg, "pipeline_stages", "")
	require.True(t, ok)
	assert.Equal(t, 2.0, stages)
	leads, ok := gaugeValue(t, reg, "pipeline_stage_leads", "new")
	require.True(t, ok)
	assert.Equal(t, 2.0, leads)
	value, ok := gaugeValue(t, reg, "pipeline_stage_value", "closed")
	require.True(t, ok)
	assert.Equal(t, 120000.0, value)
}

func TestRefreshDropsDeletedStages(t *testing.T) {
	reg := prometheus.NewRegistry()
	board := &stubBoard{board: pipeline.Board{Columns: []pipeline.Column{
		{Stage: domain.Stage{ID: "new"}},
		{Stage: domain.Stage{ID: "proposal"}},
	}}}
	m := New(board, reg, time.Minute, nil)
	m.Refresh(context.Background())

	board.board.Columns = board.board.Columns[:1]
	m.Refresh(context.Background())

	_, ok := gaugeValue(t, reg, "pipeline_stage_leads", "proposal")
	assert.False(t, ok)
}

func TestRefreshFailureKeepsLastSample(t *testing.T) {
	board := &stubBoard{board: pipeline.Board{LeadCount: 5}}
	m := New(board, prometheus.NewRegistry(), time.Minute, nil)
	m.Refresh(context.Background())

	board.err = errors.New("boom")
	m.Refresh(context.Background())

	status := m.GetStatus()
	assert.False(t, status.Healthy)
	assert.False(t, m.IsHealthy())
	assert.Equal(t, 5, status.Leads)
	assert.Equal(t, "boom", status.LastError)
}

func TestStartStop(t *testing.T) {
	m := New(&stubBoard{}, prometheus.NewRegistry(), time.Second, nil)
	m.Start(context.Background())
	assert.True(t, m.IsHealthy())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, m.Stop(ctx))
}
