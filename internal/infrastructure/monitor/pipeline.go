package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/salesboard/usecase/pipeline"
)

// BoardReader is the read side of the pipeline controller.
type BoardReader interface {
	Board(ctx context.Context) (pipeline.Board, error)
}

// Monitor samples the board on a cron schedule, publishes per-stage gauges
// and keeps the last sample for the health endpoint.
type Monitor struct {
	board    BoardReader
	interval time.Duration
	logger   *zap.Logger
	cron     *cron.Cron
	now      func() time.Time

	stageCount prometheus.Gauge
	stageLeads *prometheus.GaugeVec
	stageValue *prometheus.GaugeVec

	mu     sync.RWMutex
	status Status
}

func New(board BoardReader, reg prometheus.Registerer, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval < time.Second {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)
	m := &Monitor{
		board:    board,
		interval: interval,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
		now:      time.Now,
		stageCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pipeline_stages",
			Help: "Number of stages on the board",
		}),
		stageLeads: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pipeline_stage_leads",
			Help: "Leads currently in each stage",
		}, []string{"stage"}),
		stageValue: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pipeline_stage_value",
			Help: "Summed deal value of each stage",
		}, []string{"stage"}),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := m.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		m.Refresh(ctx)
	}); err != nil {
		logger.Error("failed to schedule pipeline sampler", zap.Error(err))
	}
	return m
}

// Start takes a first sample and then runs the schedule in the background.
func (m *Monitor) Start(ctx context.Context) {
	m.Refresh(ctx)
	m.cron.Start()
	m.logger.Info("pipeline monitor started", zap.Duration("interval", m.interval))
}

// Stop halts the schedule and waits for a running sample to finish.
func (m *Monitor) Stop(ctx context.Context) error {
	done := m.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh samples the board once.
func (m *Monitor) Refresh(ctx context.Context) {
	board, err := m.board.Board(ctx)
	if err != nil {
		m.logger.Warn("pipeline sample failed", zap.Error(err))
		m.mu.Lock()
		m.status.Healthy = false
		m.status.LastCheck = m.now()
		m.status.LastError = err.Error()
		m.mu.Unlock()
		return
	}

	status := Status{
		Healthy:    true,
		Stages:     make([]StageStatus, 0, len(board.Columns)),
		Leads:      board.LeadCount,
		TotalValue: board.TotalValue,
		LastCheck:  m.now(),
	}

	m.stageLeads.Reset()
	m.stageValue.Reset()
	m.stageCount.Set(float64(len(board.Columns)))
	for _, col := range board.Columns {
		m.stageLeads.WithLabelValues(col.Stage.ID).Set(float64(col.Count))
		m.stageValue.WithLabelValues(col.Stage.ID).Set(col.TotalValue)
		status.Stages = append(status.Stages, StageStatus{
			StageID:    col.Stage.ID,
			Title:      col.Stage.Title,
			Leads:      col.Count,
			TotalValue: col.TotalValue,
		})
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status := m.status
	status.Stages = append([]StageStatus(nil), m.status.Stages...)
	return status
}
