package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/salesboard/api/transport"
	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/pkg/httpcontext"
	"github.com/fastygo/salesboard/usecase/pipeline"
)

type StageHandler struct {
	baseHandler
	pipeline *pipeline.Controller
}

func NewStageHandler(ctrl *pipeline.Controller, adapter *httpcontext.Adapter, logger *zap.Logger) *StageHandler {
	return &StageHandler{
		baseHandler: newBaseHandler(adapter, logger),
		pipeline:    ctrl,
	}
}

// @Summary List stages
// @Tags stages
// @Router /api/v1/stages [get]
func (h *StageHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stages, err := h.pipeline.Stages(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stages)
}

// @Summary Add stage
// @Tags stages
// @Router /api/v1/stages [post]
func (h *StageHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.StageCreateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stage, err := h.pipeline.AddStage(stdCtx, req.Title)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.requestLogger(stdCtx).Info("stage created via api", zap.String("stage_id", stage.ID))
	h.respondSuccess(ctx, http.StatusCreated, stage)
}

// @Summary Update stage
// @Tags stages
// @Router /api/v1/stages/{id} [patch]
func (h *StageHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.StageUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stage, err := h.pipeline.UpdateStage(stdCtx, id, domain.StagePatch{Title: req.Title, Color: req.Color})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stage)
}

// @Summary Delete stage
// @Tags stages
// @Router /api/v1/stages/{id} [delete]
func (h *StageHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.pipeline.RequestDeleteStage(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.requestLogger(stdCtx).Info("stage deleted via api", zap.String("stage_id", id))
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"deleted": id})
}

// @Summary Reorder stage
// @Tags stages
// @Router /api/v1/stages/reorder [post]
func (h *StageHandler) Reorder(ctx *fasthttp.RequestCtx) {
	var req transport.StageReorderRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moved, err := h.pipeline.ReorderStage(stdCtx, req.Index, domain.Direction(req.Direction))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	stages, err := h.pipeline.Stages(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"moved":  moved,
		"stages": stages,
	})
}
