package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/salesboard/api/transport"
	"github.com/fastygo/salesboard/pkg/httpcontext"
	"github.com/fastygo/salesboard/usecase/pipeline"
)

// DragHandler exposes the drag gesture as four commands. The in-flight
// record is shared by every caller of the board.
type DragHandler struct {
	baseHandler
	pipeline *pipeline.Controller
}

func NewDragHandler(ctrl *pipeline.Controller, adapter *httpcontext.Adapter, logger *zap.Logger) *DragHandler {
	return &DragHandler{
		baseHandler: newBaseHandler(adapter, logger),
		pipeline:    ctrl,
	}
}

// @Summary Start dragging a lead
// @Tags drag
// @Router /api/v1/drag/start [post]
func (h *DragHandler) Start(ctx *fasthttp.RequestCtx) {
	var req transport.DragStartRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.pipeline.StartDrag(stdCtx, req.LeadID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"lead_id": req.LeadID})
}

// @Summary Hover over a stage
// @Tags drag
// @Router /api/v1/drag/over [post]
func (h *DragHandler) Over(ctx *fasthttp.RequestCtx) {
	var req transport.DragStageRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, map[string]bool{
		"accepts": h.pipeline.DragOver(stdCtx, req.StageID),
	})
}

// @Summary Drop the dragged lead
// @Tags drag
// @Router /api/v1/drag/drop [post]
func (h *DragHandler) Drop(ctx *fasthttp.RequestCtx) {
	var req transport.DragStageRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.pipeline.Drop(stdCtx, req.StageID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if result.Moved {
		h.requestLogger(stdCtx).Info("lead dropped",
			zap.String("lead_id", result.LeadID),
			zap.String("to", result.ToStage),
		)
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Cancel the drag
// @Tags drag
// @Router /api/v1/drag/cancel [post]
func (h *DragHandler) Cancel(ctx *fasthttp.RequestCtx) {
	h.pipeline.CancelDrag()
	h.respondSuccess(ctx, http.StatusOK, map[string]bool{"cancelled": true})
}
