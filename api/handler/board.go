package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/salesboard/pkg/httpcontext"
	"github.com/fastygo/salesboard/usecase/pipeline"
)

type BoardHandler struct {
	baseHandler
	pipeline *pipeline.Controller
}

func NewBoardHandler(ctrl *pipeline.Controller, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		pipeline:    ctrl,
	}
}

// @Summary Board with per-stage totals
// @Tags board
// @Router /api/v1/board [get]
func (h *BoardHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if stageID := string(ctx.QueryArgs().Peek("stage_id")); stageID != "" {
		col, err := h.pipeline.Column(stdCtx, stageID)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		h.respondSuccess(ctx, http.StatusOK, col)
		return
	}

	board, err := h.pipeline.Board(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board)
}
