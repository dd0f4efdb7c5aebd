package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/salesboard/api/transport"
	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/pkg/httpcontext"
	leadUC "github.com/fastygo/salesboard/usecase/lead"
	"github.com/fastygo/salesboard/usecase/pipeline"
)

type LeadHandler struct {
	baseHandler
	pipeline *pipeline.Controller
	uc       *leadUC.UseCase
}

func NewLeadHandler(ctrl *pipeline.Controller, uc *leadUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		baseHandler: newBaseHandler(adapter, logger),
		pipeline:    ctrl,
		uc:          uc,
	}
}

// @Summary Search leads
// @Tags leads
// @Router /api/v1/leads [get]
func (h *LeadHandler) Search(ctx *fasthttp.RequestCtx) {
	filter, err := parseLeadFilter(ctx.QueryArgs())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	leads, err := h.uc.Search(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(leads, map[string]int{"count": len(leads)}))
}

// @Summary Add lead
// @Tags leads
// @Router /api/v1/leads [post]
func (h *LeadHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.LeadCreateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	lead, err := h.pipeline.AddLead(stdCtx, pipeline.NewLead{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Value:   req.Value,
		StageID: req.StageID,
		ListID:  req.ListID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.requestLogger(stdCtx).Info("lead created via api", zap.String("lead_id", lead.ID))
	h.respondSuccess(ctx, http.StatusCreated, lead)
}

// @Summary Get lead
// @Tags leads
// @Router /api/v1/leads/{id} [get]
func (h *LeadHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	lead, err := h.pipeline.Lead(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, lead)
}

// @Summary Update lead
// @Tags leads
// @Router /api/v1/leads/{id} [patch]
func (h *LeadHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.LeadUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	lead, err := h.pipeline.UpdateLead(stdCtx, id, domain.LeadPatch{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Value:   req.Value,
		StageID: req.StageID,
		ListID:  req.ListID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, lead)
}

// @Summary List lead lists
// @Tags lists
// @Router /api/v1/lists [get]
func (h *LeadHandler) Lists(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	lists, err := h.uc.Lists(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, lists)
}
