package handler

import (
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/salesboard/pkg/httpcontext"
	"github.com/fastygo/salesboard/usecase/export"
)

// ExportRecorder counts served exports.
type ExportRecorder interface {
	RecordExport(source string)
}

type ExportHandler struct {
	baseHandler
	exporter *export.Exporter
	recorder ExportRecorder
}

func NewExportHandler(exporter *export.Exporter, recorder ExportRecorder, adapter *httpcontext.Adapter, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		exporter:    exporter,
		recorder:    recorder,
	}
}

// @Summary Export a lead list as CSV
// @Tags export
// @Router /api/v1/lists/{id}/export [get]
func (h *ExportHandler) List(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	file, err := h.exporter.ExportList(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.requestLogger(stdCtx).Info("list exported", zap.String("list_id", id), zap.Int("rows", file.Rows))
	h.respondFile(ctx, "list", file)
}

// @Summary Export filtered leads as CSV
// @Tags export
// @Router /api/v1/leads/export [get]
func (h *ExportHandler) Leads(ctx *fasthttp.RequestCtx) {
	filter, err := parseLeadFilter(ctx.QueryArgs())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	file, err := h.exporter.ExportLeads(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondFile(ctx, "search", file)
}

func (h *ExportHandler) respondFile(ctx *fasthttp.RequestCtx, source string, file *export.File) {
	if h.recorder != nil {
		h.recorder.RecordExport(source)
	}
	ctx.Response.Header.SetContentType(export.ContentType)
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(file.Content)
}
