package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/salesboard/api/transport"
	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/pkg/httpcontext"
	appLogger "github.com/fastygo/salesboard/pkg/logger"
	"github.com/fastygo/salesboard/repository"
)

const dateLayout = "2006-01-02"

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.ByteString("path", ctx.Path()), zap.Error(err))
	}

	var meta interface{}
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Field != "" {
		meta = map[string]string{"field": dErr.Field}
	}
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), meta))
}

// decode unmarshals the request body into dst and answers 400 on failure.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err))
		return false
	}
	return true
}

// pathID returns the {id} route parameter and answers 400 when it is missing.
func (h baseHandler) pathID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if strings.TrimSpace(id) == "" {
		h.respondError(ctx, domain.FieldError("id", "is required"))
		return "", false
	}
	return id, true
}

// requestLogger scopes the handler logger to the request ID and actor in ctx.
func (h baseHandler) requestLogger(ctx context.Context) *zap.Logger {
	return appLogger.WithRequestID(ctx, h.logger).With(zap.String("actor", httpcontext.Actor(ctx)))
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeStageInUse):
		return http.StatusConflict, string(domain.ErrCodeStageInUse)
	case domain.IsDomainError(err, domain.ErrCodePrecondition):
		return http.StatusPreconditionFailed, string(domain.ErrCodePrecondition)
	case domain.IsDomainError(err, domain.ErrCodeEmpty):
		return http.StatusNotFound, string(domain.ErrCodeEmpty)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}

// parseLeadFilter reads the lead search query arguments.
func parseLeadFilter(args *fasthttp.Args) (repository.LeadFilter, error) {
	filter := repository.LeadFilter{
		Search:  strings.TrimSpace(string(args.Peek("q"))),
		StageID: string(args.Peek("stage_id")),
		ListID:  string(args.Peek("list_id")),
	}

	var err error
	if filter.MinValue, err = floatArg(args, "min_value"); err != nil {
		return filter, err
	}
	if filter.MaxValue, err = floatArg(args, "max_value"); err != nil {
		return filter, err
	}
	if filter.CreatedFrom, err = dateArg(args, "created_from"); err != nil {
		return filter, err
	}
	if filter.CreatedTo, err = dateArg(args, "created_to"); err != nil {
		return filter, err
	}
	if filter.Limit, err = intArg(args, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = intArg(args, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func floatArg(args *fasthttp.Args, key string) (*float64, error) {
	raw := string(args.Peek(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.FieldError(key, "must be a number")
	}
	return &v, nil
}

func dateArg(args *fasthttp.Args, key string) (*time.Time, error) {
	raw := string(args.Peek(key))
	if raw == "" {
		return nil, nil
	}
	v, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, domain.FieldError(key, "must be a date in YYYY-MM-DD form")
	}
	return &v, nil
}

func intArg(args *fasthttp.Args, key string) (int, error) {
	raw := string(args.Peek(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, domain.FieldError(key, "must be a non-negative integer")
	}
	return v, nil
}
