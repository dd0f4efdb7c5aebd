package router

import (
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"github.com/valyala/fasthttp/pprofhandler"

	apiHandler "github.com/fastygo/salesboard/api/handler"
)

type Handlers struct {
	Stage  *apiHandler.StageHandler
	Lead   *apiHandler.LeadHandler
	Drag   *apiHandler.DragHandler
	Board  *apiHandler.BoardHandler
	Export *apiHandler.ExportHandler
	Health *apiHandler.HealthHandler
}

// Options toggles the operational endpoints.
type Options struct {
	Metrics prometheus.Gatherer
	Pprof   bool
}

// New builds the route table. authMiddleware wraps every mutating route.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler, opts Options) *router.Router {
	r := router.New()
	r.SaveMatchedRoutePath = true

	r.GET("/health", handlers.Health.Check)
	if opts.Metrics != nil {
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}
	if opts.Pprof {
		r.GET("/debug/pprof/{profile:*}", pprofhandler.PprofHandler)
	}

	v1 := r.Group("/api/v1")

	v1.GET("/stages", handlers.Stage.List)
	v1.POST("/stages", authMiddleware(handlers.Stage.Create))
	v1.POST("/stages/reorder", authMiddleware(handlers.Stage.Reorder))
	v1.PATCH("/stages/{id}", authMiddleware(handlers.Stage.Update))
	v1.DELETE("/stages/{id}", authMiddleware(handlers.Stage.Delete))

	v1.GET("/board", handlers.Board.Get)

	v1.GET("/leads", handlers.Lead.Search)
	v1.GET("/leads/export", handlers.Export.Leads)
	v1.POST("/leads", authMiddleware(handlers.Lead.Create))
	v1.GET("/leads/{id}", handlers.Lead.Get)
	v1.PATCH("/leads/{id}", authMiddleware(handlers.Lead.Update))

	v1.POST("/drag/start", authMiddleware(handlers.Drag.Start))
	v1.POST("/drag/over", authMiddleware(handlers.Drag.Over))
	v1.POST("/drag/drop", authMiddleware(handlers.Drag.Drop))
	v1.POST("/drag/cancel", authMiddleware(handlers.Drag.Cancel))

	v1.GET("/lists", handlers.Lead.Lists)
	v1.GET("/lists/{id}/export", handlers.Export.List)

	return r
}

// Chain wraps the router handler; the first middleware is the outermost.
func Chain(r *router.Router, middlewares ...func(fasthttp.RequestHandler) fasthttp.RequestHandler) fasthttp.RequestHandler {
	h := r.Handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
