package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/archscope/archscope/pkg/aictx"
	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/config"
	"github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/graph"
	"github.com/archscope/archscope/pkg/httputil"
	"github.com/archscope/archscope/pkg/pipeline"
)

// Handlers manages HTTP request handling for the introspection server.
type Handlers struct {
	logger *log.Logger
	cfg    *config.Config
	source *GraphSource
	runner *pipeline.Runner
}

// NewHandlers creates a Handlers instance.
func NewHandlers(cfg *config.Config, source *GraphSource, runner *pipeline.Runner, logger *log.Logger) *Handlers {
	return &Handlers{
		logger: logger,
		cfg:    cfg,
		source: source,
		runner: runner,
	}
}

// RegisterRoutes sets up the routing for the introspection server.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	// Health check endpoint (unversioned)
	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", h.handleGraph)
		r.Get("/graph/summary", h.handleGraphSummary)
		r.Get("/export/{format}", h.handleExport)
		r.Get("/context", h.handleContext)
		r.Get("/pack", h.handlePack)
		r.Post("/refresh", h.handleRefresh)
	})
}

// handleHealth confirms the server is responsive.
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleGraph serves the full serialized graph document. The marshaled
// bytes are cached per source and graph version; a refresh invalidates
// the entry.
func (h *Handlers) handleGraph(w http.ResponseWriter, r *http.Request) {
	g := h.source.Graph()
	key := h.graphKey(g)

	if data, hit, err := h.runner.Cache.Get(r.Context(), key); err == nil && hit {
		h.writeJSONBytes(w, data)
		return
	}

	data, err := graph.MarshalGraph(g)
	if err != nil {
		h.logger.Error("serialize graph", "error", err)
		h.respondError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize graph"))
		return
	}
	_ = h.runner.Cache.Set(r.Context(), key, data, h.cfg.Server.CacheTTL)

	h.writeJSONBytes(w, data)
}

// graphSummary is the response shape of /api/graph/summary.
type graphSummary struct {
	Description string         `json:"description"`
	Version     uint64         `json:"version"`
	NodeCount   int            `json:"node_count"`
	EdgeCount   int            `json:"edge_count"`
	LayerCount  int            `json:"layer_count"`
	Layers      map[string]int `json:"layers"`
}

// handleGraphSummary serves aggregate counts for the current graph.
func (h *Handlers) handleGraphSummary(w http.ResponseWriter, r *http.Request) {
	g := h.source.Graph()

	layers := make(map[string]int)
	for _, n := range g.Nodes() {
		layers[n.Layer.String()]++
	}

	meta := g.Meta()
	h.respondData(w, http.StatusOK, graphSummary{
		Description: meta.Description,
		Version:     meta.Version,
		NodeCount:   g.NodeCount(),
		EdgeCount:   g.EdgeCount(),
		LayerCount:  g.LayerCount(),
		Layers:      layers,
	})
}

// contentTypes maps export formats to their response content types.
var contentTypes = map[string]string{
	pipeline.FormatDOT:     "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatMermaid: "text/plain; charset=utf-8",
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatPDF:     "application/pdf",
}

// handleExport serves one export artifact, produced through the cached
// pipeline. Pass ?refresh=1 to bypass cached artifacts.
func (h *Handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	opts := pipeline.Options{
		Formats: []string{format},
		Style:   h.cfg.VizStyle(),
		Refresh: r.URL.Query().Get("refresh") == "1",
		Logger:  h.logger,
	}
	result, err := h.runner.Execute(r.Context(), h.source.Graph(), opts)
	if err != nil {
		h.logger.Error("export failed", "format", format, "error", err)
		h.respondError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "export failed"))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Graph-Hash", result.GraphHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleContext serves the AI context document for the current graph.
func (h *Handlers) handleContext(w http.ResponseWriter, r *http.Request) {
	c := aictx.Build(h.source.Graph(), aictx.Options{
		Rules: h.cfg.DependencyRules(),
	})
	data, err := aictx.MarshalContext(c)
	if err != nil {
		h.logger.Error("serialize context", "error", err)
		h.respondError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize context"))
		return
	}
	h.writeJSONBytes(w, data)
}

// handlePack serves the full agent pack, including configured docs.
func (h *Handlers) handlePack(w http.ResponseWriter, r *http.Request) {
	pack := aictx.BuildPack(r.Context(), h.source.Graph(), aictx.PackOptions{
		Context:  aictx.Options{Rules: h.cfg.DependencyRules()},
		DocPaths: h.cfg.DocPaths(),
		Client:   httputil.NewClient(nil, nil),
	})
	data, err := aictx.MarshalPack(pack)
	if err != nil {
		h.logger.Error("serialize pack", "error", err)
		h.respondError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize pack"))
		return
	}
	h.writeJSONBytes(w, data)
}

// handleRefresh reloads the graph from its source and invalidates the
// cached graph document.
func (h *Handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	g, err := h.source.Refresh()
	if err != nil {
		h.logger.Error("refresh failed", "error", err)
		h.respondError(w, http.StatusInternalServerError,
			errors.Wrap(errors.ErrCodeInternal, err, "refresh failed: %v", err))
		return
	}
	_ = h.runner.Cache.Delete(r.Context(), h.graphKey(g))

	h.logger.Info("graph refreshed",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())
	h.respondData(w, http.StatusOK, map[string]int{
		"node_count": g.NodeCount(),
		"edge_count": g.EdgeCount(),
	})
}

// graphKey identifies the cached graph document for the current source.
func (h *Handlers) graphKey(g *graph.Graph) string {
	return h.runner.Keyer.GraphKey(h.source.Name(), cache.GraphKeyOpts{
		Version: g.Meta().Version,
	})
}

// apiResponse is the envelope for JSON endpoints that don't serve raw
// documents.
type apiResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Code   string      `json:"code,omitempty"`
}

// respondData sends a standardized JSON success response.
func (h *Handlers) respondData(w http.ResponseWriter, statusCode int, data interface{}) {
	h.respondJSON(w, statusCode, apiResponse{Status: "success", Data: data})
}

// respondError sends a standardized JSON error response. The machine
// readable code is included when err carries one.
func (h *Handlers) respondError(w http.ResponseWriter, statusCode int, err error) {
	h.respondJSON(w, statusCode, apiResponse{
		Status: "error",
		Error:  errors.UserMessage(err),
		Code:   string(errors.GetCode(err)),
	})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, statusCode int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

// writeJSONBytes serves a pre-marshaled JSON document.
func (h *Handlers) writeJSONBytes(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
