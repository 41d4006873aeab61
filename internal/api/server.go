package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/wj-stack/NetFlow/internal/audit"
	"github.com/wj-stack/NetFlow/internal/catalog"
	"github.com/wj-stack/NetFlow/internal/metadata"
	"github.com/wj-stack/NetFlow/internal/store"
	"github.com/wj-stack/NetFlow/internal/strategy"
	"github.com/wj-stack/NetFlow/internal/telemetry"
	"github.com/wj-stack/NetFlow/internal/validation"
	"github.com/wj-stack/NetFlow/internal/webhook"
)

// Server wires the strategy store, the metadata directory and the field
// catalog into the HTTP API the configurator UI talks to.
type Server struct {
	store          store.Store
	metadata       *metadata.Directory
	adminAPIKey    string
	rateLimitPerIP int
	logger         zerolog.Logger
	audit          audit.Sink
	webhooks       *webhook.Dispatcher
}

// NewServer creates an API server over the given collaborators.
func NewServer(st store.Store, dir *metadata.Directory, adminKey string, rateLimitPerIP int, logger zerolog.Logger) *Server {
	return &Server{
		store:          st,
		metadata:       dir,
		adminAPIKey:    adminKey,
		rateLimitPerIP: rateLimitPerIP,
		logger:         logger,
	}
}

// SetAudit attaches an audit sink. Administrative changes are recorded
// to it and served from GET /v1/audit.
func (s *Server) SetAudit(sink audit.Sink) { s.audit = sink }

// SetWebhooks attaches a change-notification dispatcher. Every
// successful write is announced to the configured engine endpoint.
func (s *Server) SetWebhooks(d *webhook.Dispatcher) { s.webhooks = d }

func (s *Server) recordAudit(r *http.Request, action, resourceID, status string) {
	if s.audit != nil {
		s.audit.Record(audit.BuildEvent(r, action, resourceID, status))
	}
}

func (s *Server) notify(r *http.Request, eventType, strategyID string) {
	if s.webhooks != nil {
		s.webhooks.Dispatch(webhook.Event{
			Type:       eventType,
			StrategyID: strategyID,
			RequestID:  middleware.GetReqID(r.Context()),
		})
	}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(telemetry.Middleware)
	r.Use(s.logRequests)

	// health
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		// read surface
		r.Get("/catalog", s.handleCatalog)
		r.Get("/strategies", s.handleListStrategies)
		r.Get("/strategies/export", s.handleExportStrategies)
		r.Get("/strategies/{id}", s.handleGetStrategy)
		r.Get("/strategies/{id}/form", s.handleGetStrategyForm)
		r.Get("/metadata", s.handleListMetadata)

		// write surface (admin, rate limited)
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(s.rateLimitPerIP, time.Minute))
			r.Post("/strategies", s.authAdmin(s.handleSaveStrategy))
			r.Post("/strategies/import", s.authAdmin(s.handleImportStrategies))
			r.Post("/strategies/examples", s.authAdmin(s.handleLoadExamples))
			r.Delete("/strategies/{id}", s.authAdmin(s.handleDeleteStrategy))
			r.Post("/metadata", s.authAdmin(s.handleUpsertMetadata))
			r.Delete("/metadata/{id}", s.authAdmin(s.handleDeleteMetadata))
			r.Get("/audit", s.authAdmin(s.handleAudit))
		})
	})

	return r
}

// ---- catalog ----

type operatorView struct {
	Operator string         `json:"operator"`
	Widget   catalog.Widget `json:"widget"`
}

type fieldView struct {
	Name            string         `json:"name"`
	Label           string         `json:"label"`
	DefaultOperator string         `json:"defaultOperator"`
	Operators       []operatorView `json:"operators"`
}

type catalogResponse struct {
	Fields        []fieldView            `json:"fields"`
	StrategyTypes []catalog.StrategyKind `json:"strategyTypes"`
}

// handleCatalog serves the static field catalog: per-field legal
// operators, the default operator and the resolved value widget per
// (field, operator) pair. The form UI is driven entirely by this.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	resp := catalogResponse{StrategyTypes: catalog.StrategyKinds()}
	for _, f := range catalog.Fields() {
		view := fieldView{
			Name:            f.Name,
			Label:           f.Label,
			DefaultOperator: string(catalog.DefaultOperator(f.Name)),
		}
		for _, op := range catalog.Operators(f.Name) {
			view.Operators = append(view.Operators, operatorView{
				Operator: string(op),
				Widget:   catalog.WidgetFor(f.Name, op),
			})
		}
		resp.Fields = append(resp.Fields, view)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- strategies ----

type saveResponse struct {
	OK         bool   `json:"ok"`
	StrategyID string `json:"strategy_id"`
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		InternalError(w, r, "failed to list strategies")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleExportStrategies serves the canonical JSON document list with an
// ETag so pollers can cheaply detect changes.
func (s *Server) handleExportStrategies(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		InternalError(w, r, "failed to list strategies")
		return
	}

	blob, err := json.Marshal(docs)
	if err != nil {
		InternalError(w, r, "failed to encode strategies")
		return
	}

	etag := etagFor(blob)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	_, _ = w.Write(blob)
}

func (s *Server) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFoundError(w, r, "strategy not found")
			return
		}
		InternalError(w, r, "failed to load strategy")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleGetStrategyForm decodes a stored document into its editable form
// representation, the first step of the edit flow.
func (s *Server) handleGetStrategyForm(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFoundError(w, r, "strategy not found")
			return
		}
		InternalError(w, r, "failed to load strategy")
		return
	}
	writeJSON(w, http.StatusOK, strategy.Decode(*doc))
}

// handleSaveStrategy accepts the editable form representation, validates
// it, encodes it to the canonical document and upserts it keyed by
// strategy id. A form without an id gets a freshly generated one.
func (s *Server) handleSaveStrategy(w http.ResponseWriter, r *http.Request) {
	var form strategy.FormState
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON")
		return
	}

	if strings.TrimSpace(form.ID) == "" {
		form.ID = strategy.NewFormState().ID
	}

	if result := validation.ValidateForm(form); !result.Valid {
		s.recordAudit(r, audit.ActionStrategySave, form.ID, audit.StatusRejected)
		ValidationError(w, r, "strategy validation failed", result.Errors)
		return
	}

	doc := strategy.Encode(form)
	if err := s.store.Upsert(r.Context(), doc); err != nil {
		InternalError(w, r, "failed to save strategy")
		return
	}
	s.updateStoreGauge(r)
	s.recordAudit(r, audit.ActionStrategySave, doc.StrategyID(), audit.StatusOK)
	s.notify(r, webhook.EventStrategySaved, doc.StrategyID())

	writeJSON(w, http.StatusOK, saveResponse{OK: true, StrategyID: doc.StrategyID()})
}

// handleDeleteStrategy removes a strategy. Deletion is irreversible;
// obtaining confirmation is the caller's duty, the API just deletes.
func (s *Server) handleDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		InternalError(w, r, "failed to delete strategy")
		return
	}
	s.updateStoreGauge(r)
	s.recordAudit(r, audit.ActionStrategyDelete, id, audit.StatusOK)
	s.notify(r, webhook.EventStrategyDeleted, id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleImportStrategies swaps the whole collection for the posted
// canonical document list, in order.
func (s *Server) handleImportStrategies(w http.ResponseWriter, r *http.Request) {
	var docs []strategy.PolicyDocument
	if err := json.NewDecoder(r.Body).Decode(&docs); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON")
		return
	}
	for i, doc := range docs {
		if strings.TrimSpace(doc.StrategyID()) == "" {
			ValidationError(w, r, "strategy validation failed", map[string]string{
				"strategies[" + strconv.Itoa(i) + "]": "strategy_id is required",
			})
			return
		}
	}

	if err := s.store.Replace(r.Context(), docs); err != nil {
		InternalError(w, r, "failed to import strategies")
		return
	}
	s.updateStoreGauge(r)
	s.recordAudit(r, audit.ActionStrategyImport, "", audit.StatusOK)
	s.notify(r, webhook.EventStrategiesReplaced, "")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "imported": len(docs)})
}

func (s *Server) handleLoadExamples(w http.ResponseWriter, r *http.Request) {
	examples := strategy.ExampleDocuments()
	for _, doc := range examples {
		if err := s.store.Upsert(r.Context(), doc); err != nil {
			InternalError(w, r, "failed to load examples")
			return
		}
	}
	s.updateStoreGauge(r)
	s.recordAudit(r, audit.ActionLoadExamples, "", audit.StatusOK)
	for _, doc := range examples {
		s.notify(r, webhook.EventStrategySaved, doc.StrategyID())
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "loaded": len(examples)})
}

// handleAudit serves the most recent administrative actions, newest
// first. Optional ?limit caps the count.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeJSON(w, http.StatusOK, []audit.Event{})
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			BadRequestError(w, r, ErrCodeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	events := s.audit.Recent(limit)
	if events == nil {
		events = []audit.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) updateStoreGauge(r *http.Request) {
	if docs, err := s.store.List(r.Context()); err == nil {
		telemetry.StoredStrategies.Set(float64(len(docs)))
	}
}

// ---- metadata ----

func (s *Server) handleListMetadata(w http.ResponseWriter, r *http.Request) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		category := metadata.Category(cat)
		if !category.Known() {
			BadRequestError(w, r, ErrCodeInvalidCategory, "unknown metadata category")
			return
		}
		writeJSON(w, http.StatusOK, s.metadata.ListByCategory(category))
		return
	}
	writeJSON(w, http.StatusOK, s.metadata.List())
}

func (s *Server) handleUpsertMetadata(w http.ResponseWriter, r *http.Request) {
	var entry metadata.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON")
		return
	}
	if strings.TrimSpace(entry.Label) == "" || strings.TrimSpace(entry.Value) == "" {
		BadRequestError(w, r, ErrCodeMissingField, "label and value are required")
		return
	}

	saved, err := s.metadata.Upsert(entry)
	if err != nil {
		if entry.Category.Known() {
			BadRequestError(w, r, ErrCodeDuplicateValue, err.Error())
			return
		}
		BadRequestError(w, r, ErrCodeInvalidCategory, err.Error())
		return
	}
	telemetry.MetadataEntries.Set(float64(len(s.metadata.List())))
	s.recordAudit(r, audit.ActionMetadataUpsert, saved.ID, audit.StatusOK)
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.metadata.Delete(id)
	telemetry.MetadataEntries.Set(float64(len(s.metadata.List())))
	s.recordAudit(r, audit.ActionMetadataDelete, id, audit.StatusOK)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ---- middleware ----

func (s *Server) authAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
		if got == "" {
			UnauthorizedError(w, r, "missing bearer token")
			return
		}
		// constant-time compare
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.adminAPIKey)) != 1 {
			ForbiddenError(w, r, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
