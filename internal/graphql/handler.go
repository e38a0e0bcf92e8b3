package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	graphqlgo "github.com/graph-gophers/graphql-go"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
)

const (
	// DefaultPath: путь GraphQL-эндпоинта по умолчанию.
	DefaultPath = "/graphql"

	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

// TimelineReader отдаёт журнал событий заказа.
type TimelineReader interface {
	Timeline(ctx context.Context, orderID string) ([]domain.TimelineEvent, error)
}

// Request: тело GraphQL-запроса по HTTP.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type timelineEventDTO struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Reason   string    `json:"reason,omitempty"`
	Occurred time.Time `json:"occurred"`
}

type timelineResponse struct {
	OrderID string             `json:"orderId"`
	Events  []timelineEventDTO `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler обслуживает GraphQL-запросы и вспомогательные HTTP-ручки.
type Handler struct {
	schema   *graphqlgo.Schema
	timeline TimelineReader
	path     string
	logger   *log.Entry
}

// NewHandler собирает chi-роутер: GraphQL на path, журнал заказа и CORS для
// браузерных прототипов.
func NewHandler(schema *graphqlgo.Schema, timeline TimelineReader, path string, logger *log.Entry) http.Handler {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = log.WithField("component", "graphql-http")
	}
	h := &Handler{schema: schema, timeline: timeline, path: path, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID},
		MaxAge:         300,
	}))

	r.Get(path, h.serveGet)
	r.Post(path, h.servePost)
	if timeline != nil {
		r.Get("/orders/{orderId}/timeline", h.serveTimeline)
	}

	return r
}

// servePost выполняет операцию из JSON-тела.
func (h *Handler) servePost(w http.ResponseWriter, r *http.Request) {
	var req Request
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	h.execute(w, r, req)
}

// serveGet выполняет операцию из query-параметров, а без query отдаёт GraphiQL.
func (h *Handler) serveGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("query")
	if query == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(graphiQLPage(h.path))
		return
	}

	req := Request{
		Query:         query,
		OperationName: params.Get("operationName"),
	}
	if raw := params.Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid variables: " + err.Error()})
			return
		}
	}

	// GET доступен с любого origin, поэтому изменять заказы через него нельзя.
	response := h.exec(withReadOnly(r.Context()), w, req)
	if hasErrorCode(response, errMethodNotAllowedCode) {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, req Request) {
	writeJSON(w, http.StatusOK, h.exec(r.Context(), w, req))
}

func (h *Handler) exec(ctx context.Context, w http.ResponseWriter, req Request) *graphqlgo.Response {
	response := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	if len(response.Errors) > 0 {
		h.logger.WithFields(log.Fields{
			"request_id": w.Header().Get(headerRequestID),
			"operation":  req.OperationName,
			"errors":     len(response.Errors),
			"first":      response.Errors[0].Message,
		}).Debug("graphql operation returned errors")
	}
	return response
}

func hasErrorCode(response *graphqlgo.Response, code string) bool {
	for _, err := range response.Errors {
		if err.Extensions["code"] == code {
			return true
		}
	}
	return false
}

func (h *Handler) serveTimeline(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	events, err := h.timeline.Timeline(r.Context(), orderID)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", orderID).Warn("failed to load timeline")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load timeline"})
		return
	}

	resp := timelineResponse{OrderID: orderID, Events: make([]timelineEventDTO, 0, len(events))}
	for _, event := range events {
		resp.Events = append(resp.Events, timelineEventDTO{
			ID:       event.ID,
			Type:     event.Type,
			Reason:   event.Reason,
			Occurred: event.Occurred,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestID проставляет X-Request-ID, если клиент его не прислал.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.WithFields(log.Fields{
				"request_id":  ww.Header().Get(headerRequestID),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
			}).Debug("http request")
		})
	}
}
