package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/keymap"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints on top of a session store.
type Handler struct {
	store *session.Store
}

// NewHandler wires a Handler to store. InitMetrics must have run first.
func NewHandler(store *session.Store) *Handler {
	store.OnEvicted(func(id string) {
		sessionsActive.Add(context.Background(), -1)
		observability.Logger.Debug("session evicted", zap.String("session_id", id))
	})
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Handlers — sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.create")
	defer span.End()

	snap, err := h.store.Create(ctx)
	if err != nil {
		recordStoreError(ctx, span, logger, w, "create_session", err)
		return
	}

	sessionsActive.Add(ctx, 1)

	span.SetAttributes(attribute.String("session.id", snap.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", snap.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSessionResponse(snap))
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.get")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("session.id", id))

	snap, err := h.store.Get(ctx, id)
	if err != nil {
		recordStoreError(ctx, span, logger, w, "get_session", err)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(snap))
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.delete")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("session.id", id))

	if err := h.store.Delete(ctx, id); err != nil {
		recordStoreError(ctx, span, logger, w, "delete_session", err)
		return
	}

	span.SetStatus(codes.Ok, "")

	logger.Info("session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// ApplyEvent handles POST /calculator/sessions/{id}/events
func (h *Handler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.event")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("session.id", id))

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "apply_event", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	ev, err := req.Event()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "apply_event", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	h.apply(ctx, span, logger, w, id, ev)
}

// PressKey handles POST /calculator/sessions/{id}/keys. It translates a raw
// key press the way a keyboard front end would.
func (h *Handler) PressKey(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.key")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("session.id", id))

	var key keymap.Key
	if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press_key", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.String("key.value", key.Value))

	ev, ok := keymap.Translate(key)
	if !ok {
		snap, err := h.store.Get(ctx, id)
		if err != nil {
			recordStoreError(ctx, span, logger, w, "press_key", err)
			return
		}

		span.AddEvent("key.ignored")
		span.SetStatus(codes.Ok, "")

		resp := newSessionResponse(snap)
		resp.Ignored = true
		handlers.WriteJSON(w, http.StatusOK, resp)
		return
	}

	h.apply(ctx, span, logger, w, id, ev)
}

// apply runs ev against session id and writes the resulting view.
func (h *Handler) apply(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, id string, ev engine.Event) {
	span.SetAttributes(attribute.String("calculator.event", ev.Name()))

	start := time.Now()
	snap, err := h.store.Apply(ctx, id, ev)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		recordStoreError(ctx, span, logger, w, "apply_event", err)
		return
	}

	attrs := metric.WithAttributes(attribute.String("event", ev.Name()))
	eventsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, metric.WithAttributes(attribute.String("operation", ev.Name())))

	display := snap.State.Display()
	span.AddEvent("transition.complete", trace.WithAttributes(
		attribute.String("display", display),
		attribute.String("phase", string(snap.State.Phase())),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator event applied",
		zap.String("session_id", id),
		zap.String("event", ev.Name()),
		zap.String("display", display),
		zap.String("phase", string(snap.State.Phase())),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(snap))
}

// ---------------------------------------------------------------------------
// Handlers — stateless
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func Add(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, "add", engine.OperationPlus)
}

// Subtract handles POST /calculator/subtract
func Subtract(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, "subtract", engine.OperationMinus)
}

// Multiply handles POST /calculator/multiply
func Multiply(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, "multiply", engine.OperationMultiply)
}

// Divide handles POST /calculator/divide. Division by zero is not an error:
// the result is Infinity, -Infinity or NaN.
func Divide(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, "divide", engine.OperationDivide)
}

// handleBinaryOp is the shared implementation for all binary calculator operations.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, opName string, op engine.Operation) {
	ctx, span, logger := startSpan(r, fmt.Sprintf("calculator.%s", opName))
	defer span.End()

	span.SetAttributes(attribute.String("calculator.operation", opName))

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	a, b := req.A.String(), req.B.String()
	if !engine.ValidOperand(a) || !engine.ValidOperand(b) {
		err := fmt.Errorf("%w: a=%q b=%q", ErrInvalidOperand, a, b)
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operand.a", a),
		attribute.String("calculator.operand.b", b),
	)

	start := time.Now()
	result := engine.Calculate(op, a, b)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.String("a", a),
		zap.String("b", b),
		zap.String("result", result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         a,
		B:         b,
		Result:    result,
	})
}

// Evaluate handles POST /calculator/evaluate. It replays a key sequence on a
// fresh calculator, creating a child span for every accepted key.
func Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.evaluate")
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	events := keymap.ParseSequence(req.Keys)
	if len(events) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "no keys provided", fmt.Errorf("no bound keys in %q", req.Keys), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("evaluate.steps_count", len(events)))

	state := engine.Initial()
	steps := make([]EvaluateStep, 0, len(events))

	for i, ev := range events {
		key := keymap.Format([]engine.Event{ev})

		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.evaluate.step.%d.%s", i, ev.Name()),
			trace.WithAttributes(
				attribute.Int("evaluate.step.index", i),
				attribute.String("evaluate.step.key", key),
			),
		)

		state = engine.Transition(state, ev)

		stepSpan.SetAttributes(attribute.String("evaluate.step.display", state.Display()))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		eventsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("event", ev.Name())))

		steps = append(steps, EvaluateStep{
			Key:     key,
			Event:   ev.Name(),
			Display: state.Display(),
		})
	}

	keys := keymap.Format(events)
	span.AddEvent("evaluate.complete", trace.WithAttributes(
		attribute.String("display", state.Display()),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("key sequence evaluated",
		zap.String("keys", keys),
		zap.Int("steps", len(steps)),
		zap.String("display", state.Display()),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Keys:    keys,
		Steps:   steps,
		Display: state.Display(),
		State:   state,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// startSpan opens the handler span and returns a trace-correlated logger.
func startSpan(r *http.Request, name string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	return ctx, span, logger
}

func recordStoreError(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, opName string, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session not found", err, http.StatusNotFound, w)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "request canceled", err, http.StatusServiceUnavailable, w)
	default:
		observability.RecordError(ctx, span, logger, errorCounter, opName, "internal error", err, http.StatusInternalServerError, w)
	}
}
