package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/travelinfo/travel-api/internal/api/shared"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
)

// ProcedureParam is the chi URL parameter holding the procedure name.
const ProcedureParam = "procedure"

// maxInputBytes bounds a mutation body.
const maxInputBytes = 1 << 20

// Kind distinguishes read-only procedures from mutations.
type Kind int

const (
	Query Kind = iota
	Mutation
)

func (k Kind) String() string {
	if k == Mutation {
		return "mutation"
	}
	return "query"
}

func (k Kind) method() string {
	if k == Mutation {
		return http.MethodPost
	}
	return http.MethodGet
}

// Procedure is one named RPC operation.
type Procedure struct {
	Name string
	Kind Kind
	Gate Gate

	// invoke decodes raw input and runs the handler.
	invoke func(ctx context.Context, caller domain.Caller, raw []byte) (any, error)
}

// NewProcedure builds a procedure whose input decodes into In before h runs.
func NewProcedure[In, Out any](
	name string,
	kind Kind,
	gate Gate,
	h func(ctx context.Context, caller domain.Caller, in In) (Out, error),
) Procedure {
	if gate == nil {
		gate = Public
	}
	return Procedure{
		Name: name,
		Kind: kind,
		Gate: gate,
		invoke: func(ctx context.Context, caller domain.Caller, raw []byte) (any, error) {
			in, err := decodeInput[In](raw)
			if err != nil {
				return nil, err
			}
			return h(ctx, caller, in)
		},
	}
}

// SuccessEnvelope is the body of every successful call.
type SuccessEnvelope struct {
	Result struct {
		Data any `json:"data"`
	} `json:"result"`
}

// Router dispatches /trpc/{procedure} calls to registered procedures.
type Router struct {
	procedures map[string]Procedure
	errors     *ErrorTranslator
	logger     *slog.Logger
}

// NewRouter creates an empty router.
func NewRouter(translator *ErrorTranslator, logger *slog.Logger) *Router {
	return &Router{
		procedures: make(map[string]Procedure),
		errors:     translator,
		logger:     logger.With("component", "rpc_router"),
	}
}

// Register adds procedures. Registering a name twice panics.
func (rt *Router) Register(procs ...Procedure) {
	for _, p := range procs {
		if _, dup := rt.procedures[p.Name]; dup {
			// ALLOW-PANIC
			panic(fmt.Sprintf("procedure %q registered twice", p.Name))
		}
		rt.procedures[p.Name] = p
	}
}

// Alias makes alias resolve to the already registered procedure target.
func (rt *Router) Alias(alias, target string) {
	p, ok := rt.procedures[target]
	if !ok {
		// ALLOW-PANIC
		panic(fmt.Sprintf("alias %q targets unknown procedure %q", alias, target))
	}
	rt.Register(Procedure{Name: alias, Kind: p.Kind, Gate: p.Gate, invoke: p.invoke})
}

// Names returns the registered procedure names in sorted order.
func (rt *Router) Names() []string {
	names := make([]string, 0, len(rt.procedures))
	for name := range rt.procedures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServeHTTP runs the pipeline for the procedure named by the URL parameter:
// lookup, method check, gate, input decoding, handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, ProcedureParam)
	ctx := r.Context()

	proc, ok := rt.procedures[name]
	if !ok {
		rt.errors.WriteError(w, r, name, ErrProcedureNotFound)
		return
	}
	if r.Method != proc.Kind.method() {
		w.Header().Set("Allow", proc.Kind.method())
		rt.errors.WriteError(w, r, name,
			fmt.Errorf("%w: %s is a %s and must be called with %s",
				ErrMethodNotSupported, name, proc.Kind, proc.Kind.method()))
		return
	}

	caller := shared.CallerFromContext(ctx)
	if err := proc.Gate(caller); err != nil {
		rt.errors.WriteError(w, r, name, err)
		return
	}

	raw, err := readInput(r, proc.Kind)
	if err != nil {
		rt.errors.WriteError(w, r, name, err)
		return
	}

	out, err := proc.invoke(ctx, caller, raw)
	if err != nil {
		rt.errors.WriteError(w, r, name, err)
		return
	}

	logger.FromContextOrDefault(ctx, rt.logger).Debug("procedure succeeded",
		"procedure", name,
		"kind", proc.Kind.String())

	var env SuccessEnvelope
	env.Result.Data = out
	shared.RespondWithJSON(w, r, http.StatusOK, env)
}

func readInput(r *http.Request, kind Kind) ([]byte, error) {
	if kind == Query {
		return []byte(r.URL.Query().Get("input")), nil
	}
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxInputBytes+1))
	if err != nil {
		return nil, domain.NewValidationError("", "request body could not be read", err)
	}
	if len(body) > maxInputBytes {
		return nil, domain.NewValidationError("", "request body is too large", nil)
	}
	return body, nil
}
