package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phanxgames/shapetree"

	"github.com/tigerwill90/fox"
)

// NewRouter builds a *fox.Router exposing registry over HTTP:
//
//	POST /trees/{id}/updates   apply a TreeUpdate, body and response are JSON
//	GET  /trees/{id}           debug dump: node count and root AABB
//
// Every request is logged through fox's built-in Logger middleware, the
// same slog-based instrumentation the router's own example server uses.
func NewRouter(registry *TreeRegistry, logHandler slog.Handler) (*fox.Router, error) {
	r, err := fox.NewRouter(
		fox.WithMiddlewareFor(fox.AllHandlers, fox.Logger(logHandler)),
	)
	if err != nil {
		return nil, err
	}

	if _, err := r.Add([]string{http.MethodPost}, "/trees/{id}/updates", postUpdates(registry)); err != nil {
		return nil, err
	}
	if _, err := r.Add([]string{http.MethodGet}, "/trees/{id}", getDebug(registry)); err != nil {
		return nil, err
	}
	return r, nil
}

func postUpdates(registry *TreeRegistry) fox.HandlerFunc {
	return func(c *fox.Context) {
		id, ok := parseTreeID(c)
		if !ok {
			writeError(c, http.StatusBadRequest, "invalid tree id")
			return
		}

		var update shapetree.TreeUpdate
		if err := json.NewDecoder(c.Request().Body).Decode(&update); err != nil {
			writeError(c, http.StatusBadRequest, "malformed tree update: "+err.Error())
			return
		}
		update.Target = id

		responses, err := registry.Apply(update)
		if err != nil {
			writeError(c, statusForUpdateError(err), err.Error())
			return
		}
		writeJSON(c, http.StatusOK, responses)
	}
}

func getDebug(registry *TreeRegistry) fox.HandlerFunc {
	return func(c *fox.Context) {
		id, ok := parseTreeID(c)
		if !ok {
			writeError(c, http.StatusBadRequest, "invalid tree id")
			return
		}
		writeJSON(c, http.StatusOK, registry.Describe(id))
	}
}

func parseTreeID(c *fox.Context) (uint32, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// statusForUpdateError maps the core's sentinel errors onto HTTP status
// codes: a bad target is Not Found, every keep-index failure is a Conflict
// (the request described a structurally invalid delta against the tree's
// current state), anything else is a generic Bad Request.
func statusForUpdateError(err error) int {
	switch {
	case errors.Is(err, shapetree.ErrInvalidTarget):
		return http.StatusNotFound
	case errors.Is(err, shapetree.ErrInvalidKeepIndex),
		errors.Is(err, shapetree.ErrUnownedKeepIndex),
		errors.Is(err, shapetree.ErrDuplicateKeepIndex):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(c *fox.Context, status int, msg string) {
	writeJSON(c, status, errorBody{Error: msg})
}

func writeJSON(c *fox.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		_ = c.Blob(http.StatusInternalServerError, "application/json", []byte(`{"error":"encode failure"}`))
		return
	}
	_ = c.Blob(status, "application/json", body)
}
