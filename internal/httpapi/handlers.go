package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dshills/userorders/pkg/types"
)

// pathID parses the {id} wildcard. A non-integer id is a validation
// failure, not a missing resource.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, types.ValidationErrors{{Field: "id", Message: "id must be an integer"}}
	}
	return id, nil
}

func queryPage(r *http.Request) (types.Page, error) {
	q := r.URL.Query()
	return types.ParsePage(q.Get("skip"), q.Get("limit"))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": ServiceName,
		"version": s.version,
		"status":  "running",
	})
}

type healthResponse struct {
	Status        string `json:"status"`
	Users         int    `json:"users"`
	Orders        int    `json:"orders"`
	SchemaVersion string `json:"schema_version"`
	BuildMode     string `json:"build_mode"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Status(r.Context())
	if err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Users:         stats.Users,
		Orders:        stats.Orders,
		SchemaVersion: stats.SchemaVersion,
		BuildMode:     stats.BuildMode,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

// Users

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	in, err := types.DecodeUserCreate(r.Body)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	user, err := s.service.CreateUser(r.Context(), in)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	user, err := s.service.GetUser(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	users, err := s.service.ListUsers(r.Context(), page)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUserOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	orders, err := s.service.GetUserOrders(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Orders

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	in, err := types.DecodeOrderCreate(r.Body)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	order, err := s.service.CreateOrder(r.Context(), in)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	order, err := s.service.GetOrder(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleGetOrderOwner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	user, err := s.service.GetOrderOwner(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	orders, err := s.service.ListOrders(r.Context(), page)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
