package http

import (
	"net/http"
	"strings"
	"time"

	"navexa/internal/core"
)

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		vehicles, err := s.vehicles.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if vehicles == nil {
			vehicles = []core.Vehicle{}
		}
		writeJSON(w, http.StatusOK, vehicles)

	case http.MethodPost:
		var vehicle core.Vehicle
		if err := decodeJSON(r, &vehicle); err != nil {
			writeDecodeError(w, r, err)
			return
		}
		vehicle.ID = ""
		saved, err := s.vehicles.Save(r.Context(), vehicle)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleVehicleByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/vehicles/")

	// GET /api/vehicles/{id}/maintenance
	if id, ok := strings.CutSuffix(rest, "/maintenance"); ok {
		s.handleVehicleMaintenance(w, r, strings.TrimSpace(id))
		return
	}

	id := pathID(r.URL.Path, "/api/vehicles/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		vehicle, err := s.vehicles.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, vehicle)

	case http.MethodPut:
		if _, err := s.vehicles.Get(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		var vehicle core.Vehicle
		if err := decodeJSON(r, &vehicle); err != nil {
			writeDecodeError(w, r, err)
			return
		}
		vehicle.ID = id
		saved, err := s.vehicles.Save(r.Context(), vehicle)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)

	case http.MethodDelete:
		if err := s.vehicles.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleVehicleMaintenance(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if id == "" {
		http.NotFound(w, r)
		return
	}

	items, err := s.vehicles.Maintenance(r.Context(), id, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []core.MaintenanceItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
