package http

import (
	"net/http"

	"navexa/internal/core"
)

// handleTrips serves the collection: list and create.
func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		trips, err := s.trips.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if trips == nil {
			trips = []core.Trip{}
		}
		writeJSON(w, http.StatusOK, trips)

	case http.MethodPost:
		var trip core.Trip
		if err := decodeJSON(r, &trip); err != nil {
			writeDecodeError(w, r, err)
			return
		}
		// Ids come from the store, never from the client on create
		trip.ID = ""
		saved, err := s.trips.Save(r.Context(), trip)
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

// handleTripByID serves one record: fetch, replace and delete.
func (s *Server) handleTripByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/trips/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		trip, err := s.trips.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, trip)

	case http.MethodPut:
		// Editing an existing trip must hit an existing record; a PUT to
		// a random id is not an upsert from the client's point of view.
		if _, err := s.trips.Get(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		var trip core.Trip
		if err := decodeJSON(r, &trip); err != nil {
			writeDecodeError(w, r, err)
			return
		}
		trip.ID = id
		saved, err := s.trips.Save(r.Context(), trip)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)

	case http.MethodDelete:
		if err := s.trips.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
