package http

import (
	"net/http"

	"github.com/YusovID/service-dispatch/internal/service"
)

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetDashboard"

	var q *string
	if err := queryParam(r, "q", false, &q); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var query string
	if q != nil {
		query = *q
	}

	dashboard, err := s.providers.Dashboard(r.Context(), mustSession(r), query)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, dashboard)
}

func (s *Server) GetProviderProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetProviderProfile"

	provider, err := s.providers.Profile(r.Context(), mustSession(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{"provider": provider})
}

func (s *Server) GetProviderRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetProviderRequest"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	detail, err := s.providers.GetRequest(r.Context(), mustSession(r), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, detail)
}

func (s *Server) ClaimRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ClaimRequest"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	claimed, err := s.providers.Claim(r.Context(), mustSession(r), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{"request": claimed})
}

func (s *Server) SaveQuote(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.SaveQuote"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req quoteRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	payment, err := s.providers.SaveQuote(r.Context(), mustSession(r), id, service.QuoteInput{
		ServiceFee:   req.ServiceFee,
		LaborCost:    req.LaborCost,
		MaterialCost: req.MaterialCost,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{"payment": payment})
}

func (s *Server) StartRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.StartRequest"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.providers.Start(r.Context(), mustSession(r), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) CompleteRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CompleteRequest"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req completeRequest
	if err := s.decode(r.Body, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.providers.Complete(r.Context(), mustSession(r), id, req.Confirm); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
