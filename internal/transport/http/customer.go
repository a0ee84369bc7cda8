package http

import (
	"net/http"

	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/service"
	"github.com/YusovID/service-dispatch/internal/validation"
)

func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ListCategories"

	var group string
	if err := queryParam(r, "group", true, &group); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	categories, err := s.customers.ListCategories(r.Context(), domain.ServiceGroup(group))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) CreateRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateRequest"

	var req createServiceRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	created, err := s.customers.CreateRequest(r.Context(), mustSession(r), service.CreateRequestInput{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{"request": created})
}

func (s *Server) ListCustomerRequests(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ListCustomerRequests"

	reqs, err := s.customers.ListRequests(r.Context(), mustSession(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (s *Server) GetCustomerRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetCustomerRequest"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	detail, err := s.customers.GetRequest(r.Context(), mustSession(r), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, detail)
}

func (s *Server) SubmitReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.SubmitReview"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req reviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	review, err := s.customers.SubmitReview(r.Context(), mustSession(r), service.ReviewInput{
		RequestID:     id,
		QualityRating: req.QualityRating,
		SpeedRating:   req.SpeedRating,
		Comment:       req.Comment,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]any{"review": review})
}

func (s *Server) GetPayment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetPayment"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	payment, err := s.payments.GetPayment(r.Context(), mustSession(r), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{"payment": payment})
}

func (s *Server) PayByCard(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.PayByCard"

	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req cardPaymentRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	payment, err := s.payments.PayByCard(r.Context(), mustSession(r), id, service.Card{
		Number: validation.StripCardNumber(req.Number),
		Name:   req.Name,
		Expiry: req.Expiry,
		CVV:    req.CVV,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{"payment": payment})
}
