package http

import (
	"net/http"

	"github.com/YusovID/service-dispatch/internal/service"
)

func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.SignUp"

	var req signUpRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	res, err := s.accounts.SignUp(r.Context(), service.SignUpInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		Phone:          req.Phone,
		City:           req.City,
		District:       req.District,
		Neighborhood:   req.Neighborhood,
		SiteName:       req.SiteName,
		Block:          req.Block,
		FloorApartment: req.FloorApartment,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, res)
}

func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.SignIn"

	var req signInRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	res, err := s.accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, res)
}

func (s *Server) SignOut(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.SignOut"

	if err := s.accounts.SignOut(r.Context(), mustSession(r)); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetSession"

	view, err := s.accounts.Current(mustSession(r))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, view)
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.UpdateProfile"

	var req updateProfileRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	profile, err := s.accounts.UpdateProfile(r.Context(), mustSession(r), service.ProfileUpdate{
		FullName:       req.FullName,
		Phone:          req.Phone,
		City:           req.City,
		District:       req.District,
		Neighborhood:   req.Neighborhood,
		SiteName:       req.SiteName,
		Block:          req.Block,
		FloorApartment: req.FloorApartment,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{"profile": profile})
}
