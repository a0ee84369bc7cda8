// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/service"
	"github.com/YusovID/service-dispatch/internal/validation"
	"github.com/YusovID/service-dispatch/pkg/logger/sl"
	"github.com/YusovID/service-dispatch/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log       *slog.Logger
	accounts  service.AccountService
	customers service.CustomerService
	providers service.ProviderService
	payments  service.PaymentService
	admin     service.AdminService
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	as service.AccountService,
	cs service.CustomerService,
	ps service.ProviderService,
	pays service.PaymentService,
	ads service.AdminService,
) *Server {
	return &Server{
		log:       log,
		accounts:  as,
		customers: cs,
		providers: ps,
		payments:  pays,
		admin:     ads,
	}
}

// Routes sets up the router with all middleware and API endpoints.
// Workflow groups are gated once at their root by the role they serve.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	swaggerHandler, err := swagger.Handler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/auth/sign-up", s.SignUp)
	mux.Post("/auth/sign-in", s.SignIn)

	mux.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/auth/sign-out", s.SignOut)
		r.Get("/session", s.GetSession)
		r.Patch("/profile", s.UpdateProfile)

		r.Route("/customer", func(r chi.Router) {
			r.Use(s.requireRole(domain.RoleCustomer))

			r.Get("/categories", s.ListCategories)
			r.Post("/requests", s.CreateRequest)
			r.Get("/requests", s.ListCustomerRequests)
			r.Get("/requests/{id}", s.GetCustomerRequest)
			r.Post("/requests/{id}/reviews", s.SubmitReview)
			r.Get("/payments/{id}", s.GetPayment)
			r.Post("/payments/{id}/card", s.PayByCard)
		})

		r.Route("/provider", func(r chi.Router) {
			r.Use(s.requireRole(domain.RoleProvider))

			r.Get("/dashboard", s.GetDashboard)
			r.Get("/profile", s.GetProviderProfile)
			r.Get("/requests/{id}", s.GetProviderRequest)
			r.Post("/requests/{id}/claim", s.ClaimRequest)
			r.Put("/requests/{id}/quote", s.SaveQuote)
			r.Post("/requests/{id}/start", s.StartRequest)
			r.Post("/requests/{id}/complete", s.CompleteRequest)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireRole(domain.RoleAdmin))

			r.Get("/stats", s.GetStats)
		})
	})

	return mux
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.GetStats"

	stats, err := s.admin.Stats(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, stats)
}

type errorCode string

const (
	codeValidation         errorCode = "VALIDATION"
	codeInvalidAppointment errorCode = "INVALID_APPOINTMENT"
	codeConfirmRequired    errorCode = "CONFIRMATION_REQUIRED"
	codeUnauthorized       errorCode = "UNAUTHORIZED"
	codeInvalidCredentials errorCode = "INVALID_CREDENTIALS"
	codeForbidden          errorCode = "FORBIDDEN"
	codeNotOwner           errorCode = "NOT_REQUEST_OWNER"
	codeNoProvider         errorCode = "NO_PROVIDER_RECORD"
	codeNotFound           errorCode = "NOT_FOUND"
	codeEmailTaken         errorCode = "EMAIL_TAKEN"
	codeReviewExists       errorCode = "REVIEW_EXISTS"
	codeAlreadyExists      errorCode = "ALREADY_EXISTS"
	codeAlreadyClaimed     errorCode = "ALREADY_CLAIMED"
	codePaymentRequired    errorCode = "PAYMENT_REQUIRED"
	codeQuoteLocked        errorCode = "QUOTE_LOCKED"
	codeNotReviewable      errorCode = "NOT_REVIEWABLE"
	codePaymentNotPending  errorCode = "PAYMENT_NOT_PENDING"
	codeInvalidTransition  errorCode = "INVALID_TRANSITION"
	codeTrackingExhausted  errorCode = "TRACKING_NUMBER_UNAVAILABLE"
)

type errorResponse struct {
	Error struct {
		Code    errorCode `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// respondAPIError sends the structured {"error":{"code","message"}} body.
func (s *Server) respondAPIError(w http.ResponseWriter, code int, apiCode errorCode, message string) {
	var errResp errorResponse
	errResp.Error.Code = apiCode
	errResp.Error.Message = message

	s.respond(w, code, errResp)
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// pathID binds the {id} URL segment, which is always a UUID.
func pathID(r *http.Request) (string, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("%w: invalid format for parameter 'id'", apperrors.ErrValidation)
	}

	return id.String(), nil
}

func queryParam(r *http.Request, name string, required bool, dest any) error {
	if err := runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", getRequestID(r.Context())))

	var (
		validationErr *validation.ValidationError
		emailTakenErr *apperrors.EmailTakenError
		reviewErr     *apperrors.ReviewExistsError
		transitionErr *apperrors.TransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		s.respondAPIError(w, http.StatusBadRequest, codeValidation, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrValidation):
		s.respondAPIError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, apperrors.ErrInvalidAppointment):
		s.respondAPIError(w, http.StatusBadRequest, codeInvalidAppointment, apperrors.ErrInvalidAppointment.Error())
	case errors.Is(err, apperrors.ErrConfirmRequired):
		s.respondAPIError(w, http.StatusBadRequest, codeConfirmRequired, apperrors.ErrConfirmRequired.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		s.respondAPIError(w, http.StatusUnauthorized, codeInvalidCredentials, apperrors.ErrInvalidCredentials.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		s.respondAPIError(w, http.StatusUnauthorized, codeUnauthorized, apperrors.ErrUnauthorized.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		s.respondAPIError(w, http.StatusForbidden, codeForbidden, apperrors.ErrForbidden.Error())
	case errors.Is(err, apperrors.ErrNotRequestOwner):
		s.respondAPIError(w, http.StatusForbidden, codeNotOwner, apperrors.ErrNotRequestOwner.Error())
	case errors.Is(err, apperrors.ErrNoProviderRecord):
		s.respondAPIError(w, http.StatusForbidden, codeNoProvider, apperrors.ErrNoProviderRecord.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondAPIError(w, http.StatusNotFound, codeNotFound, "resource not found")
	case errors.As(err, &emailTakenErr):
		s.respondAPIError(w, http.StatusConflict, codeEmailTaken, emailTakenErr.Error())
	case errors.As(err, &reviewErr):
		s.respondAPIError(w, http.StatusConflict, codeReviewExists, reviewErr.Error())
	case errors.As(err, &transitionErr):
		s.respondAPIError(w, http.StatusConflict, codeInvalidTransition, transitionErr.Error())
	case errors.Is(err, apperrors.ErrInvalidTransition):
		s.respondAPIError(w, http.StatusConflict, codeInvalidTransition, apperrors.ErrInvalidTransition.Error())
	case errors.Is(err, apperrors.ErrAlreadyClaimed):
		s.respondAPIError(w, http.StatusConflict, codeAlreadyClaimed, apperrors.ErrAlreadyClaimed.Error())
	case errors.Is(err, apperrors.ErrPaymentRequired):
		s.respondAPIError(w, http.StatusConflict, codePaymentRequired, apperrors.ErrPaymentRequired.Error())
	case errors.Is(err, apperrors.ErrQuoteLocked):
		s.respondAPIError(w, http.StatusConflict, codeQuoteLocked, apperrors.ErrQuoteLocked.Error())
	case errors.Is(err, apperrors.ErrNotReviewable):
		s.respondAPIError(w, http.StatusConflict, codeNotReviewable, apperrors.ErrNotReviewable.Error())
	case errors.Is(err, apperrors.ErrPaymentNotPending):
		s.respondAPIError(w, http.StatusConflict, codePaymentNotPending, apperrors.ErrPaymentNotPending.Error())
	case errors.Is(err, apperrors.ErrAlreadyExists):
		s.respondAPIError(w, http.StatusConflict, codeAlreadyExists, apperrors.ErrAlreadyExists.Error())
	case errors.Is(err, apperrors.ErrTrackingNumberUnavailable):
		log.Error("service error occurred", sl.Err(err))
		s.respondAPIError(w, http.StatusServiceUnavailable, codeTrackingExhausted, apperrors.ErrTrackingNumberUnavailable.Error())

		return
	default:
		log.Error("service error occurred", sl.Err(err))
		s.respondError(w, http.StatusInternalServerError, "internal server error")

		return
	}

	log.Info("request rejected", sl.Err(err))
}
