package service

import (
	"time"

	"github.com/YusovID/service-dispatch/internal/domain"
)

// AuthResult is returned by sign-up and sign-in.
type AuthResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *domain.Profile `json:"profile"`
}

// SessionView is what a client needs to pick its workflow root.
type SessionView struct {
	Profile *domain.Profile `json:"profile"`
	Root    string          `json:"root"`
}

// RequestView is a request with the fixed label and icon of its status.
type RequestView struct {
	*domain.ServiceRequest
	StatusLabel string `json:"status_label"`
	StatusIcon  string `json:"status_icon"`
}

func newRequestView(req *domain.ServiceRequest) RequestView {
	d := domain.DisplayFor(req.Status)

	return RequestView{ServiceRequest: req, StatusLabel: d.Label, StatusIcon: d.Icon}
}

func newRequestViews(reqs []domain.ServiceRequest) []RequestView {
	views := make([]RequestView, len(reqs))
	for i := range reqs {
		views[i] = newRequestView(&reqs[i])
	}

	return views
}

type CustomerActions struct {
	CanPay    bool `json:"can_pay"`
	CanReview bool `json:"can_review"`
}

type CustomerRequestDetail struct {
	Request RequestView            `json:"request"`
	Payment *domain.ServicePayment `json:"payment"`
	Actions CustomerActions        `json:"actions"`
}

type ProviderActions struct {
	CanClaim     bool `json:"can_claim"`
	CanEditQuote bool `json:"can_edit_quote"`
	CanStart     bool `json:"can_start"`
	CanComplete  bool `json:"can_complete"`
}

type ProviderRequestDetail struct {
	Request  RequestView            `json:"request"`
	Customer *domain.Profile        `json:"customer"`
	Payment  *domain.ServicePayment `json:"payment"`
	Actions  ProviderActions        `json:"actions"`
}

type Dashboard struct {
	Provider *domain.ServiceProvider `json:"provider"`
	Stats    domain.ProviderStats    `json:"stats"`
	Requests []RequestView           `json:"requests"`
}
