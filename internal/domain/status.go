package domain

// StatusDisplay is the label and icon a client renders for a request status.
type StatusDisplay struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var statusDisplays = map[RequestStatus]StatusDisplay{
	StatusPending:    {Label: "Beklemede", Icon: "clock"},
	StatusAssigned:   {Label: "Atandı", Icon: "alert-circle"},
	StatusInProgress: {Label: "Devam Ediyor", Icon: "alert-circle"},
	StatusCompleted:  {Label: "Tamamlandı", Icon: "check-circle"},
	StatusCancelled:  {Label: "İptal Edildi", Icon: "x-circle"},
}

// DisplayFor returns the fixed label/icon pair. Unknown statuses are passed
// through as their raw text.
func DisplayFor(status RequestStatus) StatusDisplay {
	if d, ok := statusDisplays[status]; ok {
		return d
	}

	return StatusDisplay{Label: string(status), Icon: "clock"}
}

func (g ServiceGroup) Valid() bool {
	switch g {
	case GroupHomeOffice, GroupVehicle, GroupTender:
		return true
	}

	return false
}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}

	return false
}

// QuoteEditable reports whether a provider may create or change the quote.
// The quote exists only once the request has left pending and is frozen after
// completion.
func (s RequestStatus) QuoteEditable() bool {
	return s == StatusAssigned || s == StatusInProgress
}

// CanStart reports whether work on the request can begin.
func (s RequestStatus) CanStart() bool {
	return s == StatusAssigned
}

// CanComplete reports whether the request may be completed given whether a
// payment row exists for it.
func (s RequestStatus) CanComplete(hasPayment bool) bool {
	return s == StatusInProgress && hasPayment
}

// Reviewable reports whether a customer may review a request.
func Reviewable(req *ServiceRequest, payment *ServicePayment) bool {
	return req != nil && payment != nil &&
		req.Status == StatusCompleted && payment.Status == PaymentPaid
}
