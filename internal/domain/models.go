package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

type ServiceGroup string

const (
	GroupHomeOffice ServiceGroup = "home_office"
	GroupVehicle    ServiceGroup = "vehicle"
	GroupTender     ServiceGroup = "tender"
)

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusAssigned   RequestStatus = "assigned"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

const PaymentMethodCreditCard = "credit_card"

type AuthUser struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Profile struct {
	ID             string    `db:"id" json:"id"`
	Role           Role      `db:"user_type" json:"user_type"`
	FullName       string    `db:"full_name" json:"full_name"`
	Phone          string    `db:"phone" json:"phone"`
	City           string    `db:"city" json:"city"`
	District       string    `db:"district" json:"district"`
	Neighborhood   string    `db:"neighborhood" json:"neighborhood"`
	SiteName       *string   `db:"site_name" json:"site_name,omitempty"`
	Block          *string   `db:"block" json:"block,omitempty"`
	FloorApartment string    `db:"floor_apartment" json:"floor_apartment"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// AddressSnapshot copies the profile's address fields at this moment. The
// result shares no pointers with the profile.
func (p *Profile) AddressSnapshot() Address {
	return Address{
		City:           p.City,
		District:       p.District,
		Neighborhood:   p.Neighborhood,
		SiteName:       cloneString(p.SiteName),
		Block:          cloneString(p.Block),
		FloorApartment: p.FloorApartment,
	}
}

type ServiceCategory struct {
	ID        string       `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Group     ServiceGroup `db:"group_type" json:"group_type"`
	Icon      string       `db:"icon" json:"icon"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

type ServiceProvider struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	CompanyName   string    `db:"company_name" json:"company_name"`
	TaxNumber     string    `db:"tax_number" json:"tax_number"`
	Rating        float64   `db:"rating" json:"rating"`
	TotalServices int       `db:"total_services" json:"total_services"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Address is the denormalized address stored on a request as jsonb.
type Address struct {
	City           string  `json:"city"`
	District       string  `json:"district"`
	Neighborhood   string  `json:"neighborhood"`
	SiteName       *string `json:"site_name,omitempty"`
	Block          *string `json:"block,omitempty"`
	FloorApartment string  `json:"floor_apartment"`
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*a = Address{}
		return nil
	default:
		return errors.New("address: unsupported source type")
	}

	return json.Unmarshal(raw, a)
}

type ServiceRequest struct {
	ID              string        `db:"id" json:"id"`
	TrackingNumber  string        `db:"tracking_number" json:"tracking_number"`
	CustomerID      string        `db:"customer_id" json:"customer_id"`
	ProviderID      *string       `db:"provider_id" json:"provider_id"`
	CategoryID      string        `db:"category_id" json:"category_id"`
	Group           ServiceGroup  `db:"service_group" json:"service_group"`
	Description     string        `db:"description" json:"description"`
	AppointmentDate time.Time     `db:"appointment_date" json:"appointment_date"`
	Status          RequestStatus `db:"status" json:"status"`
	Address         Address       `db:"address" json:"address"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// NewRequest carries what a customer submits; the appointment stays raw text
// and is parsed by the store.
type NewRequest struct {
	TrackingNumber string
	CustomerID     string
	CategoryID     string
	Group          ServiceGroup
	Description    string
	Appointment    string
	Address        Address
}

type ServicePayment struct {
	ID            string          `db:"id" json:"id"`
	RequestID     string          `db:"request_id" json:"request_id"`
	ServiceFee    decimal.Decimal `db:"service_fee" json:"service_fee"`
	LaborCost     decimal.Decimal `db:"labor_cost" json:"labor_cost"`
	MaterialCost  decimal.Decimal `db:"material_cost" json:"material_cost"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status        PaymentStatus   `db:"payment_status" json:"payment_status"`
	PaymentMethod *string         `db:"payment_method" json:"payment_method"`
	PaidAt        *time.Time      `db:"paid_at" json:"paid_at"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Quote is the provider's three-part cost breakdown.
type Quote struct {
	ServiceFee   decimal.Decimal
	LaborCost    decimal.Decimal
	MaterialCost decimal.Decimal
}

func (q Quote) Total() decimal.Decimal {
	return q.ServiceFee.Add(q.LaborCost).Add(q.MaterialCost).Round(2)
}

func (q Quote) Equal(other Quote) bool {
	return q.ServiceFee.Equal(other.ServiceFee) &&
		q.LaborCost.Equal(other.LaborCost) &&
		q.MaterialCost.Equal(other.MaterialCost)
}

type ServiceReview struct {
	ID            string    `db:"id" json:"id"`
	RequestID     string    `db:"request_id" json:"request_id"`
	CustomerID    string    `db:"customer_id" json:"customer_id"`
	QualityRating int       `db:"quality_rating" json:"quality_rating"`
	SpeedRating   int       `db:"speed_rating" json:"speed_rating"`
	Comment       *string   `db:"comment" json:"comment"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type AdminStats struct {
	TotalUsers        int             `json:"totalUsers"`
	TotalRequests     int             `json:"totalRequests"`
	PendingRequests   int             `json:"pendingRequests"`
	CompletedRequests int             `json:"completedRequests"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalProviders    int             `json:"totalProviders"`
}

type ProviderStats struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s

	return &v
}
