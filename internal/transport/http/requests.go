package http

type signUpRequest struct {
	Email           string  `json:"email" validate:"required,email,max=255"`
	Password        string  `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string  `json:"full_name" validate:"required,max=255"`
	Phone           string  `json:"phone" validate:"required,max=32"`
	City            string  `json:"city" validate:"required,max=100"`
	District        string  `json:"district" validate:"required,max=100"`
	Neighborhood    string  `json:"neighborhood" validate:"required,max=100"`
	SiteName        *string `json:"site_name" validate:"omitempty,max=100"`
	Block           *string `json:"block" validate:"omitempty,max=50"`
	FloorApartment  string  `json:"floor_apartment" validate:"required,max=50"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FullName       string  `json:"full_name" validate:"required,max=255"`
	Phone          string  `json:"phone" validate:"required,max=32"`
	City           string  `json:"city" validate:"required,max=100"`
	District       string  `json:"district" validate:"required,max=100"`
	Neighborhood   string  `json:"neighborhood" validate:"required,max=100"`
	SiteName       *string `json:"site_name" validate:"omitempty,max=100"`
	Block          *string `json:"block" validate:"omitempty,max=50"`
	FloorApartment string  `json:"floor_apartment" validate:"required,max=50"`
}

// createServiceRequest checks presence only. Whether date and time form a real
// timestamp is decided by the store.
type createServiceRequest struct {
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Description string `json:"description" validate:"required,max=2000"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
}

type reviewRequest struct {
	QualityRating int     `json:"quality_rating" validate:"required,rating"`
	SpeedRating   int     `json:"speed_rating" validate:"required,rating"`
	Comment       *string `json:"comment" validate:"omitempty,max=1000"`
}

type quoteRequest struct {
	ServiceFee   string `json:"service_fee" validate:"required,decimal"`
	LaborCost    string `json:"labor_cost" validate:"required,decimal"`
	MaterialCost string `json:"material_cost" validate:"required,decimal"`
}

type completeRequest struct {
	Confirm bool `json:"confirm"`
}

type cardPaymentRequest struct {
	Number string `json:"number" validate:"required,card_number"`
	Name   string `json:"name" validate:"required,max=255"`
	Expiry string `json:"expiry" validate:"required,max=7"`
	CVV    string `json:"cvv" validate:"required,cvv"`
}
