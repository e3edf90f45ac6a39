package request

type CreateBookingRequest struct {
	FacilityID    string `json:"facility_id" validate:"required,uuid4"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time" validate:"required,max=8"`
	EndTime       string `json:"end_time" validate:"required,max=8"`
	ContactNumber string `json:"contact_number,omitempty" validate:"omitempty,max=15"`
	Notes         string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
