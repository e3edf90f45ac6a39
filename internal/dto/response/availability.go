package response

// FreeSlotResponse is a generated candidate slot with display-formatted
// boundaries, ready for the frontend's slot picker.
type FreeSlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Slot      string `json:"slot"`
}

// BookedSlotResponse echoes a reservation's stored start/end strings so the
// caller can disable selection.
type BookedSlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityResponse struct {
	FacilityID  string               `json:"facility_id"`
	Date        string               `json:"date"`
	FreeSlots   []FreeSlotResponse   `json:"free_slots"`
	BookedSlots []BookedSlotResponse `json:"booked_slots"`
}
