package dtos

// StatusUpdateRequest is not bound with validation tags: an empty or unknown
// status is reported by the service after the application lookup.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
