package dtos

type JobCreationRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Description string `json:"description" binding:"required,notblank"`
	Company     string `json:"company" binding:"required,notblank,max=200"`
	Location    string `json:"location" binding:"required,notblank,max=100"`

	// Optional Fields
	Salary *int `json:"salary"`
}

type JobExtractionRequest struct {
	RawText string `json:"raw_text" binding:"required,notblank"`
}

// JobDraft is the extraction result; it has the same shape as
// JobCreationRequest so a client can post it back after review.
type JobDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      *int   `json:"salary"`
}
