package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createGreetingRequest struct {
	Text string `json:"text" validate:"required,max=280"`
}

type updateGreetingRequest struct {
	Text    string `json:"text"    validate:"required,max=280"`
	Version *int   `json:"version" validate:"required,gte=0"`
}

type greetingLinks struct {
	Self string `json:"self"`
}

type greetingResponse struct {
	ID          string        `json:"id"`
	Text        string        `json:"text"`
	ReferenceID string        `json:"reference_id"`
	Version     int           `json:"version"`
	CreatedBy   string        `json:"created_by"`
	CreatedAt   string        `json:"created_at"`
	UpdatedBy   string        `json:"updated_by,omitempty"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
	Links       greetingLinks `json:"_links"`
}

type greetingListResponse struct {
	Greetings []greetingResponse `json:"greetings"`
	Count     int                `json:"count"`
}
