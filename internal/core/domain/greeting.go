package domain

// Greeting is the sample CRUD entity exposed under /api/greetings.
type Greeting struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Audit
}

// EntityID implements Identified.
func (g Greeting) EntityID() string { return g.ID }
