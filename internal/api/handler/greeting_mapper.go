package handler

import (
	"time"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createGreetingRequest, idempotencyKey string) ports.CreateGreetingInput {
	return ports.CreateGreetingInput{
		Text:           req.Text,
		IdempotencyKey: idempotencyKey,
	}
}

func toUpdateInput(id string, req updateGreetingRequest) ports.UpdateGreetingInput {
	in := ports.UpdateGreetingInput{ID: id, Text: req.Text}
	if req.Version != nil {
		in.Version = *req.Version
	}
	return in
}

// --- Domain → Response ---

func toGreetingResponse(g *domain.Greeting) greetingResponse {
	resp := greetingResponse{
		ID:          g.ID,
		Text:        g.Text,
		ReferenceID: g.ReferenceID,
		Version:     g.Version,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedBy:   g.UpdatedBy,
		Links:       greetingLinks{Self: greetingPath(g.ID)},
	}
	if g.UpdatedAt != nil {
		resp.UpdatedAt = g.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toGreetingListResponse(gs []*domain.Greeting) greetingListResponse {
	items := make([]greetingResponse, 0, len(gs))
	for _, g := range gs {
		items = append(items, toGreetingResponse(g))
	}
	return greetingListResponse{Greetings: items, Count: len(items)}
}

func greetingPath(id string) string {
	return "/api/greetings/" + id
}
