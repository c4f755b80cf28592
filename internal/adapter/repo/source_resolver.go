package repo

import (
	"context"
	"fmt"

	"artify/internal/domain"
)

// SourceResolver picks the image URL handed to style providers. When a copy of
// the customer photo is persisted it serves our own endpoint, which stays valid
// after the original upload link expires.
type SourceResolver struct {
	sources       domain.SourceImageRepository
	publicBaseURL string
}

func NewSourceResolver(sources domain.SourceImageRepository, publicBaseURL string) *SourceResolver {
	return &SourceResolver{sources: sources, publicBaseURL: publicBaseURL}
}

// Resolve returns the provider-facing source URL for an order.
func (s *SourceResolver) Resolve(ctx context.Context, order *domain.Order) string {
	if s.publicBaseURL == "" {
		return order.ImageURL
	}
	ok, err := s.sources.Exists(ctx, order.OrderID)
	if err != nil || !ok {
		return order.ImageURL
	}
	return fmt.Sprintf("%s/api/orders/%s/source-image", s.publicBaseURL, order.OrderID)
}
