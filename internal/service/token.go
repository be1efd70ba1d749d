package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/anitya/internal/domain"
	"github.com/deppfellow/anitya/internal/form"
)

type TokenService struct {
	store Store
}

func NewTokenService(store Store) *TokenService {
	return &TokenService{store: store}
}

// Create issues a new random API token.
func (s *TokenService) Create(ctx context.Context, f *form.TokenForm) (*domain.Token, error) {
	return s.store.CreateToken(ctx, &domain.Token{
		Token:       uuid.NewString(),
		Description: f.Description,
	})
}
