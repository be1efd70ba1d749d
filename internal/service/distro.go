package service

import (
	"context"

	"github.com/deppfellow/anitya/internal/domain"
	"github.com/deppfellow/anitya/internal/form"
)

type DistroService struct {
	store Store
}

func NewDistroService(store Store) *DistroService {
	return &DistroService{store: store}
}

func (s *DistroService) Create(ctx context.Context, f *form.DistroForm) (*domain.Distro, error) {
	return s.store.CreateDistro(ctx, f.Name)
}
