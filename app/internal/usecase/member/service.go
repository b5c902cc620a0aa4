package member

import (
	"context"

	dom "example.com/ecomshop/app/internal/domain/member"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*dom.Member, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Member, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInput carries a sparse field set; nil means leave unchanged.
type UpdateInput struct {
	DisplayName *string
	Description *string
	City        *string
	Country     *string
}

// Update applies the sparse field set to the profile owned by userID. The
// caller identity arrives as an explicit parameter, never from ambient state.
func (s *Service) Update(ctx context.Context, userID int64, in UpdateInput) error {
	m, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if in.DisplayName != nil {
		m.DisplayName = *in.DisplayName
	}
	if in.Description != nil {
		m.Description = in.Description
	}
	if in.City != nil {
		m.City = in.City
	}
	if in.Country != nil {
		m.Country = in.Country
	}

	return s.repo.Update(ctx, m)
}
