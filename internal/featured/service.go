// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package featured

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/audit"
)

// Recorder records explicit audit events.
type Recorder interface {
	CreateAsync(ctx context.Context, opts audit.Options)
}

// Service manages featured products and audits every change with its
// before and after values.
type Service struct {
	logger   *slog.Logger
	repo     Repository
	recorder Recorder
	now      func() time.Time
}

// NewService creates a Service.
func NewService(
	logger *slog.Logger,
	repo Repository,
	recorder Recorder,
) *Service {
	return &Service{
		logger:   logger,
		repo:     repo,
		recorder: recorder,
		now:      time.Now,
	}
}

// List returns the active featured products.
func (s *Service) List(
	ctx context.Context,
) ([]Product, error) {
	products, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, apperror.Internal("", err)
	}

	return products, nil
}

// Create features a product.
func (s *Service) Create(
	ctx context.Context,
	in CreateInput,
) (*Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperror.Internal("", fmt.Errorf("generate featured id: %w", err))
	}

	now := s.now().UTC()
	p := Product{
		ID:        id.String(),
		ProductID: in.ProductID,
		Title:     in.Title,
		ImageURL:  in.ImageURL,
		Position:  in.Position,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, apperror.Wrap(apperror.KindConflict, "Product is already featured", err)
		}
		return nil, apperror.Internal("", err)
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionCreate,
		EntityType: "FeaturedProduct",
		EntityID:   p.ID,
		StatusCode: http.StatusCreated,
		NewValues:  p,
	})

	return &p, nil
}

// Update applies in to the featured product with id.
func (s *Service) Update(
	ctx context.Context,
	id string,
	in UpdateInput,
) (*Product, error) {
	before, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	after := *before
	if in.Title != nil {
		after.Title = *in.Title
	}
	if in.ImageURL != nil {
		after.ImageURL = *in.ImageURL
	}
	if in.Position != nil {
		after.Position = *in.Position
	}
	if in.Active != nil {
		after.Active = *in.Active
	}
	after.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, after); err != nil {
		return nil, notFoundOr(err)
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionUpdate,
		EntityType: "FeaturedProduct",
		EntityID:   id,
		StatusCode: http.StatusOK,
		OldValues:  before,
		NewValues:  after,
	})

	return &after, nil
}

// Delete removes the featured product with id.
func (s *Service) Delete(
	ctx context.Context,
	id string,
) error {
	before, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err)
	}

	s.recorder.CreateAsync(ctx, audit.Options{
		Action:     audit.ActionDelete,
		EntityType: "FeaturedProduct",
		EntityID:   id,
		StatusCode: http.StatusOK,
		OldValues:  before,
	})

	return nil
}

func (s *Service) get(
	ctx context.Context,
	id string,
) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	return p, nil
}

func notFoundOr(
	err error,
) error {
	if errors.Is(err, ErrNotFound) {
		return apperror.Wrap(apperror.KindNotFound, "Featured product not found", err)
	}

	return apperror.Internal("", err)
}
