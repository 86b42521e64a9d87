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

package featured_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/audit"
	"github.com/retr0h/storefront/internal/audit/audittest"
	"github.com/retr0h/storefront/internal/featured"
	"github.com/retr0h/storefront/internal/featured/mocks"
)

type ServicePublicTestSuite struct {
	suite.Suite

	ctx      context.Context
	ctrl     *gomock.Controller
	mockRepo *mocks.MockRepository
	store    *audittest.Store
	recorder *audit.Recorder
	svc      *featured.Service
	existing featured.Product
}

func (s *ServicePublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = mocks.NewMockRepository(s.ctrl)
	s.store = &audittest.Store{}
	s.recorder = audit.NewRecorder(slog.Default(), s.store)
	s.svc = featured.NewService(slog.Default(), s.mockRepo, s.recorder)
	s.existing = featured.Product{
		ID:        "f-1",
		ProductID: "p1",
		Title:     "Mug",
		Position:  1,
		Active:    true,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *ServicePublicTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServicePublicTestSuite) TestList() {
	s.mockRepo.EXPECT().List(gomock.Any(), false).Return([]featured.Product{s.existing}, nil)

	got, err := s.svc.List(s.ctx)
	s.NoError(err)
	s.Len(got, 1)

	s.mockRepo.EXPECT().List(gomock.Any(), false).Return(nil, errors.New("conn reset"))

	_, err = s.svc.List(s.ctx)
	s.Equal(apperror.KindInternal, apperror.KindOf(err))
}

func (s *ServicePublicTestSuite) TestCreate() {
	tests := []struct {
		name        string
		repoErr     error
		wantErr     bool
		wantKind    apperror.Kind
		wantRecords int
	}{
		{
			name:        "features the product and audits it",
			wantRecords: 1,
		},
		{
			name:     "duplicate product is a conflict",
			repoErr:  featured.ErrDuplicate,
			wantErr:  true,
			wantKind: apperror.KindConflict,
		},
		{
			name:     "storage failure is internal",
			repoErr:  errors.New("disk full"),
			wantErr:  true,
			wantKind: apperror.KindInternal,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.store = &audittest.Store{}
			s.recorder = audit.NewRecorder(slog.Default(), s.store)
			s.svc = featured.NewService(slog.Default(), s.mockRepo, s.recorder)

			s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tt.repoErr)

			got, err := s.svc.Create(s.ctx, featured.CreateInput{ProductID: "p1", Title: "Mug"})
			s.recorder.Wait()

			s.Len(s.store.Records(), tt.wantRecords)
			if tt.wantErr {
				s.Equal(tt.wantKind, apperror.KindOf(err))
				return
			}
			s.Require().NoError(err)
			s.True(got.Active)
			s.NotEmpty(got.ID)
			s.Equal(audit.ActionCreate, s.store.Records()[0].Action)
		})
	}
}

func (s *ServicePublicTestSuite) TestUpdateRecordsBeforeAndAfter() {
	title := "Big Mug"
	s.mockRepo.EXPECT().Get(gomock.Any(), "f-1").Return(&s.existing, nil)
	s.mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p featured.Product) error {
			s.Equal("Big Mug", p.Title)
			s.Equal(1, p.Position)
			return nil
		})

	got, err := s.svc.Update(s.ctx, "f-1", featured.UpdateInput{Title: &title})
	s.Require().NoError(err)
	s.Equal("Big Mug", got.Title)
	s.recorder.Wait()

	records := s.store.Records()
	s.Require().Len(records, 1)
	s.Equal(audit.ActionUpdate, records[0].Action)
	s.Equal("FeaturedProduct", records[0].EntityType)
	s.Equal("Mug", records[0].OldValues.(map[string]any)["title"])
	s.Equal("Big Mug", records[0].NewValues.(map[string]any)["title"])
}

func (s *ServicePublicTestSuite) TestUpdateNotFound() {
	s.mockRepo.EXPECT().Get(gomock.Any(), "missing").Return(nil, featured.ErrNotFound)

	_, err := s.svc.Update(s.ctx, "missing", featured.UpdateInput{})
	s.Equal(apperror.KindNotFound, apperror.KindOf(err))
	s.recorder.Wait()
	s.Empty(s.store.Records())
}

func (s *ServicePublicTestSuite) TestDelete() {
	s.mockRepo.EXPECT().Get(gomock.Any(), "f-1").Return(&s.existing, nil)
	s.mockRepo.EXPECT().Delete(gomock.Any(), "f-1").Return(nil)

	s.NoError(s.svc.Delete(s.ctx, "f-1"))
	s.recorder.Wait()

	records := s.store.Records()
	s.Require().Len(records, 1)
	s.Equal(audit.ActionDelete, records[0].Action)
	s.Nil(records[0].NewValues)
	s.Equal("p1", records[0].OldValues.(map[string]any)["productId"])
}

func TestServicePublicTestSuite(t *testing.T) {
	suite.Run(t, new(ServicePublicTestSuite))
}
