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

package session_test

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/config"
	"github.com/retr0h/storefront/internal/requestctx"
	"github.com/retr0h/storefront/internal/session"
	"github.com/retr0h/storefront/internal/session/mocks"
)

// memRepository is an in-memory Repository for behavioural tests.
type memRepository struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newMemRepository() *memRepository {
	return &memRepository{sessions: map[string]*session.Session{}}
}

func (r *memRepository) Create(_ context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = &s
	return nil
}

func (r *memRepository) GetByTokenHash(_ context.Context, hash string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.TokenHash == hash {
			c := *s
			return &c, nil
		}
	}
	return nil, session.ErrNotFound
}

func (r *memRepository) ListActiveByUser(
	_ context.Context,
	userID string,
	now time.Time,
) ([]session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []session.Session{}
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsValid && !s.Expired(now) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepository) Invalidate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.IsValid = false
	}
	return nil
}

func (r *memRepository) InvalidateByTokenHash(_ context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.TokenHash == hash {
			s.IsValid = false
		}
	}
	return nil
}

func (r *memRepository) InvalidateAllForUser(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsValid {
			s.IsValid = false
			n++
		}
	}
	return n, nil
}

func (r *memRepository) InvalidateExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sessions {
		if s.IsValid && s.Expired(now) {
			s.IsValid = false
			n++
		}
	}
	return n, nil
}

func (r *memRepository) valid(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id].IsValid
}

type ManagerPublicTestSuite struct {
	suite.Suite

	ctx  context.Context
	now  time.Time
	repo *memRepository
	mgr  *session.Manager
}

func (s *ManagerPublicTestSuite) SetupTest() {
	s.ctx = requestctx.With(context.Background(), requestctx.Info{
		IPAddress: "198.51.100.4",
		UserAgent: "Firefox",
	})
	s.now = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s.repo = newMemRepository()
	s.mgr = session.NewManager(
		slog.Default(),
		s.repo,
		config.Session{TTL: 24 * time.Hour, MaxConcurrent: 2},
		session.WithClock(func() time.Time { return s.now }),
	)
}

func (s *ManagerPublicTestSuite) TestCreateRecordsDeviceAndExpiry() {
	got, err := s.mgr.Create(s.ctx, "user-1", "token-a")
	s.Require().NoError(err)

	s.Equal("user-1", got.UserID)
	s.Equal(session.HashToken("token-a"), got.TokenHash)
	s.NotEqual("token-a", got.TokenHash)
	s.Equal("198.51.100.4", got.IPAddress)
	s.Equal("Firefox", got.UserAgent)
	s.Equal(s.now.Add(24*time.Hour), got.ExpiresAt)
	s.True(got.IsValid)
}

func (s *ManagerPublicTestSuite) TestCreateEvictsOldestBeyondCap() {
	first, err := s.mgr.Create(s.ctx, "user-1", "token-a")
	s.Require().NoError(err)
	s.now = s.now.Add(time.Minute)
	second, err := s.mgr.Create(s.ctx, "user-1", "token-b")
	s.Require().NoError(err)
	s.now = s.now.Add(time.Minute)
	third, err := s.mgr.Create(s.ctx, "user-1", "token-c")
	s.Require().NoError(err)

	s.False(s.repo.valid(first.ID))
	s.True(s.repo.valid(second.ID))
	s.True(s.repo.valid(third.ID))

	ok, err := s.mgr.Validate(s.ctx, "token-a")
	s.NoError(err)
	s.False(ok)
}

func (s *ManagerPublicTestSuite) TestValidateExpiredFlipsValidity() {
	created, err := s.mgr.Create(s.ctx, "user-1", "token-a")
	s.Require().NoError(err)

	ok, err := s.mgr.Validate(s.ctx, "token-a")
	s.NoError(err)
	s.True(ok)

	s.now = created.ExpiresAt.Add(time.Second)

	ok, err = s.mgr.Validate(s.ctx, "token-a")
	s.NoError(err)
	s.False(ok)
	s.False(s.repo.valid(created.ID))

	ok, err = s.mgr.Validate(s.ctx, "token-a")
	s.NoError(err)
	s.False(ok)
}

func (s *ManagerPublicTestSuite) TestInvalidateIsIdempotent() {
	created, err := s.mgr.Create(s.ctx, "user-1", "token-a")
	s.Require().NoError(err)

	s.NoError(s.mgr.Invalidate(s.ctx, "token-a"))
	s.NoError(s.mgr.Invalidate(s.ctx, "token-a"))
	s.NoError(s.mgr.Invalidate(s.ctx, "never-issued"))

	s.False(s.repo.valid(created.ID))
	ok, err := s.mgr.Validate(s.ctx, "token-a")
	s.NoError(err)
	s.False(ok)
}

func (s *ManagerPublicTestSuite) TestInvalidateAllForUser() {
	_, err := s.mgr.Create(s.ctx, "user-1", "token-a")
	s.Require().NoError(err)
	_, err = s.mgr.Create(s.ctx, "user-1", "token-b")
	s.Require().NoError(err)
	other, err := s.mgr.Create(s.ctx, "user-2", "token-c")
	s.Require().NoError(err)

	n, err := s.mgr.InvalidateAllForUser(s.ctx, "user-1")
	s.NoError(err)
	s.Equal(int64(2), n)
	s.True(s.repo.valid(other.ID))
}

func (s *ManagerPublicTestSuite) TestPurgeExpired() {
	_, err := s.mgr.Create(s.ctx, "user-1", "token-a")
	s.Require().NoError(err)
	s.now = s.now.Add(25 * time.Hour)
	_, err = s.mgr.Create(s.ctx, "user-2", "token-b")
	s.Require().NoError(err)

	n, err := s.mgr.PurgeExpired(s.ctx)
	s.NoError(err)
	s.Equal(int64(1), n)
}

func TestManagerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerPublicTestSuite))
}

type ManagerMockTestSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	mockRepo *mocks.MockRepository
	mgr      *session.Manager
	now      time.Time
}

func (s *ManagerMockTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = mocks.NewMockRepository(s.ctrl)
	s.now = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s.mgr = session.NewManager(
		slog.Default(),
		s.mockRepo,
		config.Session{MaxConcurrent: 0},
		session.WithClock(func() time.Time { return s.now }),
	)
}

func (s *ManagerMockTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ManagerMockTestSuite) TestValidate() {
	hash := session.HashToken("tok")

	tests := []struct {
		name      string
		setupMock func()
		want      bool
		wantErr   bool
	}{
		{
			name: "unknown token is invalid",
			setupMock: func() {
				s.mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hash).
					Return(nil, session.ErrNotFound)
			},
			want: false,
		},
		{
			name: "storage failure is returned",
			setupMock: func() {
				s.mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hash).
					Return(nil, errors.New("conn reset"))
			},
			wantErr: true,
		},
		{
			name: "invalidated session is invalid without writes",
			setupMock: func() {
				s.mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hash).
					Return(&session.Session{ID: "s1", IsValid: false, ExpiresAt: s.now.Add(time.Hour)}, nil)
			},
			want: false,
		},
		{
			name: "expired session is invalidated even if the write fails",
			setupMock: func() {
				s.mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hash).
					Return(&session.Session{ID: "s1", IsValid: true, ExpiresAt: s.now}, nil)
				s.mockRepo.EXPECT().Invalidate(gomock.Any(), "s1").
					Return(errors.New("read only"))
			},
			want: false,
		},
		{
			name: "live session is valid",
			setupMock: func() {
				s.mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hash).
					Return(&session.Session{ID: "s1", IsValid: true, ExpiresAt: s.now.Add(time.Hour)}, nil)
			},
			want: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setupMock()
			got, err := s.mgr.Validate(context.Background(), "tok")
			if tt.wantErr {
				s.Error(err)
			} else {
				s.NoError(err)
			}
			s.Equal(tt.want, got)
		})
	}
}

func (s *ManagerMockTestSuite) TestCreateWithoutCapSkipsEviction() {
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	got, err := s.mgr.Create(context.Background(), "user-1", "tok")
	s.NoError(err)
	s.Equal(s.now.Add(session.DefaultTTL), got.ExpiresAt)
}

func (s *ManagerMockTestSuite) TestCreateReturnsRepositoryError() {
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("duplicate"))

	got, err := s.mgr.Create(context.Background(), "user-1", "tok")
	s.Error(err)
	s.Nil(got)
}

func TestManagerMockTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerMockTestSuite))
}
