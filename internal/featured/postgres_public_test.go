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
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/storefront/internal/featured"
)

var featuredColumnNames = []string{
	"id", "product_id", "title", "image_url", "position", "active", "created_at", "updated_at",
}

type PostgresPublicTestSuite struct {
	suite.Suite

	ctx  context.Context
	db   *sql.DB
	mock sqlmock.Sqlmock
	repo *featured.PostgresRepository
	now  time.Time
}

func (s *PostgresPublicTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.db = db
	s.mock = mock
	s.repo = featured.NewPostgresRepository(db)
	s.now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PostgresPublicTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	_ = s.db.Close()
}

func (s *PostgresPublicTestSuite) TestList() {
	tests := []struct {
		name            string
		includeInactive bool
		pattern         string
	}{
		{
			name:    "active only",
			pattern: `FROM\s+featured_products\s+WHERE\s+active\s+ORDER\s+BY\s+position`,
		},
		{
			name:            "including inactive",
			includeInactive: true,
			pattern:         `FROM\s+featured_products\s+ORDER\s+BY\s+position`,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.mock.ExpectQuery(tt.pattern).
				WillReturnRows(sqlmock.NewRows(featuredColumnNames).
					AddRow("f-1", "p1", "Mug", "", 0, true, s.now, s.now))

			got, err := s.repo.List(s.ctx, tt.includeInactive)
			s.Require().NoError(err)
			s.Require().Len(got, 1)
			s.Equal("Mug", got[0].Title)
		})
	}
}

func (s *PostgresPublicTestSuite) TestGet() {
	s.mock.ExpectQuery(`FROM\s+featured_products\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := s.repo.Get(s.ctx, "missing")
	s.ErrorIs(err, featured.ErrNotFound)
}

func (s *PostgresPublicTestSuite) TestCreate() {
	p := featured.Product{
		ID: "f-1", ProductID: "p1", Title: "Mug", Active: true,
		CreatedAt: s.now, UpdatedAt: s.now,
	}

	s.mock.ExpectExec(`INSERT\s+INTO\s+featured_products`).
		WithArgs("f-1", "p1", "Mug", "", 0, true, s.now, s.now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.NoError(s.repo.Create(s.ctx, p))

	s.mock.ExpectExec(`INSERT\s+INTO\s+featured_products`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	s.ErrorIs(s.repo.Create(s.ctx, p), featured.ErrDuplicate)
}

func (s *PostgresPublicTestSuite) TestUpdateAndDelete() {
	p := featured.Product{ID: "f-1", Title: "Mug", UpdatedAt: s.now}

	s.mock.ExpectExec(`UPDATE\s+featured_products`).
		WithArgs("f-1", "Mug", "", 0, false, s.now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.ErrorIs(s.repo.Update(s.ctx, p), featured.ErrNotFound)

	s.mock.ExpectExec(`DELETE\s+FROM\s+featured_products\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("f-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.NoError(s.repo.Delete(s.ctx, "f-1"))
}

func TestPostgresPublicTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresPublicTestSuite))
}
