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

// Package docs serves markdown documents from a directory.
package docs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/retr0h/storefront/internal/apperror"
	"github.com/retr0h/storefront/internal/validation"
)

const extension = ".md"

// Summary describes a document without its content.
type Summary struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Document is a full markdown document.
type Document struct {
	Summary
	Content string `json:"content"`
}

// Store reads documents from dir on fs.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates a Store.
func NewStore(
	fs afero.Fs,
	dir string,
) *Store {
	return &Store{fs: fs, dir: dir}
}

// List returns every document sorted by slug. A missing directory is an
// empty listing.
func (s *Store) List() ([]Summary, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Summary{}, nil
		}
		return nil, apperror.Internal("", fmt.Errorf("read docs dir: %w", err))
	}

	out := []Summary{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), extension) {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), extension)
		if !validSlug(slug) {
			continue
		}

		title, err := s.title(e.Name())
		if err != nil {
			return nil, apperror.Internal("", err)
		}
		if title == "" {
			title = slug
		}

		out = append(out, Summary{
			Slug:      slug,
			Title:     title,
			Size:      e.Size(),
			UpdatedAt: e.ModTime().UTC(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })

	return out, nil
}

// Get returns the document for slug. Slugs that could escape the directory
// are reported as not found.
func (s *Store) Get(
	slug string,
) (*Document, error) {
	if !validSlug(slug) {
		return nil, apperror.NotFound("Document not found")
	}

	name := path.Join(s.dir, slug+extension)
	info, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperror.NotFound("Document not found")
		}
		return nil, apperror.Internal("", fmt.Errorf("stat %s: %w", name, err))
	}

	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		return nil, apperror.Internal("", fmt.Errorf("read %s: %w", name, err))
	}

	content := string(data)
	title := headingOf(content)
	if title == "" {
		title = slug
	}

	return &Document{
		Summary: Summary{
			Slug:      slug,
			Title:     title,
			Size:      info.Size(),
			UpdatedAt: info.ModTime().UTC(),
		},
		Content: content,
	}, nil
}

func validSlug(
	slug string,
) bool {
	_, ok := validation.Var(slug, "required,slug")

	return ok
}

func (s *Store) title(
	name string,
) (string, error) {
	f, err := s.fs.Open(path.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if t, ok := heading(scanner.Text()); ok {
			return t, nil
		}
	}

	return "", scanner.Err()
}

// headingOf returns the first level-one heading of content.
func headingOf(
	content string,
) string {
	for _, line := range strings.Split(content, "\n") {
		if t, ok := heading(line); ok {
			return t
		}
	}

	return ""
}

func heading(
	line string,
) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "# ") {
		return "", false
	}

	return strings.TrimSpace(strings.TrimPrefix(line, "# ")), true
}
