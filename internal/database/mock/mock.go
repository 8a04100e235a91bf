// Package mock provides in-memory implementations of the database
// repositories for tests.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jsvoboda/shelfscan/internal/database"
)

// BookStore is an in-memory database.BookStore.
type BookStore struct {
	mu    sync.Mutex
	books map[string]database.Book
	order []string
}

// NewBookStore creates an empty in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{books: make(map[string]database.Book)}
}

func (s *BookStore) Create(ctx context.Context, book *database.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	now := time.Now()
	book.AddedAt = now
	book.UpdatedAt = now
	s.books[book.ID] = *book
	s.order = append(s.order, book.ID)
	return nil
}

func (s *BookStore) Get(ctx context.Context, id, userID string) (*database.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok || book.UserID != userID {
		return nil, nil
	}
	return &book, nil
}

func (s *BookStore) List(ctx context.Context, userID string, shelf database.Shelf) ([]database.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var books []database.Book
	for _, id := range s.order {
		book := s.books[id]
		if book.UserID != userID {
			continue
		}
		if shelf != "" && book.Shelf != shelf {
			continue
		}
		books = append(books, book)
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].AddedAt.After(books[j].AddedAt)
	})
	return books, nil
}

func (s *BookStore) Titles(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var titles []string
	for _, id := range s.order {
		if book := s.books[id]; book.UserID == userID {
			titles = append(titles, book.Title)
		}
	}
	return titles, nil
}

func (s *BookStore) Count(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, book := range s.books {
		if book.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *BookStore) Update(ctx context.Context, book *database.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.books[book.ID]
	if !ok || existing.UserID != book.UserID {
		return database.ErrNotFound
	}
	book.AddedAt = existing.AddedAt
	book.UpdatedAt = time.Now()
	s.books[book.ID] = *book
	return nil
}

func (s *BookStore) Delete(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok || book.UserID != userID {
		return database.ErrNotFound
	}
	delete(s.books, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// UserStore is an in-memory database.UserStore.
type UserStore struct {
	mu    sync.Mutex
	users map[string]database.User
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]database.User)}
}

func (s *UserStore) Create(ctx context.Context, user *database.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return database.ErrDuplicateUser
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*database.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}
