package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jsvoboda/shelfscan/internal/database"
	"github.com/lib/pq"
)

// BookRepository provides PostgreSQL-backed catalog storage.
type BookRepository struct {
	pool *Pool
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(pool *Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

func newID() string {
	return uuid.New().String()
}

func (r *BookRepository) Create(ctx context.Context, book *database.Book) error {
	if book.ID == "" {
		book.ID = newID()
	}
	now := time.Now()
	book.AddedAt = now
	book.UpdatedAt = now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO books (id, user_id, title, author, genres, shelf, source_image, added_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		book.ID, book.UserID, book.Title, book.Author, pq.Array(book.Genres),
		book.Shelf, book.SourceImage, book.AddedAt, book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *BookRepository) Get(ctx context.Context, id, userID string) (*database.Book, error) {
	var b database.Book
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, author, genres, shelf, source_image, added_at, updated_at
		 FROM books WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&b.ID, &b.UserID, &b.Title, &b.Author, pq.Array(&b.Genres),
			&b.Shelf, &b.SourceImage, &b.AddedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &b, nil
}

func (r *BookRepository) List(ctx context.Context, userID string, shelf database.Shelf) ([]database.Book, error) {
	query := `SELECT id, user_id, title, author, genres, shelf, source_image, added_at, updated_at
	          FROM books WHERE user_id = $1`
	args := []any{userID}
	if shelf != "" {
		query += ` AND shelf = $2`
		args = append(args, shelf)
	}
	query += ` ORDER BY added_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []database.Book
	for rows.Next() {
		var b database.Book
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, pq.Array(&b.Genres),
			&b.Shelf, &b.SourceImage, &b.AddedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *BookRepository) Titles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT title FROM books WHERE user_id = $1 ORDER BY added_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return titles, nil
}

func (r *BookRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM books WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

func (r *BookRepository) Update(ctx context.Context, book *database.Book) error {
	book.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx,
		`UPDATE books SET title = $1, author = $2, genres = $3, shelf = $4, updated_at = $5
		 WHERE id = $6 AND user_id = $7`,
		book.Title, book.Author, pq.Array(book.Genres), book.Shelf, book.UpdatedAt,
		book.ID, book.UserID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM books WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}
