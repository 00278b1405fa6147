// Package corpus is the read side of the article store. It only sees
// published articles; editorial workflow lives elsewhere.
package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Article is one published local article as the search/chat core reads it.
type Article struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Preview      string    `json:"preview"`
	CategoryName string    `json:"categoryName"`
	AuthorName   string    `json:"authorName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Filter narrows FindPublished. Query is a case-insensitive substring
// match over title and body; Category matches the category name exactly;
// Limit bounds the result (0 means no limit).
type Filter struct {
	Query    string
	Category string
	Limit    int
}

// Searcher queries the relational article store.
type Searcher struct {
	db *sql.DB
}

func New(db *sql.DB) *Searcher { return &Searcher{db: db} }

// Open connects to postgres with the given DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	return db, nil
}

// FindPublished returns published articles matching the filter, most
// recent first.
func (s *Searcher) FindPublished(ctx context.Context, f Filter) ([]Article, error) {
	query := `SELECT a.id, a.title, a.body, COALESCE(a.preview, ''), c.name, u.first_name || ' ' || u.last_name, a.created_at
FROM articles a
JOIN categories c ON c.id = a.category_id
JOIN users u ON u.id = a.author_id
WHERE a.is_published = TRUE`
	var args []any
	if f.Query != "" {
		term := "%" + strings.ToLower(f.Query) + "%"
		args = append(args, term)
		n := len(args)
		query += fmt.Sprintf(" AND (LOWER(a.title) LIKE $%d OR LOWER(a.body) LIKE $%d)", n, n)
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND c.name = $%d", len(args))
	}
	query += " ORDER BY a.created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying published articles: %w", err)
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Preview, &a.CategoryName, &a.AuthorName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
