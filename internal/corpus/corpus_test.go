package corpus

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestFindPublishedAppliesFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT a.id, a.title, a.body, COALESCE\(a.preview, ''\), c.name, u.first_name \|\| ' ' \|\| u.last_name, a.created_at`).
		WithArgs("%budget%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "preview", "name", "author", "created_at"}).
			AddRow(int64(3), "Budget planning", "How to plan a budget", "prev", "Finance", "Ivan Petrov", now).
			AddRow(int64(1), "Old budget news", "body", "", "Finance", "Maria Ivanova", now.Add(-time.Hour)))

	s := New(db)
	articles, err := s.FindPublished(context.Background(), Filter{Query: "Budget", Limit: 10})
	if err != nil {
		t.Fatalf("FindPublished: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].ID != 3 || articles[0].CategoryName != "Finance" || articles[0].AuthorName != "Ivan Petrov" {
		t.Fatalf("unexpected first article: %+v", articles[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindPublishedNoFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE a.is_published = TRUE ORDER BY a.created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "preview", "name", "author", "created_at"}))

	s := New(db)
	articles, err := s.FindPublished(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("FindPublished: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected no articles, got %d", len(articles))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
