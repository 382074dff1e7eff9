package library

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Book is one lendable catalog entry. Department holds the normalized
// department key and is empty for books that belong to no department.
type Book struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Department string    `db:"department" json:"department,omitempty"`
	Title      string    `db:"title" json:"title"`
	Author     string    `db:"author" json:"author"`
	ISBN       string    `db:"isbn" json:"isbn"`
	Year       int       `db:"year" json:"year"`
	Borrowed   bool      `db:"borrowed" json:"borrowed"`
}

// NewBook builds an unsaved book. It receives its ID when first added.
func NewBook(title, author, isbn string, year int) *Book {
	return &Book{Title: title, Author: author, ISBN: isbn, Year: year}
}

func (b *Book) String() string {
	return fmt.Sprintf("'%s' by %s\nISBN: %s\nYear: %d", b.Title, b.Author, b.ISBN, b.Year)
}

// Member is a registered patron together with the books it currently holds,
// in borrow order.
type Member struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	BorrowedBooks []*Book `db:"-" json:"borrowed_books"`
}

func (m *Member) String() string {
	titles := make([]string, 0, len(m.BorrowedBooks))
	for _, b := range m.BorrowedBooks {
		titles = append(titles, b.Title)
	}
	return fmt.Sprintf("Member: %s, Borrowed Books: [%s]", m.Name, strings.Join(titles, ", "))
}

// Holds reports whether the member currently has the book with the given ID.
func (m *Member) Holds(bookID uuid.UUID) bool {
	for _, b := range m.BorrowedBooks {
		if b.ID == bookID {
			return true
		}
	}
	return false
}

// Department is one subject area of the department store.
type Department struct {
	Key      string `db:"key" json:"key"`
	Name     string `db:"name" json:"name"`
	Position int    `db:"position" json:"position"`
}

// Addition reports one book appended by AddBooksByDepartment. Serial is
// 1-based and scoped to the call.
type Addition struct {
	Serial     int
	Department string
	Book       *Book
}

// NormalizeDepartment turns a display name such as "Computer Science" into
// its department key ("computerscience").
func NormalizeDepartment(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}
