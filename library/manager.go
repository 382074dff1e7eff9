package library

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// LibraryManager is a thin façade over the Database, keeping CLI code simple.
type LibraryManager struct {
	db  *Database
	log *slog.Logger
}

// NewLibraryManager opens an empty in-memory library. A nil logger discards
// all output.
func NewLibraryManager(logger *slog.Logger) (*LibraryManager, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := NewDatabase()
	if err != nil {
		return nil, err
	}
	return &LibraryManager{db: db, log: logger}, nil
}

// Close closes the underlying database.
func (lm *LibraryManager) Close() error { return lm.db.Close() }

// ------------------ Catalog ------------------

// AddBook appends one catalog entry for b. A book without an ID is stored
// first and receives one. Adding the same book twice yields two entries.
func (lm *LibraryManager) AddBook(b *Book) error {
	if b.Department != "" {
		key := NormalizeDepartment(b.Department)
		if _, err := lm.db.GetDepartment(key); err != nil {
			return err
		}
		b.Department = key
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if err := lm.db.InsertBook(b); err != nil {
		return fmt.Errorf("store book %q: %w", b.Title, err)
	}
	holding, err := lm.db.AddHolding(b.ID)
	if err != nil {
		return fmt.Errorf("add %q to catalog: %w", b.Title, err)
	}
	lm.log.Debug("added book", "book", b.ID, "title", b.Title, "holding", holding)
	return nil
}

// AddBooksByDepartment appends books in order and reports each addition with
// a serial number starting at 1.
func (lm *LibraryManager) AddBooksByDepartment(department string, books []*Book) ([]Addition, error) {
	additions := make([]Addition, 0, len(books))
	for i, b := range books {
		if err := lm.AddBook(b); err != nil {
			return additions, err
		}
		additions = append(additions, Addition{Serial: i + 1, Department: department, Book: b})
	}
	return additions, nil
}

// AddDepartment adds every book of the named department to the catalog.
func (lm *LibraryManager) AddDepartment(department string) ([]Addition, error) {
	dep, books, err := lm.ListBooksByDepartment(department)
	if err != nil {
		return nil, err
	}
	return lm.AddBooksByDepartment(dep.Name, books)
}

// RemoveBook removes the first catalog entry for the book.
func (lm *LibraryManager) RemoveBook(bookID uuid.UUID) error {
	if err := lm.db.RemoveHolding(bookID); err != nil {
		return err
	}
	lm.log.Debug("removed book", "book", bookID)
	return nil
}

// SearchBookByISBN returns the first catalog entry with the exact ISBN.
func (lm *LibraryManager) SearchBookByISBN(isbn string) (*Book, error) {
	return lm.db.FindCatalogBookByISBN(isbn)
}

// CatalogBooks returns the catalog in the order books were added.
func (lm *LibraryManager) CatalogBooks() ([]*Book, error) { return lm.db.GetCatalogBooks() }

func (lm *LibraryManager) GetBook(id uuid.UUID) (*Book, error) { return lm.db.GetBook(id) }

// ------------------ Departments ------------------

// ListBooksByDepartment normalizes the name and returns the department with
// its books. The catalog is not consulted.
func (lm *LibraryManager) ListBooksByDepartment(department string) (*Department, []*Book, error) {
	dep, err := lm.db.GetDepartment(NormalizeDepartment(department))
	if err != nil {
		return nil, nil, err
	}
	books, err := lm.db.GetDepartmentBooks(dep.Key)
	if err != nil {
		return nil, nil, err
	}
	return dep, books, nil
}

func (lm *LibraryManager) Departments() ([]*Department, error) { return lm.db.GetDepartments() }

// DepartmentName returns the display name for a key, or the key itself when
// the department is unknown.
func (lm *LibraryManager) DepartmentName(key string) string {
	dep, err := lm.db.GetDepartment(key)
	if err != nil {
		return key
	}
	return dep.Name
}

// ------------------ Members ------------------

// Member returns the registered member with that name, creating it on first use.
func (lm *LibraryManager) Member(name string) (*Member, error) {
	return lm.db.EnsureMember(strings.TrimSpace(name))
}

func (lm *LibraryManager) Members() ([]*Member, error) { return lm.db.GetMembers() }

// ------------------ Circulation ------------------

// Borrow lends the book to the named member and returns the updated member.
// A book that is already out yields ErrAlreadyBorrowed, whoever holds it.
func (lm *LibraryManager) Borrow(memberName string, bookID uuid.UUID) (*Member, error) {
	m, err := lm.Member(memberName)
	if err != nil {
		return nil, err
	}
	if err := lm.db.Borrow(m.ID, bookID); err != nil {
		return m, err
	}
	lm.log.Debug("borrowed book", "member", m.Name, "book", bookID)
	return lm.Member(m.Name)
}

// Return takes the book back from the named member. Returning a book the
// member does not hold yields ErrNotBorrowed and changes nothing.
func (lm *LibraryManager) Return(memberName string, bookID uuid.UUID) (*Member, error) {
	m, err := lm.Member(memberName)
	if err != nil {
		return nil, err
	}
	if err := lm.db.Return(m.ID, bookID); err != nil {
		return m, err
	}
	lm.log.Debug("returned book", "member", m.Name, "book", bookID)
	return lm.Member(m.Name)
}
