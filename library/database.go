package library

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Database keeps the whole library state in a private in-memory SQLite
// database. Nothing survives Close.
type Database struct {
	db *sqlx.DB

	addHoldingStmt   *sqlx.Stmt
	ensureMemberStmt *sqlx.Stmt
}

// NewDatabase opens a fresh in-memory database, applies the schema and
// prepares common statements. Every call gets its own database.
func NewDatabase() (*Database, error) {
	dsn := fmt.Sprintf("file:library-%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A memory database lives as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and drops the database.
func (d *Database) Close() error {
	if d.addHoldingStmt != nil {
		d.addHoldingStmt.Close()
	}
	if d.ensureMemberStmt != nil {
		d.ensureMemberStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func applyMigrations(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE departments (
            key TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            position INTEGER NOT NULL
        );`,
		`CREATE TABLE books (
            id TEXT PRIMARY KEY,
            department TEXT REFERENCES departments(key),
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            isbn TEXT NOT NULL,
            year INTEGER NOT NULL,
            borrowed BOOLEAN NOT NULL DEFAULT 0
        );`,
		`CREATE INDEX idx_books_department ON books(department);`,
		`CREATE INDEX idx_books_isbn ON books(isbn);`,
		// The catalog list: one row per addition, duplicates allowed.
		`CREATE TABLE holdings (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            book_id TEXT NOT NULL REFERENCES books(id)
        );`,
		`CREATE TABLE members (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE
        );`,
		// A book is lent to at most one member at a time.
		`CREATE TABLE loans (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            member_id INTEGER NOT NULL REFERENCES members(id),
            book_id TEXT NOT NULL UNIQUE REFERENCES books(id)
        );`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return tx.Commit()
}

func (d *Database) prepareStatements() error {
	var err error
	if d.addHoldingStmt, err = d.db.Preparex(`INSERT INTO holdings(book_id) VALUES(?)`); err != nil {
		return err
	}
	if d.ensureMemberStmt, err = d.db.Preparex(`INSERT INTO members(name) VALUES(?) ON CONFLICT(name) DO NOTHING`); err != nil {
		return err
	}
	return nil
}

const bookColumns = `b.id, COALESCE(b.department,'') AS department, b.title, b.author, b.isbn, b.year, b.borrowed`

// ---------------------------------------------------------------------------
// Departments
// ---------------------------------------------------------------------------

// PutDepartment inserts a department or renames an existing one.
func (d *Database) PutDepartment(dep Department) error {
	_, err := d.db.Exec(`INSERT INTO departments(key,name,position) VALUES(?,?,?)
        ON CONFLICT(key) DO UPDATE SET name=excluded.name`, dep.Key, dep.Name, dep.Position)
	return err
}

func (d *Database) GetDepartment(key string) (*Department, error) {
	var dep Department
	err := d.db.Get(&dep, `SELECT key,name,position FROM departments WHERE key=?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", key, ErrDepartmentNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

// GetDepartments returns departments in seed order.
func (d *Database) GetDepartments() ([]*Department, error) {
	var deps []*Department
	if err := d.db.Select(&deps, `SELECT key,name,position FROM departments ORDER BY position, key`); err != nil {
		return nil, err
	}
	return deps, nil
}

// GetDepartmentBooks returns the books of a department in insertion order.
func (d *Database) GetDepartmentBooks(key string) ([]*Book, error) {
	var books []*Book
	err := d.db.Select(&books, `SELECT `+bookColumns+` FROM books b WHERE b.department=? ORDER BY b.rowid`, key)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ---------------------------------------------------------------------------
// Books and holdings
// ---------------------------------------------------------------------------

// InsertBook stores b unless a book with the same ID already exists.
func (d *Database) InsertBook(b *Book) error {
	_, err := d.db.Exec(`INSERT INTO books(id,department,title,author,isbn,year,borrowed)
        VALUES(?,NULLIF(?,''),?,?,?,?,?) ON CONFLICT(id) DO NOTHING`,
		b.ID, b.Department, b.Title, b.Author, b.ISBN, b.Year, b.Borrowed)
	return err
}

func (d *Database) GetBook(id uuid.UUID) (*Book, error) {
	var b Book
	err := d.db.Get(&b, `SELECT `+bookColumns+` FROM books b WHERE b.id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %s: %w", id, ErrBookNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// AddHolding appends one catalog entry for the book and returns its holding ID.
func (d *Database) AddHolding(bookID uuid.UUID) (int64, error) {
	res, err := d.addHoldingStmt.Exec(bookID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RemoveHolding deletes the oldest catalog entry for the book.
func (d *Database) RemoveHolding(bookID uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM holdings WHERE id = (SELECT MIN(id) FROM holdings WHERE book_id=?)`, bookID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("book %s not in catalog: %w", bookID, ErrBookNotFound)
	}
	return nil
}

// GetCatalogBooks returns the catalog in holding order, one row per holding.
func (d *Database) GetCatalogBooks() ([]*Book, error) {
	var books []*Book
	err := d.db.Select(&books, `SELECT `+bookColumns+` FROM holdings h JOIN books b ON b.id = h.book_id ORDER BY h.id`)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// FindCatalogBookByISBN returns the first catalog entry with the exact ISBN.
func (d *Database) FindCatalogBookByISBN(isbn string) (*Book, error) {
	var b Book
	err := d.db.Get(&b, `SELECT `+bookColumns+` FROM holdings h JOIN books b ON b.id = h.book_id
        WHERE b.isbn=? ORDER BY h.id LIMIT 1`, isbn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("isbn %q: %w", isbn, ErrBookNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ---------------------------------------------------------------------------
// Members and loans
// ---------------------------------------------------------------------------

// EnsureMember returns the member with that name, registering it first if needed.
func (d *Database) EnsureMember(name string) (*Member, error) {
	if _, err := d.ensureMemberStmt.Exec(name); err != nil {
		return nil, err
	}
	var m Member
	if err := d.db.Get(&m, `SELECT id,name FROM members WHERE name=?`, name); err != nil {
		return nil, err
	}
	return d.withLoans(&m)
}

// GetMembers returns all members in registration order.
func (d *Database) GetMembers() ([]*Member, error) {
	var members []*Member
	if err := d.db.Select(&members, `SELECT id,name FROM members ORDER BY id`); err != nil {
		return nil, err
	}
	for _, m := range members {
		if _, err := d.withLoans(m); err != nil {
			return nil, err
		}
	}
	return members, nil
}

func (d *Database) withLoans(m *Member) (*Member, error) {
	books, err := d.GetMemberLoans(m.ID)
	if err != nil {
		return nil, err
	}
	m.BorrowedBooks = books
	return m, nil
}

// GetMemberLoans returns the books a member holds in borrow order.
func (d *Database) GetMemberLoans(memberID int64) ([]*Book, error) {
	books := []*Book{}
	err := d.db.Select(&books, `SELECT `+bookColumns+` FROM loans l JOIN books b ON b.id = l.book_id
        WHERE l.member_id=? ORDER BY l.id`, memberID)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Borrow lends the book to the member and raises its borrowed flag in one
// transaction.
func (d *Database) Borrow(memberID int64, bookID uuid.UUID) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var borrowed bool
	err = tx.Get(&borrowed, `SELECT borrowed FROM books WHERE id=?`, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("book %s: %w", bookID, ErrBookNotFound)
	}
	if err != nil {
		return err
	}
	if borrowed {
		return fmt.Errorf("book %s: %w", bookID, ErrAlreadyBorrowed)
	}

	if _, err := tx.Exec(`INSERT INTO loans(member_id,book_id) VALUES(?,?)`, memberID, bookID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE books SET borrowed=1 WHERE id=?`, bookID); err != nil {
		return err
	}
	return tx.Commit()
}

// Return ends the member's loan of the book and clears its borrowed flag.
func (d *Database) Return(memberID int64, bookID uuid.UUID) error {
	tx, err := d.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var loanID int64
	err = tx.Get(&loanID, `SELECT id FROM loans WHERE member_id=? AND book_id=?`, memberID, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("book %s: %w", bookID, ErrNotBorrowed)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM loans WHERE id=?`, loanID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE books SET borrowed=0 WHERE id=?`, bookID); err != nil {
		return err
	}
	return tx.Commit()
}
