// Package shell runs the interactive menu on top of a library catalog.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"library-catalog/library"
)

// Library is the part of the catalog the menu drives.
type Library interface {
	Departments() ([]*library.Department, error)
	DepartmentName(key string) string
	AddDepartment(department string) ([]library.Addition, error)
	ListBooksByDepartment(department string) (*library.Department, []*library.Book, error)
	SearchBookByISBN(isbn string) (*library.Book, error)
	RemoveBook(bookID uuid.UUID) error
	Member(name string) (*library.Member, error)
	Borrow(memberName string, bookID uuid.UUID) (*library.Member, error)
	Return(memberName string, bookID uuid.UUID) (*library.Member, error)
}

// Menu actions, in display order.
const (
	ActionAddBooks   = "Add books to library"
	ActionList       = "List books by department"
	ActionSearch     = "Search book by ISBN"
	ActionBorrow     = "Borrow book"
	ActionReturn     = "Return book"
	ActionRemove     = "Remove book from library"
	ActionViewMember = "View member"
	ActionExit       = "Exit"
)

var menu = []string{
	ActionAddBooks, ActionList, ActionSearch, ActionBorrow,
	ActionReturn, ActionRemove, ActionViewMember, ActionExit,
}

var (
	green   = color.New(color.FgGreen).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	blue    = color.New(color.FgBlue).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	italic  = color.New(color.FgMagenta, color.Italic).SprintFunc()
)

const farewell = "THANKYOU FOR COMING.."

type Shell struct {
	lib    Library
	prompt Prompter
	out    io.Writer
	log    *slog.Logger
}

func New(lib Library, prompt Prompter, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Shell{lib: lib, prompt: prompt, out: out, log: logger}
}

// Run shows the menu until the user exits or input ends. Lookup misses and
// storage errors are reported and the menu comes back; only prompt failures
// are returned.
func (s *Shell) Run() error {
	for {
		ans, err := s.prompt.Ask(Question{
			Kind:    Select,
			Name:    "action",
			Message: "What would you like to do?",
			Choices: choices(menu...),
		})
		if err != nil {
			return s.stop(err)
		}

		action := ans.Value("action")
		if action == ActionExit {
			s.println(italic(farewell))
			return nil
		}
		s.log.Debug("menu action", "action", action)
		if err := s.dispatch(action); err != nil {
			return s.stop(err)
		}
	}
}

// stop ends the loop. End of input and interrupts count as a normal exit.
func (s *Shell) stop(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) {
		s.println(italic(farewell))
		return nil
	}
	return err
}

func (s *Shell) dispatch(action string) error {
	switch action {
	case ActionAddBooks:
		return s.addBooks()
	case ActionList:
		return s.listBooks()
	case ActionSearch:
		return s.searchBook()
	case ActionBorrow:
		return s.borrowBook()
	case ActionReturn:
		return s.returnBook()
	case ActionRemove:
		return s.removeBook()
	case ActionViewMember:
		return s.viewMember()
	default:
		s.println(red("Unknown action: " + action))
		return nil
	}
}

func (s *Shell) addBooks() error {
	deps, err := s.lib.Departments()
	if err != nil {
		s.fail(err)
		return nil
	}
	ans, err := s.prompt.Ask(Question{
		Kind:    MultiSelect,
		Name:    "departments",
		Message: "Select departments to add books from:",
		Choices: departmentChoices(deps),
	})
	if err != nil {
		return err
	}

	selected := ans.Values("departments")
	if len(selected) == 0 {
		s.println(green("No departments selected."))
		return nil
	}
	for _, key := range selected {
		name := s.lib.DepartmentName(key)
		s.println(blue(fmt.Sprintf("\nAdding books for department: %s\n", name)))
		additions, err := s.lib.AddDepartment(key)
		for _, a := range additions {
			s.println(green(fmt.Sprintf("Added %s to the library.", a.Book.Title)))
			s.println(yellow(fmt.Sprintf("Department: %s, Serial No: %d, Book: %s", a.Department, a.Serial, a.Book.Title)))
		}
		if err != nil {
			s.fail(err)
		}
	}
	return nil
}

func (s *Shell) listBooks() error {
	deps, err := s.lib.Departments()
	if err != nil {
		s.fail(err)
		return nil
	}
	ans, err := s.prompt.Ask(Question{
		Kind:    Select,
		Name:    "department",
		Message: "Select a department to list books:",
		Choices: departmentChoices(deps),
	})
	if err != nil {
		return err
	}

	department := ans.Value("department")
	s.println(fmt.Sprintf("Listing books for department: %s", s.lib.DepartmentName(department)))
	dep, books, err := s.lib.ListBooksByDepartment(department)
	if errors.Is(err, library.ErrDepartmentNotFound) {
		s.println(green("Department not found."))
		return nil
	}
	if err != nil {
		s.fail(err)
		return nil
	}
	s.println(magenta(fmt.Sprintf("Books available in the %s department:", dep.Name)))
	for i, b := range books {
		s.println(cyan(fmt.Sprintf("%d. %s\n", i+1, b)))
	}
	return nil
}

func (s *Shell) searchBook() error {
	ans, err := s.prompt.Ask(Question{
		Kind:    Input,
		Name:    "isbn",
		Message: "Enter the ISBN of the book you want to search:",
	})
	if err != nil {
		return err
	}

	b, ok := s.findBook(ans.Value("isbn"))
	if !ok {
		return nil
	}
	s.println(green("Book found:"))
	s.println(b.String())
	s.println("Status: " + status(b))
	return nil
}

func (s *Shell) borrowBook() error {
	ans, err := s.prompt.Ask(
		Question{Kind: Input, Name: "memberName", Message: "Enter your name:"},
		Question{Kind: Input, Name: "isbn", Message: "Enter the ISBN of the book you want to borrow:"},
	)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(ans.Value("memberName"))
	b, ok := s.findBook(ans.Value("isbn"))
	if !ok {
		return nil
	}
	_, err = s.lib.Borrow(name, b.ID)
	switch {
	case errors.Is(err, library.ErrAlreadyBorrowed):
		s.println(green(fmt.Sprintf("Sorry, %s is already borrowed.", b.Title)))
	case err != nil:
		s.fail(err)
	default:
		s.println(green(fmt.Sprintf("%s has borrowed %s.", name, b.Title)))
	}
	return nil
}

func (s *Shell) returnBook() error {
	ans, err := s.prompt.Ask(
		Question{Kind: Input, Name: "memberName", Message: "Enter your name:"},
		Question{Kind: Input, Name: "isbn", Message: "Enter the ISBN of the book you want to return:"},
	)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(ans.Value("memberName"))
	isbn := strings.TrimSpace(ans.Value("isbn"))
	m, err := s.lib.Member(name)
	if err != nil {
		s.fail(err)
		return nil
	}
	// Prefer the member's own copy; it may no longer be in the catalog.
	b := heldBook(m, isbn)
	if b == nil {
		var ok bool
		if b, ok = s.findBook(isbn); !ok {
			return nil
		}
	}
	_, err = s.lib.Return(name, b.ID)
	switch {
	case errors.Is(err, library.ErrNotBorrowed):
		s.println(green(fmt.Sprintf("%s did not borrow %s.", name, b.Title)))
	case err != nil:
		s.fail(err)
	default:
		s.println(green(fmt.Sprintf("%s has returned %s.", name, b.Title)))
		if b.Department != "" {
			s.println(green(fmt.Sprintf("%s returned to the %s department.", b.Title, s.lib.DepartmentName(b.Department))))
		}
	}
	return nil
}

func (s *Shell) removeBook() error {
	ans, err := s.prompt.Ask(Question{
		Kind:    Input,
		Name:    "isbn",
		Message: "Enter the ISBN of the book you want to remove:",
	})
	if err != nil {
		return err
	}

	isbn := strings.TrimSpace(ans.Value("isbn"))
	b, err := s.lib.SearchBookByISBN(isbn)
	if err == nil {
		err = s.lib.RemoveBook(b.ID)
	}
	switch {
	case errors.Is(err, library.ErrBookNotFound):
		s.println(green(fmt.Sprintf("%s not found in the library.", isbn)))
	case err != nil:
		s.fail(err)
	default:
		s.println(green(fmt.Sprintf("Removed %s from the library.", b.Title)))
	}
	return nil
}

func (s *Shell) viewMember() error {
	ans, err := s.prompt.Ask(Question{Kind: Input, Name: "memberName", Message: "Enter the member name:"})
	if err != nil {
		return err
	}
	m, err := s.lib.Member(ans.Value("memberName"))
	if err != nil {
		s.fail(err)
		return nil
	}
	s.println(green(m.String()))
	return nil
}

// findBook looks the ISBN up in the catalog and reports a miss.
func (s *Shell) findBook(isbn string) (*library.Book, bool) {
	b, err := s.lib.SearchBookByISBN(strings.TrimSpace(isbn))
	if errors.Is(err, library.ErrBookNotFound) {
		s.println(red("Book not found."))
		return nil, false
	}
	if err != nil {
		s.fail(err)
		return nil, false
	}
	return b, true
}

func (s *Shell) fail(err error) {
	s.log.Debug("operation failed", "err", err)
	s.println(red(fmt.Sprintf("Error: %v", err)))
}

func (s *Shell) println(line string) { fmt.Fprintln(s.out, line) }

func heldBook(m *library.Member, isbn string) *library.Book {
	for _, b := range m.BorrowedBooks {
		if b.ISBN == isbn {
			return b
		}
	}
	return nil
}

func status(b *library.Book) string {
	if b.Borrowed {
		return "Borrowed"
	}
	return "Available"
}

func choices(labels ...string) []Choice {
	cs := make([]Choice, len(labels))
	for i, l := range labels {
		cs[i] = Choice{Label: l}
	}
	return cs
}

func departmentChoices(deps []*library.Department) []Choice {
	cs := make([]Choice, len(deps))
	for i, d := range deps {
		cs[i] = Choice{Label: d.Name, Value: d.Key}
	}
	return cs
}
