package library

import (
	"testing"

	"pgregory.net/rapid"
)

func TestAddBooksByDepartmentAppendsEveryBook(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		mgr, err := NewLibraryManager(nil)
		if err != nil {
			rt.Fatalf("mgr: %v", err)
		}
		defer mgr.Close()

		prefix := rapid.IntRange(0, 5).Draw(rt, "prefix")
		for i := 0; i < prefix; i++ {
			if err := mgr.AddBook(NewBook("pre", "x", "p", 1)); err != nil {
				rt.Fatalf("add: %v", err)
			}
		}

		k := rapid.IntRange(0, 10).Draw(rt, "k")
		books := make([]*Book, k)
		for i := range books {
			books[i] = NewBook(rapid.StringN(0, 12, -1).Draw(rt, "title"), "a", "i", 2000)
		}

		additions, err := mgr.AddBooksByDepartment("any", books)
		if err != nil {
			rt.Fatalf("add by department: %v", err)
		}
		if len(additions) != k {
			rt.Fatalf("want %d additions, got %d", k, len(additions))
		}
		catalog, err := mgr.CatalogBooks()
		if err != nil {
			rt.Fatalf("catalog: %v", err)
		}
		if len(catalog) != prefix+k {
			rt.Fatalf("want %d catalog entries, got %d", prefix+k, len(catalog))
		}
		for i, a := range additions {
			if a.Serial != i+1 {
				rt.Fatalf("addition %d has serial %d", i, a.Serial)
			}
			if catalog[prefix+i].ID != books[i].ID {
				rt.Fatalf("catalog entry %d out of order", prefix+i)
			}
		}
	})
}

func TestBorrowedFlagMatchesLoans(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		mgr, err := NewLibraryManager(nil)
		if err != nil {
			rt.Fatalf("mgr: %v", err)
		}
		defer mgr.Close()

		books := make([]*Book, 3)
		for i := range books {
			books[i] = NewBook("b", "a", "i", 2000)
			if err := mgr.AddBook(books[i]); err != nil {
				rt.Fatalf("add: %v", err)
			}
		}
		names := []string{"ann", "ben"}

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for s := 0; s < steps; s++ {
			name := rapid.SampledFrom(names).Draw(rt, "name")
			b := rapid.SampledFrom(books).Draw(rt, "book")
			if rapid.Bool().Draw(rt, "borrow") {
				_, _ = mgr.Borrow(name, b.ID)
			} else {
				_, _ = mgr.Return(name, b.ID)
			}
		}

		held := map[string]int{}
		for _, n := range names {
			m, err := mgr.Member(n)
			if err != nil {
				rt.Fatalf("member: %v", err)
			}
			for _, b := range m.BorrowedBooks {
				held[b.ID.String()]++
			}
		}
		for _, b := range books {
			got, err := mgr.GetBook(b.ID)
			if err != nil {
				rt.Fatalf("get: %v", err)
			}
			if got.Borrowed != (held[b.ID.String()] == 1) || held[b.ID.String()] > 1 {
				rt.Fatalf("book %s borrowed=%t held=%d", b.ID, got.Borrowed, held[b.ID.String()])
			}
		}
	})
}
