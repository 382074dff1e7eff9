package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"library-catalog/library"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: check_seed <seed.json>")
		os.Exit(2)
	}

	data, err := library.LoadSeedFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading seed file: %v\n", err)
		os.Exit(1)
	}

	manager, err := library.NewLibraryManager(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating library: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	if err := manager.Seed(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding library: %v\n", err)
		os.Exit(1)
	}

	departments, err := manager.Departments()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing departments: %v\n", err)
		os.Exit(1)
	}

	total := 0
	isbns := map[string][]string{}
	for _, dep := range departments {
		_, books, err := manager.ListBooksByDepartment(dep.Key)
		if err != nil {
			fmt.Printf("Error listing %s: %v\n", dep.Name, err)
			continue
		}
		fmt.Printf("\n%s (key: %s, %d books)\n", dep.Name, dep.Key, len(books))
		fmt.Printf("%-3s %-45s %-25s %-14s %s\n", "No", "Title", "Author", "ISBN", "Year")
		fmt.Println(strings.Repeat("-", 95))
		for i, b := range books {
			fmt.Printf("%-3d %-45s %-25s %-14s %d\n", i+1, truncateString(b.Title, 45), truncateString(b.Author, 25), b.ISBN, b.Year)
			isbns[b.ISBN] = append(isbns[b.ISBN], b.Title)
		}
		total += len(books)
	}

	fmt.Printf("\nDepartments: %d\n", len(departments))
	fmt.Printf("Books: %d\n", total)
	for _, w := range sharedISBNWarnings(isbns) {
		fmt.Println(w)
	}
}

// sharedISBNWarnings reports every ISBN used by more than one title, sorted by ISBN.
func sharedISBNWarnings(isbns map[string][]string) []string {
	keys := make([]string, 0, len(isbns))
	for isbn, titles := range isbns {
		if len(titles) > 1 {
			keys = append(keys, isbn)
		}
	}
	sort.Strings(keys)

	warnings := make([]string, 0, len(keys))
	for _, isbn := range keys {
		warnings = append(warnings, fmt.Sprintf("Warning: ISBN %s is shared by %s", isbn, strings.Join(isbns[isbn], ", ")))
	}
	return warnings
}

// truncateString shortens s to at most maxLen runes.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
