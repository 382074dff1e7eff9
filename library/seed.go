package library

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

//go:embed seed/departments.json
var defaultSeed []byte

var seedJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// SeedData is the on-disk shape of a department seed file.
type SeedData struct {
	Departments []SeedDepartment `json:"departments"`
}

type SeedDepartment struct {
	Name  string     `json:"name"`
	Books []SeedBook `json:"books"`
}

type SeedBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Year   int    `json:"year"`
}

// DefaultSeed returns the built-in five department data set.
func DefaultSeed() (*SeedData, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// LoadSeedFile reads a seed file from disk.
func LoadSeedFile(path string) (*SeedData, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes a seed document. Department names must be present and
// unique once normalized.
func LoadSeed(r io.Reader) (*SeedData, error) {
	var data SeedData
	if err := seedJSON.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	seen := make(map[string]bool, len(data.Departments))
	for i, dep := range data.Departments {
		key := NormalizeDepartment(dep.Name)
		if key == "" {
			return nil, fmt.Errorf("seed department %d has no name", i+1)
		}
		if seen[key] {
			return nil, fmt.Errorf("seed department %q listed twice", dep.Name)
		}
		seen[key] = true
	}
	return &data, nil
}

// Seed populates the department store. Seeded books are not part of the
// catalog until added with AddBooksByDepartment or AddDepartment.
func (lm *LibraryManager) Seed(data *SeedData) error {
	for i, dep := range data.Departments {
		key := NormalizeDepartment(dep.Name)
		if err := lm.db.PutDepartment(Department{Key: key, Name: strings.TrimSpace(dep.Name), Position: i}); err != nil {
			return fmt.Errorf("seed department %q: %w", dep.Name, err)
		}
		for _, sb := range dep.Books {
			b := &Book{
				ID:         uuid.New(),
				Department: key,
				Title:      strings.TrimSpace(sb.Title),
				Author:     strings.TrimSpace(sb.Author),
				ISBN:       strings.TrimSpace(sb.ISBN),
				Year:       sb.Year,
			}
			if err := lm.db.InsertBook(b); err != nil {
				return fmt.Errorf("seed book %q: %w", sb.Title, err)
			}
		}
		lm.log.Debug("seeded department", "department", key, "books", len(dep.Books))
	}
	return nil
}
