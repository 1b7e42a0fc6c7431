package clients

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/fisto/crm-sync/internal/domain"
)

type seedFile struct {
	Clients []domain.Client `toml:"clients"`
}

// ParseSeed decodes a TOML document with a [[clients]] array.
func ParseSeed(data []byte) ([]domain.Client, error) {
	var seed seedFile
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse clients: %w", err)
	}
	return seed.Clients, nil
}

// LoadFile reads a seed file and adds every client to a new book. A missing
// file yields an empty book.
func LoadFile(path string) (*Book, error) {
	book := NewBook()
	if path == "" {
		return book, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return book, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read clients file: %w", err)
	}
	seeded, err := ParseSeed(data)
	if err != nil {
		return nil, err
	}
	for i, c := range seeded {
		if _, err := book.Add(c); err != nil {
			return nil, fmt.Errorf("client %d in %s: %w", i+1, path, err)
		}
	}
	return book, nil
}
