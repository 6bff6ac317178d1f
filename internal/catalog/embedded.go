package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/venues.json
var snapshot []byte

// LoadEmbedded returns the catalog snapshot bundled with the binary.
func LoadEmbedded() ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(snapshot, &entries); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return entries, nil
}
