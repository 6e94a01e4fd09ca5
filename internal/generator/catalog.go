package generator

import (
	"encoding/json"
	"os"
	"strings"
)

// CatalogName is the ROM database consumed by the browser front end.
const CatalogName = "db.json"

// CatalogEntry describes one ROM of the browser build.
type CatalogEntry struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Dir     string            `json:"dir"`
	Package string            `json:"package"`
	Titles  map[string]string `json:"titles,omitempty"`
}

// BuildCatalog lists every ROM of plan. IDs follow plan order.
func BuildCatalog(plan *Plan, languages []string) []CatalogEntry {
	var out []CatalogEntry
	for _, c := range plan.Collections {
		dir := "."
		if !c.Default {
			dir = c.Name
		}
		for _, e := range c.Entries {
			entry := CatalogEntry{
				ID:      len(out),
				Name:    e.Name,
				Dir:     dir,
				Package: c.Archive,
			}
			for _, lang := range languages {
				if title, ok := c.Manifest.Title(e.Name, lang); ok {
					if entry.Titles == nil {
						entry.Titles = make(map[string]string)
					}
					entry.Titles[strings.ToLower(lang)] = title
				}
			}
			out = append(out, entry)
		}
	}
	return out
}

// WriteCatalog writes entries as indented JSON.
func WriteCatalog(path string, entries []CatalogEntry) error {
	if entries == nil {
		entries = []CatalogEntry{}
	}
	data, err := json.MarshalIndent(entries, "", " ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ioErr("write catalog", path, err)
	}
	return nil
}
