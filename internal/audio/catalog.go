// Package audio holds the ambient track catalog and the player state
// machine used while focusing.
package audio

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed tracks.toml
var defaultTracks []byte

type Track struct {
	ID       string `toml:"id" json:"id"`
	Name     string `toml:"name" json:"name"`
	Icon     string `toml:"icon" json:"icon"`
	Src      string `toml:"src" json:"src"`
	Fallback string `toml:"fallback" json:"fallback"`
}

type Catalog struct {
	Tracks []Track `toml:"track" json:"tracks"`
}

// ParseCatalog decodes a TOML catalog. Track ids must be present and unique.
func ParseCatalog(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("parse track catalog: %w", err)
	}

	seen := make(map[string]bool, len(catalog.Tracks))
	for i, track := range catalog.Tracks {
		if track.ID == "" {
			return Catalog{}, fmt.Errorf("track %d: id is required", i)
		}
		if track.Src == "" {
			return Catalog{}, fmt.Errorf("track %s: src is required", track.ID)
		}
		if seen[track.ID] {
			return Catalog{}, fmt.Errorf("track %s: duplicate id", track.ID)
		}
		seen[track.ID] = true
	}
	return catalog, nil
}

// DefaultCatalog returns the built-in tracks.
func DefaultCatalog() Catalog {
	catalog, err := ParseCatalog(defaultTracks)
	if err != nil {
		panic(err)
	}
	return catalog
}

func (c Catalog) Find(id string) (Track, bool) {
	for _, track := range c.Tracks {
		if track.ID == id {
			return track, true
		}
	}
	return Track{}, false
}

// Next returns the track after id, wrapping around. An unknown id yields the
// first track.
func (c Catalog) Next(id string) (Track, bool) {
	if len(c.Tracks) == 0 {
		return Track{}, false
	}
	for i, track := range c.Tracks {
		if track.ID == id {
			return c.Tracks[(i+1)%len(c.Tracks)], true
		}
	}
	return c.Tracks[0], true
}
