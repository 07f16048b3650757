package service

import (
	"sort"
	"strings"
)

// AlbumIdentity decides when two albums count as the same release for one
// owner. Normalization is comparison-only; stored display values are never
// rewritten.
type AlbumIdentity struct{}

// NewAlbumIdentity creates a new album identity normalizer.
func NewAlbumIdentity() *AlbumIdentity {
	return &AlbumIdentity{}
}

// NormalizeTitle lower-cases the title, trims it, and collapses internal
// whitespace runs to single spaces.
func (v *AlbumIdentity) NormalizeTitle(title string) string {
	return normalize(title)
}

// ArtistsKey builds the order-insensitive multiset key for an artist list:
// each name normalized like a title, then sorted and joined. Cardinality is
// preserved, so a duplicated credit produces a different key than a single one.
func (v *AlbumIdentity) ArtistsKey(artists []string) string {
	norm := make([]string, len(artists))
	for i, a := range artists {
		norm[i] = normalize(a)
	}
	sort.Strings(norm)
	return strings.Join(norm, "|")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
