// Package renderer resolves a field's tag sequence plus a seed into
// concrete text. All randomness is derived from explicit seeds; there is no
// shared generator state, so realizations are reproducible and safe to run
// concurrently.
package renderer

import (
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/fredhopp/flip-flop-prompter/internal/models"
	"github.com/fredhopp/flip-flop-prompter/internal/snippets"
)

// ContentLibrary supplies candidate strings for category and subcategory
// tags. Implementations return an empty slice, never an error, when nothing
// matches.
type ContentLibrary interface {
	ItemsForCategory(field, category string, filter snippets.Rating) []string
	ItemsForSubcategory(field, category, subcategory string, filter snippets.Rating) []string
}

// stableHash folds a string into a 64-bit value that is stable across
// processes and platforms (FNV-1a).
func stableHash(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// TagSeed derives the per-tag seed. Hashing the field name and tag text,
// rather than the tag's position, keeps a tag's draw stable when unrelated
// tags are inserted, removed, or reordered around it.
func TagSeed(seed int64, field, tagText string) int64 {
	return seed + stableHash(field) + stableHash(tagText)
}

// pick draws one item by uniform index from a generator seeded for this tag.
func pick(items []string, tagSeed int64) string {
	r := rand.New(rand.NewSource(tagSeed))
	return items[r.Intn(len(items))]
}

// gather concatenates a tag's candidates across every active filter.
// Duplicates across filters are kept; dedup here would skew the draw.
func gather(lib ContentLibrary, field string, tag models.Tag, filters []snippets.Rating) []string {
	var items []string
	for _, f := range filters {
		switch tag.Kind {
		case models.TagCategory:
			if len(tag.Path) >= 1 {
				items = append(items, lib.ItemsForCategory(field, tag.Path[0], f)...)
			}
		case models.TagSubcategory:
			if len(tag.Path) >= 2 {
				items = append(items, lib.ItemsForSubcategory(field, tag.Path[0], tag.Path[1], f)...)
			}
		}
	}
	return items
}

// Realize resolves the field's tags into concrete text. Literal and user
// tags pass through verbatim; category and subcategory tags draw one item
// with the per-tag seed, falling back to their own text when the library
// has nothing under the active filters. Any in-progress typed text is
// appended last. Pieces are joined with ", "; empty pieces are skipped.
func Realize(lib ContentLibrary, field string, tags models.TagList, currentText string, seed int64, filters []snippets.Rating) string {
	var parts []string
	emit := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	for _, tag := range tags {
		if !tag.Random() {
			emit(tag.Text)
			continue
		}
		items := gather(lib, field, tag, filters)
		if len(items) == 0 {
			emit(tag.Text)
			continue
		}
		emit(pick(items, TagSeed(seed, field, tag.Text)))
	}
	if s := strings.TrimSpace(currentText); s != "" {
		emit(s)
	}
	return strings.Join(parts, ", ")
}

// CheckMissing reports whether a tag's referenced content is absent under
// the active filters. Category, subcategory, and literal tags are missing
// when every filter yields zero items; with no filters at all, nothing can
// resolve, so they are missing unconditionally. User text is never missing.
//
// The flag depends on mutable library state and the active filter set, so
// it must be recomputed on every filter or library change, never cached.
func CheckMissing(lib ContentLibrary, field string, tag models.Tag, filters []snippets.Rating) bool {
	switch tag.Kind {
	case models.TagUserText:
		return false
	case models.TagCategory, models.TagSubcategory:
		if len(filters) == 0 {
			return true
		}
		return len(gather(lib, field, tag, filters)) == 0
	case models.TagLiteral:
		// A literal snippet came out of the library originally; it still
		// needs at least one active filter to be considered resolvable.
		return len(filters) == 0
	}
	return false
}

// MissingTags evaluates CheckMissing for every tag in order.
func MissingTags(lib ContentLibrary, field string, tags models.TagList, filters []snippets.Rating) []bool {
	out := make([]bool, len(tags))
	for i, tag := range tags {
		out[i] = CheckMissing(lib, field, tag, filters)
	}
	return out
}
