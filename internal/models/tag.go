package models

import "strings"

// TagKind identifies how a tag contributes to a field's realized text.
type TagKind string

const (
	// TagLiteral is static snippet content emitted verbatim.
	TagLiteral TagKind = "literal"
	// TagUserText is free text the user typed and committed as a tag.
	TagUserText TagKind = "user_text"
	// TagCategory resolves to one random item from a snippet category.
	TagCategory TagKind = "category"
	// TagSubcategory resolves to one random item from a snippet subcategory.
	TagSubcategory TagKind = "subcategory"
)

// Tag is the atomic unit of a field's content: either literal text or a
// reference into the snippet library. Tags never hold a reference back to
// their owning field; the field name is passed explicitly wherever it is
// needed.
type Tag struct {
	Text string  `yaml:"text" json:"text"`
	Kind TagKind `yaml:"kind" json:"kind"`
	// Path addresses the snippet library: [category] for TagCategory,
	// [category, subcategory] for TagSubcategory. Empty otherwise.
	Path []string `yaml:"path,omitempty" json:"path,omitempty"`
	// Payload carries auxiliary content, e.g. the full instruction text
	// behind a named instruction tag ("name|content" in the stored form).
	Payload string `yaml:"payload,omitempty" json:"payload,omitempty"`
}

// NewLiteralTag creates a static snippet tag.
func NewLiteralTag(text string) Tag {
	return Tag{Text: text, Kind: TagLiteral}
}

// NewUserTextTag creates a tag from user-typed text.
func NewUserTextTag(text string) Tag {
	return Tag{Text: strings.TrimSpace(text), Kind: TagUserText}
}

// NewCategoryTag creates a tag that draws one item from a category.
func NewCategoryTag(category string) Tag {
	return Tag{Text: category, Kind: TagCategory, Path: []string{category}}
}

// NewSubcategoryTag creates a tag that draws one item from a subcategory.
func NewSubcategoryTag(category, subcategory string) Tag {
	return Tag{Text: subcategory, Kind: TagSubcategory, Path: []string{category, subcategory}}
}

// Random reports whether the tag resolves through the snippet library.
func (t Tag) Random() bool {
	return t.Kind == TagCategory || t.Kind == TagSubcategory
}

// Valid reports whether the tag's path matches its kind.
func (t Tag) Valid() bool {
	switch t.Kind {
	case TagCategory:
		return len(t.Path) == 1
	case TagSubcategory:
		return len(t.Path) == 2
	default:
		return len(t.Path) == 0
	}
}

// Equal compares tags by the (text, kind, path) triple. Payload is display
// baggage and does not participate in identity.
func (t Tag) Equal(other Tag) bool {
	if t.Text != other.Text || t.Kind != other.Kind || len(t.Path) != len(other.Path) {
		return false
	}
	for i := range t.Path {
		if t.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the tag.
func (t Tag) Clone() Tag {
	c := t
	if t.Path != nil {
		c.Path = append([]string(nil), t.Path...)
	}
	return c
}

// TagList is an ordered list of tags; order defines concatenation order
// during realization.
type TagList []Tag

// Contains reports whether an equal tag is already in the list.
func (l TagList) Contains(tag Tag) bool {
	for _, t := range l {
		if t.Equal(tag) {
			return true
		}
	}
	return false
}

// Add appends the tag unless an equal one is present. Duplicates are
// rejected silently so interactive editing stays quiet.
func (l TagList) Add(tag Tag) TagList {
	if l.Contains(tag) {
		return l
	}
	return append(l, tag)
}

// Remove deletes the first tag equal to the argument, if any.
func (l TagList) Remove(tag Tag) TagList {
	for i, t := range l {
		if t.Equal(tag) {
			return append(l[:i:i], l[i+1:]...)
		}
	}
	return l
}

// Clone returns a deep copy of the list.
func (l TagList) Clone() TagList {
	if l == nil {
		return nil
	}
	out := make(TagList, len(l))
	for i, t := range l {
		out[i] = t.Clone()
	}
	return out
}

// DisplayText renders the list for preview: random tags show as
// placeholders, everything else verbatim, joined with ", ". Typed-but-not-
// yet-tagged input is appended last.
func (l TagList) DisplayText(currentText string) string {
	var parts []string
	for _, t := range l {
		if t.Random() {
			parts = append(parts, "[RANDOM "+strings.ToUpper(t.Text)+"]")
		} else if t.Text != "" {
			parts = append(parts, t.Text)
		}
	}
	if s := strings.TrimSpace(currentText); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
