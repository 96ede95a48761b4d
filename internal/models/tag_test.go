package models

import (
	"strings"
	"testing"
)

func TestTagEquality(t *testing.T) {
	a := NewCategoryTag("Location")
	b := NewCategoryTag("Location")
	if !a.Equal(b) {
		t.Error("identical category tags should be equal")
	}

	c := NewLiteralTag("Location")
	if a.Equal(c) {
		t.Error("tags with different kinds must not be equal")
	}

	d := NewSubcategoryTag("Human", "Gender")
	e := NewSubcategoryTag("Human", "Age")
	if d.Equal(e) {
		t.Error("tags with different paths must not be equal")
	}

	// Payload does not participate in equality.
	f := NewLiteralTag("note")
	g := NewLiteralTag("note")
	g.Payload = "extra instruction text"
	if !f.Equal(g) {
		t.Error("payload must not affect equality")
	}
}

func TestTagValid(t *testing.T) {
	cases := []struct {
		name string
		tag  Tag
		want bool
	}{
		{"literal", NewLiteralTag("x"), true},
		{"user-text", NewUserTextTag("x"), true},
		{"category", NewCategoryTag("Location"), true},
		{"subcategory", NewSubcategoryTag("Human", "Gender"), true},
		{"category-bad-path", Tag{Text: "x", Kind: TagCategory, Path: []string{"a", "b"}}, false},
		{"subcategory-bad-path", Tag{Text: "x", Kind: TagSubcategory, Path: []string{"a"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTagListRejectsDuplicates(t *testing.T) {
	var l TagList
	l = l.Add(NewCategoryTag("Location"))
	l = l.Add(NewCategoryTag("Location"))
	if len(l) != 1 {
		t.Errorf("duplicate insertion should be a silent no-op, len = %d", len(l))
	}

	// Same text under a different kind is a distinct tag.
	l = l.Add(NewLiteralTag("Location"))
	if len(l) != 2 {
		t.Errorf("distinct kind should be accepted, len = %d", len(l))
	}
}

func TestTagListRemove(t *testing.T) {
	l := TagList{NewLiteralTag("a"), NewLiteralTag("b"), NewLiteralTag("c")}
	l = l.Remove(NewLiteralTag("b"))
	if len(l) != 2 {
		t.Fatalf("len = %d, want 2", len(l))
	}
	if l[0].Text != "a" || l[1].Text != "c" {
		t.Errorf("remove disturbed ordering: %v", l)
	}

	// Removing an absent tag is a no-op.
	l = l.Remove(NewLiteralTag("zzz"))
	if len(l) != 2 {
		t.Errorf("removing absent tag changed the list, len = %d", len(l))
	}
}

func TestTagListCloneIsDeep(t *testing.T) {
	orig := TagList{NewSubcategoryTag("Human", "Age")}
	clone := orig.Clone()
	clone[0].Path[0] = "Animal"
	if orig[0].Path[0] != "Human" {
		t.Error("clone shares path memory with the original")
	}
}

func TestDisplayText(t *testing.T) {
	l := TagList{
		NewLiteralTag("golden hour"),
		NewCategoryTag("Location"),
		NewSubcategoryTag("Human", "Profession"),
	}
	got := l.DisplayText("typing here")

	if !strings.Contains(got, "golden hour") {
		t.Errorf("literal text missing: %q", got)
	}
	if !strings.Contains(got, "[RANDOM LOCATION]") {
		t.Errorf("category placeholder missing: %q", got)
	}
	if !strings.Contains(got, "typing here") {
		t.Errorf("current text missing: %q", got)
	}
	if strings.Count(got, ", ") != 3 {
		t.Errorf("pieces should be comma-joined: %q", got)
	}
}

func TestRandomKinds(t *testing.T) {
	if NewLiteralTag("x").Random() || NewUserTextTag("x").Random() {
		t.Error("literal and user text are not random tags")
	}
	if !NewCategoryTag("x").Random() || !NewSubcategoryTag("x", "y").Random() {
		t.Error("category and subcategory are random tags")
	}
}
