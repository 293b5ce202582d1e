package tagging

import (
	"reflect"
	"strings"
	"testing"
)

func TestDeriveCountDescendingWithStableTies(t *testing.T) {
	tagger := NewTagger()

	tags := tagger.Derive("alpha beta alpha gamma beta delta")

	want := []string{"alpha", "beta", "gamma", "delta"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("Derive() = %v, want %v", tags, want)
	}
}

func TestDeriveDropsShortTokens(t *testing.T) {
	tagger := NewTagger()

	tags := tagger.Derive("aaa bbb aaa bbb ccc invoice")

	if !reflect.DeepEqual(tags, []string{"invoice"}) {
		t.Fatalf("Derive() = %v, want [invoice]", tags)
	}
}

func TestDeriveLowercasesAndCaps(t *testing.T) {
	tagger := NewTagger()

	tags := tagger.Derive("Invoice INVOICE payment payment contract report summary total")

	if len(tags) != 5 {
		t.Fatalf("expected 5 tags, got %d: %v", len(tags), tags)
	}
	if tags[0] != "invoice" && tags[0] != "payment" {
		t.Fatalf("expected a most-frequent token first, got %v", tags)
	}
	for _, tag := range tags {
		if tag != strings.ToLower(tag) {
			t.Fatalf("expected lowercase tags, got %q", tag)
		}
	}
	seen := make(map[string]bool)
	for _, tag := range tags {
		if seen[tag] {
			t.Fatalf("duplicate tag %q in %v", tag, tags)
		}
		seen[tag] = true
	}
}

func TestDeriveDeterministic(t *testing.T) {
	tagger := NewTagger()
	input := "quarterly report quarterly budget forecast budget planning review planning offsite"

	first := tagger.Derive(input)
	for i := 0; i < 20; i++ {
		if got := tagger.Derive(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("Derive() not deterministic: %v vs %v", got, first)
		}
	}
}

func TestDeriveEmptyText(t *testing.T) {
	tagger := NewTagger()
	if tags := tagger.Derive(""); len(tags) != 0 {
		t.Fatalf("expected no tags for empty text, got %v", tags)
	}
}
