package presentation

import "testing"

func TestAssembleStructuredOrdersByKeyAndFillsTitle(t *testing.T) {
	buckets := map[int][]string{
		2: {"Second"},
		1: {"Agenda", "Point one", "Point two"},
	}
	slides := AssembleStructured(buckets)
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].SlideNumber != 1 || slides[0].Title != "Agenda" {
		t.Fatalf("unexpected first slide: %+v", slides[0])
	}
	if len(slides[0].TextContent) != 2 {
		t.Fatalf("expected 2 content entries, got %d", len(slides[0].TextContent))
	}
	if slides[1].SlideNumber != 2 || slides[1].Title != "Second" {
		t.Fatalf("unexpected second slide: %+v", slides[1])
	}
}

func TestAssembleStructuredFillsEmptyTitle(t *testing.T) {
	slides := AssembleStructured(map[int][]string{1: {}})
	if len(slides) != 1 {
		t.Fatalf("expected 1 slide")
	}
	if slides[0].Title != "Slide 1" {
		t.Fatalf("expected default title, got %q", slides[0].Title)
	}
}

func TestAssembleHeuristicFlushesAfterContentLimit(t *testing.T) {
	texts := []string{"Agenda", "c1", "c2", "c3", "c4", "c5", "c6", "c7"}
	slides := AssembleHeuristic(texts, 3)
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d: %+v", len(slides), slides)
	}
	if slides[0].Title != "Agenda" {
		t.Fatalf("expected first short text to become title, got %q", slides[0].Title)
	}
	if len(slides[0].TextContent) != 3 {
		t.Fatalf("expected first slide to hold 3 content entries, got %d", len(slides[0].TextContent))
	}
}

func TestAssembleHeuristicDedupesCaseInsensitively(t *testing.T) {
	texts := []string{"Hello", "hello", "HELLO", "World"}
	slides := AssembleHeuristic(texts, 6)
	if len(slides) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(slides))
	}
	if slides[0].Title != "Hello" {
		t.Fatalf("expected title Hello, got %q", slides[0].Title)
	}
	if len(slides[0].TextContent) != 1 || slides[0].TextContent[0] != "World" {
		t.Fatalf("expected deduped content [World], got %v", slides[0].TextContent)
	}
}

func TestAssembleHeuristicEmptyInputReturnsNil(t *testing.T) {
	if slides := AssembleHeuristic(nil, 6); slides != nil {
		t.Fatalf("expected nil slides for empty input, got %+v", slides)
	}
}

func TestCountWordsSumsTitlesAndContent(t *testing.T) {
	slides := []Slide{
		{Title: "Hello World", TextContent: []string{"one two three"}},
		{Title: "Second", TextContent: []string{"four"}},
	}
	if got := CountWords(slides); got != 6 {
		t.Fatalf("expected 6 words, got %d", got)
	}
}
