package games

import (
	"slices"
	"testing"
)

func TestSampleWithoutReplacement(t *testing.T) {
	t.Parallel()

	s := NewSampler(42)
	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got := s.Sample(ids, 5)
	if len(got) != 5 {
		t.Fatalf("sample size = %d, want 5", len(got))
	}

	seen := map[int64]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("duplicate id %d in %v", id, got)
		}
		seen[id] = true
		if !slices.Contains(ids, id) {
			t.Fatalf("id %d not in input", id)
		}
	}

	if !slices.Equal(ids, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}) {
		t.Fatalf("input was modified: %v", ids)
	}
}

func TestSampleClampsSize(t *testing.T) {
	t.Parallel()

	s := NewSampler(7)

	got := s.Sample([]int64{5, 6, 7}, 10)
	slices.Sort(got)
	if !slices.Equal(got, []int64{5, 6, 7}) {
		t.Fatalf("oversized sample = %v, want all ids", got)
	}

	if got := s.Sample([]int64{5, 6}, 0); len(got) != 0 {
		t.Fatalf("zero sample = %v", got)
	}
	if got := s.Sample(nil, 3); got == nil || len(got) != 0 {
		t.Fatalf("empty input sample = %#v, want empty non-nil", got)
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	t.Parallel()

	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	a := NewSampler(99).Sample(ids, 6)
	b := NewSampler(99).Sample(ids, 6)
	if !slices.Equal(a, b) {
		t.Fatalf("same seed gave %v and %v", a, b)
	}
}

func TestSampleCoversEveryID(t *testing.T) {
	t.Parallel()

	s := NewSampler(1)
	ids := []int64{1, 2, 3, 4}
	counts := map[int64]int{}
	for range 400 {
		for _, id := range s.Sample(ids, 1) {
			counts[id]++
		}
	}
	for _, id := range ids {
		if counts[id] == 0 {
			t.Fatalf("id %d never sampled: %v", id, counts)
		}
	}
}

func TestDefaultQuestionsParse(t *testing.T) {
	t.Parallel()

	qs, err := DefaultQuestions()
	if err != nil {
		t.Fatalf("default questions: %v", err)
	}

	for _, c := range Categories {
		if len(FilterByCategory(qs, c)) == 0 {
			t.Fatalf("no default questions for %s", c)
		}
	}

	for _, q := range FilterByCategory(qs, CategoryDare) {
		if len(q.Options) != 0 {
			t.Fatalf("dare %q has options", q.Text)
		}
	}
}

func TestNewSeed(t *testing.T) {
	t.Parallel()

	if _, err := NewSeed(); err != nil {
		t.Fatalf("new seed: %v", err)
	}
}
