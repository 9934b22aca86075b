package yoloconv

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	labels, err := LabelMapFromNames([]string{"cat", "dog", "bird"})
	if err != nil {
		t.Fatal(err)
	}
	records := twoImageRecords() // Cats 0.2x0.4 twice, one dog 0.1x0.1.

	s := Summarize(records, labels)
	if s.NumImages != 2 || s.NumBoxes != 3 {
		t.Errorf("NumImages, NumBoxes = %d, %d, want 2, 3", s.NumImages, s.NumBoxes)
	}
	if !almostEqual(s.MinArea, 0.01) || !almostEqual(s.MaxArea, 0.08) {
		t.Errorf("MinArea, MaxArea = %v, %v, want 0.01, 0.08", s.MinArea, s.MaxArea)
	}

	if len(s.Classes) != 3 {
		t.Fatalf("got %d classes, want 3", len(s.Classes))
	}
	cat, dog, bird := s.Classes[0], s.Classes[1], s.Classes[2]
	if cat.Label != "cat" || cat.Count != 2 || !almostEqual(cat.MeanWidth, 0.2) ||
		!almostEqual(cat.StdWidth, 0) || !almostEqual(cat.MeanHeight, 0.4) {
		t.Errorf("cat = %+v", cat)
	}
	if dog.Count != 1 || !almostEqual(dog.MeanWidth, 0.1) || dog.StdWidth != 0 {
		t.Errorf("dog = %+v", dog)
	}
	if bird.Count != 0 || bird.MeanWidth != 0 || math.IsNaN(bird.StdHeight) {
		t.Errorf("bird = %+v", bird)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	labels, err := LabelMapFromNames([]string{"cat"})
	if err != nil {
		t.Fatal(err)
	}

	s := Summarize(nil, labels)
	if s.NumBoxes != 0 || s.MinArea != 0 || len(s.Classes) != 1 {
		t.Errorf("Summarize(nil) = %+v", s)
	}

	var buf bytes.Buffer
	if err := s.Print(&buf); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if !strings.Contains(buf.String(), "cat") {
		t.Errorf("Print output does not list cat:\n%s", buf.String())
	}
}

func TestMeanStdDev(t *testing.T) {
	mean, std := meanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !almostEqual(mean, 5) || !almostEqual(std, math.Sqrt(32.0/7)) {
		t.Errorf("meanStdDev = %v, %v", mean, std)
	}
}
