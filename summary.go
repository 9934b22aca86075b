package yoloconv

// Dataset statistics.

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ClassSummary holds the statistics for one class. Sizes are normalised by the image size.
type ClassSummary struct {
	LabelID    int
	Label      string
	Count      int
	MeanWidth  float64
	StdWidth   float64
	MeanHeight float64
	StdHeight  float64
}

// Summary holds statistics of a set of records.
type Summary struct {
	NumImages int
	NumBoxes  int
	MinArea   float64 // Smallest normalised box area.
	MaxArea   float64 // Largest normalised box area.
	Classes   []ClassSummary
}

// Summarize computes the statistics of records. Every class of labels is listed, in index order,
// including classes without boxes.
func Summarize(records []JoinedRecord, labels LabelMap) Summary {
	type sizes struct{ widths, heights []float64 }
	byClass := make(map[int]*sizes, labels.NumLabels())
	images := make(map[string]struct{})
	areas := make([]float64, len(records))

	for i, r := range records {
		images[r.ImageName] = struct{}{}
		areas[i] = r.Width * r.Height

		s := byClass[r.LabelID]
		if s == nil {
			s = &sizes{}
			byClass[r.LabelID] = s
		}
		s.widths = append(s.widths, r.Width)
		s.heights = append(s.heights, r.Height)
	}

	summary := Summary{NumImages: len(images), NumBoxes: len(records)}
	if len(areas) > 0 {
		summary.MinArea = floats.Min(areas)
		summary.MaxArea = floats.Max(areas)
	}

	for _, k := range labels.Keys() {
		name, _ := labels.Name(k)
		c := ClassSummary{LabelID: k, Label: name}
		if s := byClass[k]; s != nil {
			c.Count = len(s.widths)
			c.MeanWidth, c.StdWidth = meanStdDev(s.widths)
			c.MeanHeight, c.StdHeight = meanStdDev(s.heights)
		}
		summary.Classes = append(summary.Classes, c)
	}

	return summary
}

// meanStdDev returns the mean and the sample standard deviation of x. The standard deviation of
// a single value is 0.
func meanStdDev(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// Print writes a human readable table of s to w.
func (s Summary) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d boxes in %d images, normalised area [%.4f, %.4f]\n",
		s.NumBoxes, s.NumImages, s.MinArea, s.MaxArea)
	if err != nil {
		return err
	}
	for _, c := range s.Classes {
		_, err := fmt.Fprintf(w, "%4d %-20s %8d  w %.4f±%.4f  h %.4f±%.4f\n", c.LabelID, c.Label,
			c.Count, c.MeanWidth, c.StdWidth, c.MeanHeight, c.StdHeight)
		if err != nil {
			return err
		}
	}
	return nil
}
