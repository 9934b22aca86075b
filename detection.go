package yoloconv

// YOLO label file parsing.

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// LabelFileExt is the file extension of YOLO label files.
const LabelFileExt = ".txt"

// YOLOBox is a bounding box given by its center, width and height, all normalised to [0, 1] by
// the image dimensions.
type YOLOBox struct {
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// DetectionRecord is a single line of a YOLO label file.
type DetectionRecord struct {
	ImageID string // The label file name without extension.
	LabelID int
	YOLOBox
}

// LoadDetections parses all label files in labelDir, in file name order. Lines are returned in
// file order. Any malformed line aborts the load with an error wrapping ErrParse.
func LoadDetections(labelDir string) ([]DetectionRecord, error) {
	labelFiles, err := filesByExtInDir(labelDir, LabelFileExt)
	if err != nil {
		return nil, err
	}
	log.Printf("Parsing labels for %d files", len(labelFiles))

	var records []DetectionRecord
	for _, name := range labelFiles {
		path := filepath.Join(labelDir, name)
		lines, err := readLines(path)
		if err != nil {
			return nil, err
		}

		imageID, _ := splitName(name)
		for i, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			r, err := ParseDetectionLine(imageID, line)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
			}
			records = append(records, r)
		}
	}

	return records, nil
}

// ParseDetectionLine parses a "label_id x_center y_center width height" line.
func ParseDetectionLine(imageID, line string) (DetectionRecord, error) {
	r := DetectionRecord{ImageID: imageID}

	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return r, fmt.Errorf("%w: expected 5 values, got %d in %q", ErrParse, len(tokens), line)
	}

	id, err := strconv.Atoi(tokens[0])
	if err != nil || id < 0 {
		return r, fmt.Errorf("%w: invalid label index %q", ErrParse, tokens[0])
	}
	r.LabelID = id

	coords := [4]*float64{&r.XCenter, &r.YCenter, &r.Width, &r.Height}
	for i, p := range coords {
		if *p, err = strconv.ParseFloat(tokens[i+1], 64); err != nil {
			return r, fmt.Errorf("%w: unexpected values in %q: %v", ErrParse, line, err)
		}
		// Values outside [0, 1] are kept, but NaN and infinities are not numbers.
		if math.IsNaN(*p) || math.IsInf(*p, 0) {
			return r, fmt.Errorf("%w: non-finite value %q in %q", ErrParse, tokens[i+1], line)
		}
	}

	return r, nil
}
