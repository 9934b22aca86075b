package yoloconv

// KITTI label file output.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteKitti writes the Pascal VOC records to dirPath as KITTI labels, one file per image named
// after the image with extension ".txt". Only the label and the 2D bounding box fields are
// populated. Whitespace inside a label is replaced by underscores, since KITTI fields are
// whitespace separated.
func WriteKitti(dirPath string, records []VOCRecord) error {
	dirInfo, err := os.Stat(dirPath)
	if err != nil || !dirInfo.IsDir() {
		return fmt.Errorf("cannot access directory %q: %v", dirPath, err)
	}

	// Group records by image, keeping the order of first appearance.
	var order []string
	byImage := make(map[string][]VOCRecord)
	for _, r := range records {
		if _, found := byImage[r.ImageName]; !found {
			order = append(order, r.ImageName)
		}
		byImage[r.ImageName] = append(byImage[r.ImageName], r)
	}

	for _, name := range order {
		baseNoExt, _ := splitName(name)
		path := filepath.Join(dirPath, baseNoExt+LabelFileExt)
		err := createFile(path, func(w io.Writer) error {
			for _, r := range byImage[name] {
				_, err := fmt.Fprintf(w,
					"%s 0.0 0 0.0 %.2f %.2f %.2f %.2f 0.0 0.0 0.0 0.0 0.0 0.0 0.0\n",
					kittiLabel(r.Label), r.XMin, r.YMin, r.XMax, r.YMax)
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func kittiLabel(label string) string {
	return strings.Join(strings.Fields(label), "_")
}
