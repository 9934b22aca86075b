package yoloconv

// Pascal VOC annotation file output.

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// VOCSize is the image size element of a Pascal VOC annotation.
type VOCSize struct {
	Width  int `xml:"width"`
	Height int `xml:"height"`
	Depth  int `xml:"depth"`
}

// VOCBndBox is the bounding box element of a Pascal VOC object.
type VOCBndBox struct {
	XMin float64 `xml:"xmin"`
	YMin float64 `xml:"ymin"`
	XMax float64 `xml:"xmax"`
	YMax float64 `xml:"ymax"`
}

// VOCObject is a single object within a Pascal VOC annotation.
type VOCObject struct {
	Name      string    `xml:"name"`
	Pose      string    `xml:"pose"`
	Truncated int       `xml:"truncated"`
	Difficult int       `xml:"difficult"`
	BndBox    VOCBndBox `xml:"bndbox"`
}

// VOCAnnotation defines the Pascal VOC annotation structure for a single image.
type VOCAnnotation struct {
	XMLName  xml.Name    `xml:"annotation"`
	Folder   string      `xml:"folder"`
	Filename string      `xml:"filename"`
	Size     VOCSize     `xml:"size"`
	Objects  []VOCObject `xml:"object"`
}

// ToVOCAnnotations groups the Pascal VOC records by image, in order of first appearance. The
// folder element is set to folder.
func ToVOCAnnotations(records []VOCRecord, folder string) []VOCAnnotation {
	var annotations []VOCAnnotation
	index := make(map[string]int)
	for _, r := range records {
		i, found := index[r.ImageName]
		if !found {
			i = len(annotations)
			index[r.ImageName] = i
			annotations = append(annotations, VOCAnnotation{
				Folder:   folder,
				Filename: r.ImageName,
				Size:     VOCSize{Width: r.ImageWidth, Height: r.ImageHeight, Depth: 3},
			})
		}

		annotations[i].Objects = append(annotations[i].Objects, VOCObject{
			Name:   r.Label,
			Pose:   "Unspecified",
			BndBox: VOCBndBox{XMin: r.XMin, YMin: r.YMin, XMax: r.XMax, YMax: r.YMax},
		})
	}

	return annotations
}

// WriteVOC writes one XML file per annotation to dirPath, named after the image with extension
// ".xml".
func WriteVOC(dirPath string, data []VOCAnnotation) error {
	dirInfo, err := os.Stat(dirPath)
	if err != nil || !dirInfo.IsDir() {
		return fmt.Errorf("cannot access directory %q: %v", dirPath, err)
	}

	for _, a := range data {
		baseNoExt, _ := splitName(a.Filename)
		path := filepath.Join(dirPath, baseNoExt+".xml")
		err := createFile(path, func(w io.Writer) error {
			return EncodeVOC(w, a)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// EncodeVOC writes a as indented XML to w.
func EncodeVOC(w io.Writer, a VOCAnnotation) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(a); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
