// Package yoloconv converts YOLO object detection datasets to COCO and Pascal VOC bounding
// boxes.
package yoloconv

// The YOLO dataset on disk.

import (
	"path/filepath"
)

// Directory names below the dataset root.
const (
	ImagesDirName = "images"
	LabelsDirName = "labels"
)

// Dataset is a YOLO dataset: a root directory with images/ and labels/ subdirectories, and the
// dataset configuration that names the classes.
//
// Nothing is cached. Every method reads the dataset from disk again, so callers should read each
// view once.
type Dataset struct {
	Config   *DatasetConfig
	Root     string
	ImageDir string
	LabelDir string

	autoOrient bool
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithAutoOrient makes image sizes honour the EXIF orientation. See ImageIndexOptions.
func WithAutoOrient(autoOrient bool) Option {
	return func(d *Dataset) {
		d.autoOrient = autoOrient
	}
}

// OpenDataset loads the configuration at configPath for the dataset at root. If root is empty,
// the path field of the configuration is used, relative to the directory of configPath.
func OpenDataset(configPath, root string, opts ...Option) (*Dataset, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if root == "" {
		root = config.Path
		if root != "" && !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(configPath), root)
		}
	}
	if root == "" {
		root = filepath.Dir(configPath)
	}
	root = filepath.Clean(root)

	d := &Dataset{
		Config:   config,
		Root:     root,
		ImageDir: filepath.Join(root, ImagesDirName),
		LabelDir: filepath.Join(root, LabelsDirName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// LabelMap returns the class names of the dataset.
func (d *Dataset) LabelMap() LabelMap {
	return d.Config.LabelMap()
}

// Detections parses all label files.
func (d *Dataset) Detections() ([]DetectionRecord, error) {
	return LoadDetections(d.LabelDir)
}

// Images indexes the image directory.
func (d *Dataset) Images() (*ImageIndex, error) {
	return IndexImages(d.ImageDir, ImageIndexOptions{AutoOrient: d.autoOrient})
}

// Records returns the unified table: one record per bounding box, with image and class
// metadata resolved.
func (d *Dataset) Records() ([]JoinedRecord, error) {
	dets, err := d.Detections()
	if err != nil {
		return nil, err
	}
	images, err := d.Images()
	if err != nil {
		return nil, err
	}
	return Join(dets, images, images, d.LabelMap())
}

// COCO returns the COCO table.
func (d *Dataset) COCO() ([]COCORecord, error) {
	records, err := d.Records()
	if err != nil {
		return nil, err
	}
	return ToCOCO(records), nil
}

// PascalVOC returns the Pascal VOC table.
func (d *Dataset) PascalVOC() ([]VOCRecord, error) {
	records, err := d.Records()
	if err != nil {
		return nil, err
	}
	return ToPascalVOC(records), nil
}
