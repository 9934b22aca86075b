package yoloconv

// TFRecord object detection specific functionality.

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/protobuf/proto"
	"github.com/ryszard/tfutils/go/example"
	"github.com/ryszard/tfutils/go/tfrecord"
	"github.com/ryszard/tfutils/proto/tensorflow/core/example" // package tensorflow
)

// TFFeatureMap maps feature names to their values. Values must be convertible to
// tensorflow.Feature.
type TFFeatureMap map[string]interface{}

// tfRecordImage is the per image input for a TFRecord example.
type tfRecordImage struct {
	name    string
	records []JoinedRecord
}

// groupByImage groups records by image name, keeping the order of first appearance.
func groupByImage(records []JoinedRecord) []tfRecordImage {
	var images []tfRecordImage
	index := make(map[string]int)
	for _, r := range records {
		i, found := index[r.ImageName]
		if !found {
			i = len(images)
			index[r.ImageName] = i
			images = append(images, tfRecordImage{name: r.ImageName})
		}
		images[i].records = append(images[i].records, r)
	}
	return images
}

// toTFFeatureMap converts the records of a single image, stored at imagePath, to the TensorFlow
// object detection feature map.
func toTFFeatureMap(imagePath string, img tfRecordImage) (TFFeatureMap, error) {
	// The width and height of the records are authoritative, only the format is needed here.
	_, format, err := decodeImageConfig(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode the image metadata: %v", err)
	}

	imgData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read the image: %v", err)
	}

	first := img.records[0]
	f := make(TFFeatureMap, 16)
	f["image/height"] = first.ImageHeight
	f["image/width"] = first.ImageWidth
	f["image/filename"] = img.name
	f["image/source_id"] = img.name
	f["image/encoded"] = imgData
	f["image/format"] = format

	// Per label data. Boxes are corner coordinates normalised by the image size.
	numLabels := len(img.records)
	xmins := make([]float32, numLabels)
	ymins := make([]float32, numLabels)
	xmaxs := make([]float32, numLabels)
	ymaxs := make([]float32, numLabels)
	classes := make([]string, numLabels)
	classIDs := make([]int64, numLabels)
	for i, r := range img.records {
		b := r.Box().PascalVOC(r.ImageWidth, r.ImageHeight)
		xmins[i] = float32(b.XMin / float64(r.ImageWidth))
		ymins[i] = float32(b.YMin / float64(r.ImageHeight))
		xmaxs[i] = float32(b.XMax / float64(r.ImageWidth))
		ymaxs[i] = float32(b.YMax / float64(r.ImageHeight))
		classes[i] = r.Label
		classIDs[i] = int64(r.LabelID + 1)
	}
	f["image/object/bbox/xmin"] = xmins
	f["image/object/bbox/ymin"] = ymins
	f["image/object/bbox/xmax"] = xmaxs
	f["image/object/bbox/ymax"] = ymaxs
	f["image/object/class/text"] = classes
	f["image/object/class/label"] = classIDs

	return f, nil
}

// WriteTFRecord does a streaming conversion, serialisation and file write of the records to one
// or more TFRecord files stored under recordFilePath (with suffixes added when numShards>1). One
// example is written per image; the images are read from imageDir.
//
// The label map, with the class ids used in the examples, is written to labelMapPath.
func WriteTFRecord(recordFilePath, labelMapPath, imageDir string, records []JoinedRecord,
		labels LabelMap, numShards int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("conversion to TensorFlow Example failed: %v", e)
		}
	}()

	if numShards <= 0 {
		numShards = 1
	}

	images := groupByImage(records)
	if len(images) == 0 {
		log.Print("No labelled images, not writing TFRecords")
		return SaveTFRecordLabelMap(labelMapPath, labels)
	}

	fmtShardSuffix := func(idx int) string {
		return fmt.Sprintf("-%05d-of-%05d", idx, numShards)
	}

	var shardFile *os.File
	shardSize := int(math.Ceil(float64(len(images)) / float64(numShards)))
	shardIdx := -1
	defer func() {
		if shardFile != nil {
			closeWithErrCheck(shardFile, &err)
		}
	}()

	// Convert and serialise one image at a time.
	for i, img := range images {
		// Check if a new shard file needs to be opened for writing.
		if i%shardSize == 0 {
			shardIdx++

			// Close the previous shard file.
			if shardFile != nil {
				if err := shardFile.Close(); err != nil {
					return err
				}
				shardFile = nil
			}

			shardPath := recordFilePath
			if numShards > 1 {
				shardPath += fmtShardSuffix(shardIdx)
			}
			f, err := os.Create(shardPath)
			if err != nil {
				return fmt.Errorf("failed to create shard at %q: %v", shardPath, err)
			}
			shardFile = f
		}

		features, err := toTFFeatureMap(filepath.Join(imageDir, img.name), img)
		if err != nil {
			return fmt.Errorf("failed to convert %q: %w", img.name, err)
		}
		if err := writeTFRecordExample(shardFile, example.New(features)); err != nil {
			return fmt.Errorf("failed to write example for %q: %w", img.name, err)
		}
	}
	log.Printf("Wrote %d examples to %d shard(s)", len(images), shardIdx+1)

	return SaveTFRecordLabelMap(labelMapPath, labels)
}

// writeTFRecordExample serialises the example and writes it as a TFRecord to w.
func writeTFRecordExample(w io.Writer, e *tensorflow.Example) error {
	enc, err := proto.Marshal(e)
	if err != nil {
		return err
	}

	return tfrecord.Write(w, enc)
}

// SaveTFRecordLabelMap writes labels in the prototxt format of the TensorFlow object detection
// StringIntLabelMap to path. Ids are 1-based, as in labels.CategoriesCOCO.
func SaveTFRecordLabelMap(path string, labels LabelMap) error {
	return createFile(path, func(w io.Writer) error {
		return EncodeTFRecordLabelMap(w, labels)
	})
}

// EncodeTFRecordLabelMap writes labels as StringIntLabelMap prototxt to w.
func EncodeTFRecordLabelMap(w io.Writer, labels LabelMap) error {
	for _, c := range labels.CategoriesCOCO() {
		if _, err := fmt.Fprintf(w, "item {\n  id: %d\n  name: %q\n}\n", c.ID, c.Name); err != nil {
			return err
		}
	}
	return nil
}
