package yoloconv

import "fmt"

// ImageNamer resolves an image id to the image file name.
type ImageNamer interface {
	ImageName(imageID string) (string, error)
}

// ImageSizer resolves an image file name to the image size.
type ImageSizer interface {
	ImageSize(imageName string) (ImageSize, error)
}

// JoinedRecord is a DetectionRecord with the image metadata and the class name resolved. Its
// fields are the columns of the unified table.
type JoinedRecord struct {
	ImageID     string  `json:"-"`
	ImageName   string  `json:"image_name"`
	ImageWidth  int     `json:"image_width"`
	ImageHeight int     `json:"image_height"`
	Label       string  `json:"label"`
	XCenter     float64 `json:"x_center"`
	YCenter     float64 `json:"y_center"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	LabelID     int     `json:"label_id"`
}

// Box returns the normalised bounding box of r.
func (r JoinedRecord) Box() YOLOBox {
	return YOLOBox{XCenter: r.XCenter, YCenter: r.YCenter, Width: r.Width, Height: r.Height}
}

// Join resolves the image name, image size and class name of every detection. The order of dets
// is preserved. Any detection without metadata fails the join with an error wrapping ErrLookup.
func Join(dets []DetectionRecord, names ImageNamer, sizes ImageSizer, labels LabelMap) (
		[]JoinedRecord, error) {

	joined := make([]JoinedRecord, len(dets))
	for i, d := range dets {
		label, err := labels.Name(d.LabelID)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", d.ImageID, err)
		}
		name, err := names.ImageName(d.ImageID)
		if err != nil {
			return nil, err
		}
		size, err := sizes.ImageSize(name)
		if err != nil {
			return nil, err
		}

		joined[i] = JoinedRecord{
			ImageID:     d.ImageID,
			ImageName:   name,
			ImageWidth:  size.Width,
			ImageHeight: size.Height,
			Label:       label,
			XCenter:     d.XCenter,
			YCenter:     d.YCenter,
			Width:       d.Width,
			Height:      d.Height,
			LabelID:     d.LabelID,
		}
	}

	return joined, nil
}
