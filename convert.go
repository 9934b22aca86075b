package yoloconv

// Bounding box conversions. No rounding or clipping to the image bounds is applied.

// COCOBox is a bounding box given by its top-left corner, width and height in pixels.
type COCOBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// VOCBox is a bounding box given by its corners in pixels.
type VOCBox struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// COCO converts b to absolute top-left and extent coordinates.
func (b YOLOBox) COCO(imageWidth, imageHeight int) COCOBox {
	w := b.Width * float64(imageWidth)
	h := b.Height * float64(imageHeight)
	return COCOBox{
		X:      b.XCenter*float64(imageWidth) - w/2,
		Y:      b.YCenter*float64(imageHeight) - h/2,
		Width:  w,
		Height: h,
	}
}

// PascalVOC converts b to absolute corner coordinates.
func (b YOLOBox) PascalVOC(imageWidth, imageHeight int) VOCBox {
	w := b.Width * float64(imageWidth)
	h := b.Height * float64(imageHeight)
	x := b.XCenter * float64(imageWidth)
	y := b.YCenter * float64(imageHeight)
	return VOCBox{XMin: x - w/2, YMin: y - h/2, XMax: x + w/2, YMax: y + h/2}
}

// YOLO converts b back to normalised center coordinates.
func (b COCOBox) YOLO(imageWidth, imageHeight int) YOLOBox {
	return YOLOBox{
		XCenter: (b.X + b.Width/2) / float64(imageWidth),
		YCenter: (b.Y + b.Height/2) / float64(imageHeight),
		Width:   b.Width / float64(imageWidth),
		Height:  b.Height / float64(imageHeight),
	}
}

// COCORecord is a row of the COCO table.
type COCORecord struct {
	ImageName   string  `json:"image_name"`
	ImageWidth  int     `json:"image_width"`
	ImageHeight int     `json:"image_height"`
	Label       string  `json:"label"`
	LabelID     int     `json:"label_id"`
	XCOCO       float64 `json:"x_coco"`
	YCOCO       float64 `json:"y_coco"`
	WidthCOCO   float64 `json:"width_coco"`
	HeightCOCO  float64 `json:"height_coco"`
}

// Box returns the COCO bounding box of r.
func (r COCORecord) Box() COCOBox {
	return COCOBox{X: r.XCOCO, Y: r.YCOCO, Width: r.WidthCOCO, Height: r.HeightCOCO}
}

// VOCRecord is a row of the Pascal VOC table.
type VOCRecord struct {
	ImageName   string  `json:"image_name"`
	ImageWidth  int     `json:"image_width"`
	ImageHeight int     `json:"image_height"`
	Label       string  `json:"label"`
	LabelID     int     `json:"label_id"`
	XMin        float64 `json:"xmin"`
	YMin        float64 `json:"ymin"`
	XMax        float64 `json:"xmax"`
	YMax        float64 `json:"ymax"`
}

// ToCOCO converts the unified records to COCO bounding boxes.
func ToCOCO(records []JoinedRecord) []COCORecord {
	out := make([]COCORecord, len(records))
	for i, r := range records {
		b := r.Box().COCO(r.ImageWidth, r.ImageHeight)
		out[i] = COCORecord{
			ImageName:   r.ImageName,
			ImageWidth:  r.ImageWidth,
			ImageHeight: r.ImageHeight,
			Label:       r.Label,
			LabelID:     r.LabelID,
			XCOCO:       b.X,
			YCOCO:       b.Y,
			WidthCOCO:   b.Width,
			HeightCOCO:  b.Height,
		}
	}
	return out
}

// ToPascalVOC converts the unified records to Pascal VOC bounding boxes.
func ToPascalVOC(records []JoinedRecord) []VOCRecord {
	out := make([]VOCRecord, len(records))
	for i, r := range records {
		b := r.Box().PascalVOC(r.ImageWidth, r.ImageHeight)
		out[i] = VOCRecord{
			ImageName:   r.ImageName,
			ImageWidth:  r.ImageWidth,
			ImageHeight: r.ImageHeight,
			Label:       r.Label,
			LabelID:     r.LabelID,
			XMin:        b.XMin,
			YMin:        b.YMin,
			XMax:        b.XMax,
			YMax:        b.YMax,
		}
	}
	return out
}
