package yoloconv

// COCO object detection (instances) file output.

// COCOImage is an entry of the images list of a COCO file.
type COCOImage struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// COCOAnnotation is an entry of the annotations list of a COCO file.
type COCOAnnotation struct {
	ID           int        `json:"id"`
	ImageID      int        `json:"image_id"`
	CategoryID   int        `json:"category_id"`
	BBox         [4]float64 `json:"bbox"` // x, y, width, height
	Area         float64    `json:"area"`
	IsCrowd      int        `json:"iscrowd"`
	Segmentation []float64  `json:"segmentation"`
}

// COCODataset defines the COCO instances file structure.
type COCODataset struct {
	Images      []COCOImage      `json:"images"`
	Annotations []COCOAnnotation `json:"annotations"`
	Categories  []COCOCategory   `json:"categories"`
}

// ToCOCODataset converts the unified records to a COCO instances file. Image ids are assigned
// from 1 in order of first appearance in records. Category ids are label ids plus one, matching
// labels.CategoriesCOCO.
func ToCOCODataset(records []JoinedRecord, labels LabelMap) COCODataset {
	data := COCODataset{
		Images:      make([]COCOImage, 0),
		Annotations: make([]COCOAnnotation, 0, len(records)),
		Categories:  labels.CategoriesCOCO(),
	}

	imageIDs := make(map[string]int)
	for _, r := range records {
		imageID, found := imageIDs[r.ImageName]
		if !found {
			imageID = len(data.Images) + 1
			imageIDs[r.ImageName] = imageID
			data.Images = append(data.Images, COCOImage{
				ID:       imageID,
				FileName: r.ImageName,
				Width:    r.ImageWidth,
				Height:   r.ImageHeight,
			})
		}

		b := r.Box().COCO(r.ImageWidth, r.ImageHeight)
		data.Annotations = append(data.Annotations, COCOAnnotation{
			ID:           len(data.Annotations) + 1,
			ImageID:      imageID,
			CategoryID:   r.LabelID + 1,
			BBox:         [4]float64{b.X, b.Y, b.Width, b.Height},
			Area:         b.Width * b.Height,
			Segmentation: make([]float64, 0), // Must not be nil as that becomes JSON null.
		})
	}

	return data
}

// WriteCOCO writes the COCO instances file to outFile.
func WriteCOCO(outFile string, data COCODataset) error {
	return WriteJSON(outFile, data)
}
