package yoloconv

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

// writeFile writes content to dir/name.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// writePNG writes a width x height PNG image to dir/name.
func writePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

// writeOrientedJPEG writes a width x height JPEG image to dir/name carrying an EXIF orientation
// tag. The APP1 segment is placed right after the SOI marker.
func writeOrientedJPEG(t *testing.T, dir, name string, width, height int,
		orientation uint16) string {

	t.Helper()
	var enc bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := jpeg.Encode(&enc, img, nil); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}

	// Big endian TIFF header with a single IFD0 entry: tag 0x0112, type SHORT, count 1.
	var exif bytes.Buffer
	exif.WriteString("Exif\x00\x00MM\x00\x2a")
	for _, v := range []interface{}{uint32(8), uint16(1), uint16(0x0112), uint16(3), uint32(1),
		orientation, uint16(0), uint32(0)} {
		binary.Write(&exif, binary.BigEndian, v)
	}

	var out bytes.Buffer
	out.Write(enc.Bytes()[:2])
	out.Write([]byte{0xff, 0xe1})
	binary.Write(&out, binary.BigEndian, uint16(exif.Len()+2))
	out.Write(exif.Bytes())
	out.Write(enc.Bytes()[2:])

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// newTestDataset creates a dataset root with a data.yaml, the given label files and PNG images,
// and returns the path of the config file.
func newTestDataset(t *testing.T, config string, labels map[string]string,
		images map[string]ImageSize) string {

	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{ImagesDirName, LabelsDirName} {
		if err := os.Mkdir(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	for name, content := range labels {
		writeFile(t, filepath.Join(root, LabelsDirName), name, content)
	}
	for name, size := range images {
		writePNG(t, filepath.Join(root, ImagesDirName), name, size.Width, size.Height)
	}
	return writeFile(t, root, "data.yaml", config)
}

const catDogConfig = "names:\n  - cat\n  - dog\n"

// catDogRecords are the records of the scenario img1.txt "0 0.5 0.5 0.2 0.4" for a 100x200
// image.
func catDogRecords() []JoinedRecord {
	return []JoinedRecord{{
		ImageID:     "img1",
		ImageName:   "img1.jpg",
		ImageWidth:  100,
		ImageHeight: 200,
		Label:       "cat",
		XCenter:     0.5,
		YCenter:     0.5,
		Width:       0.2,
		Height:      0.4,
		LabelID:     0,
	}}
}
