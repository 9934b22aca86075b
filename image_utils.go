package yoloconv

// Image name and size lookups.

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSize is the pixel size of an image.
type ImageSize struct {
	Width  int
	Height int
}

// ImageIndexOptions configures IndexImages.
type ImageIndexOptions struct {
	// AutoOrient decodes every image and applies its EXIF orientation, so that the size is the
	// displayed size. Without it only the image header is read.
	AutoOrient bool
}

// ImageIndex maps image ids (file names without extension) to image file names, and image file
// names to their size. It is built with a single scan of the image directory.
type ImageIndex struct {
	dir       string
	names     map[string]string    // Image id to file name.
	ambiguous map[string][]string  // Image ids shared by more than one file.
	sizes     map[string]ImageSize // File name to size.
	failures  map[string]error     // File name to decoding error.
}

// IndexImages scans imageDir and reads the size of every file in it. Files that cannot be
// decoded are not an error until their size is looked up.
func IndexImages(imageDir string, opts ImageIndexOptions) (*ImageIndex, error) {
	files, err := filesByExtInDir(imageDir, "")
	if err != nil {
		return nil, err
	}
	log.Printf("Indexing %d images", len(files))

	idx := &ImageIndex{
		dir:       imageDir,
		names:     make(map[string]string, len(files)),
		ambiguous: make(map[string][]string),
		sizes:     make(map[string]ImageSize, len(files)),
		failures:  make(map[string]error),
	}
	for _, name := range files {
		id, _ := splitName(name)
		if prev, found := idx.names[id]; found {
			if len(idx.ambiguous[id]) == 0 {
				idx.ambiguous[id] = []string{prev}
			}
			idx.ambiguous[id] = append(idx.ambiguous[id], name)
			continue
		}
		idx.names[id] = name
	}

	// Read sizes concurrently. Limit the number of goroutines in flight, as auto orientation
	// loads entire images into memory.
	type result struct {
		name string
		size ImageSize
		err  error
	}
	numTasks := 2 * runtime.NumCPU()
	if len(files) < numTasks {
		numTasks = len(files)
	}
	workQueue := make(chan string, 2*numTasks)
	results := make(chan result, 2*numTasks)

	var wg sync.WaitGroup
	wg.Add(numTasks)
	for i := 0; i < numTasks; i++ {
		go func() {
			defer wg.Done()
			for name := range workQueue {
				size, err := readImageSize(filepath.Join(imageDir, name), opts.AutoOrient)
				results <- result{name: name, size: size, err: err}
			}
		}()
	}
	go func() {
		for _, name := range files {
			workQueue <- name
		}
		close(workQueue)
		wg.Wait()
		close(results)
	}()

	for r := range results {
		if r.err != nil {
			idx.failures[r.name] = r.err
			continue
		}
		idx.sizes[r.name] = r.size
	}
	if len(idx.failures) > 0 {
		log.Printf("Could not decode %d of %d files in %q", len(idx.failures), len(files),
			imageDir)
	}

	return idx, nil
}

// Len is the number of indexed files.
func (idx *ImageIndex) Len() int {
	return len(idx.sizes) + len(idx.failures)
}

// Names returns all indexed file names, sorted.
func (idx *ImageIndex) Names() []string {
	names := make([]string, 0, idx.Len())
	for name := range idx.sizes {
		names = append(names, name)
	}
	for name := range idx.failures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path returns the path of the image file with the given name.
func (idx *ImageIndex) Path(imageName string) string {
	return filepath.Join(idx.dir, imageName)
}

// ImageName returns the file name of the image with id imageID.
func (idx *ImageIndex) ImageName(imageID string) (string, error) {
	if names, found := idx.ambiguous[imageID]; found {
		return "", fmt.Errorf("%w: image id %q matches several files %q", ErrLookup, imageID,
			names)
	}
	name, found := idx.names[imageID]
	if !found {
		return "", fmt.Errorf("%w: no image file for image id %q in %q", ErrLookup, imageID,
			idx.dir)
	}
	return name, nil
}

// ImageSize returns the size of the image file imageName.
func (idx *ImageIndex) ImageSize(imageName string) (ImageSize, error) {
	if err, failed := idx.failures[imageName]; failed {
		return ImageSize{}, fmt.Errorf("%w: cannot decode image %q: %v", ErrLookup, imageName, err)
	}
	size, found := idx.sizes[imageName]
	if !found {
		return ImageSize{}, fmt.Errorf("%w: no image file %q in %q", ErrLookup, imageName, idx.dir)
	}
	return size, nil
}

// readImageSize returns the pixel size of the image at path.
func readImageSize(path string, autoOrient bool) (ImageSize, error) {
	var size ImageSize
	if autoOrient {
		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			return ImageSize{}, err
		}
		size = ImageSize{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	} else {
		config, _, err := decodeImageConfig(path)
		if err != nil {
			return ImageSize{}, err
		}
		size = ImageSize{Width: config.Width, Height: config.Height}
	}

	if size.Width <= 0 || size.Height <= 0 {
		return ImageSize{}, fmt.Errorf("invalid image size %dx%d", size.Width, size.Height)
	}
	return size, nil
}

// decodeImageConfig opens the file at path and returns the results of image.DecodeConfig.
func decodeImageConfig(path string) (config image.Config, format string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer file.Close()

	return image.DecodeConfig(file)
}
