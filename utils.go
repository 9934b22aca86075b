package yoloconv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// filesByExtInDir returns the names of all regular files (or symlinks) with suffix ext found
// directly in directory dirPath, sorted by file name. All files are returned if ext is empty.
func filesByExtInDir(dirPath, ext string) ([]string, error) {
	dirInfo, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %w", dirPath, err)
	}
	if !dirInfo.IsDir() {
		return nil, fmt.Errorf("cannot read directory %q: not a directory", dirPath)
	}

	// os.ReadDir sorts by file name.
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access %q: %w", dirPath, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		mode := entry.Type()
		if (!mode.IsRegular() && mode&os.ModeSymlink == 0) || !strings.HasSuffix(name, ext) {
			continue
		}
		files = append(files, name)
	}

	return files, nil
}

// splitName splits a file name into the name without its final extension and the extension
// (without the dot). The extension is empty if the name has none.
func splitName(name string) (baseNoExt, ext string) {
	name = filepath.Base(name)
	ext = filepath.Ext(name)
	baseNoExt = name[0 : len(name)-len(ext)]
	return baseNoExt, strings.TrimPrefix(ext, ".")
}

// readLines returns a slice of lines read from the file at path.
func readLines(path string) (lines []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %q: %w", path, err)
	}
	defer closeWithErrCheck(file, &err)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %q as lines: %w", path, err)
	}

	return lines, nil
}

// createFile creates the file at path and passes it to write. The file is closed afterwards and
// a close error is returned unless write failed.
func createFile(path string, write func(w io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file %q: %w", path, err)
	}
	defer closeWithErrCheck(file, &err)

	bw := bufio.NewWriter(file)
	if err := write(bw); err != nil {
		return fmt.Errorf("cannot write file %q: %w", path, err)
	}
	return bw.Flush()
}

// closeWithErrCheck calls c.Close(). If it returns an error, and (*e == nil), e is set to that
// error.
func closeWithErrCheck(c io.Closer, e *error) {
	err := c.Close()
	if err != nil && *e == nil {
		*e = err
	}
}
