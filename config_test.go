package yoloconv

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   []string
	}{
		{"list", "names: ['cat', 'dog']\n", []string{"cat", "dog"}},
		{"block list", "path: ../data\nnc: 2\nnames:\n  - cat\n  - dog\n", []string{"cat", "dog"}},
		{"mapping", "names:\n  0: cat\n  1: dog\n", []string{"cat", "dog"}},
		{"unordered mapping", "names:\n  1: dog\n  0: cat\n", []string{"dog", "cat"}},
		{"alias", "base: &n [cat, dog]\nnames: *n\n", []string{"cat", "dog"}},
		{"aliased items", "base: &c cat\nnames:\n  0: *c\n  1: dog\n", []string{"cat", "dog"}},
		{"quoted number", "names: ['1', '2']\n", []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ParseConfig([]byte(tt.config))
			if err != nil {
				t.Fatalf("ParseConfig failed: %v", err)
			}
			if got := config.LabelMap().LabelsList(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LabelsList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   error
	}{
		{"malformed", "names: [cat\n", ErrConfig},
		{"not a mapping", "- cat\n- dog\n", ErrConfig},
		{"missing names", "nc: 2\n", ErrConfig},
		{"scalar names", "names: cat\n", ErrConfig},
		{"nc mismatch", "nc: 3\nnames: [cat, dog]\n", ErrConfig},
		{"empty names", "names: []\n", ErrValidation},
		{"non-string name", "names: [cat, 7]\n", ErrValidation},
		{"nested name", "names: [cat, [dog]]\n", ErrValidation},
		{"non-integer key", "names:\n  a: cat\n", ErrValidation},
		{"float key", "names:\n  0.5: cat\n", ErrValidation},
		{"non-string value", "names:\n  0: 12\n", ErrValidation},
		{"not zero based", "names:\n  1: cat\n  2: dog\n", ErrValidation},
		{"empty name", "names: ['']\n", ErrValidation},
		{"alias to scalar", "base: &n cat\nnames: *n\n", ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.config))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseConfig error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseConfigMappingOrder(t *testing.T) {
	config, err := ParseConfig([]byte("names:\n  2: car\n  0: person\n  1: bike\n"))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	labels := config.LabelMap()
	if got, want := labels.Keys(), []int{2, 0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	want := []COCOCategory{{ID: 3, Name: "car"}, {ID: 1, Name: "person"}, {ID: 2, Name: "bike"}}
	if got := labels.CategoriesCOCO(); !reflect.DeepEqual(got, want) {
		t.Errorf("CategoriesCOCO() = %v, want %v", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.yaml", "path: datasets/pets\ntrain: images/train\n"+catDogConfig)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Path != "datasets/pets" || config.Train != "images/train" {
		t.Errorf("unexpected config %+v", config)
	}
	if got := config.LabelMap().NumLabels(); got != 2 {
		t.Errorf("NumLabels() = %d, want 2", got)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfig) {
		t.Errorf("LoadConfig(missing) error = %v, want ErrConfig", err)
	}
}
