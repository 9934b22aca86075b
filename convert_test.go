package yoloconv

import (
	"math/rand"
	"testing"
)

func TestToCOCO(t *testing.T) {
	got := ToCOCO(catDogRecords())
	want := []COCORecord{{
		ImageName:   "img1.jpg",
		ImageWidth:  100,
		ImageHeight: 200,
		Label:       "cat",
		LabelID:     0,
		XCOCO:       40,
		YCOCO:       60,
		WidthCOCO:   20,
		HeightCOCO:  80,
	}}

	if len(got) != 1 {
		t.Fatalf("ToCOCO returned %d records, want 1", len(got))
	}
	g, w := got[0], want[0]
	if g.ImageName != w.ImageName || g.ImageWidth != w.ImageWidth || g.ImageHeight != w.ImageHeight ||
		g.Label != w.Label || g.LabelID != w.LabelID {
		t.Errorf("ToCOCO identifying fields = %+v, want %+v", g, w)
	}
	if !almostEqual(g.XCOCO, w.XCOCO) || !almostEqual(g.YCOCO, w.YCOCO) ||
		!almostEqual(g.WidthCOCO, w.WidthCOCO) || !almostEqual(g.HeightCOCO, w.HeightCOCO) {
		t.Errorf("ToCOCO box = %+v, want %+v", g.Box(), w.Box())
	}
}

func TestToPascalVOC(t *testing.T) {
	got := ToPascalVOC(catDogRecords())
	if len(got) != 1 {
		t.Fatalf("ToPascalVOC returned %d records, want 1", len(got))
	}

	r := got[0]
	if r.ImageName != "img1.jpg" || r.Label != "cat" || r.LabelID != 0 || r.ImageWidth != 100 ||
		r.ImageHeight != 200 {
		t.Errorf("ToPascalVOC identifying fields = %+v", r)
	}
	if !almostEqual(r.XMin, 40) || !almostEqual(r.YMin, 60) || !almostEqual(r.XMax, 60) ||
		!almostEqual(r.YMax, 140) {
		t.Errorf("ToPascalVOC box = (%v, %v)(%v, %v), want (40, 60)(60, 140)", r.XMin, r.YMin,
			r.XMax, r.YMax)
	}
}

func TestConversionsEmpty(t *testing.T) {
	if got := ToCOCO(nil); len(got) != 0 {
		t.Errorf("ToCOCO(nil) = %v", got)
	}
	if got := ToPascalVOC(nil); len(got) != 0 {
		t.Errorf("ToPascalVOC(nil) = %v", got)
	}
}

func TestCOCORoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		b := YOLOBox{rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()}
		w, h := 1+rng.Intn(4096), 1+rng.Intn(4096)

		got := b.COCO(w, h).YOLO(w, h)
		if !almostEqual(got.XCenter, b.XCenter) || !almostEqual(got.YCenter, b.YCenter) ||
			!almostEqual(got.Width, b.Width) || !almostEqual(got.Height, b.Height) {
			t.Fatalf("round trip of %+v at %dx%d = %+v", b, w, h, got)
		}
	}
}

func TestPascalVOCCornersOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		b := YOLOBox{rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()}
		if i%10 == 0 {
			b.Width, b.Height = 0, 0
		}
		w, h := 1+rng.Intn(4096), 1+rng.Intn(4096)

		v := b.PascalVOC(w, h)
		if v.XMin > v.XMax || v.YMin > v.YMax {
			t.Fatalf("corners of %+v at %dx%d are not ordered: %+v", b, w, h, v)
		}
	}
}

func TestConversionsDoNotClip(t *testing.T) {
	// A box extending past the top-left corner is preserved.
	b := YOLOBox{XCenter: 0.05, YCenter: 0.05, Width: 0.2, Height: 0.2}

	c := b.COCO(100, 100)
	if !almostEqual(c.X, -5) || !almostEqual(c.Y, -5) {
		t.Errorf("COCO = %+v, want top-left (-5, -5)", c)
	}
	v := b.PascalVOC(100, 100)
	if !almostEqual(v.XMin, -5) || !almostEqual(v.YMax, 15) {
		t.Errorf("PascalVOC = %+v, want xmin -5, ymax 15", v)
	}
}
