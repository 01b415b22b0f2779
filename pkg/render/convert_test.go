package render

import (
	"bytes"
	"testing"

	"github.com/matzehuels/stackradar/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="red"/></svg>`

func TestMissingConverter(t *testing.T) {
	saved := converter
	converter = "stackradar-no-such-converter"
	t.Cleanup(func() { converter = saved })

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	if _, err := ToPDF([]byte(tinySVG)); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF err = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG([]byte(tinySVG), 1); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG err = %v, want UNSUPPORTED", err)
	}
}

func TestToPNGRejectsScale(t *testing.T) {
	if _, err := ToPNG([]byte(tinySVG), 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestConvert(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG([]byte(tinySVG), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG: % x", png[:min(8, len(png))])
	}
	pdf, err := ToPDF([]byte(tinySVG))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", pdf[:min(8, len(pdf))])
	}
}
