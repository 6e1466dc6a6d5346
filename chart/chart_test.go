package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBarWritesValidSVG(t *testing.T) {
	Convey("Given labeled values", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "bar.svg")

		Convey("When Bar writes the chart", func() {
			err := Bar([]string{"fifo", "spt"}, []float64{10.5, 8.2}, "Policy Comparison", path)

			Convey("Then the file exists and is well-formed SVG", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				content := string(data)
				So(strings.HasPrefix(content, "<svg"), ShouldBeTrue)
				So(strings.HasSuffix(content, "</svg>"), ShouldBeTrue)
				So(strings.Contains(content, "fifo"), ShouldBeTrue)
			})
		})
	})
}

func TestLineHandlesSinglePoint(t *testing.T) {
	Convey("Given a single data point", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "line.svg")

		Convey("When Line writes the chart", func() {
			err := Line([]string{"only"}, []float64{5.0}, "Single", path)

			Convey("Then it does not divide by zero and still writes valid SVG", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(strings.HasPrefix(string(data), "<svg"), ShouldBeTrue)
			})
		})
	})
}
