package model_test

import (
	"testing"

	"github.com/okian/pawsense/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStressLevel(t *testing.T) {
	Convey("Given the stress level ordering", t, func() {
		Convey("Then ordinals should rank low before moderate before high", func() {
			So(model.StressLow.Ordinal(), ShouldEqual, 0)
			So(model.StressModerate.Ordinal(), ShouldEqual, 1)
			So(model.StressHigh.Ordinal(), ShouldEqual, 2)
		})

		Convey("Then wire names should round-trip through the parser", func() {
			for _, level := range []model.StressLevel{
				model.StressLow,
				model.StressModerate,
				model.StressHigh,
			} {
				parsed, err := model.ParseStressLevel(level.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, level)
			}
		})
	})

	Convey("Given lenient wire input", t, func() {
		Convey("When parsing with surrounding space and mixed case", func() {
			parsed, err := model.ParseStressLevel("  HIGH ")

			Convey("Then it should still parse", func() {
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, model.StressHigh)
			})
		})

		Convey("When parsing an unknown name", func() {
			_, err := model.ParseStressLevel("panicked")

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown stress level")
			})
		})
	})
}
