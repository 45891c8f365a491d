package phase_test

import (
	"testing"
	"time"

	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/internal/domain/phase"
	. "github.com/smartystreets/goconvey/convey"
)

func TestController(t *testing.T) {
	Convey("Given a controller with short phase durations", t, func() {
		c := phase.NewController(
			phase.WithPhaseDurations(10*time.Second, 20*time.Second),
		)

		Convey("When no time has passed", func() {
			ph := c.Tick(0, model.StressLow)

			Convey("Then the session should be in Initial", func() {
				So(ph, ShouldEqual, phase.Initial)
				So(c.Elapsed(), ShouldEqual, 0)
			})
		})

		Convey("When cumulative time crosses the Initial window", func() {
			c.Tick(9, model.StressLow)
			ph := c.Tick(2, model.StressLow)

			Convey("Then the session should move to Deepening", func() {
				So(ph, ShouldEqual, phase.Deepening)
				So(c.Elapsed(), ShouldEqual, 11)
			})
		})

		Convey("When cumulative time crosses the Deepening window", func() {
			ph := c.Tick(31, model.StressLow)

			Convey("Then the session should move to Maintenance", func() {
				So(ph, ShouldEqual, phase.Maintenance)
			})

			Convey("And Maintenance should be terminal", func() {
				So(c.Tick(10_000, model.StressHigh), ShouldEqual, phase.Maintenance)
			})
		})

		Convey("When ticking with zero and negative deltas", func() {
			c.Tick(5, model.StressLow)
			c.Tick(0, model.StressLow)
			c.Tick(-100, model.StressLow)

			Convey("Then elapsed time should never move backwards", func() {
				So(c.Elapsed(), ShouldEqual, 5)
				So(c.Current(), ShouldEqual, phase.Initial)
			})
		})

		Convey("When phases advance over a full session", func() {
			var seen []phase.Phase
			for i := 0; i < 40; i++ {
				seen = append(seen, c.Tick(1, model.StressLow))
			}

			Convey("Then the phase sequence should be monotonic", func() {
				for i := 1; i < len(seen); i++ {
					So(seen[i], ShouldBeGreaterThanOrEqualTo, seen[i-1])
				}
				So(seen[len(seen)-1], ShouldEqual, phase.Maintenance)
			})
		})

		Convey("When the stress level changes between ticks", func() {
			c.Tick(1, model.StressLow)
			c.Tick(1, model.StressHigh)

			Convey("Then the state should flag the change", func() {
				So(c.State().StressChanged, ShouldBeTrue)
				So(c.LastStress(), ShouldEqual, model.StressHigh)
			})

			Convey("And the flag should clear on a steady tick", func() {
				c.Tick(1, model.StressHigh)
				So(c.State().StressChanged, ShouldBeFalse)
			})
		})

		Convey("When the very first tick carries elevated stress", func() {
			c.Tick(1, model.StressHigh)

			Convey("Then no change should be flagged without a prior observation", func() {
				So(c.State().StressChanged, ShouldBeFalse)
			})
		})

		Convey("When the controller is reset", func() {
			c.Tick(31, model.StressHigh)
			c.Reset()

			Convey("Then state should return to the start of Initial", func() {
				So(c.Current(), ShouldEqual, phase.Initial)
				So(c.Elapsed(), ShouldEqual, 0)
				So(c.State().StressChanged, ShouldBeFalse)
			})
		})
	})

	Convey("Given progress reporting", t, func() {
		c := phase.NewController(
			phase.WithPhaseDurations(10*time.Second, 20*time.Second),
			phase.WithMaintenanceNominal(40*time.Second),
		)

		Convey("When halfway through Initial", func() {
			c.Tick(5, model.StressLow)

			Convey("Then progress should be 0.5", func() {
				So(c.State().Progress, ShouldAlmostEqual, 0.5)
			})
		})

		Convey("When deep into Maintenance", func() {
			c.Tick(1_000, model.StressLow)

			Convey("Then progress should saturate at 1", func() {
				So(c.State().Progress, ShouldEqual, 1)
			})
		})

		Convey("When asking for phase durations", func() {
			So(c.Duration(phase.Initial), ShouldEqual, 10*time.Second)
			So(c.Duration(phase.Deepening), ShouldEqual, 20*time.Second)
			So(c.Duration(phase.Maintenance), ShouldEqual, 40*time.Second)
		})
	})
}

func TestPhaseString(t *testing.T) {
	Convey("Given the phase enum", t, func() {
		Convey("Then wire names should be stable", func() {
			So(phase.Initial.String(), ShouldEqual, "initial")
			So(phase.Deepening.String(), ShouldEqual, "deepening")
			So(phase.Maintenance.String(), ShouldEqual, "maintenance")
		})
	})
}
