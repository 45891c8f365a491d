package audioshape_test

import (
	"testing"

	"github.com/okian/pawsense/internal/domain/audioshape"
	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/internal/domain/phase"
	"github.com/okian/pawsense/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func mustProfile(name string) *profile.BreedProfile {
	r, err := profile.NewRegistry()
	if err != nil {
		panic(err)
	}
	return r.Lookup(name)
}

func stressAt(level model.StressLevel) model.StressMetrics {
	return model.StressMetrics{Level: level, MovementRate: 0.5}
}

func TestShapeBPM(t *testing.T) {
	Convey("Given the default audio shaper", t, func() {
		s := audioshape.NewShaper()
		lab := mustProfile("labrador")

		Convey("When shaping an adult labrador across phases at low stress", func() {
			initial := s.Shape(phase.Initial, lab, profile.AgeAdult, stressAt(model.StressLow))
			deepening := s.Shape(phase.Deepening, lab, profile.AgeAdult, stressAt(model.StressLow))
			maintenance := s.Shape(phase.Maintenance, lab, profile.AgeAdult, stressAt(model.StressLow))

			Convey("Then BPM should follow the phase table", func() {
				So(initial.BPM, ShouldEqual, 80)
				So(deepening.BPM, ShouldEqual, 60)
				So(maintenance.BPM, ShouldEqual, 45)
			})

			Convey("And BPM should slow as the session deepens", func() {
				So(deepening.BPM, ShouldBeLessThan, initial.BPM)
				So(maintenance.BPM, ShouldBeLessThan, deepening.BPM)
			})
		})

		Convey("When shaping across age groups", func() {
			adult := s.Shape(phase.Initial, lab, profile.AgeAdult, stressAt(model.StressLow))
			puppy := s.Shape(phase.Initial, lab, profile.AgePuppy, stressAt(model.StressLow))
			senior := s.Shape(phase.Initial, lab, profile.AgeSenior, stressAt(model.StressLow))

			Convey("Then puppies run faster and seniors slower", func() {
				So(puppy.BPM, ShouldEqual, adult.BPM+5)
				So(senior.BPM, ShouldEqual, adult.BPM-5)
			})
		})

		Convey("When stress rises", func() {
			low := s.Shape(phase.Initial, lab, profile.AgeAdult, stressAt(model.StressLow))
			moderate := s.Shape(phase.Initial, lab, profile.AgeAdult, stressAt(model.StressModerate))
			high := s.Shape(phase.Initial, lab, profile.AgeAdult, stressAt(model.StressHigh))

			Convey("Then BPM should slow monotonically", func() {
				So(moderate.BPM, ShouldBeLessThan, low.BPM)
				So(high.BPM, ShouldBeLessThan, moderate.BPM)
			})
		})

		Convey("When every slowdown stacks at once", func() {
			p := s.Shape(phase.Maintenance, lab, profile.AgeSenior, stressAt(model.StressHigh))

			Convey("Then BPM should never fall below the documented floor", func() {
				So(p.BPM, ShouldBeGreaterThanOrEqualTo, audioshape.MinBPM)
			})
		})
	})
}

func TestShapeVolumeCeiling(t *testing.T) {
	Convey("Given the default audio shaper", t, func() {
		s := audioshape.NewShaper()

		Convey("When shaping any profile, phase, and stress combination", func() {
			r, err := profile.NewRegistry()
			So(err, ShouldBeNil)

			for _, name := range r.Names() {
				prof := r.Lookup(name)
				for _, ph := range []phase.Phase{phase.Initial, phase.Deepening, phase.Maintenance} {
					for _, level := range []model.StressLevel{model.StressLow, model.StressModerate, model.StressHigh} {
						p := s.Shape(ph, prof, profile.AgeAdult, stressAt(level))

						Convey("Then "+name+"/"+ph.String()+"/"+level.String()+" should respect the hard ceiling", func() {
							So(p.VolumeCeilingDB, ShouldBeLessThanOrEqualTo, audioshape.MaxVolumeDB)
							So(p.VolumeCeilingDB, ShouldBeGreaterThan, 0)
						})
					}
				}
			}
		})

		Convey("When comparing volume-sensitive and tolerant breeds", func() {
			bulldog := s.Shape(phase.Initial, mustProfile("bulldog"), profile.AgeAdult, stressAt(model.StressLow))
			lab := s.Shape(phase.Initial, mustProfile("labrador"), profile.AgeAdult, stressAt(model.StressLow))

			Convey("Then the sensitive breed should get a lower ceiling", func() {
				So(bulldog.VolumeCeilingDB, ShouldBeLessThan, lab.VolumeCeilingDB)
			})
		})
	})
}

func TestShapeBands(t *testing.T) {
	Convey("Given the default audio shaper", t, func() {
		s := audioshape.NewShaper()
		collie := mustProfile("border collie")

		Convey("When shaping the equalizer curve", func() {
			p := s.Shape(phase.Initial, collie, profile.AgeAdult, stressAt(model.StressLow))

			Convey("Then it should produce the configured number of bands", func() {
				So(len(p.Bands), ShouldEqual, 10)
			})

			Convey("And every gain should sit inside the documented range", func() {
				for _, b := range p.Bands {
					So(b.GainDB, ShouldBeGreaterThanOrEqualTo, audioshape.MinBandGainDB)
					So(b.GainDB, ShouldBeLessThanOrEqualTo, audioshape.MaxBandGainDB)
				}
			})

			Convey("And band centers should ascend across the hearing range", func() {
				for i := 1; i < len(p.Bands); i++ {
					So(p.Bands[i].CenterHz, ShouldBeGreaterThan, p.Bands[i-1].CenterHz)
				}
				So(p.Bands[0].CenterHz, ShouldBeGreaterThan, 40.0)
				So(p.Bands[len(p.Bands)-1].CenterHz, ShouldBeLessThan, 65000.0)
			})
		})

		Convey("When stress rises", func() {
			low := s.Shape(phase.Initial, collie, profile.AgeAdult, stressAt(model.StressLow))
			high := s.Shape(phase.Initial, collie, profile.AgeAdult, stressAt(model.StressHigh))

			Convey("Then no band should lose gain", func() {
				for i := range low.Bands {
					So(high.Bands[i].GainDB, ShouldBeGreaterThanOrEqualTo, low.Bands[i].GainDB)
				}
			})

			Convey("And at least one stress-response band should gain", func() {
				raised := false
				for i := range low.Bands {
					if high.Bands[i].GainDB > low.Bands[i].GainDB {
						raised = true
					}
				}
				So(raised, ShouldBeTrue)
			})
		})

		Convey("When using a custom band layout", func() {
			custom := audioshape.NewShaper(
				audioshape.WithHearingRange(100, 10_000),
				audioshape.WithBandCount(4),
			)
			p := custom.Shape(phase.Deepening, collie, profile.AgeAdult, stressAt(model.StressLow))

			Convey("Then the curve should honor the custom configuration", func() {
				So(len(p.Bands), ShouldEqual, 4)
				So(p.Bands[0].CenterHz, ShouldBeGreaterThan, 100.0)
				So(p.Bands[3].CenterHz, ShouldBeLessThan, 10_000.0)
			})
		})
	})
}

func TestSpatialBias(t *testing.T) {
	Convey("Given breeds with different spatial preferences", t, func() {
		s := audioshape.NewShaper()

		Convey("When the preference is fixed", func() {
			p := s.Shape(phase.Initial, mustProfile("bulldog"), profile.AgeAdult, stressAt(model.StressLow))

			Convey("Then the bias should be the preference's axis", func() {
				So(p.SpatialBias.Z, ShouldEqual, 1)
				So(p.SpatialBias.X, ShouldEqual, 0)
			})
		})

		Convey("When the preference is adaptive and a location is known", func() {
			stress := stressAt(model.StressLow)
			stress.Location = &model.Vector3{X: 3, Y: 0, Z: 4}
			p := s.Shape(phase.Initial, mustProfile("border collie"), profile.AgeAdult, stress)

			Convey("Then the bias should point at the subject, normalized", func() {
				So(p.SpatialBias.X, ShouldAlmostEqual, 0.6)
				So(p.SpatialBias.Z, ShouldAlmostEqual, 0.8)
			})
		})

		Convey("When the preference is adaptive with no location", func() {
			p := s.Shape(phase.Initial, mustProfile("border collie"), profile.AgeAdult, stressAt(model.StressLow))

			Convey("Then the bias should fall back to center", func() {
				So(p.SpatialBias, ShouldResemble, model.Vector3{})
			})
		})
	})
}
