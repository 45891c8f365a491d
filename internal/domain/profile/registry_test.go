package profile_test

import (
	"testing"

	"github.com/okian/pawsense/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func validProfile(name string) profile.BreedProfile {
	return profile.BreedProfile{
		Name:                      name,
		PreferredFrequencies:      []float64{220, 440},
		VolumeSensitivity:         0.5,
		SpatialPreference:         profile.SpatialSurround,
		StressResponseFrequencies: []float64{220},
		ColorPreference:           profile.ColorBalanced,
		MotionSensitivity:         0.5,
		ContrastPreference:        0.5,
	}
}

func TestRegistry(t *testing.T) {
	Convey("Given a registry built from the built-in table", t, func() {
		r, err := profile.NewRegistry()
		So(err, ShouldBeNil)
		So(r, ShouldNotBeNil)

		Convey("When looking up a known breed", func() {
			p := r.Lookup("labrador")

			Convey("Then it should return that breed's profile", func() {
				So(p, ShouldNotBeNil)
				So(p.Name, ShouldEqual, "labrador")
				So(r.Known("labrador"), ShouldBeTrue)
			})
		})

		Convey("When looking up with different case and surrounding whitespace", func() {
			p := r.Lookup("  Border COLLIE ")

			Convey("Then matching should be case-insensitive and trimmed", func() {
				So(p.Name, ShouldEqual, "border collie")
			})
		})

		Convey("When looking up an unknown breed", func() {
			p := r.Lookup("australian labradoodle")

			Convey("Then it should return the default profile, never nil", func() {
				So(p, ShouldNotBeNil)
				So(p.Name, ShouldEqual, "default")
				So(p, ShouldEqual, r.Default())
				So(r.Known("australian labradoodle"), ShouldBeFalse)
			})
		})

		Convey("When listing names", func() {
			names := r.Names()

			Convey("Then the list should be sorted and match Len", func() {
				So(len(names), ShouldEqual, r.Len())
				So(names, ShouldContain, "labrador")
				for i := 1; i < len(names); i++ {
					So(names[i-1], ShouldBeLessThan, names[i])
				}
			})
		})
	})

	Convey("Given extra profiles supplied at build time", t, func() {
		Convey("When a new breed is added", func() {
			r, err := profile.NewRegistry(profile.WithProfiles([]profile.BreedProfile{
				validProfile("whippet"),
			}))

			Convey("Then it should be registered alongside the builtins", func() {
				So(err, ShouldBeNil)
				So(r.Known("whippet"), ShouldBeTrue)
			})
		})

		Convey("When a profile duplicates a built-in name", func() {
			_, err := profile.NewRegistry(profile.WithProfiles([]profile.BreedProfile{
				validProfile("Labrador"),
			}))

			Convey("Then construction should fail with ErrDuplicateProfile", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, profile.ErrDuplicateProfile)
			})
		})

		Convey("When two supplied profiles share a canonical name", func() {
			_, err := profile.NewRegistry(
				profile.WithoutBuiltins(),
				profile.WithProfiles([]profile.BreedProfile{
					validProfile("kelpie"),
					validProfile(" KELPIE "),
				}),
			)

			Convey("Then construction should fail with ErrDuplicateProfile", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, profile.ErrDuplicateProfile)
			})
		})

		Convey("When a profile has coefficients outside their ranges", func() {
			bad := validProfile("husky")
			bad.VolumeSensitivity = 1.5
			_, err := profile.NewRegistry(profile.WithProfiles([]profile.BreedProfile{bad}))

			Convey("Then construction should fail with ErrInvalidProfile", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, profile.ErrInvalidProfile)
			})
		})

		Convey("When builtins are excluded", func() {
			r, err := profile.NewRegistry(
				profile.WithoutBuiltins(),
				profile.WithProfiles([]profile.BreedProfile{validProfile("kelpie")}),
			)

			Convey("Then only supplied profiles should be present", func() {
				So(err, ShouldBeNil)
				So(r.Len(), ShouldEqual, 1)
				So(r.Known("labrador"), ShouldBeFalse)
			})
		})

		Convey("When the fallback profile is replaced", func() {
			r, err := profile.NewRegistry(profile.WithDefaultProfile(validProfile("Rescue Mix")))

			Convey("Then unknown lookups should return it with a canonical name", func() {
				So(err, ShouldBeNil)
				So(r.Lookup("unknown").Name, ShouldEqual, "rescue mix")
			})
		})
	})
}

func TestAgeGroup(t *testing.T) {
	Convey("Given the age group enum", t, func() {
		Convey("When parsing supported names", func() {
			puppy, err1 := profile.ParseAgeGroup("puppy")
			adult, err2 := profile.ParseAgeGroup("Adult")
			senior, err3 := profile.ParseAgeGroup(" senior ")

			Convey("Then parsing should be case-insensitive and trimmed", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(err3, ShouldBeNil)
				So(puppy, ShouldEqual, profile.AgePuppy)
				So(adult, ShouldEqual, profile.AgeAdult)
				So(senior, ShouldEqual, profile.AgeSenior)
			})
		})

		Convey("When parsing an unknown name", func() {
			_, err := profile.ParseAgeGroup("elder")

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When reading age traits", func() {
			puppy := profile.AgePuppy.Traits()
			adult := profile.AgeAdult.Traits()
			senior := profile.AgeSenior.Traits()

			Convey("Then puppies should run faster and seniors slower than adults", func() {
				So(puppy.BPMOffset, ShouldBeGreaterThan, adult.BPMOffset)
				So(senior.BPMOffset, ShouldBeLessThan, adult.BPMOffset)
				So(puppy.VisualSpeedFactor, ShouldBeGreaterThan, adult.VisualSpeedFactor)
				So(senior.VisualSpeedFactor, ShouldBeLessThan, adult.VisualSpeedFactor)
			})
		})
	})
}

func TestSpatialPreference(t *testing.T) {
	Convey("Given the spatial preference enum", t, func() {
		Convey("When resolving bias vectors", func() {
			Convey("Then fixed preferences should map to unit axes", func() {
				So(profile.SpatialFrontFocused.Bias().Z, ShouldEqual, 1)
				So(profile.SpatialSideFocused.Bias().X, ShouldEqual, 1)
				So(profile.SpatialOverhead.Bias().Y, ShouldEqual, 1)
			})

			Convey("Then surround should map to the zero vector", func() {
				b := profile.SpatialSurround.Bias()
				So(b.X, ShouldEqual, 0)
				So(b.Y, ShouldEqual, 0)
				So(b.Z, ShouldEqual, 0)
			})
		})

		Convey("When parsing round trips", func() {
			for _, name := range []string{"surround", "front_focused", "side_focused", "overhead", "adaptive"} {
				p, err := profile.ParseSpatialPreference(name)
				So(err, ShouldBeNil)
				So(p.String(), ShouldEqual, name)
			}
		})
	})
}
