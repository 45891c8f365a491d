package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/pawsense/internal/config"
	"github.com/okian/pawsense/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

// setenv sets an environment variable and returns a restore func, so each
// Convey branch can scope its overrides with defer.
func setenv(key, val string) func() {
	old, had := os.LookupEnv(key)
	os.Setenv(key, val)
	return func() {
		if had {
			os.Setenv(key, old)
			return
		}
		os.Unsetenv(key)
	}
}

func validProfileConfig() config.BreedProfileConfig {
	return config.BreedProfileConfig{
		Name:                      "shelter mix",
		PreferredFrequencies:      []float64{220, 440},
		VolumeSensitivity:         0.55,
		SpatialPreference:         "surround",
		StressResponseFrequencies: []float64{220},
		ColorPreference:           "balanced",
		MotionSensitivity:         0.5,
		ContrastPreference:        0.5,
	}
}

func TestDefaults(t *testing.T) {
	Convey("Given a fresh Config", t, func() {
		cfg := config.New()

		Convey("Then it should carry the documented defaults", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.FeedbackQueueSize, ShouldEqual, 4096)
			So(cfg.WorkerCount, ShouldEqual, 2)
			So(cfg.DedupeSize, ShouldEqual, 10000)
			So(cfg.ShardCount, ShouldEqual, 8)
			So(cfg.HistoryCap, ShouldEqual, 32)
			So(cfg.EvalIntervalMS, ShouldEqual, 2000)
			So(cfg.PhaseInitialSec, ShouldEqual, 0)
			So(cfg.Profiles, ShouldBeEmpty)
		})
	})
}

func TestLoadDefaults(t *testing.T) {
	Convey("Given no overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then Load should return the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.FeedbackQueueSize, ShouldEqual, 4096)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		defer setenv("PAWSENSE_ADDR", ":7070")()
		defer setenv("PAWSENSE_QUEUE_SIZE", "128")()
		defer setenv("PAWSENSE_LOG_LEVEL", "debug")()

		Convey("When Load runs", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env values should win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.FeedbackQueueSize, ShouldEqual, 128)
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.WorkerCount, ShouldEqual, 2)
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "pawsense.yaml")
		yaml := `
addr: ":6060"
history_cap: 16
phase_initial_sec: 30
phase_deepening_sec: 60
profiles:
  - name: "shelter mix"
    preferred_frequencies: [220, 440]
    volume_sensitivity: 0.55
    spatial_preference: surround
    stress_response_frequencies: [220]
    color_preference: balanced
    motion_sensitivity: 0.5
    contrast_preference: 0.5
`
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		defer setenv("PAWSENSE_CONFIG", path)()

		Convey("When Load runs", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values should layer over the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.HistoryCap, ShouldEqual, 16)
				So(cfg.PhaseInitialSec, ShouldEqual, 30)
				So(cfg.PhaseDeepeningSec, ShouldEqual, 60)
				So(len(cfg.Profiles), ShouldEqual, 1)
				So(cfg.Profiles[0].Name, ShouldEqual, "shelter mix")
			})

			Convey("Then the configured profile should convert to a domain record", func() {
				So(err, ShouldBeNil)
				profiles, perr := cfg.DomainProfiles()
				So(perr, ShouldBeNil)
				So(len(profiles), ShouldEqual, 1)
				So(profiles[0].SpatialPreference, ShouldEqual, profile.SpatialSurround)
				So(profiles[0].ColorPreference, ShouldEqual, profile.ColorBalanced)
			})
		})

		Convey("When an env var overrides the same key", func() {
			defer setenv("PAWSENSE_ADDR", ":7070")()
			cfg, err := config.Load(context.Background())

			Convey("Then env should win over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.HistoryCap, ShouldEqual, 16)
			})
		})
	})

	Convey("Given a config file path that does not exist", t, func() {
		defer setenv("PAWSENSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))()

		Convey("When Load runs", func() {
			_, err := config.Load(context.Background())

			Convey("Then it should fail with ErrLoadConfig", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given overrides the service cannot start with", t, func() {
		cases := map[string][2]string{
			"empty addr":           {"PAWSENSE_ADDR", ""},
			"zero queue size":      {"PAWSENSE_QUEUE_SIZE", "0"},
			"zero worker count":    {"PAWSENSE_WORKER_COUNT", "0"},
			"zero dedupe size":     {"PAWSENSE_DEDUPE_SIZE", "0"},
			"zero shard count":     {"PAWSENSE_SHARD_COUNT", "0"},
			"zero history cap":     {"PAWSENSE_HISTORY_CAP", "0"},
			"zero eval interval":   {"PAWSENSE_EVAL_INTERVAL_MS", "0"},
			"negative phase bound": {"PAWSENSE_PHASE_INITIAL_SEC", "-10"},
		}
		for name, kv := range cases {
			Convey("When loading with "+name, func() {
				defer setenv(kv[0], kv[1])()
				_, err := config.Load(context.Background())

				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		}
	})
}

func TestProfileConversion(t *testing.T) {
	Convey("Given a valid profile config", t, func() {
		pc := validProfileConfig()

		Convey("When it is converted", func() {
			p, err := pc.Profile()

			Convey("Then the enums should be parsed", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "shelter mix")
				So(p.SpatialPreference, ShouldEqual, profile.SpatialSurround)
				So(p.ColorPreference, ShouldEqual, profile.ColorBalanced)
			})
		})
	})

	Convey("Given broken profile configs", t, func() {
		Convey("When the spatial preference is unknown", func() {
			pc := validProfileConfig()
			pc.SpatialPreference = "everywhere"
			_, err := pc.Profile()

			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("When the color preference is unknown", func() {
			pc := validProfileConfig()
			pc.ColorPreference = "purple_dominant"
			_, err := pc.Profile()

			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("When a trait is out of range", func() {
			pc := validProfileConfig()
			pc.VolumeSensitivity = 1.5
			_, err := pc.Profile()

			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
