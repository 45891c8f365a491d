package profile

// Builtin returns the built-in breed table. The coefficients are shipped
// as defaults and may be replaced wholesale through configuration; they
// are treated as data, not as derived quantities.
func Builtin() []BreedProfile {
	return []BreedProfile{
		{
			Name:                      "labrador",
			PreferredFrequencies:      []float64{396, 528, 639},
			VolumeSensitivity:         0.45,
			SpatialPreference:         SpatialSurround,
			StressResponseFrequencies: []float64{432, 528},
			ColorPreference:           ColorYellowDominant,
			MotionSensitivity:         0.4,
			ContrastPreference:        0.5,
		},
		{
			// Brachycephalic: pressure-sensitive hearing, low chase drive.
			Name:                      "bulldog",
			PreferredFrequencies:      []float64{174, 285, 396},
			VolumeSensitivity:         0.85,
			SpatialPreference:         SpatialFrontFocused,
			StressResponseFrequencies: []float64{174, 285},
			ColorPreference:           ColorBlueDominant,
			MotionSensitivity:         0.2,
			ContrastPreference:        0.45,
		},
		{
			Name:                      "border collie",
			PreferredFrequencies:      []float64{528, 639, 741},
			VolumeSensitivity:         0.6,
			SpatialPreference:         SpatialAdaptive,
			StressResponseFrequencies: []float64{432, 528, 639},
			ColorPreference:           ColorHighContrast,
			MotionSensitivity:         0.9,
			ContrastPreference:        0.7,
		},
		{
			Name:                      "german shepherd",
			PreferredFrequencies:      []float64{285, 396, 528},
			VolumeSensitivity:         0.7,
			SpatialPreference:         SpatialFrontFocused,
			StressResponseFrequencies: []float64{285, 396},
			ColorPreference:           ColorBalanced,
			MotionSensitivity:         0.7,
			ContrastPreference:        0.6,
		},
		{
			Name:                      "chihuahua",
			PreferredFrequencies:      []float64{639, 741, 852},
			VolumeSensitivity:         0.9,
			SpatialPreference:         SpatialOverhead,
			StressResponseFrequencies: []float64{528, 639},
			ColorPreference:           ColorBlueDominant,
			MotionSensitivity:         0.8,
			ContrastPreference:        0.55,
		},
		{
			Name:                      "greyhound",
			PreferredFrequencies:      []float64{396, 432, 528},
			VolumeSensitivity:         0.65,
			SpatialPreference:         SpatialSideFocused,
			StressResponseFrequencies: []float64{396, 432},
			ColorPreference:           ColorYellowDominant,
			MotionSensitivity:         0.95,
			ContrastPreference:        0.65,
		},
		{
			Name:                      "beagle",
			PreferredFrequencies:      []float64{285, 432, 528},
			VolumeSensitivity:         0.55,
			SpatialPreference:         SpatialSurround,
			StressResponseFrequencies: []float64{285, 432},
			ColorPreference:           ColorBalanced,
			MotionSensitivity:         0.6,
			ContrastPreference:        0.5,
		},
	}
}

// DefaultProfile is the fallback returned for unknown breed names. Its
// coefficients sit at the conservative middle of every range.
func DefaultProfile() BreedProfile {
	return BreedProfile{
		Name:                      "default",
		PreferredFrequencies:      []float64{220, 396, 528},
		VolumeSensitivity:         0.5,
		SpatialPreference:         SpatialSurround,
		StressResponseFrequencies: []float64{396, 528},
		ColorPreference:           ColorBalanced,
		MotionSensitivity:         0.5,
		ContrastPreference:        0.5,
	}
}
