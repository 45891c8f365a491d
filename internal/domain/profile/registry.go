package profile

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is an immutable breed profile lookup table. It is built once
// and read-only thereafter, so concurrent readers never block and the
// registry is safely shared across sessions.
type Registry struct {
	profiles map[string]*BreedProfile
	fallback *BreedProfile
}

// Option applies a configuration option during registry construction.
type Option func(*builder)

type builder struct {
	includeBuiltins bool
	extra           []BreedProfile
	fallback        *BreedProfile
}

// WithProfiles registers additional profiles at build time. Duplicate
// canonical names, including clashes with the built-in table, fail
// construction with ErrDuplicateProfile.
func WithProfiles(profiles []BreedProfile) Option {
	return func(b *builder) {
		b.extra = append(b.extra, profiles...)
	}
}

// WithoutBuiltins skips the built-in breed table so the registry holds
// only explicitly supplied profiles.
func WithoutBuiltins() Option {
	return func(b *builder) {
		b.includeBuiltins = false
	}
}

// WithDefaultProfile replaces the fallback profile returned for unknown
// breed names.
func WithDefaultProfile(p BreedProfile) Option {
	return func(b *builder) {
		b.fallback = &p
	}
}

// NewRegistry builds a registry from the built-in table plus any supplied
// profiles. Construction fails on duplicate canonical names or profiles
// whose coefficients fall outside their documented ranges.
func NewRegistry(opts ...Option) (*Registry, error) {
	b := &builder{includeBuiltins: true}
	for _, opt := range opts {
		opt(b)
	}

	r := &Registry{profiles: make(map[string]*BreedProfile)}

	if b.includeBuiltins {
		for _, p := range Builtin() {
			if err := r.register(p); err != nil {
				return nil, err
			}
		}
	}
	for _, p := range b.extra {
		if err := r.register(p); err != nil {
			return nil, err
		}
	}

	fallback := DefaultProfile()
	if b.fallback != nil {
		fallback = *b.fallback
	}
	if err := fallback.Validate(); err != nil {
		return nil, err
	}
	fallback.Name = Canonical(fallback.Name)
	r.fallback = &fallback

	return r, nil
}

// register adds one profile under its canonical name. Build-time only.
func (r *Registry) register(p BreedProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	name := Canonical(p.Name)
	if _, exists := r.profiles[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProfile, name)
	}
	p.Name = name
	r.profiles[name] = &p
	return nil
}

// Lookup resolves a breed name to a profile. Matching is case-insensitive
// and whitespace-trimmed; unknown names return the default profile, never
// an error.
func (r *Registry) Lookup(name string) *BreedProfile {
	if p, ok := r.profiles[Canonical(name)]; ok {
		return p
	}
	return r.fallback
}

// Known reports whether a breed name resolves to a registered profile
// rather than the fallback.
func (r *Registry) Known(name string) bool {
	_, ok := r.profiles[Canonical(name)]
	return ok
}

// Default returns the fallback profile.
func (r *Registry) Default() *BreedProfile {
	return r.fallback
}

// Names returns the canonical names of all registered profiles, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// Canonical normalizes a breed name for lookup and registration.
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
