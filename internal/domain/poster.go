package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidPoster is returned when a poster is missing a mandatory field.
var ErrInvalidPoster = errors.New("invalid poster")

// Poster is the organization that published one or more jobs on a provider.
type Poster struct {
	name         string
	location     string
	overview     string
	business     BusinessType
	verification Verification
	website      *url.URL
	profile      *url.URL
	established  time.Time
	contact      ContactInfo
	origin       Origin
}

func (p *Poster) Name() string               { return p.name }
func (p *Poster) Location() string           { return p.location }
func (p *Poster) Overview() string           { return p.overview }
func (p *Poster) BusinessType() BusinessType { return p.business }
func (p *Poster) Verification() Verification { return p.verification }
func (p *Poster) Provider() Origin           { return p.origin }
func (p *Poster) Website() *url.URL          { return cloneURL(p.website) }
func (p *Poster) ProfileURI() *url.URL       { return cloneURL(p.profile) }
func (p *Poster) Contact() ContactInfo       { return p.contact.clone() }

// Established returns the establishment date when the provider exposes one.
func (p *Poster) Established() (time.Time, bool) {
	return p.established, !p.established.IsZero()
}

// Equal reports whether both posters have the same name, location, profile
// URI and provider.
func (p *Poster) Equal(o *Poster) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.name == o.name &&
		p.location == o.location &&
		urlString(p.profile) == urlString(o.profile) &&
		SameOrigin(p.origin, o.origin)
}

// PosterBuilder accumulates poster fields. Setters return the builder.
type PosterBuilder struct {
	p Poster
}

// NewPosterBuilder starts a poster owned by origin.
func NewPosterBuilder(origin Origin, name, location string) (*PosterBuilder, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)

	switch {
	case nilOrigin(origin):
		return nil, fmt.Errorf("%w: provider is required", ErrInvalidPoster)
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPoster)
	case location == "":
		return nil, fmt.Errorf("%w: location is required", ErrInvalidPoster)
	}

	return &PosterBuilder{p: Poster{
		name:         name,
		location:     location,
		business:     BusinessOther,
		verification: VerificationNotSupported,
		origin:       origin,
	}}, nil
}

func (b *PosterBuilder) Overview(s string) *PosterBuilder {
	b.p.overview = s
	return b
}

func (b *PosterBuilder) BusinessType(t BusinessType) *PosterBuilder {
	b.p.business = t
	return b
}

func (b *PosterBuilder) Verification(v Verification) *PosterBuilder {
	b.p.verification = v
	return b
}

func (b *PosterBuilder) Website(u *url.URL) *PosterBuilder {
	b.p.website = cloneURL(u)
	return b
}

func (b *PosterBuilder) ProfileURI(u *url.URL) *PosterBuilder {
	b.p.profile = cloneURL(u)
	return b
}

func (b *PosterBuilder) Established(t time.Time) *PosterBuilder {
	b.p.established = Date(t)
	return b
}

func (b *PosterBuilder) Contact(c ContactInfo) *PosterBuilder {
	b.p.contact = c.clone()
	return b
}

// Build returns an immutable snapshot of the builder.
func (b *PosterBuilder) Build() *Poster {
	p := b.p
	p.website = cloneURL(b.p.website)
	p.profile = cloneURL(b.p.profile)
	p.contact = b.p.contact.clone()
	return &p
}
