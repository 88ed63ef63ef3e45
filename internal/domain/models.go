package domain

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// VacancyType is the employment arrangement of a posting.
type VacancyType string

const (
	VacancyFullTime     VacancyType = "full-time"
	VacancyPartTime     VacancyType = "part-time"
	VacancyInternship   VacancyType = "internship"
	VacancyContractor   VacancyType = "contractor"
	VacancyTemporary    VacancyType = "temporary"
	VacancyVolunteer    VacancyType = "volunteer"
	VacancyNotSpecified VacancyType = "not-specified"
)

// VacancyTypes lists every vacancy type in declaration order.
var VacancyTypes = []VacancyType{
	VacancyFullTime,
	VacancyPartTime,
	VacancyInternship,
	VacancyContractor,
	VacancyTemporary,
	VacancyVolunteer,
	VacancyNotSpecified,
}

// ParseVacancyType accepts the hyphenated names as well as underscore and
// space separated spellings in any case.
func ParseVacancyType(s string) (VacancyType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for _, v := range VacancyTypes {
		if string(v) == norm {
			return v, nil
		}
	}
	return VacancyNotSpecified, fmt.Errorf("unknown vacancy type %q", s)
}

// BusinessType is the legal form of a poster.
type BusinessType string

const (
	BusinessLimitedLiability   BusinessType = "limited-liability"
	BusinessSoleProprietorship BusinessType = "sole-proprietorship"
	BusinessCooperative        BusinessType = "cooperative"
	BusinessCorporation        BusinessType = "corporation"
	BusinessFranchise          BusinessType = "franchise"
	BusinessPartnership        BusinessType = "partnership"
	BusinessLimitedPartnership BusinessType = "limited-partnership"
	BusinessNonProfit          BusinessType = "non-profit"
	BusinessOther              BusinessType = "other"
)

// Verification tells whether the provider vouches for a poster.
type Verification string

const (
	VerificationNotSupported Verification = "not-supported"
	VerificationVerified     Verification = "verified"
	VerificationUnverified   Verification = "unverified"
)

// ContactInfo holds optional ways to reach a poster.
type ContactInfo struct {
	Email   string
	Phone   string
	Address string
	Website *url.URL
}

func (c ContactInfo) clone() ContactInfo {
	c.Website = cloneURL(c.Website)
	return c
}

// Origin identifies the source a poster and its jobs were collected from.
type Origin interface {
	Name() string
	Description() string
	URI() *url.URL
}

// SameOrigin compares two origins by name, description and URI.
func SameOrigin(a, b Origin) bool {
	if nilOrigin(a) || nilOrigin(b) {
		return nilOrigin(a) && nilOrigin(b)
	}
	return a.Name() == b.Name() &&
		a.Description() == b.Description() &&
		urlString(a.URI()) == urlString(b.URI())
}

// nilOrigin also catches a nil pointer stored in the interface.
func nilOrigin(o Origin) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

// ParseAbsoluteURL parses raw and requires a scheme and host.
func ParseAbsoluteURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("url %q is not absolute", raw)
	}
	return u, nil
}

// Date truncates t to its calendar day in UTC. The zero time stays zero.
func Date(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
