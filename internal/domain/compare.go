package domain

import (
	"cmp"
	"slices"
)

// CompareOrigins orders providers by URI, then name, then description.
func CompareOrigins(a, b Origin) int {
	return cmp.Or(
		cmp.Compare(originURI(a), originURI(b)),
		cmp.Compare(originName(a), originName(b)),
		cmp.Compare(originDescription(a), originDescription(b)),
	)
}

// CompareJobs orders jobs by provider URI, then title, location and
// description.
func CompareJobs(a, b Job) int {
	return cmp.Or(
		cmp.Compare(originURI(a.Provider()), originURI(b.Provider())),
		cmp.Compare(a.title, b.title),
		cmp.Compare(a.location, b.location),
		cmp.Compare(a.description, b.description),
	)
}

// ComparePosters orders posters by profile URI, then name and location.
func ComparePosters(a, b *Poster) int {
	return cmp.Or(
		cmp.Compare(urlString(a.profile), urlString(b.profile)),
		cmp.Compare(a.name, b.name),
		cmp.Compare(a.location, b.location),
	)
}

// SortJobs sorts jobs in place; equal jobs keep their relative order.
func SortJobs(jobs []Job) {
	slices.SortStableFunc(jobs, CompareJobs)
}

func originURI(o Origin) string {
	if nilOrigin(o) {
		return ""
	}
	return urlString(o.URI())
}

func originName(o Origin) string {
	if nilOrigin(o) {
		return ""
	}
	return o.Name()
}

func originDescription(o Origin) string {
	if nilOrigin(o) {
		return ""
	}
	return o.Description()
}
