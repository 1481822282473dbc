package fcweekly

import (
	"regexp"
	"time"
)

const versionLayout = "2006.01.02"

var versionRe = regexp.MustCompile(`\d{4}\.\d{2}\.\d{2}`)

// Version is the build date embedded in an archive or install directory
// name. Versions order chronologically; two versions with the same date are
// equal.
type Version struct {
	date time.Time
}

// ParseVersion extracts the version date from name. The name must contain
// exactly one YYYY.MM.DD substring with strict field widths, and the
// substring must be a real calendar date. Anything else is an
// InvalidVersionNameError, never a zero default.
func ParseVersion(name string) (Version, error) {
	matches := versionRe.FindAllString(name, 2)
	if len(matches) != 1 {
		return Version{}, &InvalidVersionNameError{Name: name}
	}
	date, err := time.Parse(versionLayout, matches[0])
	if err != nil {
		return Version{}, &InvalidVersionNameError{Name: name}
	}
	return Version{date: date}, nil
}

// Compare returns -1, 0 or 1 as v is older than, equal to or newer than o.
func (v Version) Compare(o Version) int {
	switch {
	case v.date.Before(o.date):
		return -1
	case v.date.After(o.date):
		return 1
	default:
		return 0
	}
}

// After reports whether v is strictly newer than o.
func (v Version) After(o Version) bool {
	return v.date.After(o.date)
}

func (v Version) String() string {
	return v.date.Format(versionLayout)
}
