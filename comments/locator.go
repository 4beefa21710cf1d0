package comments

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	bareVideoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	pathIDRE      = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ParseVideoID extracts a video id from a locator. Recognized shapes:
//
//	https://host/watch?v=ID   query-parameter form
//	https://host/ID           shortened-path form
//	ID                        bare 11-character video id
func ParseVideoID(locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if bareVideoIDRE.MatchString(locator) {
		return locator, nil
	}

	u, err := url.Parse(locator)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &LocatorParseError{Locator: locator}
	}

	path := strings.Trim(u.Path, "/")
	if path == "watch" {
		id := u.Query().Get("v")
		if pathIDRE.MatchString(id) {
			return id, nil
		}
		return "", &LocatorParseError{Locator: locator}
	}
	if path != "" && !strings.Contains(path, "/") && pathIDRE.MatchString(path) {
		return path, nil
	}
	return "", &LocatorParseError{Locator: locator}
}
