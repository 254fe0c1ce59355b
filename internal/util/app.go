package util

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

func GetAppName() string {
	return "Magnetic Report"
}

// FrontendLink builds the link a mail points to, e.g. <frontend>/verify-email?token=...
func FrontendLink(frontendURL, path, token string) string {
	return fmt.Sprintf("%s/%s?token=%s", strings.TrimRight(frontendURL, "/"), strings.TrimLeft(path, "/"), url.QueryEscape(token))
}

// DescribeDuration renders a token lifetime for mail bodies, in Portuguese.
// Only the largest whole unit is kept.
func DescribeDuration(d time.Duration) string {
	plural := func(n int64, one, many string) string {
		if n == 1 {
			return "1 " + one
		}
		return fmt.Sprintf("%d %s", n, many)
	}

	switch {
	case d >= 24*time.Hour && d%(24*time.Hour) == 0:
		return plural(int64(d/(24*time.Hour)), "dia", "dias")
	case d >= time.Hour:
		return plural(int64(d/time.Hour), "hora", "horas")
	case d >= time.Minute:
		return plural(int64(d/time.Minute), "minuto", "minutos")
	default:
		return plural(int64(d/time.Second), "segundo", "segundos")
	}
}
