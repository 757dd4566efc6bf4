package config

import (
	"net/url"
	"regexp"
	"strings"
)

const redactedSecret = "xxxxx"

var keyValuePassword = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

// RedactedDSN returns the DSN with any password replaced, for logging.
// URL user info and "password" query parameters are masked, as is the
// password of a key/value connection string.
func (d DB) RedactedDSN() string {
	if d.DSN == "" {
		return ""
	}

	u, err := url.Parse(d.DSN)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.User == nil && u.Opaque == "") {
		return keyValuePassword.ReplaceAllString(d.DSN, "${1}"+redactedSecret)
	}

	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), redactedSecret)
	}
	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if strings.EqualFold(key, "password") {
				q.Set(key, redactedSecret)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// Redacted returns a copy of the configuration that is safe to log.
func (c StructuredConfig) Redacted() StructuredConfig {
	c.Storage.DB.DSN = c.Storage.DB.RedactedDSN()
	return c
}
