package validation

import (
	"net/url"
	"strings"
)

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// RedirectTarget returns target when it is an absolute http(s) URL or a
// same-origin path, and fallback otherwise.
func RedirectTarget(target, fallback string) string {
	target = strings.TrimSpace(target)
	if ok, _ := ValidateURL(target); ok {
		return target
	}
	if isLocalPath(target) {
		return target
	}
	return fallback
}

// isLocalPath reports whether target is a path on the current host. Browsers
// read "//host" and "/\host" as another host.
func isLocalPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return false
	}
	if strings.ContainsAny(target, "\\\r\n\t") {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// ValidateEmail does a minimal sanity check on an owner email used as a key.
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "email is required"
	}
	if strings.ContainsAny(email, " /\t\r\n") {
		return false, "email must not contain spaces or slashes"
	}
	return true, ""
}
