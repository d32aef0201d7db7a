package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"
)

var (
	safeIDRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	zipRe    = regexp.MustCompile(`^\d{5}$`)
)

// ValidID allows alphanumeric, underscore, dash, and dot. Used for vendor
// item identifiers taken from the request path.
func ValidID(s string) bool {
	return safeIDRe.MatchString(s)
}

// ValidZipCode accepts a five-digit US zip code.
func ValidZipCode(s string) bool {
	return zipRe.MatchString(s)
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
