package booking

import (
	"regexp"
	"sort"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneRe = regexp.MustCompile(`^[0-9]+$`)
)

// FieldErrors maps a field name to its inline validation message.
type FieldErrors map[string]string

func (e FieldErrors) String() string {
	if len(e) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// ValidateDetails checks the client contact fields. An empty map means all
// three are acceptable.
func ValidateDetails(name, email, phone string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(name) == "" {
		errs["clientName"] = "name is required"
	}
	if !emailRe.MatchString(email) {
		errs["clientEmail"] = "enter a valid email address"
	}
	if !phoneRe.MatchString(phone) {
		errs["clientPhone"] = "phone may only contain digits"
	}
	return errs
}
