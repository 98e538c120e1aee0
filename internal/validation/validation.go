// Package validation holds the input rules shared by order and intake submissions.
package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

const (
	maxTextLen  = 2000
	maxFieldLen = 200
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern     = regexp.MustCompile(`^[6-9]\d{9}$`)
	tenDigitPattern   = regexp.MustCompile(`^\d{10}$`)
	postalCodePattern = regexp.MustCompile(`^\d{6}$`)

	markup         = strings.NewReplacer("<", "", ">", "")
	scriptProtocol = regexp.MustCompile(`(?i)javascript\s*:`)
	eventHandler   = regexp.MustCompile(`(?i)\bon\w+\s*=`)

	// MaxAmount is the ceiling for any order total or subtotal.
	MaxAmount = decimal.NewFromInt(10_000_000)
)

func Email(s string) bool { return len(s) <= 254 && emailPattern.MatchString(s) }

// Mobile accepts a 10 digit number with a leading 6-9.
func Mobile(s string) bool { return mobilePattern.MatchString(s) }

func TenDigits(s string) bool { return tenDigitPattern.MatchString(s) }

func PostalCode(s string) bool { return postalCodePattern.MatchString(s) }

// Amount reports whether d is positive and within MaxAmount.
func Amount(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(MaxAmount)
}

// Clean strips markup and script vectors from a short free-text field.
func Clean(s string) string {
	return clean(s, maxFieldLen)
}

// CleanText is Clean for long text such as notes and messages.
func CleanText(s string) string {
	return clean(s, maxTextLen)
}

// clean repeats the stripping until nothing changes, so nested input such as
// "javajavascript:script:" cannot reassemble a removed pattern.
func clean(s string, limit int) string {
	for {
		next := markup.Replace(s)
		next = scriptProtocol.ReplaceAllString(next, "")
		next = eventHandler.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit])
	}
	return s
}

// Address sanitizes every field and checks the required ones.
func Address(a domain.ShippingAddress) (domain.ShippingAddress, error) {
	out := domain.ShippingAddress{
		Street:     Clean(a.Street),
		Unit:       Clean(a.Unit),
		City:       Clean(a.City),
		State:      Clean(a.State),
		PostalCode: strings.ReplaceAll(Clean(a.PostalCode), " ", ""),
		Country:    Clean(a.Country),
	}
	switch {
	case out.Street == "":
		return out, domain.Invalid("street is required")
	case out.City == "":
		return out, domain.Invalid("city is required")
	case out.State == "":
		return out, domain.Invalid("state is required")
	case out.Country == "":
		return out, domain.Invalid("country is required")
	case !PostalCode(out.PostalCode):
		return out, domain.Invalid("postal code must be 6 digits")
	}
	return out, nil
}

// Contact validates the name/email/phone triple every submission carries.
// The phone is optional unless required is set.
func Contact(name, email, phone string, phoneRequired bool) error {
	if name == "" {
		return domain.Invalid("name is required")
	}
	if email == "" {
		return domain.Invalid("email is required")
	}
	if !Email(email) {
		return domain.Invalid("email is invalid")
	}
	if phone == "" {
		if phoneRequired {
			return domain.Invalid("phone is required")
		}
		return nil
	}
	if !Mobile(phone) {
		return domain.Invalid("phone must be a 10 digit mobile number")
	}
	return nil
}
