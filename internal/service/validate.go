package service

import (
	"regexp"
	"strings"

	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	pincodeRe = regexp.MustCompile(`^\d{6}$`)
)

func validateShipping(s domain.ShippingDetails) error {
	for _, f := range []struct{ name, value string }{
		{"fullName", s.FullName},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"state", s.State},
		{"pincode", s.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Message: f.name + " is required"}
		}
	}
	if !emailRe.MatchString(s.Email) {
		return &ValidationError{Message: "please provide a valid email address"}
	}
	if !phoneRe.MatchString(s.Phone) {
		return &ValidationError{Message: "phone must be exactly 10 digits"}
	}
	if !pincodeRe.MatchString(s.Pincode) {
		return &ValidationError{Message: "pincode must be exactly 6 digits"}
	}
	return nil
}
