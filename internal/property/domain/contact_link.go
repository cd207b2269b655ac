package domain

import (
	"fmt"
	"strings"
)

const whatsAppBaseURL = "https://wa.me/"

// NormalizePhone strips everything except ASCII digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContactLink builds the "contact seller" messaging deep link for a listing.
func ContactLink(l *Listing) string {
	text := fmt.Sprintf("Hi, I'm interested in your property: %s located at %s. Could you please provide more details?", l.Title, l.Location)
	return whatsAppBaseURL + NormalizePhone(l.ContactPhone) + "?text=" + EncodeURIComponent(text)
}

// CallLink is the tel: link for the listing's contact phone, whitespace removed.
func CallLink(l *Listing) string {
	return "tel:" + strings.Join(strings.Fields(l.ContactPhone), "")
}

// EmailLink is the mailto: link with a prefilled inquiry about the listing.
func EmailLink(l *Listing) string {
	subject := "Inquiry about " + l.Title
	body := fmt.Sprintf("Hi,\n\nI'm interested in your property: %s\nLocation: %s\nPrice: %s\n\nCould you please provide more details?\n\nThank you.",
		l.Title, l.Location, l.Price)
	return "mailto:" + strings.TrimSpace(l.ContactEmail) +
		"?subject=" + EncodeURIComponent(subject) +
		"&body=" + EncodeURIComponent(body)
}

// EncodeURIComponent percent-encodes s as UTF-8, leaving unescaped only
// A-Z a-z 0-9 and - _ . ! ~ * ' ( ), the same set browsers keep.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func uriComponentSafe(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
