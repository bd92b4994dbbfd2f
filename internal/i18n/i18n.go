// Package i18n holds the marketing and instruction strings shown around the
// enrollment flow, in English and Sinhala, plus the persisted locale
// preference. The string surface is deliberately small; course content
// itself is served by the backend and is not translated client-side.
package i18n

import (
	"os"
	"path/filepath"
	"strings"
)

// Locale is a supported UI locale code.
type Locale string

const (
	EN Locale = "en"
	SI Locale = "si"
)

// Supported lists the locales with string tables.
var Supported = []Locale{EN, SI}

// Parse normalizes a locale code, falling back to english.
func Parse(code string) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(code))) {
	case SI:
		return SI
	default:
		return EN
	}
}

var tables = map[Locale]map[string]string{
	EN: {
		"tagline":           "Future-ready learning for ages 5-16",
		"welcome":           "Welcome to Mentora",
		"enroll_cta":        "Enroll a student",
		"choose_program":    "Choose a program",
		"choose_method":     "Choose a payment method",
		"card_method":       "Pay online by card",
		"bank_method":       "Pay by bank transfer",
		"bank_instructions": "Transfer the amount below and quote your reference in the remarks",
		"bank_pending":      "Your enrollment is pending until the transfer is confirmed",
		"monthly":           "Monthly",
		"quarterly":         "Quarterly (with learning kit)",
		"savings":           "you save",
	},
	SI: {
		"tagline":           "වයස 5-16 සඳහා අනාගත සූදානම් ඉගෙනුම",
		"welcome":           "මෙන්ටෝරා වෙත සාදරයෙන් පිළිගනිමු",
		"enroll_cta":        "ශිෂ්‍යයෙකු ලියාපදිංචි කරන්න",
		"choose_program":    "වැඩසටහනක් තෝරන්න",
		"choose_method":     "ගෙවීම් ක්‍රමයක් තෝරන්න",
		"card_method":       "කාඩ්පතෙන් මාර්ගගතව ගෙවන්න",
		"bank_method":       "බැංකු හුවමාරුවෙන් ගෙවන්න",
		"bank_instructions": "පහත මුදල හුවමාරු කර ඔබගේ යොමු අංකය සටහනේ සඳහන් කරන්න",
		"bank_pending":      "හුවමාරුව තහවුරු වන තුරු ලියාපදිංචිය අපේක්ෂිතව පවතී",
		"monthly":           "මාසිකව",
		"quarterly":         "කාර්තුමය (ඉගෙනුම් කට්ටලය සමඟ)",
		"savings":           "ඔබ ඉතිරි කරයි",
	},
}

// T returns the string for key in the given locale, falling back to english,
// then to the key itself so a missing entry stays visible instead of blank.
func T(loc Locale, key string) string {
	if s, ok := tables[loc][key]; ok {
		return s
	}
	if s, ok := tables[EN][key]; ok {
		return s
	}
	return key
}

// prefPath is the fixed storage location of the locale preference.
func prefPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mentora", "locale"), nil
}

// LoadPreference reads the persisted locale, falling back to the given
// default when nothing is stored.
func LoadPreference(fallback string) Locale {
	path, err := prefPath()
	if err != nil {
		return Parse(fallback)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Parse(fallback)
	}
	return Parse(string(data))
}

// SavePreference persists the locale choice.
func SavePreference(loc Locale) error {
	path, err := prefPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(loc), 0600)
}
