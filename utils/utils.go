package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// CheckPasswordPolicy mirrors the registration pre-filter: at least 6
// characters, one uppercase letter and one digit.
func CheckPasswordPolicy(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters long")
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasUpper {
		return errors.New("password must contain an uppercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain a number")
	}
	return nil
}

func IsDuplicateKey(err error) bool {
	// Preferred: typed error
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	// Fallback
	return strings.Contains(err.Error(), "E11000 duplicate key error")
}

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func GenerateSlug(title string) string {
	// Normalize accents
	t := norm.NFD.String(title)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue // remove accent marks
		}
		b.WriteRune(r)
	}

	s := strings.ToLower(b.String())
	s = slugNonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
