package model

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Professor struct {
	name     string
	lastName string
	rating   float64
}

func NewProfessor(name, lastName string, rating float64) (Professor, error) {
	if strings.TrimSpace(name) == "" {
		return Professor{}, fmt.Errorf("%w: professor name", ErrMissingField)
	}
	if math.IsNaN(rating) || rating < 0 || rating > 10 {
		return Professor{}, fmt.Errorf("%w: %v", ErrInvalidRating, rating)
	}
	return Professor{name: name, lastName: lastName, rating: rating}, nil
}

func (professor Professor) Name() string     { return professor.name }
func (professor Professor) LastName() string { return professor.lastName }
func (professor Professor) Rating() float64  { return professor.rating }

func (professor Professor) FullName() string {
	return strings.TrimSpace(professor.name + " " + professor.lastName)
}

// Matches reports whether query names the professor: either a case-insensitive fragment of the full name or exactly the first or last name
func (professor Professor) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(professor.FullName()), query) ||
		strings.ToLower(professor.name) == query ||
		strings.ToLower(professor.lastName) == query
}

// NormalizeName upper-cases a name, collapses its blanks and strips accents, so "  José   Peña" and "JOSE PENA" compare equal
func NormalizeName(name string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, name)
	if err != nil {
		stripped = name
	}
	return strings.ToUpper(strings.Join(strings.Fields(stripped), " "))
}

// SameName compares two names after normalization
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
