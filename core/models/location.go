package models

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidLocation is returned when a variant declares both a download URL
	// and a filename.
	ErrInvalidLocation = errors.New("variant declares both download_url and filename")
	// ErrMissingLocation is returned when a variant declares neither form.
	ErrMissingLocation = errors.New("variant has no download location")
	// ErrMissingBaseURL is returned when a FamilyFile is resolved without a base URL.
	ErrMissingBaseURL = errors.New("filename variant without family base_url")
)

// Location is where a variant's font file can be retrieved from.
// It is either an AbsoluteURL or a FamilyFile.
type Location interface {
	// Resolve returns the retrievable URL given the owning family's base URL.
	Resolve(baseURL string) (string, error)
	isLocation()
}

// AbsoluteURL is a complete download URL.
type AbsoluteURL string

// Resolve returns the URL itself; the base URL is ignored.
func (u AbsoluteURL) Resolve(string) (string, error) {
	return string(u), nil
}

// Dir returns the directory prefix of the URL including the trailing slash,
// and the bare file name.
func (u AbsoluteURL) Dir() (prefix, filename string) {
	s := string(u)
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return "", s
	}
	return s[:i+1], s[i+1:]
}

func (AbsoluteURL) isLocation() {}

// FamilyFile is a bare file name relative to the family's base URL.
type FamilyFile string

// Resolve concatenates the base URL and the file name.
func (f FamilyFile) Resolve(baseURL string) (string, error) {
	if baseURL == "" {
		return "", ErrMissingBaseURL
	}
	return baseURL + string(f), nil
}

func (FamilyFile) isLocation() {}
