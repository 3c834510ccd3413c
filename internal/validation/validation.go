// Package validation checks registration input before it reaches the store.
// Text is trimmed first and measured in runes.
package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"uniconnect/config"
	"uniconnect/internal/domain"
	"uniconnect/internal/models"
)

type Limits struct {
	MinAge        int
	MaxAge        int
	MinName       int
	MaxName       int
	MinDepartment int
	MaxDepartment int
	MinBio        int
	MaxBio        int
	MaxPhotoRef   int
}

func LimitsFromConfig(cfg *config.ProfileConfig) Limits {
	return Limits{
		MinAge:        cfg.MinAge,
		MaxAge:        cfg.MaxAge,
		MinName:       cfg.MinNameLength,
		MaxName:       cfg.MaxNameLength,
		MinDepartment: cfg.MinDeptLength,
		MaxDepartment: cfg.MaxDeptLength,
		MinBio:        cfg.MinBioLength,
		MaxBio:        cfg.MaxBioLength,
		MaxPhotoRef:   cfg.MaxPhotoRefLength,
	}
}

// DefaultLimits matches the defaults in config.
func DefaultLimits() Limits {
	return Limits{
		MinAge:        16,
		MaxAge:        100,
		MinName:       2,
		MaxName:       50,
		MinDepartment: 2,
		MaxDepartment: 100,
		MinBio:        10,
		MaxBio:        500,
		MaxPhotoRef:   512,
	}
}

func textLength(field, s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < min || n > max {
		return "", domain.NewValidationError(field, "length must be between %d and %d characters", min, max)
	}
	return s, nil
}

func (l Limits) Name(s string) (string, error) {
	return textLength("name", s, l.MinName, l.MaxName)
}

func (l Limits) Department(s string) (string, error) {
	return textLength("department", s, l.MinDepartment, l.MaxDepartment)
}

func (l Limits) Bio(s string) (string, error) {
	return textLength("bio", s, l.MinBio, l.MaxBio)
}

func (l Limits) Age(age int) error {
	if age < l.MinAge || age > l.MaxAge {
		return domain.NewValidationError("age", "must be between %d and %d", l.MinAge, l.MaxAge)
	}
	return nil
}

// ParseAge accepts the decimal text a user typed.
func (l Limits) ParseAge(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.NewValidationError("age", "must be a whole number")
	}
	if err := l.Age(age); err != nil {
		return 0, err
	}
	return age, nil
}

func (l Limits) PhotoRef(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.NewValidationError("photo_ref", "is required")
	}
	if l.MaxPhotoRef > 0 && len(s) > l.MaxPhotoRef {
		return "", domain.NewValidationError("photo_ref", "must be at most %d bytes", l.MaxPhotoRef)
	}
	return s, nil
}

// Profile validates every field and returns the normalized input. The first
// violated constraint is reported.
func (l Limits) Profile(in models.ProfileInput) (models.ProfileInput, error) {
	var err error
	if in.ID == 0 {
		return in, domain.NewValidationError("id", "is required")
	}
	if in.Name, err = l.Name(in.Name); err != nil {
		return in, err
	}
	if err = l.Age(in.Age); err != nil {
		return in, err
	}
	if in.Department, err = l.Department(in.Department); err != nil {
		return in, err
	}
	if in.Bio, err = l.Bio(in.Bio); err != nil {
		return in, err
	}
	if in.PhotoRef, err = l.PhotoRef(in.PhotoRef); err != nil {
		return in, err
	}
	return in, nil
}
