// Package model defines domain entities held by the application store and the catalog.
package model

import (
	"slices"
	"time"
)

// Gender values accepted on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User is the signed-in profile. Optional fields are empty when unknown.
type User struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required"`
	Phone       string   `json:"phone"`
	Avatar      string   `json:"avatar,omitempty"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	Gender      string   `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	BloodType   string   `json:"bloodType,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
}

// Clone returns a deep copy of the user. Duplicate allergies are collapsed.
func (u User) Clone() User {
	out := u
	out.Allergies = nil
	for _, a := range u.Allergies {
		if !slices.Contains(out.Allergies, a) {
			out.Allergies = append(out.Allergies, a)
		}
	}
	return out
}

// Session is the result of a successful authentication.
type Session struct {
	User        User      `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"` // access token expiry
}

// Theme is the global UI colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme. Unknown values toggle to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Account is a locally registered login: a profile plus its password hash.
type Account struct {
	User      User
	PwdHash   []byte // Argon2id(password, Salt)
	Salt      []byte
	CreatedAt time.Time
}
