package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Social network keys accepted in profile updates.
const (
	SocialYouTube   = "youtube"
	SocialInstagram = "instagram"
	SocialFacebook  = "facebook"
	SocialGmail     = "gmail"
	SocialLinkedIn  = "linkedin"
	SocialGitHub    = "github"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null" bson:"username"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" bson:"email"`
	Password  string    `json:"-" gorm:"not null" bson:"password"`
	Profile   Profile   `json:"profile" gorm:"embedded;embeddedPrefix:profile_" bson:"profile"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Profile struct {
	Bio             string      `json:"bio" bson:"bio"`
	ProfilePicture  string      `json:"profile_picture" bson:"profile_picture"`
	BackgroundImage string      `json:"background_image" bson:"background_image"`
	SocialLinks     SocialLinks `json:"social_links" gorm:"serializer:json;type:text" bson:"social_links"`
	SpotifyTrack    string      `json:"spotify_track" bson:"spotify_track"`
	IsPublic        bool        `json:"is_public" gorm:"not null;index" bson:"is_public"`
	IsActive        bool        `json:"is_active" gorm:"not null;index" bson:"is_active"`
}

type SocialLink struct {
	URL     string `json:"url" bson:"url"`
	Visible bool   `json:"visible" bson:"visible"`
}

type SocialLinks struct {
	YouTube   SocialLink `json:"youtube" bson:"youtube"`
	Instagram SocialLink `json:"instagram" bson:"instagram"`
	Facebook  SocialLink `json:"facebook" bson:"facebook"`
	Gmail     SocialLink `json:"gmail" bson:"gmail"`
	LinkedIn  SocialLink `json:"linkedin" bson:"linkedin"`
	GitHub    SocialLink `json:"github" bson:"github"`
}

// Link returns the stored link for a network key, or nil for unknown keys.
func (s *SocialLinks) Link(network string) *SocialLink {
	switch network {
	case SocialYouTube:
		return &s.YouTube
	case SocialInstagram:
		return &s.Instagram
	case SocialFacebook:
		return &s.Facebook
	case SocialGmail:
		return &s.Gmail
	case SocialLinkedIn:
		return &s.LinkedIn
	case SocialGitHub:
		return &s.GitHub
	}
	return nil
}

func DefaultSocialLinks() SocialLinks {
	visible := SocialLink{Visible: true}
	return SocialLinks{
		YouTube:   visible,
		Instagram: visible,
		Facebook:  visible,
		Gmail:     visible,
		LinkedIn:  visible,
		GitHub:    visible,
	}
}

// NewUser builds a public, active account with a fresh id.
func NewUser(username, email, password string) *User {
	return &User{
		ID:       uuid.NewString(),
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
		Profile: Profile{
			SocialLinks: DefaultSocialLinks(),
			IsPublic:    true,
			IsActive:    true,
		},
	}
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SocialLinkPatch struct {
	URL     *string `json:"url"`
	Visible *bool   `json:"visible"`
}

// ProfilePatch holds the profile fields a user may change. Nil fields are left as stored.
type ProfilePatch struct {
	Bio             *string                    `json:"bio"`
	ProfilePicture  *string                    `json:"profile_picture"`
	BackgroundImage *string                    `json:"background_image"`
	SocialLinks     map[string]SocialLinkPatch `json:"social_links"`
	SpotifyTrack    *string                    `json:"spotify_track"`
	IsPublic        *bool                      `json:"is_public"`
}
