package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"inkpost/errs"
	"inkpost/models"
	"inkpost/repository"
)

type UserService struct {
	users repository.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewUserService(users repository.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log.With().Str("component", "user_service").Logger(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "user not found")
	}
	return user, nil
}

// GetPublicProfile resolves a profile page. Deactivated accounts are not
// found by anyone, their owner included. Private profiles are shown only to
// their owner.
func (s *UserService) GetPublicProfile(ctx context.Context, username string, requester *models.Identity) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeError(err, "user not found")
	}
	if !user.Profile.IsActive {
		return nil, errs.NotFound("user not found")
	}
	if !user.Profile.IsPublic && !requester.Is(user.ID) {
		return nil, errs.Forbidden("this profile is private")
	}
	return user, nil
}

// UpdateProfile merges patch into the stored profile and returns the result.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user not found")
	}

	profile := &user.Profile
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.ProfilePicture != nil {
		profile.ProfilePicture = strings.TrimSpace(*patch.ProfilePicture)
	}
	if patch.BackgroundImage != nil {
		profile.BackgroundImage = strings.TrimSpace(*patch.BackgroundImage)
	}
	if patch.SpotifyTrack != nil {
		profile.SpotifyTrack = strings.TrimSpace(*patch.SpotifyTrack)
	}
	if patch.IsPublic != nil {
		profile.IsPublic = *patch.IsPublic
	}
	for network, linkPatch := range patch.SocialLinks {
		link := profile.SocialLinks.Link(network)
		if link == nil {
			return nil, errs.BadRequest(fmt.Sprintf("unknown social network %q", network))
		}
		if linkPatch.URL != nil {
			link.URL = strings.TrimSpace(*linkPatch.URL)
		}
		if linkPatch.Visible != nil {
			link.Visible = *linkPatch.Visible
		}
	}

	user.UpdatedAt = s.now()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, storeError(err, "user not found")
	}
	return profile, nil
}

// Deactivate hides the account and its posts. It is not reversible through the API.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return storeError(err, "user not found")
	}

	user.Profile.IsActive = false
	user.UpdatedAt = s.now()
	if err := s.users.Save(ctx, user); err != nil {
		return storeError(err, "user not found")
	}

	s.log.Info().Str("user_id", userID).Msg("account deactivated")
	return nil
}
