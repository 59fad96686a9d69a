package usermanagement

import (
	"context"
	"errors"
	"strings"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileRequest struct {
	FullName string `json:"nombreCompleto"`
	Pin      string `json:"pin"`
	Avatar   string `json:"avatar"`
	Age      *int   `json:"edad"`
	OwnerID  string `json:"userId"`
}

func (r ProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required),
		validation.Field(&r.Pin, validation.Required),
		validation.Field(&r.Avatar, validation.Required),
		validation.Field(&r.Age, validation.NotNil, validation.Min(0)),
		validation.Field(&r.OwnerID, validation.Required),
	)
}

func (r ProfileRequest) toProfile() userTypes.RestrictedProfile {
	return userTypes.RestrictedProfile{
		FullName: strings.TrimSpace(r.FullName),
		Pin:      strings.TrimSpace(r.Pin),
		Avatar:   strings.TrimSpace(r.Avatar),
		Age:      *r.Age,
		OwnerID:  r.OwnerID,
	}
}

// nameScopeOwner returns the owner filter for name uniqueness checks.
func (s *Service) nameScopeOwner(ownerID string) string {
	if s.config.ProfileNameScope == userTypes.PROFILE_NAME_SCOPE_OWNER {
		return ownerID
	}
	return ""
}

func (s *Service) CreateProfile(ctx context.Context, req ProfileRequest) (userTypes.RestrictedProfile, error) {
	if err := apperrors.FromValidation(req.Validate()); err != nil {
		return userTypes.RestrictedProfile{}, err
	}
	profile := req.toProfile()

	_, err := s.profiles.FindRestrictedProfileByName(ctx, profile.FullName, s.nameScopeOwner(profile.OwnerID))
	if err == nil {
		return userTypes.RestrictedProfile{}, ErrProfileNameTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return userTypes.RestrictedProfile{}, apperrors.StoreUnavailable("find profile", err)
	}

	profile, err = s.profiles.AddRestrictedProfile(ctx, profile)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return userTypes.RestrictedProfile{}, ErrProfileNameTaken
		}
		return userTypes.RestrictedProfile{}, apperrors.StoreUnavailable("add profile", err)
	}
	return profile, nil
}

// ListProfiles returns the owner's profiles with the administrator profile first.
func (s *Service) ListProfiles(ctx context.Context, ownerID string) ([]userTypes.RestrictedProfile, error) {
	profiles, err := s.profiles.ListRestrictedProfilesByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.StoreUnavailable("list profiles", err)
	}

	sorted := make([]userTypes.RestrictedProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.IsAdmin() {
			sorted = append(sorted, p)
		}
	}
	for _, p := range profiles {
		if !p.IsAdmin() {
			sorted = append(sorted, p)
		}
	}
	return sorted, nil
}

// UpdateProfile changes a profile of req.OwnerID. Profiles of other owners are reported as not found.
func (s *Service) UpdateProfile(ctx context.Context, id primitive.ObjectID, req ProfileRequest) (userTypes.RestrictedProfile, error) {
	if err := apperrors.FromValidation(req.Validate()); err != nil {
		return userTypes.RestrictedProfile{}, err
	}
	profile := req.toProfile()
	profile.ID = id

	existing, err := s.profiles.FindRestrictedProfileByName(ctx, profile.FullName, s.nameScopeOwner(profile.OwnerID))
	if err == nil && existing.ID != id {
		return userTypes.RestrictedProfile{}, ErrProfileNameTaken
	} else if err != nil && !errors.Is(err, db.ErrNotFound) {
		return userTypes.RestrictedProfile{}, apperrors.StoreUnavailable("find profile", err)
	}

	updated, err := s.profiles.UpdateRestrictedProfile(ctx, profile)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return userTypes.RestrictedProfile{}, ErrProfileNotFound
		case errors.Is(err, db.ErrDuplicateKey):
			return userTypes.RestrictedProfile{}, ErrProfileNameTaken
		}
		return userTypes.RestrictedProfile{}, apperrors.StoreUnavailable("update profile", err)
	}
	return updated, nil
}

func (s *Service) DeleteProfile(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	if err := s.profiles.DeleteRestrictedProfile(ctx, id, ownerID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrProfileNotFound
		}
		return apperrors.StoreUnavailable("delete profile", err)
	}
	return nil
}
