package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/auth"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/repository"
	"github.com/YusovID/service-dispatch/internal/session"
	"github.com/jmoiron/sqlx"
)

// TokenIssuer mints and verifies session tokens.
type TokenIssuer interface {
	Issue(userID string) (*auth.Token, error)
	Parse(value string) (*auth.Token, error)
}

type SignUpInput struct {
	Email          string
	Password       string
	FullName       string
	Phone          string
	City           string
	District       string
	Neighborhood   string
	SiteName       *string
	Block          *string
	FloorApartment string
}

// ProfileUpdate carries the editable profile fields. Address changes never
// touch the snapshots already stored on requests.
type ProfileUpdate struct {
	FullName       string
	Phone          string
	City           string
	District       string
	Neighborhood   string
	SiteName       *string
	Block          *string
	FloorApartment string
}

type AccountService interface {
	SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignOut(ctx context.Context, sess *session.Session) error
	Resolve(ctx context.Context, token string) (*session.Session, error)
	Current(sess *session.Session) (*SessionView, error)
	UpdateProfile(ctx context.Context, sess *session.Session, in ProfileUpdate) (*domain.Profile, error)
}

type AccountServiceImpl struct {
	BaseService
	users       repository.AuthRepository
	profiles    repository.ProfileRepository
	revocations repository.RevocationStore
	tokens      TokenIssuer
}

func NewAccountService(
	db Transactor,
	log *slog.Logger,
	users repository.AuthRepository,
	profiles repository.ProfileRepository,
	revocations repository.RevocationStore,
	tokens TokenIssuer,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		BaseService: NewBaseService(db, log),
		users:       users,
		profiles:    profiles,
		revocations: revocations,
		tokens:      tokens,
	}
}

func (s *AccountServiceImpl) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	const op = "internal.service.account.SignUp"
	log := s.log.With(slog.String("op", op))

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var profile *domain.Profile

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		user, err := s.users.CreateUser(ctx, tx, in.Email, hash)
		if err != nil {
			return err
		}

		profile, err = s.profiles.CreateProfile(ctx, tx, &domain.Profile{
			ID:             user.ID,
			Role:           domain.RoleCustomer,
			FullName:       in.FullName,
			Phone:          in.Phone,
			City:           in.City,
			District:       in.District,
			Neighborhood:   in.Neighborhood,
			SiteName:       in.SiteName,
			Block:          in.Block,
			FloorApartment: in.FloorApartment,
		})

		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("user signed up", slog.String("user_id", profile.ID))

	return s.issue(profile)
}

func (s *AccountServiceImpl) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "internal.service.account.SignIn"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	ok, err := auth.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	profile, err := s.profiles.GetProfileByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load profile: %w", op, err)
	}

	return s.issue(profile)
}

func (s *AccountServiceImpl) SignOut(ctx context.Context, sess *session.Session) error {
	const op = "internal.service.account.SignOut"

	if err := s.revocations.Revoke(ctx, sess.TokenID, sess.Remaining(s.now())); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user signed out", slog.String("op", op), slog.String("user_id", sess.UserID))

	return nil
}

// Resolve turns a bearer token into a session. A missing profile row is an
// authentication failure; any other profile load failure is returned as is.
func (s *AccountServiceImpl) Resolve(ctx context.Context, token string) (*session.Session, error) {
	const op = "internal.service.account.Resolve"

	parsed, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, parsed.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if revoked {
		return nil, fmt.Errorf("%w: session signed out", apperrors.ErrUnauthorized)
	}

	profile, err := s.profiles.GetProfileByID(ctx, parsed.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no profile for identity '%s'", apperrors.ErrUnauthorized, parsed.UserID)
		}

		return nil, fmt.Errorf("%s: failed to load profile: %w", op, err)
	}

	return &session.Session{
		UserID:    parsed.UserID,
		TokenID:   parsed.ID,
		ExpiresAt: parsed.ExpiresAt,
		Profile:   profile,
	}, nil
}

func (s *AccountServiceImpl) Current(sess *session.Session) (*SessionView, error) {
	root, ok := session.RootFor(sess.Role())
	if !ok {
		return nil, fmt.Errorf("%w: role '%s' has no workflow", apperrors.ErrForbidden, sess.Role())
	}

	return &SessionView{Profile: sess.Profile, Root: root}, nil
}

func (s *AccountServiceImpl) UpdateProfile(ctx context.Context, sess *session.Session, in ProfileUpdate) (*domain.Profile, error) {
	const op = "internal.service.account.UpdateProfile"

	updated := *sess.Profile
	updated.FullName = in.FullName
	updated.Phone = in.Phone
	updated.City = in.City
	updated.District = in.District
	updated.Neighborhood = in.Neighborhood
	updated.SiteName = in.SiteName
	updated.Block = in.Block
	updated.FloorApartment = in.FloorApartment

	profile, err := s.profiles.UpdateProfile(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return profile, nil
}

func (s *AccountServiceImpl) issue(profile *domain.Profile) (*AuthResult, error) {
	token, err := s.tokens.Issue(profile.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token.Value, ExpiresAt: token.ExpiresAt, Profile: profile}, nil
}
