// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/paywall-api/internal/auth"
	"github.com/carterperez-dev/paywall-api/internal/core"
)

// ProfileDeps injects the read accessors the profile endpoint aggregates.
// ActiveSubscription returns nil when the user has no active subscription.
type ProfileDeps struct {
	ActiveSubscription func(
		ctx context.Context,
		userID string,
	) (*SubscriptionSummary, error)
	InteractionStats func(
		ctx context.Context,
		userID string,
	) (count int64, avgScore float64, err error)
}

type Service struct {
	repo    Repository
	profile ProfileDeps
}

func NewService(repo Repository, profile ProfileDeps) *Service {
	return &Service{repo: repo, profile: profile}
}

func (s *Service) GetByUsername(
	ctx context.Context,
	username string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	username, email, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Username:     strings.ToLower(username),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Role:         RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Profile(
	ctx context.Context,
	userID string,
) (*ProfileResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("profile: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	if s.profile.ActiveSubscription != nil {
		sub, subErr := s.profile.ActiveSubscription(ctx, userID)
		if subErr != nil {
			return nil, fmt.Errorf("profile subscription: %w", subErr)
		}
		resp.Subscription = sub
	}

	if s.profile.InteractionStats != nil {
		count, avg, statsErr := s.profile.InteractionStats(ctx, userID)
		if statsErr != nil {
			return nil, fmt.Errorf("profile interaction stats: %w", statsErr)
		}
		resp.TotalInteractions = count
		resp.AvgInteractionScore = avg
	}

	return resp, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}
}

var _ auth.UserProvider = (*Service)(nil)
