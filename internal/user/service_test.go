// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/paywall-api/internal/core"
)

type fakeUserRepo struct {
	users map[string]*User
}

func (f *fakeUserRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return core.ErrDuplicateKey
		}
	}
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(
	_ context.Context, username string,
) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func TestCreateNormalizesIdentifiers(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*User{}}
	svc := NewService(repo, ProfileDeps{})

	info, err := svc.Create(
		context.Background(), "Alice", "Alice@Example.COM", "hash",
	)
	require.NoError(t, err)

	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "alice@example.com", info.Email)

	found, err := svc.GetByUsername(context.Background(), "ALICE")
	require.NoError(t, err)
	assert.Equal(t, info.ID, found.ID)
}

func TestProfileAggregates(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*User{
		"u1": {
			ID:       "u1",
			Username: "alice",
			Email:    "alice@example.com",
			Role:     RoleUser,
		},
	}}

	started := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(repo, ProfileDeps{
		ActiveSubscription: func(
			_ context.Context, _ string,
		) (*SubscriptionSummary, error) {
			return &SubscriptionSummary{
				PlanID:    "premium",
				StartedAt: started,
				ExpiresAt: started.Add(30 * 24 * time.Hour),
			}, nil
		},
		InteractionStats: func(
			_ context.Context, _ string,
		) (int64, float64, error) {
			return 17, 6.5, nil
		},
	})

	profile, err := svc.Profile(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.Username)
	require.NotNil(t, profile.Subscription)
	assert.Equal(t, "premium", profile.Subscription.PlanID)
	assert.EqualValues(t, 17, profile.TotalInteractions)
	assert.InDelta(t, 6.5, profile.AvgInteractionScore, 1e-9)
}

func TestProfileWithoutSubscription(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*User{
		"u1": {ID: "u1", Username: "bob", Role: RoleUser},
	}}

	svc := NewService(repo, ProfileDeps{
		ActiveSubscription: func(
			_ context.Context, _ string,
		) (*SubscriptionSummary, error) {
			return nil, nil
		},
		InteractionStats: func(
			_ context.Context, _ string,
		) (int64, float64, error) {
			return 0, 0, nil
		},
	})

	profile, err := svc.Profile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, profile.Subscription)
	assert.Zero(t, profile.TotalInteractions)
}

func TestProfileErrors(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*User{
		"u1": {ID: "u1", Username: "bob", Role: RoleUser},
	}}

	t.Run("missing identity", func(t *testing.T) {
		svc := NewService(repo, ProfileDeps{})
		_, err := svc.Profile(context.Background(), "")
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewService(repo, ProfileDeps{})
		_, err := svc.Profile(context.Background(), "nope")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("collaborator fault propagates", func(t *testing.T) {
		svc := NewService(repo, ProfileDeps{
			ActiveSubscription: func(
				_ context.Context, _ string,
			) (*SubscriptionSummary, error) {
				return nil, errors.New("db down")
			},
		})
		_, err := svc.Profile(context.Background(), "u1")
		assert.Error(t, err)
	})
}
