package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"murmur/internal/models"
)

type reactionKey struct {
	tenantID   uint64
	targetType models.ReactionTargetType
	targetID   uint64
	userID     uint64
	reaction   string
}

type reactionRepoStub struct {
	active map[reactionKey]bool
}

func newReactionRepoStub() *reactionRepoStub {
	return &reactionRepoStub{active: map[reactionKey]bool{}}
}

func (s *reactionRepoStub) Toggle(_ context.Context, tenantID, userID uint64, targetType models.ReactionTargetType, targetID uint64, reactionType string) (bool, error) {
	key := reactionKey{tenantID, targetType, targetID, userID, reactionType}
	if s.active[key] {
		delete(s.active, key)
		return false, nil
	}
	s.active[key] = true
	return true, nil
}

func (s *reactionRepoStub) Count(_ context.Context, tenantID uint64, targetType models.ReactionTargetType, targetID uint64, reactionType string) (uint32, error) {
	var n uint32
	for key, on := range s.active {
		if on && key.tenantID == tenantID && key.targetType == targetType && key.targetID == targetID && key.reaction == reactionType {
			n++
		}
	}
	return n, nil
}

func TestReactionService_ToggleFlips(t *testing.T) {
	svc := NewReactionService(newReactionRepoStub())
	ctx := context.Background()

	active, total, err := svc.Toggle(ctx, testScope, models.ReactionTargetPost, 5, "like")
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, uint32(1), total)

	active, total, err = svc.Toggle(ctx, testScope, models.ReactionTargetPost, 5, "like")
	require.NoError(t, err)
	assert.False(t, active)
	assert.Zero(t, total)
}

func TestReactionService_DefaultType(t *testing.T) {
	repo := newReactionRepoStub()
	svc := NewReactionService(repo)
	ctx := context.Background()

	active, _, err := svc.Toggle(ctx, testScope, models.ReactionTargetComment, 7, "")
	require.NoError(t, err)
	assert.True(t, active)

	// An empty type and an explicit "like" hit the same reaction row.
	active, total, err := svc.Toggle(ctx, testScope, models.ReactionTargetComment, 7, "like")
	require.NoError(t, err)
	assert.False(t, active)
	assert.Zero(t, total)
}

func TestReactionService_TotalCountsAllUsers(t *testing.T) {
	repo := newReactionRepoStub()
	svc := NewReactionService(repo)
	ctx := context.Background()

	other := models.Scope{TenantID: testScope.TenantID, UserID: 11}
	_, _, err := svc.Toggle(ctx, other, models.ReactionTargetPost, 5, "like")
	require.NoError(t, err)

	active, total, err := svc.Toggle(ctx, testScope, models.ReactionTargetPost, 5, "like")
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, uint32(2), total)
}

func TestReactionService_Validation(t *testing.T) {
	svc := NewReactionService(newReactionRepoStub())
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, testScope, models.ReactionTargetType("feed"), 5, "like")
	require.Error(t, err)

	_, _, err = svc.Toggle(ctx, testScope, models.ReactionTargetPost, 0, "like")
	require.Error(t, err)
}
