package repository

import (
	"context"
	"testing"

	"murmur/internal/database"
	"murmur/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// seedScope creates a tenant with two member users and returns their ids.
func seedScope(t *testing.T, db *gorm.DB) (tenantID, aliceID, bobID uint64) {
	t.Helper()
	ctx := context.Background()

	tenant := models.Tenant{Slug: "acme", Name: "Acme"}
	require.NoError(t, db.WithContext(ctx).Create(&tenant).Error)

	alice := models.User{AuthSub: "u_alice", DisplayName: "u_alice"}
	bob := models.User{AuthSub: "u_bob", DisplayName: "u_bob"}
	require.NoError(t, db.WithContext(ctx).Create(&alice).Error)
	require.NoError(t, db.WithContext(ctx).Create(&bob).Error)

	for _, uid := range []uint64{alice.ID, bob.ID} {
		m := models.TenantMembership{TenantID: tenant.ID, UserID: uid, Role: models.MembershipRoleMember}
		require.NoError(t, db.WithContext(ctx).Create(&m).Error)
	}

	return tenant.ID, alice.ID, bob.ID
}
