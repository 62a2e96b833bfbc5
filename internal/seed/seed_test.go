package seed

import (
	"testing"

	"murmur/internal/database"
	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestDemo(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Demo(db, Options{ExtraUsers: 2, PostsPerTenant: 5}))

	var tenants []models.Tenant
	require.NoError(t, db.Find(&tenants).Error)
	require.Len(t, tenants, 2)

	var alice models.User
	require.NoError(t, db.Where("auth_sub = ?", "u_alice").First(&alice).Error)

	// Alice is in both tenants.
	var memberships int64
	require.NoError(t, db.Model(&models.TenantMembership{}).
		Where("user_id = ?", alice.ID).Count(&memberships).Error)
	assert.EqualValues(t, 2, memberships)

	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.EqualValues(t, 10, posts)

	// One DM in acme, none in globex.
	var convos []models.Conversation
	require.NoError(t, db.Find(&convos).Error)
	require.Len(t, convos, 1)

	var messages int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("conversation_id = ?", convos[0].ID).Count(&messages).Error)
	assert.EqualValues(t, 3, messages)
}

func TestDemo_FixedEntitiesIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Demo(db, Options{PostsPerTenant: 1}))
	require.NoError(t, Demo(db, Options{PostsPerTenant: 1}))

	var users int64
	require.NoError(t, db.Model(&models.User{}).
		Where("auth_sub IN ?", []string{"u_alice", "u_bob", "u_carol"}).Count(&users).Error)
	assert.EqualValues(t, 3, users)

	var convos int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&convos).Error)
	assert.EqualValues(t, 1, convos)
}
