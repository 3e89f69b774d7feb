package seed

import (
	"testing"

	"weave/internal/cache"
	"weave/internal/models"
	"weave/internal/repository"
	"weave/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRunSeedsAConnectedMesh(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Connection{},
		&models.Follow{},
		&models.Invitation{},
	))

	svc := service.NewNetworkService(
		repository.NewUserRepository(db),
		repository.NewConnectionRepository(db),
		repository.NewFollowRepository(db),
		repository.NewInvitationRepository(db),
	)

	require.NoError(t, Run(db, svc, Options{NumUsers: 10}))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(10), users)

	var admins int64
	require.NoError(t, db.Model(&models.User{}).Where("is_admin = ?", true).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)

	// connection rows always come in mirrored pairs
	var connections int64
	require.NoError(t, db.Model(&models.Connection{}).Count(&connections).Error)
	assert.Greater(t, connections, int64(0))
	assert.Zero(t, connections%2)

	var follows int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&follows).Error)
	assert.Greater(t, follows, int64(0))

	var invitations int64
	require.NoError(t, db.Model(&models.Invitation{}).Count(&invitations).Error)
	assert.Greater(t, invitations, int64(0))
}

func TestRunCleanDropsStaleCacheEntries(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Connection{},
		&models.Follow{},
		&models.Invitation{},
	))

	stale := models.User{Username: "leftover", Email: "leftover@example.com"}
	require.NoError(t, db.Create(&stale).Error)

	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(c)
	t.Cleanup(func() {
		cache.SetClient(nil)
		c.Close()
	})
	require.NoError(t, mr.Set(cache.UserKey(stale.ID), `{"id":1,"username":"leftover"}`))
	require.NoError(t, mr.Set(cache.NetworkSummaryKey(stale.ID), `{}`))

	svc := service.NewNetworkService(
		repository.NewUserRepository(db),
		repository.NewConnectionRepository(db),
		repository.NewFollowRepository(db),
		repository.NewInvitationRepository(db),
	)

	require.NoError(t, Run(db, svc, Options{NumUsers: 10, ShouldClean: true}))

	// the wiped user must not survive in the cache
	assert.False(t, mr.Exists(cache.UserKey(stale.ID)))
	assert.False(t, mr.Exists(cache.NetworkSummaryKey(stale.ID)))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(10), users)
}
