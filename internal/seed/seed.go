// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"weave/internal/cache"
	"weave/internal/models"
	"weave/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

// Run populates the database with a user mesh: connections, follows and a
// spread of invitations in every status. Development use only.
func Run(db *gorm.DB, svc *service.NetworkService, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.NumUsers < 8 {
		opts.NumUsers = 40
	}

	ctx := context.Background()

	if opts.ShouldClean {
		var staleIDs []uint
		if err := db.Model(&models.User{}).Pluck("id", &staleIDs).Error; err != nil {
			return err
		}
		if err := db.Exec("DELETE FROM invitations").Error; err != nil {
			return err
		}
		if err := db.Exec("DELETE FROM follows").Error; err != nil {
			return err
		}
		if err := db.Exec("DELETE FROM connections").Error; err != nil {
			return err
		}
		if err := db.Exec("DELETE FROM users").Error; err != nil {
			return err
		}
		// Cached entries for the deleted users would otherwise outlive them.
		for _, id := range staleIDs {
			cache.InvalidateUser(ctx, id)
			cache.InvalidateNetworkSummary(ctx, id)
		}
		log.Println("Cleaned existing network data")
	}

	users := make([]models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s%s%d", first, last, r.Intn(1000)))
		user := models.User{
			Username:    username,
			Email:       fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			DisplayName: fmt.Sprintf("%s %s", first, last),
			FirstName:   first,
			LastName:    last,
			Avatar:      fmt.Sprintf("https://picsum.photos/seed/%s/200/200", username),
			IsAdmin:     i == 0,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	// Connection mesh: each user connects to a handful of others.
	for i := range users {
		for _, j := range r.Perm(len(users))[:3] {
			if err := svc.CreateMutualConnection(ctx, users[i].ID, users[j].ID); err != nil {
				return fmt.Errorf("seed connection: %w", err)
			}
		}
	}

	// Follow mesh, denser than connections.
	for i := range users {
		for _, j := range r.Perm(len(users))[:6] {
			if i == j {
				continue
			}
			exists := db.Where("follower_id = ? AND following_id = ?", users[i].ID, users[j].ID).
				First(&models.Follow{}).Error == nil
			if exists {
				continue
			}
			follow := models.Follow{FollowerID: users[i].ID, FollowingID: users[j].ID}
			if err := db.Create(&follow).Error; err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}

	// Pending invitations between not-yet-connected users, plus a spread of
	// responded ones for the admin views.
	for i := 0; i < len(users)-1; i++ {
		if err := svc.SendInvitation(ctx, users[i].ID, users[i+1].ID); err != nil {
			return fmt.Errorf("seed invitation: %w", err)
		}
	}

	log.Println("Seeding complete")
	return nil
}
