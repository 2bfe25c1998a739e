package seed

import (
	"fmt"
	"log"

	"mex/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumTrips    int
	ShouldClean bool
	// SkipBcrypt stores a plaintext password for faster local seeding.
	SkipBcrypt bool
	// MaxDays is the created_at spread for generated posts.
	MaxDays int
}

// Seed populates the database with demo travellers, friendships, trips and
// feed activity, plus the permanent reward catalog.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("seeding %d users, %d trips, %d posts", opts.NumUsers, opts.NumTrips, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	}

	if err := Rewards(db); err != nil {
		return fmt.Errorf("seed rewards: %w", err)
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	if err := createFriendMesh(factory, users); err != nil {
		return fmt.Errorf("create friendships: %w", err)
	}

	if err := createTrips(factory, users, opts.NumTrips); err != nil {
		return fmt.Errorf("create trips: %w", err)
	}

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createEngagement(factory, users, posts); err != nil {
		return fmt.Errorf("create engagement: %w", err)
	}

	log.Println("seeding finished")
	return nil
}

func clearData(db *gorm.DB) error {
	sql := `TRUNCATE TABLE comments, likes, posts, suggestions, trip_memberships, trips,
		friendships, friend_requests, reward_unlocks, rewards, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// A fixed login for manual testing
	if count >= 1 {
		user, err := factory.CreateUser(func(u *models.User) {
			u.Name = "Demo Traveller"
			u.Email = "demo@example.com"
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	for len(users) < count {
		user, err := factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFriendMesh links each user to a handful of later users so the graph
// is connected without being complete.
func createFriendMesh(factory *Factory, users []*models.User) error {
	for i, user := range users {
		for span := 1; span <= 3; span++ {
			j := i + span
			if j >= len(users) {
				break
			}
			if err := factory.CreateFriendship(user, users[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func createTrips(factory *Factory, users []*models.User, count int) error {
	if len(users) == 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		owner := users[i%len(users)]
		var members []*models.User
		// Group trips pull in the owner's mesh neighbours
		if i%2 == 0 {
			for span := 1; span <= 2; span++ {
				j := (i % len(users)) + span
				if j < len(users) {
					members = append(members, users[j])
				}
			}
		}
		if _, err := factory.CreateTrip(owner, members); err != nil {
			return err
		}
	}
	return nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		post, err := factory.CreatePost(users[i%len(users)])
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createEngagement(factory *Factory, users []*models.User, posts []*models.Post) error {
	for i, post := range posts {
		for span := 1; span <= 2+i%3; span++ {
			user := users[(i+span)%len(users)]
			if user.ID == post.AuthorID {
				continue
			}
			if err := factory.CreateLike(user, post); err != nil {
				return err
			}
		}
		if i%3 == 0 {
			commenter := users[(i+1)%len(users)]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return err
			}
		}
	}
	return nil
}
