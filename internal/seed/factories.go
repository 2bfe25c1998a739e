// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"mex/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var travelStyles = []string{"adventure", "relaxation", "culture", "nightlife"}
var foodPreferences = []string{"street food", "fine dining", "vegetarian", "local classics"}
var paces = []string{"packed", "balanced", "relaxed"}
var interestPool = []string{"history", "markets", "beaches", "hiking", "architecture", "photography", "museums", "food tours"}

var destinations = []string{
	"Marrakech, Morocco",
	"Lisbon, Portugal",
	"Kyoto, Japan",
	"Oaxaca, Mexico",
	"Istanbul, Turkey",
	"Hanoi, Vietnam",
	"Tbilisi, Georgia",
	"Medellín, Colombia",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a traveller account with a completed
// preference quiz. Optional override functions may modify the generated user
// before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:        gofakeit.Name(),
		Email:       gofakeit.Email(),
		Bio:         gofakeit.Sentence(10),
		Image:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Nationality: gofakeit.Country(),
		IsPublic:    true,

		TravelStyle:    pick(f.rng, travelStyles),
		FoodPreference: pick(f.rng, foodPreferences),
		Pace:           pick(f.rng, paces),
		Interests:      pick(f.rng, interestPool) + "," + pick(f.rng, interestPool),
	}
	user.ProfileComplete = true

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFriendship writes both edges of the symmetric relation plus the
// accepted request that produced them.
func (f *Factory) CreateFriendship(a, b *models.User) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		request := models.FriendRequest{
			FromUserID: a.ID,
			ToUserID:   b.ID,
			Status:     models.FriendRequestAccepted,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		edges := []models.Friendship{
			{UserID: a.ID, FriendID: b.ID},
			{UserID: b.ID, FriendID: a.ID},
		}
		return tx.Create(&edges).Error
	})
}

// CreateTrip persists a trip owned by the given user with accepted
// memberships for every listed member.
func (f *Factory) CreateTrip(owner *models.User, members []*models.User, overrides ...func(*models.Trip)) (*models.Trip, error) {
	start := time.Now().AddDate(0, 0, f.rng.Intn(120)-30)
	budget := float64(gofakeit.Number(500, 5000))
	trip := &models.Trip{
		Name:            fmt.Sprintf("%s getaway", gofakeit.AdjectiveDescriptive()),
		Destination:     pick(f.rng, destinations),
		TravelStartDate: start,
		TravelEndDate:   start.AddDate(0, 0, 2+f.rng.Intn(12)),
		Budget:          &budget,
		SouvenirType:    pick(f.rng, []string{"spices", "ceramics", "textiles", "postcards"}),
	}
	for _, override := range overrides {
		override(trip)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		memberships := []models.TripMembership{
			{TripID: trip.ID, UserID: owner.ID, Role: models.TripRoleOwner, Status: models.MembershipAccepted},
		}
		for _, member := range members {
			memberships = append(memberships, models.TripMembership{
				TripID: trip.ID,
				UserID: member.ID,
				Role:   models.TripRoleMember,
				Status: models.MembershipAccepted,
			})
		}
		return tx.Create(&memberships).Error
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// CreatePost persists a feed post for the author with a realistic created_at
// spread and credits the author's points balance.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		AuthorID: author.ID,
		Content:  gofakeit.Paragraph(1, 3, 8, " "),
	}
	if f.rng.Intn(2) == 0 {
		post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		post.MediaType = "image"
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour)

	for _, override := range overrides {
		override(post)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", author.ID).
			Update("points", gorm.Expr("points + ?", 10)).Error
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreateLike records a like; duplicate pairs are ignored.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(&like).Error
	if err != nil {
		log.Printf("seed: skipping duplicate like user=%d post=%d", user.ID, post.ID)
	}
	return nil
}

// CreateComment attaches a generated comment to the post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     gofakeit.Sentence(8),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
