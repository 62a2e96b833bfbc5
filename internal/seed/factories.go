// Package seed creates demo and test data. Development only; nothing here
// runs in production deployments.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"murmur/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data a seed run produces.
type Options struct {
	// ExtraUsers is the number of random users per tenant beyond the fixed
	// demo cast.
	ExtraUsers int
	// PostsPerTenant is the number of random posts per tenant.
	PostsPerTenant int
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a factory bound to the given database.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp spread over the configured window.
func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.rnd.Intn(f.opts.MaxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}

// Tenant creates a tenant, reusing an existing one with the same slug.
func (f *Factory) Tenant(slug, name string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := f.db.Where("slug = ?", slug).First(&tenant).Error
	if err == nil {
		return &tenant, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tenant = models.Tenant{Slug: slug, Name: name}
	if err := f.db.Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// User creates a user keyed by auth subject and joins it to the tenant.
func (f *Factory) User(tenant *models.Tenant, authSub, displayName string, role models.MembershipRole) (*models.User, error) {
	var user models.User
	err := f.db.Where("auth_sub = ?", authSub).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{AuthSub: authSub, DisplayName: displayName}
		err = f.db.Create(&user).Error
	}
	if err != nil {
		return nil, err
	}

	membership := models.TenantMembership{TenantID: tenant.ID, UserID: user.ID, Role: role}
	if err := f.db.Where(models.TenantMembership{TenantID: tenant.ID, UserID: user.ID}).
		FirstOrCreate(&membership).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RandomUser creates a fake member of the tenant.
func (f *Factory) RandomUser(tenant *models.Tenant) (*models.User, error) {
	sub := fmt.Sprintf("u_%s%d", gofakeit.Username(), f.rnd.Intn(10000))
	return f.User(tenant, sub, gofakeit.Name(), models.MembershipRoleMember)
}

// Post creates a post with the given body, or a fake one when body is empty.
func (f *Factory) Post(tenant *models.Tenant, author *models.User, body string) (*models.Post, error) {
	if body == "" {
		body = gofakeit.Sentence(8 + f.rnd.Intn(12))
	}
	post := models.Post{
		TenantID:     tenant.ID,
		AuthorUserID: author.ID,
		Body:         body,
		CreatedAt:    f.pastTime(),
	}
	if err := f.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Comment creates a comment on a post.
func (f *Factory) Comment(post *models.Post, author *models.User, body string) (*models.Comment, error) {
	if body == "" {
		body = gofakeit.Sentence(4 + f.rnd.Intn(10))
	}
	comment := models.Comment{
		TenantID:     post.TenantID,
		PostID:       post.ID,
		AuthorUserID: author.ID,
		Body:         body,
		CreatedAt:    post.CreatedAt.Add(time.Duration(1+f.rnd.Intn(120)) * time.Minute),
	}
	if err := f.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Like creates a like reaction on a post. Duplicate likes are skipped via
// the unique reaction index.
func (f *Factory) Like(post *models.Post, user *models.User) error {
	reaction := models.Reaction{
		TenantID:   post.TenantID,
		TargetType: models.ReactionTargetPost,
		TargetID:   post.ID,
		UserID:     user.ID,
		Type:       "like",
	}
	err := f.db.Create(&reaction).Error
	if err != nil && isDuplicateError(err) {
		return nil
	}
	return err
}

// DM creates a two-member conversation with an alternating message exchange.
func (f *Factory) DM(tenant *models.Tenant, a, b *models.User, bodies []string) (*models.Conversation, error) {
	conv := models.Conversation{TenantID: tenant.ID, Kind: models.ConversationKindDM}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}
		for _, uid := range []uint64{a.ID, b.ID} {
			m := models.ConversationMember{ConversationID: conv.ID, UserID: uid}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	senders := []*models.User{a, b}
	for i, body := range bodies {
		msg := models.Message{
			TenantID:       tenant.ID,
			ConversationID: conv.ID,
			SenderUserID:   senders[i%2].ID,
			Body:           body,
		}
		if err := f.db.Create(&msg).Error; err != nil {
			return nil, err
		}
	}
	return &conv, nil
}
