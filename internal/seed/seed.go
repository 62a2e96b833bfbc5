package seed

import (
	"log"
	"strings"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// demoCast is the fixed identity set the development client defaults to.
var demoCast = []struct {
	authSub string
	name    string
	role    models.MembershipRole
}{
	{"u_alice", "Alice", models.MembershipRoleAdmin},
	{"u_bob", "Bob", models.MembershipRoleMember},
	{"u_carol", "Carol", models.MembershipRoleMember},
}

// Demo seeds the demo dataset: tenants acme and globex, the fixed cast in
// both, a handful of posts with comments and likes, and one alice/bob DM.
// Idempotent for the fixed entities; random content accumulates.
func Demo(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	for _, t := range []struct{ slug, name string }{
		{"acme", "Acme"},
		{"globex", "Globex"},
	} {
		tenant, err := f.Tenant(t.slug, t.name)
		if err != nil {
			return err
		}

		users := make([]*models.User, 0, len(demoCast)+opts.ExtraUsers)
		for _, member := range demoCast {
			u, err := f.User(tenant, member.authSub, member.name, member.role)
			if err != nil {
				return err
			}
			users = append(users, u)
		}
		for i := 0; i < opts.ExtraUsers; i++ {
			u, err := f.RandomUser(tenant)
			if err != nil {
				return err
			}
			users = append(users, u)
		}

		posts := opts.PostsPerTenant
		if posts <= 0 {
			posts = 10
		}
		for i := 0; i < posts; i++ {
			author := users[f.rnd.Intn(len(users))]
			post, err := f.Post(tenant, author, "")
			if err != nil {
				return err
			}
			for c := 0; c < f.rnd.Intn(4); c++ {
				if _, err := f.Comment(post, users[f.rnd.Intn(len(users))], ""); err != nil {
					return err
				}
			}
			for l := 0; l < f.rnd.Intn(len(users)+1); l++ {
				if err := f.Like(post, users[l%len(users)]); err != nil {
					return err
				}
			}
		}

		var dmCount int64
		if err := db.Model(&models.Conversation{}).
			Where("tenant_id = ?", tenant.ID).Count(&dmCount).Error; err != nil {
			return err
		}
		if t.slug == "acme" && dmCount == 0 {
			if _, err := f.DM(tenant, users[0], users[1], []string{
				"hey, did you see the new feed?",
				"yeah, loads instantly now",
				"ship it",
			}); err != nil {
				return err
			}
		}

		log.Printf("seeded tenant %s: %d users, %d posts", tenant.Slug, len(users), posts)
	}

	return nil
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
