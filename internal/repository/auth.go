package repository

import (
	"context"

	"murmur/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuthRepository defines the interface for identity data operations.
type AuthRepository interface {
	FindTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	FindTenantByDomain(ctx context.Context, domain string) (*models.Tenant, error)
	UpsertUser(ctx context.Context, authSub, displayName string) (*models.User, error)
	EnsureMembership(ctx context.Context, tenantID, userID uint64) error
	ListMemberships(ctx context.Context, userID uint64) ([]models.TenantMembership, error)
}

type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) FindTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *authRepository) FindTenantByDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Joins("JOIN tenant_domains ON tenant_domains.tenant_id = tenants.id").
		Where("tenant_domains.domain = ?", domain).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// UpsertUser creates the user on first sight and refreshes the display name
// afterwards. Users are platform-wide, keyed by the identity provider subject.
func (r *authRepository) UpsertUser(ctx context.Context, authSub, displayName string) (*models.User, error) {
	user := models.User{AuthSub: authSub, DisplayName: displayName}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "auth_sub"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}
	// The conflict path does not report the existing primary key; read it back.
	if err := r.db.WithContext(ctx).Where("auth_sub = ?", authSub).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) EnsureMembership(ctx context.Context, tenantID, userID uint64) error {
	membership := models.TenantMembership{
		TenantID: tenantID,
		UserID:   userID,
		Role:     models.MembershipRoleMember,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error
}

func (r *authRepository) ListMemberships(ctx context.Context, userID uint64) ([]models.TenantMembership, error) {
	var memberships []models.TenantMembership
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("user_id = ?", userID).
		Order("tenant_id").
		Find(&memberships).Error
	return memberships, err
}
