package server

import (
	"net/http"
	"testing"

	"murmur/internal/models"
	"murmur/internal/sns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMe(t *testing.T) {
	app, _ := newTestApp(t)

	var resp sns.GetMeResponse
	status := asAlice(t, app, sns.ProcGetMe, sns.GetMeRequest{}, &resp)
	require.Equal(t, http.StatusOK, status)

	assert.NotZero(t, resp.UserID)
	assert.Equal(t, "u_alice", resp.DisplayName)
	require.Len(t, resp.Memberships, 1)
	assert.Equal(t, "acme", resp.Memberships[0].TenantSlug)
	assert.Equal(t, "member", resp.Memberships[0].Role)
}

func TestGetMe_MissingHeaders(t *testing.T) {
	app, _ := newTestApp(t)

	status := call(t, app, sns.ProcGetMe, "", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = call(t, app, sns.ProcGetMe, "acme", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestGetMe_UnknownTenant(t *testing.T) {
	app, _ := newTestApp(t)

	status := call(t, app, sns.ProcGetMe, "globex", "u_alice", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestResolveTenant_PublicAndBySlug(t *testing.T) {
	app, db := newTestApp(t)

	var tenant models.Tenant
	require.NoError(t, db.Where("slug = ?", "acme").First(&tenant).Error)
	require.NoError(t, db.Create(&models.TenantDomain{TenantID: tenant.ID, Domain: "social.example.com"}).Error)

	// No identity headers: ResolveTenant is public.
	var resp sns.ResolveTenantResponse
	status := call(t, app, sns.ProcResolveTenant, "", "",
		sns.ResolveTenantRequest{Host: "social.example.com"}, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, tenant.ID, resp.TenantID)
	assert.Equal(t, "acme", resp.Slug)

	// Subdomain slug fallback.
	status = call(t, app, sns.ProcResolveTenant, "", "",
		sns.ResolveTenantRequest{Host: "acme.murmur.dev"}, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "acme", resp.Slug)

	status = call(t, app, sns.ProcResolveTenant, "", "",
		sns.ResolveTenantRequest{Host: "nowhere.invalid"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
