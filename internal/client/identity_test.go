package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIdentity(t *testing.T) {
	id := ResolveIdentity("", "")
	assert.Equal(t, Identity{Tenant: "acme", User: "u_alice"}, id)

	id = ResolveIdentity("globex", "")
	assert.Equal(t, Identity{Tenant: "globex", User: "u_alice"}, id)

	id = ResolveIdentity("", "u_bob")
	assert.Equal(t, Identity{Tenant: "acme", User: "u_bob"}, id)

	id = ResolveIdentity("globex", "u_carol")
	assert.Equal(t, Identity{Tenant: "globex", User: "u_carol"}, id)
}
