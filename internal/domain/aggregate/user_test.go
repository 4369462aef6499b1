package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Ana", "  Ana@Example.COM ", "secret1", RoleHost, "Downtown", "")
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", u.Email())
	assert.NoError(t, u.VerifyPassword("secret1"))
	assert.Error(t, u.VerifyPassword("wrong"))
	assert.Error(t, u.SetVendorProfile(VendorProfile{BusinessName: "x", ServiceType: "y"}))
}

func TestNewUserValidation(t *testing.T) {
	_, err := NewUser("", "a@b.c", "secret1", RoleHost, "", "")
	assert.Error(t, err)
	_, err = NewUser("A", "not-an-email", "secret1", RoleHost, "", "")
	assert.Error(t, err)
	_, err = NewUser("A", "a@b.c", "123", RoleHost, "", "")
	assert.Error(t, err)
	_, err = NewUser("A", "a@b.c", "secret1", UserRole("guest"), "", "")
	assert.Error(t, err)
}

func TestAdminCannotBeDeleted(t *testing.T) {
	admin, err := NewUser("Root", "root@example.com", "secret1", RoleAdmin, "", "")
	require.NoError(t, err)
	assert.Error(t, admin.Delete("someone"))

	vendor, err := NewUser("V", "v@example.com", "secret1", RoleVendor, "", "")
	require.NoError(t, err)
	require.NoError(t, vendor.SetVendorProfile(VendorProfile{BusinessName: "Blooms", ServiceType: "decor"}))
	assert.NoError(t, vendor.Delete("root"))
}

func TestConversationIDIsSymmetric(t *testing.T) {
	assert.Equal(t, ConversationID("b", "a"), ConversationID("a", "b"))
	assert.Equal(t, "a-b", ConversationID("b", "a"))
}

func TestNewReviewValidation(t *testing.T) {
	_, err := NewReview("v", "h", "e", 6, "great", "decor")
	assert.Error(t, err)
	_, err = NewReview("v", "h", "e", 4, "  ", "decor")
	assert.Error(t, err)

	r, err := NewReview("v", "h", "e", 5, "great", "decor")
	require.NoError(t, err)
	assert.Equal(t, 5, r.Rating())
}
