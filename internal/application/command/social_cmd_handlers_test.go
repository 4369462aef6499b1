package command

import (
	"testing"
	"time"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"
	jwtutil "party-paradise/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	manager := jwtutil.NewJWTManager("jwt-secret", time.Hour)
	register := NewRegisterHandler(f.factory, f.bus, manager)

	result, err := register.Handle(f.ctx, &RegisterUser{
		Name:         "Lan",
		Email:        "Lan@Example.com",
		Password:     "secret1",
		Role:         aggregate.RoleVendor,
		District:     "District 3",
		BusinessName: "Lan Flowers",
		ServiceType:  "decoration",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "lan@example.com", result.User.Email())
	assert.Equal(t, "Lan Flowers", result.User.VendorProfile().BusinessName)

	claims, err := manager.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID(), claims.UserID)

	_, err = register.Handle(f.ctx, &RegisterUser{Name: "Dup", Email: "lan@example.com", Password: "secret1", Role: aggregate.RoleHost})
	assertAppError(t, err, "CONFLICT")

	login := NewLoginHandler(f.factory, manager)
	_, err = login.Handle(f.ctx, &LoginUser{Email: "lan@example.com", Password: "wrong-pass"})
	assertAppError(t, err, "UNAUTHORIZED")

	_, err = login.Handle(f.ctx, &LoginUser{Email: "nobody@example.com", Password: "secret1"})
	assertAppError(t, err, "UNAUTHORIZED")

	logged, err := login.Handle(f.ctx, &LoginUser{Email: "lan@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID(), logged.User.ID())
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	register := NewRegisterHandler(f.factory, f.bus, jwtutil.NewJWTManager("jwt-secret", time.Hour))

	tests := []struct {
		name string
		cmd  RegisterUser
	}{
		{"admin role", RegisterUser{Name: "A", Email: "a@example.com", Password: "secret1", Role: aggregate.RoleAdmin}},
		{"vendor without business", RegisterUser{Name: "V", Email: "v@example.com", Password: "secret1", Role: aggregate.RoleVendor, ServiceType: "dj"}},
		{"short password", RegisterUser{Name: "H", Email: "h@example.com", Password: "123", Role: aggregate.RoleHost}},
		{"bad email", RegisterUser{Name: "H", Email: "not-an-email", Password: "secret1", Role: aggregate.RoleHost}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd
			_, err := register.Handle(f.ctx, &cmd)
			assertAppError(t, err, "VALIDATION_ERROR")
		})
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, SeedAdmin(f.ctx, f.factory, f.bus, "admin@example.com", "secret1"))
	require.NoError(t, SeedAdmin(f.ctx, f.factory, f.bus, "admin@example.com", "secret1"))
	require.NoError(t, SeedAdmin(f.ctx, f.factory, f.bus, "", ""))

	admins, err := f.factory.CreateUnitOfWork().UserRepository().List(f.ctx, aggregate.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "admin", aggregate.RoleAdmin)
	host := f.user(t, "host", aggregate.RoleHost)
	handler := NewDeleteUserHandler(f.factory, f.bus)

	err := handler.Handle(f.ctx, &DeleteUser{UserID: admin.ID(), AdminID: admin.ID()})
	assertAppError(t, err, "FORBIDDEN")

	require.NoError(t, handler.Handle(f.ctx, &DeleteUser{UserID: host.ID(), AdminID: admin.ID()}))
	_, err = f.factory.CreateUnitOfWork().UserRepository().GetByID(f.ctx, host.ID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, f.seen, "UserDeleted")

	err = handler.Handle(f.ctx, &DeleteUser{UserID: host.ID(), AdminID: admin.ID()})
	assertAppError(t, err, "NOT_FOUND")
}

func TestSubmitReview(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	a := f.user(t, "vendora", aggregate.RoleVendor)
	b := f.user(t, "vendorb", aggregate.RoleVendor)
	evt := f.submittedEvent(t, host.ID(), a.ID(), b.ID())
	f.respond(t, evt.ID(), a.ID(), aggregate.SelectionAccepted)
	f.respond(t, evt.ID(), b.ID(), aggregate.SelectionRejected)

	handler := NewSubmitReviewHandler(f.factory)

	_, err := handler.Handle(f.ctx, &SubmitReview{HostID: host.ID(), VendorID: b.ID(), EventID: evt.ID(), Rating: 4, Text: "ok"})
	assertAppError(t, err, "VALIDATION_ERROR")

	_, err = handler.Handle(f.ctx, &SubmitReview{HostID: host.ID(), VendorID: a.ID(), EventID: evt.ID(), Rating: 6, Text: "great"})
	assertAppError(t, err, "VALIDATION_ERROR")

	review, err := handler.Handle(f.ctx, &SubmitReview{HostID: host.ID(), VendorID: a.ID(), EventID: evt.ID(), Rating: 5, Text: "great food"})
	require.NoError(t, err)
	assert.Equal(t, "catering", review.ServiceType())

	_, err = handler.Handle(f.ctx, &SubmitReview{HostID: host.ID(), VendorID: a.ID(), EventID: evt.ID(), Rating: 3, Text: "again"})
	assertAppError(t, err, "CONFLICT")
}

func TestSendMessage(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host", aggregate.RoleHost)
	vendor := f.user(t, "vendora", aggregate.RoleVendor)
	handler := NewSendMessageHandler(f.factory)

	_, err := handler.Handle(f.ctx, &SendMessage{SenderID: host.ID(), ReceiverID: host.ID(), Text: "hi"})
	assertAppError(t, err, "VALIDATION_ERROR")

	_, err = handler.Handle(f.ctx, &SendMessage{SenderID: host.ID(), ReceiverID: "ghost", Text: "hi"})
	assertAppError(t, err, "NOT_FOUND")

	msg, err := handler.Handle(f.ctx, &SendMessage{SenderID: host.ID(), ReceiverID: vendor.ID(), Text: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Text())
	assert.Equal(t, aggregate.ConversationID(vendor.ID(), host.ID()), msg.ConversationID())
	assert.False(t, msg.IsRead())
}

func TestServiceOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "vendora", aggregate.RoleVendor)
	other := f.user(t, "vendorb", aggregate.RoleVendor)

	service, err := NewCreateServiceHandler(f.factory).Handle(f.ctx, &CreateService{
		VendorID:    owner.ID(),
		PackageName: "Buffet",
		Price:       2500,
		Features:    []string{"100 guests"},
	})
	require.NoError(t, err)
	assert.True(t, service.IsActive())

	price := int64(3000)
	_, err = NewUpdateServiceHandler(f.factory).Handle(f.ctx, &UpdateService{
		ServiceID: service.ID(),
		VendorID:  other.ID(),
		Patch:     aggregate.ServicePatch{Price: &price},
	})
	assertAppError(t, err, "FORBIDDEN")

	updated, err := NewUpdateServiceHandler(f.factory).Handle(f.ctx, &UpdateService{
		ServiceID: service.ID(),
		VendorID:  owner.ID(),
		Patch:     aggregate.ServicePatch{Price: &price},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), updated.Price())

	err = NewDeleteServiceHandler(f.factory).Handle(f.ctx, &DeleteService{ServiceID: service.ID(), VendorID: other.ID()})
	assertAppError(t, err, "FORBIDDEN")
	require.NoError(t, NewDeleteServiceHandler(f.factory).Handle(f.ctx, &DeleteService{ServiceID: service.ID(), VendorID: owner.ID()}))

	_, err = NewCreateServiceHandler(f.factory).Handle(f.ctx, &CreateService{VendorID: owner.ID(), PackageName: " "})
	assertAppError(t, err, "VALIDATION_ERROR")
}
