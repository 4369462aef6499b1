package memory

import (
	"context"
	"testing"
	"time"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollbackRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	factory := NewUnitOfWorkFactory(NewStore())

	ledger, err := aggregate.NewVendorEarnings("v1")
	require.NoError(t, err)
	require.NoError(t, ledger.AddEarning("e1", "p1", 100, ""))

	uow := factory.CreateUnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.EarningsRepository().Save(ctx, ledger))
	require.NoError(t, uow.Rollback(ctx))

	_, err = factory.CreateUnitOfWork().EarningsRepository().GetByVendorID(ctx, "v1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	uow = factory.CreateUnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.EarningsRepository().Save(ctx, ledger))
	require.NoError(t, uow.Commit(ctx))

	stored, err := factory.CreateUnitOfWork().EarningsRepository().GetByVendorID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), stored.PendingAmount())
}

func TestCloseRollsBackOpenTransaction(t *testing.T) {
	ctx := context.Background()
	factory := NewUnitOfWorkFactory(NewStore())

	user, err := aggregate.NewUser("A", "a@example.com", "secret1", aggregate.RoleHost, "", "")
	require.NoError(t, err)

	uow := factory.CreateUnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().Save(ctx, user))
	require.NoError(t, uow.Close())
	assert.False(t, uow.IsInTransaction())

	_, err = factory.CreateUnitOfWork().UserRepository().GetByID(ctx, user.ID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWorkFactory(NewStore()).CreateUnitOfWork()

	a, err := aggregate.NewUser("A", "same@example.com", "secret1", aggregate.RoleHost, "", "")
	require.NoError(t, err)
	b, err := aggregate.NewUser("B", "SAME@example.com", "secret1", aggregate.RoleVendor, "", "")
	require.NoError(t, err)
	require.NoError(t, uow.UserRepository().Save(ctx, a))
	assert.ErrorIs(t, uow.UserRepository().Save(ctx, b), repository.ErrDuplicate)

	r1, err := aggregate.NewReview("v", "h", "e", 5, "great", "decor")
	require.NoError(t, err)
	r2, err := aggregate.NewReview("v", "h", "e", 4, "again", "decor")
	require.NoError(t, err)
	require.NoError(t, uow.ReviewRepository().Save(ctx, r1))
	assert.ErrorIs(t, uow.ReviewRepository().Save(ctx, r2), repository.ErrDuplicate)

	p1, err := aggregate.NewPayment("e", "h", "v", 10, "INR", "", "o1")
	require.NoError(t, err)
	p2, err := aggregate.NewPayment("e", "h", "v", 10, "INR", "", "o2")
	require.NoError(t, err)
	require.NoError(t, p1.MarkCompleted("x1"))
	require.NoError(t, p2.MarkCompleted("x2"))
	require.NoError(t, uow.PaymentRepository().Save(ctx, p1))
	assert.ErrorIs(t, uow.PaymentRepository().Save(ctx, p2), repository.ErrDuplicate)
}

func TestListDroppable(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWorkFactory(NewStore()).CreateUnitOfWork()
	past := time.Now().AddDate(0, 0, -5)

	for id, status := range map[string]aggregate.EventStatus{
		"draft":     aggregate.EventStatusDraft,
		"confirmed": aggregate.EventStatusConfirmed,
		"dropped":   aggregate.EventStatusDropped,
	} {
		e := aggregate.ReconstructEvent(aggregate.EventState{
			ID: id, HostID: "h1", Status: status, Details: aggregate.EventDetails{Date: past},
		})
		require.NoError(t, uow.EventRepository().Save(ctx, e))
	}

	events, err := uow.EventRepository().ListDroppable(ctx, "h1", aggregate.StartOfDay(time.Now()))
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = uow.EventRepository().ListDroppable(ctx, "h2", aggregate.StartOfDay(time.Now()))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	repo := NewUnitOfWorkFactory(NewStore()).CreateUnitOfWork().MessageRepository()

	m1, err := aggregate.NewMessage("a", "b", "hi")
	require.NoError(t, err)
	m2, err := aggregate.NewMessage("b", "a", "hello")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, m1))
	require.NoError(t, repo.Save(ctx, m2))

	unread, err := repo.CountUnread(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	n, err := repo.MarkRead(ctx, aggregate.ConversationID("a", "b"), "b")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	unread, err = repo.CountUnread(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	conv, err := repo.ListConversation(ctx, "a-b")
	require.NoError(t, err)
	assert.Len(t, conv, 2)
}
