package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendshare/lendshare-backend/internal/models"
	"github.com/lendshare/lendshare-backend/internal/repository"
	"github.com/lendshare/lendshare-backend/internal/service"
)

type requestFixture struct {
	ctx       context.Context
	db        *repository.MemoryDB
	svc       *service.RequestService
	requester models.User
	other     models.User
	clock     time.Time
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	f := &requestFixture{ctx: context.Background(), db: repository.NewMemoryDB(), clock: fixedNow}
	f.svc = service.NewRequestService(f.db.Users(), f.db.Requests(), f.db.Items()).
		WithClock(func() time.Time { return f.clock })

	f.requester = models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, f.db.Users().Save(f.ctx, &f.requester))
	f.other = models.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, f.db.Users().Save(f.ctx, &f.other))
	return f
}

func TestAddRequest(t *testing.T) {
	f := newRequestFixture(t)

	request, err := f.svc.Add(f.ctx, f.requester.ID, "need a ladder")
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, f.requester.ID, request.RequesterID)
	assert.Equal(t, fixedNow, request.Created)
}

func TestAddRequestValidation(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.Add(f.ctx, f.requester.ID, "   ")
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))

	_, err = f.svc.Add(f.ctx, 999, "need a ladder")
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestByRequesterNewestFirstWithItems(t *testing.T) {
	f := newRequestFixture(t)

	older, err := f.svc.Add(f.ctx, f.requester.ID, "need a ladder")
	require.NoError(t, err)
	f.clock = fixedNow.Add(time.Hour)
	newer, err := f.svc.Add(f.ctx, f.requester.ID, "need a tent")
	require.NoError(t, err)

	offered := models.Item{
		Name: "Ladder", Description: "3m aluminium", Available: true,
		OwnerID: f.other.ID, RequestID: &older.ID,
	}
	require.NoError(t, f.db.Items().Save(f.ctx, &offered))

	details, err := f.svc.ByRequester(f.ctx, f.requester.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, newer.ID, details[0].ID)
	assert.Empty(t, details[0].Items)
	assert.Equal(t, older.ID, details[1].ID)
	require.Len(t, details[1].Items, 1)
	assert.Equal(t, offered.ID, details[1].Items[0].ID)
}

func TestByOthersExcludesOwn(t *testing.T) {
	f := newRequestFixture(t)
	_, err := f.svc.Add(f.ctx, f.requester.ID, "need a ladder")
	require.NoError(t, err)
	theirs, err := f.svc.Add(f.ctx, f.other.ID, "need a drill")
	require.NoError(t, err)

	details, err := f.svc.ByOthers(f.ctx, f.requester.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, theirs.ID, details[0].ID)
}

func TestByOthersPageBounds(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.ByOthers(f.ctx, f.requester.ID, -1, 10)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))

	_, err = f.svc.ByOthers(f.ctx, f.requester.ID, 0, 0)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestGetRequestByID(t *testing.T) {
	f := newRequestFixture(t)
	request, err := f.svc.Add(f.ctx, f.requester.ID, "need a ladder")
	require.NoError(t, err)

	detail, err := f.svc.GetByID(f.ctx, f.other.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, detail.ID)
	assert.Empty(t, detail.Items)

	_, err = f.svc.GetByID(f.ctx, f.other.ID, 999)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = f.svc.GetByID(f.ctx, 999, request.ID)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}
