package console

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	engine   *Engine
	view     *View
	profiles *MockProfileRepository
	listings *MockListingRepository
	notifs   *MockNotificationRepository
	bus      *MockEventBus
	now      time.Time
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	nopLogger := zerolog.Nop()

	view := NewView(&nopLogger)
	view.Replace(testSnapshot())

	profiles := new(MockProfileRepository)
	listings := new(MockListingRepository)
	notifs := new(MockNotificationRepository)
	bus := new(MockEventBus)

	notifier := NewNotifier(notifs, &nopLogger)
	engine := NewEngine(view, profiles, listings, notifier, bus, &nopLogger)

	now := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	engine.clock = func() time.Time { return now }
	notifier.clock = func() time.Time { return now }

	return &engineFixture{
		engine:   engine,
		view:     view,
		profiles: profiles,
		listings: listings,
		notifs:   notifs,
		bus:      bus,
		now:      now,
	}
}

func TestEngine_ApproveListing_PatchesAndNotifies(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.listings.On("SetState", mock.Anything, "L1", domain.ProductActive, f.now).Return(nil).Once()
	f.notifs.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	f.bus.On("Publish", mock.Anything, ports.TopicListingApproved, mock.Anything).Return(nil).Once()

	updated, err := f.engine.ApproveListing(ctx, "L1")
	require.NoError(t, err)
	require.Equal(t, domain.ProductActive, updated.ProductState)
	require.Equal(t, f.now, updated.UpdatedAt)
	require.Equal(t, "Chaise", updated.Name)

	// view was patched in place
	l, _ := f.view.Listing("L1")
	require.Equal(t, domain.ProductActive, l.ProductState)

	// exactly one notification, addressed to the seller
	require.Len(t, f.notifs.Inserted, 1)
	n := f.notifs.Inserted[0]
	require.Equal(t, "U2", n.UserID)
	require.Equal(t, "notifications.messages.productApproved", n.TranslationKey)
	require.Equal(t, "product", n.Type)
	require.Equal(t, domain.NotificationUnread, n.Status)
	require.Equal(t, map[string]any{"productName": "Chaise"}, n.TranslationParams)

	f.listings.AssertExpectations(t)
	f.bus.AssertExpectations(t)
}

func TestEngine_RejectListing_UsesRejectionKey(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.listings.On("SetState", mock.Anything, "L1", domain.ProductRejected, f.now).Return(nil).Once()
	f.notifs.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	f.bus.On("Publish", mock.Anything, ports.TopicListingRejected, mock.Anything).Return(nil).Once()

	updated, err := f.engine.RejectListing(ctx, "L1")
	require.NoError(t, err)
	require.Equal(t, domain.ProductRejected, updated.ProductState)

	require.Len(t, f.notifs.Inserted, 1)
	require.Equal(t, "notifications.messages.productRejected", f.notifs.Inserted[0].TranslationKey)
}

func TestEngine_ApproveListing_StoreFailureLeavesStateUntouched(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.listings.On("SetState", mock.Anything, "L1", domain.ProductActive, f.now).
		Return(errors.New("store down")).Once()

	_, err := f.engine.ApproveListing(ctx, "L1")
	require.Error(t, err)

	// no local patch, no notification
	l, _ := f.view.Listing("L1")
	require.Equal(t, domain.ProductPending, l.ProductState)
	require.Empty(t, f.notifs.Inserted)
	f.notifs.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)

	// busy flag was cleared: the next call reaches the repository again
	f.listings.On("SetState", mock.Anything, "L1", domain.ProductActive, f.now).Return(nil).Once()
	f.notifs.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	f.bus.On("Publish", mock.Anything, ports.TopicListingApproved, mock.Anything).Return(nil).Once()
	_, err = f.engine.ApproveListing(ctx, "L1")
	require.NoError(t, err)
}

func TestEngine_ApproveListing_AlreadyActiveIsRejected(t *testing.T) {
	f := newEngineFixture(t)

	// L2 is already active: the state machine is terminal
	_, err := f.engine.ApproveListing(context.Background(), "L2")
	require.ErrorIs(t, err, domain.ErrNotPending)
	f.listings.AssertNotCalled(t, "SetState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_UnknownIDAbortsBeforeRemoteCall(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.ApproveListing(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.engine.ApproveSeller(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	f.listings.AssertNotCalled(t, "SetState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.profiles.AssertNotCalled(t, "ApproveSeller", mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_ApproveSeller_PromotesRole(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.profiles.On("ApproveSeller", mock.Anything, "U2", f.now).Return(nil).Once()
	f.bus.On("Publish", mock.Anything, ports.TopicSellerApproved, mock.Anything).Return(nil).Once()

	updated, err := f.engine.ApproveSeller(ctx, "U2")
	require.NoError(t, err)
	require.Equal(t, domain.VerificationVerified, updated.VerificationStatus)
	require.Equal(t, domain.RoleSellerVerified, updated.UserRole)
	require.Equal(t, f.now, updated.UpdatedAt)

	// seller moderation does not create user notifications
	require.Empty(t, f.notifs.Inserted)
	f.profiles.AssertExpectations(t)
}

func TestEngine_RejectSeller_LeavesRoleAlone(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.profiles.On("RejectSeller", mock.Anything, "U2", f.now).Return(nil).Once()
	f.bus.On("Publish", mock.Anything, ports.TopicSellerRejected, mock.Anything).Return(nil).Once()

	updated, err := f.engine.RejectSeller(ctx, "U2")
	require.NoError(t, err)
	require.Equal(t, domain.VerificationRejected, updated.VerificationStatus)
	require.Empty(t, updated.UserRole)
}

func TestEngine_ApproveSeller_StoreFailureClearsBusyFlag(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.profiles.On("ApproveSeller", mock.Anything, "U2", f.now).
		Return(errors.New("write throws")).Once()

	_, err := f.engine.ApproveSeller(ctx, "U2")
	require.Error(t, err)

	p, _ := f.view.Profile("U2")
	require.Equal(t, domain.VerificationPendingReview, p.VerificationStatus)
	require.Empty(t, f.notifs.Inserted)
	require.False(t, f.engine.busy.Load())
}

func TestEngine_ApproveSeller_ConflictAppliesNoPatch(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.profiles.On("ApproveSeller", mock.Anything, "U2", f.now).Return(domain.ErrConflict).Once()

	_, err := f.engine.ApproveSeller(ctx, "U2")
	require.ErrorIs(t, err, domain.ErrConflict)

	p, _ := f.view.Profile("U2")
	require.Equal(t, domain.VerificationPendingReview, p.VerificationStatus)
}

func TestEngine_SingleFlightBusyGuard(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	inFlight := make(chan struct{})
	release := make(chan struct{})

	f.listings.On("SetState", mock.Anything, "L1", domain.ProductActive, f.now).
		Run(func(args mock.Arguments) {
			close(inFlight)
			<-release
		}).Return(nil).Once()
	f.notifs.On("Insert", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = f.engine.ApproveListing(ctx, "L1")
	}()

	<-inFlight
	// second call, against a different entity, is still serialized
	_, err := f.engine.ApproveSeller(ctx, "U2")
	require.ErrorIs(t, err, domain.ErrBusy)

	close(release)
	wg.Wait()
}
