package console

import (
	"ImaniConsole/internal/core/domain"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func timep(t time.Time) *time.Time { return &t }

func testIdentity(id, email string, created time.Time) domain.Identity {
	return domain.Identity{ID: id, Email: email, CreatedAt: created}
}

func testProfile(id string, status domain.VerificationStatus) domain.Profile {
	return domain.Profile{
		ID:                 id,
		IdentityType:       domain.IdentityTypeNone,
		VerificationStatus: status,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

func TestSourceAdapter_JoinsProfilesByID(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	dir := new(MockIdentityDirectory)
	profiles := new(MockProfileRepository)

	now := time.Now()
	dir.On("List", mock.Anything).Return([]domain.Identity{
		testIdentity("U1", "a@example.com", now),
		testIdentity("U2", "b@example.com", now),
	}, nil).Once()
	profiles.On("List", mock.Anything).Return([]domain.Profile{
		testProfile("U2", domain.VerificationPendingReview),
	}, nil).Once()

	adapter := NewSourceAdapter(dir, profiles, &nopLogger)
	res := adapter.FetchAccounts(ctx)

	require.Len(t, res.Accounts, 2)
	require.False(t, res.Degraded)
	require.Empty(t, res.Diagnostic)

	// type == seller iff a matching profile exists
	for _, acc := range res.Accounts {
		if acc.ID == "U2" {
			require.Equal(t, domain.AccountSeller, acc.Type)
			require.NotNil(t, acc.Profile)
		} else {
			require.Equal(t, domain.AccountUser, acc.Type)
			require.Nil(t, acc.Profile)
		}
	}
	dir.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestSourceAdapter_PermissionDenied_FallsBackToProfilesOnly(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	dir := new(MockIdentityDirectory)
	profiles := new(MockProfileRepository)

	dir.On("List", mock.Anything).Return(nil, domain.ErrPermissionDenied).Once()

	phone := "+2250700000001"
	p1 := testProfile("aaaaaaaa-1111", domain.VerificationPendingReview)
	p1.PhoneNumber = &phone
	p2 := testProfile("bbbbbbbb-2222", domain.VerificationVerified)
	profiles.On("List", mock.Anything).Return([]domain.Profile{p1, p2}, nil).Once()

	adapter := NewSourceAdapter(dir, profiles, &nopLogger)
	res := adapter.FetchAccounts(ctx)

	require.Len(t, res.Accounts, 2)
	require.True(t, res.Degraded)
	require.NotEmpty(t, res.Diagnostic)

	for _, acc := range res.Accounts {
		require.Equal(t, domain.AccountSeller, acc.Type)
		require.True(t, acc.Synthetic)
		require.NotNil(t, acc.Profile)
	}
	require.Equal(t, "+2250700000001@sellers.imani.local", res.Accounts[0].Email)
	require.Equal(t, "seller-bbbbbbbb@sellers.imani.local", res.Accounts[1].Email)
	require.Equal(t, "Seller aaaaaaaa", *res.Accounts[0].FullName)
}

func TestSourceAdapter_BothSourcesFail_ReturnsEmptyWithDiagnostic(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	dir := new(MockIdentityDirectory)
	profiles := new(MockProfileRepository)

	dir.On("List", mock.Anything).Return(nil, errors.New("boom")).Once()
	profiles.On("List", mock.Anything).Return(nil, errors.New("also boom")).Once()

	adapter := NewSourceAdapter(dir, profiles, &nopLogger)
	res := adapter.FetchAccounts(ctx)

	require.Empty(t, res.Accounts)
	require.Contains(t, res.Diagnostic, "identities")
	require.Contains(t, res.Diagnostic, "profiles")
}

func TestSourceAdapter_ProfileFetchFailure_KeepsIdentities(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	dir := new(MockIdentityDirectory)
	profiles := new(MockProfileRepository)

	dir.On("List", mock.Anything).Return([]domain.Identity{
		testIdentity("U1", "a@example.com", time.Now()),
	}, nil).Once()
	profiles.On("List", mock.Anything).Return(nil, errors.New("profiles down")).Once()

	adapter := NewSourceAdapter(dir, profiles, &nopLogger)
	res := adapter.FetchAccounts(ctx)

	require.Len(t, res.Accounts, 1)
	require.Equal(t, domain.AccountUser, res.Accounts[0].Type)
	require.False(t, res.Degraded)
	require.Contains(t, res.Diagnostic, "profiles")
}
