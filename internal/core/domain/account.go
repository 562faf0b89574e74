package domain

import "time"

// AccountType distinguishes plain users from seller candidates.
type AccountType string

const (
	AccountUser   AccountType = "user"
	AccountSeller AccountType = "seller"
)

// Account is the derived admin view of one person: the Identity joined
// with its optional Profile. It is never persisted.
type Account struct {
	ID             string
	Email          string
	FullName       *string
	EmailConfirmed bool
	CreatedAt      time.Time
	LastSignInAt   *time.Time

	Profile *Profile // nil for basic users
	Type    AccountType

	// Synthetic marks fallback-mode accounts built from a Profile alone,
	// when the identity directory was inaccessible.
	Synthetic bool
}

// DerivedStatus reports the display status for the account. Seller status
// takes precedence whenever a Profile exists: moderation relevance
// dominates generic identity status.
func (a *Account) DerivedStatus() string {
	if a.Profile != nil {
		return ProfileStatus(a.Profile)
	}
	return AccountStatus(a)
}
