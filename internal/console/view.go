package console

import (
	"ImaniConsole/internal/core/domain"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Snapshot is a full refetch result handed to the view.
type Snapshot struct {
	Accounts   []domain.Account
	Listings   []domain.Listing
	Degraded   bool
	Diagnostic string
}

// AccountCounts are the tab badges for the accounts page, always computed
// against the unfiltered collection.
type AccountCounts struct {
	Total   int `json:"total"`
	Users   int `json:"users"`
	Sellers int `json:"sellers"`
}

// ListingCounts are the tab badges for the listings page.
type ListingCounts struct {
	All      int `json:"all"`
	Pending  int `json:"pending"`
	Active   int `json:"active"`
	Rejected int `json:"rejected"`
}

// View owns the in-memory account and listing collections and is the only
// place they are mutated: by Replace on a refetch and by the moderation
// engine's patch calls. Id lookups go through indexes built once per
// Replace, not per row.
type View struct {
	log zerolog.Logger

	mu         sync.RWMutex
	accounts   []domain.Account
	listings   []domain.Listing
	accountIdx map[string]int
	listingIdx map[string]int
	degraded   bool
	diagnostic string
}

// NewView creates an empty reconciliation view.
func NewView(baseLogger *zerolog.Logger) *View {
	return &View{
		log:        baseLogger.With().Str("component", "view").Logger(),
		accountIdx: make(map[string]int),
		listingIdx: make(map[string]int),
	}
}

// Replace swaps in a fresh snapshot and rebuilds the id indexes.
// Accounts are ordered newest first; listings keep the fetched order,
// which the store already returns newest first.
func (v *View) Replace(snap Snapshot) {
	accounts := make([]domain.Account, len(snap.Accounts))
	copy(accounts, snap.Accounts)
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})

	listings := make([]domain.Listing, len(snap.Listings))
	copy(listings, snap.Listings)

	accountIdx := make(map[string]int, len(accounts))
	for i := range accounts {
		accountIdx[accounts[i].ID] = i
	}
	listingIdx := make(map[string]int, len(listings))
	for i := range listings {
		listingIdx[listings[i].ID] = i
	}

	v.mu.Lock()
	v.accounts = accounts
	v.listings = listings
	v.accountIdx = accountIdx
	v.listingIdx = listingIdx
	v.degraded = snap.Degraded
	v.diagnostic = snap.Diagnostic
	v.mu.Unlock()

	v.log.Info().
		Int("accounts", len(accounts)).
		Int("listings", len(listings)).
		Bool("degraded", snap.Degraded).
		Msg("View state replaced")
}

// Diagnostic reports the last fetch diagnostic and whether the view is in
// degraded (profiles-only) mode.
func (v *View) Diagnostic() (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.diagnostic, v.degraded
}

// Accounts returns the accounts matching the free-text query and tab,
// ordered newest first. Filtering never touches the stored collection.
func (v *View) Accounts(query, tab string) []domain.Account {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]domain.Account, 0, len(v.accounts))
	for i := range v.accounts {
		a := &v.accounts[i]
		if accountMatchesTab(a, tab) && accountMatchesQuery(a, query) {
			out = append(out, *a)
		}
	}
	return out
}

// Listings returns the listings matching the free-text query and tab.
func (v *View) Listings(query, tab string) []domain.Listing {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]domain.Listing, 0, len(v.listings))
	for i := range v.listings {
		l := &v.listings[i]
		if listingMatchesTab(l, tab) && listingMatchesQuery(l, query) {
			out = append(out, *l)
		}
	}
	return out
}

// AccountCounts computes the tab badges from the whole collection;
// search and tab selection never perturb them.
func (v *View) AccountCounts() AccountCounts {
	v.mu.RLock()
	defer v.mu.RUnlock()

	c := AccountCounts{Total: len(v.accounts)}
	for i := range v.accounts {
		if v.accounts[i].Type == domain.AccountSeller {
			c.Sellers++
		} else {
			c.Users++
		}
	}
	return c
}

// ListingCounts computes the listing tab badges from the whole collection.
func (v *View) ListingCounts() ListingCounts {
	v.mu.RLock()
	defer v.mu.RUnlock()

	c := ListingCounts{All: len(v.listings)}
	for i := range v.listings {
		switch v.listings[i].ProductState {
		case domain.ProductPending:
			c.Pending++
		case domain.ProductActive:
			c.Active++
		case domain.ProductRejected:
			c.Rejected++
		}
	}
	return c
}

// Recent returns the n newest accounts for the dashboard.
func (v *View) Recent(n int) []domain.Account {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if n > len(v.accounts) {
		n = len(v.accounts)
	}
	out := make([]domain.Account, n)
	copy(out, v.accounts[:n])
	return out
}

// Listing looks up a listing by id.
func (v *View) Listing(id string) (domain.Listing, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	i, ok := v.listingIdx[id]
	if !ok {
		return domain.Listing{}, false
	}
	return v.listings[i], true
}

// Profile looks up a seller profile by id.
func (v *View) Profile(id string) (domain.Profile, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	i, ok := v.accountIdx[id]
	if !ok || v.accounts[i].Profile == nil {
		return domain.Profile{}, false
	}
	return *v.accounts[i].Profile, true
}

// PatchListing applies a pure transform to the stored listing. Reports
// whether the listing was found.
func (v *View) PatchListing(id string, fn func(domain.Listing) domain.Listing) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	i, ok := v.listingIdx[id]
	if !ok {
		return false
	}
	v.listings[i] = fn(v.listings[i])
	return true
}

// PatchProfile applies a pure transform to the stored seller profile.
func (v *View) PatchProfile(id string, fn func(domain.Profile) domain.Profile) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	i, ok := v.accountIdx[id]
	if !ok || v.accounts[i].Profile == nil {
		return false
	}
	p := fn(*v.accounts[i].Profile)
	v.accounts[i].Profile = &p
	return true
}

// --- Filtering predicates ---

func accountMatchesTab(a *domain.Account, tab string) bool {
	switch tab {
	case "", "all":
		return true
	case "users":
		return a.Type == domain.AccountUser
	case "sellers":
		return a.Type == domain.AccountSeller
	default:
		return strings.EqualFold(a.DerivedStatus(), tab)
	}
}

func accountMatchesQuery(a *domain.Account, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if containsFold(a.Email, q) || containsPtrFold(a.FullName, q) {
		return true
	}
	if p := a.Profile; p != nil {
		return containsPtrFold(p.PhoneNumber, q) ||
			containsPtrFold(p.City, q) ||
			containsPtrFold(p.Address, q)
	}
	return false
}

func listingMatchesTab(l *domain.Listing, tab string) bool {
	switch tab {
	case "", "all":
		return true
	default:
		return string(l.ProductState) == tab
	}
}

func listingMatchesQuery(l *domain.Listing, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return containsFold(l.Name, q) ||
		containsFold(l.Category, q) ||
		containsPtrFold(l.Location, q) ||
		containsFold(l.SellerID, q)
}

func containsFold(s, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(s), loweredQuery)
}

func containsPtrFold(s *string, loweredQuery string) bool {
	return s != nil && containsFold(*s, loweredQuery)
}
