package httpapi

import (
	"ImaniConsole/internal/auth"
	"ImaniConsole/internal/console"
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers wires the console core to the operator HTTP surface.
type Handlers struct {
	log      zerolog.Logger
	gate     *auth.Gate
	source   *console.SourceAdapter
	listings ports.ListingRepository
	view     *console.View
	engine   *console.Engine
}

// NewHandlers creates the handler set.
func NewHandlers(
	gate *auth.Gate,
	source *console.SourceAdapter,
	listings ports.ListingRepository,
	view *console.View,
	engine *console.Engine,
	baseLogger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		log:      baseLogger.With().Str("component", "httpapi").Logger(),
		gate:     gate,
		source:   source,
		listings: listings,
		view:     view,
		engine:   engine,
	}
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the operator credential and returns a session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, ok := h.gate.Login(req.Email, req.Password)
	if !ok {
		respondError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	respondJSON(w, map[string]string{"token": token}, http.StatusOK)
}

// Logout acknowledges the logout; tokens are stateless and simply expire.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "logged out"}, http.StatusOK)
}

// --- Fetch / refresh ---

// Refresh refetches both collections from the store and replaces the view
// state. Fetch failures degrade the view instead of failing the request.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	h.refresh(r)
	diag, degraded := h.view.Diagnostic()
	respondJSON(w, map[string]any{
		"degraded":   degraded,
		"diagnostic": diag,
	}, http.StatusOK)
}

func (h *Handlers) refresh(r *http.Request) {
	ctx := r.Context()

	res := h.source.FetchAccounts(ctx)

	listings, err := h.listings.List(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch listings, keeping empty set")
		if res.Diagnostic != "" {
			res.Diagnostic += "; "
		}
		res.Diagnostic += "listings: " + err.Error()
		listings = nil
	}

	h.view.Replace(console.Snapshot{
		Accounts:   res.Accounts,
		Listings:   listings,
		Degraded:   res.Degraded,
		Diagnostic: res.Diagnostic,
	})
}

// --- Read endpoints ---

type accountRow struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	FullName       *string         `json:"fullName,omitempty"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	EmailConfirmed bool            `json:"emailConfirmed"`
	Synthetic      bool            `json:"synthetic,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastSignInAt   *time.Time      `json:"lastSignInAt,omitempty"`
	Profile        *profileDetails `json:"profile,omitempty"`
}

type profileDetails struct {
	PhoneNumber        *string    `json:"phoneNumber,omitempty"`
	City               *string    `json:"city,omitempty"`
	Address            *string    `json:"address,omitempty"`
	BirthDate          *time.Time `json:"birthDate,omitempty"`
	IdentityType       string     `json:"identityType"`
	IdentityNumber     *string    `json:"identityNumber,omitempty"`
	VerificationStatus string     `json:"verificationStatus"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func toAccountRow(a domain.Account) accountRow {
	row := accountRow{
		ID:             a.ID,
		Email:          a.Email,
		FullName:       a.FullName,
		Type:           string(a.Type),
		Status:         a.DerivedStatus(),
		EmailConfirmed: a.EmailConfirmed,
		Synthetic:      a.Synthetic,
		CreatedAt:      a.CreatedAt,
		LastSignInAt:   a.LastSignInAt,
	}
	if p := a.Profile; p != nil {
		row.Profile = &profileDetails{
			PhoneNumber:        p.PhoneNumber,
			City:               p.City,
			Address:            p.Address,
			BirthDate:          p.BirthDate,
			IdentityType:       string(p.IdentityType),
			IdentityNumber:     p.IdentityNumber,
			VerificationStatus: string(p.VerificationStatus),
			UpdatedAt:          p.UpdatedAt,
		}
	}
	return row
}

type listingRow struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"sellerId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Location  *string   `json:"location,omitempty"`
	Condition string    `json:"condition"`
	Thumbnail *string   `json:"thumbnail,omitempty"`
	Views     int       `json:"views"`
	State     string    `json:"state"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toListingRow(l domain.Listing) listingRow {
	return listingRow{
		ID:        l.ID,
		SellerID:  l.SellerID,
		Name:      l.Name,
		Category:  l.Category,
		Price:     l.Price,
		Location:  l.Location,
		Condition: string(l.Condition),
		Thumbnail: l.Thumbnail,
		Views:     l.Views,
		State:     string(l.ProductState),
		Status:    domain.ListingStatus(&l),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// Accounts returns filtered account rows plus the unfiltered tab counts.
func (h *Handlers) Accounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	tab := r.URL.Query().Get("tab")

	accounts := h.view.Accounts(q, tab)
	rows := make([]accountRow, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, toAccountRow(a))
	}

	respondJSON(w, map[string]any{
		"rows":   rows,
		"counts": h.view.AccountCounts(),
	}, http.StatusOK)
}

// Listings returns filtered listing rows plus the unfiltered tab counts.
func (h *Handlers) Listings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	tab := r.URL.Query().Get("tab")

	listings := h.view.Listings(q, tab)
	rows := make([]listingRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, toListingRow(l))
	}

	respondJSON(w, map[string]any{
		"rows":   rows,
		"counts": h.view.ListingCounts(),
	}, http.StatusOK)
}

// Dashboard returns the headline stats and the ten newest accounts.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts := h.view.AccountCounts()
	recent := h.view.Recent(10)

	rows := make([]accountRow, 0, len(recent))
	for _, a := range recent {
		rows = append(rows, toAccountRow(a))
	}

	respondJSON(w, map[string]any{
		"totalUsers": counts.Total,
		"sellers":    counts.Sellers,
		"recent":     rows,
	}, http.StatusOK)
}

// --- Moderation endpoints ---

// ApproveListing handles POST /api/listings/{id}/approve.
func (h *Handlers) ApproveListing(w http.ResponseWriter, r *http.Request) {
	h.moderateListing(w, r, h.engine.ApproveListing)
}

// RejectListing handles POST /api/listings/{id}/reject.
func (h *Handlers) RejectListing(w http.ResponseWriter, r *http.Request) {
	h.moderateListing(w, r, h.engine.RejectListing)
}

func (h *Handlers) moderateListing(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id string) (*domain.Listing, error),
) {
	id := chi.URLParam(r, "id")
	listing, err := op(r.Context(), id)
	if err != nil {
		respondModerationError(w, err)
		return
	}
	respondJSON(w, toListingRow(*listing), http.StatusOK)
}

// ApproveSeller handles POST /api/sellers/{id}/approve.
func (h *Handlers) ApproveSeller(w http.ResponseWriter, r *http.Request) {
	h.moderateSeller(w, r, h.engine.ApproveSeller)
}

// RejectSeller handles POST /api/sellers/{id}/reject.
func (h *Handlers) RejectSeller(w http.ResponseWriter, r *http.Request) {
	h.moderateSeller(w, r, h.engine.RejectSeller)
}

func (h *Handlers) moderateSeller(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id string) (*domain.Profile, error),
) {
	id := chi.URLParam(r, "id")
	profile, err := op(r.Context(), id)
	if err != nil {
		respondModerationError(w, err)
		return
	}
	respondJSON(w, map[string]any{
		"id":                 profile.ID,
		"verificationStatus": string(profile.VerificationStatus),
		"userRole":           profile.UserRole,
		"updatedAt":          profile.UpdatedAt,
	}, http.StatusOK)
}

func respondModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrBusy),
		errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrConflict):
		respondError(w, err.Error(), http.StatusConflict)
	default:
		respondError(w, "remote store update failed: "+err.Error(), http.StatusBadGateway)
	}
}
