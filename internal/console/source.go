package console

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// FetchResult is what a fetch produced. Accounts may be empty either
// because there are no users or because both sources failed; Diagnostic
// is the only way to tell those apart.
type FetchResult struct {
	Accounts []domain.Account

	// Degraded is set in profiles-only mode: the identity directory was
	// inaccessible and every account is synthesized from a profile.
	Degraded   bool
	Diagnostic string
}

// SourceAdapter merges the two account sources into unified Account
// records. The identity directory is primary; when it is inaccessible the
// adapter degrades to profiles-only mode instead of failing.
type SourceAdapter struct {
	log        zerolog.Logger
	identities ports.IdentityDirectory
	profiles   ports.ProfileRepository
}

// NewSourceAdapter creates the account source adapter.
func NewSourceAdapter(
	identities ports.IdentityDirectory,
	profiles ports.ProfileRepository,
	baseLogger *zerolog.Logger,
) *SourceAdapter {
	return &SourceAdapter{
		log:        baseLogger.With().Str("component", "source_adapter").Logger(),
		identities: identities,
		profiles:   profiles,
	}
}

// FetchAccounts never returns an error: a failed source degrades the
// result and leaves a diagnostic instead.
func (s *SourceAdapter) FetchAccounts(ctx context.Context) FetchResult {
	identities, idErr := s.identities.List(ctx)
	if idErr != nil {
		if errors.Is(idErr, domain.ErrPermissionDenied) {
			s.log.Warn().Msg("Identity listing not permitted, continuing without identities")
		} else {
			s.log.Error().Err(idErr).Msg("Failed to list identities")
		}
		identities = nil
	}

	profiles, profErr := s.profiles.List(ctx)
	if profErr != nil {
		s.log.Error().Err(profErr).Msg("Failed to list profiles")
		profiles = nil
	}

	switch {
	case idErr == nil:
		return FetchResult{
			Accounts:   mergeAccounts(identities, profiles),
			Diagnostic: diagnosticFor(nil, profErr),
		}
	case profErr == nil:
		// Profiles-only mode: a deliberate best-effort fallback.
		s.log.Warn().Int("profiles", len(profiles)).Msg("Degraded to profiles-only accounts")
		return FetchResult{
			Accounts:   syntheticAccounts(profiles),
			Degraded:   true,
			Diagnostic: diagnosticFor(idErr, nil),
		}
	default:
		return FetchResult{Diagnostic: diagnosticFor(idErr, profErr)}
	}
}

// mergeAccounts joins each identity with its profile by shared id.
func mergeAccounts(identities []domain.Identity, profiles []domain.Profile) []domain.Account {
	byID := make(map[string]*domain.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}

	accounts := make([]domain.Account, 0, len(identities))
	for _, id := range identities {
		acc := domain.Account{
			ID:             id.ID,
			Email:          id.Email,
			FullName:       id.FullName,
			EmailConfirmed: id.EmailConfirmed,
			CreatedAt:      id.CreatedAt,
			LastSignInAt:   id.LastSignInAt,
			Type:           domain.AccountUser,
		}
		if p, ok := byID[id.ID]; ok {
			acc.Profile = p
			acc.Type = domain.AccountSeller
		}
		accounts = append(accounts, acc)
	}
	return accounts
}

// syntheticAccounts builds one seller account per profile when the
// identity directory is unavailable. Emails and names are placeholders
// derived from what the profile carries.
func syntheticAccounts(profiles []domain.Profile) []domain.Account {
	accounts := make([]domain.Account, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		name := "Seller " + shortID(p.ID)
		accounts = append(accounts, domain.Account{
			ID:        p.ID,
			Email:     syntheticEmail(p),
			FullName:  &name,
			CreatedAt: p.CreatedAt,
			Profile:   p,
			Type:      domain.AccountSeller,
			Synthetic: true,
		})
	}
	return accounts
}

func syntheticEmail(p *domain.Profile) string {
	if p.PhoneNumber != nil && *p.PhoneNumber != "" {
		return fmt.Sprintf("%s@sellers.imani.local", *p.PhoneNumber)
	}
	return fmt.Sprintf("seller-%s@sellers.imani.local", shortID(p.ID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func diagnosticFor(idErr, profErr error) string {
	switch {
	case idErr != nil && profErr != nil:
		return fmt.Sprintf("identities: %v; profiles: %v", idErr, profErr)
	case idErr != nil:
		return fmt.Sprintf("identities: %v", idErr)
	case profErr != nil:
		return fmt.Sprintf("profiles: %v", profErr)
	default:
		return ""
	}
}
