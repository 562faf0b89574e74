package domain

// Display status labels. Derived on demand, never stored.
const (
	StatusActive       = "Active"
	StatusConfirmed    = "Confirmed"
	StatusPending      = "Pending"
	StatusVerified     = "Verified"
	StatusRejected     = "Rejected"
	StatusNotSubmitted = "Not submitted"
	StatusApproved     = "Approved"
	StatusUnknown      = "Unknown"
)

// AccountStatus derives the label for a basic identity: signed in at least
// once beats a confirmed email beats everything else.
func AccountStatus(a *Account) string {
	if a.LastSignInAt != nil {
		return StatusActive
	}
	if a.EmailConfirmed {
		return StatusConfirmed
	}
	return StatusPending
}

// ProfileStatus derives the label for a seller profile from its
// verification status.
func ProfileStatus(p *Profile) string {
	switch p.VerificationStatus {
	case VerificationPendingReview:
		return StatusPending
	case VerificationVerified:
		return StatusVerified
	case VerificationRejected:
		return StatusRejected
	default:
		return StatusNotSubmitted
	}
}

// ListingStatus derives the label for a listing from its product state.
func ListingStatus(l *Listing) string {
	switch l.ProductState {
	case ProductPending:
		return StatusPending
	case ProductActive:
		return StatusApproved
	case ProductRejected:
		return StatusRejected
	default:
		return StatusUnknown
	}
}
