package domain

import "time"

// VerificationStatus is a custom type for the profile review ENUM
type VerificationStatus string

const (
	VerificationNotSubmitted  VerificationStatus = "not_submitted"
	VerificationPendingReview VerificationStatus = "pending_review"
	VerificationVerified      VerificationStatus = "verified"
	VerificationRejected      VerificationStatus = "rejected"
)

// IdentityType is a custom type for the identity document ENUM
type IdentityType string

const (
	IdentityTypeVoterCard      IdentityType = "voter_card"
	IdentityTypePassport       IdentityType = "passport"
	IdentityTypeDrivingLicense IdentityType = "driving_license"
	IdentityTypeNone           IdentityType = "none"
)

// RoleSellerVerified is the store-side role flag promoted on seller approval.
const RoleSellerVerified = "seller_verified"

// Profile is the supplementary seller-candidate record, keyed 1:1 to an
// Identity. Presence of a Profile marks the account as a seller candidate.
type Profile struct {
	ID                  string // == Identity.ID
	PhoneNumber         *string
	City                *string
	Address             *string
	BirthDate           *time.Time
	IdentityType        IdentityType
	IdentityNumber      *string
	VerificationStatus  VerificationStatus
	UserRole            string
	ProfilePictureURL   *string
	IdentityDocumentURL *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
