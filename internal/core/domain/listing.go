package domain

import "time"

// ProductState is a custom type for the listing moderation ENUM.
// pending -> {active, rejected}, both terminal.
type ProductState string

const (
	ProductPending  ProductState = "pending"
	ProductActive   ProductState = "active"
	ProductRejected ProductState = "rejected"
)

// Condition is a custom type for the listing condition ENUM
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionLikeNew     Condition = "like-new"
	ConditionGood        Condition = "good"
	ConditionFair        Condition = "fair"
	ConditionUnspecified Condition = "unspecified"
)

// Listing is a product entry awaiting or having received moderation.
type Listing struct {
	ID           string
	SellerID     string
	Name         string
	Category     string
	SubCategory  *string
	Price        float64
	Location     *string
	Condition    Condition
	Thumbnail    *string
	Images       []string
	Views        int
	ProductState ProductState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
