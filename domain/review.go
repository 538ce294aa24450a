package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.reviews (
//     id              UUID PRIMARY KEY,
//     user_id         BIGINT,
//     order_id        BIGINT,
//     product_id      BIGINT,
//     user_name       TEXT,
//     product_name    TEXT,
//     product_image   TEXT,
//     rating          INT,
//     shipping_rating INT,
//     comment         TEXT,
//     created_at      TIMESTAMPTZ,
//     updated_at      TIMESTAMPTZ
// );

// Review is one customer's evaluation of one product within one order.
// The (user_id, order_id, product_id) triple is unique; uniqueness is
// enforced by the eligibility check before append, not by the store.
// user_name / product_name / product_image are denormalized display
// copies taken at creation time and never re-synced.
type Review struct {
	ID             string    `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	UserID         uint      `gorm:"column:user_id" json:"user_id"`
	OrderID        uint64    `gorm:"column:order_id" json:"order_id"`
	ProductID      uint64    `gorm:"column:product_id" json:"product_id"`
	UserName       string    `gorm:"column:user_name;type:text" json:"user_name"`
	ProductName    string    `gorm:"column:product_name;type:text" json:"product_name"`
	ProductImage   string    `gorm:"column:product_image;type:text" json:"product_image"`
	Rating         int       `gorm:"column:rating" json:"rating"`
	ShippingRating int       `gorm:"column:shipping_rating" json:"shipping_rating"`
	Comment        string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// CREATE TABLE public.review_summaries (
//     product_id          BIGINT PRIMARY KEY,
//     average_rating      NUMERIC,
//     total_reviews       BIGINT,
//     rating_distribution JSONB
// );

// ReviewSummary is the materialized view for one product: average rating
// rounded to one decimal, review count and a 1..5 rating histogram.
// The row is absent until the first review exists and is always replaced
// whole, never patched.
type ReviewSummary struct {
	ProductID          uint64                            `gorm:"primaryKey;column:product_id" json:"product_id"`
	AverageRating      float64                           `gorm:"column:average_rating;type:numeric" json:"average_rating"`
	TotalReviews       int64                             `gorm:"column:total_reviews" json:"total_reviews"`
	RatingDistribution datatypes.JSONType[map[int]int64] `gorm:"column:rating_distribution;type:jsonb" json:"rating_distribution"`
}

func (ReviewSummary) TableName() string {
	return "review_summaries"
}

// Distribution returns the rating histogram, never nil.
func (s *ReviewSummary) Distribution() map[int]int64 {
	d := s.RatingDistribution.Data()
	if d == nil {
		d = map[int]int64{}
	}
	return d
}

// ReconcileReport describes one drift check: the summary as stored before
// the check, whether drift was detected, and the summary after repair.
type ReconcileReport struct {
	ProductID     uint64         `json:"product_id"`
	Drifted       bool           `json:"drifted"`
	ObservedCount int64          `json:"observed_count"`
	Before        *ReviewSummary `json:"before"`
	After         *ReviewSummary `json:"after"`
}
