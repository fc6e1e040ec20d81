package models

type UserType string
type EventStatus string
type ApplicationStatus string
type PaymentStatus string
type SubscriptionPlan string
type SubscriptionStatus string

const (
	UserTypeClient UserType = "client"
	UserTypeStaff  UserType = "staff"

	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"

	PlanFree    SubscriptionPlan = "free"
	PlanPremium SubscriptionPlan = "premium"

	SubscriptionStatusActive SubscriptionStatus = "active"
)

func (t UserType) Valid() bool {
	return t == UserTypeClient || t == UserTypeStaff
}

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Role genders offered on the post-event form.
const (
	GenderAny    = "Any"
	GenderMale   = "Male"
	GenderFemale = "Female"
)
