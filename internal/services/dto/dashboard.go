package dto

import (
	"eventstaff_backend/internal/dashboard"
)

type ClientDashboardResponse struct {
	Stats        dashboard.ClientStats `json:"stats"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

type StaffDashboardResponse struct {
	Stats              dashboard.StaffStats  `json:"stats"`
	RecentApplications []ApplicationResponse `json:"recent_applications"`
}
