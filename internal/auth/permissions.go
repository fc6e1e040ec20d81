package auth

import "eventstaff_backend/internal/models"

type Permission string

const (
	PermPostEvents         Permission = "events:post"
	PermManageOwnEvents    Permission = "events:manage:self"
	PermBrowseEvents       Permission = "events:browse"
	PermApply              Permission = "applications:create"
	PermCheckInOut         Permission = "attendance:check"
	PermManageSubscription Permission = "subscription:manage:self"
	PermClientDashboard    Permission = "dashboard:client"
	PermStaffDashboard     Permission = "dashboard:staff"
	PermEditOwnProfile     Permission = "profile:write:self"
	PermViewPublicProfiles Permission = "profile:read"
)

// Permissions lists what each user type may do.
var Permissions = map[models.UserType][]Permission{
	models.UserTypeClient: {
		PermPostEvents,
		PermManageOwnEvents,
		PermManageSubscription,
		PermClientDashboard,
		PermEditOwnProfile,
		PermViewPublicProfiles,
	},
	models.UserTypeStaff: {
		PermBrowseEvents,
		PermApply,
		PermCheckInOut,
		PermStaffDashboard,
		PermEditOwnProfile,
		PermViewPublicProfiles,
	},
}

func HasPermission(userType models.UserType, permission Permission) bool {
	for _, p := range Permissions[userType] {
		if p == permission {
			return true
		}
	}
	return false
}
