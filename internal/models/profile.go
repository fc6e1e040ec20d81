package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientDetails holds the fields only an event organizer has.
type ClientDetails struct {
	CompanyName string `gorm:"column:company_name" json:"company_name"`
}

// StaffDetails holds the fields only a staff member has.
type StaffDetails struct {
	PreferredRoles datatypes.JSON `gorm:"column:preferred_roles;type:jsonb" json:"preferred_roles"`
}

func (s *StaffDetails) Roles() []string {
	var roles []string
	if s != nil && len(s.PreferredRoles) > 0 {
		_ = json.Unmarshal(s.PreferredRoles, &roles)
	}
	return roles
}

func (s *StaffDetails) SetRoles(roles []string) {
	if roles == nil {
		roles = []string{}
	}
	b, _ := json.Marshal(roles)
	s.PreferredRoles = datatypes.JSON(b)
}

// Profile is keyed by the owning user's id. Exactly one of Client and Staff is
// set and it always matches UserType.
type Profile struct {
	ID       string   `gorm:"type:uuid;primaryKey" json:"id"`
	UserType UserType `gorm:"type:varchar(10);not null;<-:create" json:"user_type"`
	FullName string   `gorm:"not null" json:"full_name"`
	Phone    string   `json:"phone"`
	City     string   `json:"city"`

	Client *ClientDetails `gorm:"embedded" json:"client,omitempty"`
	Staff  *StaffDetails  `gorm:"embedded" json:"staff,omitempty"`

	IsVerified      bool    `gorm:"default:false" json:"is_verified"`
	RatingAvg       float64 `gorm:"default:0;check:chk_profiles_rating_avg,rating_avg >= 0 AND rating_avg <= 5" json:"rating_avg"`
	RatingCount     int     `gorm:"default:0" json:"rating_count"`
	PaymentScore    float64 `gorm:"default:100" json:"payment_score"`
	EventsCompleted int     `gorm:"default:0" json:"events_completed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func NewClientProfile(id, fullName, phone, city, companyName string) *Profile {
	return &Profile{
		ID:       id,
		UserType: UserTypeClient,
		FullName: fullName,
		Phone:    phone,
		City:     city,
		Client:   &ClientDetails{CompanyName: companyName},
	}
}

func NewStaffProfile(id, fullName, phone, city string, preferredRoles []string) *Profile {
	staff := &StaffDetails{}
	staff.SetRoles(preferredRoles)
	return &Profile{
		ID:       id,
		UserType: UserTypeStaff,
		FullName: fullName,
		Phone:    phone,
		City:     city,
		Staff:    staff,
	}
}

func (p *Profile) IsClient() bool { return p != nil && p.UserType == UserTypeClient }
func (p *Profile) IsStaff() bool  { return p != nil && p.UserType == UserTypeStaff }

// AfterFind drops the variant that does not belong to the profile, since gorm
// allocates every embedded pointer on load.
func (p *Profile) AfterFind(_ *gorm.DB) error {
	p.normalizeVariant()
	return nil
}

func (p *Profile) normalizeVariant() {
	switch p.UserType {
	case UserTypeClient:
		p.Staff = nil
		if p.Client == nil {
			p.Client = &ClientDetails{}
		}
	case UserTypeStaff:
		p.Client = nil
		if p.Staff == nil {
			p.Staff = &StaffDetails{}
		}
	}
}
