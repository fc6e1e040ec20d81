package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventstaff_backend/internal/models"
)

type signUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	UserType string `json:"user_type" validate:"required,is-user-type"`
}

type postInput struct {
	Roles  []models.EventRole `json:"roles" validate:"required,min=1,dive"`
	Status string             `json:"status" validate:"omitempty,is-event-status"`
}

func TestValidateCustomRules(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		input  interface{}
		fields []string
	}{
		{
			name:  "valid staff signup",
			input: signUpInput{Email: "a@b.in", UserType: "staff"},
		},
		{
			name:   "unknown user type",
			input:  signUpInput{Email: "a@b.in", UserType: "admin"},
			fields: []string{"user_type"},
		},
		{
			name: "role with bad gender and zero count",
			input: postInput{Roles: []models.EventRole{
				{Name: "Server", Count: 0, Gender: "Other", Pay: 1200},
			}},
			fields: []string{"roles[0].count", "roles[0].gender"},
		},
		{
			name:   "empty roles",
			input:  postInput{Roles: []models.EventRole{}},
			fields: []string{"roles"},
		},
		{
			name: "bad status",
			input: postInput{
				Roles:  []models.EventRole{{Name: "Server", Count: 1, Gender: "Any"}},
				Status: "archived",
			},
			fields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Errors, f)
			}
			assert.Len(t, verr.Errors, len(tt.fields))
		})
	}
}
