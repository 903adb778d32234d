package leadgate_test

import (
	"fmt"
	"testing"

	"github.com/phbpx/leadgate"
	"github.com/stretchr/testify/assert"
)

func TestLead_Status(t *testing.T) {
	assert.Equal(t, "pending", leadgate.Lead{}.Status())
	assert.Equal(t, "approved", leadgate.Lead{Approved: true}.Status())
}

func TestIsValidationError(t *testing.T) {
	verr := leadgate.ValidationError{Field: "email", Message: "is required"}

	assert.Equal(t, "email: is required", verr.Error())
	assert.True(t, leadgate.IsValidationError(verr))
	assert.True(t, leadgate.IsValidationError(fmt.Errorf("create: %w", verr)))
	assert.False(t, leadgate.IsValidationError(leadgate.ErrLeadNotFound))
}
