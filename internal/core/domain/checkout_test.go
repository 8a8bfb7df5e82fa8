package domain_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheckoutStatusIsTerminal(t *testing.T) {

	t.Run("Terminal", func(t *testing.T) {
		assert.True(t, domain.CheckoutStatusCompleted.IsTerminal())
		assert.True(t, domain.CheckoutStatusFailed.IsTerminal())
	})

	t.Run("NonTerminal", func(t *testing.T) {
		assert.False(t, domain.CheckoutStatusIdle.IsTerminal())
		assert.False(t, domain.CheckoutStatusSubmitting.IsTerminal())
	})
}
