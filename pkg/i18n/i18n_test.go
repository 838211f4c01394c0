package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalize(t *testing.T) {
	data := map[string]interface{}{"Entity": "Order", "ID": 7}

	assert.Equal(t, "Order with ID 7 not found", Localize("en-US", "error.not_found", data, "fallback"))
	assert.Equal(t, "7 numaralı Order bulunamadı", Localize("tr", "error.not_found", data, "fallback"))
	// Unknown languages fall back to English.
	assert.Equal(t, "Order with ID 7 not found", Localize("de", "error.not_found", data, "fallback"))
	assert.Equal(t, "fallback", Localize("en", "error.missing", nil, "fallback"))
	assert.Equal(t, "fallback", Localize("en", "", nil, "fallback"))
}
