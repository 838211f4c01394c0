package dto

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "09/03/2024", "2024-13-01"} {
		_, err := ParseDate(bad)
		assert.True(t, apperror.Is(err, apperror.KindValidation), bad)
	}
}
