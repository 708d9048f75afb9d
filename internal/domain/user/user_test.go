package user

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconstruct(t *testing.T, validUntil *time.Time) *User {
	t.Helper()
	now := time.Now()
	u, err := ReconstructUser(1, "usr_test", "Alice", "alice@example.com", "", validUntil, now, now)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Alice ", "alice@example.com", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.SID(), "usr_"))
	assert.Equal(t, "Alice", u.Name())
	assert.Nil(t, u.ValidUntil())

	_, err = NewUser("Bob", " ", "")
	assert.Error(t, err)
}

func TestExtendValidity(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	tests := []struct {
		name       string
		validUntil *time.Time
		days       int
		want       time.Time
	}{
		{"never subscribed starts from now", nil, 30, now.Add(30 * day)},
		{"expired starts from now", &yesterday, 30, now.Add(30 * day)},
		{"active extends existing expiry", &nextWeek, 30, nextWeek.Add(30 * day)},
		{"expiry equal to now starts from now", &now, 1, now.Add(day)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := reconstruct(t, tc.validUntil)

			got, err := u.ExtendValidity(tc.days, now)

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			require.NotNil(t, u.ValidUntil())
			assert.Equal(t, tc.want, *u.ValidUntil())
		})
	}
}

func TestExtendValidity_NeverShortens(t *testing.T) {
	now := time.Now().UTC()
	farFuture := now.Add(400 * day)
	u := reconstruct(t, &farFuture)

	got, err := u.ExtendValidity(1, now)

	require.NoError(t, err)
	assert.True(t, got.After(farFuture))
}

func TestExtendValidity_RejectsNonPositiveDays(t *testing.T) {
	u := reconstruct(t, nil)

	_, err := u.ExtendValidity(0, time.Now())
	assert.Error(t, err)
	assert.Nil(t, u.ValidUntil())
}

func TestIsSubscriptionActive(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, reconstruct(t, nil).IsSubscriptionActive(now))
	assert.False(t, reconstruct(t, &past).IsSubscriptionActive(now))
	assert.True(t, reconstruct(t, &future).IsSubscriptionActive(now))
}
