package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yufj-331/ordershare/internal/user"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	token, err := iss.Issue("alice")
	require.NoError(t, err)

	got, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestIssuer_Expired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	token, err := iss.Issue("alice")
	require.NoError(t, err)

	iss.now = func() time.Time { return time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC) }

	_, err = iss.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssuer_Invalid(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	other, err := NewIssuer("other", time.Hour).Issue("alice")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"WrongSecret": other,
		"NoneAlg":     none,
		"Garbage":     "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := iss.Parse(token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestPolicy_Allows(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		role user.Role
		cap  Capability
		want bool
	}{
		{user.RoleSaler, SalesRead, true},
		{user.RoleSaler, SalesWrite, true},
		{user.RoleSaler, Report, false},
		{user.RoleSaler, Income, false},
		{user.RoleIncomer, SalesRead, true},
		{user.RoleIncomer, SalesWrite, false},
		{user.RoleIncomer, Report, true},
		{user.RoleInvoicer, Invoice, true},
		{user.RoleInvoicer, ManageUser, false},
		{user.RoleAdmin, ManageUser, true},
		{user.RoleAdmin, SalesWrite, true},
		{user.Role("ghost"), SalesRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Allows(tt.role, tt.cap))
		})
	}
}
