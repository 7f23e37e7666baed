package passpkg

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	hashed, err := Hash("s3cret-passw0rd")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-passw0rd", hashed)

	testCases := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "Match", password: "s3cret-passw0rd"},
		{name: "Mismatch", password: "s3cret", wantErr: bcrypt.ErrMismatchedHashAndPassword},
		{name: "Empty", password: "", wantErr: bcrypt.ErrMismatchedHashAndPassword},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, Check(tc.password, hashed), tc.wantErr)
		})
	}

	again, err := Hash("s3cret-passw0rd")
	require.NoError(t, err)
	require.NotEqual(t, hashed, again, "salt must differ between hashes")
}
