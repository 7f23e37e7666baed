package tokenpkg

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

func TestNewMaker(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		kind    string
		key     string
		wantErr bool
	}{
		{name: "DefaultIsPaseto", kind: "", key: strings.Repeat("x", 32)},
		{name: "Paseto", kind: KindPaseto, key: strings.Repeat("x", 32)},
		{name: "JWT", kind: KindJWT, key: strings.Repeat("x", 40)},
		{name: "PasetoKeyMustBeExact", kind: KindPaseto, key: strings.Repeat("x", 40), wantErr: true},
		{name: "JWTShortKey", kind: KindJWT, key: strings.Repeat("x", 30), wantErr: true},
		{name: "UnknownKind", kind: "macaroon", key: strings.Repeat("x", 32), wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			maker, err := NewMaker(tc.kind, tc.key)
			if tc.wantErr {
				if err == nil {
					t.Errorf("NewMaker(%q, key) = %T, want error", tc.kind, maker)
				}

				return
			}

			if err != nil {
				t.Fatalf("NewMaker(%q, key) returned error: %v", tc.kind, err)
			}
		})
	}
}

func TestMakers(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{KindPaseto, KindJWT} {
		kind := kind

		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			maker, err := NewMaker(kind, randompkg.String(32))
			if err != nil {
				t.Fatalf("NewMaker(%v) returned error: %v", kind, err)
			}

			username := randompkg.Owner()
			role := "admin"
			duration := time.Minute

			token, payload, err := maker.CreateToken(username, role, duration)
			if err != nil {
				t.Fatalf("maker.CreateToken(%v, %v, %v) returned error: %v", username, role, duration, err)
			}

			got, err := maker.VerifyToken(token)
			if err != nil {
				t.Fatalf("maker.VerifyToken(%v) returned error: %v", token, err)
			}

			want := &Payload{
				ID:        payload.ID,
				Username:  username,
				Role:      role,
				IssuedAt:  time.Now(),
				ExpiredAt: time.Now().Add(duration),
			}

			if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("maker.VerifyToken(token) mismatch (-want +got):\n%s", diff)
			}

			expired, _, err := maker.CreateToken(username, role, -time.Minute)
			if err != nil {
				t.Fatalf("maker.CreateToken(%v, %v, -1m) returned error: %v", username, role, err)
			}

			if _, err := maker.VerifyToken(expired); err != ErrExpiredToken {
				t.Errorf("maker.VerifyToken(expired) returned %v, want %v", err, ErrExpiredToken)
			}

			other, err := NewMaker(kind, randompkg.String(32))
			if err != nil {
				t.Fatalf("NewMaker(%v) returned error: %v", kind, err)
			}

			if _, err := other.VerifyToken(token); err != ErrInvalidToken {
				t.Errorf("other.VerifyToken(token) returned %v, want %v", err, ErrInvalidToken)
			}
		})
	}
}

func TestJWTRejectsAlgNone(t *testing.T) {
	t.Parallel()

	payload, err := NewPayload(randompkg.Owner(), "client", time.Minute)
	if err != nil {
		t.Fatalf("NewPayload returned error: %v", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, payload).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString returned error: %v", err)
	}

	maker, err := NewJWTMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewJWTMaker returned error: %v", err)
	}

	if _, err := maker.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("maker.VerifyToken(alg none) returned %v, want %v", err, ErrInvalidToken)
	}
}
