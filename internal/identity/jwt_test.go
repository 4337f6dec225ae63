package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundtrip(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}

	token, expiresAt, err := j.Sign(Claims{Username: "alice"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(expiresAt) < 50*time.Minute {
		t.Fatalf("expiry too soon: %v", expiresAt)
	}

	claims, err := j.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.OwnerKey() != "alice" {
		t.Fatalf("owner key=%q want=alice", claims.OwnerKey())
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	signer := JWT{Secret: []byte("right"), TokenTTL: time.Hour}
	token, _, err := signer.Sign(Claims{Username: "alice"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	verifier := JWT{Secret: []byte("wrong"), TokenTTL: time.Hour}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("token signed with another secret should fail verification")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	token, _, err := j.Sign(Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := j.Verify(token); err == nil {
		t.Fatalf("expired token should fail verification")
	}
}

func TestOwnerKeyFallsBackToSubject(t *testing.T) {
	c := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-7"}}
	if c.OwnerKey() != "user-7" {
		t.Fatalf("owner key=%q want=user-7", c.OwnerKey())
	}
}
