package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TicketTTL bounds how long a live-map ticket stays redeemable. Browsers
// cannot set an Authorization header on a websocket dial, so the client
// trades its bearer token for a short-lived ticket and passes that in the
// query string instead.
const TicketTTL = time.Minute

// TicketIssuer mints and verifies the signed tickets used to open a live
// map session.
type TicketIssuer struct {
	secret []byte
}

// NewTicketIssuer returns an issuer backed by the given signing secret
func NewTicketIssuer(secret string) *TicketIssuer {
	return &TicketIssuer{secret: []byte(secret)}
}

// Mint issues a ticket for the given profile ID
func (t *TicketIssuer) Mint(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TicketTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the ticket signature and expiry and returns the profile ID
// it was minted for.
func (t *TicketIssuer) Verify(ticket string) (string, error) {
	parsed, err := jwt.ParseWithClaims(ticket, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid ticket")
	}
	return claims.Subject, nil
}
