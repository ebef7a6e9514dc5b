// Package pass issues signed entry passes for approved visitors.
package pass

import (
	"errors"
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"

	"visitor-pass-console/internal/jwt"
	"visitor-pass-console/internal/model"
)

var ErrNotApproved = errors.New("only approved visitors receive a pass")

// DefaultQRSize is the edge length of rendered QR images in pixels.
const DefaultQRSize = 512

type Pass struct {
	Token     string    `json:"token"`
	VisitorID string    `json:"visitorId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Issuer struct {
	signer *jwt.Signer
	ttl    time.Duration
}

func NewIssuer(signer *jwt.Signer, ttl time.Duration) *Issuer {
	return &Issuer{signer: signer, ttl: ttl}
}

// Issue signs a pass for an approved visitor.
func (i *Issuer) Issue(v model.Visitor) (Pass, error) {
	if v.Status != model.VisitorApproved {
		return Pass{}, fmt.Errorf("%w: visitor %s is %s", ErrNotApproved, v.ID, v.Status)
	}

	claim := jwt.NewPassClaim(v, i.ttl)
	token, err := i.signer.Sign(claim)
	if err != nil {
		return Pass{}, fmt.Errorf("failed to sign pass: %w", err)
	}

	p := Pass{Token: token, VisitorID: v.ID}
	if claim.ExpiresAt != nil {
		p.ExpiresAt = claim.ExpiresAt.Time
	}
	return p, nil
}

// Verify checks a pass token and returns its claims.
func (i *Issuer) Verify(token string) (*jwt.PassClaim, error) {
	return i.signer.DecodePass(token)
}

// QR renders content as a PNG QR code.
func QR(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
