package leave

import (
	"fmt"
	"time"

	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ActionApprove = "approve"
	ActionDeny    = "deny"
)

// ApprovalSigner issues and verifies the tokens embedded in approval links.
// A token is bound to one request and the manager it was mailed to, so a
// leaked or guessed URL without the token cannot decide a request.
type ApprovalSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewApprovalSigner(secret string, ttl time.Duration) *ApprovalSigner {
	return &ApprovalSigner{secret: []byte(secret), ttl: ttl}
}

func (s *ApprovalSigner) Issue(requestID, managerID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"request_id": requestID,
		"manager_id": managerID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the manager id the token was issued to, or the invalid-token
// error for anything malformed, expired, or bound to a different request.
func (s *ApprovalSigner) Verify(tokenString, requestID string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", leaveerrors.ErrInvalidApprovalToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", leaveerrors.ErrInvalidApprovalToken
	}
	rid, _ := claims["request_id"].(string)
	managerID, _ := claims["manager_id"].(string)
	if rid == "" || managerID == "" || rid != requestID {
		return "", leaveerrors.ErrInvalidApprovalToken
	}
	return managerID, nil
}
