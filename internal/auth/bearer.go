package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// BearerCompany returns the companyId claim of an inbound bearer token
// when the token parses as a JWT. The token is never verified or rejected
// here; it is always forwarded to the backend verbatim, and the claim is
// used for log enrichment only.
func BearerCompany(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	token, _, err := jwt.NewParser().ParseUnverified(parts[1], jwt.MapClaims{})
	if err != nil {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	company, _ := claims["companyId"].(string)
	return company
}
