package auth

import "net/http"

// SessionCookieName is the cookie that transports the session token.
const SessionCookieName = "token"

// SessionCookie wraps a session token for transport to the client. The cookie
// carries no Max-Age: the token's own exp claim bounds the session, and the
// browser drops the cookie when the session ends.
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie produces the cookie that removes the client-held token
// (Max-Age=0 on the wire). The token string itself stays cryptographically
// valid until its natural expiry; logout only discards the client copy.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}

// ClaimsFromRequest extracts and verifies the session carried by the request
// cookie. When the same cookie name appears more than once the first
// occurrence wins (net/http behavior). Every failure — absent cookie, bad
// signature, expiry, malformed token — folds to (nil, false); this function
// never reports an error past its boundary.
func ClaimsFromRequest(r *http.Request, secretKey []byte) (*Claims, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	claims, err := ParseToken(cookie.Value, secretKey)
	if err != nil {
		return nil, false
	}

	return claims, true
}
