package attendance

import "strings"

// CheckInURL builds the scannable check-in payload for a token:
// "<portalBase>/checkin?t=<token>". The token's character set is URL-safe by
// construction (see MakeToken) so no escaping is applied.
func CheckInURL(portalBase, token string) string {
	return strings.TrimRight(portalBase, "/") + "/checkin?t=" + token
}
