package auth

// Authentication scheme labels carried by resolved principals.
const (
	SchemeLykkeSession  = "lykke-session"
	SchemeIntrospection = "introspection"
)

// Principal represents the authenticated identity for one request.
// It is built by whichever resolution path succeeded and lives only
// for the duration of that request; nothing persists it.
type Principal struct {
	// ClientID is the exchange client identifier. Always set on a
	// successfully resolved principal.
	ClientID string `json:"client_id"`

	// PartnerID is the white-label partner the client belongs to,
	// when the session service reports one.
	PartnerID string `json:"partner_id,omitempty"`

	// Subject is the OAuth subject claim for introspected tokens.
	Subject string `json:"subject,omitempty"`

	// Scopes granted to the token, for introspected tokens.
	Scopes []string `json:"scopes,omitempty"`

	// Scheme records which path authenticated the request.
	Scheme string `json:"scheme"`
}
