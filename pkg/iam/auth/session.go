package auth

// Outcome is the result of resolving a credential pair. When Rotated is
// true Pair is brand new and must reach the client before any response
// body does.
type Outcome struct {
	Claim   Claim
	Pair    CredentialPair
	Rotated bool
}

// SessionManager turns a credential pair into an identity, rotating the
// pair when only the refresh half still verifies. It holds no state, so
// concurrent rotations for one client each yield an independently valid
// pair.
type SessionManager struct {
	codec TokenCodec
}

func NewSessionManager(codec TokenCodec) *SessionManager {
	return &SessionManager{codec: codec}
}

// Resolve verifies the access token, falling back to the refresh token.
// A missing token is handled exactly like an invalid one.
func (m *SessionManager) Resolve(pair CredentialPair) (*Outcome, error) {
	if claim, err := m.codec.VerifyAccess(pair.AccessToken); err == nil {
		return &Outcome{Claim: claim, Pair: pair}, nil
	}

	claim, err := m.codec.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		return nil, ErrUnauthenticated().WithCause(err)
	}

	// claim only holds identity fields, so Issue stamps fresh iat/exp.
	fresh, err := m.codec.Issue(claim)
	if err != nil {
		return nil, err
	}

	return &Outcome{Claim: claim, Pair: fresh, Rotated: true}, nil
}
