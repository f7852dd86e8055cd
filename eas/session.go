package eas

import "sync"

const (
	// PolicyKeyUnset is the policy key sent before the device has been
	// provisioned.
	PolicyKeyUnset = "0"

	// SyncKeyInitial is the cursor of a folder or folder list that has
	// never been synchronised.
	SyncKeyInitial = "0"

	// ProtocolVersion is the only protocol version this client speaks.
	ProtocolVersion = "12.0"
)

// Session is the mutable state shared by every request of one account:
// the negotiated protocol version and the current policy key.
type Session struct {
	mu              sync.RWMutex
	policyKey       string
	protocolVersion string
}

// NewSession returns an unprovisioned session.
func NewSession() *Session {
	return &Session{policyKey: PolicyKeyUnset}
}

// PolicyKey returns the key sent in X-MS-PolicyKey.
func (s *Session) PolicyKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policyKey
}

// SetPolicyKey replaces the policy key. An empty key resets the session
// to unprovisioned.
func (s *Session) SetPolicyKey(key string) {
	if key == "" {
		key = PolicyKeyUnset
	}
	s.mu.Lock()
	s.policyKey = key
	s.mu.Unlock()
}

// Provisioned reports whether a policy key other than the sentinel is set.
func (s *Session) Provisioned() bool {
	return s.PolicyKey() != PolicyKeyUnset
}

// ProtocolVersion returns the negotiated version, or "" before the
// OPTIONS probe succeeded.
func (s *Session) ProtocolVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.protocolVersion
}

func (s *Session) setProtocolVersion(v string) {
	s.mu.Lock()
	s.protocolVersion = v
	s.mu.Unlock()
}
