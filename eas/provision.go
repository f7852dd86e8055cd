package eas

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// PolicyTypeWBXML is the only policy type requested by this client.
const PolicyTypeWBXML = "MS-EAS-Provisioning-WBXML"

// Provisioner owns the policy key. Every command that needs a key runs
// through RunProvisioned.
type Provisioner struct {
	transport Transport
	session   *Session
	store     PolicyStore
	logger    *slog.Logger

	// mu serialises key checks and handshakes.
	mu sync.Mutex
}

// NewProvisioner creates a provisioner for the given session.
func NewProvisioner(transport Transport, session *Session, store PolicyStore, logger *slog.Logger) *Provisioner {
	return &Provisioner{
		transport: transport,
		session:   session,
		store:     store,
		logger:    logger,
	}
}

// RunProvisioned ensures a policy key is present, runs op, and recovers
// once from a needs-provisioning answer by handshaking again and
// rerunning op. A second needs-provisioning answer is returned to the
// caller.
func RunProvisioned[T any](ctx context.Context, p *Provisioner, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := p.EnsureProvisioned(ctx); err != nil {
		return zero, err
	}

	used := p.session.PolicyKey()
	result, err := op(ctx)
	if err == nil || !IsNeedsProvisioning(err) {
		return result, err
	}

	p.logger.Info("server requested provisioning, renewing policy key")
	if err := p.reprovision(ctx, used); err != nil {
		return zero, err
	}
	return op(ctx)
}

// EnsureProvisioned adopts the persisted key or performs the handshake
// when the session has no key yet.
func (p *Provisioner) EnsureProvisioned(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session.Provisioned() {
		return nil
	}

	stored, err := p.store.PolicyKey()
	if err != nil {
		return fmt.Errorf("loading policy key: %w", err)
	}
	if stored != "" && stored != PolicyKeyUnset {
		p.session.SetPolicyKey(stored)
		return nil
	}
	return p.handshake(ctx)
}

// reprovision drops the rejected key and handshakes, unless another
// caller already replaced the key that was rejected.
func (p *Provisioner) reprovision(ctx context.Context, rejected string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if current := p.session.PolicyKey(); current != rejected && current != PolicyKeyUnset {
		return nil
	}

	p.session.SetPolicyKey(PolicyKeyUnset)
	if err := p.store.SetPolicyKey(""); err != nil {
		return fmt.Errorf("clearing policy key: %w", err)
	}
	return p.handshake(ctx)
}

// handshake runs the two-step provisioning exchange. Callers hold p.mu.
func (p *Provisioner) handshake(ctx context.Context) error {
	resp, err := p.transport.Provision(ctx, &Provision{
		Policies: &ProvisionPolicies{
			Policy: &ProvisionPolicy{PolicyType: PolicyTypeWBXML},
		},
	})
	if err != nil {
		return &ProvisionError{Step: "request", Err: err}
	}
	policy, err := checkProvisionResponse(resp)
	if err != nil {
		return &ProvisionError{Step: "request", Err: err}
	}
	p.logPolicy(resp, policy)

	resp, err = p.transport.Provision(ctx, &Provision{
		Policies: &ProvisionPolicies{
			Policy: &ProvisionPolicy{
				PolicyType: PolicyTypeWBXML,
				PolicyKey:  policy.PolicyKey,
				Status:     StatusSuccess,
			},
		},
	})
	if err != nil {
		return &ProvisionError{Step: "acknowledge", Err: err}
	}
	policy, err = checkProvisionResponse(resp)
	if err != nil {
		return &ProvisionError{Step: "acknowledge", Err: err}
	}

	if err := p.store.SetPolicyKey(policy.PolicyKey); err != nil {
		return fmt.Errorf("saving policy key: %w", err)
	}
	p.session.SetPolicyKey(policy.PolicyKey)
	p.logger.Info("device provisioned")
	return nil
}

func checkProvisionResponse(resp *Provision) (*ProvisionPolicy, error) {
	if resp.Status != StatusSuccess {
		return nil, &ProtocolStatusError{Command: "Provision", Status: resp.Status}
	}
	if resp.Policies == nil || resp.Policies.Policy == nil {
		return nil, fmt.Errorf("%w: policy", ErrMissingItem)
	}
	policy := resp.Policies.Policy
	if policy.Status != StatusSuccess {
		return nil, &ProtocolStatusError{Command: "Provision policy", Status: policy.Status}
	}
	if policy.PolicyKey == "" {
		return nil, fmt.Errorf("%w: policy key", ErrMissingItem)
	}
	return policy, nil
}

func (p *Provisioner) logPolicy(resp *Provision, policy *ProvisionPolicy) {
	if resp.RemoteWipe {
		p.logger.Warn("server requested a remote wipe; ignoring")
	}
	if policy.Data == nil || policy.Data.Document == nil {
		return
	}
	doc := policy.Data.Document
	attrs := []any{slog.String("policy_type", policy.PolicyType)}
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"device_password_enabled", doc.DevicePasswordEnabled},
		{"min_password_length", doc.MinDevicePasswordLength},
		{"max_inactivity_lock", doc.MaxInactivityTimeDeviceLock},
		{"require_encryption", doc.RequireDeviceEncryption},
		{"attachments_enabled", doc.AttachmentsEnabled},
		{"max_attachment_size", doc.MaxAttachmentSize},
	} {
		if f.v != nil {
			attrs = append(attrs, slog.Int(f.name, *f.v))
		}
	}
	p.logger.Debug("server policy received", attrs...)
}
