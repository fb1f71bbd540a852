package gateway

import (
	"context"
	"strings"
	"sync"

	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrUnknownAuthorization = errors.New("authorization doesn't exist")
	ErrNotPending           = errors.New("authorization isn't pending")
)

// Sandbox is an in-process gateway. Authorizations start pending and are
// settled through Capture or Fail, or right away when auto-capture is on.
type Sandbox struct {
	mu             sync.Mutex
	authorizations map[string]models.Authorization
	autoCapture    bool
}

type SandboxOption func(s *Sandbox)

func WithAutoCapture() SandboxOption {
	return func(s *Sandbox) {
		s.autoCapture = true
	}
}

func NewSandbox(options ...SandboxOption) *Sandbox {
	s := &Sandbox{
		authorizations: make(map[string]models.Authorization),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *Sandbox) CreateAuthorization(_ context.Context, amount int64, metadata map[string]string) (models.AuthorizationHandle, error) {
	if amount <= 0 {
		return models.AuthorizationHandle{}, errors.Errorf("amount must be positive, got %d", amount)
	}

	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	handle := models.AuthorizationHandle{
		ID:           id,
		ClientSecret: id + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
	}

	status := models.AuthorizationPending
	if s.autoCapture {
		status = models.AuthorizationSucceeded
	}

	s.mu.Lock()
	s.authorizations[id] = models.Authorization{
		ID:       id,
		Status:   status,
		Amount:   amount,
		Metadata: copyMetadata(metadata),
	}
	s.mu.Unlock()

	return handle, nil
}

func (s *Sandbox) RetrieveAuthorization(_ context.Context, authorizationID string) (models.Authorization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authorization, ok := s.authorizations[authorizationID]
	if !ok {
		return models.Authorization{}, errors.Wrap(ErrUnknownAuthorization, authorizationID)
	}

	authorization.Metadata = copyMetadata(authorization.Metadata)
	return authorization, nil
}

// Capture marks a pending authorization as succeeded.
func (s *Sandbox) Capture(authorizationID string) error {
	return s.settle(authorizationID, models.AuthorizationSucceeded)
}

// Fail marks a pending authorization as failed.
func (s *Sandbox) Fail(authorizationID string) error {
	return s.settle(authorizationID, models.AuthorizationFailed)
}

func (s *Sandbox) settle(authorizationID string, status models.AuthorizationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	authorization, ok := s.authorizations[authorizationID]
	if !ok {
		return errors.Wrap(ErrUnknownAuthorization, authorizationID)
	}

	if authorization.Status != models.AuthorizationPending {
		return errors.Wrapf(ErrNotPending, "%s is %s", authorizationID, authorization.Status)
	}

	authorization.Status = status
	s.authorizations[authorizationID] = authorization

	return nil
}

func copyMetadata(metadata map[string]string) map[string]string {
	copied := make(map[string]string, len(metadata))
	for key, value := range metadata {
		copied[key] = value
	}
	return copied
}
