package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/conclave-hq/conclave/pkg/pagination"
)

// System defines the public contract for session domain operations.
type System interface {
	Handler() *Handler

	// GetOrCreate resolves an identifier to its session. An empty or unknown
	// identifier allocates a fresh session under a new id. The same id always
	// resolves to the same session for the lifetime of the process.
	GetOrCreate(id string) *Session

	// Find returns the session for a known id, or ErrNotFound / ErrInvalidID.
	Find(id uuid.UUID) (*Session, error)

	// List returns a page of session summaries ordered newest first.
	List(page pagination.PageRequest) pagination.PageResult[ListEntry]

	// Acquire takes the per-session step lock, blocking while another step
	// holds it. Steps for independent sessions proceed in parallel.
	Acquire(ctx context.Context, id uuid.UUID) error

	// Release returns the per-session step lock.
	Release(id uuid.UUID)
}
