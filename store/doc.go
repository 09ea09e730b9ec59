// Package store holds the authoritative local copy of one entity domain.
//
// A Store maps identity to payload. Mutations are idempotent: applying
// the same upsert twice or removing an absent identity leaves the store
// unchanged, which keeps the engine correct under the at-least-once,
// unordered delivery the service provides. The stream handlers are the
// only writers; projections and hosts read concurrent snapshots.
package store
