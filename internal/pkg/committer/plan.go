// Package committer is the unit of work for catalog writes.
//
// Repositories never apply mutations themselves: they return
// *spanner.Mutation values, usecases collect them into a CommitPlan together
// with audit-entry mutations, and the Committer applies the whole plan in a
// single Spanner transaction. Updates go through ApplyWithVersionCheck,
// which compares the aggregate's version column against the value captured
// at load time and aborts with ErrVersionConflict when another writer got
// there first. Callers decide whether to reload and retry; the committer
// never retries on its own.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

// ErrVersionConflict signals that the optimistic-lock check failed: the
// stored version no longer matches the version captured when the aggregate
// was loaded.
var ErrVersionConflict = errors.New("version conflict: aggregate modified concurrently")

// CommitPlan collects mutations from multiple sources for one atomic apply.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates an empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends a mutation. Nil mutations are ignored so callers can pass
// repo results through unconditionally.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple appends several mutations.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns the collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty reports whether the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionCheck identifies the row and expected version for an optimistic
// lock comparison.
type VersionCheck struct {
	Table    string
	Key      spanner.Key
	Expected int64
}

// Committer executes CommitPlans against Spanner.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the plan atomically. Used for inserts, where no prior
// version exists to compare.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("apply commit plan: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck executes the plan inside a read-write transaction
// that first re-reads the aggregate's version column. A mismatch aborts the
// transaction and surfaces as ErrVersionConflict (match with errors.Is).
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, check.Table, check.Key, []string{"version"})
		if err != nil {
			return fmt.Errorf("read %s version: %w", check.Table, err)
		}

		var currentVersion int64
		if err := row.Column(0, &currentVersion); err != nil {
			return fmt.Errorf("parse %s version: %w", check.Table, err)
		}

		if currentVersion != check.Expected {
			return fmt.Errorf("%w: %s expected %d, stored %d", ErrVersionConflict, check.Table, check.Expected, currentVersion)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("apply commit plan with version check: %w", err)
	}
	return nil
}
