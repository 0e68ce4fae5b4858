// Package reconcile converts the account selection of a product edit
// session into the minimal set of link create/delete operations against
// the baseline that existed when the session began. It never reads server
// state: correctness rests on the selection being built by toggling from
// that same baseline.
package reconcile

import "fmt"

// Entry pairs a selected account with the link that existed for it when
// the edit session began. An empty LinkID means the account was newly
// checked and no link has been persisted yet.
type Entry struct {
	AccountID string
	LinkID    string
}

// Selection is the ordered set of accounts currently checked in a product
// edit session.
type Selection struct {
	entries []Entry
}

// Seed builds a selection from the links that existed at session start,
// tagging each account with its persisted link id.
func Seed(entries []Entry) Selection {
	s := Selection{entries: make([]Entry, len(entries))}
	copy(s.entries, entries)
	return s
}

// Has reports whether the account is currently selected.
func (s *Selection) Has(accountID string) bool {
	for _, e := range s.entries {
		if e.AccountID == accountID {
			return true
		}
	}
	return false
}

// Toggle flips an account's membership. Unchecking drops the entry along
// with its link tag; checking appends a fresh untagged entry. Re-checking
// an account unchecked earlier in the same session therefore re-enters it
// as brand new even if its old link still exists server-side. Duplicate
// links are the backend's problem to reject.
func (s *Selection) Toggle(accountID string) {
	for i, e := range s.entries {
		if e.AccountID == accountID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
	s.entries = append(s.entries, Entry{AccountID: accountID})
}

// Entries returns a copy of the current selection entries.
func (s *Selection) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of selected accounts.
func (s *Selection) Len() int {
	return len(s.entries)
}

// Plan is the operation set that moves persisted links from the baseline
// to the selection: one create per addition, one delete per removal.
type Plan struct {
	Additions []string // account ids needing a new link
	Removals  []string // link ids to delete
}

// Empty reports whether the plan contains no operations.
func (p Plan) Empty() bool {
	return len(p.Additions) == 0 && len(p.Removals) == 0
}

// Diff computes the plan from the final selection and the baseline link
// ids captured at session start. Entries whose link id is carried through
// unchanged appear in neither set, so the operation count is bounded by
// |selection| + |baseline|.
func Diff(sel Selection, baseline []string) Plan {
	var plan Plan
	retained := make(map[string]struct{}, len(sel.entries))
	for _, e := range sel.entries {
		if e.LinkID == "" {
			plan.Additions = append(plan.Additions, e.AccountID)
		} else {
			retained[e.LinkID] = struct{}{}
		}
	}
	for _, id := range baseline {
		if _, ok := retained[id]; !ok {
			plan.Removals = append(plan.Removals, id)
		}
	}
	return plan
}

// Applier issues individual link mutations.
type Applier interface {
	CreateLink(productID, accountID string) error
	DeleteLink(linkID string) error
}

// OpError records one failed link operation.
type OpError struct {
	Op  string // "create" or "delete"
	ID  string // account id for creates, link id for deletes
	Err error
}

// Result collects the outcome of applying a plan. Operations are
// independent; failures never abort the remainder.
type Result struct {
	Created []string
	Deleted []string
	Failed  []OpError
}

// Err summarizes partial failure, or nil when every operation succeeded.
func (r Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	total := len(r.Created) + len(r.Deleted) + len(r.Failed)
	return fmt.Errorf("%d of %d link operations failed (first: %s %s: %v)",
		len(r.Failed), total, r.Failed[0].Op, r.Failed[0].ID, r.Failed[0].Err)
}

// Apply executes every operation in the plan against the applier,
// attempting all of them regardless of earlier failures.
func (p Plan) Apply(productID string, a Applier) Result {
	var res Result
	for _, accountID := range p.Additions {
		if err := a.CreateLink(productID, accountID); err != nil {
			res.Failed = append(res.Failed, OpError{Op: "create", ID: accountID, Err: err})
			continue
		}
		res.Created = append(res.Created, accountID)
	}
	for _, linkID := range p.Removals {
		if err := a.DeleteLink(linkID); err != nil {
			res.Failed = append(res.Failed, OpError{Op: "delete", ID: linkID, Err: err})
			continue
		}
		res.Deleted = append(res.Deleted, linkID)
	}
	return res
}
