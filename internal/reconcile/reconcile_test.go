package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name          string
		entries       []Entry
		toggles       []string
		baseline      []string
		wantAdditions []string
		wantRemovals  []string
	}{
		{
			name:     "no-op edit produces zero operations",
			entries:  []Entry{{"A1", "L1"}, {"A2", "L2"}},
			baseline: []string{"L1", "L2"},
		},
		{
			name:          "uncheck one keep one add one",
			entries:       []Entry{{"A1", "L1"}, {"A2", "L2"}},
			toggles:       []string{"A1", "A3"},
			baseline:      []string{"L1", "L2"},
			wantAdditions: []string{"A3"},
			wantRemovals:  []string{"L1"},
		},
		{
			name:          "fresh product is additions only",
			toggles:       []string{"A1", "A2"},
			wantAdditions: []string{"A1", "A2"},
		},
		{
			name:         "clear everything removes whole baseline",
			entries:      []Entry{{"A1", "L1"}, {"A2", "L2"}},
			toggles:      []string{"A1", "A2"},
			baseline:     []string{"L1", "L2"},
			wantRemovals: []string{"L1", "L2"},
		},
		{
			name:          "re-toggled account is treated as brand new",
			entries:       []Entry{{"A1", "L1"}},
			toggles:       []string{"A1", "A1"},
			baseline:      []string{"L1"},
			wantAdditions: []string{"A1"},
			wantRemovals:  []string{"L1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Seed(tt.entries)
			for _, id := range tt.toggles {
				sel.Toggle(id)
			}
			plan := Diff(sel, tt.baseline)
			assert.Equal(t, tt.wantAdditions, plan.Additions)
			assert.Equal(t, tt.wantRemovals, plan.Removals)
		})
	}
}

func TestDiffCarriedEntriesAppearNowhere(t *testing.T) {
	sel := Seed([]Entry{{"A1", "L1"}, {"A2", "L2"}, {"A3", "L3"}})
	sel.Toggle("A2")
	sel.Toggle("A4")

	plan := Diff(sel, []string{"L1", "L2", "L3"})

	assert.NotContains(t, plan.Additions, "A1")
	assert.NotContains(t, plan.Additions, "A3")
	assert.NotContains(t, plan.Removals, "L1")
	assert.NotContains(t, plan.Removals, "L3")
	assert.Equal(t, []string{"A4"}, plan.Additions)
	assert.Equal(t, []string{"L2"}, plan.Removals)
}

func TestDiffOperationCountBound(t *testing.T) {
	sel := Seed([]Entry{{"A1", "L1"}})
	sel.Toggle("A5")
	sel.Toggle("A6")
	baseline := []string{"L1", "L2", "L3"}

	plan := Diff(sel, baseline)
	assert.LessOrEqual(t, len(plan.Additions)+len(plan.Removals), sel.Len()+len(baseline))
}

func TestToggle(t *testing.T) {
	sel := Seed([]Entry{{"A1", "L1"}})

	assert.True(t, sel.Has("A1"))
	sel.Toggle("A1")
	assert.False(t, sel.Has("A1"))

	sel.Toggle("A2")
	assert.True(t, sel.Has("A2"))
	require.Len(t, sel.Entries(), 1)
	assert.Equal(t, Entry{AccountID: "A2"}, sel.Entries()[0])
}

func TestPlanEmpty(t *testing.T) {
	assert.True(t, Plan{}.Empty())
	assert.False(t, Plan{Additions: []string{"A1"}}.Empty())
	assert.False(t, Plan{Removals: []string{"L1"}}.Empty())
}

type fakeApplier struct {
	created    []string
	deleted    []string
	failCreate map[string]error
	failDelete map[string]error
}

func (f *fakeApplier) CreateLink(productID, accountID string) error {
	if err, ok := f.failCreate[accountID]; ok {
		return err
	}
	f.created = append(f.created, accountID)
	return nil
}

func (f *fakeApplier) DeleteLink(linkID string) error {
	if err, ok := f.failDelete[linkID]; ok {
		return err
	}
	f.deleted = append(f.deleted, linkID)
	return nil
}

func TestApplyAllSucceed(t *testing.T) {
	applier := &fakeApplier{}
	plan := Plan{Additions: []string{"A3"}, Removals: []string{"L1"}}

	res := plan.Apply("prod-1", applier)

	assert.NoError(t, res.Err())
	assert.Equal(t, []string{"A3"}, res.Created)
	assert.Equal(t, []string{"L1"}, res.Deleted)
	assert.Empty(t, res.Failed)
}

func TestApplyAttemptsEverythingOnFailure(t *testing.T) {
	applier := &fakeApplier{
		failCreate: map[string]error{"A3": errors.New("conflict")},
	}
	plan := Plan{
		Additions: []string{"A3", "A4"},
		Removals:  []string{"L1", "L2"},
	}

	res := plan.Apply("prod-1", applier)

	// The failed create must not stop the later operations.
	assert.Equal(t, []string{"A4"}, res.Created)
	assert.Equal(t, []string{"L1", "L2"}, res.Deleted)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "create", res.Failed[0].Op)
	assert.Equal(t, "A3", res.Failed[0].ID)

	err := res.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 4")
}

func TestApplyEmptyPlanTouchesNothing(t *testing.T) {
	applier := &fakeApplier{}
	res := Plan{}.Apply("prod-1", applier)

	assert.NoError(t, res.Err())
	assert.Empty(t, applier.created)
	assert.Empty(t, applier.deleted)
}
