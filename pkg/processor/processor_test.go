package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/thistle/pkg/logging"
	"github.com/Ramsey-B/thistle/pkg/models"
)

type mergeCall struct {
	masterID      string
	childIDs      []string
	frameworkCode string
}

type fakeStore struct {
	records       map[string]models.Record
	users         map[string]models.User
	mergeCalls    []mergeCall
	mergeErrOn    string
	mergeErr      error
	deleteOnMerge bool
}

func newFakeStore(records ...models.Record) *fakeStore {
	s := &fakeStore{
		records: make(map[string]models.Record),
		users:   make(map[string]models.User),
	}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (f *fakeStore) GetRecord(_ context.Context, id string) (*models.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeStore) Merge(_ context.Context, masterID string, childIDs []string, frameworkCode string) error {
	f.mergeCalls = append(f.mergeCalls, mergeCall{masterID: masterID, childIDs: childIDs, frameworkCode: frameworkCode})
	if f.mergeErrOn == masterID && f.mergeErr != nil {
		return f.mergeErr
	}
	if f.deleteOnMerge {
		for _, id := range childIDs {
			delete(f.records, id)
		}
	}
	return nil
}

func TestProcessGroup_CommitMergesFilteredChildren(t *testing.T) {
	store := newFakeStore(
		models.Record{ID: "75", FrameworkCode: "BKS", Title: "Master", ItemCount: 1},
		models.Record{ID: "801", FrameworkCode: "BKS", ItemCount: 2},
		models.Record{ID: "802", FrameworkCode: "BKS", ItemCount: 3},
	)
	p := NewProcessor(store, models.FrameworkPolicy{}, true, logging.NewNop())

	res := p.ProcessGroup(context.Background(), models.MergeGroup{
		Line:     1,
		MasterID: "75",
		ChildIDs: []string{"801", "777", "802"},
	})

	assert.Equal(t, OutcomeMerged, res.Outcome)
	assert.Equal(t, []string{"777"}, res.MissingChildren)
	assert.Equal(t, 5, res.ItemsMoved)

	require.Len(t, store.mergeCalls, 1)
	assert.Equal(t, "75", store.mergeCalls[0].masterID)
	assert.Equal(t, []string{"801", "802"}, store.mergeCalls[0].childIDs)
	assert.Equal(t, "BKS", store.mergeCalls[0].frameworkCode)
}

func TestProcessGroup_MasterMissingIsRejected(t *testing.T) {
	store := newFakeStore(models.Record{ID: "801"})

	for _, commit := range []bool{false, true} {
		p := NewProcessor(store, models.FrameworkPolicy{}, commit, logging.NewNop())
		res := p.ProcessGroup(context.Background(), models.MergeGroup{MasterID: "999", ChildIDs: []string{"801"}})

		assert.Equal(t, OutcomeRejected, res.Outcome)
		assert.Empty(t, store.mergeCalls)
	}
}

func TestProcessGroup_NoResolvingChildrenIsSkipped(t *testing.T) {
	store := newFakeStore(models.Record{ID: "75", FrameworkCode: "BKS"})
	p := NewProcessor(store, models.FrameworkPolicy{}, true, logging.NewNop())

	res := p.ProcessGroup(context.Background(), models.MergeGroup{MasterID: "75", ChildIDs: []string{"777"}})

	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Empty(t, store.mergeCalls)
}

func TestProcessGroup_DryRunNeverCallsMerge(t *testing.T) {
	store := newFakeStore(
		models.Record{ID: "75", FrameworkCode: "BKS", ItemCount: 1},
		models.Record{ID: "801", FrameworkCode: "BKS", ItemCount: 4},
		models.Record{ID: "802", FrameworkCode: "SER", ItemCount: 2},
	)
	p := NewProcessor(store, models.FrameworkPolicy{}, false, logging.NewNop())

	res := p.ProcessGroup(context.Background(), models.MergeGroup{MasterID: "75", ChildIDs: []string{"801", "802"}})

	assert.Equal(t, OutcomeSimulated, res.Outcome)
	assert.Len(t, res.Children, 2)
	// Item movement is only counted for real merges.
	assert.Equal(t, 0, res.ItemsMoved)
	assert.Empty(t, store.mergeCalls)
}

func TestProcessGroup_MergeErrorIsFailed(t *testing.T) {
	store := newFakeStore(
		models.Record{ID: "105", FrameworkCode: "BKS"},
		models.Record{ID: "1494", FrameworkCode: "BKS"},
	)
	store.mergeErrOn = "105"
	store.mergeErr = errors.New("catalog reported merge failure for master 105")

	p := NewProcessor(store, models.FrameworkPolicy{}, true, logging.NewNop())
	res := p.ProcessGroup(context.Background(), models.MergeGroup{MasterID: "105", ChildIDs: []string{"1494"}})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.Len(t, store.mergeCalls, 1)
}

func TestProcessGroup_FrameworkResolution(t *testing.T) {
	tests := []struct {
		name     string
		policy   models.FrameworkPolicy
		expected string
	}{
		{name: "defaults to master's code", policy: models.FrameworkPolicy{}, expected: "BKS"},
		{name: "explicit code wins over master's", policy: models.FrameworkPolicy{ExplicitCode: "SER"}, expected: "SER"},
		{name: "force default resolves to empty code", policy: models.FrameworkPolicy{ForceDefault: true}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(
				models.Record{ID: "75", FrameworkCode: "BKS"},
				models.Record{ID: "801", FrameworkCode: "BKS"},
			)
			p := NewProcessor(store, tt.policy, true, logging.NewNop())

			res := p.ProcessGroup(context.Background(), models.MergeGroup{MasterID: "75", ChildIDs: []string{"801"}})

			assert.Equal(t, OutcomeMerged, res.Outcome)
			require.Len(t, store.mergeCalls, 1)
			assert.Equal(t, tt.expected, store.mergeCalls[0].frameworkCode)
		})
	}
}
