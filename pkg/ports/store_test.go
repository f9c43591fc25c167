package ports_test

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/routeops/pkg/ports"
)

// mockClosureStore is a minimal ClosureStore used to check the contract suite itself.
type mockClosureStore struct {
	ids map[string]struct{}
}

func (m *mockClosureStore) Close(ctx context.Context, id string) error {
	m.ids[id] = struct{}{}
	return nil
}

func (m *mockClosureStore) Open(ctx context.Context, id string) error {
	delete(m.ids, id)
	return nil
}

func (m *mockClosureStore) Closed(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(m.ids))
	for id := range m.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func TestClosureStoreContract_Mock(t *testing.T) {
	ports.RunClosureStoreContract(t, &mockClosureStore{ids: map[string]struct{}{}})
}
