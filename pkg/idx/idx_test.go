package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/tabledger/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewIsULID(t *testing.T) {
	id := idx.New()
	require.Len(t, id.String(), 26)
	require.WithinDuration(t, time.Now(), id.Time(), time.Second)
}

func TestOrdering(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())
	require.Less(t, a.String(), b.String())

	// same millisecond: monotonic entropy keeps mint order
	at := time.Unix(1700000000, 0)
	c, d := idx.NewAt(at), idx.NewAt(at)
	require.Less(t, c.String(), d.String())
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	require.Equal(t, tm, idx.NewAt(tm).Time())
	require.True(t, idx.ID("not-a-ulid").Time().IsZero())
}

func TestConcurrentNewIsUnique(t *testing.T) {
	const n = 500
	var (
		mu   sync.Mutex
		seen = make(map[idx.ID]struct{}, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := idx.New()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, seen, n)
}
