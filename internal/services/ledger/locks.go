package ledger

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 256

// lockTable serializes in-process writers of the same account. Accounts are
// hashed onto a fixed set of mutexes, so two ids may share a stripe.
type lockTable struct {
	stripes [lockStripes]sync.Mutex
}

func stripeOf(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	return int(h.Sum32() % lockStripes)
}

func (t *lockTable) lock(id string) func() {
	mu := &t.stripes[stripeOf(id)]
	mu.Lock()

	return mu.Unlock
}

// lockPair locks the stripes of both ids in index order.
func (t *lockTable) lockPair(a, b string) func() {
	i, j := stripeOf(a), stripeOf(b)
	if i == j {
		return t.lock(a)
	}

	if i > j {
		i, j = j, i
	}

	t.stripes[i].Lock()
	t.stripes[j].Lock()

	return func() {
		t.stripes[j].Unlock()
		t.stripes[i].Unlock()
	}
}
