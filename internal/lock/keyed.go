package lock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

// Keyed serializa escritas por barbeiro: um mutex por barberID, criado
// na primeira aquisição e nunca removido enquanto o barbeiro existir
// (um handle removido cedo demais poderia ser re-criado e quebrar a
// exclusão mútua de uma requisição em voo).
//
// Acquire bloqueia até conseguir a vez ou até estourar o timeout/ctx;
// ao adquirir, retorna uma função de release que deve ser chamada
// exatamente uma vez.
type Keyed struct {
	mu    sync.Mutex
	locks map[uint]chan struct{}
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[uint]chan struct{})}
}

func (k *Keyed) slot(id uint) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()

	ch, ok := k.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		k.locks[id] = ch
	}
	return ch
}

// Acquire trava o barbeiro id. Timeout estourado → busy (retryable).
func (k *Keyed) Acquire(ctx context.Context, id uint, timeout time.Duration) (func(), error) {
	ch := k.slot(id)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		release := func() {
			once.Do(func() { <-ch })
		}
		return release, nil
	case <-timer.C:
		return nil, httperr.ErrBusiness(httperr.CodeBusy)
	case <-ctx.Done():
		return nil, httperr.ErrBusiness(httperr.CodeBusy)
	}
}

// AcquireMany trava vários barbeiros em ordem canônica de id crescente
// (evita deadlock quando dois reagendamentos cruzam dois barbeiros).
// Em falha parcial, libera o que já adquiriu.
func (k *Keyed) AcquireMany(ctx context.Context, ids []uint, timeout time.Duration) (func(), error) {
	uniq := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	sort.Slice(uniq, func(a, b int) bool { return uniq[a] < uniq[b] })

	releases := make([]func(), 0, len(uniq))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for _, id := range uniq {
		release, err := k.Acquire(ctx, id, timeout)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}

	var once sync.Once
	return func() { once.Do(releaseAll) }, nil
}
