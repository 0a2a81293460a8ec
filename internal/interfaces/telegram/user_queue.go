package telegram

import "sync"

// userQueue ejecuta las tareas de un mismo usuario en orden de llegada y de a una,
// mientras usuarios distintos avanzan en paralelo. La goroutine de un usuario termina
// cuando su cola queda vacía.
type userQueue struct {
	mu      sync.Mutex
	pending map[int64][]func()
	wg      sync.WaitGroup
}

func newUserQueue() *userQueue {
	return &userQueue{pending: make(map[int64][]func())}
}

// Submit encola fn para key. No bloquea.
func (q *userQueue) Submit(key int64, fn func()) {
	q.mu.Lock()
	list, running := q.pending[key]
	q.pending[key] = append(list, fn)
	if !running {
		q.wg.Add(1)
	}
	q.mu.Unlock()
	if !running {
		go q.drain(key)
	}
}

func (q *userQueue) drain(key int64) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		list := q.pending[key]
		if len(list) == 0 {
			delete(q.pending, key)
			q.mu.Unlock()
			return
		}
		fn := list[0]
		q.pending[key] = list[1:]
		q.mu.Unlock()
		fn()
	}
}

// Active cantidad de usuarios con tareas en curso o encoladas.
func (q *userQueue) Active() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Wait espera a que se vacíen todas las colas.
func (q *userQueue) Wait() {
	q.wg.Wait()
}
