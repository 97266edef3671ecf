package matchmaking

import (
	"container/heap"
	"sync"

	"github.com/iamasit07/pong-arena/backend/internal/metrics"
)

// Entrant is a player waiting for an opponent.
type Entrant struct {
	UserID   int64
	Username string
	Rating   int
}

// Match pairs two entrants. Player1 is the entrant that was already waiting;
// it is assigned playerNumber 1 when the session starts.
type Match struct {
	Player1 Entrant
	Player2 Entrant
}

// Queue is the waiting pool, ordered by rating. Pairing is pair-on-arrival:
// the ordering only decides which of several waiting entrants is taken, it
// does not do skill-balanced matching. An entrant that never gets an opponent
// waits until it disconnects.
type Queue struct {
	mu           sync.Mutex
	waiting      entrantHeap
	members      map[int64]*waiter
	MatchChannel chan Match
}

func NewQueue() *Queue {
	return &Queue{
		members:      make(map[int64]*waiter),
		MatchChannel: make(chan Match, 100),
	}
}

// Join enters an entrant into matchmaking. It returns true when the entrant
// is left waiting and false when it was paired immediately (the match is
// emitted on MatchChannel). Joining twice is a no-op that keeps waiting.
func (q *Queue) Join(e Entrant) bool {
	q.mu.Lock()

	if _, exists := q.members[e.UserID]; exists {
		q.mu.Unlock()
		return true
	}

	if q.waiting.Len() == 0 {
		w := &waiter{entrant: e}
		heap.Push(&q.waiting, w)
		q.members[e.UserID] = w
		metrics.QueueSize.Set(float64(q.waiting.Len()))
		q.mu.Unlock()
		return true
	}

	opponent := heap.Pop(&q.waiting).(*waiter)
	delete(q.members, opponent.entrant.UserID)
	metrics.QueueSize.Set(float64(q.waiting.Len()))
	metrics.MatchesTotal.Inc()
	match := Match{Player1: opponent.entrant, Player2: e}
	q.mu.Unlock()

	// Emit outside the lock so a full channel cannot wedge Join and Remove.
	q.MatchChannel <- match
	return false
}

// Remove drops an entrant from the pool, e.g. on disconnect while waiting.
func (q *Queue) Remove(userID int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	w, exists := q.members[userID]
	if !exists {
		return
	}
	heap.Remove(&q.waiting, w.index)
	delete(q.members, userID)
	metrics.QueueSize.Set(float64(q.waiting.Len()))
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.waiting.Len()
}

// waiter wraps an entrant with its heap index so Remove can target it.
type waiter struct {
	entrant Entrant
	index   int
}

// entrantHeap is a max-heap on rating: the highest-rated waiting entrant is
// the next one paired.
type entrantHeap []*waiter

func (h entrantHeap) Len() int           { return len(h) }
func (h entrantHeap) Less(i, j int) bool { return h[i].entrant.Rating > h[j].entrant.Rating }
func (h entrantHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entrantHeap) Push(x any) {
	w := x.(*waiter)
	w.index = len(*h)
	*h = append(*h, w)
}

func (h *entrantHeap) Pop() any {
	old := *h
	n := len(old)
	w := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return w
}
