package gallery

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/menu-photo-studio/pkg/domain"
)

// MergeFunc は現在のレコードから更新後のレコードを作る純粋関数です。
type MergeFunc func(domain.Dish) domain.Dish

// Gallery は料理レコードをIDで管理するインメモリのストアです。
// 更新はレコード単位の置き換えで行い、変更は購読者へ通知されます。
type Gallery struct {
	mu     sync.RWMutex
	dishes map[string]domain.Dish
	order  []string

	subMu  sync.Mutex
	subs   map[int]*subscription
	nextID int
}

type subscription struct {
	ch   chan Event
	once sync.Once
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// New は空のギャラリーを作成します。
func New() *Gallery {
	return &Gallery{
		dishes: make(map[string]domain.Dish),
		subs:   make(map[int]*subscription),
	}
}

// Reset はギャラリーを空にしてから、全料理のプレースホルダーを一度に作成します。
func (g *Gallery) Reset(items []domain.MenuItem) []domain.Dish {
	created := make([]domain.Dish, 0, len(items))
	dishes := make(map[string]domain.Dish, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		d := domain.NewPendingDish(item)
		dishes[d.ID] = d
		order = append(order, d.ID)
		created = append(created, d.Clone())
	}

	g.mu.Lock()
	g.dishes = dishes
	g.order = order
	g.mu.Unlock()

	g.publish(Event{Type: EventReset, Dishes: cloneAll(created)})
	return created
}

// Clear はすべての料理を削除します。
func (g *Gallery) Clear() {
	g.mu.Lock()
	g.dishes = make(map[string]domain.Dish)
	g.order = nil
	g.mu.Unlock()

	g.publish(Event{Type: EventCleared})
}

// Update は id のレコードに merge を適用して置き換えます。
// ID と名前・説明は merge の結果に関わらず維持されます。
func (g *Gallery) Update(id string, merge MergeFunc) (domain.Dish, error) {
	g.mu.Lock()
	current, ok := g.dishes[id]
	if !ok {
		g.mu.Unlock()
		return domain.Dish{}, fmt.Errorf("gallery: %s: %w", id, domain.ErrDishNotFound)
	}
	next := merge(current.Clone())
	next.ID = current.ID
	next.Name = current.Name
	next.Description = current.Description
	g.dishes[id] = next
	g.mu.Unlock()

	out := next.Clone()
	snapshot := next.Clone()
	g.publish(Event{Type: EventUpdated, DishID: id, Dish: &snapshot})
	return out, nil
}

// Get は id のレコードの複製を返します。
func (g *Gallery) Get(id string) (domain.Dish, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	d, ok := g.dishes[id]
	if !ok {
		return domain.Dish{}, false
	}
	return d.Clone(), true
}

// List は作成順に全レコードの複製を返します。
func (g *Gallery) List() []domain.Dish {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Dish, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.dishes[id].Clone())
	}
	return out
}

// Subscribe は変更通知を受け取るチャネルと購読解除関数を返します。
// バッファが溢れた購読者は購読を解除され、チャネルが閉じられます。
// 書き込み側はブロックしません。
func (g *Gallery) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	sub := &subscription{ch: make(chan Event, buffer)}

	g.subMu.Lock()
	id := g.nextID
	g.nextID++
	g.subs[id] = sub
	g.subMu.Unlock()

	cancel := func() {
		g.subMu.Lock()
		delete(g.subs, id)
		g.subMu.Unlock()
		sub.close()
	}
	return sub.ch, cancel
}

func (g *Gallery) publish(ev Event) {
	g.subMu.Lock()
	defer g.subMu.Unlock()
	for id, sub := range g.subs {
		select {
		case sub.ch <- ev:
		default:
			delete(g.subs, id)
			sub.close()
			slog.Warn("購読者の受信が追いつかないため購読を解除しました", "subscriber", id, "event", ev.Type, "dish_id", ev.DishID)
		}
	}
}

func cloneAll(dishes []domain.Dish) []domain.Dish {
	out := make([]domain.Dish, len(dishes))
	for i, d := range dishes {
		out[i] = d.Clone()
	}
	return out
}
