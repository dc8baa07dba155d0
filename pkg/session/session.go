package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shouni/menu-photo-studio/pkg/domain"
	"github.com/shouni/menu-photo-studio/pkg/gallery"
	"github.com/shouni/menu-photo-studio/pkg/gateway"
)

// latest は「最新の画像を表示中」を示す選択値です。
const latest = -1

// Registry は料理IDごとに1つの編集セッションを管理します。
type Registry struct {
	gateway gateway.Gateway
	gallery *gallery.Gallery

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry は依存関係を注入して Registry を初期化します。
func NewRegistry(gw gateway.Gateway, g *gallery.Gallery) (*Registry, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if g == nil {
		return nil, fmt.Errorf("gallery is required")
	}
	return &Registry{
		gateway:  gw,
		gallery:  g,
		sessions: make(map[string]*Session),
	}, nil
}

// Open は料理の編集セッションを返します。同じ料理には常に同じセッションを返します。
// ギャラリーから消えた料理のセッションは、編集中でなければここで破棄されます。
func (r *Registry) Open(dishID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()
	if _, ok := r.gallery.Get(dishID); !ok {
		return nil, domain.ErrDishNotFound
	}
	if s, ok := r.sessions[dishID]; ok {
		return s, nil
	}
	s := &Session{
		dishID:   dishID,
		gateway:  r.gateway,
		gallery:  r.gallery,
		selected: latest,
	}
	r.sessions[dishID] = s
	return s, nil
}

func (r *Registry) pruneLocked() {
	for id, s := range r.sessions {
		if _, ok := r.gallery.Get(id); ok {
			continue
		}
		if s.isEditing() {
			continue
		}
		delete(r.sessions, id)
	}
}

// Session は1品の料理に対する表示バージョンと編集の状態を保持します。
type Session struct {
	dishID  string
	gateway gateway.Gateway
	gallery *gallery.Gallery

	mu       sync.Mutex
	selected int
	editing  bool
}

// View はセッションの表示用スナップショットです。
type View struct {
	DishID    string        `json:"dish_id"`
	Displayed int           `json:"displayed"` // 履歴が空なら -1
	Editing   bool          `json:"editing"`
	History   []domain.Edit `json:"history"`
}

func (s *Session) isEditing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// DishID はセッション対象の料理IDを返します。
func (s *Session) DishID() string {
	return s.dishID
}

// Displayed は表示中の履歴インデックスと画像を返します。
// 履歴が空のときは -1 と料理の現在の画像を返します。
func (s *Session) Displayed() (int, *domain.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dish, ok := s.gallery.Get(s.dishID)
	if !ok {
		return latest, nil, domain.ErrDishNotFound
	}
	index, img := s.displayedLocked(dish)
	return index, img, nil
}

// View は表示中のインデックスと履歴を返します。
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dish, ok := s.gallery.Get(s.dishID)
	if !ok {
		return View{}, domain.ErrDishNotFound
	}
	index, _ := s.displayedLocked(dish)
	return View{
		DishID:    s.dishID,
		Displayed: index,
		Editing:   s.editing,
		History:   dish.EditHistory,
	}, nil
}

// Select は表示先を履歴の index 番目に切り替えます。料理のレコードは変更しません。
func (s *Session) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dish, ok := s.gallery.Get(s.dishID)
	if !ok {
		return domain.ErrDishNotFound
	}
	if _, ok := dish.Version(index); !ok {
		return domain.ErrVersionNotFound
	}
	s.selected = index
	return nil
}

// Submit は表示中の画像に instruction の編集を適用し、結果を履歴に追加します。
// 同じセッションで同時に実行できる編集は1つだけです。失敗時はレコードを変更しません。
func (s *Session) Submit(ctx context.Context, instruction string) (domain.Dish, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return domain.Dish{}, domain.ErrEmptyInstruction
	}

	s.mu.Lock()
	if s.editing {
		s.mu.Unlock()
		return domain.Dish{}, domain.ErrEditInProgress
	}
	dish, ok := s.gallery.Get(s.dishID)
	if !ok {
		s.mu.Unlock()
		return domain.Dish{}, domain.ErrDishNotFound
	}
	parent, source := s.displayedLocked(dish)
	if source.IsEmpty() {
		s.mu.Unlock()
		return domain.Dish{}, domain.ErrNoImage
	}
	s.editing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.editing = false
		s.mu.Unlock()
	}()

	edited, err := s.gateway.EditImage(ctx, *source, instruction)
	if err != nil {
		return domain.Dish{}, err
	}
	if edited.IsEmpty() {
		return domain.Dish{}, domain.ErrEditFailed
	}

	updated, err := s.gallery.Update(s.dishID, appendEdit(instruction, edited, parent))
	if err != nil {
		return domain.Dish{}, err
	}

	s.mu.Lock()
	s.selected = latest
	s.mu.Unlock()

	slog.InfoContext(ctx, "編集を適用しました", "dish_id", s.dishID, "parent", parent, "versions", len(updated.EditHistory))
	return updated, nil
}

func (s *Session) displayedLocked(dish domain.Dish) (int, *domain.Image) {
	if s.selected != latest {
		if img, ok := dish.Version(s.selected); ok {
			return s.selected, img
		}
	}
	if n := len(dish.EditHistory); n > 0 {
		img, _ := dish.Version(n - 1)
		return n - 1, img
	}
	return latest, dish.CurrentImage
}

// appendEdit は編集結果を履歴の末尾に追加するマージ関数を返します。
// 履歴が空なら編集前の画像を "Original" として先に記録します。
func appendEdit(instruction string, edited *domain.Image, parent int) gallery.MergeFunc {
	return func(d domain.Dish) domain.Dish {
		base := parent
		if len(d.EditHistory) == 0 {
			if d.CurrentImage != nil {
				d.EditHistory = append(d.EditHistory, domain.Edit{
					Instruction: domain.OriginalInstruction,
					Image:       *d.CurrentImage.Clone(),
					Parent:      domain.NoParent,
				})
			}
			base = len(d.EditHistory) - 1
		}
		d.EditHistory = append(d.EditHistory, domain.Edit{
			Instruction: instruction,
			Image:       *edited.Clone(),
			Parent:      base,
		})
		d.CurrentImage = edited.Clone()
		d.Error = ""
		return d
	}
}
