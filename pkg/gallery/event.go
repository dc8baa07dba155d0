package gallery

import "github.com/shouni/menu-photo-studio/pkg/domain"

// EventType はギャラリーの変更の種類です。
type EventType string

const (
	EventReset   EventType = "reset"   // 新しい料理一式が作成された
	EventUpdated EventType = "updated" // 1品が更新された
	EventCleared EventType = "cleared" // ギャラリーが空になった
)

// Event はギャラリーの変更通知です。DishID をキーに購読側が差分を反映します。
type Event struct {
	Type   EventType     `json:"type"`
	DishID string        `json:"dish_id,omitempty"`
	Dish   *domain.Dish  `json:"dish,omitempty"`
	Dishes []domain.Dish `json:"dishes,omitempty"`
}
