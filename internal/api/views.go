package api

import (
	"github.com/shouni/menu-photo-studio/pkg/domain"
	"github.com/shouni/menu-photo-studio/pkg/gallery"
	"github.com/shouni/menu-photo-studio/pkg/imgutil"
	"github.com/shouni/menu-photo-studio/pkg/session"
)

// imageView は画像を base64 文字列で表します。
type imageView struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type editView struct {
	Instruction string     `json:"instruction"`
	Parent      int        `json:"parent"`
	Image       *imageView `json:"image,omitempty"`
}

type dishView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	CurrentImage *imageView `json:"current_image,omitempty"`
	IsGenerating bool       `json:"is_generating"`
	Error        string     `json:"error,omitempty"`
	EditHistory  []editView `json:"edit_history"`
}

type sessionView struct {
	DishID    string     `json:"dish_id"`
	Displayed int        `json:"displayed"`
	Editing   bool       `json:"editing"`
	History   []editView `json:"history"`
}

type eventView struct {
	Type   gallery.EventType `json:"type"`
	DishID string            `json:"dish_id,omitempty"`
	Dish   *dishView         `json:"dish,omitempty"`
	Dishes []dishView        `json:"dishes,omitempty"`
}

func toImageView(img *domain.Image) *imageView {
	if img.IsEmpty() {
		return nil
	}
	b64, err := imgutil.EncodeBase64(imgutil.Blob{Data: img.Data, MIMEType: img.MIMEType})
	if err != nil {
		return nil
	}
	return &imageView{MIMEType: img.MIMEType, Data: b64}
}

func toEditViews(history []domain.Edit) []editView {
	out := make([]editView, len(history))
	for i := range history {
		out[i] = editView{
			Instruction: history[i].Instruction,
			Parent:      history[i].Parent,
			Image:       toImageView(&history[i].Image),
		}
	}
	return out
}

func toDishView(d domain.Dish) dishView {
	return dishView{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		CurrentImage: toImageView(d.CurrentImage),
		IsGenerating: d.IsGenerating,
		Error:        d.Error,
		EditHistory:  toEditViews(d.EditHistory),
	}
}

func toDishViews(dishes []domain.Dish) []dishView {
	out := make([]dishView, len(dishes))
	for i, d := range dishes {
		out[i] = toDishView(d)
	}
	return out
}

func toSessionView(v session.View) sessionView {
	return sessionView{
		DishID:    v.DishID,
		Displayed: v.Displayed,
		Editing:   v.Editing,
		History:   toEditViews(v.History),
	}
}

func toEventView(ev gallery.Event) eventView {
	out := eventView{Type: ev.Type, DishID: ev.DishID}
	if ev.Dish != nil {
		d := toDishView(*ev.Dish)
		out.Dish = &d
	}
	if ev.Dishes != nil {
		out.Dishes = toDishViews(ev.Dishes)
	}
	return out
}
