package orchestrator

import (
	"github.com/shouni/menu-photo-studio/pkg/domain"
	"github.com/shouni/menu-photo-studio/pkg/gallery"
)

func markGenerated(img *domain.Image) gallery.MergeFunc {
	return func(d domain.Dish) domain.Dish {
		d.CurrentImage = img.Clone()
		d.IsGenerating = false
		d.Error = ""
		return d
	}
}

func markFailed() gallery.MergeFunc {
	return func(d domain.Dish) domain.Dish {
		d.IsGenerating = false
		d.Error = domain.GenerationFailedMessage
		return d
	}
}
