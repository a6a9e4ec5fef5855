package presentation

import (
	"github.com/zjrosen/cellkit/internal/cell"
)

// TemplateDTO represents a cell template for presentation
type TemplateDTO struct {
	Identifier string    `json:"identifier"`
	Namespace  string    `json:"namespace"`
	Source     string    `json:"source"`
	Height     int       `json:"height"`
	Width      int       `json:"width,omitempty"`
	Border     bool      `json:"border"`
	Vertical   bool      `json:"vertical"`
	Slots      []SlotDTO `json:"slots"`
}

// SlotDTO represents one slot of a template
type SlotDTO struct {
	Key   string `json:"key"`
	Width int    `json:"width"` // 0 is flex
	Align string `json:"align"`
}

// FromTemplate converts a template to a DTO. Align defaults to "left".
func FromTemplate(t *cell.Template) TemplateDTO {
	slots := make([]SlotDTO, len(t.Layout.Slots))
	for i, s := range t.Layout.Slots {
		align := s.Align
		if align == "" {
			align = "left"
		}
		slots[i] = SlotDTO{Key: s.Key, Width: s.Width, Align: align}
	}

	return TemplateDTO{
		Identifier: t.Identifier,
		Namespace:  t.Namespace,
		Source:     t.Source,
		Height:     t.Layout.Height,
		Width:      t.Layout.Width,
		Border:     t.Layout.Border,
		Vertical:   t.Layout.Vertical,
		Slots:      slots,
	}
}
