package handlers

import (
	"net/http"

	"artify/internal/stylepack"
)

type marketingStyle struct {
	StyleID       int    `json:"style_id"`
	StyleIndex    int    `json:"style_index"`
	PackName      string `json:"pack_name"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	StyleImageURL string `json:"style_image_url"`
}

// MarketingStyles flattens every pack into one list for the storefront
// style picker.
func (a *App) MarketingStyles(w http.ResponseWriter, r *http.Request) {
	var out []marketingStyle
	for _, pack := range stylepack.All() {
		for i, ref := range pack.RefPaths {
			out = append(out, marketingStyle{
				StyleID:       pack.ID,
				StyleIndex:    i + 1,
				PackName:      pack.Name,
				Title:         pack.Labels[i].Title,
				Artist:        pack.Labels[i].Artist,
				StyleImageURL: a.resolveStyleURL(ref),
			})
		}
	}
	a.json(w, http.StatusOK, map[string]any{"styles": out})
}
