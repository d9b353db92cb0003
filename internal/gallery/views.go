package gallery

import (
	"slices"
	"strings"

	"github.com/feral-file/ff-minter/internal/domain"
)

// Filter selects and orders gallery items for display
type Filter struct {
	// Account is the session account used by MineOnly
	Account string
	// MineOnly keeps the items owned by Account
	MineOnly bool
	// Search keeps items whose name, description or owner contains it, ignoring case
	Search string
}

// Apply returns the items matching f, sorted by token id descending.
// items is not modified.
func Apply(items []domain.GalleryItem, f Filter) []domain.GalleryItem {
	out := make([]domain.GalleryItem, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(f.Search))

	for _, item := range items {
		if f.MineOnly && !domain.SameAddress(item.Owner, f.Account) {
			continue
		}
		if query != "" && !matches(item, query) {
			continue
		}
		out = append(out, item)
	}

	SortByIDDesc(out)

	return out
}

// SortByIDDesc sorts items by token id, highest first, keeping the order of equal ids
func SortByIDDesc(items []domain.GalleryItem) {
	slices.SortStableFunc(items, func(a, b domain.GalleryItem) int {
		switch {
		case a.TokenID > b.TokenID:
			return -1
		case a.TokenID < b.TokenID:
			return 1
		default:
			return 0
		}
	})
}

func matches(item domain.GalleryItem, query string) bool {
	return strings.Contains(strings.ToLower(item.Metadata.Name), query) ||
		strings.Contains(strings.ToLower(item.Metadata.Description), query) ||
		strings.Contains(strings.ToLower(item.Owner), query)
}
