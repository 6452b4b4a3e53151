package usecase

import (
	"errors"

	"tonotes/dto"
	"tonotes/model"
)

// ErrCursorNotFound is returned when a supplied cursor names no item in
// the collection. Treating a stale cursor as start-of-collection would
// silently re-serve the first page, so it is rejected instead.
var ErrCursorNotFound = errors.New("cursor does not match any note")

const DefaultPageSize = 5

// PaginateByPage slices items at [(page-1)*limit, page*limit).
// Non-positive page or limit fall back to 1 and DefaultPageSize; a page
// past the end yields an empty data slice, not an error.
func PaginateByPage(items []*model.Note, page, limit int) *dto.PagedNotes {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := page * limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &dto.PagedNotes{
		Data:         items[start:end],
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

// PaginateByCursor returns the window of up to limit items starting just
// after the item whose id equals cursor, or from the first item when the
// cursor is empty. NextCursor is the id of the last returned item while
// more items remain, nil once the collection is exhausted.
func PaginateByCursor(items []*model.Note, cursor string, limit int) (*dto.CursorNotes, error) {
	if limit < 1 {
		limit = DefaultPageSize
	}

	start := 0
	if cursor != "" {
		found := false
		for i, note := range items {
			if note.ID == cursor {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, ErrCursorNotFound
		}
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	window := items[start:end]

	result := &dto.CursorNotes{
		Data:            window,
		HasMore:         false,
		Total:           len(items),
		CurrentPageSize: len(window),
	}

	if end < len(items) && len(window) > 0 {
		last := window[len(window)-1].ID
		result.NextCursor = &last
		result.HasMore = true
	}

	return result, nil
}
