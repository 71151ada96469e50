package domain

import (
	"sort"
)

type SortField string

const (
	SortNone      SortField = ""
	SortByTitle   SortField = "title"
	SortByContent SortField = "content"
)

type SortDirection string

const (
	DirectionNone SortDirection = ""
	DirectionAsc  SortDirection = "asc"
	DirectionDesc SortDirection = "desc"
)

// ListOptions controls the ordering of ListPosts.
type ListOptions struct {
	SortBy    SortField
	Direction SortDirection
}

// ParseListOptions validates raw sort and direction query values.
// The field is validated first, and the direction is validated even when no
// field is given.
func ParseListOptions(sortBy, direction string) (ListOptions, error) {
	field := SortField(sortBy)
	switch field {
	case SortNone, SortByTitle, SortByContent:
	default:
		return ListOptions{}, ErrWrongSortValue
	}

	dir := SortDirection(direction)
	switch dir {
	case DirectionNone, DirectionAsc, DirectionDesc:
	default:
		return ListOptions{}, ErrWrongSortDirection
	}

	return ListOptions{SortBy: field, Direction: dir}, nil
}

// Descending reports whether the listing should be reversed.
func (o ListOptions) Descending() bool {
	return o.Direction == DirectionDesc
}

// SortPosts stable-sorts posts in place according to opts.
// Equal keys keep their relative store order in both directions.
func SortPosts(posts []*Post, opts ListOptions) {
	if opts.SortBy == SortNone {
		return
	}

	key := func(p *Post) string {
		if opts.SortBy == SortByContent {
			return p.Content
		}
		return p.Title
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if opts.Descending() {
			return key(posts[i]) > key(posts[j])
		}
		return key(posts[i]) < key(posts[j])
	})
}
