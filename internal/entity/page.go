package entity

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order sorts a listing by one property.
type Order struct {
	Property  string
	Direction Direction
}

// PageRequest selects one zero-based page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// NewPageRequest returns a normalised page request.
func NewPageRequest(page, size int, sort ...Order) PageRequest {
	return PageRequest{Page: page, Size: size, Sort: sort}.Normalize()
}

// OffsetPageRequest turns an offset/limit pull from a grid into a page request.
// The offset is rounded down to a page boundary of limit.
func OffsetPageRequest(offset, limit int, sort ...Order) PageRequest {
	limit = clampSize(limit)
	if offset < 0 {
		offset = 0
	}
	return PageRequest{Page: offset / limit, Size: limit, Sort: sort}
}

// Normalize clamps page and size into valid bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	p.Size = clampSize(p.Size)
	return p
}

func (p PageRequest) Limit() int {
	return clampSize(p.Size)
}

func (p PageRequest) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// Next returns the request for the following page.
func (p PageRequest) Next() PageRequest {
	n := p.Normalize()
	n.Page++
	return n
}

// Query encodes the request back into page/size/sort parameters.
func (p PageRequest) Query() url.Values {
	n := p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(n.Page))
	q.Set("size", strconv.Itoa(n.Size))
	for _, o := range n.Sort {
		q.Add("sort", o.Property+","+string(o.Direction))
	}
	return q
}

// ParsePageRequest reads page, size and sort ("property,asc|desc", repeatable).
func ParsePageRequest(q url.Values) (PageRequest, error) {
	var p PageRequest
	var err error
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil || p.Page < 0 {
			return PageRequest{}, fmt.Errorf("%w: page %q", ErrInvalidPageRequest, v)
		}
	}
	if v := strings.TrimSpace(q.Get("size")); v != "" {
		if p.Size, err = strconv.Atoi(v); err != nil || p.Size <= 0 {
			return PageRequest{}, fmt.Errorf("%w: size %q", ErrInvalidPageRequest, v)
		}
	}
	for _, raw := range q["sort"] {
		o, err := ParseOrder(raw)
		if err != nil {
			return PageRequest{}, err
		}
		p.Sort = append(p.Sort, o)
	}
	return p.Normalize(), nil
}

// ParseOrder parses "property" or "property,direction".
func ParseOrder(raw string) (Order, error) {
	prop, dir, _ := strings.Cut(strings.TrimSpace(raw), ",")
	prop = strings.TrimSpace(prop)
	if prop == "" {
		return Order{}, fmt.Errorf("%w: empty sort property", ErrInvalidPageRequest)
	}
	switch Direction(strings.ToLower(strings.TrimSpace(dir))) {
	case "", Asc:
		return Order{Property: prop, Direction: Asc}, nil
	case Desc:
		return Order{Property: prop, Direction: Desc}, nil
	default:
		return Order{}, fmt.Errorf("%w: sort direction %q", ErrInvalidPageRequest, dir)
	}
}

func clampSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
