package user

import "strconv"

// Pagination defaults for the list endpoint.
const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
)

// ListUsersRequest represents a normalized request for listing users.
// Construct it through ParseListQuery so the invariants below hold.
type ListUsersRequest struct {
	Keyword string
	Page    int64
	Limit   int64
}

// Offset returns the zero-based skip count for the current page.
// Always >= 0 for any value ParseListQuery produces.
func (r ListUsersRequest) Offset() int64 {
	return (r.Page - 1) * r.Limit
}

// ParseListQuery builds a usable list request from raw query-string values.
// Missing, malformed or non-positive page/limit silently fall back to the
// defaults; limit is capped at MaxLimit. It never fails: degraded pagination
// input costs the caller nothing but the default page.
func ParseListQuery(page, limit, keyword string) ListUsersRequest {
	req := ListUsersRequest{
		Keyword: keyword,
		Page:    DefaultPage,
		Limit:   DefaultLimit,
	}

	if p, err := strconv.ParseInt(page, 10, 64); err == nil && p >= 1 {
		req.Page = p
	}

	if l, err := strconv.ParseInt(limit, 10, 64); err == nil && l >= 1 {
		req.Limit = l
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}

	return req
}
