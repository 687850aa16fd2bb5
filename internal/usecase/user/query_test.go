package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		keyword   string
		wantPage  int64
		wantLimit int64
	}{
		{
			name:      "missing values fall back to defaults",
			page:      "",
			limit:     "",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "valid values are kept",
			page:      "3",
			limit:     "25",
			wantPage:  3,
			wantLimit: 25,
		},
		{
			name:      "malformed page falls back",
			page:      "abc",
			limit:     "20",
			wantPage:  1,
			wantLimit: 20,
		},
		{
			name:      "malformed limit falls back",
			page:      "2",
			limit:     "10.5",
			wantPage:  2,
			wantLimit: 10,
		},
		{
			name:      "zero values fall back",
			page:      "0",
			limit:     "0",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "negative values fall back",
			page:      "-3",
			limit:     "-10",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "limit is capped",
			page:      "1",
			limit:     "1000",
			wantPage:  1,
			wantLimit: 100,
		},
		{
			name:      "keyword passes through untouched",
			page:      "1",
			limit:     "10",
			keyword:   "john doe",
			wantPage:  1,
			wantLimit: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseListQuery(tt.page, tt.limit, tt.keyword)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantLimit, req.Limit)
			assert.Equal(t, tt.keyword, req.Keyword)
		})
	}
}

func TestListUsersRequest_Offset(t *testing.T) {
	tests := []struct {
		name string
		page int64
		lim  int64
		want int64
	}{
		{"first page", 1, 10, 0},
		{"third page of twenty", 3, 20, 40},
		{"second page of defaults", 2, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ListUsersRequest{Page: tt.page, Limit: tt.lim}
			assert.Equal(t, tt.want, req.Offset())
		})
	}
}
