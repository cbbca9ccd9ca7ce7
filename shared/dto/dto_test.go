package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop/shared/constant"
	"shop/shared/dto"
	"shop/shared/model"
	"shop/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, ModifiedAt: modifiedAt})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=note&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "note", SortDir: dto.SortDirAsc},
		},
		{
			name:     "bare request stays unpaginated",
			expected: dto.QueryParams{},
		},
		{
			name:           "defaults when requested",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "malformed values fall back to defaults",
			query:          "page=abc&limit=-5",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "zero page is ignored",
			query:    "page=0&limit=5",
			expected: dto.QueryParams{Limit: 5},
		},
		{
			name:     "unknown sort direction is ignored",
			query:    "sort_by=id&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/galleries?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(request, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_OffsetAndPageSize(t *testing.T) {
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Zero(t, dto.QueryParams{Limit: 10}.Offset())
	assert.Zero(t, dto.QueryParams{Page: 3}.Offset())

	assert.Equal(t, 10, dto.QueryParams{Limit: 10}.PageSize(42))
	assert.Equal(t, 42, dto.QueryParams{}.PageSize(42))
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table",
			filter:    dto.Filter{Field: "note", Value: "promo", Operator: dto.FilterOperatorEq, Table: "galleries"},
			wantWhere: "galleries.note = :where_note",
			wantArgs:  map[string]any{"where_note": "promo"},
		},
		{
			name:      "custom argument name",
			filter:    dto.Filter{ArgName: "from", Field: "issued_at", Value: 1, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "issued_at >= :where_from",
			wantArgs:  map[string]any{"where_from": 1},
		},
		{
			name:      "case insensitive like",
			filter:    dto.Filter{Field: "thumbnail", Value: "cdn", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(thumbnail) LIKE LOWER(:where_thumbnail)",
			wantArgs:  map[string]any{"where_thumbnail": "%cdn%"},
		},
		{
			name:      "in expands slices",
			filter:    dto.Filter{Field: "id", Value: []int64{1, 2}, Operator: dto.FilterOperatorIn, Table: "tokens"},
			wantWhere: "tokens.id IN (:where_id, :where_id_1)",
			wantArgs:  map[string]any{"where_id": int64(1), "where_id_1": int64(2)},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "id", Value: []int64{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "note", Operator: dto.FilterIsNull},
			wantWhere: "note IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "note", Value: "x", Operator: "regex"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("defaults to AND", func(t *testing.T) {
		group := dto.FilterGroup{Filters: []dto.Condition{
			dto.Filter{Field: "note", Value: "promo", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "product_id", Value: int64(1), Operator: dto.FilterOperatorEq},
		}}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(note = :where_note AND product_id = :where_product_id)", where)
		assert.Equal(t, map[string]any{"where_note": "promo", "where_product_id": int64(1)}, args)
	})

	t.Run("nested groups share argument names", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []dto.Condition{
				dto.Filter{Field: "note", Value: "promo", Operator: dto.FilterOperatorEq},
				dto.FilterGroup{Filters: []dto.Condition{
					dto.Filter{Field: "note", Value: "sale", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "thumbnail", Operator: dto.FilterIsNotNull},
				}},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(note = :where_note OR (note = :where_note_1 AND thumbnail IS NOT NULL))", where)
		assert.Equal(t, map[string]any{"where_note": "promo", "where_note_1": "sale"}, args)
	})

	t.Run("empty", func(t *testing.T) {
		group := dto.FilterGroup{Filters: []dto.Condition{nil, dto.FilterGroup{}}}

		assert.True(t, group.IsEmpty())
		assert.False(t, dto.FilterGroup{Filters: []dto.Condition{
			dto.Filter{Field: "id", Value: 1, Operator: dto.FilterOperatorEq},
		}}.IsEmpty())
	})
}

func TestSortDirectionConstants(t *testing.T) {
	assert.Equal(t, "ASC", dto.SortDirAsc)
	assert.Equal(t, "DESC", dto.SortDirDesc)
}
