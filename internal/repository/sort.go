package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm/clause"
)

var (
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

const DefaultSortField = "name"

// Sort columns accepted by each listing. Keys are the sortBy values clients
// send; values are the columns the query orders by. Nothing outside these
// maps ever reaches an ORDER BY clause.
var (
	UserSortColumns = map[string]clause.Column{
		"id":         {Table: "users", Name: "id"},
		"name":       {Table: "users", Name: "name"},
		"email":      {Table: "users", Name: "email"},
		"address":    {Table: "users", Name: "address"},
		"role":       {Table: "users", Name: "role"},
		"created_at": {Table: "users", Name: "created_at"},
	}

	AdminStoreSortColumns = map[string]clause.Column{
		"id":             {Table: "s", Name: "id"},
		"name":           {Table: "s", Name: "name"},
		"email":          {Table: "s", Name: "email"},
		"address":        {Table: "s", Name: "address"},
		"created_at":     {Table: "s", Name: "created_at"},
		"average_rating": {Name: "average_rating"},
		"total_ratings":  {Name: "total_ratings"},
	}

	StoreSortColumns = map[string]clause.Column{
		"id":             {Table: "s", Name: "id"},
		"name":           {Table: "s", Name: "name"},
		"email":          {Table: "s", Name: "email"},
		"address":        {Table: "s", Name: "address"},
		"average_rating": {Name: "average_rating"},
		"total_ratings":  {Name: "total_ratings"},
		"user_rating":    {Name: "user_rating"},
	}
)

// ParseSort resolves client supplied sortBy/sortOrder against an allow-list.
// Empty values fall back to name ascending; sortOrder is case-insensitive.
func ParseSort(columns map[string]clause.Column, sortBy, sortOrder string) (clause.OrderByColumn, error) {
	if sortBy == "" {
		sortBy = DefaultSortField
	}
	column, ok := columns[sortBy]
	if !ok {
		return clause.OrderByColumn{}, ErrInvalidSortField
	}

	var desc bool
	switch strings.ToUpper(sortOrder) {
	case "", "ASC":
	case "DESC":
		desc = true
	default:
		return clause.OrderByColumn{}, ErrInvalidSortOrder
	}

	return clause.OrderByColumn{Column: column, Desc: desc}, nil
}

// orderWithTiebreak appends the primary key so equal sort values keep a stable order.
func orderWithTiebreak(sort clause.OrderByColumn, table string) clause.OrderBy {
	if sort.Column.Name == "" {
		sort.Column = clause.Column{Table: table, Name: "name"}
	}
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		sort,
		{Column: clause.Column{Table: table, Name: "id"}},
	}}
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
