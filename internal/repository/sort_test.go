package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	testCases := []struct {
		name      string
		sortBy    string
		sortOrder string
		wantCol   string
		wantDesc  bool
		wantErr   error
	}{
		{name: "defaults", sortBy: "", sortOrder: "", wantCol: "name"},
		{name: "desc lower case", sortBy: "email", sortOrder: "desc", wantCol: "email", wantDesc: true},
		{name: "asc mixed case", sortBy: "created_at", sortOrder: "Asc", wantCol: "created_at"},
		{name: "unknown field", sortBy: "password", wantErr: ErrInvalidSortField},
		{name: "injection attempt", sortBy: "name; DROP TABLE users", wantErr: ErrInvalidSortField},
		{name: "unknown order", sortBy: "name", sortOrder: "sideways", wantErr: ErrInvalidSortOrder},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSort(UserSortColumns, tc.sortBy, tc.sortOrder)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCol, got.Column.Name)
			assert.Equal(t, "users", got.Column.Table)
			assert.Equal(t, tc.wantDesc, got.Desc)
		})
	}
}

func TestParseSort_ListingSpecificColumns(t *testing.T) {
	_, err := ParseSort(UserSortColumns, "average_rating", "")
	assert.ErrorIs(t, err, ErrInvalidSortField)

	got, err := ParseSort(AdminStoreSortColumns, "average_rating", "DESC")
	require.NoError(t, err)
	assert.Equal(t, "average_rating", got.Column.Name)
	assert.True(t, got.Desc)

	_, err = ParseSort(AdminStoreSortColumns, "user_rating", "")
	assert.ErrorIs(t, err, ErrInvalidSortField)

	_, err = ParseSort(StoreSortColumns, "user_rating", "")
	assert.NoError(t, err)
}
