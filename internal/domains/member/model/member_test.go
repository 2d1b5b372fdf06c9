package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberFilterWhereClause(t *testing.T) {
	t.Run("no filters still scopes to active rows", func(t *testing.T) {
		f := &MemberFilter{}
		where, args := f.WhereClause()
		assert.Equal(t, "m.is_active = true", where)
		assert.Empty(t, args)
	})

	t.Run("search binds one argument across all columns", func(t *testing.T) {
		f := &MemberFilter{Search: "doe"}
		where, args := f.WhereClause()
		assert.Contains(t, where, "m.first_name ILIKE $1")
		assert.Contains(t, where, "m.member_number ILIKE $1")
		assert.Contains(t, where, "m.phone ILIKE $1")
		require.Len(t, args, 1)
		assert.Equal(t, "%doe%", args[0])
	})

	t.Run("status and search number placeholders sequentially", func(t *testing.T) {
		f := &MemberFilter{Search: "doe", Status: "active"}
		where, args := f.WhereClause()
		assert.Contains(t, where, "m.membership_status = $2")
		assert.Equal(t, []interface{}{"%doe%", "active"}, args)
	})
}

func TestMemberFilterOrderByClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"defaults to last name", "", "", "m.last_name ASC"},
		{"plain column keeps table prefix", "email", "desc", "m.email DESC"},
		{"aggregate sorts by its alias", "active_loans", "desc", "active_loans DESC"},
		{"fines aggregate", "total_outstanding_fines", "asc", "total_outstanding_fines ASC"},
		{"unknown column falls back", "'; DROP TABLE members;--", "asc", "m.last_name ASC"},
		{"unknown direction falls back", "member_number", "random", "m.member_number ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &MemberFilter{SortBy: tt.sortBy, SortOrder: tt.sortOrder}
			assert.Equal(t, tt.want, f.OrderByClause())
		})
	}
}

func TestMemberNumberHelpers(t *testing.T) {
	assert.Equal(t, "MEM-2026-0001", FormatMemberNumber(2026, 1))
	assert.Equal(t, "MEM-2026-0042", FormatMemberNumber(2026, 42))
	assert.Equal(t, "MEM-2026-10000", FormatMemberNumber(2026, 10000))

	assert.Equal(t, 42, SequenceOf("MEM-2026-0042"))
	assert.Equal(t, 1, SequenceOf("MEM-2026-0001"))
	assert.Equal(t, 0, SequenceOf(""))
	assert.Equal(t, 0, SequenceOf("MEM-2026-"))
	assert.Equal(t, 0, SequenceOf("garbage"))
}
