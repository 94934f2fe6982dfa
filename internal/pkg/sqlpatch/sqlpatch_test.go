package sqlpatch

import (
	"testing"

	"pm-backend/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetClause_SingleField(t *testing.T) {
	clause, vals, err := SetClause(map[string]interface{}{"cash": 2000.0}, nil)
	require.NoError(t, err)
	assert.Equal(t, "cash = ?", clause)
	assert.Equal(t, []interface{}{2000.0}, vals)
}

func TestSetClause_MultipleFieldsSorted(t *testing.T) {
	clause, vals, err := SetClause(map[string]interface{}{
		"notes": "long term",
		"cash":  500.0,
		"name":  "Retirement",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "cash = ?, name = ?, notes = ?", clause)
	assert.Equal(t, []interface{}{500.0, "Retirement", "long term"}, vals)
}

func TestSetClause_ColumnMapping(t *testing.T) {
	clause, vals, err := SetClause(
		map[string]interface{}{"firstName": "Aliya", "age": 32},
		map[string]string{"firstName": "first_name"},
	)
	require.NoError(t, err)
	assert.Equal(t, "age = ?, first_name = ?", clause)
	assert.Equal(t, []interface{}{32, "Aliya"}, vals)
}

func TestSetClause_EmptyFields(t *testing.T) {
	_, _, err := SetClause(map[string]interface{}{}, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindEmptyUpdate, apperr.KindOf(err))
}

func TestSetClause_NilFields(t *testing.T) {
	_, _, err := SetClause(nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindEmptyUpdate, apperr.KindOf(err))
}
