package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotification_CollectsInOrder(t *testing.T) {
	n := NewNotification()
	require.False(t, n.HasErrors())
	require.NoError(t, n.Err())

	n.Add("title", "should not be empty")
	n.Add("description", "should not be empty")

	require.True(t, n.HasErrors())
	require.Equal(t, []FieldError{
		{Field: "title", Message: "should not be empty"},
		{Field: "description", Message: "should not be empty"},
	}, n.Errors())

	err := n.Err()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 2)
	require.Equal(t,
		"there are validation errors: title: should not be empty; description: should not be empty",
		err.Error(),
	)
}
