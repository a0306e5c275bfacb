// package basesvc - Test chuyển đổi dữ liệu update.
package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUpdateData_PassthroughPointer(t *testing.T) {
	in := &UpdateData{Set: map[string]interface{}{"name": "x"}}
	out, err := ToUpdateData(in)
	require.NoError(t, err)
	assert.Same(t, in, out, "truyền *UpdateData phải trả về đúng pointer đó")
}

func TestToUpdateData_ValueConverted(t *testing.T) {
	in := UpdateData{Set: map[string]interface{}{"price": 10.5}}
	out, err := ToUpdateData(in)
	require.NoError(t, err)
	assert.Equal(t, 10.5, out.Set["price"])
}

func TestToUpdateData_MapWithOperators(t *testing.T) {
	in := map[string]interface{}{
		"$set":   map[string]interface{}{"status": "paid"},
		"$unset": map[string]interface{}{"note": ""},
	}
	out, err := ToUpdateData(in)
	require.NoError(t, err)
	assert.Equal(t, "paid", out.Set["status"])
	assert.Contains(t, out.Unset, "note", "Unset phải chứa key note")
}

func TestToUpdateData_PlainMapBecomesSet(t *testing.T) {
	in := map[string]interface{}{"isActive": false, "order": 3}
	out, err := ToUpdateData(in)
	require.NoError(t, err)
	assert.Len(t, out.Set, 2, "map thường phải vào hết $set")
	assert.Empty(t, out.Unset)
}
