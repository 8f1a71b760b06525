package dungeon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_MarshalJSON(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"1736935200000", `1736935200000`},
		{"-5", `-5`},
		{"007", `"007"`},
		{"+5", `"+5"`},
		{"99999999999999999999", `"99999999999999999999"`},
		{"item_1736935200000", `"item_1736935200000"`},
		{"", `""`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.id)
		require.NoError(t, err, "%q", tt.id)
		assert.Equal(t, tt.want, string(got), "%q", tt.id)

		var back ID
		require.NoError(t, json.Unmarshal(got, &back))
		assert.Equal(t, tt.id, back)
	}
}

func TestID_ImportedStringIDsEncode(t *testing.T) {
	doc := `{"targetRuns": 3, "history": [{"id": "007", "records": []}],
		"tradeHistory": [{"id": "0", "type": "buy", "qty": 1, "price": 0}]}`
	st, err := ParseDocument([]byte(doc))
	require.NoError(t, err)

	data, err := EncodeDocument(st, false)
	require.NoError(t, err)
	again, err := ParseDocument(data)
	require.NoError(t, err)
	assert.Equal(t, ID("007"), again.History[0].ID)
	assert.Equal(t, ID("0"), again.TradeHistory[0].ID)
}
