package dungeon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSchema(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{"minimal", `{"targetRuns":1}`, true},
		{"full", `{"targetRuns":10,"runRecords":[],"history":[]}`, true},
		{"null collections", `{"targetRuns":3,"runRecords":null,"history":null}`, true},
		{"null", `null`, false},
		{"array", `[]`, false},
		{"missing target", `{"runRecords":[]}`, false},
		{"zero target", `{"targetRuns":0}`, false},
		{"string target", `{"targetRuns":"10"}`, false},
		{"records not an array", `{"targetRuns":10,"runRecords":{}}`, false},
		{"history not an array", `{"targetRuns":10,"history":"none"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v any
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &v))
			assert.Equal(t, tt.want, IsValidSchema(v))
		})
	}
}

func TestParseDocument_Backfill(t *testing.T) {
	st, err := ParseDocument([]byte(`{"targetRuns":5,"currentRunCount":0,"sessionStartTime":null,"runRecords":[],"history":[]}`))
	require.NoError(t, err)

	assert.Equal(t, 5, st.TargetRuns)
	assert.Equal(t, DefaultShareTemplate, st.ShareTemplate)
	assert.NotNil(t, st.MarketItems)
	assert.Empty(t, st.MarketItems)
	assert.NotNil(t, st.Inventory)
	assert.NotNil(t, st.TradeHistory)
	assert.NotNil(t, st.History)
}

func TestParseDocument_LegacyDocument(t *testing.T) {
	// a document written by the browser version of the tracker.
	doc := `{
		"targetRuns": 10,
		"shareTemplate": "{현재}/{목표}",
		"currentRunCount": 1,
		"sessionStartTime": "2025-01-15T10:00:00.000Z",
		"runRecords": [{"time": 61230, "memo": "&lt;boss&gt;"}],
		"history": [{
			"id": 1736935200000,
			"startTime": "2025-01-15T09:00:00.000Z",
			"endTime": "2025-01-15T09:30:00.000Z",
			"duration": 1800000,
			"playDuration": 120000,
			"targetRuns": 2,
			"runCount": 2,
			"avgTime": 60000.5,
			"fastestTime": 59000,
			"records": [{"time": 59000, "memo": ""}, {"time": 61001, "memo": ""}]
		}],
		"marketItems": [{"id": "item_1736935200000", "name": "Ore", "grade": "white"}],
		"inventory": {"item_1736935200000": {"qty": 6, "totalCost": 600}},
		"tradeHistory": [{
			"id": 1736935300000, "date": "2025-01-15T10:01:40.000Z", "type": "sell",
			"itemId": "item_1736935200000", "itemName": "Ore", "grade": "white",
			"qty": 4, "price": 150, "feeRate": 0.1, "supplyType": "일반",
			"revenue": 540, "netProfit": 140
		}]
	}`
	st, err := ParseDocument([]byte(doc))
	require.NoError(t, err)

	require.Len(t, st.History, 1)
	assert.Equal(t, ID("1736935200000"), st.History[0].ID)
	assert.Equal(t, 60000.5, st.History[0].AvgTime)
	require.Len(t, st.TradeHistory, 1)
	assert.Equal(t, ID("1736935300000"), st.TradeHistory[0].ID)
	assert.Equal(t, Money(400), st.TradeHistory[0].CostOfGoods())
	assert.Equal(t, InventoryEntry{Qty: 6, TotalCost: 600}, st.Inventory["item_1736935200000"])
	require.NotNil(t, st.SessionStartTime)

	// legacy numeric ids are written back as numbers.
	data, err := EncodeDocument(st, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":1736935200000`)
	assert.Contains(t, string(data), `"id":"item_1736935200000"`)
}

func TestParseDocument_Invalid(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`{"targetRuns":0}`,
		`{"targetRuns":2,"runRecords":[{"time":"slow"}]}`,
	} {
		_, err := ParseDocument([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidDocument, doc)
	}
}

func TestEncodeDocument(t *testing.T) {
	st := DefaultState()
	st.IsRunning = true
	st.ElapsedTime = 1234

	data, err := EncodeDocument(st, false)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"targetRuns", "shareTemplate", "currentRunCount", "sessionStartTime",
		"runRecords", "history", "marketItems", "inventory", "tradeHistory",
	}, keys)

	pretty, err := EncodeDocument(st, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"targetRuns\": 10,")

	back, err := ParseDocument(pretty)
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), back)
}
