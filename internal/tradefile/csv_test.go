package tradefile

import (
	"portfoliotracker/types"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWithHeader(t *testing.T) {
	input := `Symbol,Quantity,Price,Date,Commission
SUBSCRIPTION,10000,,2023-03-06,
AAPL,100,10.5,2023-03-07,5
AAPL,-40,12,08/03/2023,2.5
WITHDRAWAL,500,,2023-03-09,
`
	txns, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 4)

	assert.Equal(t, types.KindSubscription, txns[0].Kind)
	assert.True(t, txns[0].Quantity.Equal(decimal.NewFromInt(10000)))

	assert.Equal(t, types.KindTrade, txns[1].Kind)
	assert.Equal(t, "AAPL", txns[1].Asset)
	assert.True(t, txns[1].Price.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, time.Date(2023, 3, 7, 0, 0, 0, 0, time.UTC), txns[1].Date)

	assert.Equal(t, -1, txns[2].Direction)
	assert.Equal(t, time.Date(2023, 3, 8, 0, 0, 0, 0, time.UTC), txns[2].Date)
	assert.True(t, txns[2].Commission.Equal(decimal.RequireFromString("2.5")))

	assert.Equal(t, types.KindWithdrawal, txns[3].Kind)
}

func TestReadWithoutHeader(t *testing.T) {
	input := "MSFT,10,250,2023-03-06,1\n"
	txns, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "MSFT", txns[0].Asset)
}

func TestReadAssignsOrderIds(t *testing.T) {
	input := "MSFT,10,250,2023-03-06,1\nMSFT,5,260,2023-03-07,1\n"
	txns, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.NotEmpty(t, txns[0].OrderID)
	assert.NotEqual(t, txns[0].OrderID, txns[1].OrderID)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty file", "", "no rows"},
		{"header only", "Symbol,Quantity,Price,Date,Commission\n", "no rows"},
		{"bad quantity", "AAPL,ten,10,2023-03-06,0\n", "row 1"},
		{"bad date", "AAPL,10,10,yesterday,0\nMSFT,10,10,2023-03-06,0\n", "row 1"},
		{"invalid transaction", "AAPL,10,-1,2023-03-06,0\n", "row 1"},
		{"wrong column count", "AAPL,10,10\n", "record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
