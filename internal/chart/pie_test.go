package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
)

func TestPieEmpty(t *testing.T) {
	_, err := Pie(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPieRendersPNG(t *testing.T) {
	png, err := Pie([]domain.Subscription{
		{ServiceName: "Netflix", Cost: 15.99, Currency: "USD", BillingCycle: domain.CycleMonthly},
		{ServiceName: "Domain", Cost: 120, Currency: "USD", BillingCycle: domain.CycleYearly},
	})
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4], "png magic")
}
