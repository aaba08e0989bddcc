// Package chart renders the spending pie sent by the /chart command.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
)

// ErrNoData is returned for an empty subscription list; callers send a
// localized "nothing to chart" text instead of an image.
var ErrNoData = errors.New("no subscriptions to chart")

// Pie renders a PNG pie chart of monthly-equivalent spend, one slice per
// service. Currencies are not converted; the code is kept in the slice label
// so mixed-currency charts stay honest about what they compare.
func Pie(subs []domain.Subscription) ([]byte, error) {
	if len(subs) == 0 {
		return nil, ErrNoData
	}

	values := make([]gochart.Value, 0, len(subs))
	for _, sub := range subs {
		monthly := domain.MonthlyEquivalent(sub)
		values = append(values, gochart.Value{
			Value: monthly,
			Label: fmt.Sprintf("%s (%.2f %s)", sub.ServiceName, monthly, sub.Currency),
		})
	}

	pie := gochart.PieChart{
		Width:  720,
		Height: 720,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}
