package services

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/types"
	"github.com/highroll-gg/bigwin-notifier/pkg"
)

var displayPrinter = message.NewPrinter(language.English)

// formatWinLine renders one qualifying win as a notification line:
//
//	WINNER…ABCD won 2,000.00 CHIPS. Congrats!! https://replay.example/...
func formatWinLine(event *types.WinEvent, cfg *config.NotifierConfig) string {
	raw := event.MetricValue(cfg.MetricSelector())

	var amount string
	if cfg.DisplayDivisor == 1 {
		amount = displayPrinter.Sprint(number.Decimal(raw, number.MaxFractionDigits(0)))
	} else {
		value := float64(raw) / float64(cfg.DisplayDivisor)
		amount = displayPrinter.Sprint(number.Decimal(value,
			number.MinFractionDigits(2),
			number.MaxFractionDigits(6),
		))
	}

	line := fmt.Sprintf("%s won %s %s. Congrats!!", pkg.ShortenAddress(event.Who), amount, cfg.Unit)
	if event.ReplayURL != "" {
		line += " " + event.ReplayURL
	}
	return line
}
