package record

import (
	"fmt"
	"strconv"
)

// Special result values used by the federation.
const (
	ResultDNF = -1
	ResultDNS = -2
)

const (
	centisPerMinute = 6000
	centisPerHour   = 360000
	mbfOldFormatMin = 1_000_000_000
	mbfUnknownTime  = 99999
)

// FormatResult renders a raw result value of event code in discipline d.
func FormatResult(code string, d Discipline, value int) string {
	switch {
	case value == ResultDNF:
		return "DNF"
	case value == ResultDNS:
		return "DNS"
	case value <= 0:
		return ""
	}

	switch code {
	case "333fm":
		if d == Average {
			return fmt.Sprintf("%.2f", float64(value)/100)
		}
		return strconv.Itoa(value)
	case "333mbf":
		return formatMultiBlind(value)
	default:
		return formatCentiseconds(value)
	}
}

func formatCentiseconds(cs int) string {
	switch {
	case cs < centisPerMinute:
		return fmt.Sprintf("%d.%02d", cs/100, cs%100)
	case cs < centisPerHour:
		return fmt.Sprintf("%d:%02d.%02d", cs/centisPerMinute, (cs%centisPerMinute)/100, cs%100)
	default:
		return fmt.Sprintf("%d:%02d:%02d.%02d",
			cs/centisPerHour, (cs%centisPerHour)/centisPerMinute, (cs%centisPerMinute)/100, cs%100)
	}
}

// formatMultiBlind decodes the packed multi-blind value. Current values are
// 0DDTTTTTMM (difference, seconds, missed); old ones are 1SSAATTTTT.
func formatMultiBlind(value int) string {
	var solved, attempted, seconds int
	if value >= mbfOldFormatMin {
		seconds = value % 100000
		attempted = (value / 100000) % 100
		solved = 99 - (value/10_000_000)%100
	} else {
		missed := value % 100
		seconds = (value / 100) % 100000
		difference := 99 - (value/10_000_000)%100
		solved = difference + missed
		attempted = solved + missed
	}

	if seconds == mbfUnknownTime {
		return fmt.Sprintf("%d/%d ?:??:??", solved, attempted)
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%d/%d %d:%02d:%02d", solved, attempted, seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%d/%d %d:%02d", solved, attempted, seconds/60, seconds%60)
}
