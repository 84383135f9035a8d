package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Status-line modes for the next command.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatArabicNameAndTime  = "arabic-name-and-time"
	FormatFull               = "full"
)

// FormatModes lists the built-in modes in the order shown by --help.
var FormatModes = []string{
	FormatTimeRemaining,
	FormatNextPrayerTime,
	FormatNameAndTime,
	FormatNameAndRemaining,
	FormatShortNameAndTime,
	FormatShortNameAndRemain,
	FormatArabicNameAndTime,
	FormatFull,
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name       string // "Asr"
	ShortName  string // "A"
	ArabicName string // "العصر"
	Time       string // "15:02" or "3:02 PM"
	Remaining  string // "2h 15m"
	Hours      int
	Minutes    int
}

// NewFormatData prepares the template fields for p as seen at now.
func NewFormatData(p Prayer, now time.Time, timeFormat string) FormatData {
	d := TimeRemaining(p, now)
	if d < 0 {
		d = 0
	}
	return FormatData{
		Name:       p.Name,
		ShortName:  ShortNames[p.Name],
		ArabicName: ArabicNames[p.Name],
		Time:       p.Time.Format(timeFormat),
		Remaining:  FormatRemaining(d),
		Hours:      int(d.Hours()),
		Minutes:    int(d.Minutes()) % 60,
	}
}

// FormatOutput formats a prayer for a status line.
// timeFormat should be "15:04" for 24h or "3:04 PM" for 12h.
//
// A mode containing "{{" is executed as a Go template over FormatData, e.g.
// "{{.Name}} in {{.Remaining}}" gives "Asr in 2h 15m".
func FormatOutput(p Prayer, now time.Time, mode string, timeFormat string) string {
	data := NewFormatData(p, now, timeFormat)

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, data)
	}

	switch mode {
	case FormatTimeRemaining:
		return data.Remaining
	case FormatNextPrayerTime:
		return data.Time
	case FormatNameAndRemaining:
		return data.Name + " " + data.Remaining
	case FormatShortNameAndTime:
		return data.ShortName + " " + data.Time
	case FormatShortNameAndRemain:
		return data.ShortName + " " + data.Remaining
	case FormatArabicNameAndTime:
		return data.ArabicName + " " + data.Time
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", data.Name, data.Time, data.Remaining)
	default:
		return data.Name + " " + data.Time
	}
}

func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
