package site

import (
	"strconv"
	"time"
)

// SetFooterYear writes the current year into the copyright line.
func SetFooterYear(el TextSetter, now time.Time) {
	el.SetText(strconv.Itoa(now.Year()))
}
