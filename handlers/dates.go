package handlers

import "time"

const dateLayout = "2006-01-02"

// onTimeCutoffHour is the hour of day a delivery must be completed by to
// count as on time.
const onTimeCutoffHour = 17

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func today() string {
	return time.Now().UTC().Format(dateLayout)
}
