package api

// Response is the Al Adhan response for a single day.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// CalendarResponse is the Al Adhan response for a whole month, one entry
// per day.
type CalendarResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   []Data `json:"data"`
}

// Data is one day of timings.
type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings holds the times the local engine can be compared against, as
// "HH:MM" optionally followed by a zone abbreviation like " (BST)".
type Timings struct {
	Fajr       string `json:"Fajr"`
	Sunrise    string `json:"Sunrise"`
	Dhuhr      string `json:"Dhuhr"`
	Asr        string `json:"Asr"`
	Maghrib    string `json:"Maghrib"`
	Isha       string `json:"Isha"`
	Midnight   string `json:"Midnight"`
	Firstthird string `json:"Firstthird"`
	Lastthird  string `json:"Lastthird"`
}

// DateInfo identifies the day a calendar entry belongs to.
type DateInfo struct {
	Gregorian GregorianDate `json:"gregorian"`
}

// GregorianDate holds the day as "DD-MM-YYYY".
type GregorianDate struct {
	Date string `json:"date"`
}

// Meta carries the zone the API expressed the timings in.
type Meta struct {
	Timezone string `json:"timezone"`
}
