package prayer

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
)

// Method is a calculation convention published by an Islamic authority.
type Method int

const (
	MethodMuslimWorldLeague Method = iota
	MethodEgyptian
	MethodKarachi
	MethodUmmAlQura
	MethodDubai
	MethodMoonsightingCommittee
	MethodNorthAmerica
	MethodKuwait
	MethodQatar
	MethodSingapore
	MethodFrance
	MethodTurkey
	MethodRussia
	MethodIreland
	MethodTehran
	MethodShia
	MethodGulf
	MethodOther
)

// Methods lists every method in display order.
var Methods = []Method{
	MethodMuslimWorldLeague,
	MethodEgyptian,
	MethodKarachi,
	MethodUmmAlQura,
	MethodDubai,
	MethodMoonsightingCommittee,
	MethodNorthAmerica,
	MethodKuwait,
	MethodQatar,
	MethodSingapore,
	MethodFrance,
	MethodTurkey,
	MethodRussia,
	MethodIreland,
	MethodTehran,
	MethodShia,
	MethodGulf,
	MethodOther,
}

var methodKeys = [...]string{
	MethodMuslimWorldLeague:     "mwl",
	MethodEgyptian:              "egyptian",
	MethodKarachi:               "karachi",
	MethodUmmAlQura:             "makkah",
	MethodDubai:                 "dubai",
	MethodMoonsightingCommittee: "moonsighting",
	MethodNorthAmerica:          "isna",
	MethodKuwait:                "kuwait",
	MethodQatar:                 "qatar",
	MethodSingapore:             "singapore",
	MethodFrance:                "france",
	MethodTurkey:                "turkey",
	MethodRussia:                "russia",
	MethodIreland:               "ireland",
	MethodTehran:                "tehran",
	MethodShia:                  "shia",
	MethodGulf:                  "gulf",
	MethodOther:                 "other",
}

var methodNames = [...]string{
	MethodMuslimWorldLeague:     "Muslim World League (MWL)",
	MethodEgyptian:              "Egyptian General Authority of Survey",
	MethodKarachi:               "University of Islamic Sciences, Karachi",
	MethodUmmAlQura:             "Umm Al-Qura University, Makkah",
	MethodDubai:                 "Dubai",
	MethodMoonsightingCommittee: "Moonsighting Committee Worldwide",
	MethodNorthAmerica:          "Islamic Society of North America (ISNA)",
	MethodKuwait:                "Kuwait",
	MethodQatar:                 "Qatar",
	MethodSingapore:             "Majlis Ugama Islam Singapura (Singapore)",
	MethodFrance:                "Union Organization Islamic de France",
	MethodTurkey:                "Diyanet Isleri Baskanligi, Turkey",
	MethodRussia:                "Spiritual Administration of Muslims of Russia",
	MethodIreland:               "Islamic Foundation of Ireland",
	MethodTehran:                "Institute of Geophysics, University of Tehran",
	MethodShia:                  "Shia Ithna-Ashari (Jafari)",
	MethodGulf:                  "Gulf Region",
	MethodOther:                 "Other (custom angles)",
}

func (m Method) valid() bool {
	return m >= MethodMuslimWorldLeague && m <= MethodOther
}

// String returns the config key of the method, e.g. "mwl".
func (m Method) String() string {
	if !m.valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodKeys[m]
}

// Name returns the human-readable name of the authority.
func (m Method) Name() string {
	if !m.valid() {
		return m.String()
	}
	return methodNames[m]
}

// ParseMethod resolves a config key (case-insensitive) to a Method.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Methods {
		if methodKeys[m] == key {
			return m, nil
		}
	}
	return MethodOther, fmt.Errorf("unknown method %q; valid methods: %s", s, strings.Join(MethodKeys(), ", "))
}

// MethodKeys returns the config keys of all methods.
func MethodKeys() []string {
	keys := make([]string, len(Methods))
	for i, m := range Methods {
		keys[i] = methodKeys[m]
	}
	return keys
}

// Parameters returns the default parameters of the method. Unknown values
// resolve like MethodOther, with zero angles for the caller to fill in.
func (m Method) Parameters() Parameters {
	p := Parameters{
		Method:           m,
		Madhab:           Shafi,
		HighLatitudeRule: MiddleOfTheNight,
	}

	switch m {
	case MethodMuslimWorldLeague:
		p.FajrAngle, p.IshaAngle = 18, 17
	case MethodEgyptian:
		p.FajrAngle, p.IshaAngle = 19.5, 17.5
	case MethodKarachi:
		p.FajrAngle, p.IshaAngle = 18, 18
	case MethodUmmAlQura:
		p.FajrAngle, p.IshaInterval = 18.5, 90
	case MethodDubai:
		p.FajrAngle, p.IshaAngle = 18.2, 18.2
	case MethodMoonsightingCommittee:
		p.FajrAngle, p.IshaAngle = 18, 18
	case MethodNorthAmerica:
		p.FajrAngle, p.IshaAngle = 15, 15
	case MethodKuwait:
		p.FajrAngle, p.IshaAngle = 18, 17.5
	case MethodQatar:
		p.FajrAngle, p.IshaInterval = 18, 90
	case MethodSingapore:
		p.FajrAngle, p.IshaAngle = 20, 18
	case MethodFrance:
		p.FajrAngle, p.IshaAngle = 12, 12
	case MethodTurkey:
		p.FajrAngle, p.IshaAngle = 18, 17
	case MethodRussia:
		p.FajrAngle, p.IshaAngle = 16, 15
	case MethodIreland:
		p.FajrAngle, p.IshaAngle = 16, 14
		p.Madhab = Hanafi
	case MethodTehran:
		p.FajrAngle, p.IshaAngle = 17.7, 14
		p.MethodAdjustments = Adjustments{Maghrib: 4}
	case MethodShia:
		p.FajrAngle, p.IshaAngle = 16, 14
		p.MethodAdjustments = Adjustments{Maghrib: 4}
	case MethodGulf:
		p.FajrAngle, p.IshaInterval = 19.5, 90
	default:
		p.Method = MethodOther
	}

	return p
}

// ReferenceLocation returns the seat of the authority behind the method.
// ok is false for methods without one.
func (m Method) ReferenceLocation() (astro.Coordinates, bool) {
	switch m {
	case MethodMuslimWorldLeague:
		return astro.Coordinates{Latitude: 51.5194682, Longitude: -0.1270063}, true
	case MethodEgyptian:
		return astro.Coordinates{Latitude: 30.0444196, Longitude: 31.2357116}, true
	case MethodKarachi:
		return astro.Coordinates{Latitude: 24.8614622, Longitude: 67.0099388}, true
	case MethodUmmAlQura:
		return astro.Coordinates{Latitude: 21.3890824, Longitude: 39.8579118}, true
	case MethodDubai, MethodGulf:
		return astro.Coordinates{Latitude: 25.2048493, Longitude: 55.2707828}, true
	case MethodNorthAmerica:
		return astro.Coordinates{Latitude: 39.7042123, Longitude: -86.399438}, true
	case MethodKuwait:
		return astro.Coordinates{Latitude: 29.31166, Longitude: 47.481766}, true
	case MethodQatar:
		return astro.Coordinates{Latitude: 25.354826, Longitude: 51.183884}, true
	case MethodSingapore:
		return astro.Coordinates{Latitude: 1.352083, Longitude: 103.819836}, true
	case MethodFrance:
		return astro.Coordinates{Latitude: 48.856614, Longitude: 2.3522219}, true
	case MethodTurkey:
		return astro.Coordinates{Latitude: 39.9333635, Longitude: 32.8597419}, true
	case MethodRussia:
		return astro.Coordinates{Latitude: 55.755826, Longitude: 37.6173}, true
	case MethodIreland:
		return astro.Coordinates{Latitude: 53.3498053, Longitude: -6.2603097}, true
	case MethodTehran, MethodShia:
		return astro.Coordinates{Latitude: 35.6891975, Longitude: 51.3889736}, true
	default:
		return astro.Coordinates{}, false
	}
}
