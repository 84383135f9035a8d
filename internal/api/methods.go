package api

import (
	"errors"
	"fmt"

	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

// ErrNoEquivalentMethod is returned for methods Al Adhan has no ID for.
var ErrNoEquivalentMethod = errors.New("no equivalent Al Adhan method")

var methodIDs = map[prayer.Method]int{
	prayer.MethodShia:                  0,
	prayer.MethodKarachi:               1,
	prayer.MethodNorthAmerica:          2,
	prayer.MethodMuslimWorldLeague:     3,
	prayer.MethodUmmAlQura:             4,
	prayer.MethodEgyptian:              5,
	prayer.MethodTehran:                7,
	prayer.MethodGulf:                  8,
	prayer.MethodKuwait:                9,
	prayer.MethodQatar:                 10,
	prayer.MethodSingapore:             11,
	prayer.MethodFrance:                12,
	prayer.MethodTurkey:                13,
	prayer.MethodRussia:                14,
	prayer.MethodMoonsightingCommittee: 15,
	prayer.MethodDubai:                 16,
}

// MethodID returns the Al Adhan method ID for m.
func MethodID(m prayer.Method) (int, error) {
	id, ok := methodIDs[m]
	if !ok {
		return -1, fmt.Errorf("%s: %w", m, ErrNoEquivalentMethod)
	}
	return id, nil
}

// SchoolID returns the Al Adhan school parameter: 0 standard, 1 Hanafi.
func SchoolID(m prayer.Madhab) int {
	if m == prayer.Hanafi {
		return 1
	}
	return 0
}

// LatitudeAdjustmentID returns the Al Adhan latitudeAdjustmentMethod for r:
// 1 middle of the night, 2 one seventh, 3 angle based.
func LatitudeAdjustmentID(r prayer.HighLatitudeRule) int {
	switch r {
	case prayer.SeventhOfTheNight:
		return 2
	case prayer.TwilightAngle:
		return 3
	default:
		return 1
	}
}
