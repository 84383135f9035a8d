package server

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/prayer-times/internal/astro"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

const maxCalendarDays = 31

// request is the parsed query common to every /v1 endpoint.
type request struct {
	coords   astro.Coordinates
	date     time.Time // midnight in loc
	dated    bool      // date came from the query
	loc      *time.Location
	params   prayer.Parameters
	calendar int
}

func (h *handler) parseRequest(c *gin.Context) (*request, error) {
	req := &request{loc: h.location, params: h.defaults, calendar: 7}

	lat, err := requiredFloat(c, "latitude")
	if err != nil {
		return nil, err
	}
	lon, err := requiredFloat(c, "longitude")
	if err != nil {
		return nil, err
	}
	req.coords = astro.Coordinates{Latitude: lat, Longitude: lon}
	if err := req.coords.Validate(); err != nil {
		return nil, err
	}

	if tz := c.Query("timezone"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q", tz)
		}
		req.loc = loc
	}

	now := h.now().In(req.loc)
	req.date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, req.loc)
	if d := c.Query("date"); d != "" {
		date, err := time.ParseInLocation("2006-01-02", d, req.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", d)
		}
		req.date = date
		req.dated = true
	}

	if m := c.Query("method"); m != "" {
		method, err := prayer.ParseMethod(m)
		if err != nil {
			return nil, err
		}
		if method == prayer.MethodOther {
			return nil, errors.New("method \"other\" needs custom angles, which the API does not accept")
		}
		req.params = method.Parameters()
	}
	if m := c.Query("madhab"); m != "" {
		madhab, err := prayer.ParseMadhab(m)
		if err != nil {
			return nil, err
		}
		req.params.Madhab = madhab
	}
	if r := c.Query("high_latitude_rule"); r != "" {
		rule, err := prayer.ParseHighLatitudeRule(r)
		if err != nil {
			return nil, err
		}
		req.params.HighLatitudeRule = rule
	}

	if d := c.Query("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 || n > maxCalendarDays {
			return nil, fmt.Errorf("invalid days %q: must be between 1 and %d", d, maxCalendarDays)
		}
		req.calendar = n
	}

	return req, nil
}

func requiredFloat(c *gin.Context, key string) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
