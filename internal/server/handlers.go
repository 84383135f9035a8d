package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smokyabdulrahman/prayer-times/internal/moon"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

type methodResponse struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	FajrAngle    float64 `json:"fajr_angle"`
	IshaAngle    float64 `json:"isha_angle,omitempty"`
	IshaInterval int     `json:"isha_interval,omitempty"`
	Madhab       string  `json:"madhab"`
}

type dayResponse struct {
	Date    string            `json:"date"`
	Timings map[string]string `json:"timings"`
}

type timingsResponse struct {
	dayResponse
	Timezone  string  `json:"timezone"`
	Method    string  `json:"method"`
	Madhab    string  `json:"madhab"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Qibla     float64 `json:"qibla"`
}

type calendarResponse struct {
	Timezone string        `json:"timezone"`
	Method   string        `json:"method"`
	Days     []dayResponse `json:"days"`
}

type moonResponse struct {
	Time         time.Time `json:"time"`
	Phase        string    `json:"phase"`
	Emoji        string    `json:"emoji"`
	Illumination float64   `json:"illumination"`
	Altitude     float64   `json:"altitude"`
	Azimuth      float64   `json:"azimuth"`
	Distance     float64   `json:"distance_km"`
	Rise         string    `json:"rise,omitempty"`
	Set          string    `json:"set,omitempty"`
	AlwaysUp     bool      `json:"always_up"`
	AlwaysDown   bool      `json:"always_down"`
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// statusFor maps calculation errors to HTTP statuses.
func statusFor(err error) int {
	if errors.Is(err, prayer.ErrUnavailable) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *handler) methods(c *gin.Context) {
	out := make([]methodResponse, 0, len(prayer.Methods))
	for _, m := range prayer.Methods {
		if m == prayer.MethodOther {
			continue
		}
		p := m.Parameters()
		out = append(out, methodResponse{
			Key:          m.String(),
			Name:         m.Name(),
			FajrAngle:    p.FajrAngle,
			IshaAngle:    p.IshaAngle,
			IshaInterval: p.IshaInterval,
			Madhab:       p.Madhab.String(),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) timings(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	day, err := h.day(req, req.date)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, timingsResponse{
		dayResponse: day,
		Timezone:    req.loc.String(),
		Method:      req.params.Method.String(),
		Madhab:      req.params.Madhab.String(),
		Latitude:    req.coords.Latitude,
		Longitude:   req.coords.Longitude,
		Qibla:       prayer.Qibla(req.coords),
	})
}

func (h *handler) calendar(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	resp := calendarResponse{
		Timezone: req.loc.String(),
		Method:   req.params.Method.String(),
		Days:     make([]dayResponse, 0, req.calendar),
	}
	for i := 0; i < req.calendar; i++ {
		day, err := h.day(req, req.date.AddDate(0, 0, i))
		if err != nil {
			abort(c, statusFor(err), err)
			return
		}
		resp.Days = append(resp.Days, day)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) day(req *request, date time.Time) (dayResponse, error) {
	day, err := prayer.CalculateDay(req.coords, date, req.params)
	if err != nil {
		return dayResponse{}, err
	}
	prayers, err := day.Prayers(prayer.AllPrayerNames)
	if err != nil {
		return dayResponse{}, err
	}

	timings := make(map[string]string, len(prayers))
	for _, p := range prayer.In(prayers, req.loc) {
		timings[p.Name] = p.Time.Format(time.RFC3339)
	}
	return dayResponse{Date: date.Format("2006-01-02"), Timings: timings}, nil
}

func (h *handler) moon(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	at := h.now().In(req.loc)
	if req.dated {
		at = req.date
	}

	illum, err := moon.IlluminationAt(at)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	pos := moon.PositionAt(at, req.coords)
	times := moon.TimesFor(req.date, req.coords)

	resp := moonResponse{
		Time:         at,
		Phase:        illum.Name.String(),
		Emoji:        illum.Emoji(),
		Illumination: illum.Fraction,
		Altitude:     pos.AltitudeDegrees(),
		Azimuth:      pos.Bearing(),
		Distance:     pos.Distance,
		AlwaysUp:     times.AlwaysUp,
		AlwaysDown:   times.AlwaysDown,
	}
	if times.HasRise {
		resp.Rise = times.Rise.In(req.loc).Format(time.RFC3339)
	}
	if times.HasSet {
		resp.Set = times.Set.In(req.loc).Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) qibla(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"latitude":  req.coords.Latitude,
		"longitude": req.coords.Longitude,
		"bearing":   prayer.Qibla(req.coords),
	})
}
