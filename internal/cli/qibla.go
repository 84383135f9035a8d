package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/display"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

func newQiblaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qibla",
		Short: "Show the qibla direction",
		Long:  "Show the direction of the Kaaba in Makkah as degrees clockwise from true north.",
		Args:  cobra.NoArgs,
		RunE:  runQibla,
	}
}

type qiblaJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Bearing   float64 `json:"bearing"`
	Compass   string  `json:"compass"`
}

func runQibla(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	bearing := prayer.Qibla(s.loc.Coords)
	out := cmd.OutOrStdout()

	if FlagJSON {
		return writeJSON(out, qiblaJSON{
			Latitude:  s.loc.Coords.Latitude,
			Longitude: s.loc.Coords.Longitude,
			Bearing:   bearing,
			Compass:   compassPoint(bearing),
		})
	}

	fmt.Fprintf(out, "  %s\n", s.locationLabel())
	fmt.Fprintf(out, "  Qibla: %s %s\n", display.Accent(fmt.Sprintf("%.2f°", bearing)), compassPoint(bearing))
	return nil
}

var compassPoints = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// compassPoint names the 16-wind direction of a bearing in degrees.
func compassPoint(bearing float64) string {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	return compassPoints[int(math.Round(b/22.5))%len(compassPoints)]
}
