package features

// Entry describes one model input.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var descriptions = map[string]string{
	"lat":     "Latitude of the location. Important for understanding the regional climate patterns which affect rainfall.",
	"lon":     "Longitude of the location. Helps in identifying the geographical climate variations.",
	"omega_x": "Zonal component of the vertical velocity. Indicates the upward or downward movement of air which can affect precipitation.",
	"omega_y": "Meridional component of the vertical velocity. Similar to omega_x, but in the north-south direction.",
	"omega":   "Vertical velocity. Critical for understanding the movement of air masses and cloud formation, directly impacting rain.",
	"pr_wtr":  "Precipitable water. Measures the total atmospheric water vapor which is a key ingredient for rain.",
	"rhum_x":  "Zonal component of relative humidity. Indicates the moisture content in the air, which affects rain formation.",
	"rhum_y":  "Meridional component of relative humidity. Similar to rhum_x, but in the north-south direction.",
	"rhum":    "Relative humidity. Directly affects the likelihood of precipitation, as higher humidity can lead to cloud and rain formation.",
	"slp":     "Sea level pressure. Influences weather patterns and storm systems which can result in rain.",
	"tmp_x":   "Zonal component of temperature. Temperature variations can impact the formation of clouds and rain.",
	"tmp_y":   "Meridional component of temperature. Similar to tmp_x, but in the north-south direction.",
	"tmp":     "Temperature. Affects the evaporation and condensation processes that are crucial for rain formation.",
	"uwnd_x":  "Zonal component of the wind speed. Wind patterns affect moisture transport and cloud formation.",
	"uwnd_y":  "Meridional component of the wind speed. Similar to uwnd_x, but in the north-south direction.",
	"uwnd":    "Wind speed. Influences weather systems and the movement of air masses that bring rain.",
	"vwnd_x":  "Zonal component of the wind speed. Similar to uwnd_x, providing more detail on wind direction.",
	"vwnd_y":  "Meridional component of the wind speed. Similar to uwnd_y, providing more detail on wind direction.",
	"vwnd":    "Wind speed. Important for understanding the dynamics of the atmosphere which influence rain.",
}

// Glossary returns one entry per feature in Names order.
func Glossary() []Entry {
	entries := make([]Entry, 0, Count)
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Description: descriptions[name]})
	}
	return entries
}

// Describe returns the glossary text for a single feature.
func Describe(name string) (string, bool) {
	d, ok := descriptions[name]
	return d, ok
}

// Section is one numbered paragraph of the model explanation.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Explanation is the fixed text shown by the "Explain Rain Prediction" panel.
type Explanation struct {
	Intro    string    `json:"intro"`
	Sections []Section `json:"sections"`
	Summary  string    `json:"summary"`
}

// Explain returns the explanation of how the forest turns features into a
// rain estimate. Each call returns a fresh copy.
func Explain() Explanation {
	return Explanation{
		Intro: "The Random Forest model predicts rain by analyzing various atmospheric and geographical features. Here's a general explanation of how it works:",
		Sections: []Section{
			{
				Title: "Geographical Features",
				Body:  "Latitude and longitude provide the model with the location's position relative to weather systems and prevailing wind patterns. This information helps in understanding regional climate patterns that influence rain formation.",
			},
			{
				Title: "Atmospheric Variables",
				Body:  "Vertical velocities (omega_x, omega_y, omega) indicate the movement of air masses, which is crucial for cloud formation and precipitation. Precipitable water (pr_wtr) measures atmospheric moisture, essential for determining the potential for rain.",
			},
			{
				Title: "Temperature and Humidity",
				Body:  "Relative humidity (rhum_x, rhum_y, rhum) and temperature (tmp_x, tmp_y, tmp) influence the air's ability to hold moisture. Higher humidity and warmer temperatures increase the likelihood of cloud formation and rain.",
			},
			{
				Title: "Pressure and Wind Patterns",
				Body:  "Sea level pressure (slp) affects atmospheric stability and the likelihood of storm systems, influencing rain patterns. Wind speed and direction (uwnd_x, uwnd_y, uwnd, vwnd_x, vwnd_y, vwnd) impact moisture transport and cloud dynamics, which in turn affect rain intensity and distribution.",
			},
			{
				Title: "Modeling Process",
				Body:  "The Random Forest algorithm uses multiple decision trees to analyze these features collectively. Each tree evaluates different combinations of features to predict rain, and the final prediction is an aggregate of the predictions from all trees.",
			},
		},
		Summary: "By integrating these variables, the model provides a comprehensive assessment of the atmospheric conditions that contribute to rain prediction.",
	}
}
