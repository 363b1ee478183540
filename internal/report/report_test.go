package report

import (
	"strings"
	"testing"

	"github.com/climatrend/climatrend/internal/climate"
)

func TestBuildPrompt(t *testing.T) {
	trend := &climate.ForecastResult{SlopePerDecade: 0.28, RSquared: 0.61}
	f := Facts{
		StationName: "Seoul",
		Annual: []climate.AnnualAnomaly{
			{Year: 1961, AvgTemp: 11.2, Anomaly: -0.8},
			{Year: 2023, AvgTemp: 13.7, Anomaly: 1.7},
		},
		Decades: []climate.DecadeStats{
			{Label: "1960s", AvgTemp: 11.5, DiffFromFirst: 0, Years: 9},
			{Label: "2010s", AvgTemp: 12.9, DiffFromFirst: 1.4, Years: 10},
		},
		Trend: trend,
		Outlook: []climate.HorizonOutlook{
			{YearsAhead: 30, Year: 2053, AvgTemp: 14.2, Anomaly: 2.2, HeatwaveDays: 21},
		},
	}

	prompt := BuildPrompt(f)

	for _, want := range []string{
		"Station: Seoul",
		"1961-2023",
		"anomaly +1.70°C",
		"Decade 2010s",
		"+0.280°C/decade",
		"Projection +30y (2053)",
		"~21 heatwave days",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptEmptyFacts(t *testing.T) {
	prompt := BuildPrompt(Facts{StationName: "Seoul"})
	if !strings.Contains(prompt, "Station: Seoul") {
		t.Errorf("prompt missing station name:\n%s", prompt)
	}
	if strings.Contains(prompt, "Decade") || strings.Contains(prompt, "trend") {
		t.Errorf("empty facts should not render sections:\n%s", prompt)
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewGenerator(); err == nil {
		t.Fatal("want error without OPENAI_API_KEY")
	}
}
