package coordinator

import "testing"

func TestZoomFrameCount(t *testing.T) {
	tests := []struct {
		name     string
		zoom     zoomSettings
		expected uint
	}{
		{"Default leg", zoomSettings{RadiusStart: 2, RadiusEnd: 2.0 / 1024, RadiusStep: 2}, 10},
		{"Exact power of step", zoomSettings{RadiusStart: 8, RadiusEnd: 1, RadiusStep: 2}, 3},
		{"Partial last step rounds up", zoomSettings{RadiusStart: 2, RadiusEnd: 0.01, RadiusStep: 2}, 8},
		{"Equal radii still render one frame", zoomSettings{RadiusStart: 2, RadiusEnd: 2, RadiusStep: 2}, 1},
		{"Zooming out", zoomSettings{RadiusStart: 1, RadiusEnd: 20, RadiusStep: 3}, 3},
		{"Single step", zoomSettings{RadiusStart: 2, RadiusEnd: 1.5, RadiusStep: 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zoom.frameCount(); got != tt.expected {
				t.Errorf("Expected %d frames, got %d", tt.expected, got)
			}
		})
	}
}

func TestZoomSettingsVerify(t *testing.T) {
	tests := []struct {
		name     string
		zoom     zoomSettings
		expected zoomSettings
	}{
		{"Empty gets defaults", zoomSettings{}, zoomSettings{RadiusStart: 2, RadiusEnd: 2.0 / 1024, RadiusStep: 2}},
		{"Valid leg untouched", zoomSettings{RadiusStart: 1, RadiusEnd: 0.5, RadiusStep: 4}, zoomSettings{RadiusStart: 1, RadiusEnd: 0.5, RadiusStep: 4}},
		{"Step of one replaced", zoomSettings{RadiusStart: 1, RadiusEnd: 0.5, RadiusStep: 1}, zoomSettings{RadiusStart: 1, RadiusEnd: 0.5, RadiusStep: 2}},
		{"Negative end derived from start", zoomSettings{RadiusStart: 4, RadiusEnd: -1, RadiusStep: 2}, zoomSettings{RadiusStart: 4, RadiusEnd: 4.0 / 1024, RadiusStep: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zoom := tt.zoom
			if err := zoom.Verify(); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if zoom != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, zoom)
			}
		})
	}
}
