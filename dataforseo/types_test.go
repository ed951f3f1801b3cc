package dataforseo

import (
	"encoding/json"
	"testing"
)

func TestFirstSeries(t *testing.T) {
	raw := `{
		"status_code": 20000,
		"tasks": [{
			"status_code": 20000,
			"result": [{
				"keywords": ["fidget spinner"],
				"items": [{
					"type": "dataforseo_trends_graph",
					"keywords": ["fidget spinner"],
					"data": [
						{"date_from": "2025-01-05", "date_to": "2025-01-11", "timestamp": 1736035200, "values": [42]},
						{"date_from": "2025-01-12", "date_to": "2025-01-18", "timestamp": 1736640000, "values": [null]}
					]
				}]
			}]
		}]
	}`

	var res ExploreResponse
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	series := res.FirstSeries()
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if series[0].Values[0] == nil || *series[0].Values[0] != 42 {
		t.Errorf("unexpected first value: %+v", series[0])
	}
	if series[1].Values[0] != nil {
		t.Errorf("expected null value to decode as nil, got %v", *series[1].Values[0])
	}
}

func TestFirstSeriesDegenerateResponses(t *testing.T) {
	tests := []struct {
		name string
		res  *ExploreResponse
	}{
		{"nil response", nil},
		{"no tasks", &ExploreResponse{}},
		{"no results", &ExploreResponse{Tasks: []Task{{}}}},
		{"no items", &ExploreResponse{Tasks: []Task{{Result: []TaskResult{{}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.FirstSeries(); got != nil {
				t.Errorf("expected nil series, got %v", got)
			}
		})
	}
}
