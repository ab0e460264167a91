package format

import "testing"

func TestEscapeNeutralizesMetacharacters(t *testing.T) {
	cases := []struct {
		name   string
		value  string
		expect string
	}{
		{"script tag", "<script>alert('x')</script>", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"},
		{"ampersand first", "a&b", "a&amp;b"},
		{"already escaped stays escaped", "&lt;", "&amp;lt;"},
		{"quotes", `say "hi"`, "say &quot;hi&quot;"},
		{"clean", "nginx", "nginx"},
	}

	for _, tc := range cases {
		if got := Escape(tc.value); got != tc.expect {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.expect, got)
		}
	}
}

func TestTimestamp(t *testing.T) {
	cases := []struct {
		name   string
		value  string
		expect string
	}{
		{"wire layout", "2026-08-29 10:30:00", "2026-08-29 10:30:00"},
		{"empty", "", "unknown time"},
		{"whitespace", "   ", "unknown time"},
		{"garbage", "not a time", "unknown time"},
	}

	for _, tc := range cases {
		if got := Timestamp(tc.value); got != tc.expect {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.expect, got)
		}
	}

	if got := Timestamp("2026-08-29T10:30:00Z"); got == "unknown time" {
		t.Fatalf("expected RFC 3339 input to parse, got %q", got)
	}
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		name   string
		cpu    float64
		memory float64
		expect Health
	}{
		{"nominal", 50, 50, HealthHealthy},
		{"cpu warning", 85, 50, HealthWarning},
		{"cpu critical", 95, 50, HealthCritical},
		{"memory critical", 50, 95, HealthCritical},
		{"boundary 80", 80, 80, HealthHealthy},
		{"boundary 90", 90, 10, HealthWarning},
		{"both elevated", 85, 92, HealthCritical},
	}

	for _, tc := range cases {
		if got := Classify(tc.cpu, tc.memory); got != tc.expect {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expect, got)
		}
	}
}

func TestLoad(t *testing.T) {
	if got := Load(map[string]float64{"1min": 1.234, "5min": 9}); got != "1.23" {
		t.Fatalf("expected 1.23, got %q", got)
	}
	if got := Load(nil); got != "0.00" {
		t.Fatalf("expected 0.00 for missing load, got %q", got)
	}
}

func TestBytes(t *testing.T) {
	cases := []struct {
		value  float64
		expect string
	}{
		{512, "512.00 B"},
		{2048, "2.00 KB"},
		{1048576, "1.00 MB"},
	}
	for _, tc := range cases {
		if got := Bytes(tc.value); got != tc.expect {
			t.Fatalf("Bytes(%v): expected %q, got %q", tc.value, tc.expect, got)
		}
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		seconds int
		expect  string
	}{
		{45, "45s"},
		{90, "1m30s"},
		{3720, "1h2m"},
	}
	for _, tc := range cases {
		if got := Duration(tc.seconds); got != tc.expect {
			t.Fatalf("Duration(%d): expected %q, got %q", tc.seconds, tc.expect, got)
		}
	}
}

func TestPID(t *testing.T) {
	if got := PID(0); got != "N/A" {
		t.Fatalf("expected N/A for pid 0, got %q", got)
	}
	if got := PID(1234); got != "1234" {
		t.Fatalf("expected 1234, got %q", got)
	}
}
