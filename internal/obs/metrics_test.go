package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                            "/",
		"/metrics":                    "/metrics",
		"/v1/teams/01ABC":             "/v1/teams/:id",
		"/v1/players/01ABC":           "/v1/players/:id",
		"/v1/matches/01ABC/result":    "/v1/matches/:id/result",
		"/v1/me/favorites/01ABC":      "/v1/me/favorites/:id",
		"/v1/teams":                   "/v1/teams",
		"/v1/players?name=ar&sort=id": "/v1/players",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
