package acceptance

import (
	"encoding/json"
	"net/http"
)

func (s *Suite) TestHealthCheck() {
	resp, err := http.Get(s.BaseURL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var health map[string]string
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&health))
	s.Equal("pass", health["status"])
}
