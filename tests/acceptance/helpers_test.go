package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/linapteam/linap-api/internal/dto"
)

const testPassword = "Password123"

// register creates a user through the API and returns the issued tokens
// together with the register response cookies.
func (s *Suite) register(username, email string) (*dto.TokenResponse, []*http.Cookie) {
	reqBody := dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: testPassword,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "registration should succeed")

	var tokenResp dto.TokenResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&tokenResp))

	return &tokenResp, resp.Cookies()
}

// doJSON performs an authenticated JSON request. A nil body sends no payload,
// an empty token sends no Authorization header.
func (s *Suite) doJSON(method, path, token string, body any) *http.Response {
	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

// decode reads a JSON response body into out and closes the body
func (s *Suite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}
