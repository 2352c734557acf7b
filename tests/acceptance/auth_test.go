package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	reqBody := dto.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: testPassword,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var tokenResp dto.TokenResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&tokenResp))

	s.NotEmpty(tokenResp.AccessToken)
	s.NotEmpty(tokenResp.RefreshToken)
	s.Equal("Bearer", tokenResp.TokenType)
	s.NotZero(tokenResp.ExpiresIn)
	s.Equal("testuser", tokenResp.User.Username)
	s.Equal("test@example.com", tokenResp.User.Email)
	s.NotEmpty(tokenResp.User.ID)

	s.NotEmpty(resp.Cookies(), "Should have refresh token cookie")
}

func (s *Suite) TestRegister_DuplicateUsername() {
	s.register("duplicate", "first@example.com")

	reqBody := dto.RegisterRequest{
		Username: "duplicate",
		Email:    "second@example.com",
		Password: testPassword,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Contains(errResp.Message, "username")
}

func (s *Suite) TestRegister_DuplicateEmail() {
	s.register("firstuser", "duplicate@example.com")

	reqBody := dto.RegisterRequest{
		Username: "seconduser",
		Email:    "duplicate@example.com",
		Password: testPassword,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	reqBody := dto.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password",
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_ByUsername() {
	s.register("loginuser", "login@example.com")

	resp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "loginuser",
		Password:   testPassword,
	})

	s.Equal(http.StatusOK, resp.StatusCode)

	var tokenResp dto.TokenResponse
	s.decode(resp, &tokenResp)
	s.NotEmpty(tokenResp.AccessToken)
	s.Equal("loginuser", tokenResp.User.Username)
}

func (s *Suite) TestLogin_ByEmail() {
	s.register("loginuser", "login@example.com")

	resp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "login@example.com",
		Password:   testPassword,
	})

	s.Equal(http.StatusOK, resp.StatusCode)

	var tokenResp dto.TokenResponse
	s.decode(resp, &tokenResp)
	s.Equal("login@example.com", tokenResp.User.Email)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.register("loginuser", "login@example.com")

	resp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "loginuser",
		Password:   "WrongPassword123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Bearer", resp.Header.Get("WWW-Authenticate"))
}

func (s *Suite) TestLogin_UnknownUser() {
	resp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "nobody",
		Password:   testPassword,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe() {
	tokens, _ := s.register("meuser", "me@example.com")

	resp := s.doJSON("GET", "/api/v1/users/me", tokens.AccessToken, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var user domain.User
	s.decode(resp, &user)
	s.Equal("meuser", user.Username)
	s.Equal("me@example.com", user.Email)
	s.True(user.IsActive)
	s.False(user.IsEmailVerified)
}

func (s *Suite) TestGetMe_NoToken() {
	resp := s.doJSON("GET", "/api/v1/users/me", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Bearer", resp.Header.Get("WWW-Authenticate"))
}

func (s *Suite) TestRefresh_RotatesToken() {
	_, cookies := s.register("refreshuser", "refresh@example.com")
	s.Require().NotEmpty(cookies)

	req, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/refresh", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var tokenResp dto.TokenResponse
	s.decode(resp, &tokenResp)
	s.NotEmpty(tokenResp.AccessToken)

	// The old refresh token is blacklisted after rotation
	req2, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/refresh", nil)
	for _, cookie := range cookies {
		req2.AddCookie(cookie)
	}

	resp2, err := http.DefaultClient.Do(req2)
	s.Require().NoError(err)
	defer resp2.Body.Close()

	s.Equal(http.StatusUnauthorized, resp2.StatusCode)
}

func (s *Suite) TestRefresh_InvalidToken() {
	resp := s.doJSON("POST", "/api/v1/auth/refresh", "", dto.RefreshRequest{
		RefreshToken: "not-a-real-token",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout() {
	tokens, cookies := s.register("logoutuser", "logout@example.com")

	req, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	// The revoked refresh token no longer works
	refreshReq, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/refresh", nil)
	for _, cookie := range cookies {
		refreshReq.AddCookie(cookie)
	}

	refreshResp, err := http.DefaultClient.Do(refreshReq)
	s.Require().NoError(err)
	defer refreshResp.Body.Close()

	s.Equal(http.StatusUnauthorized, refreshResp.StatusCode)
}

func (s *Suite) TestChangePassword() {
	tokens, _ := s.register("pwuser", "pw@example.com")

	resp := s.doJSON("PUT", "/api/v1/auth/password", tokens.AccessToken, dto.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "NewPassword456",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// Old password no longer works
	oldResp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "pwuser",
		Password:   testPassword,
	})
	defer oldResp.Body.Close()
	s.Equal(http.StatusUnauthorized, oldResp.StatusCode)

	// New password does
	newResp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "pwuser",
		Password:   "NewPassword456",
	})
	defer newResp.Body.Close()
	s.Equal(http.StatusOK, newResp.StatusCode)
}

func (s *Suite) TestChangePassword_WrongCurrent() {
	tokens, _ := s.register("pwuser", "pw@example.com")

	resp := s.doJSON("PUT", "/api/v1/auth/password", tokens.AccessToken, dto.ChangePasswordRequest{
		CurrentPassword: "NotMyPassword1",
		NewPassword:     "NewPassword456",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestDeactivatedUserCannotLogin() {
	tokens, _ := s.register("gone", "gone@example.com")

	resp := s.doJSON("DELETE", "/api/v1/users/me", tokens.AccessToken, nil)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// Correct credentials, inactive account
	loginResp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "gone",
		Password:   testPassword,
	})
	defer loginResp.Body.Close()

	s.Equal(http.StatusForbidden, loginResp.StatusCode)
}

func (s *Suite) TestDeactivateThenReactivate() {
	tokens, _ := s.register("returning", "returning@example.com")

	deactResp := s.doJSON("DELETE", "/api/v1/users/me", tokens.AccessToken, nil)
	deactResp.Body.Close()
	s.Equal(http.StatusOK, deactResp.StatusCode)

	loginResp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "returning",
		Password:   testPassword,
	})
	loginResp.Body.Close()
	s.Equal(http.StatusForbidden, loginResp.StatusCode)

	// The access token outlives the deactivation, so the user can undo it
	actResp := s.doJSON("PUT", "/api/v1/users/me/activate", tokens.AccessToken, nil)
	actResp.Body.Close()
	s.Equal(http.StatusOK, actResp.StatusCode)

	loginResp = s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "returning",
		Password:   testPassword,
	})
	defer loginResp.Body.Close()
	s.Equal(http.StatusOK, loginResp.StatusCode)
}

func (s *Suite) TestSessions_List() {
	tokens, _ := s.register("sessionuser", "sessions@example.com")

	// A second login opens a second session
	loginResp := s.doJSON("POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Identifier: "sessionuser",
		Password:   testPassword,
	})
	loginResp.Body.Close()
	s.Require().Equal(http.StatusOK, loginResp.StatusCode)

	resp := s.doJSON("GET", "/api/v1/auth/sessions", tokens.AccessToken, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var sessions []domain.Session
	s.decode(resp, &sessions)
	s.Len(sessions, 2)
}

func (s *Suite) TestPasswordReset_UnknownEmailSameResponse() {
	s.register("resetuser", "reset@example.com")

	known := s.doJSON("POST", "/api/v1/auth/password/reset", "", dto.PasswordResetRequest{
		Email: "reset@example.com",
	})
	unknown := s.doJSON("POST", "/api/v1/auth/password/reset", "", dto.PasswordResetRequest{
		Email: "nobody@example.com",
	})

	s.Equal(http.StatusOK, known.StatusCode)
	s.Equal(http.StatusOK, unknown.StatusCode)

	var knownResp, unknownResp dto.SuccessResponse
	s.decode(known, &knownResp)
	s.decode(unknown, &unknownResp)

	// Identical responses, otherwise the endpoint leaks registered emails
	s.Equal(knownResp.Message, unknownResp.Message)
}

func (s *Suite) TestPasswordResetConfirm_BogusToken() {
	resp := s.doJSON("POST", "/api/v1/auth/password/reset/confirm", "", dto.PasswordResetConfirmRequest{
		Token:       "bogus-token",
		NewPassword: "NewPassword456",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestEmailVerification_Request() {
	tokens, _ := s.register("verifyuser", "verify@example.com")

	resp := s.doJSON("POST", "/api/v1/auth/email/verify", tokens.AccessToken, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestEmailVerificationConfirm_BogusToken() {
	resp := s.doJSON("POST", "/api/v1/auth/email/verify/confirm", "", dto.EmailVerifyConfirmRequest{
		Token: "bogus-token",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
