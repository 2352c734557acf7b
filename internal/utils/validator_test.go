package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"user+tag@example.co",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("Expected %q to be a valid email", email)
		}
	}

	invalid := []string{
		"",
		"plainstring",
		"@example.com",
		"user@",
		"user@example",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("Expected %q to be an invalid email", email)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "user_42", "first.last", "with-dash"}
	for _, username := range valid {
		if !ValidateUsername(username) {
			t.Errorf("Expected %q to be a valid username", username)
		}
	}

	invalid := []string{"", "ab", "has space", "emoji😀name", "way@bad"}
	for _, username := range invalid {
		if ValidateUsername(username) {
			t.Errorf("Expected %q to be an invalid username", username)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{"Password1", "Str0ngEnough", "Xy1aaaaa"}
	for _, password := range valid {
		if !ValidatePassword(password) {
			t.Errorf("Expected %q to be a valid password", password)
		}
	}

	invalid := []string{
		"short1A",       // too short
		"alllowercase1", // no uppercase
		"ALLUPPERCASE1", // no lowercase
		"NoDigitsHere",  // no number
	}
	for _, password := range invalid {
		if ValidatePassword(password) {
			t.Errorf("Expected %q to be an invalid password", password)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	if got := SanitizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Errorf("Expected 'user@example.com', got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":          "hello-world",
		"  Trim Me  ":          "trim-me",
		"Already-a-slug":       "already-a-slug",
		"Special! Chars?":      "special-chars",
		"Multiple   Spaces":    "multiple-spaces",
		"--leading-trailing--": "leading-trailing",
	}

	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}
