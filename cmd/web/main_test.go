package main

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLandingPage(t *testing.T) {
	rec := httptest.NewRecorder()
	landingPage("play.example.com")(rec, httptest.NewRequest("GET", "/", nil))

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ssh -t play.example.com") {
		t.Error("page does not show the SSH address")
	}
	if strings.Contains(body, "{{.SSHHost}}") {
		t.Error("placeholder left in page")
	}
}
