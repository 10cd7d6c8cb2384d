package mailer_test

import (
	"strings"
	"testing"

	"github.com/braincachehq/braincache/internal/app/system/mailer"
)

func TestBuildLoginCodeEmail(t *testing.T) {
	e := mailer.BuildLoginCodeEmail(mailer.LoginCodeData{
		SiteName:  "BrainCache",
		Code:      "123456",
		ExpiresIn: "10 minutes",
	})

	if e.Subject != "Your BrainCache login code" {
		t.Errorf("subject: got %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "123456") {
		t.Error("text body missing code")
	}
	if !strings.Contains(e.TextBody, "10 minutes") {
		t.Error("text body missing expiry")
	}
	if !strings.Contains(e.HTMLBody, "123456") {
		t.Error("HTML body missing code")
	}
	if !strings.Contains(e.HTMLBody, "BrainCache") {
		t.Error("HTML body missing site name")
	}
}

func TestBuildGrantNoticeEmail(t *testing.T) {
	e := mailer.BuildGrantNoticeEmail(mailer.GrantNoticeData{
		SiteName:     "BrainCache",
		OwnerName:    "Ada Lovelace",
		ResourceName: "Research Papers",
		ResourceKind: "space",
		Permission:   "read-write",
		OpenLink:     "http://localhost:3000/spaces/abc",
	})

	if e.Subject != "Ada Lovelace shared a space with you on BrainCache" {
		t.Errorf("subject: got %q", e.Subject)
	}
	for _, want := range []string{"Ada Lovelace", "Research Papers", "read-write"} {
		if !strings.Contains(e.TextBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
	if !strings.Contains(e.HTMLBody, "http://localhost:3000/spaces/abc") {
		t.Error("HTML body missing open link")
	}
}

func TestBuildGrantNoticeEmail_EscapesHTML(t *testing.T) {
	e := mailer.BuildGrantNoticeEmail(mailer.GrantNoticeData{
		SiteName:     "BrainCache",
		OwnerName:    "<script>alert(1)</script>",
		ResourceName: "Papers",
		ResourceKind: "space",
		Permission:   "read",
		OpenLink:     "http://localhost:3000/spaces/abc",
	})
	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("owner name not escaped in HTML body")
	}
}
