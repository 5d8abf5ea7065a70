package board

import (
	"encoding/json"
	"testing"
)

func TestApplication_TitleAndCompanyFallbacks(t *testing.T) {
	flat := Application{JobTitle: "Engineer"}
	if flat.Title() != "Engineer" || flat.Company() != "" {
		t.Fatalf("flat shape: title=%q company=%q", flat.Title(), flat.Company())
	}

	embedded := Application{Job: &Job{Title: "Designer", CompanyName: "Acme"}}
	if embedded.Title() != "Designer" || embedded.Company() != "Acme" {
		t.Fatalf("embedded shape: title=%q company=%q", embedded.Title(), embedded.Company())
	}
}

func TestJobList_AcceptsBothShapes(t *testing.T) {
	var bare jobList
	if err := json.Unmarshal([]byte(`[{"id":1}]`), &bare); err != nil {
		t.Fatalf("bare list: %v", err)
	}
	if len(bare) != 1 {
		t.Fatalf("bare list len = %d, want 1", len(bare))
	}

	var wrapped jobList
	if err := json.Unmarshal([]byte(`{"results":[{"id":1},{"id":2}]}`), &wrapped); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if len(wrapped) != 2 {
		t.Fatalf("envelope len = %d, want 2", len(wrapped))
	}

	var bad jobList
	if err := json.Unmarshal([]byte(`"nope"`), &bad); err == nil {
		t.Fatal("accepted a string payload, want error")
	}
}

func TestJob_PostedAt(t *testing.T) {
	j := Job{CreatedAt: "2026-01-15T09:30:00Z"}
	if j.PostedAt().IsZero() {
		t.Fatal("PostedAt returned zero for RFC3339 input")
	}
	if (Job{CreatedAt: "garbage"}).PostedAt() != (Job{}).PostedAt() {
		t.Fatal("unparseable created_at should come back zero")
	}
}
