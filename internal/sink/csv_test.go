package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/eventseeder/internal/event"
)

func sampleEvents() []event.Event {
	t0 := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	return []event.Event{
		{
			ID:        "acme-corp-web-app-commit-ab12f00",
			Type:      event.TypeCommit,
			Owner:     "acme-corp",
			OwnerType: event.OwnerOrganization,
			Repo:      "web-app",
			Member:    "alice",
			Timestamp: t0,
			Payload: event.CommitPayload{
				SHA:          "ab12f00",
				Message:      `Fix "quoting", bug`,
				Additions:    12,
				Deletions:    5,
				FilesChanged: 2,
			},
			CreatedAt: t0.Add(90 * time.Second),
		},
		{
			ID:        "bob-api-server-pr-17",
			Type:      event.TypePullRequest,
			Owner:     "bob",
			OwnerType: event.OwnerUser,
			Repo:      "api-server",
			Member:    "frank",
			Timestamp: t0.Add(time.Hour),
			Payload: event.PullRequestPayload{
				Number:       17,
				Title:        "Add tests",
				State:        "open",
				Additions:    120,
				Deletions:    40,
				FilesChanged: 6,
			},
			CreatedAt: t0.Add(time.Hour + 10*time.Second),
		},
		{
			ID:        "acme-corp-backend-deploy-9f31",
			Type:      event.TypeDeploy,
			Owner:     "acme-corp",
			OwnerType: event.OwnerOrganization,
			Repo:      "backend",
			Member:    "grace",
			Timestamp: t0.Add(2 * time.Hour),
			Payload: event.DeployPayload{
				ID:          "9f31",
				Environment: "staging",
				Status:      "pending",
				Ref:         "release/v1.0",
				SHA:         "77ac210",
			},
			CreatedAt: t0.Add(2*time.Hour + 3599*time.Second),
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	want := sampleEvents()

	if err := WriteFile(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}

	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID || g.Type != w.Type || g.Owner != w.Owner ||
			g.OwnerType != w.OwnerType || g.Repo != w.Repo || g.Member != w.Member {
			t.Errorf("event %d fields mismatch: %+v != %+v", i, g, w)
		}
		if !g.Timestamp.Equal(w.Timestamp) || !g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("event %d times mismatch: %s/%s != %s/%s",
				i, g.Timestamp, g.CreatedAt, w.Timestamp, w.CreatedAt)
		}
		if g.Payload != w.Payload {
			t.Errorf("event %d payload mismatch: %+v != %+v", i, g.Payload, w.Payload)
		}
	}
}

func TestWriteZeroEventsHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := WriteFile(path, nil); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimRight(string(raw), "\n"); got != strings.Join(columns, ",") {
		t.Errorf("expected header-only file, got %q", got)
	}

	events, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestReadRejectsBadHeader(t *testing.T) {
	if _, err := Read(strings.NewReader("a,b,c\n")); err == nil {
		t.Error("expected error for unexpected header")
	}
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Error("expected error for missing header")
	}
}

func TestWriteFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "events.csv")
	if err := WriteFile(path, sampleEvents()); err == nil {
		t.Error("expected error for unwritable path")
	}
}
