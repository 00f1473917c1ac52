package event

import (
	"encoding/json"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	payloads := []Payload{
		CommitPayload{SHA: "ab12f00", Message: "Fix typo", Additions: 12, Deletions: 5, FilesChanged: 2},
		PullRequestPayload{Number: 42, Title: "Add tests", State: "merged", Additions: 100, Deletions: 30, FilesChanged: 4},
		DeployPayload{ID: "f2c9", Environment: "production", Status: "success", Ref: "main", SHA: "0d34b1c"},
	}

	for _, p := range payloads {
		encoded, err := EncodePayload(p)
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := DecodePayload(p.Kind(), []byte(encoded))
		if err != nil {
			t.Fatal(err)
		}
		if decoded != p {
			t.Errorf("round trip mismatch for %s: %+v != %+v", p.Kind(), decoded, p)
		}
	}
}

func TestPayloadFieldNames(t *testing.T) {
	encoded, err := EncodePayload(CommitPayload{SHA: "abc1234", Message: "m", Additions: 1, Deletions: 2, FilesChanged: 3})
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(encoded), &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"sha", "message", "additions", "deletions", "files_changed"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing field %q in %s", key, encoded)
		}
	}
}

func TestDecodePayloadUnknownType(t *testing.T) {
	if _, err := DecodePayload("release", []byte(`{}`)); err == nil {
		t.Error("expected error for unknown event type")
	}
}
