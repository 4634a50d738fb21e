package telegram

import "testing"

func TestSelectMediaPriorityOrder(t *testing.T) {
	t.Parallel()

	msg := &Message{
		Document: &Document{FileID: "doc-1", FileName: "report.pdf"},
		Photo: []PhotoSize{
			{FileID: "ph-s", FileSize: 100},
			{FileID: "ph-l", FileSize: 500},
			{FileID: "ph-m", FileSize: 300},
		},
	}
	ref := SelectMedia(msg)
	if ref == nil {
		t.Fatal("expected media")
	}
	if ref.Kind != MediaDocument || ref.FileID != "doc-1" {
		t.Fatalf("document should win over photo: %#v", ref)
	}
	if ref.FileName != "report.pdf" {
		t.Fatalf("unexpected file name: %q", ref.FileName)
	}
}

func TestSelectMediaVideoBeatsVoice(t *testing.T) {
	t.Parallel()

	msg := &Message{
		Video: &Video{FileID: "vid-1", FileName: "clip.mp4"},
		Voice: &Voice{FileID: "voi-1"},
	}
	ref := SelectMedia(msg)
	if ref == nil || ref.Kind != MediaVideo || ref.FileID != "vid-1" {
		t.Fatalf("video should win over voice: %#v", ref)
	}
}

func TestSelectMediaPicksLargestPhoto(t *testing.T) {
	t.Parallel()

	msg := &Message{
		Photo: []PhotoSize{
			{FileID: "ph-s", FileSize: 100},
			{FileID: "ph-l", FileSize: 500},
		},
	}
	ref := SelectMedia(msg)
	if ref == nil || ref.Kind != MediaPhoto {
		t.Fatalf("expected photo: %#v", ref)
	}
	if ref.FileID != "ph-l" {
		t.Fatalf("expected largest variant, got %s", ref.FileID)
	}
}

func TestSelectMediaPhotoWithoutSizesFallsBackToLast(t *testing.T) {
	t.Parallel()

	msg := &Message{
		Photo: []PhotoSize{
			{FileID: "ph-1"},
			{FileID: "ph-2"},
			{FileID: "ph-3"},
		},
	}
	ref := SelectMedia(msg)
	if ref == nil || ref.FileID != "ph-3" {
		t.Fatalf("expected last variant when sizes are absent: %#v", ref)
	}
}

func TestSelectMediaNoMedia(t *testing.T) {
	t.Parallel()

	if ref := SelectMedia(&Message{Text: "hi"}); ref != nil {
		t.Fatalf("expected nil for text-only message: %#v", ref)
	}
	if ref := SelectMedia(nil); ref != nil {
		t.Fatalf("expected nil for nil message: %#v", ref)
	}
}

func TestSelectMediaVoiceHasNoFileName(t *testing.T) {
	t.Parallel()

	ref := SelectMedia(&Message{Voice: &Voice{FileID: "voi-2"}})
	if ref == nil || ref.Kind != MediaVoice {
		t.Fatalf("expected voice: %#v", ref)
	}
	if ref.FileName != "" {
		t.Fatalf("voice carries no name: %q", ref.FileName)
	}
}
