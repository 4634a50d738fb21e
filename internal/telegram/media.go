package telegram

// MediaKind identifies which attachment field of a message a MediaRef came from.
type MediaKind string

const (
	MediaDocument MediaKind = "document"
	MediaVideo    MediaKind = "video"
	MediaAudio    MediaKind = "audio"
	MediaVoice    MediaKind = "voice"
	MediaPhoto    MediaKind = "photo"
)

// MediaRef is the single attachment selected from a message. FileName is
// empty for kinds that carry no name (voice, photo).
type MediaRef struct {
	Kind     MediaKind
	FileID   string
	FileName string
}

// SelectMedia picks the one attachment the relay will link, in fixed
// priority order: document, video, audio, voice, photo. The first present
// field wins even when others are also set. Returns nil when the message
// carries no media.
func SelectMedia(msg *Message) *MediaRef {
	if msg == nil {
		return nil
	}
	switch {
	case msg.Document != nil:
		return &MediaRef{Kind: MediaDocument, FileID: msg.Document.FileID, FileName: msg.Document.FileName}
	case msg.Video != nil:
		return &MediaRef{Kind: MediaVideo, FileID: msg.Video.FileID, FileName: msg.Video.FileName}
	case msg.Audio != nil:
		return &MediaRef{Kind: MediaAudio, FileID: msg.Audio.FileID, FileName: msg.Audio.FileName}
	case msg.Voice != nil:
		return &MediaRef{Kind: MediaVoice, FileID: msg.Voice.FileID}
	case len(msg.Photo) > 0:
		best := pickLargestPhoto(msg.Photo)
		return &MediaRef{Kind: MediaPhoto, FileID: best.FileID}
	default:
		return nil
	}
}

// pickLargestPhoto selects the variant with the largest file_size. The API
// sends variants in ascending resolution by convention but that order is not
// guaranteed, so when no variant reports a size the last element is used.
func pickLargestPhoto(items []PhotoSize) PhotoSize {
	best := items[len(items)-1]
	var bestSize int64
	for _, item := range items {
		if item.FileSize > bestSize {
			bestSize = item.FileSize
			best = item
		}
	}
	return best
}
