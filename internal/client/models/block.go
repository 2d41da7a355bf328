package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentType classifies a content block inside a note.
type ContentType string

const (
	ContentTypeText      ContentType = "text"
	ContentTypeChecklist ContentType = "checklist"
	ContentTypeImage     ContentType = "image"
	ContentTypeAudio     ContentType = "audio"
)

// Bucket names the remote storage namespace for an attachment kind.
type Bucket string

const (
	BucketImages Bucket = "images"
	BucketAudios Bucket = "audios"
)

var ErrUnknownContentType = errors.New("unknown content type")

// ContentBlock is one visual/semantic unit inside a note's content sequence.
// Props is a closed tagged union: exactly one concrete type per ContentType.
type ContentBlock struct {
	ID    string
	Type  ContentType
	Props BlockProps
}

// BlockProps is implemented by the per-type payload structs only.
type BlockProps interface {
	blockProps()
}

// TextProps is the payload of a text block.
type TextProps struct {
	Text        string `json:"text"`
	Placeholder string `json:"placeholder,omitempty"`
	Focus       bool   `json:"focus,omitempty"`
}

func (TextProps) blockProps() {}

// ChecklistItem is a single entry of a checklist block.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
	Focus   bool   `json:"focus,omitempty"`
}

// ChecklistProps is the payload of a checklist block.
type ChecklistProps struct {
	Items []ChecklistItem `json:"items"`
}

func (ChecklistProps) blockProps() {}

// FileProps is the payload shared by the attachment kinds (image, audio).
//
// Filename doubles as the cache/sync key: it is empty until the underlying
// file has been staged into the local cache, at which point it is assigned
// as "<blockID>+<original basename>". UploadedAt is nil until the file has
// been pushed to remote storage at least once; a nil UploadedAt marks the
// block as pending upload.
type FileProps struct {
	URI        string     `json:"uri,omitempty"`
	Filename   string     `json:"filename,omitempty"`
	Title      string     `json:"title,omitempty"`
	Duration   float64    `json:"duration,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

func (FileProps) blockProps() {}

// NewTextBlock returns a text block with a fresh id.
func NewTextBlock(text, placeholder string) ContentBlock {
	return ContentBlock{
		ID:   uuid.NewString(),
		Type: ContentTypeText,
		Props: TextProps{
			Text:        text,
			Placeholder: placeholder,
		},
	}
}

// NewChecklistBlock returns a checklist block with one empty item.
func NewChecklistBlock() ContentBlock {
	return ContentBlock{
		ID:   uuid.NewString(),
		Type: ContentTypeChecklist,
		Props: ChecklistProps{
			Items: []ChecklistItem{{ID: uuid.NewString()}},
		},
	}
}

// NewImageBlock returns an image block referencing a device-local file.
func NewImageBlock(uri string) ContentBlock {
	now := Now()
	return ContentBlock{
		ID:   uuid.NewString(),
		Type: ContentTypeImage,
		Props: FileProps{
			URI:       uri,
			CreatedAt: &now,
		},
	}
}

// NewAudioBlock returns an audio block referencing a device-local recording.
func NewAudioBlock(uri, title string, duration float64) ContentBlock {
	now := Now()
	return ContentBlock{
		ID:   uuid.NewString(),
		Type: ContentTypeAudio,
		Props: FileProps{
			URI:       uri,
			Title:     title,
			Duration:  duration,
			CreatedAt: &now,
		},
	}
}

// IsAttachment reports whether the block carries a file payload.
func (b ContentBlock) IsAttachment() bool {
	return b.Type == ContentTypeImage || b.Type == ContentTypeAudio
}

// Bucket returns the remote storage namespace for an attachment block.
// ok is false for non-attachment blocks.
func (b ContentBlock) Bucket() (Bucket, bool) {
	switch b.Type {
	case ContentTypeImage:
		return BucketImages, true
	case ContentTypeAudio:
		return BucketAudios, true
	default:
		return "", false
	}
}

// File returns a copy of the block's file payload. ok is false when the block
// is not an attachment.
func (b ContentBlock) File() (FileProps, bool) {
	fp, ok := b.Props.(FileProps)
	return fp, ok
}

// SetFile replaces the block's file payload. It panics on non-attachment
// blocks, which indicates a programming error.
func (b *ContentBlock) SetFile(fp FileProps) {
	if !b.IsAttachment() {
		panic("models: SetFile on non-attachment block")
	}
	b.Props = fp
}

// Clone returns a deep copy of the block.
func (b ContentBlock) Clone() ContentBlock {
	out := b
	if cp, ok := b.Props.(ChecklistProps); ok {
		items := make([]ChecklistItem, len(cp.Items))
		copy(items, cp.Items)
		out.Props = ChecklistProps{Items: items}
	}
	return out
}

type blockJSON struct {
	ID    string          `json:"id"`
	Type  ContentType     `json:"type"`
	Props json.RawMessage `json:"props"`
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	props, err := json.Marshal(b.Props)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blockJSON{ID: b.ID, Type: b.Type, Props: props})
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.ID = raw.ID
	b.Type = raw.Type

	switch raw.Type {
	case ContentTypeText:
		var p TextProps
		if err := json.Unmarshal(raw.Props, &p); err != nil {
			return err
		}
		b.Props = p
	case ContentTypeChecklist:
		var p ChecklistProps
		if err := json.Unmarshal(raw.Props, &p); err != nil {
			return err
		}
		b.Props = p
	case ContentTypeImage, ContentTypeAudio:
		var p FileProps
		if err := json.Unmarshal(raw.Props, &p); err != nil {
			return err
		}
		b.Props = p
	default:
		return fmt.Errorf("%w: %q", ErrUnknownContentType, raw.Type)
	}
	return nil
}
