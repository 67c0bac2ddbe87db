package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Transcriber turns recorded speech into text.
type Transcriber interface {
	// Transcribe returns the best transcript, or "" when nothing was recognised.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// CloudTranscriber transcribes short clips with Google Cloud Speech-to-Text.
type CloudTranscriber struct {
	client    *speech.Client
	recognize recognizeFunc
	language  string
	log       *zap.Logger
}

// NewCloudTranscriber connects to Cloud Speech. credentials may be a
// path or inline JSON; empty uses Application Default Credentials.
func NewCloudTranscriber(ctx context.Context, language, credentials string, log *zap.Logger) (*CloudTranscriber, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var opts []option.ClientOption
	if creds := strings.TrimSpace(credentials); creds != "" {
		if strings.HasPrefix(creds, "{") {
			opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
		} else {
			opts = append(opts, option.WithCredentialsFile(creds))
		}
	}

	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	t := &CloudTranscriber{
		client:   c,
		language: language,
		log:      log.Named("speech"),
	}
	t.recognize = func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return c.Recognize(ctx, req)
	}
	return t, nil
}

// Close releases the underlying connection.
func (t *CloudTranscriber) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}

// Transcribe implements Transcriber.
func (t *CloudTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	req := &speechpb.RecognizeRequest{
		Config: recognitionConfig(t.language, mimeType),
		Audio:  &speechpb.RecognitionAudio{AudioSource: &speechpb.RecognitionAudio_Content{Content: audio}},
	}

	resp, err := t.recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	text := bestTranscript(resp)
	t.log.Debug("transcribed", zap.Int("audio_bytes", len(audio)), zap.Int("chars", len(text)))
	return text, nil
}

// TranscribeFile reads an audio file and transcribes it, inferring the
// encoding from the file extension.
func TranscribeFile(ctx context.Context, t Transcriber, path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	return t.Transcribe(ctx, audio, mimeFromExt(path))
}

func recognitionConfig(language, mimeType string) *speechpb.RecognitionConfig {
	if language == "" {
		language = "en-US"
	}
	return &speechpb.RecognitionConfig{
		LanguageCode:               language,
		Encoding:                   inferEncoding(mimeType),
		EnableAutomaticPunctuation: true,
		MaxAlternatives:            1,
	}
}

func inferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mp3"), strings.Contains(m, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "ogg"), strings.Contains(m, "opus"):
		return speechpb.RecognitionConfig_OGG_OPUS
	case strings.Contains(m, "webm"):
		return speechpb.RecognitionConfig_WEBM_OPUS
	}
	return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
}

func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".flac":
		return "audio/flac"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg", ".opus":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	}
	return ""
}

// bestTranscript joins the top alternative of every result.
func bestTranscript(resp *speechpb.RecognizeResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		if s := strings.TrimSpace(r.Alternatives[0].Transcript); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
