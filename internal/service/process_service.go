package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/micbed86/FancyNote-sub000/global"
	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/code"
	"github.com/micbed86/FancyNote-sub000/pkg/llm"
	"github.com/micbed86/FancyNote-sub000/pkg/storage"
	"github.com/micbed86/FancyNote-sub000/pkg/workerpool"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultSystemPrompt = "You are an assistant that rewrites raw note material into a single clean, well-structured note. " +
	"Merge the note text, transcriptions and file contents into one coherent document. " +
	"Keep every piece of information, fix obvious transcription mistakes, and use markdown formatting."

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".flac": true,
	".webm": true,
	".aac":  true,
	".opus": true,
}

// TriggerProcess starts enrichment for a note and returns immediately.
// The note is flipped to processing before the acknowledgement so the
// client sees a consistent state right away.
func (s *Service) TriggerProcess(uid int64, req *dto.NoteProcessRequest) (*dto.ProcessAck, *code.Code) {
	processType := req.ProcessType
	if processType == "" {
		processType = dto.ProcessTypeFull
	}
	return s.trigger(uid, req.NoteID, processType, "")
}

// TriggerProcessUpdate re-runs enrichment over an already processed
// note with an extra user instruction.
func (s *Service) TriggerProcessUpdate(uid int64, req *dto.NoteProcessUpdateRequest) (*dto.ProcessAck, *code.Code) {
	return s.trigger(uid, req.NoteID, dto.ProcessTypeFull, req.Instruction)
}

func (s *Service) trigger(uid int64, noteID int64, processType, instruction string) (*dto.ProcessAck, *code.Code) {
	note, errCode := s.NoteGet(uid, noteID)
	if errCode != nil {
		return nil, errCode
	}

	if err := s.noteRepo.SetStatus(note.ID, uid, domain.StatusProcessing); err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	err := s.pool.SubmitAsync(context.Background(), func(context.Context) error {
		s.runPipeline(noteID, uid, processType, instruction)
		return nil
	})
	if err != nil {
		// undo the status flip so the note is not stuck in processing
		_ = s.noteRepo.SetStatus(note.ID, uid, note.ProcessingStatus)
		if errors.Is(err, workerpool.ErrWorkerPoolFull) {
			return nil, code.ErrorProcessBusy
		}
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	return &dto.ProcessAck{NoteID: noteID}, nil
}

// runPipeline executes the full enrichment flow. It never returns an
// error: fatal conditions end in an error status on the note plus a
// notification, a model failure degrades to the original text, and the
// temp directory is removed no matter what.
func (s *Service) runPipeline(noteID int64, uid int64, processType, instruction string) {
	start := time.Now()
	defer func() {
		pipelineDuration.Observe(time.Since(start).Seconds())
	}()
	defer func() {
		if r := recover(); r != nil {
			global.Log().Error("Service.runPipeline panic",
				zap.Int64("noteId", noteID),
				zap.Any("panic", r),
			)
			s.markFailure(noteID, uid, fmt.Sprintf("internal error: %v", r))
		}
	}()

	ctx := context.Background()

	user, err := s.userSettings(uid)
	if err != nil {
		s.markFailure(noteID, uid, err.Error())
		return
	}
	note, err := s.noteRepo.Get(noteID, uid)
	if err != nil || note == nil {
		s.markFailure(noteID, uid, "note not found")
		return
	}

	if err := os.MkdirAll(s.config.TempPath, os.ModePerm); err != nil {
		s.markFailure(noteID, uid, err.Error())
		return
	}
	tempDir, err := os.MkdirTemp(s.config.TempPath, fmt.Sprintf("note-%d-", noteID))
	if err != nil {
		s.markFailure(noteID, uid, err.Error())
		return
	}
	defer os.RemoveAll(tempDir)

	store, err := s.storageFactory()
	if err != nil {
		s.markFailure(noteID, uid, err.Error())
		return
	}
	if err := store.Connect(); err != nil {
		s.markFailure(noteID, uid, err.Error())
		return
	}
	defer store.Close()

	caller, transcriber := s.llmFactory(user.Settings)

	// voice recordings first, then audio-type files, sharing one
	// counter; every transcript is also stored as a text attachment
	files := append([]domain.Attachment{}, note.Files...)
	var transcriptions []string
	counter := 1
	for _, att := range note.VoiceNotes {
		if !att.IncludeInContext {
			continue
		}
		text := s.transcribeOne(ctx, store, transcriber, tempDir, att, counter, user.Settings.TranscribeLang)
		transcriptions = append(transcriptions, text)
		if artifact := s.storeTranscription(store, uid, counter, text); artifact != nil {
			files = append(files, *artifact)
		}
		counter++
	}

	var fileBlocks []fileBlock
	for _, att := range note.Files {
		if !att.IncludeInContext {
			continue
		}
		if audioExts[strings.ToLower(filepath.Ext(att.Name))] {
			text := s.transcribeOne(ctx, store, transcriber, tempDir, att, counter, user.Settings.TranscribeLang)
			transcriptions = append(transcriptions, text)
			if artifact := s.storeTranscription(store, uid, counter, text); artifact != nil {
				files = append(files, *artifact)
			}
			counter++
			continue
		}
		fileBlocks = append(fileBlocks, fileBlock{
			Name:    att.Name,
			Content: s.readTextFile(store, att),
		})
	}

	// model step; a fatal model error degrades to the original text
	// instead of failing the invocation
	content := note.Text
	var llmErr error
	if processType != dto.ProcessTypeNoAI {
		assembled := assembleContent(note.Text, transcriptions, fileBlocks, instruction)
		messages := []llm.Message{
			{Role: "system", Content: s.systemPrompt(user.Settings)},
			{Role: "user", Content: assembled, ImageURLs: s.imageURLs(uid, note)},
		}

		models := s.candidateModels(user.Settings)
		answer, err := llm.ChatWithFallback(ctx, s.countingCaller(caller), models, messages)
		if err != nil {
			global.Log().Error("Service.runPipeline model call failed",
				zap.Int64("noteId", noteID),
				zap.Strings("models", models),
				zap.Error(err),
			)
			llmErr = err
		} else {
			content = answer
		}
	}

	// first persistence pass: content, transcriptions, files and the
	// completed status land together, before any metadata work
	result := &domain.EnrichmentResult{
		Content:        content,
		Transcriptions: transcriptions,
		Files:          files,
	}
	if llmErr != nil {
		result.ProcessingError = llmErr.Error()
	}
	if err := s.noteRepo.UpdateProcessed(noteID, uid, result); err != nil {
		s.markFailure(noteID, uid, err.Error())
		return
	}

	// second pass: title and excerpt, only for untitled notes; each
	// field fails independently and never fails the run
	finalTitle := note.Title
	if note.NeedsMetadata() {
		source := content
		if strings.TrimSpace(source) == "" {
			source = strings.Join(transcriptions, "\n")
		}
		title := s.generateTitle(ctx, caller, user.Settings, source)
		excerpt := s.generateExcerpt(ctx, caller, user.Settings, source)
		if err := s.noteRepo.UpdateMetadata(noteID, uid, title, excerpt); err != nil {
			global.Log().Warn("Service.runPipeline metadata update failed",
				zap.Int64("noteId", noteID),
				zap.Error(err),
			)
		} else if title != "" {
			finalTitle = title
		}
	}

	if _, err := s.userRepo.DeductCredit(uid); err != nil {
		global.Log().Warn("Service.runPipeline credit deduction failed",
			zap.Int64("uid", uid),
			zap.Error(err),
		)
	}

	if llmErr != nil {
		s.notify(uid, noteID, domain.NotificationNoteProcessingError,
			fmt.Sprintf("Note %q was saved without AI structuring: %v", finalTitle, llmErr))
		pipelineRuns.WithLabelValues("degraded").Inc()
		return
	}
	s.notify(uid, noteID, domain.NotificationNoteProcessed,
		fmt.Sprintf("Note %q has been processed.", finalTitle))
	pipelineRuns.WithLabelValues("success").Inc()
}

// markFailure handles the fatal-to-invocation class: the note flips to
// the error state and the user gets an error notification.
func (s *Service) markFailure(noteID int64, uid int64, message string) {
	if err := s.noteRepo.UpdateProcessingError(noteID, uid, message); err != nil {
		global.Log().Error("Service.markFailure err",
			zap.Int64("noteId", noteID),
			zap.Error(err),
		)
	}
	s.notify(uid, noteID, domain.NotificationNoteProcessingError, message)
	pipelineRuns.WithLabelValues("error").Inc()
}

// transcribeOne downloads the attachment into the staging directory
// and transcribes it. Failures produce a numbered placeholder that
// carries the error message instead of aborting the run.
func (s *Service) transcribeOne(ctx context.Context, store storage.Storager, transcriber llm.Transcriber, tempDir string, att domain.Attachment, n int, lang string) string {
	localPath, err := s.stageFile(store, tempDir, att)
	if err == nil {
		var text string
		text, err = transcriber.Transcribe(ctx, localPath, lang)
		if err == nil {
			return text
		}
	}
	transcriptionFailures.Inc()
	global.Log().Warn("Service.transcribeOne err",
		zap.String("path", att.Path),
		zap.Error(err),
	)
	return fmt.Sprintf("[Transcription %d failed: %v]", n, err)
}

// storeTranscription persists one transcript as a standalone text
// attachment under the user's transcriptions namespace. Upload
// problems are logged and skipped.
func (s *Service) storeTranscription(store storage.Storager, uid int64, n int, text string) *domain.Attachment {
	pathKey := storage.PathKey(uid, "transcriptions", uuid.NewString()+".txt")
	if _, err := store.Upload(pathKey, strings.NewReader(text), "text/plain"); err != nil {
		global.Log().Warn("Service.storeTranscription err",
			zap.String("path", pathKey),
			zap.Error(err),
		)
		return nil
	}
	return &domain.Attachment{
		Path:        pathKey,
		Name:        fmt.Sprintf("transcription-%d.txt", n),
		Size:        int64(len(text)),
		ContentType: "text/plain",
		CreatedAt:   time.Now().Unix(),
	}
}

// stageFile copies one stored attachment to the temp directory.
func (s *Service) stageFile(store storage.Storager, tempDir string, att domain.Attachment) (string, error) {
	rc, err := store.Download(att.Path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	localPath := filepath.Join(tempDir, filepath.Base(att.Path))
	out, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return "", err
	}
	return localPath, nil
}

// readTextFile returns the attachment content when it is valid UTF-8
// text, a placeholder otherwise.
func (s *Service) readTextFile(store storage.Storager, att domain.Attachment) string {
	rc, err := store.Download(att.Path)
	if err != nil {
		return fmt.Sprintf("[File %q could not be read: %v]", att.Name, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Sprintf("[File %q could not be read: %v]", att.Name, err)
	}
	if !utf8.Valid(raw) {
		return fmt.Sprintf("[File %q is not readable text]", att.Name)
	}
	return string(raw)
}

type fileBlock struct {
	Name    string
	Content string
}

// assembleContent builds the delimiter-tagged model input in the fixed
// order: transcriptions, note text, file contents, instruction. Empty
// sections are left out entirely.
func assembleContent(noteText string, transcriptions []string, files []fileBlock, instruction string) string {
	var b strings.Builder

	for i, t := range transcriptions {
		fmt.Fprintf(&b, "--- TRANSCRIPTION %d ---\n%s\n\n", i+1, t)
	}

	if strings.TrimSpace(noteText) != "" {
		fmt.Fprintf(&b, "--- NOTE TEXT ---\n%s\n\n", noteText)
	}

	for i, f := range files {
		fmt.Fprintf(&b, "--- FILE %d: %s ---\n%s\n\n", i+1, f.Name, f.Content)
	}

	if strings.TrimSpace(instruction) != "" {
		fmt.Fprintf(&b, "--- INSTRUCTION ---\n%s\n", instruction)
	}

	return strings.TrimRight(b.String(), "\n")
}

// systemPrompt combines the user prompt with the mandatory output
// language clause.
func (s *Service) systemPrompt(settings domain.AiSettings) string {
	prompt := settings.SystemPrompt
	if strings.TrimSpace(prompt) == "" {
		prompt = defaultSystemPrompt
	}
	return prompt + "\n\nAlways write the note in " + s.targetLanguage(settings) + ", regardless of the input language."
}

func (s *Service) targetLanguage(settings domain.AiSettings) string {
	if settings.Language != "" {
		return settings.Language
	}
	return s.config.DefaultLanguage
}

// imageURLs builds token-bearing retrieval links the model provider
// can fetch without holding user credentials.
func (s *Service) imageURLs(uid int64, note *domain.Note) []string {
	var out []string
	for _, att := range note.Images {
		if !att.IncludeInContext {
			continue
		}
		token, err := s.tokenManager.GenerateFileToken(uid, att.Path)
		if err != nil {
			global.Log().Warn("Service.imageURLs token err",
				zap.String("path", att.Path),
				zap.Error(err),
			)
			continue
		}
		out = append(out, fmt.Sprintf("%s/api/file?path=%s&token=%s",
			strings.TrimRight(s.config.PublicHost, "/"),
			url.QueryEscape(att.Path),
			url.QueryEscape(token),
		))
	}
	return out
}

// generateTitle asks the model for a short title. An empty result
// means nothing usable came back; the caller keeps the prior value.
func (s *Service) generateTitle(ctx context.Context, caller llm.Caller, settings domain.AiSettings, source string) string {
	prompt := fmt.Sprintf(
		"Write a title of at most 6 words, in %s, for the note below. Reply with the title only.\n\n%s",
		s.targetLanguage(settings), source)
	return s.generateMetadataField(ctx, caller, settings, prompt, 6)
}

// generateExcerpt asks the model for a short summary, independently of
// the title call.
func (s *Service) generateExcerpt(ctx context.Context, caller llm.Caller, settings domain.AiSettings, source string) string {
	prompt := fmt.Sprintf(
		"Summarize the note below in at most 40 words, in %s. Reply with the summary only.\n\n%s",
		s.targetLanguage(settings), source)
	return s.generateMetadataField(ctx, caller, settings, prompt, 40)
}

func (s *Service) generateMetadataField(ctx context.Context, caller llm.Caller, settings domain.AiSettings, prompt string, maxWords int) string {
	messages := []llm.Message{
		{Role: "user", Content: prompt},
	}
	raw, err := llm.ChatWithFallback(ctx, s.countingCaller(caller), s.candidateModels(settings), messages)
	if err != nil {
		global.Log().Warn("Service.generateMetadataField err", zap.Error(err))
		return ""
	}
	return sanitizeMetadataField(raw, maxWords)
}

// sanitizeMetadataField trims the value, rejects junk answers and
// clamps the word count.
func sanitizeMetadataField(value string, maxWords int) string {
	value = strings.Trim(strings.TrimSpace(value), "\"'")
	if value == "" || strings.EqualFold(value, "null") || len(value) <= 1 {
		return ""
	}
	words := strings.Fields(value)
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " ")
}

// countingCaller wraps a Caller so fallback hops show up in metrics
// and every model call gets the configured timeout.
func (s *Service) countingCaller(caller llm.Caller) llm.Caller {
	return &meteredCaller{inner: caller, timeout: s.config.AI.RequestTimeout}
}

type meteredCaller struct {
	inner   llm.Caller
	timeout time.Duration
	calls   int
}

func (m *meteredCaller) Chat(ctx context.Context, model string, messages []llm.Message) (string, error) {
	if m.calls > 0 {
		modelFallbacks.Inc()
	}
	m.calls++

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	return m.inner.Chat(ctx, model, messages)
}
