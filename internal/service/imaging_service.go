package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"medicsense-client/internal/config"
	"medicsense-client/internal/constant"
	"medicsense-client/internal/dto"
	"medicsense-client/internal/model"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/pkg/api"
)

// ImagingService handles the two image flows: the structured injury
// analysis (base64 data URL) and the free-form image analysis (multipart
// upload). Both validate the file locally before any bytes move.
type ImagingService struct {
	client     *api.Client
	session    *SessionService
	transcript *TranscriptService
	notifier   *NotifierService
	upload     config.UploadConfig
	logger     logger.ILogger
}

func NewImagingService(
	client *api.Client,
	session *SessionService,
	transcript *TranscriptService,
	notifier *NotifierService,
	upload config.UploadConfig,
	log logger.ILogger,
) *ImagingService {
	return &ImagingService{
		client:     client,
		session:    session,
		transcript: transcript,
		notifier:   notifier,
		upload:     upload,
		logger:     log,
	}
}

// AnalyzeInjury reads the image, ships it as a data URL and returns the
// structured assessment. The upload and the result both land in the
// transcript so the conversation stays a complete record.
func (s *ImagingService) AnalyzeInjury(ctx context.Context, filePath, notes string) (*dto.AnalyzeInjuryImageResponse, error) {
	mime, data, err := s.readValidated(filePath)
	if err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}

	if _, err := s.transcript.Append(ctx, Entry{
		Role:     constant.TranscriptRoleUser,
		Content:  "📷 Uploaded an injury photo" + notesSuffix(notes),
		Metadata: metadataWithContext(constant.ContextImageUpload, filePath),
	}); err != nil {
		return nil, err
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
	resp, err := s.client.AnalyzeInjuryImage(ctx, dto.AnalyzeInjuryImageRequest{
		Image: dataURL,
		Notes: strings.TrimSpace(notes),
	})
	if err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}

	if _, err := s.transcript.Append(ctx, Entry{
		Role:     constant.TranscriptRoleAssistant,
		Content:  formatInjuryReport(resp),
		Metadata: metadataWithContext(constant.ContextImageAnalysis, filePath),
	}); err != nil {
		return nil, err
	}

	if constant.ParseSeverity(resp.Severity).IsEmergency() {
		s.notifier.ShowEmergency(EmergencyAlertMessage)
	}

	return resp, nil
}

// AnalyzeImage runs the free-form multipart flow.
func (s *ImagingService) AnalyzeImage(ctx context.Context, filePath string) (*dto.AnalyzeImageResponse, error) {
	if _, _, err := s.readValidated(filePath); err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}

	userID, err := s.session.EffectiveUserID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.transcript.Append(ctx, Entry{
		Role:     constant.TranscriptRoleUser,
		Content:  "📷 Uploaded a medical image",
		Metadata: metadataWithContext(constant.ContextImageUpload, filePath),
	}); err != nil {
		return nil, err
	}

	resp, err := s.client.AnalyzeImage(ctx, filePath, userID)
	if err != nil {
		s.notifier.NotifyError(err)
		return nil, err
	}

	if _, err := s.transcript.Append(ctx, Entry{
		Role:     constant.TranscriptRoleAssistant,
		Content:  resp.Text(),
		Metadata: metadataWithContext(constant.ContextImageAnalysis, filePath),
	}); err != nil {
		return nil, err
	}

	return resp, nil
}

// readValidated checks size and format, then loads the file.
func (s *ImagingService) readValidated(filePath string) (mime string, data []byte, err error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", nil, validationErr("image", "Could not open the image file")
	}
	mime, err = validateImageFile(filePath, info.Size(), s.upload.MaxFileSize, s.upload.SupportedFormats)
	if err != nil {
		return "", nil, err
	}
	data, err = os.ReadFile(filePath)
	if err != nil {
		return "", nil, validationErr("image", "Could not read the image file")
	}
	return mime, data, nil
}

func formatInjuryReport(resp *dto.AnalyzeInjuryImageResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Injury assessment: %s (severity: %s, confidence: %.0f%%)\n\n", resp.InjuryType, resp.Severity, resp.Confidence*100)
	if resp.Description != "" {
		b.WriteString(resp.Description + "\n")
	}
	writeSection(&b, "What to do", resp.CureSteps)
	writeSection(&b, "Warning signs", resp.WarningSigns)
	writeSection(&b, "Do NOT", resp.DoNot)
	writeSection(&b, "Possible conditions", resp.PossibleConditions)
	if resp.MedicalAdvice != "" {
		b.WriteString("\nMedical advice: " + resp.MedicalAdvice + "\n")
	}
	if resp.RecommendedSpecialist != "" {
		b.WriteString("Recommended specialist: " + resp.RecommendedSpecialist + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + title + ":\n")
	for _, item := range items {
		b.WriteString("  • " + item + "\n")
	}
}

func notesSuffix(notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return ""
	}
	return ": " + notes
}

func metadataWithContext(context, imageRef string) model.EntryMetadata {
	return model.EntryMetadata{Context: context, ImageRef: imageRef}
}
