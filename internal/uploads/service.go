package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/brand-ad-studio/internal/db"
	"github.com/jonathan/brand-ad-studio/internal/llm"
	"github.com/jonathan/brand-ad-studio/internal/logger"
	"github.com/jonathan/brand-ad-studio/internal/storage"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// MaxFileSize bounds a guideline PDF
const MaxFileSize = 20 << 20

var (
	ErrFileTooLarge = errors.New("guideline file exceeds 20MB")
	ErrNotPDF       = errors.New("guideline file must be a PDF")
	ErrEmptyFile    = errors.New("guideline file is empty")
)

// Store is the persistence the workflow writes to
type Store interface {
	GetBrand(ctx context.Context, id uuid.UUID) (*types.Brand, error)
	SaveGuideline(ctx context.Context, g *types.BrandGuideline) (*types.BrandGuideline, error)
	CreateAsset(ctx context.Context, a *types.Asset) (*types.Asset, error)
}

// GuidelineParser turns extracted text into structured guidelines
type GuidelineParser interface {
	Parse(ctx context.Context, text string) *types.ParsedGuideline
}

// Service uploads a guideline PDF, extracts and parses it, and saves the result
type Service struct {
	store     Store
	objects   storage.ObjectStore
	extractor llm.Extractor
	parser    GuidelineParser
	tracker   Tracker
	log       *logger.Logger
}

// NewService wires the workflow
func NewService(store Store, objects storage.ObjectStore, extractor llm.Extractor, parser GuidelineParser, tracker Tracker, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:     store,
		objects:   objects,
		extractor: extractor,
		parser:    parser,
		tracker:   tracker,
		log:       log.With("service", "uploads"),
	}
}

// Progress returns the tracked progress of an upload
func (s *Service) Progress(ctx context.Context, uploadID string) (*types.UploadProgress, error) {
	return s.tracker.Get(ctx, uploadID)
}

// UploadGuideline runs the whole workflow synchronously and returns the saved guideline
func (s *Service) UploadGuideline(ctx context.Context, brandID uuid.UUID, fileName string, r io.Reader, size int64) (*types.BrandGuideline, error) {
	data, err := readFile(r, size)
	if err != nil {
		return nil, err
	}
	id, err := s.begin(ctx, brandID, fileName, data)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, id, brandID, fileName, data)
}

// StartUpload validates the file, registers the upload and processes it in the
// background. Callers poll Progress with the returned id.
func (s *Service) StartUpload(ctx context.Context, brandID uuid.UUID, fileName string, r io.Reader, size int64) (string, error) {
	data, err := readFile(r, size)
	if err != nil {
		return "", err
	}
	id, err := s.begin(ctx, brandID, fileName, data)
	if err != nil {
		return "", err
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		if _, err := s.run(bg, id, brandID, fileName, data); err != nil {
			s.log.Warn("background upload failed", "upload_id", id, "error", err)
		}
	}()
	return id, nil
}

func readFile(r io.Reader, size int64) ([]byte, error) {
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}

func (s *Service) begin(ctx context.Context, brandID uuid.UUID, fileName string, data []byte) (string, error) {
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") && !bytes.HasPrefix(data, []byte("%PDF")) {
		return "", ErrNotPDF
	}
	brand, err := s.store.GetBrand(ctx, brandID)
	if err != nil {
		return "", err
	}
	if brand == nil {
		return "", db.ErrBrandNotFound
	}

	id := uuid.NewString()
	if err := s.tracker.Start(ctx, types.UploadProgress{ID: id, BrandID: brandID.String(), FileName: fileName}); err != nil {
		return "", err
	}
	s.log.Info("upload started", "upload_id", id, "brand_id", brandID, "file", fileName, "bytes", len(data))
	return id, nil
}

func (s *Service) run(ctx context.Context, id string, brandID uuid.UUID, fileName string, data []byte) (*types.BrandGuideline, error) {
	saved, err := s.process(ctx, id, brandID, fileName, data)
	if err != nil {
		if _, terr := s.tracker.Update(ctx, id, types.UploadError, 0, err.Error()); terr != nil {
			s.log.Warn("failed to record upload error", "upload_id", id, "error", terr)
		}
		s.log.Error("upload failed", "upload_id", id, "error", err)
		return nil, err
	}
	if _, err := s.tracker.Update(ctx, id, types.UploadComplete, 100, ""); err != nil {
		return nil, err
	}
	s.log.Info("upload complete", "upload_id", id, "version", saved.Version)
	return saved, nil
}

func (s *Service) process(ctx context.Context, id string, brandID uuid.UUID, fileName string, data []byte) (*types.BrandGuideline, error) {
	key := storage.GuidelineKey(brandID, fileName)
	obj, err := s.objects.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), func(percent int) {
		if _, err := s.tracker.Update(ctx, id, types.UploadUploading, percent, ""); err != nil {
			s.log.Debug("progress update dropped", "upload_id", id, "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store guideline file: %w", err)
	}

	if _, err := s.tracker.Update(ctx, id, types.UploadProcessing, 100, ""); err != nil {
		return nil, err
	}

	text, err := s.extractor.ExtractText(ctx, bytes.NewReader(data), fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract guideline text: %w", err)
	}
	parsed := s.parser.Parse(ctx, text)

	if parsed.Guidelines.ImageryStyle == "" {
		summary, err := s.extractor.SummarizeDesign(ctx, bytes.NewReader(data), fileName)
		if err != nil {
			s.log.Warn("design summary failed", "upload_id", id, "error", err)
		} else {
			parsed.Guidelines.ImageryStyle = strings.TrimSpace(summary)
		}
	}

	g := &types.BrandGuideline{
		BrandID:       brandID,
		SourcePDFURL:  obj.URL,
		SourceObject:  obj.Key,
		ExtractedText: text,
	}
	g.Apply(parsed)

	saved, err := s.store.SaveGuideline(ctx, g)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.CreateAsset(ctx, &types.Asset{
		BrandID: brandID,
		Kind:    types.AssetGuideline,
		Name:    fileName,
		URL:     obj.URL,
		Content: text,
	}); err != nil {
		return nil, err
	}
	return saved, nil
}
