package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventario/internal/common"
	"inventario/internal/domain/model"
	"inventario/internal/domain/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageUploader persists an image blob and returns its durable URL. The
// concrete implementation lives in platform/storage.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, contentType, name string) (string, error)
}

type RecordService struct {
	recordRepo repository.RecordRepository
	uploader   ImageUploader
}

func NewRecordService(recordRepo repository.RecordRepository, uploader ImageUploader) *RecordService {
	return &RecordService{recordRepo: recordRepo, uploader: uploader}
}

// RecordInput carries the mutable record fields as submitted by the client.
// Usuario and fecha are never part of it; they come from the verified token.
type RecordInput struct {
	Nombre        string
	Cantidad      int
	Ubicacion     string
	Tipo          string
	Observaciones string
	Serial        string
	Estado        string
}

func (in RecordInput) validate() error {
	if in.Nombre == "" || in.Ubicacion == "" || in.Tipo == "" || in.Serial == "" || in.Estado == "" {
		return common.Errorf("missing required fields: %w", common.ErrValidation)
	}
	if len(in.Nombre) > 100 {
		return common.Errorf("nombre exceeds 100 characters: %w", common.ErrValidation)
	}
	if len(in.Ubicacion) > 100 {
		return common.Errorf("ubicacion exceeds 100 characters: %w", common.ErrValidation)
	}
	if len(in.Serial) > 50 {
		return common.Errorf("serial exceeds 50 characters: %w", common.ErrValidation)
	}
	if !model.ValidTipo(in.Tipo) {
		return common.Errorf("unknown tipo %q: %w", in.Tipo, common.ErrValidation)
	}
	if !model.ValidEstado(in.Estado) {
		return common.Errorf("unknown estado %q: %w", in.Estado, common.ErrValidation)
	}
	return nil
}

func (s *RecordService) List(ctx context.Context) ([]model.Record, error) {
	records, err := s.recordRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

func (s *RecordService) Create(ctx context.Context, input RecordInput, imageBytes []byte, actingUsername string) (*model.Record, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	record := &model.Record{
		ID:        uuid.NewString(),
		Nombre:    input.Nombre,
		Cantidad:  input.Cantidad,
		Ubicacion: input.Ubicacion,
		Tipo:      input.Tipo,
		Serial:    input.Serial,
		Estado:    input.Estado,
		Usuario:   actingUsername,
		Fecha:     time.Now().UTC(),
	}
	if input.Observaciones != "" {
		record.Observaciones = &input.Observaciones
	}

	// The upload must succeed before anything is written; a failed transfer
	// leaves no record behind.
	if len(imageBytes) > 0 {
		url, err := s.uploadImage(ctx, imageBytes, input.Nombre)
		if err != nil {
			return nil, err
		}
		record.Imagen = &url
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	return record, nil
}

func (s *RecordService) Update(ctx context.Context, id string, input RecordInput, imageBytes []byte, actingUsername string) (*model.Record, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record := &model.Record{
		ID:        existing.ID,
		Nombre:    input.Nombre,
		Imagen:    existing.Imagen, // kept unless a new image arrives
		Cantidad:  input.Cantidad,
		Ubicacion: input.Ubicacion,
		Tipo:      input.Tipo,
		Serial:    input.Serial,
		Estado:    input.Estado,
		Usuario:   actingUsername,
		Fecha:     time.Now().UTC(),
	}
	if input.Observaciones != "" {
		record.Observaciones = &input.Observaciones
	}

	if len(imageBytes) > 0 {
		url, err := s.uploadImage(ctx, imageBytes, input.Nombre)
		if err != nil {
			return nil, err
		}
		record.Imagen = &url
	}

	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordService) Delete(ctx context.Context, id string) error {
	return s.recordRepo.Delete(ctx, id)
}

func (s *RecordService) uploadImage(ctx context.Context, data []byte, name string) (string, error) {
	contentType := mimetype.Detect(data).String()
	if !strings.HasPrefix(contentType, "image/") {
		return "", common.Errorf("uploaded file is %s, not an image: %w", contentType, common.ErrValidation)
	}
	url, err := s.uploader.Upload(ctx, data, contentType, name)
	if err != nil {
		return "", common.Errorf("%v: %w", err, common.ErrUpload)
	}
	return url, nil
}
