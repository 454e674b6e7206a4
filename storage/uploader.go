package storage

import (
	"context"
	"io"
)

// UploadResult описывает сохранённый объект. Location - публичный URL,
// под которым объект доступен для чтения.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader - хранилище пользовательских изображений: скриншотов
// результатов матчей, логотипов команд и турниров, аватаров. Ключи
// формируют сервисы, поэтому повторная загрузка под тем же ключом
// перезаписывает объект.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	// GetPublicURL возвращает публичный URL ключа; пустая строка, если
	// URL построить нельзя.
	GetPublicURL(key string) string
}
