package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"klwp-gateway/internal/converter/models"
)

// DocumentName: единственная запись архива, которую читает и пишет конвертер.
const DocumentName = "preset.json"

// ============================================================
// Archive reader
// ============================================================

// ReadDocument достает байты preset.json из архива .klwp.
func ReadDocument(archive []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: open archive: %v", models.ErrMalformedContainer, err)
	}

	for _, file := range reader.File {
		if file.Name != DocumentName {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", models.ErrMalformedContainer, DocumentName, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", models.ErrMalformedContainer, DocumentName, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("%w: %s not found", models.ErrMalformedContainer, DocumentName)
}

// ============================================================
// Archive writer
// ============================================================

// WriteArchive упаковывает документ в архив с одной записью без сжатия.
func WriteArchive(document []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	entry, err := w.CreateHeader(&zip.FileHeader{
		Name:   DocumentName,
		Method: zip.Store,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", DocumentName, err)
	}
	if _, err := entry.Write(document); err != nil {
		return nil, fmt.Errorf("write %s: %w", DocumentName, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	return buf.Bytes(), nil
}
