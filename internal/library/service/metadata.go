package service

import (
	"klwp-gateway/internal/converter/mapper"
	"klwp-gateway/internal/converter/parser"
	librarymodels "klwp-gateway/internal/library/models"

	"github.com/tidwall/gjson"
)

// ============================================================
// Metadata
// ============================================================

// ExtractMetadata принимает только архивы, которые конвертер сможет нормализовать,
// и читает поля preset_info через gjson.
func ExtractMetadata(archive []byte) (*librarymodels.PresetMeta, error) {
	document, err := parser.ReadDocument(archive)
	if err != nil {
		return nil, err
	}
	if _, err := mapper.New().ConvertDocument(document); err != nil {
		return nil, err
	}

	fields := gjson.GetManyBytes(document, "preset_info", "preset_root.viewgroup_items")
	info, items := fields[0], fields[1]

	return &librarymodels.PresetMeta{
		Title:       info.Get("title").String(),
		Author:      info.Get("author").String(),
		Description: info.Get("description").String(),
		Width:       int(info.Get("width").Int()),
		Height:      int(info.Get("height").Int()),
		Release:     int(info.Get("release").Int()),
		RootItems:   int(items.Get("#").Int()),
	}, nil
}
