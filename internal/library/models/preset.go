package models

// ============================================================
// Preset Record
// ============================================================

// PresetRecord описывает запись каталога: метаданные из preset_info и сведения о файле архива.
type PresetRecord struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Release     int    `json:"release"`
	RootItems   int    `json:"root_items"`
	Size        int64  `json:"size"`
	CreatedAt   string `json:"created_at"`
}

// PresetMeta: то, что читается из preset.json без полного разбора.
type PresetMeta struct {
	Title       string
	Author      string
	Description string
	Width       int
	Height      int
	Release     int
	RootItems   int
}

type PresetPage struct {
	Items  []PresetRecord `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
