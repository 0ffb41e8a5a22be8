package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Tool identifies this module in metadata artifacts.
const Tool = "StEWI"

// ToolVersion is the data product version stamped into metadata artifacts.
const ToolVersion = "0.10.0"

// DateLayout is the day-month-year stamp used across metadata and validation
// ledger files.
const DateLayout = "02-Jan-2006"

// SourceInfo describes where a raw source file came from and when it was
// acquired. Fields default to "NA" until a download fills them in.
type SourceInfo struct {
	SourceType            string `json:"SourceType"`
	SourceFileName        string `json:"SourceFileName"`
	SourceURL             string `json:"SourceURL"`
	SourceVersion         string `json:"SourceVersion"`
	SourceAcquisitionTime string `json:"SourceAcquisitionTime"`
	Criteria              string `json:"Criteria,omitempty"`
	ToolVersion           string `json:"StEWI_Version"`
}

// NewSourceInfo returns a SourceInfo with every field defaulted.
func NewSourceInfo() SourceInfo {
	return SourceInfo{
		SourceType:            "Static File",
		SourceFileName:        "NA",
		SourceURL:             "NA",
		SourceVersion:         "NA",
		SourceAcquisitionTime: "NA",
		ToolVersion:           ToolVersion,
	}
}

// FileMeta describes one generated artifact: which tool produced it, when,
// in which run, and the source provenance it derives from.
type FileMeta struct {
	Name        string     `json:"Name"`
	Category    string     `json:"Category,omitempty"`
	Tool        string     `json:"Tool"`
	ToolVersion string     `json:"ToolVersion"`
	Ext         string     `json:"Ext"`
	DateCreated string     `json:"DateCreated"`
	RunID       string     `json:"RunID"`
	ToolMeta    any        `json:"ToolMeta,omitempty"`
	Sources     []SourceInfo `json:"Sources,omitempty"`
}

// NewFileMeta stamps a descriptor for an artifact named name within the given
// category (an inventory format or a source folder).
func NewFileMeta(name, category, ext string) FileMeta {
	return FileMeta{
		Name:        name,
		Category:    category,
		Tool:        Tool,
		ToolVersion: ToolVersion,
		Ext:         ext,
		DateCreated: time.Now().Format(DateLayout),
		RunID:       uuid.NewString(),
	}
}

// Write persists v as indented JSON at path, creating parent directories as
// needed.
func Write(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// Read loads a JSON metadata artifact from path into v.
func Read(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
