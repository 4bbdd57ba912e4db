package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLoader(t *testing.T) {
	path := "./test.parquet"
	loader := NewLoader(path)

	if loader.datasetPath != path {
		t.Errorf("Expected path %s, got %s", path, loader.datasetPath)
	}
}

func TestLoadJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "test.jsonl")

	testData := `{"image_path":"covers/dune.jpg","isbn":"9780441013593","title":"Dune","author":"Frank Herbert","year":1965,"publisher":"Ace"}
{"image_path":"covers/neuromancer.jpg","isbn":"9780441569595","title":"Neuromancer","author":"William Gibson","year":1984}
`
	err := os.WriteFile(jsonlPath, []byte(testData), 0644)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(jsonlPath)

	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	if records[0].ISBN != "9780441013593" {
		t.Errorf("Expected ISBN 9780441013593, got %s", records[0].ISBN)
	}

	if records[0].Title != "Dune" {
		t.Errorf("Expected title 'Dune', got %s", records[0].Title)
	}

	if records[1].Year != 1984 {
		t.Errorf("Expected year 1984, got %d", records[1].Year)
	}
}

func TestLoadSample(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "test.jsonl")

	testData := `{"image_path":"a.jpg","title":"A"}
{"image_path":"b.jpg","title":"B"}
{"image_path":"c.jpg","title":"C"}
`
	err := os.WriteFile(jsonlPath, []byte(testData), 0644)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(jsonlPath)

	records, err := loader.LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}

	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}

	if records[0].ImagePath != "a.jpg" {
		t.Errorf("Expected image path a.jpg, got %s", records[0].ImagePath)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	loader := NewLoader("test.txt")

	_, err := loader.Load()
	if err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestExpected(t *testing.T) {
	record := GroundTruthRecord{
		ImagePath: "covers/dune.jpg",
		ISBN:      "9780441013593",
		Title:     "Dune",
		Author:    "Frank Herbert",
		Year:      1965,
		Publisher: "Ace",
	}

	expected := record.Expected()
	if expected.Title != "Dune" || expected.Year != 1965 {
		t.Errorf("Expected ground truth record, got %+v", expected)
	}
}
